// Package criteria holds the filter selection of one browsing session.
// Every edit replaces the whole snapshot, so a reader never observes a half-applied change.
package criteria

import (
	"sync"

	"github.com/gcbaptista/go-facet-engine/config"
	"github.com/gcbaptista/go-facet-engine/internal/errors"
	"github.com/gcbaptista/go-facet-engine/internal/filtering"
	"github.com/gcbaptista/go-facet-engine/model"
)

// Store owns the current FilterCriteria of a session and its defaults.
type Store struct {
	mu        sync.RWMutex
	settings  *config.CollectionSettings
	evaluator *filtering.Evaluator
	defaults  model.FilterCriteria
	current   model.FilterCriteria
}

// NewStore creates a store whose defaults are derived from the schema and the candidate set.
func NewStore(settings *config.CollectionSettings, records []model.Record) *Store {
	defaults := Defaults(settings, records)
	return &Store{
		settings:  settings,
		evaluator: filtering.NewEvaluator(settings),
		defaults:  defaults,
		current:   defaults.Clone(),
	}
}

// Defaults computes the criteria a fresh session starts from: no categorical selection,
// every numeric facet spanning its domain, an empty search term and the default sort.
// A numeric facet without a configured domain uses the observed min and max of the records;
// when no record carries a value the facet is left unconstrained.
func Defaults(settings *config.CollectionSettings, records []model.Record) model.FilterCriteria {
	defaults := model.FilterCriteria{
		Categories: make(map[string][]string),
		Ranges:     make(map[string]model.Range),
		SortBy:     settings.DefaultSort,
	}
	for _, facet := range settings.NumericFacets {
		if facet.Domain != nil {
			defaults.Ranges[facet.Field] = *facet.Domain
			continue
		}
		if r, ok := filtering.ObservedDomain(records, facet); ok {
			defaults.Ranges[facet.Field] = r
		}
	}
	return defaults
}

// CountActive returns how many facets of current differ from defaults.
// Sort order is not a filter and is never counted.
func CountActive(current, defaults model.FilterCriteria) int {
	count := 0
	for _, values := range current.Categories {
		if len(values) > 0 {
			count++
		}
	}
	for facet, r := range current.Ranges {
		if def, ok := defaults.Ranges[facet]; !ok || def != r {
			count++
		}
	}
	if current.SearchTerm != "" {
		count++
	}
	return count
}

// Snapshot returns a copy of the current criteria.
func (s *Store) Snapshot() model.FilterCriteria {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Clone()
}

// Defaults returns a copy of the default criteria.
func (s *Store) Defaults() model.FilterCriteria {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.defaults.Clone()
}

// ActiveFilterCount returns the number of facets currently constraining the result.
func (s *Store) ActiveFilterCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return CountActive(s.current, s.defaults)
}

// update builds the next snapshot from a copy of the current one and swaps it in.
// When mutate fails the current snapshot is left untouched.
func (s *Store) update(mutate func(next *model.FilterCriteria) error) (model.FilterCriteria, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.current.Clone()
	if err := mutate(&next); err != nil {
		return s.current.Clone(), err
	}
	s.current = next
	return next.Clone(), nil
}

// SetCategorySelection replaces the selected values of one categorical facet.
// Duplicates are dropped; values themselves are not checked against the records.
func (s *Store) SetCategorySelection(facet string, values []string) (model.FilterCriteria, error) {
	return s.update(func(next *model.FilterCriteria) error {
		if !s.settings.HasCategoricalFacet(facet) {
			return errors.NewUnknownFacetError(facet, "categorical")
		}
		next.Categories[facet] = dedupe(values)
		return nil
	})
}

// SetRange replaces the bounds of one numeric facet. A range with min > max is rejected
// and the previous range is kept.
func (s *Store) SetRange(facet string, min, max float64) (model.FilterCriteria, error) {
	return s.update(func(next *model.FilterCriteria) error {
		if _, ok := s.settings.NumericFacet(facet); !ok {
			return errors.NewUnknownFacetError(facet, "numeric")
		}
		r := model.Range{Min: min, Max: max}
		if !r.Valid() {
			return errors.NewRangeError(facet, min, max)
		}
		next.Ranges[facet] = r
		return nil
	})
}

// SetSearchTerm stores the term verbatim.
func (s *Store) SetSearchTerm(term string) model.FilterCriteria {
	next, _ := s.update(func(next *model.FilterCriteria) error {
		next.SearchTerm = term
		return nil
	})
	return next
}

// SetSort selects a configured sort option; an empty name restores input order.
func (s *Store) SetSort(name string) (model.FilterCriteria, error) {
	return s.update(func(next *model.FilterCriteria) error {
		if name != "" {
			if _, ok := s.settings.SortOption(name); !ok {
				return errors.NewUnknownFacetError(name, "sort")
			}
		}
		next.SortBy = name
		return nil
	})
}

// ApplyPreset replaces the criteria with the defaults overlaid by a named preset.
func (s *Store) ApplyPreset(name string) (model.FilterCriteria, error) {
	preset, ok := s.settings.Preset(name)
	if !ok {
		return s.Snapshot(), errors.NewUnknownFacetError(name, "preset")
	}
	return s.update(func(next *model.FilterCriteria) error {
		*next = overlay(s.defaults, preset.Criteria)
		return nil
	})
}

// Replace swaps in a criteria value after validating every facet and range.
// Numeric facets and the sort left out of criteria fall back to their defaults,
// so Replace of an empty value is the same as Reset.
func (s *Store) Replace(criteria model.FilterCriteria) (model.FilterCriteria, error) {
	return s.update(func(next *model.FilterCriteria) error {
		if err := s.evaluator.Validate(criteria); err != nil {
			return err
		}
		*next = overlay(s.defaults, criteria)
		return nil
	})
}

// Reset restores the defaults.
func (s *Store) Reset() model.FilterCriteria {
	next, _ := s.update(func(next *model.FilterCriteria) error {
		*next = s.defaults.Clone()
		return nil
	})
	return next
}

// overlay copies base and applies every facet set in top.
func overlay(base, top model.FilterCriteria) model.FilterCriteria {
	out := base.Clone()
	for facet, values := range top.Categories {
		out.Categories[facet] = dedupe(values)
	}
	for facet, r := range top.Ranges {
		out.Ranges[facet] = r
	}
	if top.SearchTerm != "" {
		out.SearchTerm = top.SearchTerm
	}
	if top.SortBy != "" {
		out.SortBy = top.SortBy
	}
	return out
}

func dedupe(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]bool, len(values))
	for _, v := range values {
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
