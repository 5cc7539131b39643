// Package filtering evaluates FilterCriteria against records.
// Every facet of a collection schema becomes one predicate; a record is retained
// only when all predicates accept it.
package filtering

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gcbaptista/go-facet-engine/config"
	"github.com/gcbaptista/go-facet-engine/internal/errors"
	"github.com/gcbaptista/go-facet-engine/model"
)

// Evaluator applies criteria to records using a collection's facet schema.
// It holds no per-query state and is safe for concurrent use.
type Evaluator struct {
	settings *config.CollectionSettings
}

// NewEvaluator creates an evaluator for the given schema.
func NewEvaluator(settings *config.CollectionSettings) *Evaluator {
	return &Evaluator{settings: settings}
}

// Validate checks that criteria only reference facets and sort options of the schema
// and that every range is ordered.
func (e *Evaluator) Validate(criteria model.FilterCriteria) error {
	for facet := range criteria.Categories {
		if !e.settings.HasCategoricalFacet(facet) {
			return errors.NewUnknownFacetError(facet, "categorical")
		}
	}
	for facet, r := range criteria.Ranges {
		if _, ok := e.settings.NumericFacet(facet); !ok {
			return errors.NewUnknownFacetError(facet, "numeric")
		}
		if !r.Valid() {
			return errors.NewRangeError(facet, r.Min, r.Max)
		}
	}
	if criteria.SortBy != "" {
		if _, ok := e.settings.SortOption(criteria.SortBy); !ok {
			return errors.NewUnknownFacetError(criteria.SortBy, "sort")
		}
	}
	return nil
}

// Matches reports whether a record satisfies every predicate of the criteria.
// Predicates run in schema order: categorical, numeric, then the search term.
func (e *Evaluator) Matches(record model.Record, criteria model.FilterCriteria) bool {
	return e.matches(record, criteria, strings.ToLower(criteria.SearchTerm))
}

func (e *Evaluator) matches(record model.Record, criteria model.FilterCriteria, lowerTerm string) bool {
	for _, facet := range e.settings.CategoricalFacets {
		selected := criteria.Categories[facet]
		if len(selected) == 0 {
			continue // empty selection is unconstrained
		}
		if !anyMember(record.StringValues(facet), selected) {
			return false
		}
	}

	for _, facet := range e.settings.NumericFacets {
		r, constrained := criteria.Ranges[facet.Field]
		if !constrained {
			continue
		}
		value, ok := ParseNumeric(record[facet.Field], facet.Format)
		if !ok || !r.Contains(value) {
			return false
		}
	}

	if lowerTerm == "" {
		return true
	}
	for _, field := range e.settings.SearchableFields {
		for _, value := range record.StringValues(field) {
			if containsFold(value, lowerTerm) {
				return true
			}
		}
	}
	return false
}

// Filter returns the records that satisfy the criteria.
// Input order is preserved unless criteria.SortBy names a sort option, in which case the
// matches are stably sorted. Filter never fails; unknown facets in the criteria are ignored
// and the worst case is an empty, non-nil result.
func (e *Evaluator) Filter(records []model.Record, criteria model.FilterCriteria) model.FilterResult {
	start := time.Now()
	lowerTerm := strings.ToLower(criteria.SearchTerm)

	matched := make([]model.Record, 0, len(records))
	for _, record := range records {
		if e.matches(record, criteria, lowerTerm) {
			matched = append(matched, record)
		}
	}

	if criteria.SortBy != "" {
		if option, ok := e.settings.SortOption(criteria.SortBy); ok {
			sortRecords(matched, option.Criteria)
		}
	}

	return model.FilterResult{
		Matched:        matched,
		Total:          len(matched),
		CandidateCount: len(records),
		QueryID:        uuid.New().String(),
		TookMs:         time.Since(start).Milliseconds(),
	}
}

func anyMember(values, selected []string) bool {
	for _, v := range values {
		for _, s := range selected {
			if v == s {
				return true
			}
		}
	}
	return false
}
