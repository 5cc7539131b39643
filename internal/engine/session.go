package engine

import (
	"fmt"
	"sync"
	"time"

	"github.com/gcbaptista/go-facet-engine/config"
	"github.com/gcbaptista/go-facet-engine/internal/criteria"
	"github.com/gcbaptista/go-facet-engine/internal/errors"
	"github.com/gcbaptista/go-facet-engine/internal/filtering"
	"github.com/gcbaptista/go-facet-engine/internal/metrics"
	"github.com/gcbaptista/go-facet-engine/internal/suggest"
	"github.com/gcbaptista/go-facet-engine/model"
)

// SessionView is everything a client renders after an edit.
type SessionView struct {
	ID                string               `json:"id"`
	Collection        string               `json:"collection"`
	Criteria          model.FilterCriteria `json:"criteria"`
	ActiveFilterCount int                  `json:"active_filter_count"`
	Result            model.FilterResult   `json:"result"`
	Suggestions       []model.Suggestion   `json:"suggestions"`
	Panel             suggest.PanelState   `json:"panel"`
	OpenRecordID      string               `json:"open_record_id,omitempty"`
}

// Session is one user's browsing state over a collection: the filter criteria
// and the suggestion dropdown of its search box.
type Session struct {
	ID         string
	collection *CollectionInstance

	mu           sync.Mutex
	settings     *config.CollectionSettings
	evaluator    *filtering.Evaluator
	generator    *suggest.Generator
	store        *criteria.Store
	panel        *suggest.Panel
	openRecordID string
	lastUsed     time.Time
}

// bind attaches the session to a schema. When keep is non-nil the session tries to
// carry those criteria over; criteria the schema no longer accepts fall back to defaults.
func (s *Session) bind(settings *config.CollectionSettings, evaluator *filtering.Evaluator, generator *suggest.Generator, records []model.Record, keep *model.FilterCriteria) {
	s.settings = settings
	s.evaluator = evaluator
	s.generator = generator
	s.store = criteria.NewStore(settings, records)
	s.panel = suggest.NewPanel()
	s.openRecordID = ""
	if keep != nil {
		if _, err := s.store.Replace(*keep); err != nil {
			s.store.Reset()
		}
	}
}

// rebind is called after the collection settings change.
func (s *Session) rebind(settings *config.CollectionSettings, evaluator *filtering.Evaluator, generator *suggest.Generator, records []model.Record, keepCriteria bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var keep *model.FilterCriteria
	if keepCriteria {
		current := s.store.Snapshot()
		keep = &current
	}
	s.bind(settings, evaluator, generator, records, keep)
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastUsed
}

// Criteria returns the current criteria.
func (s *Session) Criteria() model.FilterCriteria {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Snapshot()
}

// View evaluates the current criteria and resolves the panel state at now.
func (s *Session) View(now time.Time) SessionView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked(now)
}

// SetCategorySelection replaces the selected values of a categorical facet.
func (s *Session) SetCategorySelection(now time.Time, facet string, values []string) (SessionView, error) {
	return s.edit(now, func() error {
		_, err := s.store.SetCategorySelection(facet, values)
		return err
	})
}

// SetRange replaces the bounds of a numeric facet. On rejection the view carries the unchanged criteria.
func (s *Session) SetRange(now time.Time, facet string, min, max float64) (SessionView, error) {
	return s.edit(now, func() error {
		_, err := s.store.SetRange(facet, min, max)
		return err
	})
}

// SetSearchTerm sets the free-text term verbatim and refreshes the suggestions for it.
func (s *Session) SetSearchTerm(now time.Time, term string) SessionView {
	view, _ := s.edit(now, func() error {
		s.store.SetSearchTerm(term)
		return nil
	})
	return view
}

// SetSort selects a named sort option; an empty name keeps collection order.
func (s *Session) SetSort(now time.Time, name string) (SessionView, error) {
	return s.edit(now, func() error {
		_, err := s.store.SetSort(name)
		return err
	})
}

// ApplyPreset overlays a named preset on the defaults.
func (s *Session) ApplyPreset(now time.Time, name string) (SessionView, error) {
	return s.edit(now, func() error {
		_, err := s.store.ApplyPreset(name)
		return err
	})
}

// Replace swaps in a whole criteria value after validating it.
func (s *Session) Replace(now time.Time, c model.FilterCriteria) (SessionView, error) {
	return s.edit(now, func() error {
		_, err := s.store.Replace(c)
		return err
	})
}

// Reset restores the defaults.
func (s *Session) Reset(now time.Time) SessionView {
	view, _ := s.edit(now, func() error {
		s.store.Reset()
		return nil
	})
	return view
}

// SelectSuggestion applies the suggestion at index of the current list.
// Question suggestions clear the term and open their record; other kinds become the term.
func (s *Session) SelectSuggestion(now time.Time, index int) (SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastUsed = now

	suggestions := s.panel.Suggestions()
	if index < 0 || index >= len(suggestions) {
		return s.viewLocked(s.lastUsed), errors.NewValidationError("index", fmt.Sprintf("suggestion index %d out of range (%d suggestions)", index, len(suggestions)))
	}
	selection := s.panel.Select(suggestions[index])
	s.store.SetSearchTerm(selection.SearchTerm)
	s.openRecordID = selection.OpenRecordID
	return s.viewLocked(s.lastUsed), nil
}

// Blur schedules the suggestion panel to hide after the grace period.
func (s *Session) Blur(now time.Time) SessionView {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastUsed = now
	s.panel.Blur(now)
	return s.viewLocked(now)
}

// Focus cancels a pending hide and reopens the panel when it has suggestions.
func (s *Session) Focus(now time.Time) SessionView {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastUsed = now
	s.panel.Focus()
	return s.viewLocked(now)
}

// edit runs mutate and refreshes the suggestions when the term changed.
// The returned view is valid whether or not mutate failed.
// now drives both the idle clock and the panel, the same clock Blur and Focus use.
func (s *Session) edit(now time.Time, mutate func() error) (SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastUsed = now

	before := s.store.Snapshot().SearchTerm
	err := mutate()
	if err != nil {
		metrics.CriteriaRejections.WithLabelValues(s.settings.Name, rejectionReason(err)).Inc()
		return s.viewLocked(now), err
	}

	after := s.store.Snapshot().SearchTerm
	if after != before {
		metrics.SuggestionRequests.WithLabelValues(s.settings.Name).Inc()
		s.panel.Update(after, s.generator.Generate(after, s.collection.records.All()))
		s.openRecordID = ""
	}
	return s.viewLocked(now), nil
}

func (s *Session) viewLocked(now time.Time) SessionView {
	current := s.store.Snapshot()
	start := time.Now()
	result := s.evaluator.Filter(s.collection.records.All(), current)
	result.ActiveFilterCount = s.store.ActiveFilterCount()
	metrics.RecordFilter(s.settings.Name, "session", result.Total, time.Since(start))

	return SessionView{
		ID:                s.ID,
		Collection:        s.settings.Name,
		Criteria:          current,
		ActiveFilterCount: result.ActiveFilterCount,
		Result:            result,
		Suggestions:       s.panel.Suggestions(),
		Panel:             s.panel.State(now),
		OpenRecordID:      s.openRecordID,
	}
}
