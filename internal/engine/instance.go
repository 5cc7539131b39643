package engine

import (
	stdErrors "errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/gcbaptista/go-facet-engine/config"
	"github.com/gcbaptista/go-facet-engine/internal/criteria"
	"github.com/gcbaptista/go-facet-engine/internal/errors"
	"github.com/gcbaptista/go-facet-engine/internal/filtering"
	"github.com/gcbaptista/go-facet-engine/internal/kvstore"
	"github.com/gcbaptista/go-facet-engine/internal/logging"
	"github.com/gcbaptista/go-facet-engine/internal/metrics"
	"github.com/gcbaptista/go-facet-engine/internal/suggest"
	"github.com/gcbaptista/go-facet-engine/internal/votes"
	"github.com/gcbaptista/go-facet-engine/model"
	"github.com/gcbaptista/go-facet-engine/store"
)

// CollectionInstance holds all components of a single collection.
// It implements the services.CollectionAccessor interface.
type CollectionInstance struct {
	mu        sync.RWMutex
	settings  *config.CollectionSettings
	records   *store.RecordStore
	evaluator *filtering.Evaluator
	generator *suggest.Generator
	votes     *votes.Tracker // nil when votes are disabled
	sessions  map[string]*Session
	kv        kvstore.Store
	persist   func(*store.RecordStore) error
}

func newCollectionInstance(settings config.CollectionSettings, records *store.RecordStore, kv kvstore.Store, persist func(*store.RecordStore) error) *CollectionInstance {
	instance := &CollectionInstance{
		records:  records,
		sessions: make(map[string]*Session),
		kv:       kv,
		persist:  persist,
	}
	instance.applySettings(settings)
	return instance
}

// applySettings rebuilds every settings-derived component. Callers hold mu or own the instance.
func (i *CollectionInstance) applySettings(settings config.CollectionSettings) {
	i.settings = &settings
	i.evaluator = filtering.NewEvaluator(i.settings)
	i.generator = suggest.NewGenerator(i.settings)
	switch {
	case settings.EnableVotes && i.votes == nil:
		i.votes = votes.NewTracker(i.kv, settings.Name)
	case !settings.EnableVotes:
		i.votes = nil
	}
}

// components returns the settings-derived components as one consistent set.
func (i *CollectionInstance) components() (*config.CollectionSettings, *filtering.Evaluator, *suggest.Generator) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.settings, i.evaluator, i.generator
}

// Settings returns a copy of the collection settings.
func (i *CollectionInstance) Settings() config.CollectionSettings {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return *i.settings
}

func (i *CollectionInstance) name() string {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.settings.Name
}

// AddRecords upserts records by id and persists the store.
func (i *CollectionInstance) AddRecords(records []model.Record) (added, updated int, err error) {
	added, updated, err = i.records.Upsert(records)
	if err != nil {
		return 0, 0, err
	}
	return added, updated, i.persist(i.records)
}

// DeleteRecord removes one record by id.
func (i *CollectionInstance) DeleteRecord(recordID string) error {
	if !i.records.Delete(recordID) {
		return errors.NewRecordNotFoundError(recordID, i.name())
	}
	return i.persist(i.records)
}

// DeleteAllRecords removes every record of the collection.
func (i *CollectionInstance) DeleteAllRecords() error {
	i.records.Clear()
	return i.persist(i.records)
}

// Records returns the records in collection order.
func (i *CollectionInstance) Records() []model.Record {
	return i.records.All()
}

// GetRecord returns a record by id.
func (i *CollectionInstance) GetRecord(recordID string) (model.Record, error) {
	record, ok := i.records.Get(recordID)
	if !ok {
		return nil, errors.NewRecordNotFoundError(recordID, i.name())
	}
	return record, nil
}

// Filter evaluates criteria against the current records. The active filter count is
// measured against the defaults a fresh session would start from.
func (i *CollectionInstance) Filter(c model.FilterCriteria) (model.FilterResult, error) {
	settings, evaluator, _ := i.components()
	if err := evaluator.Validate(c); err != nil {
		metrics.CriteriaRejections.WithLabelValues(settings.Name, rejectionReason(err)).Inc()
		return model.FilterResult{}, err
	}

	records := i.records.All()
	start := time.Now()
	result := evaluator.Filter(records, c)
	result.ActiveFilterCount = criteria.CountActive(c, criteria.Defaults(settings, records))
	metrics.RecordFilter(settings.Name, "query", result.Total, time.Since(start))
	return result, nil
}

// Suggest generates suggestions for term over the current records.
func (i *CollectionInstance) Suggest(term string) []model.Suggestion {
	settings, _, generator := i.components()
	metrics.SuggestionRequests.WithLabelValues(settings.Name).Inc()
	return generator.Generate(term, i.records.All())
}

// Facets summarizes the values of every facet across the current records.
func (i *CollectionInstance) Facets() model.FacetSummary {
	_, evaluator, _ := i.components()
	return evaluator.Summarize(i.records.All())
}

// Stats returns record, session and vote counts with the facet summary.
func (i *CollectionInstance) Stats() model.CollectionStats {
	i.mu.RLock()
	name := i.settings.Name
	sessionCount := len(i.sessions)
	tracker := i.votes
	i.mu.RUnlock()

	stats := model.CollectionStats{
		CollectionName: name,
		RecordCount:    i.records.Len(),
		SessionCount:   sessionCount,
		Facets:         i.Facets(),
	}
	if tracker != nil {
		counts := tracker.Counts()
		stats.Votes = &counts
	}
	return stats
}

// Vote records whether a record was helpful. The last vote per record wins.
func (i *CollectionInstance) Vote(recordID string, helpful bool) error {
	i.mu.RLock()
	name := i.settings.Name
	tracker := i.votes
	i.mu.RUnlock()

	if tracker == nil {
		return errors.ErrVotesDisabled
	}
	if _, ok := i.records.Get(recordID); !ok {
		return errors.NewRecordNotFoundError(recordID, name)
	}
	if err := tracker.Vote(recordID, helpful); err != nil {
		return err
	}
	metrics.RecordVote(name, helpful)
	return nil
}

// Votes returns every recorded vote with the aggregated counts.
func (i *CollectionInstance) Votes() (map[string]bool, model.VoteCounts, error) {
	i.mu.RLock()
	tracker := i.votes
	i.mu.RUnlock()

	if tracker == nil {
		return nil, model.VoteCounts{}, errors.ErrVotesDisabled
	}
	return tracker.All(), tracker.Counts(), nil
}

// CreateSession starts a browsing session whose defaults come from the current records.
func (i *CollectionInstance) CreateSession() *Session {
	settings, evaluator, generator := i.components()
	session := &Session{
		ID:         uuid.New().String(),
		collection: i,
		lastUsed:   time.Now(),
	}
	session.bind(settings, evaluator, generator, i.records.All(), nil)

	i.mu.Lock()
	i.sessions[session.ID] = session
	i.mu.Unlock()

	metrics.ActiveSessions.WithLabelValues(settings.Name).Inc()
	logging.Debug().Str("collection", settings.Name).Str("session_id", session.ID).Msg("Session created")
	return session
}

// GetSession returns a session by id.
func (i *CollectionInstance) GetSession(sessionID string) (*Session, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	session, ok := i.sessions[sessionID]
	if !ok {
		return nil, errors.NewSessionNotFoundError(sessionID)
	}
	return session, nil
}

// DeleteSession ends a session.
func (i *CollectionInstance) DeleteSession(sessionID string) error {
	i.mu.Lock()
	_, ok := i.sessions[sessionID]
	delete(i.sessions, sessionID)
	name := i.settings.Name
	i.mu.Unlock()

	if !ok {
		return errors.NewSessionNotFoundError(sessionID)
	}
	metrics.ActiveSessions.WithLabelValues(name).Dec()
	return nil
}

// SessionIDs returns the ids of every open session, sorted.
func (i *CollectionInstance) SessionIDs() []string {
	i.mu.RLock()
	defer i.mu.RUnlock()
	ids := make([]string, 0, len(i.sessions))
	for id := range i.sessions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// expireSessions drops sessions idle since before cutoff and returns how many were removed.
func (i *CollectionInstance) expireSessions(cutoff time.Time) int {
	i.mu.Lock()
	defer i.mu.Unlock()

	expired := 0
	for id, session := range i.sessions {
		if session.idleSince().Before(cutoff) {
			delete(i.sessions, id)
			expired++
		}
	}
	if expired > 0 {
		metrics.ActiveSessions.WithLabelValues(i.settings.Name).Sub(float64(expired))
	}
	return expired
}

// closeSessions drops every session. Used when the collection is deleted.
func (i *CollectionInstance) closeSessions() {
	i.mu.Lock()
	count := len(i.sessions)
	i.sessions = make(map[string]*Session)
	name := i.settings.Name
	i.mu.Unlock()
	metrics.ActiveSessions.WithLabelValues(name).Sub(float64(count))
}

// sessionList returns a snapshot of the open sessions.
func (i *CollectionInstance) sessionList() []*Session {
	i.mu.RLock()
	defer i.mu.RUnlock()
	list := make([]*Session, 0, len(i.sessions))
	for _, session := range i.sessions {
		list = append(list, session)
	}
	return list
}

func rejectionReason(err error) string {
	switch {
	case stdErrors.Is(err, errors.ErrInvalidRange):
		return "invalid_range"
	case stdErrors.Is(err, errors.ErrUnknownFacet):
		return "unknown_facet"
	}
	return "invalid_input"
}
