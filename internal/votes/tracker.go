// Package votes tracks "was this helpful?" answers per record.
// The whole map is stored under a single key and rewritten in full on every vote.
package votes

import (
	"fmt"
	"sort"
	"sync"

	"github.com/goccy/go-json"

	"github.com/gcbaptista/go-facet-engine/internal/kvstore"
	"github.com/gcbaptista/go-facet-engine/internal/logging"
	"github.com/gcbaptista/go-facet-engine/model"
)

// KeyFor returns the storage key holding a collection's votes, e.g. "faq_votes".
func KeyFor(collection string) string {
	return collection + "_votes"
}

// Tracker records one helpful/not-helpful answer per record id.
type Tracker struct {
	mu    sync.RWMutex
	kv    kvstore.Store
	key   string
	votes map[string]bool
}

// NewTracker loads the persisted votes of a collection.
// A missing, unreadable or corrupt value starts from an empty map and is logged, never returned.
func NewTracker(kv kvstore.Store, collection string) *Tracker {
	t := &Tracker{
		kv:    kv,
		key:   KeyFor(collection),
		votes: make(map[string]bool),
	}

	data, ok, err := kv.Get(t.key)
	if err != nil {
		logging.Warn().Err(err).Str("key", t.key).Msg("Failed to read persisted votes, starting empty")
		return t
	}
	if !ok {
		return t
	}
	loaded := make(map[string]bool)
	if err := json.Unmarshal(data, &loaded); err != nil {
		logging.Warn().Err(err).Str("key", t.key).Msg("Failed to decode persisted votes, starting empty")
		return t
	}
	t.votes = loaded
	return t
}

// Vote records the answer for a record, replacing any earlier one, and persists the full map.
// The in-memory map is only updated once the write succeeded.
func (t *Tracker) Vote(recordID string, helpful bool) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	next := make(map[string]bool, len(t.votes)+1)
	for id, v := range t.votes {
		next[id] = v
	}
	next[recordID] = helpful

	if err := t.persist(next); err != nil {
		return err
	}
	t.votes = next
	return nil
}

// Get returns the vote of a record and whether one exists.
func (t *Tracker) Get(recordID string) (bool, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	v, ok := t.votes[recordID]
	return v, ok
}

// All returns a copy of every vote.
func (t *Tracker) All() map[string]bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make(map[string]bool, len(t.votes))
	for id, v := range t.votes {
		out[id] = v
	}
	return out
}

// RecordIDs returns the ids that have a vote, sorted.
func (t *Tracker) RecordIDs() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	ids := make([]string, 0, len(t.votes))
	for id := range t.votes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Counts totals helpful and not-helpful votes.
func (t *Tracker) Counts() model.VoteCounts {
	t.mu.RLock()
	defer t.mu.RUnlock()
	var counts model.VoteCounts
	for _, helpful := range t.votes {
		if helpful {
			counts.Helpful++
		} else {
			counts.NotHelpful++
		}
	}
	return counts
}

// Reset removes every vote of the collection.
func (t *Tracker) Reset() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.kv.Delete(t.key); err != nil {
		return fmt.Errorf("failed to delete %s: %w", t.key, err)
	}
	t.votes = make(map[string]bool)
	return nil
}

func (t *Tracker) persist(votes map[string]bool) error {
	data, err := json.Marshal(votes)
	if err != nil {
		return fmt.Errorf("failed to encode votes: %w", err)
	}
	if err := t.kv.Set(t.key, data); err != nil {
		return fmt.Errorf("failed to persist %s: %w", t.key, err)
	}
	return nil
}
