// Package engine manages facet collections: their schema, records, votes and browsing sessions.
package engine

import (
	"os"
	"sort"
	"sync"

	"github.com/gcbaptista/go-facet-engine/config"
	"github.com/gcbaptista/go-facet-engine/internal/errors"
	"github.com/gcbaptista/go-facet-engine/internal/kvstore"
	"github.com/gcbaptista/go-facet-engine/internal/logging"
	"github.com/gcbaptista/go-facet-engine/services"
)

var (
	_ services.CollectionManager  = (*Engine)(nil)
	_ services.CollectionAccessor = (*CollectionInstance)(nil)
)

// Engine manages multiple facet collections.
// It implements the services.CollectionManager interface.
type Engine struct {
	mu          sync.RWMutex
	collections map[string]*CollectionInstance
	dataDir     string
	kv          kvstore.Store
	janitor     *janitor
}

// NewEngine creates the engine and loads the collections persisted under dataDir.
// An empty dataDir keeps collections in memory only. Votes live in kv; a nil kv
// falls back to an in-memory store.
func NewEngine(dataDir string, kv kvstore.Store) *Engine {
	if kv == nil {
		kv = kvstore.NewMemoryStore()
	}
	eng := &Engine{
		collections: make(map[string]*CollectionInstance),
		dataDir:     dataDir,
		kv:          kv,
	}
	if dataDir != "" {
		if err := os.MkdirAll(dataDir, dataDirPerm); err != nil {
			logging.Warn().Err(err).Str("data_dir", dataDir).Msg("Could not create data directory, collections will not be loaded")
		}
		eng.loadCollectionsFromDisk()
	}
	return eng
}

// GetCollection retrieves a collection by its name.
func (e *Engine) GetCollection(name string) (services.CollectionAccessor, error) {
	instance, err := e.instance(name)
	if err != nil {
		return nil, err
	}
	return instance, nil
}

// GetCollectionSettings retrieves a copy of the settings of a collection.
func (e *Engine) GetCollectionSettings(name string) (config.CollectionSettings, error) {
	instance, err := e.instance(name)
	if err != nil {
		return config.CollectionSettings{}, err
	}
	return instance.Settings(), nil
}

// ListCollections returns the names of all collections in lexical order.
func (e *Engine) ListCollections() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	names := make([]string, 0, len(e.collections))
	for name := range e.collections {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Close stops the session janitor. The KV store is owned by the caller.
func (e *Engine) Close() {
	e.mu.Lock()
	j := e.janitor
	e.janitor = nil
	e.mu.Unlock()
	if j != nil {
		j.stop()
	}
}

func (e *Engine) instance(name string) (*CollectionInstance, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	instance, exists := e.collections[name]
	if !exists {
		return nil, errors.NewCollectionNotFoundError(name)
	}
	return instance, nil
}
