// Package kvstore is the small key-value abstraction behind persisted UI state
// such as helpful votes and newsletter submissions. Values are opaque byte slices;
// callers own their encoding.
package kvstore

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/gcbaptista/go-facet-engine/config"
)

// Store is a string-keyed byte store.
type Store interface {
	// Get returns the value for key. The boolean is false when the key is absent.
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
	Delete(key string) error
	// Clear removes every key owned by the store.
	Clear() error
	Close() error
}

// Open creates the backend selected by the storage configuration.
func Open(cfg config.StorageConfig) (Store, error) {
	switch cfg.Backend {
	case config.StorageBackendMemory:
		return NewMemoryStore(), nil
	case config.StorageBackendFile, "":
		return NewFileStore(filepath.Join(cfg.DataDir, "kv")), nil
	case config.StorageBackendBadger:
		return OpenBadgerStore(filepath.Join(cfg.DataDir, "badger"), DefaultKeyPrefix)
	default:
		return nil, fmt.Errorf("unknown storage backend '%s'", cfg.Backend)
	}
}

// MemoryStore keeps values in a map. Used for tests and ephemeral deployments.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string][]byte)}
}

func (m *MemoryStore) Get(key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.values[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, true, nil
}

func (m *MemoryStore) Set(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := make([]byte, len(value))
	copy(stored, value)
	m.values[key] = stored
	return nil
}

func (m *MemoryStore) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

func (m *MemoryStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values = make(map[string][]byte)
	return nil
}

func (m *MemoryStore) Close() error { return nil }
