package engine

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gcbaptista/go-facet-engine/config"
	"github.com/gcbaptista/go-facet-engine/internal/errors"
	"github.com/gcbaptista/go-facet-engine/internal/logging"
	"github.com/gcbaptista/go-facet-engine/internal/votes"
	"github.com/gcbaptista/go-facet-engine/store"
)

// CreateCollection creates a new collection with the given settings and persists it.
func (e *Engine) CreateCollection(settings config.CollectionSettings) error {
	if strings.TrimSpace(settings.Name) == "" {
		return errors.NewValidationError("name", "Collection name cannot be empty")
	}
	settings.ApplyDefaults()
	if conflicts := settings.ValidateFieldNames(); len(conflicts) > 0 {
		return errors.NewValidationError("settings", strings.Join(conflicts, "; "))
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if _, exists := e.collections[settings.Name]; exists {
		return errors.NewCollectionAlreadyExistsError(settings.Name)
	}

	records := store.NewRecordStore()
	if err := e.persistCollection(settings.Name, settings, records); err != nil {
		return err
	}

	e.collections[settings.Name] = newCollectionInstance(settings, records, e.kv, e.persister(settings.Name))
	logging.Info().Str("collection", settings.Name).Msg("Collection created")
	return nil
}

// DeleteCollection removes a collection, its sessions, its votes and its data directory.
func (e *Engine) DeleteCollection(name string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	instance, exists := e.collections[name]
	if !exists {
		return errors.NewCollectionNotFoundError(name)
	}
	delete(e.collections, name)
	instance.closeSessions()

	if err := e.kv.Delete(votes.KeyFor(name)); err != nil {
		logging.Warn().Err(err).Str("collection", name).Msg("Failed to delete persisted votes")
	}

	if e.dataDir != "" {
		collectionPath := filepath.Join(e.dataDir, name)
		if err := os.RemoveAll(collectionPath); err != nil {
			return fmt.Errorf("failed to delete collection data directory %s: %w", collectionPath, err)
		}
	}
	logging.Info().Str("collection", name).Msg("Collection deleted")
	return nil
}
