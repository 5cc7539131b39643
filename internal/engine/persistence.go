package engine

import (
	stdErrors "errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gcbaptista/go-facet-engine/config"
	"github.com/gcbaptista/go-facet-engine/internal/logging"
	"github.com/gcbaptista/go-facet-engine/internal/persistence"
	"github.com/gcbaptista/go-facet-engine/store"
)

const (
	dataDirPerm     = 0755
	settingsFile    = "settings.gob"
	recordStoreFile = "records.gob"
)

// loadCollectionsFromDisk loads every collection directory under the data directory.
// Unreadable collections are skipped with a warning.
func (e *Engine) loadCollectionsFromDisk() {
	logging.Info().Str("data_dir", e.dataDir).Msg("Loading collections from disk")

	items, err := os.ReadDir(e.dataDir)
	if err != nil {
		logging.Warn().Err(err).Str("data_dir", e.dataDir).Msg("Failed to read data directory, no collections loaded")
		return
	}

	for _, item := range items {
		if !item.IsDir() {
			continue
		}
		name := item.Name()
		collectionPath := filepath.Join(e.dataDir, name)

		var settings config.CollectionSettings
		settingsPath := filepath.Join(collectionPath, settingsFile)
		if err := persistence.LoadGob(settingsPath, &settings); err != nil {
			logging.Warn().Err(err).Str("collection", name).Str("path", settingsPath).Msg("Failed to load settings, skipping collection")
			continue
		}

		// Settings name must match the directory name
		if settings.Name != name {
			logging.Warn().Str("collection", name).Str("settings_name", settings.Name).Msg("Collection name in settings does not match directory name, skipping collection")
			continue
		}
		settings.ApplyDefaults()

		records := store.NewRecordStore()
		recordsPath := filepath.Join(collectionPath, recordStoreFile)
		if err := persistence.LoadGob(recordsPath, records); err != nil {
			if stdErrors.Is(err, os.ErrNotExist) {
				logging.Info().Str("collection", name).Msg("Record store file not found, initializing empty store")
			} else {
				logging.Warn().Err(err).Str("collection", name).Str("path", recordsPath).Msg("Failed to load record store, proceeding with empty store")
			}
			records = store.NewRecordStore()
		}

		e.collections[name] = newCollectionInstance(settings, records, e.kv, e.persister(name))
		logging.Info().Str("collection", name).Int("records", records.Len()).Msg("Loaded collection")
	}
}

// PersistCollectionData saves the settings and records of a collection.
func (e *Engine) PersistCollectionData(name string) error {
	instance, err := e.instance(name)
	if err != nil {
		return err
	}
	return e.persistCollection(name, instance.Settings(), instance.records)
}

// persister returns the save hook a collection calls after its records change.
func (e *Engine) persister(name string) func(*store.RecordStore) error {
	return func(records *store.RecordStore) error {
		if e.dataDir == "" {
			return nil
		}
		if err := persistence.SaveGob(filepath.Join(e.dataDir, name, recordStoreFile), records); err != nil {
			return fmt.Errorf("failed to save record store for %s: %w", name, err)
		}
		return nil
	}
}

// persistCollection writes both files of a collection. It is a no-op without a data directory.
func (e *Engine) persistCollection(name string, settings config.CollectionSettings, records *store.RecordStore) error {
	if e.dataDir == "" {
		return nil
	}
	collectionPath := filepath.Join(e.dataDir, name)
	if err := os.MkdirAll(collectionPath, dataDirPerm); err != nil {
		return fmt.Errorf("failed to create directory for collection %s: %w", name, err)
	}
	if err := persistence.SaveGob(filepath.Join(collectionPath, settingsFile), settings); err != nil {
		return fmt.Errorf("failed to save settings for collection %s: %w", name, err)
	}
	if err := persistence.SaveGob(filepath.Join(collectionPath, recordStoreFile), records); err != nil {
		return fmt.Errorf("failed to save record store for %s: %w", name, err)
	}
	return nil
}
