// Package seed loads collections and their records from a JSON file and creates them on an engine.
package seed

import (
	"fmt"
	"os"

	"github.com/goccy/go-json"

	"github.com/gcbaptista/go-facet-engine/config"
	"github.com/gcbaptista/go-facet-engine/internal/logging"
	"github.com/gcbaptista/go-facet-engine/model"
	"github.com/gcbaptista/go-facet-engine/services"
)

// Collection is one seeded collection: its schema and its initial records.
type Collection struct {
	Settings config.CollectionSettings `json:"settings"`
	Records  []model.Record            `json:"records"`
}

// File is the on-disk seed layout.
type File struct {
	Collections []Collection `json:"collections"`
}

// Load reads and decodes a seed file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes seed file content.
func Parse(data []byte) (*File, error) {
	var file File
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode seed file: %w", err)
	}
	for i, collection := range file.Collections {
		if collection.Settings.Name == "" {
			return nil, fmt.Errorf("seed collection %d has no name", i)
		}
	}
	return &file, nil
}

// Apply creates every seeded collection that does not exist yet and loads its records.
// Existing collections are left untouched so restarts never overwrite edited data.
// It returns the names of the collections it created.
func Apply(manager services.CollectionManager, file *File) ([]string, error) {
	var created []string
	for _, collection := range file.Collections {
		name := collection.Settings.Name
		if _, err := manager.GetCollection(name); err == nil {
			logging.Debug().Str("collection", name).Msg("Seed collection already exists, skipping")
			continue
		}

		if err := manager.CreateCollection(collection.Settings); err != nil {
			return created, fmt.Errorf("create seed collection %s: %w", name, err)
		}
		created = append(created, name)

		if len(collection.Records) == 0 {
			continue
		}
		accessor, err := manager.GetCollection(name)
		if err != nil {
			return created, fmt.Errorf("get seed collection %s: %w", name, err)
		}
		if _, _, err := accessor.AddRecords(collection.Records); err != nil {
			return created, fmt.Errorf("add records to seed collection %s: %w", name, err)
		}
		logging.Info().Str("collection", name).Int("records", len(collection.Records)).Msg("Seeded collection")
	}
	return created, nil
}
