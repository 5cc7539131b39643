// Package services declares the contracts between the HTTP layer and the engine.
package services

import (
	"github.com/gcbaptista/go-facet-engine/config"
	"github.com/gcbaptista/go-facet-engine/model"
)

// RecordManager defines operations for changing the records of a collection
type RecordManager interface {
	AddRecords(records []model.Record) (added, updated int, err error)
	DeleteRecord(recordID string) error
	DeleteAllRecords() error
}

// RecordReader defines read access to the records of a collection
type RecordReader interface {
	Records() []model.Record
	GetRecord(recordID string) (model.Record, error)
}

// Filterer defines stateless filtering, suggestion and summary operations
type Filterer interface {
	Filter(criteria model.FilterCriteria) (model.FilterResult, error)
	Suggest(term string) []model.Suggestion
	Facets() model.FacetSummary
}

// VoteRecorder defines helpful-vote tracking for collections that enable it
type VoteRecorder interface {
	Vote(recordID string, helpful bool) error
	Votes() (map[string]bool, model.VoteCounts, error)
}

// CollectionManager manages the lifecycle of collections
type CollectionManager interface {
	CreateCollection(settings config.CollectionSettings) error
	GetCollection(name string) (CollectionAccessor, error)
	GetCollectionSettings(name string) (config.CollectionSettings, error)
	UpdateCollectionSettings(name string, settings config.CollectionSettings) error
	DeleteCollection(name string) error
	ListCollections() []string
	PersistCollectionData(name string) error
}

// CollectionAccessor combines the per-collection operations
type CollectionAccessor interface {
	RecordManager
	RecordReader
	Filterer
	VoteRecorder
	Settings() config.CollectionSettings
	Stats() model.CollectionStats
}
