// Package testing provides utilities and helpers for testing the facet engine.
package testing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gcbaptista/go-facet-engine/config"
	"github.com/gcbaptista/go-facet-engine/internal/engine"
	"github.com/gcbaptista/go-facet-engine/internal/fixtures"
	"github.com/gcbaptista/go-facet-engine/internal/kvstore"
	"github.com/gcbaptista/go-facet-engine/model"
	"github.com/gcbaptista/go-facet-engine/services"
)

// CreateTestEngine creates an engine persisting to a temporary directory with an in-memory KV store.
func CreateTestEngine(t *testing.T) *engine.Engine {
	t.Helper()
	eng := engine.NewEngine(t.TempDir(), kvstore.NewMemoryStore())
	t.Cleanup(eng.Close)
	return eng
}

// CreateCollection creates a collection and loads records into it.
func CreateCollection(t *testing.T, eng *engine.Engine, settings config.CollectionSettings, records []model.Record) *engine.CollectionInstance {
	t.Helper()
	require.NoError(t, eng.CreateCollection(settings), "Failed to create test collection")

	accessor, err := eng.GetCollection(settings.Name)
	require.NoError(t, err, "Failed to get collection accessor")

	if len(records) > 0 {
		added, _, err := accessor.AddRecords(records)
		require.NoError(t, err, "Failed to add test records")
		require.Equal(t, len(records), added)
	}

	instance, ok := accessor.(*engine.CollectionInstance)
	require.True(t, ok, "accessor should be a *engine.CollectionInstance")
	return instance
}

// CreateAthleteCollection creates the six-athlete portfolio collection.
func CreateAthleteCollection(t *testing.T, eng *engine.Engine) *engine.CollectionInstance {
	return CreateCollection(t, eng, *fixtures.AthleteSettings(), fixtures.Athletes())
}

// CreateFAQCollection creates the FAQ collection with votes enabled.
func CreateFAQCollection(t *testing.T, eng *engine.Engine) *engine.CollectionInstance {
	return CreateCollection(t, eng, *fixtures.FAQSettings(), fixtures.FAQs())
}

// RecordIDs returns the ids of records in order.
func RecordIDs(records []model.Record) []string {
	ids := make([]string, 0, len(records))
	for _, record := range records {
		id, _ := record.GetRecordID()
		ids = append(ids, id)
	}
	return ids
}

// FilterTestCase represents a test case for filter operations
type FilterTestCase struct {
	Name              string
	Criteria          model.FilterCriteria
	ExpectedIDs       []string
	ExpectedActive    int
	ExpectedErrorType error // checked with errors.Is when set
	ValidateFunc      func(t *testing.T, result model.FilterResult)
}

// RunFilterTests runs a suite of filter tests against a collection
func RunFilterTests(t *testing.T, accessor services.Filterer, tests []FilterTestCase) {
	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			result, err := accessor.Filter(tt.Criteria)
			if tt.ExpectedErrorType != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.ExpectedErrorType)
				return
			}
			require.NoError(t, err, "Filter should not fail")

			assert.Equal(t, tt.ExpectedIDs, RecordIDs(result.Matched), "Matched ids should match")
			assert.Equal(t, len(tt.ExpectedIDs), result.Total, "Total should match")
			assert.Equal(t, tt.ExpectedActive, result.ActiveFilterCount, "Active filter count should match")

			if tt.ValidateFunc != nil {
				tt.ValidateFunc(t, result)
			}
		})
	}
}
