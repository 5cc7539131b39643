package store

import (
	"bytes"
	"encoding/gob"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	internalErrors "github.com/gcbaptista/go-facet-engine/internal/errors"
	"github.com/gcbaptista/go-facet-engine/model"
)

func ids(records []model.Record) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		id, _ := r.GetRecordID()
		out = append(out, id)
	}
	return out
}

func TestUpsertPreservesOrder(t *testing.T) {
	rs := NewRecordStore()

	added, updated, err := rs.Upsert([]model.Record{
		{"id": "1", "name": "Carlos Rodriguez"},
		{"id": "2", "name": "João Silva"},
		{"id": 3.0, "name": "Marcus Johnson"},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, added)
	assert.Equal(t, 0, updated)

	added, updated, err = rs.Upsert([]model.Record{
		{"id": "2", "name": "João Silva", "team": "Barcelona"},
		{"id": "4", "name": "Alessandro Rossi"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, added)
	assert.Equal(t, 1, updated)

	assert.Equal(t, []string{"1", "2", "3", "4"}, ids(rs.All()))
	record, ok := rs.Get("2")
	require.True(t, ok)
	assert.Equal(t, "Barcelona", record["team"])
}

func TestUpsertRejectsMissingIDAtomically(t *testing.T) {
	rs := NewRecordStore()
	_, _, err := rs.Upsert([]model.Record{{"id": "1"}, {"name": "no id"}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, internalErrors.ErrInvalidInput))
	assert.Equal(t, 0, rs.Len())
}

func TestDelete(t *testing.T) {
	rs := NewRecordStore()
	_, _, err := rs.Upsert([]model.Record{{"id": "1"}, {"id": "2"}, {"id": "3"}})
	require.NoError(t, err)

	assert.True(t, rs.Delete("2"))
	assert.False(t, rs.Delete("2"))
	assert.Equal(t, []string{"1", "3"}, ids(rs.All()))

	record, ok := rs.Get("3")
	require.True(t, ok)
	assert.Equal(t, "3", record["id"])

	rs.Clear()
	assert.Equal(t, 0, rs.Len())
}

func TestGobRoundTrip(t *testing.T) {
	rs := NewRecordStore()
	_, _, err := rs.Upsert([]model.Record{
		{"id": "1", "keywords": []interface{}{"join", "apply"}, "popularity": 95.0},
		{"id": "2", "keywords": []interface{}{"fee", 5.0}},
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, gob.NewEncoder(&buf).Encode(rs))

	decoded := &RecordStore{}
	require.NoError(t, gob.NewDecoder(&buf).Decode(decoded))

	assert.Equal(t, []string{"1", "2"}, ids(decoded.All()))
	first, ok := decoded.Get("1")
	require.True(t, ok)
	assert.Equal(t, []string{"join", "apply"}, first["keywords"])
	assert.Equal(t, 95.0, first["popularity"])

	second, _ := decoded.Get("2")
	assert.Equal(t, []interface{}{"fee", 5.0}, second["keywords"])
}
