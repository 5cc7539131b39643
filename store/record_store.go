package store

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"sync"

	"github.com/gcbaptista/go-facet-engine/internal/errors"
	"github.com/gcbaptista/go-facet-engine/model"
)

func init() {
	// Register common types that might appear in model.Record (map[string]interface{})
	// so Gob knows how to handle them when they are stored as interface{} values.
	gob.Register([]interface{}{})
	gob.Register(map[string]interface{}{})
	gob.Register([]string{})
}

// RecordStore keeps the records of a collection in insertion order.
// Order matters: filter results and suggestions follow it.
type RecordStore struct {
	Mu        sync.RWMutex
	Records   []model.Record
	Positions map[string]int // record id -> index in Records
}

// NewRecordStore returns an empty store.
func NewRecordStore() *RecordStore {
	return &RecordStore{
		Records:   make([]model.Record, 0),
		Positions: make(map[string]int),
	}
}

// Upsert adds records, replacing those whose id already exists in place.
// New ids are appended in input order. Either every record is applied or none is.
func (rs *RecordStore) Upsert(records []model.Record) (added, updated int, err error) {
	ids := make([]string, len(records))
	for i, record := range records {
		id, ok := record.GetRecordID()
		if !ok {
			return 0, 0, errors.NewValidationError(fmt.Sprintf("records[%d].%s", i, model.RecordIDField), "Record must have a non-empty 'id' field")
		}
		ids[i] = id
	}

	rs.Mu.Lock()
	defer rs.Mu.Unlock()

	for i, record := range records {
		if pos, exists := rs.Positions[ids[i]]; exists {
			rs.Records[pos] = record
			updated++
			continue
		}
		rs.Positions[ids[i]] = len(rs.Records)
		rs.Records = append(rs.Records, record)
		added++
	}
	return added, updated, nil
}

// Get returns a record by id.
func (rs *RecordStore) Get(id string) (model.Record, bool) {
	rs.Mu.RLock()
	defer rs.Mu.RUnlock()
	pos, ok := rs.Positions[id]
	if !ok {
		return nil, false
	}
	return rs.Records[pos], true
}

// Delete removes a record, keeping the order of the others. It reports whether the id existed.
func (rs *RecordStore) Delete(id string) bool {
	rs.Mu.Lock()
	defer rs.Mu.Unlock()
	pos, ok := rs.Positions[id]
	if !ok {
		return false
	}
	rs.Records = append(rs.Records[:pos], rs.Records[pos+1:]...)
	delete(rs.Positions, id)
	for i := pos; i < len(rs.Records); i++ {
		recordID, _ := rs.Records[i].GetRecordID()
		rs.Positions[recordID] = i
	}
	return true
}

// Clear removes every record.
func (rs *RecordStore) Clear() {
	rs.Mu.Lock()
	defer rs.Mu.Unlock()
	rs.Records = make([]model.Record, 0)
	rs.Positions = make(map[string]int)
}

// All returns the records in order. The slice is a copy; the records themselves are shared
// and must be treated as read-only.
func (rs *RecordStore) All() []model.Record {
	rs.Mu.RLock()
	defer rs.Mu.RUnlock()
	out := make([]model.Record, len(rs.Records))
	copy(out, rs.Records)
	return out
}

// Len returns the number of records.
func (rs *RecordStore) Len() int {
	rs.Mu.RLock()
	defer rs.Mu.RUnlock()
	return len(rs.Records)
}

// gobRecordStoreData is a helper struct for Gob encoding/decoding RecordStore data.
// It excludes the mutex; positions are rebuilt on decode.
type gobRecordStoreData struct {
	Records []model.Record
}

// GobEncode implements the gob.GobEncoder interface for RecordStore.
func (rs *RecordStore) GobEncode() ([]byte, error) {
	rs.Mu.RLock()
	defer rs.Mu.RUnlock()

	// JSON-decoded arrays arrive as []interface{}; store string-only arrays as []string
	storable := make([]model.Record, len(rs.Records))
	for i, record := range rs.Records {
		storableRecord := make(model.Record, len(record))
		for k, val := range record {
			storableRecord[k] = toStorableValue(val)
		}
		storable[i] = storableRecord
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(gobRecordStoreData{Records: storable}); err != nil {
		return nil, fmt.Errorf("failed to gob encode record store data: %w", err)
	}
	return buf.Bytes(), nil
}

// GobDecode implements the gob.GobDecoder interface for RecordStore.
func (rs *RecordStore) GobDecode(data []byte) error {
	decoded := gobRecordStoreData{}
	if err := gob.NewDecoder(bytes.NewBuffer(data)).Decode(&decoded); err != nil {
		return fmt.Errorf("failed to gob decode record store data: %w", err)
	}

	rs.Mu.Lock()
	defer rs.Mu.Unlock()

	rs.Records = decoded.Records
	if rs.Records == nil {
		rs.Records = make([]model.Record, 0)
	}
	rs.Positions = make(map[string]int, len(rs.Records))
	for i, record := range rs.Records {
		if id, ok := record.GetRecordID(); ok {
			rs.Positions[id] = i
		}
	}
	return nil
}

func toStorableValue(val interface{}) interface{} {
	interfaceSlice, ok := val.([]interface{})
	if !ok {
		return val
	}
	stringSlice := make([]string, 0, len(interfaceSlice))
	for _, item := range interfaceSlice {
		strItem, isString := item.(string)
		if !isString {
			return val
		}
		stringSlice = append(stringSlice, strItem)
	}
	return stringSlice
}
