package model

import (
	"strconv"
	"strings"
)

// RecordIDField is the key under which every record carries its identifier.
const RecordIDField = "id"

// Record is a flexible map representing one candidate in a collection (an athlete, an FAQ entry, an article).
// The id is the only required field; the other keys are interpreted through the collection's facet schema.
// Example: rec["team"], rec["age"], rec["marketValue"]
type Record map[string]interface{}

// GetRecordID returns the record identifier as a string.
// Numeric identifiers (JSON numbers decode as float64) are formatted without a fractional part.
func (r Record) GetRecordID() (string, bool) {
	raw, ok := r[RecordIDField]
	if !ok {
		return "", false
	}
	switch v := raw.(type) {
	case string:
		if strings.TrimSpace(v) == "" {
			return "", false
		}
		return v, true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32), true
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case int32:
		return strconv.FormatInt(int64(v), 10), true
	case uint32:
		return strconv.FormatUint(uint64(v), 10), true
	case uint64:
		return strconv.FormatUint(v, 10), true
	}
	return "", false
}

// StringValues returns the string values held by a field.
// A plain string yields one value, a string array yields each element, anything else yields nothing.
func (r Record) StringValues(field string) []string {
	raw, ok := r[field]
	if !ok {
		return nil
	}
	switch v := raw.(type) {
	case string:
		return []string{v}
	case []string:
		return v
	case []interface{}:
		values := make([]string, 0, len(v))
		for _, item := range v {
			if s, isStr := item.(string); isStr {
				values = append(values, s)
			}
		}
		return values
	}
	return nil
}
