package filtering

import (
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/gcbaptista/go-facet-engine/config"
)

// ParseNumeric interprets a record value according to a numeric facet format.
// The second return value is false for missing or malformed values, which never match a range.
func ParseNumeric(value interface{}, format string) (float64, bool) {
	if format == config.NumericFormatStripped {
		if s, ok := value.(string); ok {
			return parseStripped(s)
		}
	}
	return convertToFloat64(value)
}

// parseStripped keeps only the digits of s ("€85M" -> 85).
func parseStripped(s string) (float64, bool) {
	digits := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, s)
	if digits == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(digits, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// convertToFloat64 converts various numeric types to float64
func convertToFloat64(val interface{}) (float64, bool) {
	switch v := val.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case string:
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f, true
		}
	}
	return 0, false
}

// convertToTime converts date strings to time.Time for ranking
func convertToTime(val interface{}) (time.Time, bool) {
	switch v := val.(type) {
	case time.Time:
		return v, true
	case string:
		formats := []string{
			time.RFC3339Nano,
			time.RFC3339,
			"2006-01-02T15:04:05",
			"2006-01-02",
		}
		for _, format := range formats {
			if t, err := time.Parse(format, v); err == nil {
				return t, true
			}
		}
	}
	return time.Time{}, false
}

// containsFold reports whether substr is within s, ignoring case.
func containsFold(s, lowerSubstr string) bool {
	return strings.Contains(strings.ToLower(s), lowerSubstr)
}
