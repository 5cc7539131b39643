package filtering

import (
	"sort"
	"strings"

	"github.com/gcbaptista/go-facet-engine/config"
	"github.com/gcbaptista/go-facet-engine/model"
)

// sortRecords orders records in place by the ranking criteria.
// The sort is stable so records with equal keys keep their input order.
// Records missing a ranking field sort after those that have it, whatever the order.
func sortRecords(records []model.Record, criteria []config.RankingCriterion) {
	if len(criteria) == 0 {
		return
	}
	sort.SliceStable(records, func(i, j int) bool {
		for _, criterion := range criteria {
			valI, okI := records[i][criterion.Field]
			valJ, okJ := records[j][criterion.Field]

			if !okI && !okJ {
				continue
			}
			if okI && !okJ {
				return true
			}
			if !okI && okJ {
				return false
			}

			cmp := compareValues(valI, valJ)
			if cmp == 0 {
				continue
			}
			if criterion.Order == "desc" {
				return cmp > 0
			}
			return cmp < 0
		}
		return false
	})
}

// compareValues compares two field values as numbers, then dates, then case-insensitive strings.
// Values of incomparable types compare equal.
func compareValues(a, b interface{}) int {
	if fa, okA := convertToFloat64(a); okA {
		if fb, okB := convertToFloat64(b); okB {
			switch {
			case fa < fb:
				return -1
			case fa > fb:
				return 1
			}
			return 0
		}
	}

	if ta, okA := convertToTime(a); okA {
		if tb, okB := convertToTime(b); okB {
			return ta.Compare(tb)
		}
	}

	sa, okA := a.(string)
	sb, okB := b.(string)
	if okA && okB {
		return strings.Compare(strings.ToLower(sa), strings.ToLower(sb))
	}
	return 0
}
