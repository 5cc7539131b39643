package filtering

import (
	"sort"

	"github.com/gcbaptista/go-facet-engine/config"
	"github.com/gcbaptista/go-facet-engine/model"
)

// Summarize collects the distinct categorical values (with counts, sorted alphabetically)
// and the observed numeric domains of a record set.
func (e *Evaluator) Summarize(records []model.Record) model.FacetSummary {
	summary := model.FacetSummary{
		Categorical: make(map[string][]model.FacetValue, len(e.settings.CategoricalFacets)),
		Numeric:     make(map[string]model.Range, len(e.settings.NumericFacets)),
	}

	for _, facet := range e.settings.CategoricalFacets {
		counts := make(map[string]int)
		for _, record := range records {
			for _, value := range record.StringValues(facet) {
				counts[value]++
			}
		}
		values := make([]model.FacetValue, 0, len(counts))
		for value, count := range counts {
			values = append(values, model.FacetValue{Value: value, Count: count})
		}
		sort.Slice(values, func(i, j int) bool { return values[i].Value < values[j].Value })
		summary.Categorical[facet] = values
	}

	for _, facet := range e.settings.NumericFacets {
		if r, ok := ObservedDomain(records, facet); ok {
			summary.Numeric[facet.Field] = r
		}
	}
	return summary
}

// ObservedDomain returns the min and max parseable value of a numeric facet.
// It reports false when no record carries a parseable value.
func ObservedDomain(records []model.Record, facet config.NumericFacet) (model.Range, bool) {
	var (
		r     model.Range
		found bool
	)
	for _, record := range records {
		value, ok := ParseNumeric(record[facet.Field], facet.Format)
		if !ok {
			continue
		}
		if !found {
			r = model.Range{Min: value, Max: value}
			found = true
			continue
		}
		if value < r.Min {
			r.Min = value
		}
		if value > r.Max {
			r.Max = value
		}
	}
	return r, found
}
