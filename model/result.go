package model

// FilterResult is the outcome of evaluating one FilterCriteria snapshot against a collection.
type FilterResult struct {
	Matched           []Record `json:"matched"`             // input order, unless a sort option was applied
	Total             int      `json:"total"`               // len(Matched)
	CandidateCount    int      `json:"candidate_count"`     // size of the record set that was filtered
	ActiveFilterCount int      `json:"active_filter_count"` // facets currently constraining the result
	QueryID           string   `json:"query_id"`
	TookMs            int64    `json:"took_ms"`
}

// Empty reports whether no record matched.
func (r FilterResult) Empty() bool {
	return r.Total == 0
}

// FacetValue is one distinct categorical value and the number of records carrying it.
type FacetValue struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// FacetSummary describes the values observed in a record set, used to populate filter controls.
type FacetSummary struct {
	Categorical map[string][]FacetValue `json:"categorical"`
	Numeric     map[string]Range        `json:"numeric"`
}
