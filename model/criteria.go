package model

// Range is an inclusive numeric interval.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Valid reports whether the bounds are ordered.
func (r Range) Valid() bool {
	return r.Min <= r.Max
}

// Contains reports whether v lies within [Min, Max].
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// FilterCriteria is the complete filter selection of a session.
// It is treated as an immutable snapshot: edits produce a new value rather than mutating a shared one.
type FilterCriteria struct {
	Categories map[string][]string `json:"categories,omitempty"` // facet -> selected values; empty means unconstrained
	Ranges     map[string]Range    `json:"ranges,omitempty"`     // facet -> inclusive bounds
	SearchTerm string              `json:"search_term"`          // case-insensitive substring, matched verbatim (no trimming)
	SortBy     string              `json:"sort_by,omitempty"`    // name of a configured sort option; empty keeps input order
}

// Clone returns a deep copy of the criteria.
func (c FilterCriteria) Clone() FilterCriteria {
	out := FilterCriteria{
		Categories: make(map[string][]string, len(c.Categories)),
		Ranges:     make(map[string]Range, len(c.Ranges)),
		SearchTerm: c.SearchTerm,
		SortBy:     c.SortBy,
	}
	for facet, values := range c.Categories {
		copied := make([]string, len(values))
		copy(copied, values)
		out.Categories[facet] = copied
	}
	for facet, r := range c.Ranges {
		out.Ranges[facet] = r
	}
	return out
}
