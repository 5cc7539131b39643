package model

// VoteCounts aggregates the helpful / not helpful votes recorded for a collection.
type VoteCounts struct {
	Helpful    int `json:"helpful"`
	NotHelpful int `json:"not_helpful"`
}

// CollectionStats represents statistics for a specific collection
type CollectionStats struct {
	CollectionName string       `json:"collection_name"`
	RecordCount    int          `json:"record_count"`
	SessionCount   int          `json:"session_count"`
	Votes          *VoteCounts  `json:"votes,omitempty"`
	Facets         FacetSummary `json:"facets"`
}
