package model

import "fmt"

// SuggestionKind tags which record field produced an autocomplete suggestion.
// The set of kinds is closed; configuration that names an unknown kind is rejected at validation time.
type SuggestionKind uint8

const (
	SuggestionKindUnknown SuggestionKind = iota
	SuggestionKindName
	SuggestionKindTeam
	SuggestionKindPosition
	SuggestionKindNationality
	SuggestionKindCategory
	SuggestionKindQuestion
	SuggestionKindKeyword
	SuggestionKindTitle
	SuggestionKindAuthor
)

var suggestionKindNames = map[SuggestionKind]string{
	SuggestionKindName:        "name",
	SuggestionKindTeam:        "team",
	SuggestionKindPosition:    "position",
	SuggestionKindNationality: "nationality",
	SuggestionKindCategory:    "category",
	SuggestionKindQuestion:    "question",
	SuggestionKindKeyword:     "keyword",
	SuggestionKindTitle:       "title",
	SuggestionKindAuthor:      "author",
}

// ParseSuggestionKind converts a configuration string into a SuggestionKind.
func ParseSuggestionKind(s string) (SuggestionKind, error) {
	for kind, name := range suggestionKindNames {
		if name == s {
			return kind, nil
		}
	}
	return SuggestionKindUnknown, fmt.Errorf("unknown suggestion kind '%s'", s)
}

func (k SuggestionKind) String() string {
	if name, ok := suggestionKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// MarshalText implements encoding.TextMarshaler.
func (k SuggestionKind) MarshalText() ([]byte, error) {
	if _, ok := suggestionKindNames[k]; !ok {
		return nil, fmt.Errorf("cannot marshal suggestion kind %d", uint8(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *SuggestionKind) UnmarshalText(text []byte) error {
	parsed, err := ParseSuggestionKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// SelectionAction describes what choosing a suggestion of a given kind does.
type SelectionAction int

const (
	// SelectionReplaceTerm replaces the search term with the suggestion value.
	SelectionReplaceTerm SelectionAction = iota
	// SelectionOpenRecord clears the search term and opens the record that produced the suggestion.
	SelectionOpenRecord
)

// Action returns the selection behavior of the kind.
func (k SuggestionKind) Action() SelectionAction {
	switch k {
	case SuggestionKindQuestion:
		return SelectionOpenRecord
	case SuggestionKindName, SuggestionKindTeam, SuggestionKindPosition, SuggestionKindNationality,
		SuggestionKindCategory, SuggestionKindKeyword, SuggestionKindTitle, SuggestionKindAuthor:
		return SelectionReplaceTerm
	default:
		return SelectionReplaceTerm
	}
}

// Suggestion is one autocomplete entry derived from a partial search term.
// It is regenerated on every keystroke and never persisted.
type Suggestion struct {
	Kind     SuggestionKind `json:"kind"`
	Label    string         `json:"label"`
	Value    string         `json:"value"`
	RecordID string         `json:"record_id,omitempty"` // set for kinds that open a record
}

// Selection is the outcome of choosing a suggestion.
type Selection struct {
	SearchTerm   string `json:"search_term"`
	OpenRecordID string `json:"open_record_id,omitempty"`
}
