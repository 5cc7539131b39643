// Package suggest builds autocomplete suggestions from a collection's suggestion sources
// and tracks the visibility of the suggestion dropdown.
package suggest

import (
	"strings"
	"unicode/utf8"

	"github.com/gcbaptista/go-facet-engine/config"
	"github.com/gcbaptista/go-facet-engine/model"
)

type source struct {
	field  string
	kind   model.SuggestionKind
	prefix string
}

// Generator produces suggestions for a search term. It is stateless and safe for concurrent use.
type Generator struct {
	sources   []source
	limit     int
	minLength int
}

// NewGenerator compiles the suggestion sources of a schema.
// Sources with an unknown kind are skipped; ValidateFieldNames reports them.
func NewGenerator(settings *config.CollectionSettings) *Generator {
	g := &Generator{
		limit:     settings.SuggestionLimit,
		minLength: settings.MinSuggestionTermLength,
	}
	if g.limit <= 0 {
		g.limit = config.DefaultSuggestionLimit
	}
	if g.minLength <= 0 {
		g.minLength = config.DefaultMinSuggestionTermLength
	}
	for _, s := range settings.SuggestionSources {
		kind, err := model.ParseSuggestionKind(s.Kind)
		if err != nil {
			continue
		}
		g.sources = append(g.sources, source{field: s.Field, kind: kind, prefix: s.LabelPrefix})
	}
	return g
}

// Generate returns at most the configured number of suggestions whose value contains term,
// ignoring case. Sources are scanned in configuration order and records in input order, so
// the first match found is the first shown. A (kind, value) pair appears at most once.
func (g *Generator) Generate(term string, records []model.Record) []model.Suggestion {
	suggestions := make([]model.Suggestion, 0, g.limit)
	if term == "" || utf8.RuneCountInString(term) < g.minLength {
		return suggestions
	}

	lowerTerm := strings.ToLower(term)
	type key struct {
		kind  model.SuggestionKind
		value string
	}
	seen := make(map[key]bool)

	for _, src := range g.sources {
		for _, record := range records {
			for _, value := range record.StringValues(src.field) {
				if !strings.Contains(strings.ToLower(value), lowerTerm) {
					continue
				}
				k := key{kind: src.kind, value: value}
				if seen[k] {
					continue
				}
				seen[k] = true

				suggestion := model.Suggestion{
					Kind:  src.kind,
					Label: src.prefix + value,
					Value: value,
				}
				if src.kind.Action() == model.SelectionOpenRecord {
					suggestion.RecordID, _ = record.GetRecordID()
				}
				suggestions = append(suggestions, suggestion)
				if len(suggestions) == g.limit {
					return suggestions
				}
			}
		}
	}
	return suggestions
}
