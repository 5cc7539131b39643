package config

import (
	"testing"

	"github.com/gcbaptista/go-facet-engine/model"
)

func athleteSettings() CollectionSettings {
	return CollectionSettings{
		Name:              "athletes",
		CategoricalFacets: []string{"position", "nationality", "team"},
		NumericFacets: []NumericFacet{
			{Field: "age"},
			{Field: "marketValue", Format: NumericFormatStripped},
			{Field: "performance", Domain: &model.Range{Min: 0, Max: 100}},
		},
		SearchableFields: []string{"name", "team", "position", "nationality"},
		SuggestionSources: []SuggestionSource{
			{Field: "name", Kind: "name", LabelPrefix: "Player: "},
			{Field: "team", Kind: "team", LabelPrefix: "Team: "},
			{Field: "position", Kind: "position", LabelPrefix: "Position: "},
		},
		SortOptions: []SortOption{
			{Name: "rank", Criteria: []RankingCriterion{{Field: "rank", Order: "asc"}}},
		},
		Presets: []Preset{
			{Name: "Young Talents", Criteria: model.FilterCriteria{Ranges: map[string]model.Range{"age": {Min: 18, Max: 23}}}},
		},
	}
}

func TestValidateFieldNames(t *testing.T) {
	tests := []struct {
		name           string
		mutate         func(s *CollectionSettings)
		expectedErrors int
		description    string
	}{
		{
			name:           "valid athlete schema",
			mutate:         func(s *CollectionSettings) {},
			expectedErrors: 0,
			description:    "The athlete portfolio schema should validate cleanly",
		},
		{
			name: "duplicate categorical facet",
			mutate: func(s *CollectionSettings) {
				s.CategoricalFacets = append(s.CategoricalFacets, "team")
			},
			expectedErrors: 1,
			description:    "Duplicates inside one facet list are reported",
		},
		{
			name: "field both categorical and numeric",
			mutate: func(s *CollectionSettings) {
				s.CategoricalFacets = append(s.CategoricalFacets, "age")
			},
			expectedErrors: 1,
			description:    "A field cannot be compared both by membership and by range",
		},
		{
			name: "unknown suggestion kind",
			mutate: func(s *CollectionSettings) {
				s.SuggestionSources = append(s.SuggestionSources, SuggestionSource{Field: "club", Kind: "club"})
			},
			expectedErrors: 1,
			description:    "Suggestion kinds are a closed set",
		},
		{
			name: "invalid numeric format",
			mutate: func(s *CollectionSettings) {
				s.NumericFacets[0].Format = "currency"
			},
			expectedErrors: 1,
			description:    "Only number and stripped formats are supported",
		},
		{
			name: "inverted domain",
			mutate: func(s *CollectionSettings) {
				s.NumericFacets[2].Domain = &model.Range{Min: 100, Max: 0}
			},
			expectedErrors: 1,
			description:    "Fixed domains must satisfy min <= max",
		},
		{
			name: "invalid sort order",
			mutate: func(s *CollectionSettings) {
				s.SortOptions[0].Criteria[0].Order = "up"
			},
			expectedErrors: 1,
			description:    "Sort orders are asc or desc",
		},
		{
			name: "default sort must exist",
			mutate: func(s *CollectionSettings) {
				s.DefaultSort = "popular"
			},
			expectedErrors: 1,
			description:    "default_sort references a sort option",
		},
		{
			name: "preset referencing unknown facet",
			mutate: func(s *CollectionSettings) {
				s.Presets = append(s.Presets, Preset{
					Name:     "Tall",
					Criteria: model.FilterCriteria{Ranges: map[string]model.Range{"height": {Min: 180, Max: 200}}},
				})
			},
			expectedErrors: 1,
			description:    "Presets may only constrain configured facets",
		},
		{
			name: "empty searchable field name",
			mutate: func(s *CollectionSettings) {
				s.SearchableFields = append(s.SearchableFields, "  ")
			},
			expectedErrors: 1,
			description:    "Whitespace-only names are rejected",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := athleteSettings()
			tt.mutate(&settings)
			settings.ApplyDefaults()

			errors := settings.ValidateFieldNames()

			if len(errors) != tt.expectedErrors {
				t.Errorf("Expected %d errors, got %d. Errors: %v", tt.expectedErrors, len(errors), errors)
				t.Logf("Description: %s", tt.description)
			}
		})
	}
}

func TestApplyDefaults(t *testing.T) {
	settings := CollectionSettings{
		Name:          "faq",
		NumericFacets: []NumericFacet{{Field: "popularity"}},
	}
	settings.ApplyDefaults()

	if settings.SuggestionLimit != DefaultSuggestionLimit {
		t.Errorf("Expected suggestion limit %d, got %d", DefaultSuggestionLimit, settings.SuggestionLimit)
	}
	if settings.MinSuggestionTermLength != DefaultMinSuggestionTermLength {
		t.Errorf("Expected min term length %d, got %d", DefaultMinSuggestionTermLength, settings.MinSuggestionTermLength)
	}
	if settings.NumericFacets[0].Format != NumericFormatNumber {
		t.Errorf("Expected default numeric format, got '%s'", settings.NumericFacets[0].Format)
	}
	if settings.CategoricalFacets == nil || settings.SearchableFields == nil || settings.SortOptions == nil {
		t.Error("Expected nil slices to be initialized")
	}

	custom := CollectionSettings{Name: "faq", SuggestionLimit: 5, MinSuggestionTermLength: 2}
	custom.ApplyDefaults()
	if custom.SuggestionLimit != 5 || custom.MinSuggestionTermLength != 2 {
		t.Errorf("Explicit values must be kept, got limit=%d min=%d", custom.SuggestionLimit, custom.MinSuggestionTermLength)
	}
}

func TestSchemaLookups(t *testing.T) {
	settings := athleteSettings()

	if facet, ok := settings.NumericFacet("marketValue"); !ok || facet.Format != NumericFormatStripped {
		t.Errorf("Expected stripped marketValue facet, got %+v (found=%v)", facet, ok)
	}
	if _, ok := settings.NumericFacet("team"); ok {
		t.Error("team is categorical, not numeric")
	}
	if !settings.HasCategoricalFacet("nationality") {
		t.Error("Expected nationality to be categorical")
	}
	if _, ok := settings.SortOption("rank"); !ok {
		t.Error("Expected rank sort option")
	}
	if _, ok := settings.Preset("Young Talents"); !ok {
		t.Error("Expected Young Talents preset")
	}
}
