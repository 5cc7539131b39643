// Package config provides configuration structures for the facet engine.
// It defines collection schemas (facets, suggestion sources, sort options, presets)
// and the layered service configuration.
package config

import (
	"fmt"
	"strings"

	"github.com/gcbaptista/go-facet-engine/model"
)

// Numeric facet value formats.
const (
	// NumericFormatNumber accepts native numbers and plain numeric strings ("24", "8.5").
	NumericFormatNumber = "number"
	// NumericFormatStripped removes every non-digit character from a string before parsing ("€85M" -> 85).
	NumericFormatStripped = "stripped"
)

// Default suggestion behavior, matching the athlete portfolio search box.
const (
	DefaultSuggestionLimit         = 6
	DefaultMinSuggestionTermLength = 1
)

// RankingCriterion defines a single field and direction to use for ordering filter results.
type RankingCriterion struct {
	Field string `json:"field"` // Field name to rank by (e.g., "popularity", "lastUpdated", "question")
	Order string `json:"order"` // Sort order: "asc" for ascending, "desc" for descending
}

// SortOption is a named, ordered list of ranking criteria selectable by the user (e.g. "popular", "recent").
type SortOption struct {
	Name     string             `json:"name"`
	Criteria []RankingCriterion `json:"criteria"`
}

// NumericFacet describes a facet compared by inclusive range containment.
type NumericFacet struct {
	Field  string       `json:"field"`
	Format string       `json:"format,omitempty"` // "number" (default) or "stripped"
	Domain *model.Range `json:"domain,omitempty"` // Fixed default range; when nil the observed min/max of the records is used
}

// SuggestionSource designates a record field that feeds autocomplete suggestions.
type SuggestionSource struct {
	Field       string `json:"field"`
	Kind        string `json:"kind"`                   // One of the model.SuggestionKind names
	LabelPrefix string `json:"label_prefix,omitempty"` // e.g. "Player: " -> "Player: Carlos Rodriguez"
}

// Preset is a named criteria overlay applied on top of the defaults.
type Preset struct {
	Name     string               `json:"name"`
	Criteria model.FilterCriteria `json:"criteria"`
}

// CollectionSettings contains the facet schema of one collection.
// It replaces hand-written predicate chains: every filter, suggestion and sort the engine
// performs on the collection is derived from these descriptors.
type CollectionSettings struct {
	Name                    string             `json:"name"`                        // Unique name for the collection
	CategoricalFacets       []string           `json:"categorical_facets"`          // Fields compared by set membership (e.g., ["position", "nationality", "team"])
	NumericFacets           []NumericFacet     `json:"numeric_facets"`              // Fields compared by inclusive range (e.g., age, marketValue)
	SearchableFields        []string           `json:"searchable_fields"`           // Free-text fields OR'd by the search term predicate
	SuggestionSources       []SuggestionSource `json:"suggestion_sources"`          // Scanned in order to build autocomplete suggestions
	SuggestionLimit         int                `json:"suggestion_limit"`            // Maximum number of suggestions returned (e.g., 6)
	MinSuggestionTermLength int                `json:"min_suggestion_term_length"`  // Minimum term length before suggestions are generated (> 0)
	SortOptions             []SortOption       `json:"sort_options"`                // Named orderings selectable by sessions
	DefaultSort             string             `json:"default_sort,omitempty"`      // Sort applied when criteria are reset; empty keeps input order
	Presets                 []Preset           `json:"presets,omitempty"`           // Named criteria overlays
	EnableVotes             bool               `json:"enable_votes"`                // Track helpful votes for this collection's records
}

// NumericFacet returns the descriptor of a numeric facet by field name.
func (settings *CollectionSettings) NumericFacet(field string) (NumericFacet, bool) {
	for _, facet := range settings.NumericFacets {
		if facet.Field == field {
			return facet, true
		}
	}
	return NumericFacet{}, false
}

// HasCategoricalFacet reports whether field is a categorical facet.
func (settings *CollectionSettings) HasCategoricalFacet(field string) bool {
	for _, facet := range settings.CategoricalFacets {
		if facet == field {
			return true
		}
	}
	return false
}

// SortOption returns a sort option by name.
func (settings *CollectionSettings) SortOption(name string) (SortOption, bool) {
	for _, option := range settings.SortOptions {
		if option.Name == name {
			return option, true
		}
	}
	return SortOption{}, false
}

// Preset returns a preset by name.
func (settings *CollectionSettings) Preset(name string) (Preset, bool) {
	for _, preset := range settings.Presets {
		if preset.Name == name {
			return preset, true
		}
	}
	return Preset{}, false
}

// ValidateFieldNames validates field names and cross references within the schema.
// It returns every conflict found rather than stopping at the first one.
func (settings *CollectionSettings) ValidateFieldNames() []string {
	var conflicts []string

	numericFields := make([]string, 0, len(settings.NumericFacets))
	for _, facet := range settings.NumericFacets {
		numericFields = append(numericFields, facet.Field)
	}

	// Check for duplicate field names within each category
	conflicts = append(conflicts, checkDuplicates("categorical_facets", settings.CategoricalFacets)...)
	conflicts = append(conflicts, checkDuplicates("numeric_facets", numericFields)...)
	conflicts = append(conflicts, checkDuplicates("searchable_fields", settings.SearchableFields)...)

	// A field is either categorical or numeric, never both
	categoricalSet := make(map[string]bool)
	for _, field := range settings.CategoricalFacets {
		categoricalSet[field] = true
	}
	for _, field := range numericFields {
		if categoricalSet[field] {
			conflicts = append(conflicts, "Field '"+field+"' cannot be both a categorical and a numeric facet")
		}
	}

	conflicts = append(conflicts, settings.validateNumericFacets()...)
	conflicts = append(conflicts, settings.validateSuggestionSources()...)
	conflicts = append(conflicts, settings.validateSortOptions()...)
	conflicts = append(conflicts, settings.validatePresets()...)

	// Basic field name validation (empty names, etc.)
	allFields := make([]string, 0)
	allFields = append(allFields, settings.CategoricalFacets...)
	allFields = append(allFields, numericFields...)
	allFields = append(allFields, settings.SearchableFields...)
	for _, source := range settings.SuggestionSources {
		allFields = append(allFields, source.Field)
	}

	for _, field := range allFields {
		if strings.TrimSpace(field) == "" {
			conflicts = append(conflicts, "Field name cannot be empty or whitespace-only")
		}
	}

	if settings.SuggestionLimit < 0 {
		conflicts = append(conflicts, "suggestion_limit cannot be negative")
	}
	if settings.MinSuggestionTermLength < 0 {
		conflicts = append(conflicts, "min_suggestion_term_length cannot be negative")
	}

	return conflicts
}

// checkDuplicates checks for duplicate values in a slice and returns error messages
func checkDuplicates(fieldName string, fields []string) []string {
	var errors []string
	seen := make(map[string]bool)

	for _, field := range fields {
		if seen[field] {
			errors = append(errors, "Duplicate field '"+field+"' found in "+fieldName)
		}
		seen[field] = true
	}

	return errors
}

func (settings *CollectionSettings) validateNumericFacets() []string {
	var errors []string
	for _, facet := range settings.NumericFacets {
		switch facet.Format {
		case "", NumericFormatNumber, NumericFormatStripped:
		default:
			errors = append(errors, "Invalid format '"+facet.Format+"' for numeric facet '"+facet.Field+"' (must be 'number' or 'stripped')")
		}
		if facet.Domain != nil && !facet.Domain.Valid() {
			errors = append(errors, fmt.Sprintf("Domain of numeric facet '%s' has min %g greater than max %g", facet.Field, facet.Domain.Min, facet.Domain.Max))
		}
	}
	return errors
}

func (settings *CollectionSettings) validateSuggestionSources() []string {
	var errors []string
	seen := make(map[string]bool)
	for _, source := range settings.SuggestionSources {
		if _, err := model.ParseSuggestionKind(source.Kind); err != nil {
			errors = append(errors, "Invalid kind '"+source.Kind+"' for suggestion source '"+source.Field+"'")
		}
		key := source.Field + "|" + source.Kind
		if seen[key] {
			errors = append(errors, "Duplicate suggestion source '"+source.Field+"' with kind '"+source.Kind+"'")
		}
		seen[key] = true
	}
	return errors
}

func (settings *CollectionSettings) validateSortOptions() []string {
	var errors []string
	names := make([]string, 0, len(settings.SortOptions))
	for _, option := range settings.SortOptions {
		names = append(names, option.Name)
		if strings.TrimSpace(option.Name) == "" {
			errors = append(errors, "Sort option name cannot be empty")
		}
		for _, criterion := range option.Criteria {
			if criterion.Order != "asc" && criterion.Order != "desc" {
				errors = append(errors, "Invalid order '"+criterion.Order+"' for field '"+criterion.Field+"' in sort option '"+option.Name+"' (must be 'asc' or 'desc')")
			}
		}
	}
	errors = append(errors, checkDuplicates("sort_options", names)...)

	if settings.DefaultSort != "" {
		if _, ok := settings.SortOption(settings.DefaultSort); !ok {
			errors = append(errors, "default_sort '"+settings.DefaultSort+"' is not a configured sort option")
		}
	}
	return errors
}

func (settings *CollectionSettings) validatePresets() []string {
	var errors []string
	names := make([]string, 0, len(settings.Presets))
	for _, preset := range settings.Presets {
		names = append(names, preset.Name)
		for facet := range preset.Criteria.Categories {
			if !settings.HasCategoricalFacet(facet) {
				errors = append(errors, "Preset '"+preset.Name+"' references unknown categorical facet '"+facet+"'")
			}
		}
		for facet, r := range preset.Criteria.Ranges {
			if _, ok := settings.NumericFacet(facet); !ok {
				errors = append(errors, "Preset '"+preset.Name+"' references unknown numeric facet '"+facet+"'")
			}
			if !r.Valid() {
				errors = append(errors, fmt.Sprintf("Preset '%s' has min %g greater than max %g for facet '%s'", preset.Name, r.Min, r.Max, facet))
			}
		}
		if preset.Criteria.SortBy != "" {
			if _, ok := settings.SortOption(preset.Criteria.SortBy); !ok {
				errors = append(errors, "Preset '"+preset.Name+"' references unknown sort option '"+preset.Criteria.SortBy+"'")
			}
		}
	}
	errors = append(errors, checkDuplicates("presets", names)...)
	return errors
}

// ApplyDefaults applies default values to the collection settings
func (settings *CollectionSettings) ApplyDefaults() {
	if settings.SuggestionLimit == 0 {
		settings.SuggestionLimit = DefaultSuggestionLimit
	}
	// An empty box must never produce suggestions
	if settings.MinSuggestionTermLength <= 0 {
		settings.MinSuggestionTermLength = DefaultMinSuggestionTermLength
	}

	for i := range settings.NumericFacets {
		if settings.NumericFacets[i].Format == "" {
			settings.NumericFacets[i].Format = NumericFormatNumber
		}
	}

	// Initialize empty slices if nil to prevent nil pointer issues
	if settings.CategoricalFacets == nil {
		settings.CategoricalFacets = []string{}
	}
	if settings.NumericFacets == nil {
		settings.NumericFacets = []NumericFacet{}
	}
	if settings.SearchableFields == nil {
		settings.SearchableFields = []string{}
	}
	if settings.SuggestionSources == nil {
		settings.SuggestionSources = []SuggestionSource{}
	}
	if settings.SortOptions == nil {
		settings.SortOptions = []SortOption{}
	}
	if settings.Presets == nil {
		settings.Presets = []Preset{}
	}
}
