package filtering

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	internalErrors "github.com/gcbaptista/go-facet-engine/internal/errors"
	"github.com/gcbaptista/go-facet-engine/internal/fixtures"
	"github.com/gcbaptista/go-facet-engine/model"
)

func names(records []model.Record) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r["name"].(string))
	}
	return out
}

func questionIDs(records []model.Record) []int {
	out := make([]int, 0, len(records))
	for _, r := range records {
		out = append(out, r["id"].(int))
	}
	return out
}

func TestFilter_AthleteScenarios(t *testing.T) {
	evaluator := NewEvaluator(fixtures.AthleteSettings())
	athletes := fixtures.Athletes()

	tests := []struct {
		name     string
		criteria model.FilterCriteria
		want     []string
	}{
		{
			name:     "no criteria returns everything in input order",
			criteria: model.FilterCriteria{},
			want:     []string{"Carlos Rodriguez", "João Silva", "Marcus Johnson", "Alessandro Rossi", "Maria Gonzalez", "Diego Martinez"},
		},
		{
			name:     "age range is inclusive on both ends",
			criteria: model.FilterCriteria{Ranges: map[string]model.Range{"age": {Min: 24, Max: 26}}},
			want:     []string{"Carlos Rodriguez", "Marcus Johnson", "Diego Martinez"},
		},
		{
			name:     "search matches team case-insensitively",
			criteria: model.FilterCriteria{SearchTerm: "barcelona"},
			want:     []string{"João Silva", "Maria Gonzalez"},
		},
		{
			name: "conjunction of range and search",
			criteria: model.FilterCriteria{
				Ranges:     map[string]model.Range{"age": {Min: 24, Max: 26}},
				SearchTerm: "barcelona",
			},
			want: []string{},
		},
		{
			name:     "categorical selection is a set membership test",
			criteria: model.FilterCriteria{Categories: map[string][]string{"position": {"Forward", "Winger"}}},
			want:     []string{"Carlos Rodriguez", "Maria Gonzalez", "Diego Martinez"},
		},
		{
			name:     "empty category selection is unconstrained",
			criteria: model.FilterCriteria{Categories: map[string][]string{"nationality": {}}},
			want:     []string{"Carlos Rodriguez", "João Silva", "Marcus Johnson", "Alessandro Rossi", "Maria Gonzalez", "Diego Martinez"},
		},
		{
			name:     "stripped market value",
			criteria: model.FilterCriteria{Ranges: map[string]model.Range{"marketValue": {Min: 70, Max: 100}}},
			want:     []string{"Carlos Rodriguez", "Diego Martinez"},
		},
		{
			name:     "search term is not trimmed",
			criteria: model.FilterCriteria{SearchTerm: " madrid "},
			want:     []string{},
		},
		{
			name:     "search matches nationality",
			criteria: model.FilterCriteria{SearchTerm: "SPAIN"},
			want:     []string{"Carlos Rodriguez", "Maria Gonzalez"},
		},
		{
			name:     "sort by performance descending",
			criteria: model.FilterCriteria{Categories: map[string][]string{"nationality": {"Spain", "Portugal"}}, SortBy: "performance"},
			want:     []string{"Carlos Rodriguez", "Maria Gonzalez", "João Silva"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := evaluator.Filter(athletes, tt.criteria)
			require.NotNil(t, result.Matched)
			if diff := cmp.Diff(tt.want, names(result.Matched)); diff != "" {
				t.Errorf("Filter() mismatch (-want +got):\n%s", diff)
			}
			assert.Equal(t, len(tt.want), result.Total)
			assert.Equal(t, len(athletes), result.CandidateCount)
			assert.NotEmpty(t, result.QueryID)
		})
	}
}

func TestFilter_Idempotent(t *testing.T) {
	evaluator := NewEvaluator(fixtures.AthleteSettings())
	athletes := fixtures.Athletes()
	criteria := model.FilterCriteria{
		Categories: map[string][]string{"position": {"Forward"}},
		Ranges:     map[string]model.Range{"performance": {Min: 90, Max: 100}},
	}

	first := evaluator.Filter(athletes, criteria)
	second := evaluator.Filter(athletes, criteria)
	assert.Equal(t, names(first.Matched), names(second.Matched))
}

func TestFilter_NarrowingNeverGrows(t *testing.T) {
	evaluator := NewEvaluator(fixtures.AthleteSettings())
	athletes := fixtures.Athletes()

	wide := model.FilterCriteria{Ranges: map[string]model.Range{"age": {Min: 18, Max: 35}}}
	narrow := wide.Clone()
	narrow.Categories["team"] = []string{"Barcelona", "Real Madrid"}
	narrower := narrow.Clone()
	narrower.SearchTerm = "silva"

	wideCount := evaluator.Filter(athletes, wide).Total
	narrowCount := evaluator.Filter(athletes, narrow).Total
	narrowerCount := evaluator.Filter(athletes, narrower).Total

	assert.Equal(t, 6, wideCount)
	assert.Equal(t, 2, narrowCount)
	assert.Equal(t, 1, narrowerCount)
}

func TestMatches_MissingAndMalformedValues(t *testing.T) {
	evaluator := NewEvaluator(fixtures.AthleteSettings())
	criteria := model.FilterCriteria{Ranges: map[string]model.Range{"marketValue": {Min: 0, Max: 100}}}

	assert.False(t, evaluator.Matches(model.Record{"id": "x"}, criteria), "missing value never matches a range")
	assert.False(t, evaluator.Matches(model.Record{"id": "x", "marketValue": "n/a"}, criteria), "value without digits never matches")
	assert.True(t, evaluator.Matches(model.Record{"id": "x", "marketValue": 40}, criteria), "native numbers are accepted")
}

func TestMatches_StringArrayFields(t *testing.T) {
	evaluator := NewEvaluator(fixtures.FAQSettings())
	faq := fixtures.FAQs()[1]

	assert.True(t, evaluator.Matches(faq, model.FilterCriteria{SearchTerm: "COMMISSION"}), "keywords are searchable")
	assert.True(t, evaluator.Matches(faq, model.FilterCriteria{SearchTerm: "5-10%"}), "answers are searchable")
	assert.False(t, evaluator.Matches(faq, model.FilterCriteria{Categories: map[string][]string{"category": {"clubs"}}}))
}

func TestFilter_FAQSortOptions(t *testing.T) {
	evaluator := NewEvaluator(fixtures.FAQSettings())
	faqs := fixtures.FAQs()

	tests := []struct {
		sortBy string
		want   []int
	}{
		{"popular", []int{1, 2, 6, 3, 4, 5}},
		{"recent", []int{1, 5, 3, 6, 2, 4}},
		{"helpful", []int{6, 2, 3, 4, 1, 5}},
		{"alphabetical", []int{5, 3, 4, 1, 2, 6}},
		{"", []int{1, 2, 3, 4, 5, 6}},
	}
	for _, tt := range tests {
		t.Run(tt.sortBy, func(t *testing.T) {
			result := evaluator.Filter(faqs, model.FilterCriteria{SortBy: tt.sortBy})
			assert.Equal(t, tt.want, questionIDs(result.Matched))
		})
	}
}

func TestFilter_DoesNotReorderInput(t *testing.T) {
	evaluator := NewEvaluator(fixtures.FAQSettings())
	faqs := fixtures.FAQs()

	evaluator.Filter(faqs, model.FilterCriteria{SortBy: "helpful"})
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6}, questionIDs(faqs))
}

func TestValidate(t *testing.T) {
	evaluator := NewEvaluator(fixtures.AthleteSettings())

	tests := []struct {
		name     string
		criteria model.FilterCriteria
		target   error
	}{
		{"valid", model.FilterCriteria{Ranges: map[string]model.Range{"age": {Min: 20, Max: 20}}, SortBy: "rank"}, nil},
		{"unknown categorical", model.FilterCriteria{Categories: map[string][]string{"league": {"LaLiga"}}}, internalErrors.ErrUnknownFacet},
		{"unknown numeric", model.FilterCriteria{Ranges: map[string]model.Range{"height": {Min: 1, Max: 2}}}, internalErrors.ErrUnknownFacet},
		{"inverted range", model.FilterCriteria{Ranges: map[string]model.Range{"age": {Min: 30, Max: 20}}}, internalErrors.ErrInvalidRange},
		{"unknown sort", model.FilterCriteria{SortBy: "salary"}, internalErrors.ErrUnknownFacet},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := evaluator.Validate(tt.criteria)
			if tt.target == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, tt.target), "got %v", err)
		})
	}
}
