package suggest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gcbaptista/go-facet-engine/internal/fixtures"
	"github.com/gcbaptista/go-facet-engine/model"
)

func labels(suggestions []model.Suggestion) []string {
	out := make([]string, 0, len(suggestions))
	for _, s := range suggestions {
		out = append(out, s.Label)
	}
	return out
}

func TestGenerate_Athletes(t *testing.T) {
	generator := NewGenerator(fixtures.AthleteSettings())
	athletes := fixtures.Athletes()

	tests := []struct {
		name string
		term string
		want []string
	}{
		{
			name: "empty term yields nothing",
			term: "",
			want: []string{},
		},
		{
			name: "sources are scanned in order and capped",
			term: "ma",
			want: []string{
				"Player: Marcus Johnson",
				"Player: Maria Gonzalez",
				"Player: Diego Martinez",
				"Team: Real Madrid",
				"Team: Manchester United",
				"Team: Manchester City",
			},
		},
		{
			name: "duplicate values collapse",
			term: "FORWARD",
			want: []string{"Position: Forward"},
		},
		{
			name: "team substring",
			term: "barcelona",
			want: []string{"Team: Barcelona", "Team: Barcelona Femení"},
		},
		{
			name: "no match",
			term: "zzz",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := generator.Generate(tt.term, athletes)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, labels(got))
		})
	}
}

func TestGenerate_CapAppliesAcrossSources(t *testing.T) {
	generator := NewGenerator(fixtures.AthleteSettings())
	got := generator.Generate("a", fixtures.Athletes())
	assert.Len(t, got, 6)
	for _, s := range got {
		assert.Equal(t, model.SuggestionKindName, s.Kind)
	}
}

func TestGenerate_FAQ(t *testing.T) {
	generator := NewGenerator(fixtures.FAQSettings())
	faqs := fixtures.FAQs()

	assert.Empty(t, generator.Generate("t", faqs), "shorter than the minimum length")

	got := generator.Generate("tr", faqs)
	require.Len(t, got, 3)

	assert.Equal(t, model.SuggestionKindQuestion, got[0].Kind)
	assert.Equal(t, "2", got[0].RecordID)
	assert.Equal(t, model.SuggestionKindQuestion, got[1].Kind)
	assert.Equal(t, "6", got[1].RecordID)

	assert.Equal(t, model.SuggestionKindKeyword, got[2].Kind)
	assert.Equal(t, "transfer", got[2].Value)
	assert.Empty(t, got[2].RecordID)
}

func TestGenerate_NoDuplicatePairs(t *testing.T) {
	generator := NewGenerator(fixtures.FAQSettings())
	got := generator.Generate("support", fixtures.FAQs())

	seen := make(map[string]bool)
	for _, s := range got {
		key := s.Kind.String() + "|" + s.Value
		assert.False(t, seen[key], "duplicate suggestion %s", key)
		seen[key] = true
	}
}
