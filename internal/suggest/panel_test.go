package suggest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/gcbaptista/go-facet-engine/model"
)

var (
	playerSuggestion   = model.Suggestion{Kind: model.SuggestionKindName, Label: "Player: João Silva", Value: "João Silva"}
	questionSuggestion = model.Suggestion{Kind: model.SuggestionKindQuestion, Label: "Do you represent youth players?", Value: "Do you represent youth players?", RecordID: "3"}
)

func TestPanelUpdate(t *testing.T) {
	now := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	panel := NewPanel()
	assert.Equal(t, PanelHidden, panel.State(now))

	panel.Update("jo", []model.Suggestion{playerSuggestion})
	assert.Equal(t, PanelVisible, panel.State(now))

	panel.Update("jox", nil)
	assert.Equal(t, PanelHidden, panel.State(now), "no suggestions hides the panel")

	panel.Update("", []model.Suggestion{playerSuggestion})
	assert.Equal(t, PanelHidden, panel.State(now), "an empty term never shows the panel")
}

func TestPanelBlurGracePeriod(t *testing.T) {
	now := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	panel := NewPanel()
	panel.Update("jo", []model.Suggestion{playerSuggestion})

	panel.Blur(now)
	assert.Equal(t, PanelVisible, panel.State(now.Add(199*time.Millisecond)))
	assert.Equal(t, PanelHidden, panel.State(now.Add(BlurGracePeriod)))
}

func TestPanelFocusCancelsPendingHide(t *testing.T) {
	now := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	panel := NewPanel()
	panel.Update("jo", []model.Suggestion{playerSuggestion})

	panel.Blur(now)
	panel.Focus()
	assert.Equal(t, PanelVisible, panel.State(now.Add(time.Second)))
}

func TestPanelFocusReshowsAfterHide(t *testing.T) {
	now := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	panel := NewPanel()
	panel.Update("jo", []model.Suggestion{playerSuggestion})
	panel.Blur(now)
	assert.Equal(t, PanelHidden, panel.State(now.Add(time.Second)))

	panel.Focus()
	assert.Equal(t, PanelVisible, panel.State(now.Add(time.Second)))
}

func TestPanelSelect(t *testing.T) {
	now := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)

	t.Run("value suggestion replaces the term", func(t *testing.T) {
		panel := NewPanel()
		panel.Update("jo", []model.Suggestion{playerSuggestion})

		selection := panel.Select(playerSuggestion)
		assert.Equal(t, model.Selection{SearchTerm: "João Silva"}, selection)
		assert.Equal(t, PanelHidden, panel.State(now))
		assert.Empty(t, panel.Suggestions())
	})

	t.Run("question suggestion clears the term and opens the record", func(t *testing.T) {
		panel := NewPanel()
		panel.Update("youth", []model.Suggestion{questionSuggestion})

		selection := panel.Select(questionSuggestion)
		assert.Equal(t, model.Selection{SearchTerm: "", OpenRecordID: "3"}, selection)
		assert.Equal(t, PanelHidden, panel.State(now))
	})
}
