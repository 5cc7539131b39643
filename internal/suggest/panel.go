package suggest

import (
	"sync"
	"time"

	"github.com/gcbaptista/go-facet-engine/model"
)

// BlurGracePeriod is how long the dropdown stays open after the input loses focus,
// long enough for a click on a suggestion to land.
const BlurGracePeriod = 200 * time.Millisecond

// PanelState is the visibility of the suggestion dropdown.
type PanelState string

const (
	PanelHidden  PanelState = "hidden"
	PanelVisible PanelState = "visible"
)

// Panel tracks the dropdown for one search box.
// Time is passed in by the caller so pending hides can be resolved deterministically.
type Panel struct {
	mu          sync.Mutex
	visible     bool
	hideAt      time.Time // zero when no hide is pending
	term        string
	suggestions []model.Suggestion
}

// NewPanel returns a hidden panel.
func NewPanel() *Panel {
	return &Panel{}
}

// Update stores the suggestions for the current term. The panel is visible
// only when the term is non-empty and at least one suggestion exists.
func (p *Panel) Update(term string, suggestions []model.Suggestion) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.term = term
	p.suggestions = suggestions
	p.visible = p.showable()
}

// Blur schedules a hide after BlurGracePeriod.
func (p *Panel) Blur(now time.Time) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.visible {
		p.hideAt = now.Add(BlurGracePeriod)
	}
}

// Focus cancels a pending hide and shows the panel again if it has suggestions.
func (p *Panel) Focus() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.hideAt = time.Time{}
	p.visible = p.showable()
}

// State resolves any pending hide that is due at now and returns the visibility.
func (p *Panel) State(now time.Time) PanelState {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.resolve(now)
	if p.visible {
		return PanelVisible
	}
	return PanelHidden
}

// Suggestions returns the suggestions currently held by the panel.
func (p *Panel) Suggestions() []model.Suggestion {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]model.Suggestion, len(p.suggestions))
	copy(out, p.suggestions)
	return out
}

// Select applies the selection behavior of the suggestion's kind and hides the panel.
// Question suggestions clear the term and open their record; every other kind
// replaces the term with the suggestion value.
func (p *Panel) Select(s model.Suggestion) model.Selection {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.visible = false
	p.hideAt = time.Time{}
	p.suggestions = nil

	if s.Kind.Action() == model.SelectionOpenRecord {
		p.term = ""
		return model.Selection{SearchTerm: "", OpenRecordID: s.RecordID}
	}
	p.term = s.Value
	return model.Selection{SearchTerm: s.Value}
}

func (p *Panel) showable() bool {
	return p.term != "" && len(p.suggestions) > 0
}

func (p *Panel) resolve(now time.Time) {
	if !p.hideAt.IsZero() && !now.Before(p.hideAt) {
		p.visible = false
		p.hideAt = time.Time{}
	}
}
