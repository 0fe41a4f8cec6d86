package modes

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"qalookup/internal/ui/input/types"
)

// SubmitMode searches only when enter is pressed
type SubmitMode struct {
	TextInputMode
}

func NewSubmitMode(keys types.KeyMap, ti *textinput.Model) *SubmitMode {
	return &SubmitMode{
		TextInputMode: NewTextInputMode(types.ModeSubmit, "submit", keys, ti),
	}
}

func (m *SubmitMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	if actions, ok := m.handleCommon(msg); ok {
		return actions, true
	}
	switch {
	case key.Matches(msg, m.keys.Clear):
		// Clearing only empties the field; the answer stays on screen
		m.clear()
		return []types.Action{types.ClearInputAction{}}, true
	case key.Matches(msg, m.keys.Submit):
		if ctx.Busy() {
			// Submit is disabled while a lookup is in flight
			return nil, true
		}
		return []types.Action{types.SubmitQueryAction{Text: trimmed(m.value())}}, true
	default:
		return nil, false
	}
}

func (m *SubmitMode) Changed(value string, ctx types.Context) []types.Action {
	return []types.Action{clearVisibility(value)}
}
