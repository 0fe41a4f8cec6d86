package modes

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"qalookup/internal/ui/input/types"
)

// InputMode searches while the user types
type InputMode struct {
	TextInputMode
}

func NewInputMode(keys types.KeyMap, ti *textinput.Model) *InputMode {
	return &InputMode{
		TextInputMode: NewTextInputMode(types.ModeInput, "input", keys, ti),
	}
}

func (m *InputMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	if actions, ok := m.handleCommon(msg); ok {
		return actions, true
	}
	switch {
	case key.Matches(msg, m.keys.Clear):
		// An emptied field is an input change like any other
		m.clear()
		return []types.Action{
			types.ClearInputAction{},
			types.QueryChangedAction{Text: ""},
		}, true
	case key.Matches(msg, m.keys.Submit):
		// Searches already follow the keystrokes
		return nil, true
	default:
		return nil, false
	}
}

func (m *InputMode) Changed(value string, ctx types.Context) []types.Action {
	return []types.Action{
		clearVisibility(value),
		types.QueryChangedAction{Text: trimmed(value)},
	}
}
