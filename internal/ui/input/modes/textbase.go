package modes

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"qalookup/internal/ui/input/types"
)

// TextInputMode is the base for modes driven by the search field
type TextInputMode struct {
	mode      types.Mode
	name      string
	keys      types.KeyMap
	textInput *textinput.Model
}

func NewTextInputMode(mode types.Mode, name string, keys types.KeyMap, ti *textinput.Model) TextInputMode {
	return TextInputMode{
		mode:      mode,
		name:      name,
		keys:      keys,
		textInput: ti,
	}
}

func (m TextInputMode) Name() string {
	return m.name
}

func (m TextInputMode) value() string {
	if m.textInput == nil {
		return ""
	}
	return m.textInput.Value()
}

func (m TextInputMode) clear() {
	if m.textInput != nil {
		m.textInput.Reset()
	}
}

// handleCommon handles the bindings that behave the same in every mode
func (m TextInputMode) handleCommon(msg tea.KeyMsg) ([]types.Action, bool) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return []types.Action{types.QuitAction{}}, true
	case key.Matches(msg, m.keys.Pager):
		return []types.Action{types.OpenPagerAction{}}, true
	case key.Matches(msg, m.keys.Help):
		return []types.Action{types.ToggleHelpAction{}}, true
	default:
		return nil, false
	}
}

// clearVisibility follows the raw value: whitespace still shows the clear marker
func clearVisibility(value string) types.Action {
	return types.SetClearVisibleAction{Visible: len(value) > 0}
}

func trimmed(value string) string {
	return strings.TrimSpace(value)
}
