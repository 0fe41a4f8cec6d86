package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"qalookup/internal/ui/input/modes"
	"qalookup/internal/ui/input/types"
)

// Handler bridges terminal input to the search field and turns it into actions
type Handler struct {
	currentMode types.Mode
	modes       map[types.Mode]types.ModeHandler
	textInput   *textinput.Model
	keys        types.KeyMap
}

// New creates a handler for the given trigger mode
func New(mode types.Mode, placeholder string) *Handler {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "" // Prompt is handled in the UI layer
	ti.CharLimit = 512
	ti.Focus()

	h := &Handler{
		currentMode: mode,
		textInput:   &ti,
		keys:        types.DefaultKeyMap(),
		modes:       make(map[types.Mode]types.ModeHandler),
	}

	h.modes[types.ModeInput] = modes.NewInputMode(h.keys, h.textInput)
	h.modes[types.ModeSubmit] = modes.NewSubmitMode(h.keys, h.textInput)

	return h
}

// HandleKey routes a key press. Keys the mode does not claim edit the field;
// a change of value is reported through the mode's Changed hook.
func (h *Handler) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, tea.Cmd) {
	handler := h.modes[h.currentMode]
	if handler == nil {
		return nil, nil
	}

	actions, consumed := handler.HandleKey(msg, ctx)
	if consumed {
		return actions, nil
	}

	before := h.textInput.Value()
	var cmd tea.Cmd
	*h.textInput, cmd = h.textInput.Update(msg)
	if after := h.textInput.Value(); after != before {
		actions = append(actions, handler.Changed(after, ctx)...)
	}
	return actions, cmd
}

// HandleFocus re-evaluates the clear affordance when the terminal regains focus
func (h *Handler) HandleFocus() []types.Action {
	return []types.Action{types.SetClearVisibleAction{Visible: len(h.textInput.Value()) > 0}}
}

// Update handles non-keyboard messages for the text field (cursor blink)
func (h *Handler) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	*h.textInput, cmd = h.textInput.Update(msg)
	return cmd
}

// Init returns the initial command for the handler
func (h *Handler) Init() tea.Cmd {
	return textinput.Blink
}

// ModeName returns the display name of the trigger mode
func (h *Handler) ModeName() string {
	if handler := h.modes[h.currentMode]; handler != nil {
		return handler.Name()
	}
	return ""
}

// TextInput returns the search field
func (h *Handler) TextInput() *textinput.Model {
	return h.textInput
}

// Value returns the raw field value
func (h *Handler) Value() string {
	return h.textInput.Value()
}

// Keys returns the key bindings
func (h *Handler) Keys() types.KeyMap {
	return h.keys
}

// SetWidth sizes the search field
func (h *Handler) SetWidth(width int) {
	h.textInput.Width = width
}
