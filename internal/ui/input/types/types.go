package types

import tea "github.com/charmbracelet/bubbletea"

// Mode represents how the text field triggers searches
type Mode int

const (
	// ModeInput searches while typing, after the debounce window
	ModeInput Mode = iota
	// ModeSubmit searches when enter is pressed
	ModeSubmit
)

func (m Mode) String() string {
	switch m {
	case ModeInput:
		return "input"
	case ModeSubmit:
		return "submit"
	default:
		return "unknown"
	}
}

// Action represents a command the model should execute
type Action interface {
	Type() string
}

// Context provides read-only access to model state needed for input handling
type Context interface {
	Busy() bool
}

// ModeHandler handles input for a specific mode
type ModeHandler interface {
	// HandleKey processes a key message and returns actions and whether to consume the event
	HandleKey(msg tea.KeyMsg, ctx Context) ([]Action, bool)

	// Changed is called after the text field value changed
	Changed(value string, ctx Context) []Action

	// Name returns the mode name for display
	Name() string
}
