package types

// Query actions
type QueryChangedAction struct {
	Text string // trimmed field value
}

func (a QueryChangedAction) Type() string { return "query_changed" }

type SubmitQueryAction struct {
	Text string // trimmed field value
}

func (a SubmitQueryAction) Type() string { return "submit_query" }

// Field actions
type ClearInputAction struct{}

func (a ClearInputAction) Type() string { return "clear_input" }

type SetClearVisibleAction struct {
	Visible bool
}

func (a SetClearVisibleAction) Type() string { return "set_clear_visible" }

// View actions
type OpenPagerAction struct{}

func (a OpenPagerAction) Type() string { return "open_pager" }

type ToggleHelpAction struct{}

func (a ToggleHelpAction) Type() string { return "toggle_help" }

// Application actions
type QuitAction struct{}

func (a QuitAction) Type() string { return "quit" }
