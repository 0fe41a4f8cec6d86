package input

import (
	"qalookup/internal/ui/state"
)

// ModelContext implements the Context interface for the input handler
type ModelContext struct {
	State *state.ViewState
}

// Busy reports whether a lookup is in flight
func (c *ModelContext) Busy() bool {
	return c.State != nil && c.State.Busy()
}
