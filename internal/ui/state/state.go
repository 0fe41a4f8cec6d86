package state

import (
	"qalookup/internal/domain"
)

// ViewState holds everything the widget renders from. It is owned by a
// single model and only touched from the update loop.
type ViewState struct {
	current      domain.AnswerRecord
	busy         bool
	clearVisible bool
	lastQuery    string // query whose result is on screen
}

// NewViewState creates state showing the placeholder record
func NewViewState() *ViewState {
	return &ViewState{
		current: domain.DefaultRecord(),
	}
}

// Current returns a copy of the displayed record
func (s *ViewState) Current() domain.AnswerRecord {
	return s.current.Clone()
}

// SetCurrent stores a record from a successful lookup.
// Records that fail validation reset the view instead.
func (s *ViewState) SetCurrent(r domain.AnswerRecord) bool {
	if err := r.Validate(); err != nil {
		s.Reset()
		return false
	}
	s.current = r.Clone()
	return true
}

// Reset shows the placeholder record
func (s *ViewState) Reset() {
	s.current = domain.DefaultRecord()
}

// Busy reports whether a lookup is in flight
func (s *ViewState) Busy() bool {
	return s.busy
}

// SetBusy toggles the loading indicator
func (s *ViewState) SetBusy(busy bool) {
	s.busy = busy
}

// ClearVisible reports whether the clear affordance is shown
func (s *ViewState) ClearVisible() bool {
	return s.clearVisible
}

// SetClearVisible toggles the clear affordance
func (s *ViewState) SetClearVisible(visible bool) {
	s.clearVisible = visible
}

// LastQuery returns the query whose result is on screen, empty when none
func (s *ViewState) LastQuery() string {
	return s.lastQuery
}

// SetLastQuery records the query whose result is on screen
func (s *ViewState) SetLastQuery(q string) {
	s.lastQuery = q
}
