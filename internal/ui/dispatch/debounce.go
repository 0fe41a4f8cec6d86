package dispatch

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickFunc arms a timer that delivers fn's message after d.
// tea.Tick in production; tests pass a virtual clock.
type TickFunc func(d time.Duration, fn func(time.Time) tea.Msg) tea.Cmd

// FireMsg is delivered when a debounce timer elapses
type FireMsg struct {
	gen      uint64
	Question string
}

// Debouncer holds at most one pending deferred task. Arming a new task
// cancels the previous one: a superseded timer still fires, but Accept
// rejects it.
type Debouncer struct {
	delay   time.Duration
	tick    TickFunc
	gen     uint64
	pending bool
}

// NewDebouncer creates a debouncer with the given quiet period
func NewDebouncer(delay time.Duration, tick TickFunc) *Debouncer {
	if tick == nil {
		tick = tea.Tick
	}
	return &Debouncer{delay: delay, tick: tick}
}

// Trigger cancels any pending task and schedules question after the quiet period
func (b *Debouncer) Trigger(question string) tea.Cmd {
	b.gen++
	b.pending = true
	gen := b.gen
	return b.tick(b.delay, func(time.Time) tea.Msg {
		return FireMsg{gen: gen, Question: question}
	})
}

// Cancel drops the pending task, if any
func (b *Debouncer) Cancel() {
	b.gen++
	b.pending = false
}

// Accept reports whether msg belongs to the pending task and consumes it
func (b *Debouncer) Accept(msg FireMsg) bool {
	if !b.pending || msg.gen != b.gen {
		return false
	}
	b.pending = false
	return true
}

// Pending reports whether a task is waiting for its quiet period
func (b *Debouncer) Pending() bool {
	return b.pending
}
