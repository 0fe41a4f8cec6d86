package dispatch

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"qalookup/internal/domain"
	"qalookup/internal/eventbus"
	"qalookup/internal/lookup"
)

// Mode selects how queries reach the network
type Mode int

const (
	// ModeDebounced searches after the input has been quiet for the debounce window
	ModeDebounced Mode = iota
	// ModeSubmit searches only on explicit submit
	ModeSubmit
)

// Outcome classifies a settled request
type Outcome int

const (
	OutcomeAnswer Outcome = iota
	OutcomeNoMatch
	OutcomeFailed
	// OutcomeStale means a newer query or a reset superseded the request;
	// its result must not touch the view.
	OutcomeStale
)

func (o Outcome) String() string {
	switch o {
	case OutcomeAnswer:
		return "answer"
	case OutcomeNoMatch:
		return "no_match"
	case OutcomeFailed:
		return "failed"
	case OutcomeStale:
		return "stale"
	default:
		return "unknown"
	}
}

// ResultMsg carries a settled request back into the update loop
type ResultMsg struct {
	Seq      uint64
	Question string
	Record   *domain.AnswerRecord
	Err      error
	Elapsed  time.Duration
}

// Options configures a Dispatcher
type Options struct {
	Mode     Mode
	Debounce time.Duration
	Tick     TickFunc
	Bus      eventbus.EventBus
}

// Dispatcher turns queries into lookups. It is driven entirely from the
// Bubble Tea update loop and never has more than one request in flight.
type Dispatcher struct {
	ctx       context.Context
	searcher  lookup.Searcher
	mode      Mode
	debouncer *Debouncer
	bus       eventbus.EventBus

	seq        uint64 // last issued request
	inFlight   uint64 // 0 when idle
	applicable uint64 // request whose result may reach the view
	parked     *string
}

// New creates a dispatcher. ctx bounds every request it issues.
func New(ctx context.Context, searcher lookup.Searcher, opts Options) *Dispatcher {
	return &Dispatcher{
		ctx:       ctx,
		searcher:  searcher,
		mode:      opts.Mode,
		debouncer: NewDebouncer(opts.Debounce, opts.Tick),
		bus:       opts.Bus,
	}
}

// Busy reports whether a request is in flight
func (d *Dispatcher) Busy() bool {
	return d.inFlight != 0
}

// Pending reports whether a debounced query is waiting
func (d *Dispatcher) Pending() bool {
	return d.debouncer.Pending() || d.parked != nil
}

// Schedule arms the debounce timer for question, replacing any earlier one.
// Submit-mode dispatchers never search while typing and ignore it.
func (d *Dispatcher) Schedule(question string) tea.Cmd {
	if d.mode != ModeDebounced {
		return nil
	}
	return d.debouncer.Trigger(question)
}

// Submit issues question immediately. It does nothing in debounced mode or
// while a request is in flight, mirroring a disabled submit button.
func (d *Dispatcher) Submit(question string) tea.Cmd {
	if d.mode != ModeSubmit || d.Busy() {
		return nil
	}
	d.debouncer.Cancel()
	d.parked = nil
	return d.issue(question)
}

// Fire handles an elapsed debounce timer
func (d *Dispatcher) Fire(msg FireMsg) tea.Cmd {
	if !d.debouncer.Accept(msg) {
		return nil
	}
	if d.Busy() {
		q := msg.Question
		d.parked = &q
		d.applicable = 0
		return nil
	}
	return d.issue(msg.Question)
}

// Cancel forgets every pending query and marks the in-flight request stale.
// A request already on the wire is not aborted.
func (d *Dispatcher) Cancel() {
	d.debouncer.Cancel()
	d.parked = nil
	d.applicable = 0
}

// Settle records the completion of a request and classifies it. When a
// query was parked behind it, the returned command issues that query.
func (d *Dispatcher) Settle(msg ResultMsg) (Outcome, tea.Cmd) {
	if msg.Seq != d.inFlight {
		return OutcomeStale, nil
	}
	d.inFlight = 0

	outcome := classify(msg)
	if msg.Seq != d.applicable {
		outcome = OutcomeStale
	}

	if d.bus != nil {
		d.bus.Publish(eventbus.LookupSettledEvent{
			Seq:      msg.Seq,
			Question: msg.Question,
			Outcome:  outcome.String(),
			Elapsed:  msg.Elapsed,
			Err:      msg.Err,
		})
	}

	var next tea.Cmd
	if d.parked != nil {
		q := *d.parked
		d.parked = nil
		next = d.issue(q)
	}
	return outcome, next
}

func classify(msg ResultMsg) Outcome {
	switch {
	case msg.Err != nil:
		return OutcomeFailed
	case msg.Record == nil:
		return OutcomeNoMatch
	default:
		return OutcomeAnswer
	}
}

func (d *Dispatcher) issue(question string) tea.Cmd {
	d.seq++
	seq := d.seq
	d.inFlight = seq
	d.applicable = seq

	if d.bus != nil {
		d.bus.Publish(eventbus.LookupIssuedEvent{Seq: seq, Question: question})
	}

	ctx, searcher := d.ctx, d.searcher
	return func() tea.Msg {
		start := time.Now()
		record, err := searcher.Search(ctx, question)
		return ResultMsg{
			Seq:      seq,
			Question: question,
			Record:   record,
			Err:      err,
			Elapsed:  time.Since(start),
		}
	}
}
