package ui

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"

	"qalookup/internal/config"
	"qalookup/internal/eventbus"
	"qalookup/internal/lookup"
	"qalookup/internal/ui/dispatch"
	"qalookup/internal/ui/input"
	inputtypes "qalookup/internal/ui/input/types"
	"qalookup/internal/ui/state"
	"qalookup/internal/ui/views"
)

// Reasons reported with ViewResetEvent
const (
	ResetCleared   = "cleared"
	ResetNoMatch   = "no_match"
	ResetFailed    = "failed"
	ResetMalformed = "malformed"
)

// Model represents the application state
type Model struct {
	cfg   *config.Config
	bus   eventbus.EventBus
	state *state.ViewState

	width       int
	height      int
	help        help.Model
	spinner     spinner.Model
	inPagerMode bool // tracks if we're currently in pager mode

	dispatcher   *dispatch.Dispatcher
	inputHandler *input.Handler
	renderer     *views.Renderer
	pager        *Pager

	// Program reference for terminal management
	program *tea.Program
}

// ModelOption customizes a Model
type ModelOption func(*modelOptions)

type modelOptions struct {
	tick dispatch.TickFunc
}

// WithTick replaces the debounce timer source
func WithTick(tick dispatch.TickFunc) ModelOption {
	return func(o *modelOptions) {
		o.tick = tick
	}
}

// NewModel creates a new UI model. ctx bounds every lookup the model issues.
func NewModel(ctx context.Context, cfg *config.Config, searcher lookup.Searcher, bus eventbus.EventBus, opts ...ModelOption) *Model {
	var o modelOptions
	for _, opt := range opts {
		opt(&o)
	}

	dispatchMode, inputMode := dispatch.ModeSubmit, inputtypes.ModeSubmit
	if cfg.Debounced() {
		dispatchMode, inputMode = dispatch.ModeDebounced, inputtypes.ModeInput
	}

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("111"))

	return &Model{
		cfg:     cfg,
		bus:     bus,
		state:   state.NewViewState(),
		help:    help.New(),
		spinner: sp,
		dispatcher: dispatch.New(ctx, searcher, dispatch.Options{
			Mode:     dispatchMode,
			Debounce: cfg.Debounce,
			Tick:     o.tick,
			Bus:      bus,
		}),
		inputHandler: input.New(inputMode, cfg.UI.Placeholder),
		renderer:     views.NewRenderer(),
	}
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.pager = NewPager(p)
}

// State exposes the view state
func (m *Model) State() *state.ViewState {
	return m.state
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	return m.inputHandler.Init()
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.inputHandler.SetWidth(max(min(msg.Width-14, 64), 10))
		return m, nil

	case tea.KeyMsg:
		ctx := &input.ModelContext{State: m.state}
		actions, cmd := m.inputHandler.HandleKey(msg, ctx)

		cmds := []tea.Cmd{cmd}
		for _, action := range actions {
			cmds = append(cmds, m.processAction(action))
		}
		return m, tea.Batch(cmds...)

	case tea.FocusMsg:
		var cmds []tea.Cmd
		for _, action := range m.inputHandler.HandleFocus() {
			cmds = append(cmds, m.processAction(action))
		}
		return m, tea.Batch(cmds...)

	case dispatch.FireMsg:
		cmd := m.dispatcher.Fire(msg)
		return m, tea.Batch(cmd, m.syncBusy())

	case dispatch.ResultMsg:
		return m, m.handleResult(msg)

	case spinner.TickMsg:
		if !m.state.Busy() {
			// Dropping the tick stops the animation loop
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case pagerMsg:
		if msg.err != nil {
			log.Error().Err(msg.err).Msg("pager failed")
		}
		return m, nil

	case pauseRenderingMsg:
		m.inPagerMode = true
		return m, nil

	case resumeRenderingMsg:
		m.inPagerMode = false
		return m, nil

	default:
		// Cursor blink and other field messages
		return m, m.inputHandler.Update(msg)
	}
}

// processAction processes an action from the input handler
func (m *Model) processAction(action inputtypes.Action) tea.Cmd {
	switch a := action.(type) {
	case inputtypes.QueryChangedAction:
		if a.Text == "" {
			m.resetView(ResetCleared)
			return nil
		}
		return m.dispatcher.Schedule(a.Text)

	case inputtypes.SubmitQueryAction:
		if a.Text == "" {
			m.resetView(ResetCleared)
			return nil
		}
		cmd := m.dispatcher.Submit(a.Text)
		return tea.Batch(cmd, m.syncBusy())

	case inputtypes.ClearInputAction:
		m.state.SetClearVisible(false)
		return nil

	case inputtypes.SetClearVisibleAction:
		m.state.SetClearVisible(a.Visible)
		return nil

	case inputtypes.OpenPagerAction:
		return m.openPager(views.RenderPlain(m.state.Current()))

	case inputtypes.ToggleHelpAction:
		m.help.ShowAll = !m.help.ShowAll
		return nil

	case inputtypes.QuitAction:
		return tea.Quit
	}
	return nil
}

func (m *Model) handleResult(msg dispatch.ResultMsg) tea.Cmd {
	outcome, next := m.dispatcher.Settle(msg)

	logger := log.With().Uint64("seq", msg.Seq).Str("question", msg.Question).Dur("elapsed", msg.Elapsed).Logger()
	if outcome != dispatch.OutcomeStale {
		m.state.SetLastQuery(msg.Question)
	}
	switch outcome {
	case dispatch.OutcomeAnswer:
		if !m.state.SetCurrent(*msg.Record) {
			logger.Warn().Msg("discarding invalid answer record")
			m.publishReset(ResetMalformed)
		} else {
			logger.Debug().Strs("answers", msg.Record.Answers).Msg("answer shown")
		}

	case dispatch.OutcomeNoMatch:
		logger.Debug().Msg("no match")
		m.state.Reset()
		m.publishReset(ResetNoMatch)

	case dispatch.OutcomeFailed:
		reason := ResetFailed
		if errors.Is(msg.Err, lookup.ErrMalformedRecord) {
			reason = ResetMalformed
		}
		logger.Error().Err(msg.Err).Msg("lookup failed")
		m.state.Reset()
		m.publishReset(reason)

	case dispatch.OutcomeStale:
		logger.Debug().Msg("ignoring superseded result")
	}

	return tea.Batch(next, m.syncBusy())
}

// syncBusy mirrors the dispatcher's in-flight flag into the view state and
// starts the spinner on the idle to busy edge.
func (m *Model) syncBusy() tea.Cmd {
	busy := m.dispatcher.Busy()
	wasBusy := m.state.Busy()
	m.state.SetBusy(busy)
	if busy && !wasBusy {
		return m.spinner.Tick
	}
	return nil
}

func (m *Model) resetView(reason string) {
	m.dispatcher.Cancel()
	m.state.Reset()
	m.state.SetLastQuery("")
	m.publishReset(reason)
}

func (m *Model) publishReset(reason string) {
	if m.bus != nil {
		m.bus.Publish(eventbus.ViewResetEvent{Reason: reason})
	}
}

// openPager returns a command that shows content using ov pager
func (m *Model) openPager(content string) tea.Cmd {
	if m.program == nil || m.pager == nil {
		log.Debug().Msg("pager unavailable without a program")
		return nil
	}
	return func() tea.Msg {
		m.program.Send(pauseRenderingMsg{})

		err := m.pager.Show(content)

		m.program.Send(resumeRenderingMsg{})

		return pagerMsg{err: err}
	}
}

// View renders the UI
func (m *Model) View() string {
	if m.inPagerMode {
		return ""
	}
	if m.width == 0 {
		return "Loading..."
	}

	return m.renderer.Render(views.ViewState{
		Width:        m.width,
		Height:       m.height,
		Record:       m.state.Current(),
		Query:        m.state.LastQuery(),
		Busy:         m.state.Busy(),
		ClearVisible: m.state.ClearVisible(),
		TextInput:    m.inputHandler.TextInput().View(),
		ModeName:     m.inputHandler.ModeName(),
		Spinner:      m.spinner.View(),
		HelpView:     m.help.View(m.inputHandler.Keys()),
		ShowNotice:   m.cfg.UI.ShowNotice,
	})
}
