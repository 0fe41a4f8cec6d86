package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"qalookup/internal/config"
	"qalookup/internal/eventbus"
	"qalookup/internal/logging"
	"qalookup/internal/ui"
)

func runWidget(cmd *cobra.Command, opts *rootOptions) error {
	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, used, err := config.Load(opts.configFile, cmd.Flags())
	if err != nil {
		return err
	}

	closer, err := logging.Setup(widgetLogFile(cfg), cfg.LogLevel)
	if err != nil {
		return err
	}
	defer closer.Close()

	bus := eventbus.New()
	unsubscribe := logEvents(bus)
	defer func() {
		// Drain queued events into the log before detaching
		bus.Close()
		unsubscribe()
	}()

	bus.Publish(eventbus.ConfigLoadedEvent{Path: used, Endpoint: cfg.Endpoint, Trigger: cfg.Trigger})

	client := newClient(cfg)
	defer client.Close()

	model := ui.NewModel(ctx, cfg, client, bus)
	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithReportFocus(),
		tea.WithContext(ctx),
	)
	model.SetProgram(p)

	if os.Getenv(ReadyEnv) != "" {
		fmt.Fprintln(cmd.OutOrStdout(), ReadyMarker)
	}

	log.Info().Str("trigger", cfg.Trigger).Str("endpoint", cfg.Endpoint).Msg("starting widget")
	if _, err := p.Run(); err != nil {
		if ctx.Err() != nil {
			// Interrupted by a signal
			return nil
		}
		return fmt.Errorf("error running program: %w", err)
	}
	log.Info().Msg("widget exited normally")
	return nil
}

// widgetLogFile picks the widget's log destination. Console output would
// corrupt the alternate screen, so an empty setting falls back to the default file.
func widgetLogFile(cfg *config.Config) string {
	if cfg.LogFile != "" {
		return cfg.LogFile
	}
	return config.DefaultConfig().LogFile
}

// logEvents records lookup lifecycle events in the log
func logEvents(bus eventbus.EventBus) func() {
	unsubs := []func(){
		bus.Subscribe(eventbus.EventLookupIssued, func(e eventbus.DomainEvent) {
			if event, ok := e.(eventbus.LookupIssuedEvent); ok {
				log.Debug().Uint64("seq", event.Seq).Str("question", event.Question).Msg("lookup issued")
			}
		}),
		bus.Subscribe(eventbus.EventLookupSettled, func(e eventbus.DomainEvent) {
			if event, ok := e.(eventbus.LookupSettledEvent); ok {
				log.Info().
					Uint64("seq", event.Seq).
					Str("question", event.Question).
					Str("outcome", event.Outcome).
					Dur("elapsed", event.Elapsed).
					AnErr("error", event.Err).
					Msg("lookup settled")
			}
		}),
		bus.Subscribe(eventbus.EventViewReset, func(e eventbus.DomainEvent) {
			if event, ok := e.(eventbus.ViewResetEvent); ok {
				log.Debug().Str("reason", event.Reason).Msg("view reset")
			}
		}),
		bus.Subscribe(eventbus.EventConfigLoaded, func(e eventbus.DomainEvent) {
			if event, ok := e.(eventbus.ConfigLoadedEvent); ok {
				log.Info().Str("path", event.Path).Str("endpoint", event.Endpoint).Str("trigger", event.Trigger).Msg("configuration loaded")
			}
		}),
	}
	return func() {
		for _, unsub := range unsubs {
			unsub()
		}
	}
}
