package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"qalookup/internal/config"
	"qalookup/internal/lookup"
)

// ReadyEnv makes the widget print ReadyMarker once the program is about to start
const (
	ReadyEnv    = "QALOOKUP_E2E_TEST"
	ReadyMarker = "__READY__"
)

type rootOptions struct {
	configFile string
}

// NewRootCommand builds the qalookup command tree
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	rootCommand := &cobra.Command{
		Use:           "qalookup",
		Short:         "Look up answers to exam questions from the terminal",
		Version:       lookup.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWidget(cmd, opts)
		},
	}

	rootCommand.PersistentFlags().StringVar(&opts.configFile, "config", "", "config file path (default "+config.DefaultPath()+")")
	addLookupFlags(rootCommand.PersistentFlags())

	rootCommand.AddCommand(
		newAskCommand(opts),
		newConfigCommand(opts),
	)
	return rootCommand
}

// addLookupFlags registers the flags that override config keys. Defaults
// only feed the help text; unset flags never override the file.
func addLookupFlags(flags *pflag.FlagSet) {
	def := config.DefaultConfig()
	flags.String("endpoint", def.Endpoint, "answer service URL")
	flags.String("trigger", def.Trigger, "when to search: input or submit")
	flags.Duration("debounce", def.Debounce, "quiet period before searching while typing")
	flags.Duration("timeout", def.Timeout, "per-request timeout")
	flags.Uint("retries", def.Retries, "retries for failed requests")
	flags.Bool("strict-errno", def.StrictErrno, "treat only errno 0 as a match")
	flags.String("log-file", def.LogFile, "log file for the widget")
	flags.String("log-level", def.LogLevel, "log level")
}

func newClient(cfg *config.Config) *lookup.Client {
	return lookup.NewClient(lookup.Options{
		Endpoint:    cfg.Endpoint,
		Timeout:     cfg.Timeout,
		Retries:     cfg.Retries,
		StrictErrno: cfg.StrictErrno,
	})
}

// Execute runs the command tree and exits non-zero on failure
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
