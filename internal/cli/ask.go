package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"qalookup/internal/config"
	"qalookup/internal/domain"
	"qalookup/internal/logging"
	"qalookup/internal/ui/views"
)

func newAskCommand(opts *rootOptions) *cobra.Command {
	var plain bool

	command := &cobra.Command{
		Use:   "ask <question...>",
		Short: "Look up a single question and print the answer",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			question := strings.TrimSpace(strings.Join(args, " "))
			if question == "" {
				return errors.New("question must not be empty")
			}

			cfg, _, err := config.Load(opts.configFile, cmd.Flags())
			if err != nil {
				return err
			}

			// One-shot runs log to stderr
			closer, err := logging.Setup("", cfg.LogLevel)
			if err != nil {
				return err
			}
			defer closer.Close()

			client := newClient(cfg)
			defer client.Close()

			record, err := client.Search(cmd.Context(), question)
			if err != nil {
				return fmt.Errorf("lookup failed: %w", err)
			}

			rec := domain.DefaultRecord()
			if record != nil {
				rec = *record
			}

			if plain {
				_, err := fmt.Fprint(cmd.OutOrStdout(), views.RenderPlain(rec))
				return err
			}
			return printRecord(cmd.OutOrStdout(), rec)
		},
	}

	command.Flags().BoolVar(&plain, "plain", false, "print without colors")

	return command
}

// printRecord writes the record in the widget's field order
func printRecord(w io.Writer, rec domain.AnswerRecord) error {
	label := color.New(color.FgCyan)
	answer := color.New(color.FgGreen, color.Bold)
	dim := color.New(color.Faint)

	answers := make([]string, len(rec.Answers))
	for i, a := range rec.Answers {
		answers[i] = answer.Sprint(a)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s%s / %s\n", label.Sprint("题型："), rec.Type.Label(), dim.Sprint(string(rec.Type)))
	fmt.Fprintf(&b, "%s%s\n", label.Sprint("答案："), strings.Join(answers, domain.AnswerSeparator))
	fmt.Fprintf(&b, "%s%s\n", label.Sprint("题目："), rec.Question)
	fmt.Fprintf(&b, "%s%s", dim.Sprint("来源："), rec.From)
	if rec.Title != "" {
		fmt.Fprintf(&b, " %s", dim.Sprint(rec.Title))
	}
	b.WriteString("\n")

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("failed to write to stdout: %w", err)
	}
	return nil
}
