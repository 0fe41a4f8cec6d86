package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"qalookup/internal/config"
)

func newConfigCommand(opts *rootOptions) *cobra.Command {
	configCommand := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}

	configCommand.AddCommand(
		newConfigInitCommand(opts),
		newConfigShowCommand(opts),
	)
	return configCommand
}

func newConfigInitCommand(opts *rootOptions) *cobra.Command {
	var force bool

	command := &cobra.Command{
		Use:   "init",
		Short: "Write the default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := opts.configFile
			if path == "" {
				path = config.DefaultPath()
			}

			_, err := os.Stat(path)
			switch {
			case err == nil && !force:
				return fmt.Errorf("config file already exists: %s (use --force to overwrite)", path)
			case err != nil && !errors.Is(err, fs.ErrNotExist):
				return fmt.Errorf("failed to check config file: %w", err)
			}

			if err := config.SaveToPath(config.DefaultConfig(), path); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return err
		},
	}

	command.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	return command
}

func newConfigShowCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, used, err := config.Load(opts.configFile, cmd.Flags())
			if err != nil {
				return err
			}

			data, err := config.Marshal(cfg)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if used == "" {
				fmt.Fprintln(out, "# no config file found, showing defaults")
			} else {
				fmt.Fprintf(out, "# %s\n", used)
			}
			_, err = out.Write(data)
			return err
		},
	}
}
