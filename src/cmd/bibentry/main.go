package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"bibentry/src/internal/config"
	"bibentry/src/internal/logging"
)

var (
	cfgFile  string
	output   string
	logLevel string
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "bibentry",
		Short: "Compose single-line bibliography entries (author, title, date, reference)",
		Long: `bibentry builds one bibliography entry of the form

  <author> <title> <pubdate> <ref>

by asking for each field in turn. Author names are reordered to "Last, First",
titles lose surrounding quotes, and empty fields are dropped from the entry.`,
		SilenceUsage:      true,
		PersistentPreRunE: setup,
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./bibentry.yaml or ~/.config/bibentry/bibentry.yaml)")
	root.PersistentFlags().StringVarP(&output, "output", "o", config.OutputText, "output format: text, yaml or json")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level: debug, info, warn or error")

	// Attach subcommands
	root.AddCommand(newEntryCmd())
	root.AddCommand(newStartCmd())
	root.AddCommand(newSubmitCmd())
	root.AddCommand(newShowCmd())
	root.AddCommand(newBatchCmd())
	root.AddCommand(newFieldsCmd())
	return root
}

// setup loads configuration, applies flag overrides and attaches the config
// and logger to the command context.
func setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("output") {
		cfg.Output = output
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger, err := logging.New(cmd.ErrOrStderr(), cfg.LogLevel)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = config.WithContext(ctx, cfg)
	ctx = logging.WithContext(ctx, logger)
	cmd.SetContext(ctx)
	logger.Debug("config loaded", "output", cfg.Output, "state_file", cfg.StateFile, "prompt", cfg.Prompt)
	return nil
}

func execute(args []string) error {
	root := newRootCmd()
	root.SetArgs(args)
	return root.Execute()
}

func main() {
	if err := execute(os.Args[1:]); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
