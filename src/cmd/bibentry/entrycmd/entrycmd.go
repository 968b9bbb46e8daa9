package entrycmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"bibentry/src/internal/config"
	"bibentry/src/internal/entry"
	"bibentry/src/internal/logging"
	"bibentry/src/internal/output"
	"bibentry/src/internal/prompt"
	"bibentry/src/internal/sanitize"
)

// Result is the resolved entry and the values that produced it.
type Result struct {
	Entry  string        `yaml:"entry" json:"entry"`
	Values []entry.Value `yaml:"values" json:"values"`
}

// New returns the entry command which builds one citation from flags and
// interactive prompts.
func New() *cobra.Command {
	var selection string
	var noPrompt bool
	cmd := &cobra.Command{
		Use:   "entry",
		Short: "Build one bibliography entry, prompting for fields not given as flags",
		Example: `  bibentry entry
  bibentry entry --author "Bryan Kyle" --title '"Test"' --pubdate "01 Jan 2020" --ref http://example.com
  bibentry entry --selection http://example.com`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := config.FromContext(ctx)
			given := map[string]string{}
			for _, f := range entry.Fields() {
				if cmd.Flags().Changed(f.Name) {
					v, _ := cmd.Flags().GetString(f.Name)
					given[f.Name] = v
				}
			}
			sanitize.CleanValues(given)
			driver := prompt.New(cfg.Prompt, cmd.InOrStdin(), cmd.ErrOrStderr())
			res, err := Run(ctx, driver, given, selection, !noPrompt, logging.FromContext(ctx))
			if err != nil {
				return err
			}
			return output.Write(cmd.OutOrStdout(), cfg.Output, res, res.Entry)
		},
	}
	for _, f := range entry.Fields() {
		cmd.Flags().String(f.Name, "", f.Prompt)
	}
	cmd.Flags().StringVar(&selection, "selection", "", "Pre-selected text used as the reference before other fields are asked for")
	cmd.Flags().BoolVar(&noPrompt, "no-prompt", false, "Leave fields not given as flags empty instead of prompting")
	cmd.MarkFlagsMutuallyExclusive("ref", "selection")
	return cmd
}

// Run drives a session to completion. Values in given are used as-is; other
// fields are asked through d when interactive, or left empty otherwise.
func Run(ctx context.Context, d prompt.Driver, given map[string]string, selection string, interactive bool, log *slog.Logger) (Result, error) {
	s := entry.NewSession(entry.Default)
	step, err := s.Start(sanitize.CleanField(selection, sanitize.MaxFieldLen))
	if err != nil {
		return Result{}, err
	}
	for !step.Done() {
		v, ok := given[step.Next]
		if !ok && interactive {
			raw, err := d.Input(ctx, step.Prompt, "Current entry: "+step.Entry)
			if err != nil {
				return Result{}, fmt.Errorf("%s: %w", step.Next, err)
			}
			v = sanitize.CleanField(raw, sanitize.MaxFieldLen)
		}
		log.Debug("substituting field", "field", step.Next, "value", v)
		if step, err = s.Submit(v); err != nil {
			return Result{}, err
		}
	}
	log.Info("entry resolved", "fields", len(s.Values()))
	return Result{Entry: step.Entry, Values: s.Values()}, nil
}
