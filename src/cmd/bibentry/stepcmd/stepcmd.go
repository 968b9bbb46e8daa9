package stepcmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"bibentry/src/internal/config"
	"bibentry/src/internal/entry"
	"bibentry/src/internal/logging"
	"bibentry/src/internal/output"
	"bibentry/src/internal/sanitize"
	"bibentry/src/internal/schema"
	"bibentry/src/internal/store"
)

// Report is what every step command prints: the working entry and, until it
// is resolved, the next field to submit.
type Report struct {
	entry.Step `yaml:",inline"`
	Done       bool `yaml:"done" json:"done"`
}

// Start returns the "start" command which begins a new entry in the state file.
func Start() *cobra.Command {
	var state, selection string
	cmd := &cobra.Command{
		Use:   "start",
		Short: "Begin a new entry and print the first field to fill",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := statePath(cmd, state)
			s := entry.NewSession(entry.Default)
			step, err := s.Start(sanitize.CleanField(selection, sanitize.MaxFieldLen))
			if err != nil {
				return err
			}
			return persist(cmd, path, s, step, "")
		},
	}
	addStateFlag(cmd, &state)
	cmd.Flags().StringVar(&selection, "selection", "", "Pre-selected text used as the reference")
	return cmd
}

// Submit returns the "submit" command which fills the pending field.
func Submit() *cobra.Command {
	var state, field string
	cmd := &cobra.Command{
		Use:   "submit <value>",
		Short: "Fill the pending field (or --field) and print the next one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := statePath(cmd, state)
			s, st, err := load(path)
			if err != nil {
				return err
			}
			value := sanitize.CleanField(args[0], sanitize.MaxFieldLen)
			var step entry.Step
			if field != "" {
				step, err = s.SubmitField(field, value)
			} else {
				step, err = s.Submit(value)
			}
			if err != nil {
				return err
			}
			logging.FromContext(cmd.Context()).Debug("substituted field", "entry", step.Entry, "next", step.Next)
			return persist(cmd, path, s, step, st.Created)
		},
	}
	addStateFlag(cmd, &state)
	cmd.Flags().StringVar(&field, "field", "", "Field to fill instead of the pending one")
	return cmd
}

// Show returns the "show" command which prints the entry in progress.
func Show() *cobra.Command {
	var state string
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the entry in progress and the next field to fill",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, _, err := load(statePath(cmd, state))
			if err != nil {
				return err
			}
			return write(cmd, s.Next())
		},
	}
	addStateFlag(cmd, &state)
	return cmd
}

func addStateFlag(cmd *cobra.Command, dst *string) {
	cmd.Flags().StringVar(dst, "state", "", "State file (default from config state_file)")
}

func statePath(cmd *cobra.Command, flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return config.FromContext(cmd.Context()).StateFile
}

func load(path string) (*entry.Session, schema.State, error) {
	st, err := store.LoadState(path)
	if err != nil {
		return nil, st, err
	}
	tmpl, err := entry.ParseTemplate(st.Template)
	if err != nil {
		return nil, st, fmt.Errorf("state %s: %w", path, err)
	}
	values := make([]entry.Value, 0, len(st.Values))
	for _, v := range st.Values {
		values = append(values, entry.Value{Field: v.Field, Value: v.Value})
	}
	s, err := entry.Restore(tmpl, values)
	if err != nil {
		return nil, st, fmt.Errorf("state %s: %w", path, err)
	}
	return s, st, nil
}

// persist saves an unresolved session or clears the state once it resolves.
func persist(cmd *cobra.Command, path string, s *entry.Session, step entry.Step, created string) error {
	log := logging.FromContext(cmd.Context())
	if step.Done() {
		if err := store.ClearState(path); err != nil {
			return err
		}
		log.Info("entry resolved; state cleared", "state", path)
		return write(cmd, step)
	}
	st := store.NewState(s.Template().String())
	if created != "" {
		st.Created = created
	}
	for _, v := range s.Values() {
		st.Values = append(st.Values, schema.FieldValue{Field: v.Field, Value: v.Value})
	}
	if err := store.SaveState(path, st); err != nil {
		return err
	}
	log.Info("state saved", "state", path, "next", step.Next)
	return write(cmd, step)
}

func write(cmd *cobra.Command, step entry.Step) error {
	r := Report{Step: step, Done: step.Done()}
	text := step.Entry
	if !r.Done {
		text = fmt.Sprintf("%s\nnext: %s (%s)", step.Entry, step.Next, step.Prompt)
	}
	return output.Write(cmd.OutOrStdout(), config.FromContext(cmd.Context()).Output, r, text)
}
