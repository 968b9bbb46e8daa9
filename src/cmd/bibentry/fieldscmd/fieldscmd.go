package fieldscmd

import (
	"bytes"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"bibentry/src/internal/config"
	"bibentry/src/internal/entry"
	"bibentry/src/internal/output"
)

// Info describes one registered field.
type Info struct {
	Name         string `yaml:"name" json:"name"`
	Prompt       string `yaml:"prompt" json:"prompt"`
	Wrap         string `yaml:"wrap" json:"wrap"`
	Canonicalize bool   `yaml:"canonicalize" json:"canonicalize"`
}

// New returns the fields command which lists the entry template and its fields.
func New() *cobra.Command {
	return &cobra.Command{
		Use:   "fields",
		Short: "List the entry template fields, prompts and wrap formats",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			infos := List()
			var b bytes.Buffer
			tw := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
			fmt.Fprintf(tw, "template:\t%s\n", entry.TemplateText)
			for _, f := range infos {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", f.Name, f.Prompt, f.Wrap)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			return output.Write(cmd.OutOrStdout(), config.FromContext(cmd.Context()).Output, infos, strings.TrimRight(b.String(), "\n"))
		},
	}
}

// List returns the registered fields in template order.
func List() []Info {
	fields := entry.Fields()
	out := make([]Info, 0, len(fields))
	for _, f := range fields {
		out = append(out, Info{Name: f.Name, Prompt: f.Prompt, Wrap: f.Wrap, Canonicalize: f.Canonicalize != nil})
	}
	return out
}
