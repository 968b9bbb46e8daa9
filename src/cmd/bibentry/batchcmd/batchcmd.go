package batchcmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"bibentry/src/internal/canonical"
	"bibentry/src/internal/config"
	"bibentry/src/internal/dates"
	"bibentry/src/internal/entry"
	"bibentry/src/internal/logging"
	"bibentry/src/internal/output"
	"bibentry/src/internal/sanitize"
	"bibentry/src/internal/schema"
	"bibentry/src/internal/store"
	"bibentry/src/internal/stringsx"
)

// Rendered is one resolved record.
type Rendered struct {
	ID    string `yaml:"id" json:"id"`
	Entry string `yaml:"entry" json:"entry"`
}

// New returns the batch command which renders every record of a YAML file.
func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch <file.yaml>",
		Short: "Render one entry per record of a YAML batch file",
		Long: `Render one entry per record of a YAML batch file. The file is either a list
of records or a mapping with a "records" list; each record may set id, author,
title, pubdate and ref.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := store.ReadBatch(args[0])
			if err != nil {
				return err
			}
			out, err := Render(records)
			if err != nil {
				return err
			}
			logging.FromContext(cmd.Context()).Info("batch rendered", "file", args[0], "records", len(out))
			lines := make([]string, 0, len(out))
			for _, r := range out {
				lines = append(lines, r.Entry)
			}
			return output.Write(cmd.OutOrStdout(), config.FromContext(cmd.Context()).Output, out, strings.Join(lines, "\n"))
		},
	}
	return cmd
}

// Render resolves every record. Records without an id get a slug of their
// title and publication year.
func Render(records schema.Batch) ([]Rendered, error) {
	out := make([]Rendered, 0, len(records))
	for i := range records {
		r := records[i]
		sanitize.CleanRecord(&r)
		e, err := entry.Build(r.Values(), "")
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i+1, err)
		}
		out = append(out, Rendered{ID: stringsx.FirstNonEmpty(r.ID, recordID(r)), Entry: e})
	}
	return out, nil
}

func recordID(r schema.Record) string {
	var year *int
	if y := dates.YearFromPubDate(r.PubDate); y > 0 {
		year = &y
	}
	title := stringsx.FirstNonEmpty(canonical.Title(r.Title), r.Author, r.Ref)
	return schema.Slugify(title, year)
}
