package main

import (
	"github.com/spf13/cobra"

	"bibentry/src/cmd/bibentry/fieldscmd"
)

// newFieldsCmd creates the "fields" command that lists the registered fields.
func newFieldsCmd() *cobra.Command { return fieldscmd.New() }
