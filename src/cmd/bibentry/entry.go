package main

import (
	"github.com/spf13/cobra"

	"bibentry/src/cmd/bibentry/entrycmd"
)

// newEntryCmd creates the "entry" command that builds one citation interactively.
func newEntryCmd() *cobra.Command { return entrycmd.New() }
