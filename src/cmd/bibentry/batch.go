package main

import (
	"github.com/spf13/cobra"

	"bibentry/src/cmd/bibentry/batchcmd"
)

// newBatchCmd creates the "batch" command that renders a YAML file of records.
func newBatchCmd() *cobra.Command { return batchcmd.New() }
