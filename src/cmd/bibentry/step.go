package main

import (
	"github.com/spf13/cobra"

	"bibentry/src/cmd/bibentry/stepcmd"
)

// The step commands let an editor drive an entry one field per invocation.

func newStartCmd() *cobra.Command  { return stepcmd.Start() }
func newSubmitCmd() *cobra.Command { return stepcmd.Submit() }
func newShowCmd() *cobra.Command   { return stepcmd.Show() }
