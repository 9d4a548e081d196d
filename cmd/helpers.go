package cmd

import (
	"github.com/spf13/cobra"

	"github.com/calev/stathelper/internal/console"
	"github.com/calev/stathelper/internal/helper"
	"github.com/calev/stathelper/internal/session"
)

var helpersCmd = &cobra.Command{
	Use:   "helpers",
	Short: "List the available helper types and their abbreviations",
	Run: func(cmd *cobra.Command, args []string) {
		out := console.NewPrinter(cmd.OutOrStdout())
		session.New(nil, out, helper.Env{Out: out}, "").PrintHelperTypes()
	},
}
