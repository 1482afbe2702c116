package main

import (
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/medguard-ai/verify-cli/internal/registry"
)

var boardsCmd = &cobra.Command{
	Use:   "boards",
	Short: "List the known state licensing boards",
	Run: func(cmd *cobra.Command, args []string) {
		tw := table.NewWriter()
		tw.SetOutputMirror(cmd.OutOrStdout())
		tw.SetStyle(table.StyleRounded)
		tw.AppendHeader(table.Row{"State", "Board", "Verification URL"})
		states := registry.KnownStates()
		sort.Strings(states)
		for _, state := range states {
			board := registry.BoardFor(state)
			tw.AppendRow(table.Row{state, board.Name, board.VerifyURL})
		}
		tw.Render()
	},
}

func init() {
	rootCmd.AddCommand(boardsCmd)
}
