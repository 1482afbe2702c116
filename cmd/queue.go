package main

import (
	"os/signal"
	"strings"
	"syscall"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/medguard-ai/verify-cli/internal/export"
	"github.com/medguard-ai/verify-cli/internal/ingest"
)

var (
	queueInput string
	queueLimit int
)

var queueCmd = &cobra.Command{
	Use:   "queue",
	Short: "Assess records and print the review queue",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		providers, err := ingest.LoadCSV(queueInput)
		if err != nil {
			return err
		}

		p, err := buildPipeline(cfg)
		if err != nil {
			return err
		}
		result, err := p.Assess(ctx, providers)
		if err != nil {
			return err
		}

		exporter, err := export.NewExporter(cfg.Export.OutputDir)
		if err != nil {
			return err
		}
		queue := exporter.BuildQueue(export.MergeDirectory(providers, result.Assessments))
		if queueLimit > 0 && len(queue) > queueLimit {
			queue = queue[:queueLimit]
		}

		tw := table.NewWriter()
		tw.SetOutputMirror(cmd.OutOrStdout())
		tw.SetStyle(table.StyleRounded)
		tw.AppendHeader(table.Row{"Priority", "Record", "Name", "Risk", "Issue", "Flags"})
		for _, item := range queue {
			tw.AppendRow(table.Row{
				item.Priority,
				item.RecordID,
				item.ProviderName,
				strings.ToUpper(string(item.RiskLevel)),
				item.IssueType,
				strings.Join(item.Flags, "; "),
			})
		}
		tw.Render()
		return nil
	},
}

func init() {
	queueCmd.Flags().StringVarP(&queueInput, "input", "i", "", "provider CSV file (required)")
	queueCmd.Flags().IntVarP(&queueLimit, "limit", "n", 0, "show at most this many entries")
	_ = queueCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(queueCmd)
}
