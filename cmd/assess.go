package main

import (
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/medguard-ai/verify-cli/internal/export"
	"github.com/medguard-ai/verify-cli/internal/ingest"
)

var (
	assessInput  string
	assessOutput string
	assessEmails bool
)

var assessCmd = &cobra.Command{
	Use:   "assess",
	Short: "Assess a batch of provider records and export the results",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		providers, err := ingest.LoadCSV(assessInput)
		if err != nil {
			return err
		}
		if len(providers) == 0 {
			return eris.Errorf("no usable records in %s", assessInput)
		}

		p, err := buildPipeline(cfg)
		if err != nil {
			return err
		}

		result, err := p.Assess(ctx, providers)
		if err != nil {
			return err
		}

		outputDir := assessOutput
		if outputDir == "" {
			outputDir = cfg.Export.OutputDir
		}
		exporter, err := export.NewExporter(outputDir)
		if err != nil {
			return err
		}

		entries := export.MergeDirectory(providers, result.Assessments)
		if _, err := exporter.DirectoryCSV(entries); err != nil {
			return err
		}
		if _, err := exporter.DirectoryJSON(entries); err != nil {
			return err
		}
		if _, err := exporter.ValidationReport(entries, result.Metrics); err != nil {
			return err
		}

		queue := exporter.BuildQueue(entries)
		if _, err := exporter.ReviewQueueJSON(queue); err != nil {
			return err
		}
		if assessEmails {
			if _, err := exporter.EmailTemplates(queue); err != nil {
				return err
			}
		}

		zap.L().Info("assessment complete",
			zap.Int("records", len(providers)),
			zap.Int("succeeded", result.Metrics.Succeeded),
			zap.Int("failed", result.Metrics.Failed),
			zap.Int("review_queue", len(queue)),
			zap.String("output_dir", outputDir),
		)
		return nil
	},
}

func init() {
	assessCmd.Flags().StringVarP(&assessInput, "input", "i", "", "provider CSV file (required)")
	assessCmd.Flags().StringVarP(&assessOutput, "output", "o", "", "output directory (default from config)")
	assessCmd.Flags().BoolVar(&assessEmails, "emails", false, "also generate outreach email drafts")
	_ = assessCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(assessCmd)
}
