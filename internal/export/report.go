package export

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/medguard-ai/verify-cli/internal/model"
)

const topFlagCount = 10

// ReportStats are the batch-level figures shown in the validation report.
type ReportStats struct {
	Total         int
	Approved      int
	NeedsReview   int
	Flagged       int
	AvgConfidence float64
	FlagCounts    map[string]int
}

// Summarize computes report statistics over the directory entries.
func Summarize(entries []DirectoryEntry) ReportStats {
	stats := ReportStats{
		Total:      len(entries),
		FlagCounts: make(map[string]int),
	}

	confidenceSum := 0.0
	for _, entry := range entries {
		a := entry.Assessment
		switch a.Status {
		case model.StatusApproved:
			stats.Approved++
		case model.StatusNeedsReview:
			stats.NeedsReview++
		case model.StatusFlagged:
			stats.Flagged++
		}
		confidenceSum += a.OverallConfidence
		for _, flag := range a.Flags {
			stats.FlagCounts[flag]++
		}
	}
	if stats.Total > 0 {
		stats.AvgConfidence = confidenceSum / float64(stats.Total)
	}
	return stats
}

// ValidationReport writes the human-readable batch summary and returns its
// path. The report shows status counts, average confidence, and the most
// frequent flags.
func (e *Exporter) ValidationReport(entries []DirectoryEntry, metrics model.RunMetrics) (string, error) {
	stats := Summarize(entries)
	path := e.stampedPath("validation_report", "txt")

	var b strings.Builder
	fmt.Fprintf(&b, "PROVIDER VALIDATION REPORT\n")
	fmt.Fprintf(&b, "Run %s, generated %s\n\n", metrics.RunID, e.now().Format(time.RFC3339))

	summary := table.NewWriter()
	summary.SetStyle(table.StyleRounded)
	summary.AppendHeader(table.Row{"Metric", "Value"})
	summary.AppendRows([]table.Row{
		{"Total providers", stats.Total},
		{"Approved", statusCell(stats.Approved, stats.Total)},
		{"Needs review", statusCell(stats.NeedsReview, stats.Total)},
		{"Flagged", statusCell(stats.Flagged, stats.Total)},
		{"Average confidence", fmt.Sprintf("%.3f", stats.AvgConfidence)},
		{"Processed", metrics.Processed},
		{"Failed", metrics.Failed},
		{"Duration", metrics.Duration.Round(time.Millisecond)},
	})
	b.WriteString(summary.Render())
	b.WriteString("\n\n")

	if len(stats.FlagCounts) > 0 {
		flags := table.NewWriter()
		flags.SetStyle(table.StyleRounded)
		flags.SetTitle("Top Flags")
		flags.AppendHeader(table.Row{"Flag", "Count"})
		for _, fc := range topFlags(stats.FlagCounts, topFlagCount) {
			flags.AppendRow(table.Row{fc.flag, fc.count})
		}
		b.WriteString(flags.Render())
		b.WriteString("\n")
	}

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return "", eris.Wrapf(err, "export: write report %s", path)
	}
	zap.L().Info("export: wrote validation report", zap.String("path", path))
	return path, nil
}

func statusCell(count, total int) string {
	if total == 0 {
		return "0"
	}
	return fmt.Sprintf("%d (%.1f%%)", count, float64(count)/float64(total)*100)
}

type flagCount struct {
	flag  string
	count int
}

// topFlags returns the n most frequent flags, count descending, then flag
// text ascending for stable output.
func topFlags(counts map[string]int, n int) []flagCount {
	ordered := make([]flagCount, 0, len(counts))
	for flag, count := range counts {
		ordered = append(ordered, flagCount{flag, count})
	}
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].count != ordered[j].count {
			return ordered[i].count > ordered[j].count
		}
		return ordered[i].flag < ordered[j].flag
	})
	if len(ordered) > n {
		ordered = ordered[:n]
	}
	return ordered
}
