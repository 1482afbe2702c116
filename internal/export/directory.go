// Package export writes assessment results to files consumed downstream:
// the provider directory (CSV and JSON), the validation summary report, the
// prioritized review queue, and outreach email drafts.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/medguard-ai/verify-cli/internal/model"
)

// Exporter writes files under a single output directory, stamping each file
// name with the export time.
type Exporter struct {
	outputDir string
	now       func() time.Time
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithNow fixes the export clock, mainly for tests.
func WithNow(now func() time.Time) Option {
	return func(e *Exporter) {
		if now != nil {
			e.now = now
		}
	}
}

// NewExporter creates the output directory if needed.
func NewExporter(outputDir string, opts ...Option) (*Exporter, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, eris.Wrapf(err, "export: create output dir %s", outputDir)
	}
	e := &Exporter{outputDir: outputDir, now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

func (e *Exporter) stampedPath(prefix, ext string) string {
	return filepath.Join(e.outputDir, fmt.Sprintf("%s_%s.%s", prefix, e.now().Format("20060102_150405"), ext))
}

// DirectoryEntry is one provider joined with its assessment, the unit of
// the exported directory.
type DirectoryEntry struct {
	Provider   model.Provider   `json:"provider"`
	Assessment model.Assessment `json:"assessment"`
}

// MergeDirectory joins providers with their assessments by record ID.
// Providers whose assessment failed are dropped from the directory.
func MergeDirectory(providers []model.Provider, assessments []model.Assessment) []DirectoryEntry {
	byID := make(map[string]model.Assessment, len(assessments))
	for _, a := range assessments {
		byID[a.RecordID] = a
	}

	var entries []DirectoryEntry
	for _, p := range providers {
		a, ok := byID[p.RecordID()]
		if !ok {
			continue
		}
		entries = append(entries, DirectoryEntry{Provider: p, Assessment: a})
	}
	return entries
}

// resolvedOr returns the resolved value for a field, falling back to the
// raw record value when resolution produced nothing.
func (d DirectoryEntry) resolvedOr(field, raw string) string {
	if fr, ok := d.Assessment.Resolution(field); ok && fr.Value != "" {
		return fr.Value
	}
	return raw
}

// DirectoryCSV writes the directory as a flat CSV and returns its path.
// Resolved values win over raw record values; flags are joined with "; ".
func (e *Exporter) DirectoryCSV(entries []DirectoryEntry) (string, error) {
	path := e.stampedPath("provider_directory", "csv")
	f, err := os.Create(path)
	if err != nil {
		return "", eris.Wrapf(err, "export: create %s", path)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{
		"record_id", "name", "degree", "specialty", "phone", "email", "address",
		"medical_school", "overall_confidence", "status", "risk_level", "priority", "flags",
	}
	if err := w.Write(header); err != nil {
		return "", eris.Wrap(err, "export: write csv header")
	}

	for _, entry := range entries {
		p, a := entry.Provider, entry.Assessment
		row := []string{
			a.RecordID,
			p.FullName(),
			p.Degree,
			entry.resolvedOr(model.FieldSpecialty, p.Specialty),
			entry.resolvedOr(model.FieldPhone, p.Phone),
			entry.resolvedOr(model.FieldEmail, p.Email),
			entry.resolvedOr(model.FieldAddress, p.StreetAddress),
			entry.resolvedOr(model.FieldMedicalSchool, p.MedicalSchool),
			fmt.Sprintf("%.3f", a.OverallConfidence),
			string(a.Status),
			string(a.RiskLevel),
			fmt.Sprintf("%d", a.Priority),
			strings.Join(a.Flags, "; "),
		}
		if err := w.Write(row); err != nil {
			return "", eris.Wrap(err, "export: write csv row")
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", eris.Wrap(err, "export: flush csv")
	}

	zap.L().Info("export: wrote directory csv",
		zap.String("path", path), zap.Int("entries", len(entries)))
	return path, nil
}

// DirectoryJSON writes the directory with full assessment detail.
func (e *Exporter) DirectoryJSON(entries []DirectoryEntry) (string, error) {
	path := e.stampedPath("provider_directory", "json")

	doc := struct {
		Metadata struct {
			ExportDate     time.Time `json:"export_date"`
			TotalProviders int       `json:"total_providers"`
		} `json:"metadata"`
		Providers []DirectoryEntry `json:"providers"`
	}{Providers: entries}
	doc.Metadata.ExportDate = e.now()
	doc.Metadata.TotalProviders = len(entries)

	if err := writeJSON(path, doc); err != nil {
		return "", err
	}
	zap.L().Info("export: wrote directory json",
		zap.String("path", path), zap.Int("entries", len(entries)))
	return path, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "export: create %s", path)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return eris.Wrapf(err, "export: encode %s", path)
	}
	return nil
}
