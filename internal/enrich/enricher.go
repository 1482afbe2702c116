package enrich

import (
	"github.com/medguard-ai/verify-cli/internal/model"
)

// Default tuning mirrors the reference tables' calibration.
const (
	defaultMatchThreshold    = 80
	defaultPassthroughWeight = 0.4
)

// Enricher resolves descriptive fields against a reference catalog.
type Enricher struct {
	catalog           *model.Catalog
	matchThreshold    int
	passthroughWeight float64
}

// Option configures an Enricher.
type Option func(*Enricher)

// WithMatchThreshold overrides the 0-100 score required to accept a catalog
// match.
func WithMatchThreshold(threshold int) Option {
	return func(e *Enricher) {
		if threshold > 0 {
			e.matchThreshold = threshold
		}
	}
}

// WithPassthroughWeight overrides the weight given to unmatched values that
// pass through unchanged.
func WithPassthroughWeight(weight float64) Option {
	return func(e *Enricher) {
		e.passthroughWeight = model.ClampConfidence(weight)
	}
}

// NewEnricher builds an enricher over the given catalog.
func NewEnricher(catalog *model.Catalog, opts ...Option) *Enricher {
	e := &Enricher{
		catalog:           catalog,
		matchThreshold:    defaultMatchThreshold,
		passthroughWeight: defaultPassthroughWeight,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Collect runs every applicable resolver for the record and returns the
// evidence produced. Absent fields are skipped.
func (e *Enricher) Collect(p model.Provider) []model.Evidence {
	var evidence []model.Evidence

	if p.MedicalSchool != "" {
		_, ev := e.MatchEducation(p.MedicalSchool)
		evidence = append(evidence, ev...)
	}

	if p.Specialty != "" {
		_, ev := e.MapSpecialty(p.Specialty, p.Degree)
		evidence = append(evidence, ev...)

		_, sev := e.InferServices(p.Specialty)
		evidence = append(evidence, sev...)
	}

	return evidence
}
