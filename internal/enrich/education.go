// Package enrich produces evidence for descriptive fields by matching
// free-text values against the reference catalog and deriving secondary
// attributes from its static mapping tables.
package enrich

import (
	"math"
	"strings"

	"github.com/agext/levenshtein"

	"github.com/medguard-ai/verify-cli/internal/model"
)

// Source names recorded on enrichment evidence.
const (
	SourceFuzzyMatch   = "fuzzy_matching"
	SourceOriginalData = "original_data"
	SourceSpecialtyMap = "specialty_mapping"
	SourceInference    = "specialty_inference"
)

// EducationMatch is the outcome of matching a school name against the
// catalog.
type EducationMatch struct {
	Value    string
	Score    int // 0-100 similarity against the best catalog entry
	Matched  bool
	Original string
}

// MatchEducation fuzzy-matches a medical school name against the catalog's
// institution list. Scores at or above the threshold accept the catalog
// entry with weight score/100; anything lower passes the original value
// through at the passthrough weight.
func (e *Enricher) MatchEducation(school string) (EducationMatch, []model.Evidence) {
	school = strings.TrimSpace(school)
	if school == "" {
		return EducationMatch{}, nil
	}

	best := ""
	bestScore := 0
	for _, candidate := range e.catalog.MedicalSchools {
		score := similarity(school, candidate)
		if score > bestScore {
			bestScore = score
			best = candidate
		}
	}

	if bestScore >= e.matchThreshold {
		match := EducationMatch{Value: best, Score: bestScore, Matched: true, Original: school}
		ev := model.NewEvidence(
			model.FieldMedicalSchool, SourceFuzzyMatch, best, float64(bestScore)/100, model.MethodFuzzyMatch).
			WithMetadata(map[string]any{
				"match_score":    bestScore,
				"original_value": school,
			})
		return match, []model.Evidence{ev}
	}

	match := EducationMatch{Value: school, Score: bestScore, Original: school}
	ev := model.NewEvidence(
		model.FieldMedicalSchool, SourceOriginalData, school, e.passthroughWeight, model.MethodPassthrough)
	return match, []model.Evidence{ev}
}

// similarity scores two strings 0-100, case-insensitively.
func similarity(a, b string) int {
	ratio := levenshtein.Match(strings.ToLower(a), strings.ToLower(b), nil)
	return int(math.Round(ratio * 100))
}
