package assess

import (
	"strings"

	"github.com/medguard-ai/verify-cli/internal/model"
)

// Priority contributions. Flags contribute per flag; the high-risk bump
// applies at most once per record.
const (
	priorityLowConfidence = 20
	priorityPerFlag       = 10
	priorityHighRisk      = 30
)

// Default review thresholds.
const (
	defaultHighThreshold   = 0.80
	defaultMediumThreshold = 0.60
)

// highRiskKeywords escalate any flag containing them to the high risk tier.
var highRiskKeywords = []string{"fraud", "suspicious", "expired", "invalid"}

// Verdict is the review decision for one record.
type Verdict struct {
	RequiresReview bool
	Priority       int
	RiskLevel      model.RiskLevel
	Status         model.Status
}

// Prioritizer maps (overall confidence, flags) to a Verdict.
type Prioritizer struct {
	highThreshold   float64
	mediumThreshold float64
}

// PrioritizerOption configures a Prioritizer.
type PrioritizerOption func(*Prioritizer)

// WithThresholds overrides the high and medium confidence thresholds.
func WithThresholds(high, medium float64) PrioritizerOption {
	return func(p *Prioritizer) {
		if high > 0 {
			p.highThreshold = high
		}
		if medium > 0 {
			p.mediumThreshold = medium
		}
	}
}

// NewPrioritizer builds a prioritizer with the standard thresholds.
func NewPrioritizer(opts ...PrioritizerOption) *Prioritizer {
	p := &Prioritizer{
		highThreshold:   defaultHighThreshold,
		mediumThreshold: defaultMediumThreshold,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Review decides whether a record needs a human and how urgently. The
// outcome is a pure function of the inputs: the same confidence and flags
// always produce the same verdict.
func (p *Prioritizer) Review(confidence float64, flags []string) Verdict {
	v := Verdict{RiskLevel: model.RiskLow}

	if confidence < p.mediumThreshold {
		v.RequiresReview = true
		v.Priority += priorityLowConfidence
	}
	if len(flags) > 0 {
		v.RequiresReview = true
		v.Priority += priorityPerFlag * len(flags)
	}

	for _, flag := range flags {
		if containsHighRisk(flag) {
			v.RiskLevel = model.RiskHigh
			v.Priority += priorityHighRisk
			break
		}
	}
	if v.RiskLevel == model.RiskLow && (confidence < p.highThreshold || len(flags) > 0) {
		v.RiskLevel = model.RiskMedium
	}

	v.Priority = model.ClampPriority(v.Priority)

	switch {
	case confidence >= p.highThreshold && len(flags) == 0:
		v.Status = model.StatusApproved
	case v.RequiresReview:
		v.Status = model.StatusNeedsReview
	default:
		v.Status = model.StatusFlagged
	}
	return v
}

func containsHighRisk(flag string) bool {
	lower := strings.ToLower(flag)
	for _, keyword := range highRiskKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}
