package model

import "time"

// Status is the final disposition of a record after assessment.
type Status string

const (
	StatusApproved    Status = "approved"
	StatusNeedsReview Status = "needs_review"
	StatusFlagged     Status = "flagged"
)

// RiskLevel is the coarse severity tier driving review urgency.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// Alternative is a losing value group from conflict resolution, with the
// total evidence weight that backed it.
type Alternative struct {
	Value string  `json:"value"`
	Score float64 `json:"score"`
}

// FieldResolution is the engine's decision for one field: the value it
// trusts, how confident it is, and what it voted down. Value is always one
// of the actual evidence values — never synthesized.
type FieldResolution struct {
	FieldKey     string        `json:"field_name"`
	Value        string        `json:"resolved_value"`
	Confidence   float64       `json:"confidence"`
	Source       string        `json:"source"`
	Conflict     bool          `json:"conflict"`
	TieBroken    bool          `json:"tie_broken,omitempty"`
	Alternatives []Alternative `json:"alternatives,omitempty"`
}

// Assessment is the per-record output of a full verification pass.
type Assessment struct {
	RecordID          string                     `json:"record_id"`
	Fields            map[string]FieldResolution `json:"resolved_fields"`
	OverallConfidence float64                    `json:"overall_confidence"`
	Flags             []string                   `json:"flags"`
	RequiresReview    bool                       `json:"requires_review"`
	Priority          int                        `json:"priority"`
	RiskLevel         RiskLevel                  `json:"risk_level"`
	Status            Status                     `json:"status"`
	AssessedAt        time.Time                  `json:"assessed_at"`
}

// Resolution returns the resolution for a field and whether one exists.
func (a *Assessment) Resolution(fieldKey string) (FieldResolution, bool) {
	fr, ok := a.Fields[fieldKey]
	return fr, ok
}
