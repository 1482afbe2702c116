package model

import "time"

// Pipeline stage names as recorded in RunMetrics.StageDurations.
const (
	StageValidation = "validation"
	StageEnrichment = "enrichment"
	StageResolution = "resolution"
	StageAnomaly    = "anomaly"
	StageScoring    = "scoring"
)

// RunMetrics summarizes one batch assessment run.
type RunMetrics struct {
	RunID             string                   `json:"run_id"`
	StartedAt         time.Time                `json:"started_at"`
	CompletedAt       time.Time                `json:"completed_at"`
	Duration          time.Duration            `json:"duration"`
	StageDurations    map[string]time.Duration `json:"stage_durations"`
	Processed         int                      `json:"processed"`
	Succeeded         int                      `json:"succeeded"`
	Failed            int                      `json:"failed"`
	ThroughputPerHour float64                  `json:"throughput_per_hour"`
}

// RecordError is one record's failure captured during a batch run.
type RecordError struct {
	RecordID string `json:"record_id"`
	Reason   string `json:"reason"`
}
