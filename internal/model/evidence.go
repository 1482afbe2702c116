package model

import "time"

// Extraction methods recorded on evidence. These describe how a source
// produced its claim, not how trustworthy it is — trust lives in Weight.
const (
	MethodAPILookup     = "api_lookup"
	MethodNormalization = "normalization"
	MethodFuzzyMatch    = "fuzzy_match"
	MethodMapping       = "mapping"
	MethodInference     = "inference"
	MethodPassthrough   = "passthrough"
)

// Well-known field keys shared by validators, resolvers, and the aggregator.
const (
	FieldNPI           = "npi"
	FieldPhone         = "phone"
	FieldEmail         = "email"
	FieldAddress       = "address"
	FieldLicense       = "license"
	FieldSpecialty     = "specialty"
	FieldMedicalSchool = "medical_school"
	FieldServices      = "services"
)

// Evidence is one source's claim about one field's value, with the trust
// weight that source carries. Evidence is never mutated after creation.
type Evidence struct {
	FieldKey  string         `json:"field_name"`
	Source    string         `json:"source_name"`
	Value     string         `json:"value"`
	Weight    float64        `json:"weight"`
	Method    string         `json:"method"`
	Timestamp time.Time      `json:"timestamp"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// NewEvidence builds an evidence item with the weight clamped to [0,1].
func NewEvidence(fieldKey, source, value string, weight float64, method string) Evidence {
	return Evidence{
		FieldKey:  fieldKey,
		Source:    source,
		Value:     value,
		Weight:    ClampConfidence(weight),
		Method:    method,
		Timestamp: time.Now().UTC(),
	}
}

// WithMetadata returns a copy of the evidence carrying the given metadata.
func (e Evidence) WithMetadata(md map[string]any) Evidence {
	e.Metadata = md
	return e
}

// ClampConfidence clamps a confidence or weight value to [0,1].
func ClampConfidence(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// ClampPriority clamps a review priority to [0,100].
func ClampPriority(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
