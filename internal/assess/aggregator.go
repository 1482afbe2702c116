// Package assess turns resolved fields and anomaly flags into a record
// verdict: an overall confidence, a review decision, a 0-100 priority, and a
// risk tier.
package assess

import (
	"maps"

	"github.com/medguard-ai/verify-cli/internal/model"
)

// defaultFieldWeights ranks fields by how much a wrong value costs.
// Identity and credentials dominate; contact details matter less.
var defaultFieldWeights = map[string]float64{
	model.FieldNPI:           2.0,
	model.FieldLicense:       1.5,
	model.FieldPhone:         1.0,
	model.FieldAddress:       1.0,
	model.FieldSpecialty:     1.0,
	model.FieldMedicalSchool: 0.8,
	model.FieldEmail:         0.5,
}

const defaultFieldWeight = 1.0

// Aggregator computes a weighted overall confidence across resolved fields.
type Aggregator struct {
	weights       map[string]float64
	defaultWeight float64
}

// AggregatorOption configures an Aggregator.
type AggregatorOption func(*Aggregator)

// WithFieldWeights overrides individual field importance weights. Fields not
// named keep their defaults.
func WithFieldWeights(weights map[string]float64) AggregatorOption {
	return func(a *Aggregator) {
		maps.Copy(a.weights, weights)
	}
}

// WithDefaultWeight sets the weight for fields absent from the weight table.
func WithDefaultWeight(weight float64) AggregatorOption {
	return func(a *Aggregator) {
		if weight > 0 {
			a.defaultWeight = weight
		}
	}
}

// NewAggregator builds an aggregator with the standard weight table.
func NewAggregator(opts ...AggregatorOption) *Aggregator {
	a := &Aggregator{
		weights:       maps.Clone(defaultFieldWeights),
		defaultWeight: defaultFieldWeight,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Aggregate returns the importance-weighted mean confidence over the
// resolved fields. Fields with no resolution simply do not participate;
// they are excluded from both sums rather than counted as zero. No resolved
// fields at all yields zero confidence.
func (a *Aggregator) Aggregate(fields map[string]model.FieldResolution) float64 {
	weightedSum := 0.0
	totalWeight := 0.0
	for field, res := range fields {
		weight, ok := a.weights[field]
		if !ok {
			weight = a.defaultWeight
		}
		weightedSum += res.Confidence * weight
		totalWeight += weight
	}
	if totalWeight == 0 {
		return 0
	}
	return model.ClampConfidence(weightedSum / totalWeight)
}
