package assess

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/medguard-ai/verify-cli/internal/model"
)

func resolution(field string, confidence float64) model.FieldResolution {
	return model.FieldResolution{FieldKey: field, Value: "x", Confidence: confidence}
}

func TestAggregate(t *testing.T) {
	t.Parallel()

	t.Run("importance-weighted mean", func(t *testing.T) {
		t.Parallel()
		a := NewAggregator()
		got := a.Aggregate(map[string]model.FieldResolution{
			model.FieldNPI:     resolution(model.FieldNPI, 0.9),     // weight 2.0
			model.FieldPhone:   resolution(model.FieldPhone, 0.75),  // weight 1.0
			model.FieldAddress: resolution(model.FieldAddress, 0.5625),
		})
		// (0.9*2 + 0.75*1 + 0.5625*1) / 4.0
		assert.InDelta(t, 0.778125, got, 1e-9)
	})

	t.Run("missing fields are excluded, not zeroed", func(t *testing.T) {
		t.Parallel()
		a := NewAggregator()
		got := a.Aggregate(map[string]model.FieldResolution{
			model.FieldEmail: resolution(model.FieldEmail, 0.6),
		})
		assert.InDelta(t, 0.6, got, 1e-9)
	})

	t.Run("unknown field uses the default weight", func(t *testing.T) {
		t.Parallel()
		a := NewAggregator()
		got := a.Aggregate(map[string]model.FieldResolution{
			model.FieldNPI: resolution(model.FieldNPI, 1.0), // weight 2.0
			"fax":          resolution("fax", 0.4),          // weight 1.0
		})
		assert.InDelta(t, (1.0*2+0.4*1)/3.0, got, 1e-9)
	})

	t.Run("no resolutions yields zero", func(t *testing.T) {
		t.Parallel()
		assert.Zero(t, NewAggregator().Aggregate(nil))
	})

	t.Run("weight overrides", func(t *testing.T) {
		t.Parallel()
		a := NewAggregator(WithFieldWeights(map[string]float64{model.FieldEmail: 3.0}))
		got := a.Aggregate(map[string]model.FieldResolution{
			model.FieldEmail: resolution(model.FieldEmail, 0.5),
			model.FieldPhone: resolution(model.FieldPhone, 1.0),
		})
		assert.InDelta(t, (0.5*3+1.0*1)/4.0, got, 1e-9)
	})
}

func TestReview(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		confidence float64
		flags      []string
		want       Verdict
	}{
		{
			name:       "clean high confidence record",
			confidence: 0.92,
			want:       Verdict{Priority: 0, RiskLevel: model.RiskLow, Status: model.StatusApproved},
		},
		{
			name:       "low confidence with one expired-license flag",
			confidence: 0.55,
			flags:      []string{"Expired license: 2024-01-15"},
			want: Verdict{
				RequiresReview: true,
				Priority:       60, // 20 low confidence + 10 flag + 30 high risk
				RiskLevel:      model.RiskHigh,
				Status:         model.StatusNeedsReview,
			},
		},
		{
			name:       "benign flag on confident record",
			confidence: 0.85,
			flags:      []string{"NPI not found in registry"},
			want: Verdict{
				RequiresReview: true,
				Priority:       10,
				RiskLevel:      model.RiskMedium,
				Status:         model.StatusNeedsReview,
			},
		},
		{
			name:       "confident record with one suspicious flag",
			confidence: 0.778125,
			flags:      []string{"Suspicious phone pattern: 555-?\\d{4}"},
			want: Verdict{
				RequiresReview: true,
				Priority:       40, // 10 flag + 30 high risk
				RiskLevel:      model.RiskHigh,
				Status:         model.StatusNeedsReview,
			},
		},
		{
			name:       "high-risk bump applies once",
			confidence: 0.90,
			flags: []string{
				"Suspicious phone pattern: 555-?\\d{4}",
				"Suspicious email pattern",
			},
			want: Verdict{
				RequiresReview: true,
				Priority:       50, // 2 flags + one high-risk bump
				RiskLevel:      model.RiskHigh,
				Status:         model.StatusNeedsReview,
			},
		},
		{
			name:       "middling confidence and no flags is not approvable",
			confidence: 0.70,
			want:       Verdict{Priority: 0, RiskLevel: model.RiskMedium, Status: model.StatusFlagged},
		},
		{
			name:       "priority capped at 100",
			confidence: 0.10,
			flags: []string{
				"Suspicious phone pattern: 555-?\\d{4}",
				"Suspicious address pattern: PO Box",
				"Suspicious email pattern",
				"Expired license: 2020-01-01",
				"Invalid NPI format",
				"License not found by board",
			},
			want: Verdict{
				RequiresReview: true,
				Priority:       100,
				RiskLevel:      model.RiskHigh,
				Status:         model.StatusNeedsReview,
			},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := NewPrioritizer().Review(tc.confidence, tc.flags)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestReviewThresholdOverrides(t *testing.T) {
	t.Parallel()

	p := NewPrioritizer(WithThresholds(0.95, 0.90))
	v := p.Review(0.85, nil)
	assert.True(t, v.RequiresReview) // below the raised medium threshold
	assert.Equal(t, model.StatusNeedsReview, v.Status)
}
