package pipeline

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medguard-ai/verify-cli/internal/anomaly"
	"github.com/medguard-ai/verify-cli/internal/assess"
	"github.com/medguard-ai/verify-cli/internal/enrich"
	"github.com/medguard-ai/verify-cli/internal/model"
	"github.com/medguard-ai/verify-cli/internal/registry"
	"github.com/medguard-ai/verify-cli/internal/validate"
)

func newTestPipeline(t *testing.T, opts ...Option) *Pipeline {
	t.Helper()

	static := registry.NewStatic([]registry.Record{
		{NPI: "1234567897", ProviderName: "Jane Smith", Taxonomy: "Cardiology", Status: "A"},
	}, nil)

	return New(
		validate.NewValidator(validate.WithRegistry(static, 0.90)),
		enrich.NewEnricher(model.DefaultCatalog()),
		anomaly.NewDetector(anomaly.WithNow(func() time.Time {
			return time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)
		})),
		assess.NewAggregator(),
		assess.NewPrioritizer(),
		opts...,
	)
}

func cleanProvider() model.Provider {
	return model.Provider{
		NPI:           "1234567897",
		FirstName:     "Jane",
		LastName:      "Smith",
		Degree:        "MD",
		Specialty:     "Cardiology",
		Phone:         "617-867-5309",
		Email:         "jane.smith@clinic.org",
		StreetAddress: "123 main street",
		City:          "boston",
		State:         "ma",
		ZipCode:       "02134",
		MedicalSchool: "Harvard Medical School",
	}
}

func TestAssessSingleCleanRecord(t *testing.T) {
	t.Parallel()

	p := newTestPipeline(t)
	result, err := p.Assess(context.Background(), []model.Provider{cleanProvider()})
	require.NoError(t, err)
	require.Len(t, result.Assessments, 1)
	assert.Empty(t, result.Errors)

	a := result.Assessments[0]
	assert.Equal(t, "1234567897", a.RecordID)
	assert.Empty(t, a.Flags)
	assert.False(t, a.RequiresReview)

	npi, ok := a.Resolution(model.FieldNPI)
	require.True(t, ok)
	assert.Equal(t, "1234567897", npi.Value)
	assert.False(t, npi.Conflict)

	phone, ok := a.Resolution(model.FieldPhone)
	require.True(t, ok)
	assert.Equal(t, "(617) 867-5309", phone.Value)

	assert.Greater(t, a.OverallConfidence, 0.0)
}

func TestAssessSuspiciousRecord(t *testing.T) {
	t.Parallel()

	suspect := cleanProvider()
	suspect.Phone = "(555) 555-1234"
	suspect.Email = "test@example.com"
	suspect.LicenseExpiration = "2020-01-01"

	p := newTestPipeline(t)
	result, err := p.Assess(context.Background(), []model.Provider{suspect})
	require.NoError(t, err)
	require.Len(t, result.Assessments, 1)

	a := result.Assessments[0]
	assert.NotEmpty(t, a.Flags)
	assert.True(t, a.RequiresReview)
	assert.Equal(t, model.RiskHigh, a.RiskLevel)
	assert.Equal(t, model.StatusNeedsReview, a.Status)
	assert.Greater(t, a.Priority, 0)
}

func TestAssessEmptyBatch(t *testing.T) {
	t.Parallel()

	p := newTestPipeline(t)
	_, err := p.Assess(context.Background(), nil)
	assert.Error(t, err)
}

func TestAssessPreservesInputOrder(t *testing.T) {
	t.Parallel()

	var records []model.Provider
	want := []string{"1234567897", "9876543217", "1234567897"}
	for i, npi := range want {
		r := cleanProvider()
		r.NPI = npi
		r.ProviderID = string(rune('a' + i))
		records = append(records, r)
	}

	p := newTestPipeline(t, WithMaxConcurrent(3))
	result, err := p.Assess(context.Background(), records)
	require.NoError(t, err)
	require.Len(t, result.Assessments, 3)
	for i, a := range result.Assessments {
		assert.Equal(t, want[i], a.RecordID)
	}
}

func TestAssessRecordFailureDoesNotAbortBatch(t *testing.T) {
	t.Parallel()

	// A detector whose clock panics blows up mid-stage for any record that
	// carries an expiration date; the panic must stay contained to that
	// record.
	p := New(
		validate.NewValidator(),
		enrich.NewEnricher(model.DefaultCatalog()),
		anomaly.NewDetector(anomaly.WithNow(func() time.Time {
			panic("clock unavailable")
		})),
		assess.NewAggregator(),
		assess.NewPrioritizer(),
	)

	bad := cleanProvider()
	bad.LicenseExpiration = "2024-01-15"
	ok := cleanProvider()
	ok.NPI = "9876543217"

	result, err := p.Assess(context.Background(), []model.Provider{bad, ok})
	require.NoError(t, err)
	require.Len(t, result.Assessments, 1)
	assert.Equal(t, "9876543217", result.Assessments[0].RecordID)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "1234567897", result.Errors[0].RecordID)
	assert.Contains(t, result.Errors[0].Reason, "panic")
	assert.Equal(t, 1, result.Metrics.Failed)
	assert.Equal(t, 1, result.Metrics.Succeeded)
}

func TestAssessRejectsMissingStage(t *testing.T) {
	t.Parallel()

	p := New(
		validate.NewValidator(),
		nil, // enricher (and its catalog) is a required collaborator
		anomaly.NewDetector(),
		assess.NewAggregator(),
		assess.NewPrioritizer(),
	)
	result, err := p.Assess(context.Background(), []model.Provider{cleanProvider()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "enricher")
	assert.Nil(t, result)

	_, err = New(nil, nil, nil, nil, nil).Assess(context.Background(), []model.Provider{cleanProvider()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validator")
}

func TestAssessCancelledContextStopsDispatch(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := newTestPipeline(t)
	result, err := p.Assess(ctx, []model.Provider{cleanProvider(), cleanProvider()})
	require.NoError(t, err)
	assert.Empty(t, result.Assessments)
	assert.Len(t, result.Errors, 2)
}

func TestAssessMetrics(t *testing.T) {
	t.Parallel()

	p := newTestPipeline(t)
	result, err := p.Assess(context.Background(), []model.Provider{cleanProvider(), cleanProvider()})
	require.NoError(t, err)

	m := result.Metrics
	assert.NotEmpty(t, m.RunID)
	assert.Equal(t, 2, m.Processed)
	assert.Equal(t, 2, m.Succeeded)
	assert.Zero(t, m.Failed)
	assert.Greater(t, m.ThroughputPerHour, 0.0)
	assert.False(t, m.CompletedAt.Before(m.StartedAt))

	for _, stage := range []string{
		model.StageValidation, model.StageEnrichment, model.StageResolution,
		model.StageAnomaly, model.StageScoring,
	} {
		_, ok := m.StageDurations[stage]
		assert.True(t, ok, stage)
	}
}
