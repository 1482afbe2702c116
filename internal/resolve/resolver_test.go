package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medguard-ai/verify-cli/internal/model"
)

func ev(field, source, value string, weight float64) model.Evidence {
	return model.NewEvidence(field, source, value, weight, model.MethodNormalization)
}

func TestResolveFieldSingleGroup(t *testing.T) {
	t.Parallel()

	res := ResolveField(model.FieldPhone, []model.Evidence{
		ev(model.FieldPhone, "format_validation", "(617) 867-5309", 0.75),
		ev(model.FieldPhone, "npi_registry", "(617) 867-5309", 0.90),
	})

	assert.False(t, res.Conflict)
	assert.Equal(t, "(617) 867-5309", res.Value)
	assert.InDelta(t, 0.825, res.Confidence, 1e-9) // mean of 0.75 and 0.90
	assert.Empty(t, res.Alternatives)
	assert.Equal(t, "npi_registry", res.Source)
}

func TestResolveFieldConflict(t *testing.T) {
	t.Parallel()

	res := ResolveField(model.FieldAddress, []model.Evidence{
		ev(model.FieldAddress, "npi_registry", "123 Main St", 0.90),
		ev(model.FieldAddress, "original_data", "123 Main Street", 0.70),
	})

	assert.True(t, res.Conflict)
	assert.Equal(t, "123 Main St", res.Value)
	assert.InDelta(t, 0.5625, res.Confidence, 1e-9) // 0.90 / 1.60
	require.Len(t, res.Alternatives, 1)
	assert.Equal(t, "123 Main Street", res.Alternatives[0].Value)
	assert.InDelta(t, 0.70, res.Alternatives[0].Score, 1e-9)
}

func TestResolveFieldNormalizationMergesAgreement(t *testing.T) {
	t.Parallel()

	// Same value modulo whitespace and case must not count as conflict.
	res := ResolveField(model.FieldAddress, []model.Evidence{
		ev(model.FieldAddress, "a", "  123 Main St ", 0.8),
		ev(model.FieldAddress, "b", "123  MAIN st", 0.6),
	})

	assert.False(t, res.Conflict)
	assert.InDelta(t, 0.7, res.Confidence, 1e-9)
	// The resolved value is one of the inputs, not the normalized form.
	assert.Equal(t, "  123 Main St ", res.Value)
}

func TestResolveFieldTieBreak(t *testing.T) {
	t.Parallel()

	res := ResolveField(model.FieldEmail, []model.Evidence{
		ev(model.FieldEmail, "a", "bob@clinic.org", 0.5),
		ev(model.FieldEmail, "b", "alice@clinic.org", 0.5),
	})

	assert.True(t, res.Conflict)
	assert.True(t, res.TieBroken)
	assert.Equal(t, "alice@clinic.org", res.Value)
	assert.InDelta(t, 0.5, res.Confidence, 1e-9)
}

func TestResolveFieldWinnerGroupAccumulates(t *testing.T) {
	t.Parallel()

	// Two light sources agreeing outweigh one heavy dissenter.
	res := ResolveField(model.FieldSpecialty, []model.Evidence{
		ev(model.FieldSpecialty, "a", "Cardiology", 0.5),
		ev(model.FieldSpecialty, "b", "cardiology", 0.5),
		ev(model.FieldSpecialty, "c", "Oncology", 0.9),
	})

	assert.True(t, res.Conflict)
	assert.Equal(t, "Cardiology", res.Value)
	assert.InDelta(t, 1.0/1.9, res.Confidence, 1e-9)
	require.Len(t, res.Alternatives, 1)
	assert.InDelta(t, 0.9, res.Alternatives[0].Score, 1e-9)
}

func TestResolveFieldValueNeverSynthesized(t *testing.T) {
	t.Parallel()

	inputs := []model.Evidence{
		ev(model.FieldLicense, "a", "A12345", 0.5),
		ev(model.FieldLicense, "b", "B99999", 0.95),
		ev(model.FieldLicense, "c", "a12345", 0.3),
	}
	res := ResolveField(model.FieldLicense, inputs)

	seen := make(map[string]bool)
	for _, in := range inputs {
		seen[in.Value] = true
	}
	assert.True(t, seen[res.Value])
	for _, alt := range res.Alternatives {
		assert.True(t, seen[alt.Value])
	}
}

func TestResolve(t *testing.T) {
	t.Parallel()

	resolved := Resolve([]model.Evidence{
		ev(model.FieldNPI, "npi_registry", "1234567897", 0.90),
		ev(model.FieldPhone, "format_validation", "(617) 867-5309", 0.75),
		ev(model.FieldPhone, "npi_registry", "(617) 555-0100", 0.90),
		ev(model.FieldEmail, "original_data", "   ", 0.4), // blank, dropped
	})

	require.Len(t, resolved, 2)
	assert.False(t, resolved[model.FieldNPI].Conflict)
	assert.True(t, resolved[model.FieldPhone].Conflict)
	_, hasEmail := resolved[model.FieldEmail]
	assert.False(t, hasEmail)
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "123 main st", Normalize("  123  Main St "))
	assert.Equal(t, "", Normalize("   "))
}
