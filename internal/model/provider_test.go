package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProviderRecordID(t *testing.T) {
	t.Parallel()

	t.Run("prefers NPI", func(t *testing.T) {
		t.Parallel()
		p := Provider{NPI: "1234567893", ProviderID: "internal-77"}
		assert.Equal(t, "1234567893", p.RecordID())
	})

	t.Run("falls back to provider ID", func(t *testing.T) {
		t.Parallel()
		p := Provider{ProviderID: "internal-77"}
		assert.Equal(t, "internal-77", p.RecordID())
	})

	t.Run("trims whitespace", func(t *testing.T) {
		t.Parallel()
		p := Provider{NPI: "  ", ProviderID: " internal-77 "}
		assert.Equal(t, "internal-77", p.RecordID())
	})
}

func TestProviderFullName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Jane Smith", Provider{FirstName: "Jane", LastName: "Smith"}.FullName())
	assert.Equal(t, "Smith", Provider{LastName: "Smith"}.FullName())
	assert.Equal(t, "", Provider{}.FullName())
}

func TestProviderHasAddress(t *testing.T) {
	t.Parallel()

	full := Provider{StreetAddress: "123 Main St", City: "Boston", State: "MA", ZipCode: "02101"}
	assert.True(t, full.HasAddress())

	missing := full
	missing.ZipCode = ""
	assert.False(t, missing.HasAddress())
}

func TestClamps(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0.0, ClampConfidence(-0.3))
	assert.Equal(t, 1.0, ClampConfidence(1.7))
	assert.Equal(t, 0.42, ClampConfidence(0.42))

	assert.Equal(t, 0, ClampPriority(-5))
	assert.Equal(t, 100, ClampPriority(140))
	assert.Equal(t, 40, ClampPriority(40))
}
