package model

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalogLookups(t *testing.T) {
	t.Parallel()
	cat := DefaultCatalog()

	t.Run("canonical specialty is case-insensitive", func(t *testing.T) {
		t.Parallel()
		name, ok := cat.CanonicalSpecialty("cardiology")
		assert.True(t, ok)
		assert.Equal(t, "Cardiology", name)
	})

	t.Run("unknown specialty passes through", func(t *testing.T) {
		t.Parallel()
		name, ok := cat.CanonicalSpecialty("Astrology")
		assert.False(t, ok)
		assert.Equal(t, "Astrology", name)
	})

	t.Run("sub-specialties", func(t *testing.T) {
		t.Parallel()
		subs := cat.SubSpecialtiesFor("Cardiology")
		assert.Contains(t, subs, "Electrophysiology")
		assert.Nil(t, cat.SubSpecialtiesFor("Astrology"))
	})

	t.Run("services", func(t *testing.T) {
		t.Parallel()
		assert.Contains(t, cat.ServicesFor("pediatrics"), "Well-Child Visits")
		assert.Nil(t, cat.ServicesFor("Astrology"))
	})
}

func TestDegreeMisaligned(t *testing.T) {
	t.Parallel()
	cat := DefaultCatalog()

	tests := []struct {
		name      string
		degree    string
		specialty string
		want      bool
	}{
		{"DDS vs cardiology", "DDS", "Cardiology", true},
		{"DDS lowercase degree", "dds", "Interventional Cardiology", true},
		{"MD vs cardiology", "MD", "Cardiology", false},
		{"PharmD vs surgery", "PharmD", "Orthopedic Surgery", true},
		{"missing degree", "", "Cardiology", false},
		{"missing specialty", "DDS", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, cat.DegreeMisaligned(tt.degree, tt.specialty))
		})
	}
}

func TestLoadCatalog(t *testing.T) {
	t.Parallel()

	t.Run("overrides merge with defaults", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "catalog.yaml")
		body := "medical_schools:\n  - Test School of Medicine\n"
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

		cat, err := LoadCatalog(path)
		require.NoError(t, err)
		assert.Equal(t, []string{"Test School of Medicine"}, cat.MedicalSchools)
		// Tables absent from the file keep their defaults.
		assert.NotEmpty(t, cat.SubSpecialties)
	})

	t.Run("missing file errors", func(t *testing.T) {
		t.Parallel()
		_, err := LoadCatalog(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("malformed yaml errors", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("medical_schools: {oops"), 0o644))
		_, err := LoadCatalog(path)
		assert.Error(t, err)
	})
}
