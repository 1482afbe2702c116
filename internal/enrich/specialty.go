package enrich

import (
	"strings"

	"github.com/medguard-ai/verify-cli/internal/model"
)

// Specialty evidence weights. A degree/specialty misalignment knocks the
// mapping down to the low weight.
const (
	weightSpecialtyAligned    = 0.7
	weightSpecialtyMisaligned = 0.3
	weightServicesMapped      = 0.6
)

// SpecialtyMapping is the outcome of resolving a specialty against the
// taxonomy.
type SpecialtyMapping struct {
	Specialty      string
	SubSpecialties []string
	DegreeAligned  bool
}

// MapSpecialty looks the specialty up in the taxonomy, derives its
// sub-specialty list, and checks degree alignment. Misaligned combinations
// keep their mapping but at reduced weight.
func (e *Enricher) MapSpecialty(specialty, degree string) (SpecialtyMapping, []model.Evidence) {
	specialty = strings.TrimSpace(specialty)
	if specialty == "" {
		return SpecialtyMapping{}, nil
	}

	canonical, _ := e.catalog.CanonicalSpecialty(specialty)
	misaligned := e.catalog.DegreeMisaligned(degree, specialty)

	mapping := SpecialtyMapping{
		Specialty:      canonical,
		SubSpecialties: e.catalog.SubSpecialtiesFor(specialty),
		DegreeAligned:  !misaligned,
	}

	weight := weightSpecialtyAligned
	if misaligned {
		weight = weightSpecialtyMisaligned
	}

	ev := model.NewEvidence(model.FieldSpecialty, SourceSpecialtyMap, canonical, weight, model.MethodMapping).
		WithMetadata(map[string]any{
			"sub_specialties": mapping.SubSpecialties,
			"degree_aligned":  mapping.DegreeAligned,
		})
	return mapping, []model.Evidence{ev}
}

// InferServices maps a specialty to the services its practices typically
// offer. Specialties with no service mapping produce no evidence; there is
// no value to resolve for them.
func (e *Enricher) InferServices(specialty string) ([]string, []model.Evidence) {
	specialty = strings.TrimSpace(specialty)
	if specialty == "" {
		return nil, nil
	}

	services := e.catalog.ServicesFor(specialty)
	if len(services) == 0 {
		return nil, nil
	}

	ev := model.NewEvidence(
		model.FieldServices, SourceInference, strings.Join(services, "; "), weightServicesMapped, model.MethodInference).
		WithMetadata(map[string]any{
			"specialty":     specialty,
			"service_count": len(services),
		})
	return services, []model.Evidence{ev}
}
