package model

import (
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// Catalog holds the static reference tables used by enrichment: the known
// institution list, the specialty taxonomy, the specialty→services mapping,
// and the degree/specialty misalignment table. It is loaded once at startup
// and read-only afterwards.
type Catalog struct {
	MedicalSchools    []string            `yaml:"medical_schools"`
	SubSpecialties    map[string][]string `yaml:"sub_specialties"`
	SpecialtyServices map[string][]string `yaml:"specialty_services"`
	Misalignments     map[string][]string `yaml:"degree_misalignments"`

	bySpecialty map[string]string
}

// NewCatalog indexes the given tables for case-insensitive specialty lookup.
func NewCatalog(c Catalog) *Catalog {
	c.bySpecialty = make(map[string]string, len(c.SubSpecialties))
	for name := range c.SubSpecialties {
		c.bySpecialty[strings.ToLower(name)] = name
	}
	for name := range c.SpecialtyServices {
		if _, ok := c.bySpecialty[strings.ToLower(name)]; !ok {
			c.bySpecialty[strings.ToLower(name)] = name
		}
	}
	return &c
}

// LoadCatalog reads reference tables from a YAML file. Tables absent from
// the file fall back to the compiled-in defaults.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "model: read catalog %s", path)
	}

	c := defaultCatalog()
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, eris.Wrap(err, "model: parse catalog")
	}

	return NewCatalog(c), nil
}

// DefaultCatalog returns the compiled-in reference tables.
func DefaultCatalog() *Catalog {
	return NewCatalog(defaultCatalog())
}

// CanonicalSpecialty resolves a free-text specialty to its canonical taxonomy
// name, case-insensitively. Returns the input unchanged when unmapped.
func (c *Catalog) CanonicalSpecialty(specialty string) (string, bool) {
	name, ok := c.bySpecialty[strings.ToLower(strings.TrimSpace(specialty))]
	if !ok {
		return specialty, false
	}
	return name, true
}

// SubSpecialtiesFor returns the sub-specialty list for a specialty, or nil.
func (c *Catalog) SubSpecialtiesFor(specialty string) []string {
	name, ok := c.CanonicalSpecialty(specialty)
	if !ok {
		return nil
	}
	return c.SubSpecialties[name]
}

// ServicesFor returns the offered-services list for a specialty, or nil.
func (c *Catalog) ServicesFor(specialty string) []string {
	name, ok := c.CanonicalSpecialty(specialty)
	if !ok {
		return nil
	}
	return c.SpecialtyServices[name]
}

// DegreeMisaligned reports whether the degree is incompatible with the
// specialty per the misalignment table. Missing degree never misaligns.
func (c *Catalog) DegreeMisaligned(degree, specialty string) bool {
	if degree == "" || specialty == "" {
		return false
	}
	incompatible, ok := c.Misalignments[strings.ToUpper(strings.TrimSpace(degree))]
	if !ok {
		return false
	}
	lower := strings.ToLower(specialty)
	for _, spec := range incompatible {
		if strings.Contains(lower, strings.ToLower(spec)) {
			return true
		}
	}
	return false
}

func defaultCatalog() Catalog {
	return Catalog{
		MedicalSchools: []string{
			"Harvard Medical School",
			"Johns Hopkins University School of Medicine",
			"Stanford University School of Medicine",
			"University of California San Francisco",
			"Yale School of Medicine",
			"Columbia University Vagelos College of Physicians and Surgeons",
			"University of Pennsylvania Perelman School of Medicine",
			"Duke University School of Medicine",
			"University of Washington School of Medicine",
			"University of Michigan Medical School",
			"Mayo Clinic Alix School of Medicine",
			"New York University Grossman School of Medicine",
			"Northwestern University Feinberg School of Medicine",
			"Vanderbilt University School of Medicine",
			"Cornell University Weill Cornell Medicine",
		},
		SubSpecialties: map[string][]string{
			"Cardiology":         {"Interventional Cardiology", "Electrophysiology", "Heart Failure"},
			"Orthopedic Surgery": {"Sports Medicine", "Joint Replacement", "Spine Surgery"},
			"Internal Medicine":  {"Geriatrics", "Hospital Medicine", "Primary Care"},
			"Pediatrics":         {"Neonatology", "Pediatric Emergency Medicine", "Adolescent Medicine"},
			"Dermatology":        {"Cosmetic Dermatology", "Dermatopathology", "Mohs Surgery"},
			"Family Medicine":    {"Sports Medicine", "Geriatrics", "Obstetrics"},
			"Emergency Medicine": {"Pediatric Emergency", "Toxicology", "EMS"},
			"Psychiatry":         {"Child Psychiatry", "Addiction Psychiatry", "Geriatric Psychiatry"},
			"Radiology":          {"Interventional Radiology", "Neuroradiology", "Body Imaging"},
			"Anesthesiology":     {"Pain Management", "Cardiac Anesthesia", "Pediatric Anesthesia"},
		},
		SpecialtyServices: map[string][]string{
			"Cardiology":         {"Cardiac Consultations", "EKG", "Echocardiography", "Stress Tests", "Holter Monitoring"},
			"Dermatology":        {"Skin Exams", "Acne Treatment", "Skin Cancer Screening", "Cosmetic Procedures", "Laser Therapy"},
			"Family Medicine":    {"Annual Physicals", "Vaccinations", "Chronic Disease Management", "Minor Procedures", "Preventive Care"},
			"Pediatrics":         {"Well-Child Visits", "Vaccinations", "Developmental Screenings", "Sick Visits", "Sports Physicals"},
			"Internal Medicine":  {"Annual Physicals", "Chronic Disease Management", "Preventive Care", "Health Screenings"},
			"Orthopedic Surgery": {"Fracture Care", "Joint Replacement", "Arthroscopy", "Sports Medicine", "Physical Therapy"},
		},
		Misalignments: map[string][]string{
			"PHARMD": {"Surgery", "Cardiology", "Orthopedics", "Dermatology"},
			"DDS":    {"Internal Medicine", "Cardiology", "Psychiatry"},
			"DPM":    {"Cardiology", "Internal Medicine", "Psychiatry"},
			"OD":     {"Surgery", "Internal Medicine", "Cardiology"},
		},
	}
}
