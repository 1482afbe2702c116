package model

import "strings"

// Provider is one professional-directory record as supplied by ingestion.
// It is immutable input to a single assessment pass; all stages derive new
// objects from it rather than mutating it.
type Provider struct {
	ProviderID        string `json:"provider_id,omitempty"`
	NPI               string `json:"npi"`
	FirstName         string `json:"first_name"`
	LastName          string `json:"last_name"`
	Degree            string `json:"degree,omitempty"`
	Specialty         string `json:"specialty,omitempty"`
	Phone             string `json:"phone,omitempty"`
	Email             string `json:"email,omitempty"`
	StreetAddress     string `json:"street_address,omitempty"`
	City              string `json:"city,omitempty"`
	State             string `json:"state,omitempty"`
	ZipCode           string `json:"zip_code,omitempty"`
	LicenseNumber     string `json:"license_number,omitempty"`
	LicenseState      string `json:"license_state,omitempty"`
	LicenseExpiration string `json:"license_expiration_date,omitempty"`
	MedicalSchool     string `json:"medical_school,omitempty"`
}

// RecordID returns the stable key identifying this record: the NPI when
// present, otherwise the provider ID.
func (p Provider) RecordID() string {
	if id := strings.TrimSpace(p.NPI); id != "" {
		return id
	}
	return strings.TrimSpace(p.ProviderID)
}

// FullName returns "First Last" with empty components dropped.
func (p Provider) FullName() string {
	return strings.TrimSpace(strings.TrimSpace(p.FirstName) + " " + strings.TrimSpace(p.LastName))
}

// HasAddress reports whether all four address components are present.
func (p Provider) HasAddress() bool {
	return p.StreetAddress != "" && p.City != "" && p.State != "" && p.ZipCode != ""
}
