package registry

import (
	"context"
	"encoding/json"
	"os"
	"strings"

	"github.com/rotisserie/eris"
)

// Static is an in-memory registry backed by a JSON fixture. It implements
// both Client and BoardClient and is the only implementation that ships with
// the engine — network-backed clients live with the callers that own them.
type Static struct {
	records  map[string]Record
	licenses map[string]LicenseRecord
}

// licenseKey joins state and number into a single lookup key.
func licenseKey(licenseNumber, state string) string {
	return strings.ToUpper(strings.TrimSpace(state)) + "/" + strings.ToUpper(strings.TrimSpace(licenseNumber))
}

// NewStatic builds a static registry from records and license entries.
func NewStatic(records []Record, licenses []LicenseRecord) *Static {
	s := &Static{
		records:  make(map[string]Record, len(records)),
		licenses: make(map[string]LicenseRecord, len(licenses)),
	}
	for _, r := range records {
		s.records[strings.TrimSpace(r.NPI)] = r
	}
	for _, l := range licenses {
		s.licenses[licenseKey(l.LicenseNumber, l.State)] = l
	}
	return s
}

// LoadStatic reads a registry fixture from a JSON file of the shape
// {"records": [...], "licenses": [...]}.
func LoadStatic(path string) (*Static, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "registry: read fixture %s", path)
	}

	var fixture struct {
		Records  []Record        `json:"records"`
		Licenses []LicenseRecord `json:"licenses"`
	}
	if err := json.Unmarshal(data, &fixture); err != nil {
		return nil, eris.Wrap(err, "registry: unmarshal fixture")
	}

	return NewStatic(fixture.Records, fixture.Licenses), nil
}

// Lookup implements Client.
func (s *Static) Lookup(_ context.Context, npi string) (*Record, bool, error) {
	rec, ok := s.records[strings.TrimSpace(npi)]
	if !ok {
		return nil, false, nil
	}
	return &rec, true, nil
}

// VerifyLicense implements BoardClient.
func (s *Static) VerifyLicense(_ context.Context, licenseNumber, state string) (*LicenseRecord, bool, error) {
	lic, ok := s.licenses[licenseKey(licenseNumber, state)]
	if !ok {
		return nil, false, nil
	}
	return &lic, true, nil
}
