// Package ingest loads provider records from delimited files. Parsing is
// lenient: unknown columns are ignored, header names are matched
// case-insensitively, and a handful of common aliases are accepted.
package ingest

import (
	"encoding/csv"
	"io"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/medguard-ai/verify-cli/internal/model"
)

// headerAliases maps accepted column spellings to canonical field names.
var headerAliases = map[string]string{
	"npi":                     "npi",
	"npi_number":              "npi",
	"provider_id":             "provider_id",
	"first_name":              "first_name",
	"firstname":               "first_name",
	"last_name":               "last_name",
	"lastname":                "last_name",
	"degree":                  "degree",
	"credential":              "degree",
	"specialty":               "specialty",
	"phone":                   "phone",
	"phone_number":            "phone",
	"email":                   "email",
	"street_address":          "street_address",
	"address":                 "street_address",
	"city":                    "city",
	"state":                   "state",
	"zip_code":                "zip_code",
	"zip":                     "zip_code",
	"license_number":          "license_number",
	"license_state":           "license_state",
	"license_expiration_date": "license_expiration_date",
	"license_expiration":      "license_expiration_date",
	"medical_school":          "medical_school",
}

// LoadCSV reads provider records from a CSV file.
func LoadCSV(path string) ([]model.Provider, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "ingest: open %s", path)
	}
	defer f.Close()
	return ReadCSV(f)
}

// ReadCSV parses provider records from CSV content. The first row must be a
// header; rows with no identifying column at all are skipped with a
// warning rather than failing the load.
func ReadCSV(r io.Reader) ([]model.Provider, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, eris.New("ingest: file is empty")
	}
	if err != nil {
		return nil, eris.Wrap(err, "ingest: read header")
	}

	columns := make(map[int]string, len(header))
	for i, name := range header {
		key := strings.ToLower(strings.TrimSpace(name))
		if canonical, ok := headerAliases[key]; ok {
			columns[i] = canonical
		}
	}
	if len(columns) == 0 {
		return nil, eris.New("ingest: no recognized columns in header")
	}

	var providers []model.Provider
	line := 1
	for {
		line++
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, eris.Wrapf(err, "ingest: read row %d", line)
		}

		fields := make(map[string]string, len(columns))
		for i, value := range row {
			if name, ok := columns[i]; ok {
				fields[name] = strings.TrimSpace(value)
			}
		}

		p := model.Provider{
			ProviderID:        fields["provider_id"],
			NPI:               fields["npi"],
			FirstName:         fields["first_name"],
			LastName:          fields["last_name"],
			Degree:            fields["degree"],
			Specialty:         fields["specialty"],
			Phone:             fields["phone"],
			Email:             fields["email"],
			StreetAddress:     fields["street_address"],
			City:              fields["city"],
			State:             fields["state"],
			ZipCode:           fields["zip_code"],
			LicenseNumber:     fields["license_number"],
			LicenseState:      fields["license_state"],
			LicenseExpiration: fields["license_expiration_date"],
			MedicalSchool:     fields["medical_school"],
		}
		if p.RecordID() == "" {
			zap.L().Warn("ingest: skipping row with no identifier", zap.Int("line", line))
			continue
		}
		providers = append(providers, p)
	}

	return providers, nil
}
