package validate

import (
	"regexp"
	"strings"
)

var licenseRe = regexp.MustCompile(`^[A-Z0-9.\-]+$`)

// NormalizeLicense validates a medical license number's character set and
// upper-cases it. The issuing state is required; no board verification
// happens here.
func NormalizeLicense(licenseNumber, state string) (string, bool, string) {
	licenseNumber = strings.TrimSpace(licenseNumber)
	if licenseNumber == "" || strings.TrimSpace(state) == "" {
		return "", false, "license number or state missing"
	}

	upper := strings.ToUpper(licenseNumber)
	if !licenseRe.MatchString(upper) {
		return "", false, "invalid license format"
	}
	return upper, true, ""
}
