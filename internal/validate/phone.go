package validate

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	// Extension markers are lowercase by convention ("x12"); an uppercase X
	// is left in place and fails the length check.
	extensionRe = regexp.MustCompile(`x\d+`)
	nonDigitRe  = regexp.MustCompile(`\D`)
)

// placeholderAreaCodes are 3-digit prefixes used for fake or test numbers.
var placeholderAreaCodes = map[string]bool{
	"555": true,
	"999": true,
	"000": true,
}

// NormalizePhone strips extensions and punctuation and normalizes a US phone
// number to "(XXX) XXX-XXXX". Accepts 10 digits, or 11 with a leading
// country digit 1 which is dropped. Placeholder area codes are rejected.
func NormalizePhone(phone string) (string, bool, string) {
	if strings.TrimSpace(phone) == "" {
		return "", false, "phone number missing"
	}

	digits := nonDigitRe.ReplaceAllString(extensionRe.ReplaceAllString(phone, ""), "")
	if len(digits) == 11 && digits[0] == '1' {
		digits = digits[1:]
	}
	if len(digits) != 10 {
		return "", false, fmt.Sprintf("invalid phone length: %d digits", len(digits))
	}

	areaCode := digits[:3]
	if placeholderAreaCodes[areaCode] {
		return "", false, fmt.Sprintf("invalid area code: %s", areaCode)
	}

	return fmt.Sprintf("(%s) %s-%s", digits[:3], digits[3:6], digits[6:]), true, ""
}
