package validate

import (
	"fmt"
	"regexp"
	"strings"
)

var zipRe = regexp.MustCompile(`^\d{5}(-\d{4})?$`)

// NormalizeAddress validates the four address components and renders one
// canonical "Street, City, ST 12345" string. The ZIP is reduced to five
// digits; street and city are title-cased, the state upper-cased. No
// geocoding happens here.
func NormalizeAddress(street, city, state, zip string) (string, bool, string) {
	if street == "" || city == "" || state == "" || zip == "" {
		return "", false, "incomplete address"
	}
	if !zipRe.MatchString(strings.TrimSpace(zip)) {
		return "", false, "invalid ZIP code format"
	}

	normalized := fmt.Sprintf("%s, %s, %s %s",
		titleCase(street),
		titleCase(city),
		strings.ToUpper(strings.TrimSpace(state)),
		strings.TrimSpace(zip)[:5],
	)
	return normalized, true, ""
}

// titleCase upper-cases the first letter of each space-separated word and
// lower-cases the rest. Leading digits and punctuation are skipped, so
// "123 MAIN st" becomes "123 Main St".
func titleCase(s string) string {
	words := strings.Fields(strings.TrimSpace(s))
	for i, w := range words {
		runes := []rune(strings.ToLower(w))
		for j, r := range runes {
			if r >= 'a' && r <= 'z' {
				runes[j] = r - 'a' + 'A'
				break
			}
		}
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
