// Package validate produces field-level evidence from checksum and format
// rules, optionally cross-checking against injected registry collaborators.
package validate

import "strings"

// npiPrefix is the card-issuer prefix prepended to an NPI before the Luhn
// check, per the NPI standard.
const npiPrefix = "80840"

// CheckNPI validates a 10-digit NPI. It returns the trimmed identifier and
// whether format and checksum both pass; the reason describes the failure.
func CheckNPI(npi string) (string, bool, string) {
	npi = strings.TrimSpace(npi)
	if len(npi) != 10 || !allDigits(npi) {
		return "", false, "invalid NPI format"
	}
	if !luhnValid(npiPrefix + npi) {
		return "", false, "NPI checksum validation failed"
	}
	return npi, true, ""
}

// luhnValid runs the mod-10 Luhn check over a digit string, doubling every
// second digit from the right.
func luhnValid(digits string) bool {
	total := 0
	double := true
	for i := len(digits) - 1; i >= 0; i-- {
		n := int(digits[i] - '0')
		if double {
			n *= 2
			if n > 9 {
				n -= 9
			}
		}
		total += n
		double = !double
	}
	return total%10 == 0
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return len(s) > 0
}
