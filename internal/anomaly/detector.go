// Package anomaly scans raw record fields for placeholder and fraud
// patterns. It works on the original field text, not resolved values, so a
// suspicious number still flags even when a registry source out-votes it.
package anomaly

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/medguard-ai/verify-cli/internal/model"
)

// Placeholder patterns. Phone patterns match anywhere in the number, not
// only in the exchange position.
var (
	phonePatterns = []*regexp.Regexp{
		regexp.MustCompile(`555-?\d{4}`),
		regexp.MustCompile(`999-?\d{4}`),
		regexp.MustCompile(`000-?\d{4}`),
	}
	addressPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)PO\s+BOX`),
		regexp.MustCompile(`(?i)P\.O\.\s+BOX`),
	}
	emailPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)test@`),
		regexp.MustCompile(`(?i)example\.com$`),
		regexp.MustCompile(`(?i)sample\.`),
		regexp.MustCompile(`(?i)temp\.`),
	}
)

// expirationLayouts covers the date formats seen in ingested records.
var expirationLayouts = []string{
	"2006-01-02",
	"01/02/2006",
	"1/2/2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"2006-01-02T15:04:05Z07:00",
}

// Detector evaluates one record at a fixed point in time.
type Detector struct {
	now func() time.Time
}

// Option configures a Detector.
type Option func(*Detector)

// WithNow fixes the evaluation clock, mainly for tests.
func WithNow(now func() time.Time) Option {
	return func(d *Detector) {
		if now != nil {
			d.now = now
		}
	}
}

// NewDetector returns a detector evaluating against the wall clock.
func NewDetector(opts ...Option) *Detector {
	d := &Detector{now: time.Now}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Detect returns one flag per matched pattern. A record can accumulate
// several flags; each pattern is checked independently.
func (d *Detector) Detect(p model.Provider) []string {
	var flags []string

	for _, re := range phonePatterns {
		if re.MatchString(p.Phone) {
			flags = append(flags, fmt.Sprintf("Suspicious phone pattern: %s", re.String()))
		}
	}

	for _, re := range addressPatterns {
		if re.MatchString(p.StreetAddress) {
			flags = append(flags, "Suspicious address pattern: PO Box")
		}
	}

	for _, re := range emailPatterns {
		if re.MatchString(p.Email) {
			flags = append(flags, "Suspicious email pattern")
		}
	}

	if flag, expired := d.checkExpiration(p.LicenseExpiration); expired {
		flags = append(flags, flag)
	}

	return flags
}

// checkExpiration parses the expiration date and flags it when it is in the
// past. Unparseable dates are ignored rather than flagged; format problems
// belong to validation.
func (d *Detector) checkExpiration(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	for _, layout := range expirationLayouts {
		exp, err := time.Parse(layout, raw)
		if err != nil {
			continue
		}
		if exp.Before(d.now()) {
			return fmt.Sprintf("Expired license: %s", raw), true
		}
		return "", false
	}
	return "", false
}
