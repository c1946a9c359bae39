package utils

import (
	"regexp"
	"strings"
)

// Raw phone input: digits, spaces, plus, dashes, parentheses, 7-20 chars.
var phonePattern = regexp.MustCompile(`^[0-9+\-() ]{7,20}$`)

// NormalizePhone strips a phone number down to its digits, keeping a
// single leading "+" when present. "+1 (555) 123-4567" -> "+15551234567".
func NormalizePhone(raw string) string {
	raw = strings.TrimSpace(raw)
	var b strings.Builder
	for i, r := range raw {
		if r == '+' && i == 0 {
			b.WriteRune(r)
			continue
		}
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ValidPhone reports whether raw passes the format rule: allowed
// characters only, and 7-15 digits after normalization.
func ValidPhone(raw string) bool {
	raw = strings.TrimSpace(raw)
	if !phonePattern.MatchString(raw) {
		return false
	}
	digits := strings.TrimPrefix(NormalizePhone(raw), "+")
	return len(digits) >= 7 && len(digits) <= 15
}
