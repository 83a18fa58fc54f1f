package validate

import (
	"regexp"
	"strings"
)

// Russian mobile/landline number after separator stripping: optional
// +7/7/8 prefix, then a 10-digit local part starting with 4, 8 or 9.
var phonePattern = regexp.MustCompile(`^(\+7|7|8)?[489][0-9]{9}$`)

// CleanPhone strips everything except digits and a leading '+'. The
// result is the canonical stored form, so cleaning an already-clean
// value is a no-op.
func CleanPhone(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for i, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
			continue
		}
		if r == '+' && i == 0 {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// NormalizePhone cleans raw and validates it against the accepted
// Russian number pattern. It returns the canonical digit string.
func NormalizePhone(raw string) (string, bool) {
	clean := CleanPhone(raw)
	if !phonePattern.MatchString(clean) {
		return "", false
	}
	return clean, true
}

// FormatPhone renders a stored number as +7 (999) 123-45-67 for
// display. Unrecognized lengths are returned unchanged.
func FormatPhone(stored string) string {
	digits := strings.TrimPrefix(CleanPhone(stored), "+")
	switch {
	case len(digits) == 11 && (digits[0] == '7' || digits[0] == '8'):
		digits = digits[1:]
	case len(digits) == 10:
	default:
		return stored
	}
	return "+7 (" + digits[0:3] + ") " + digits[3:6] + "-" + digits[6:8] + "-" + digits[8:10]
}
