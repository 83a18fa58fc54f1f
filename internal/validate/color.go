package validate

import (
	"regexp"
	"strings"
)

var hexColorPattern = regexp.MustCompile(`^#([A-Fa-f0-9]{6}|[A-Fa-f0-9]{3})$`)

// NormalizeHexColor validates a hex color and returns its canonical
// form: 3-digit shorthand expanded to 6 digits, upper-cased. The
// canonical form normalizes to itself.
func NormalizeHexColor(raw string) (string, bool) {
	if !hexColorPattern.MatchString(raw) {
		return "", false
	}
	if len(raw) == 4 {
		raw = "#" + strings.Repeat(string(raw[1]), 2) +
			strings.Repeat(string(raw[2]), 2) +
			strings.Repeat(string(raw[3]), 2)
	}
	return strings.ToUpper(raw), true
}
