package validate

import "regexp"

// Whitespace here is the Unicode set: \v, every Zs/Zl/Zp rune and the BOM,
// not only RE2's ASCII \s.
var emailPattern = regexp.MustCompile(`^[^\s\v\p{Z}\x{FEFF}@]+@[^\s\v\p{Z}\x{FEFF}@]+\.[^\s\v\p{Z}\x{FEFF}@]+$`)

// IsValidEmail is a syntactic local@domain.tld check, nothing more.
// Empty is valid; required fields are checked by the form.
func IsValidEmail(s string) bool {
	if s == "" {
		return true
	}
	return emailPattern.MatchString(s)
}
