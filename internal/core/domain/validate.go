package domain

import "regexp"

// Syntactic admission gates only; no RFC 5322 ambitions. The phone pattern
// follows the E.164 convention: "+", a leading digit 1-9, then up to 14 more
// digits with no separators.
var (
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phonePattern = regexp.MustCompile(`^\+[1-9]\d{1,14}$`)
)

// IsValidEmail reports whether s has a plausible local-part@domain.tld shape.
func IsValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// IsValidPhone reports whether s is an E.164-style international number.
func IsValidPhone(s string) bool {
	return phonePattern.MatchString(s)
}
