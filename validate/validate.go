package validate

import (
	"regexp"
	"strings"
)

var (
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRe = regexp.MustCompile(`^(\+233|0)[2-9][0-9]{8}$`)
)

// Email performs an RFC-lite format check, matching what the donation form
// enforces before any gateway call.
func Email(email string) bool {
	return emailRe.MatchString(email)
}

// GhanaPhone checks Ghana phone number format (+233 or 0 prefix followed by
// nine digits, first of which is 2-9). Whitespace anywhere in the input is
// stripped before matching.
func GhanaPhone(phone string) bool {
	stripped := strings.Join(strings.Fields(phone), "")
	return phoneRe.MatchString(stripped)
}

// Amount checks that a donation amount in major currency units is strictly
// positive.
func Amount(amount float64) bool {
	return amount > 0
}
