package sanitizer

import "strings"

// Normalize collapses runs of whitespace to single spaces and trims the ends.
// Used for names, brands and free-text locations before validation.
func Normalize(input string) string {
	s := strings.TrimSpace(input)
	return reWhitespace.ReplaceAllString(s, " ")
}

// NormalizeEmail lowercases and trims an email address. Empty stays empty so
// the optional-email path is preserved.
func NormalizeEmail(input string) string {
	return strings.ToLower(strings.TrimSpace(input))
}
