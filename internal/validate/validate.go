package validate

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	reEmail = regexp.MustCompile(`\S+@\S+\.\S+`)
	rePhone = regexp.MustCompile(`^\+?\d{10,15}$`)
	reID    = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)
	reGST   = regexp.MustCompile(`^[0-9A-Z]{15}$`)
)

// Email applies the loose address check used by every public form.
func Email(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reEmail.MatchString(s)
}

// Phone accepts an optional leading + followed by 10-15 digits.
func Phone(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, rePhone.MatchString(s)
}

// ID validates a simple resource identifier (product/enquiry/gallery ids).
func ID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reID.MatchString(s)
}

// GST validates a 15 character GSTIN, case-insensitively.
func GST(s string) (string, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	return s, reGST.MatchString(s)
}

// Q normalizes a search query (trimmed, lowercased) and reports whether it
// fits in 50 runes.
func Q(s string) (string, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	return s, utf8.RuneCountInString(s) <= 50
}

// Password enforces the minimum length for contact passwords.
func Password(s string) bool {
	return utf8.RuneCountInString(s) >= 6
}
