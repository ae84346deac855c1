package http

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Input validation constants
const (
	MaxBusinessIDLength = 64
	MaxCustomerIDLength = 64
	MaxMessageLength    = 4096
)

var idPattern = regexp.MustCompile(`^[a-zA-Z0-9_+-]+$`)

// ValidID checks a business or customer id (alphanumeric plus _ + -; phone
// numbers in E.164 form pass).
func ValidID(s string, maxLen int) bool {
	if s == "" || len(s) > maxLen {
		return false
	}
	return idPattern.MatchString(s)
}

// SanitizeString removes null bytes and invalid UTF-8 from message text.
func SanitizeString(s string) string {
	s = strings.ReplaceAll(s, "\x00", "")
	if !utf8.ValidString(s) {
		v := make([]rune, 0, len(s))
		for _, r := range s {
			if r != utf8.RuneError {
				v = append(v, r)
			}
		}
		s = string(v)
	}
	return s
}

// TruncateString safely truncates a string to max length.
func TruncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen]
}
