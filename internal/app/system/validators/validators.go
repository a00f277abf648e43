// internal/app/system/validators/validators.go
package validators

import (
	"net/mail"
	"strings"
)

// EmailValid reports whether s parses as a bare RFC 5322 address.
// Display-name forms ("Jana <jana@example.com>") are rejected.
func EmailValid(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	addr, err := mail.ParseAddress(s)
	if err != nil {
		return false
	}
	return addr.Address == s
}

// PhoneValid reports whether s looks like a phone number: an optional
// leading +, then 6-15 digits. Call normalize.Phone first to strip
// separators.
func PhoneValid(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	if s[0] == '+' {
		s = s[1:]
	}
	if len(s) < 6 || len(s) > 15 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
