// Package validation holds the input rules shared by the sync engine:
// handle format and post content limits.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// MaxPostContentLength bounds post bodies; matches the store's text-column
// budget.
const MaxPostContentLength = 5000

var handleRegex = regexp.MustCompile(`^[a-z0-9_]{1,64}$`)

// Handles that collide with route or namespace segments and must never be
// assigned to a profile.
var reservedHandles = map[string]struct{}{
	"admin":    {},
	"api":      {},
	"auth":     {},
	"feed":     {},
	"posts":    {},
	"likes":    {},
	"profiles": {},
	"settings": {},
	"login":    {},
	"signup":   {},
	"metrics":  {},
}

// ValidateHandle validates handle format and reserved names.
func ValidateHandle(handle string) error {
	if !handleRegex.MatchString(handle) {
		return fmt.Errorf("handle must be 1-64 characters of lowercase letters, numbers, and underscores")
	}
	if _, exists := reservedHandles[handle]; exists {
		return fmt.Errorf("handle is reserved")
	}
	return nil
}

// NormalizeHandle lowercases the input and strips every character a handle
// cannot carry. The result may be empty when nothing survives.
func NormalizeHandle(raw string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(raw) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ValidatePostContent rejects blank and oversized post bodies.
func ValidatePostContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return fmt.Errorf("post content must not be empty")
	}
	if utf8.RuneCountInString(content) > MaxPostContentLength {
		return fmt.Errorf("post content exceeds %d characters", MaxPostContentLength)
	}
	return nil
}
