// Package slug provides URL slug generation and validation. It is the
// subject of the string comparison lesson in slug_test.go.
package slug

import (
	"errors"
	"strings"
)

// Validation errors
var (
	ErrEmpty       = errors.New("slug cannot be empty")
	ErrTooLong     = errors.New("slug exceeds maximum length")
	ErrBadRune     = errors.New("slug may only contain a-z, 0-9 and hyphens")
	ErrEdgeHyphen  = errors.New("slug cannot begin or end with a hyphen")
	ErrHyphenRun   = errors.New("slug cannot contain consecutive hyphens")
	ErrReservedKey = errors.New("slug is reserved")
)

// Config holds validator configuration.
type Config struct {
	MaxLength int      // Maximum allowed slug length
	Reserved  []string // Slugs rejected outright, matched case-insensitively
}

// DefaultConfig returns the default validator configuration.
func DefaultConfig() Config {
	return Config{
		MaxLength: 64,
		Reserved:  nil,
	}
}

// Validator checks slugs against a Config.
type Validator struct {
	config   Config
	reserved map[string]bool
}

// NewValidator creates a slug validator.
func NewValidator(cfg Config) *Validator {
	reserved := make(map[string]bool)
	for _, word := range cfg.Reserved {
		reserved[strings.ToLower(word)] = true
	}

	return &Validator{
		config:   cfg,
		reserved: reserved,
	}
}

// Validate checks that s is a well-formed slug. Checks run cheapest first
// and the first failure wins.
func (v *Validator) Validate(s string) error {
	if s == "" {
		return ErrEmpty
	}

	if len(s) > v.config.MaxLength {
		return ErrTooLong
	}

	if strings.HasPrefix(s, "-") || strings.HasSuffix(s, "-") {
		return ErrEdgeHyphen
	}

	if strings.Contains(s, "--") {
		return ErrHyphenRun
	}

	for _, r := range s {
		if !isSlugRune(r) {
			return ErrBadRune
		}
	}

	if v.reserved[strings.ToLower(s)] {
		return ErrReservedKey
	}

	return nil
}

// Make converts an arbitrary title into a slug: lowercase letters and
// digits survive, apostrophes vanish, every other run of characters
// becomes a single hyphen, and leading or trailing hyphens are trimmed.
func Make(title string) string {
	var b strings.Builder
	b.Grow(len(title))

	lastHyphen := true // suppress leading hyphen
	for _, r := range strings.ToLower(title) {
		if r == '\'' {
			continue
		}
		if isSlugRune(r) && r != '-' {
			b.WriteRune(r)
			lastHyphen = false
			continue
		}
		if !lastHyphen {
			b.WriteByte('-')
			lastHyphen = true
		}
	}

	return strings.TrimSuffix(b.String(), "-")
}

// isSlugRune reports whether r may appear in a slug.
func isSlugRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-'
}
