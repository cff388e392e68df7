// Package base62 implements base-62 encoding of unsigned integers with
// configurable alphabets. It is the subject of the property-based testing,
// fuzzing and benchmark lessons.
package base62

import (
	"errors"
	"fmt"
	"math"
	"unicode/utf8"
)

// StdAlphabet is the default digit set: 0-9, a-z, A-Z.
const StdAlphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

const base = 62

// Encoding errors
var (
	ErrEmptyString      = errors.New("cannot decode empty string")
	ErrInvalidCharacter = errors.New("invalid base62 character")
	ErrOverflow         = errors.New("value overflows uint64")
	ErrBadAlphabet      = errors.New("alphabet must be 62 distinct ASCII characters")
)

// Encoding is a base-62 codec over a fixed 62-character alphabet. Alphabet
// order defines digit values: the first character is zero.
type Encoding struct {
	alphabet string
	decode   [256]int
}

// NewEncoding creates an Encoding from a 62-character alphabet. Characters
// must be distinct single-byte ASCII.
func NewEncoding(alphabet string) (*Encoding, error) {
	if len(alphabet) != base {
		return nil, ErrBadAlphabet
	}

	e := &Encoding{alphabet: alphabet}
	for i := range e.decode {
		e.decode[i] = -1
	}
	for i := 0; i < len(alphabet); i++ {
		c := alphabet[i]
		if c >= utf8.RuneSelf {
			return nil, ErrBadAlphabet
		}
		if e.decode[c] != -1 {
			return nil, ErrBadAlphabet
		}
		e.decode[c] = i
	}

	return e, nil
}

// StdEncoding is the Encoding for StdAlphabet.
var StdEncoding = mustEncoding(StdAlphabet)

func mustEncoding(alphabet string) *Encoding {
	e, err := NewEncoding(alphabet)
	if err != nil {
		panic(err)
	}
	return e
}

// Encode converts n to its base-62 representation.
func (e *Encoding) Encode(n uint64) string {
	// 11 digits hold the largest uint64.
	var buf [11]byte
	i := len(buf)
	for {
		i--
		buf[i] = e.alphabet[n%base]
		n /= base
		if n == 0 {
			break
		}
	}
	return string(buf[i:])
}

// EncodeToLength encodes n and left-pads with the zero digit up to
// minLength.
func (e *Encoding) EncodeToLength(n uint64, minLength int) string {
	encoded := e.Encode(n)
	if len(encoded) >= minLength {
		return encoded
	}

	padded := make([]byte, minLength)
	pad := minLength - len(encoded)
	for i := 0; i < pad; i++ {
		padded[i] = e.alphabet[0]
	}
	copy(padded[pad:], encoded)
	return string(padded)
}

// Decode converts a base-62 string back to a uint64. Unknown characters
// and values beyond the uint64 range are rejected.
func (e *Encoding) Decode(s string) (uint64, error) {
	if len(s) == 0 {
		return 0, ErrEmptyString
	}

	var result uint64
	for i := 0; i < len(s); i++ {
		val := e.decode[s[i]]
		if val == -1 {
			return 0, fmt.Errorf("%w: %q at index %d", ErrInvalidCharacter, s[i], i)
		}
		if result > (math.MaxUint64-uint64(val))/base {
			return 0, ErrOverflow
		}
		result = result*base + uint64(val)
	}

	return result, nil
}

// IsValid reports whether s is non-empty and contains only alphabet
// characters.
func (e *Encoding) IsValid(s string) bool {
	if len(s) == 0 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if e.decode[s[i]] == -1 {
			return false
		}
	}
	return true
}

// Encode converts n using StdEncoding.
func Encode(n uint64) string {
	return StdEncoding.Encode(n)
}

// Decode converts s using StdEncoding.
func Decode(s string) (uint64, error) {
	return StdEncoding.Decode(s)
}

// IsValid reports whether s is valid under StdEncoding.
func IsValid(s string) bool {
	return StdEncoding.IsValid(s)
}
