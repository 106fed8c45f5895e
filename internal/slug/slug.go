// Package slug turns arbitrary user input into the canonical path segment of
// a public page and generates random paths for newly published pages.
package slug

import (
	"crypto/rand"
	"math/big"
	"strings"
)

// DefaultLength is the length of generated paths.
const DefaultLength = 10

const alphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// Normalize trims surrounding whitespace, lowercases and drops every rune that
// is not an ASCII letter, digit, underscore or hyphen. It is idempotent.
func Normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if isAllowed(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isAllowed(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z':
		return true
	case r >= '0' && r <= '9':
		return true
	case r == '_' || r == '-':
		return true
	}
	return false
}

// Generate returns a random path of n characters drawn from [a-z0-9].
// The result is always a fixed point of Normalize.
func Generate(n int) (string, error) {
	max := big.NewInt(int64(len(alphabet)))

	b := make([]byte, n)
	for i := range b {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b[i] = alphabet[idx.Int64()]
	}
	return string(b), nil
}
