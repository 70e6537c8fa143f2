package id

import (
	"crypto/rand"
	"encoding/hex"
)

// ShortLen is the length of an id returned by Short.
const ShortLen = 16

// Short generates a short random hex ID (16 characters).
func Short() string {
	b := make([]byte, ShortLen/2)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// IsShort reports whether s has the length of an id produced by Short.
// Only the length is checked; the emulated API accepts any 16 characters
// and answers 404 for ids it does not know.
func IsShort(s string) bool {
	return len(s) == ShortLen
}

// IsHex reports whether s consists only of lowercase hex digits.
func IsHex(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return s != ""
}
