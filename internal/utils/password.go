package utils

import (
	"crypto/subtle"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// HashCode returns a bcrypt hash of code using the given cost, suitable
// for VERIFICATION_CODE.
func HashCode(code string, cost int) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(code), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// IsBcryptHash reports whether s looks like a bcrypt hash.
func IsBcryptHash(s string) bool {
	return strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$")
}

// CodeMatches compares a submitted code with the configured secret.  A
// bcrypt hash is checked with bcrypt; anything else must match exactly,
// case included.
func CodeMatches(configured, submitted string) bool {
	if configured == "" {
		return false
	}
	if IsBcryptHash(configured) {
		return bcrypt.CompareHashAndPassword([]byte(configured), []byte(submitted)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(configured), []byte(submitted)) == 1
}
