package utils // package utils provides helpers for signing session tokens and checking secrets

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
)

// ErrTokenInvalid is returned for tokens that fail signature, algorithm
// or expiry checks.
var ErrTokenInvalid = errors.New("invalid token")

// SignToken signs claims as an HS256 JWT with secret.
func SignToken(secret string, claims jwt.Claims) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}

// ParseToken verifies raw with secret and decodes it into claims.  Only
// HMAC signatures are accepted.
func ParseToken(secret, raw string, claims jwt.Claims) error {
	tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		// Type assert the signing method to HMAC; reject others.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !tok.Valid {
		return ErrTokenInvalid
	}
	return nil
}

// Expiry returns the registered expiry claims for a token issued now.
func Expiry(ttl time.Duration) (issuedAt, expiresAt *jwt.NumericDate) {
	now := time.Now().UTC()
	return jwt.NewNumericDate(now), jwt.NewNumericDate(now.Add(ttl))
}
