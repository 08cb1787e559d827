// Package jwtutil issues and verifies the signed bearer tokens used by the
// auth endpoints. Tokens are stateless: validity depends only on the
// signature and the expiry claim.
package jwtutil

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenInvalid     = errors.New("token is invalid")
	ErrTokenExpired     = errors.New("token is expired")
	ErrUnknownAlgorithm = errors.New("unknown signing algorithm")
)

// GenerateToken signs a token carrying subject and an absolute expiry of
// now + ttl under the given HMAC algorithm. A non-positive ttl still issues
// a token; it is simply already expired.
func GenerateToken(secret, algorithm string, ttl time.Duration, subject string) (string, error) {
	method := jwt.GetSigningMethod(algorithm)
	if method == nil {
		return "", fmt.Errorf("%w: %s", ErrUnknownAlgorithm, algorithm)
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	signed, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("sign token failed: %w", err)
	}
	return signed, nil
}

// ParseToken verifies signature and expiry and returns the subject claim.
// Malformed structure, a bad signature, a foreign algorithm or a missing
// subject all report ErrTokenInvalid; a correctly signed token past its
// expiry reports ErrTokenExpired. Signature problems take precedence over
// expiry so an attacker cannot probe expiry on forged tokens.
func ParseToken(secret, algorithm, tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(t *jwt.Token) (interface{}, error) {
			return []byte(secret), nil
		},
		jwt.WithValidMethods([]string{algorithm}),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed),
			errors.Is(err, jwt.ErrTokenSignatureInvalid),
			errors.Is(err, jwt.ErrTokenUnverifiable):
			return "", ErrTokenInvalid
		case errors.Is(err, jwt.ErrTokenExpired):
			return "", ErrTokenExpired
		default:
			return "", ErrTokenInvalid
		}
	}

	if claims.Subject == "" {
		return "", ErrTokenInvalid
	}
	return claims.Subject, nil
}
