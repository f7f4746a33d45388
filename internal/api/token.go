package api

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/remiteasy/ledger/pkg/types"
)

// MintToken issues an HS256 bearer token whose subject is the caller
// identity, valid for ttl.
func MintToken(secret []byte, caller types.Identity, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   caller.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// parseToken verifies an HS256 bearer token and returns the caller
// identity from its subject claim.
func parseToken(secret []byte, tokenString string) (types.Identity, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return "", fmt.Errorf("invalid token")
	}

	subject, err := token.Claims.GetSubject()
	if err != nil {
		return "", fmt.Errorf("invalid token subject")
	}
	return types.ParseIdentity(subject)
}
