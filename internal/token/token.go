// Package token issues and verifies the stateless session tokens
// presented by clients as bearer credentials.
package token

import (
	"time"

	"github.com/atinyakov/taskboard/internal/shared"
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the JWT claim set: the registered claims plus the
// identifier of the user the token was issued for.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"userId"`
}

// Service signs and verifies session tokens with an HMAC secret.
// A zero ttl disables expiry: tokens stay valid indefinitely. Any
// nonzero ttl is applied to the issuance time as-is.
type Service struct {
	secret []byte
	ttl    time.Duration
}

// New returns a Service signing with the given secret.
func New(secret []byte, ttl time.Duration) *Service {
	return &Service{secret: secret, ttl: ttl}
}

// Issue produces a signed token embedding a reference to the user.
func (s *Service) Issue(userID string) (string, error) {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
		UserID: userID,
	}
	if s.ttl != 0 {
		claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(s.ttl))
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify parses and validates tokenString and returns the user ID it
// references. It returns shared.ErrInvalidToken when the signature does
// not match, the payload is malformed, or the token has expired.
func (s *Service) Verify(tokenString string) (string, error) {
	claims := &Claims{}

	tok, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !tok.Valid {
		return "", shared.ErrInvalidToken
	}

	return claims.UserID, nil
}
