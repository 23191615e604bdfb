// Package jwtx wraps golang-jwt with the small, typed surface the API needs:
// HS256-signed access tokens carrying the subject, username and role names.
package jwtx

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultAccessTokenTTL is the fallback access token lifetime.
const DefaultAccessTokenTTL = 15 * time.Minute

var (
	// ErrInvalidToken reports a token that failed signature or structural
	// validation.
	ErrInvalidToken = errors.New("jwtx: invalid token")
	// ErrExpiredToken reports a structurally valid token past its expiry.
	ErrExpiredToken = errors.New("jwtx: token expired")
)

// Claims are the claims embedded in access tokens.
type Claims struct {
	Username string   `json:"username,omitempty"`
	Roles    []string `json:"roles,omitempty"`
	jwt.RegisteredClaims
}

// Signer signs and verifies HS256 access tokens with a shared secret.
type Signer struct {
	Secret []byte
	Issuer string
	TTL    time.Duration
}

// NewSigner returns a Signer with a validated TTL.
func NewSigner(secret []byte, issuer string, ttl time.Duration) *Signer {
	if ttl <= 0 {
		ttl = DefaultAccessTokenTTL
	}
	return &Signer{Secret: secret, Issuer: issuer, TTL: ttl}
}

// Sign issues an access token for the given subject at time now.
func (s *Signer) Sign(subject, username string, roles []string, now time.Time) (string, error) {
	claims := Claims{
		Username: username,
		Roles:    roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    s.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.TTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.Secret)
}

// Verify parses and validates a raw token string, enforcing the HS256
// signing method, the issuer and expiry.
func (s *Signer) Verify(raw string) (Claims, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.Secret, nil
	}, jwt.WithIssuer(s.Issuer), jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, ErrExpiredToken
		}
		return Claims{}, ErrInvalidToken
	}
	return claims, nil
}

// Verifier validates access tokens. *Signer implements it; the HTTP
// middleware only needs this side.
type Verifier interface {
	Verify(raw string) (Claims, error)
}
