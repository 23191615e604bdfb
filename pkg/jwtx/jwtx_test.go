package jwtx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSignAndVerify(t *testing.T) {
	signer := NewSigner([]byte("secret"), "test-issuer", time.Minute)

	raw, err := signer.Sign("user-1", "alice", []string{"USER", "ADMIN"}, time.Now())
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	claims, err := signer.Verify(raw)
	require.NoError(t, err)
	require.Equal(t, "user-1", claims.Subject)
	require.Equal(t, "alice", claims.Username)
	require.Equal(t, []string{"USER", "ADMIN"}, claims.Roles)
	require.Equal(t, "test-issuer", claims.Issuer)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	signer := NewSigner([]byte("secret"), "test-issuer", time.Minute)

	raw, err := signer.Sign("user-1", "alice", nil, time.Now().Add(-2*time.Minute))
	require.NoError(t, err)

	_, err = signer.Verify(raw)
	require.ErrorIs(t, err, ErrExpiredToken)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	signer := NewSigner([]byte("secret"), "test-issuer", time.Minute)
	other := NewSigner([]byte("different"), "test-issuer", time.Minute)

	raw, err := signer.Sign("user-1", "alice", nil, time.Now())
	require.NoError(t, err)

	_, err = other.Verify(raw)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsWrongIssuer(t *testing.T) {
	signer := NewSigner([]byte("secret"), "issuer-a", time.Minute)
	other := NewSigner([]byte("secret"), "issuer-b", time.Minute)

	raw, err := signer.Sign("user-1", "alice", nil, time.Now())
	require.NoError(t, err)

	_, err = other.Verify(raw)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	signer := NewSigner([]byte("secret"), "test-issuer", time.Minute)

	_, err := signer.Verify("not.a.jwt")
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewSignerDefaultsTTL(t *testing.T) {
	signer := NewSigner([]byte("secret"), "test-issuer", 0)
	require.Equal(t, DefaultAccessTokenTTL, signer.TTL)
}
