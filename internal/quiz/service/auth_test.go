package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/roadvice/roadvice/internal/quiz/store"
	"github.com/roadvice/roadvice/pkg/jwtx"
)

func newAuthService(st store.Store) *AuthService {
	tokens := &RefreshTokenService{Store: st, TTL: time.Hour}
	return &AuthService{
		Store:         st,
		Signer:        jwtx.NewSigner([]byte("test-secret"), "test-issuer", 15*time.Minute),
		RefreshTokens: tokens,
	}
}

func TestLoginIssuesTokenPair(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := newAuthService(st)

	user := seedUser(t, st, "alice", "correct horse battery")

	pair, err := svc.Login(ctx, "alice", "correct horse battery")
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	require.Equal(t, "Bearer", pair.TokenType)
	require.Equal(t, 15*time.Minute, pair.ExpiresIn)

	claims, err := svc.Signer.Verify(pair.AccessToken)
	require.NoError(t, err)
	require.Equal(t, user.ID, claims.Subject)
	require.Equal(t, "alice", claims.Username)
	require.Contains(t, claims.Roles, "USER")
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := newAuthService(st)

	seedUser(t, st, "bob", "right-password")

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, "bob", "wrong-password")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown username", func(t *testing.T) {
		_, err := svc.Login(ctx, "nobody", "right-password")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestLoginRejectsDisabledAccount(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := newAuthService(st)

	user := seedUser(t, st, "carol", "password-1")
	require.NoError(t, st.Users().UpdateEnabled(ctx, user.ID, false))

	_, err := svc.Login(ctx, "carol", "password-1")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefreshReturnsNewAccessToken(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := newAuthService(st)

	seedUser(t, st, "dave", "password-1")
	pair, err := svc.Login(ctx, "dave", "password-1")
	require.NoError(t, err)

	refreshed, err := svc.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
	require.NotEmpty(t, refreshed.AccessToken)

	// The refresh token is not rotated on use.
	require.Equal(t, pair.RefreshToken, refreshed.RefreshToken)

	again, err := svc.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
	require.NotEmpty(t, again.AccessToken)
}

func TestRefreshRejectsUnknownToken(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := newAuthService(st)

	_, err := svc.Refresh(ctx, "never-issued")
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestRefreshConsumesExpiredToken(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := newAuthService(st)
	svc.RefreshTokens.TTL = -time.Minute

	seedUser(t, st, "erin", "password-1")
	pair, err := svc.Login(ctx, "erin", "password-1")
	require.NoError(t, err)

	_, err = svc.Refresh(ctx, pair.RefreshToken)
	require.ErrorIs(t, err, ErrExpiredToken)

	// The expired token was deleted, so a retry is plain unauthorized.
	_, err = svc.Refresh(ctx, pair.RefreshToken)
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestLogoutRevokesAllTokens(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := newAuthService(st)

	user := seedUser(t, st, "frank", "password-1")
	first, err := svc.Login(ctx, "frank", "password-1")
	require.NoError(t, err)
	second, err := svc.Login(ctx, "frank", "password-1")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, user.ID))

	_, err = svc.Refresh(ctx, first.RefreshToken)
	require.ErrorIs(t, err, ErrUnauthorized)
	_, err = svc.Refresh(ctx, second.RefreshToken)
	require.ErrorIs(t, err, ErrUnauthorized)
}
