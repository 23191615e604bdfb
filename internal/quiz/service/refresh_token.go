package service

import (
	"context"
	"errors"
	"time"

	"github.com/roadvice/roadvice/internal/quiz/domain"
	"github.com/roadvice/roadvice/internal/quiz/store"
	"github.com/roadvice/roadvice/pkg/cryptox"
	"github.com/roadvice/roadvice/pkg/idx"
	"github.com/roadvice/roadvice/pkg/slogx"
)

// RefreshTokenService owns the refresh token lifecycle: issue, look up,
// lazily expire, revoke. Expiry detection happens on access rather than by
// background sweep; the housekeeping sweep only bounds table growth.
type RefreshTokenService struct {
	Store store.Store

	// TTL is the configured token lifetime, externally supplied.
	TTL time.Duration
}

// Create issues a fresh token for the named user. The token value is
// crypto-random and unique across live tokens. Prior tokens stay valid; a
// user may hold one per device.
func (s *RefreshTokenService) Create(ctx context.Context, username string) (domain.RefreshToken, error) {
	l := slogx.FromContext(ctx)

	user, err := s.Store.Users().GetUserByUsername(ctx, username)
	if err != nil {
		return domain.RefreshToken{}, err
	}

	opaque, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return domain.RefreshToken{}, err
	}

	now := time.Now().UTC()
	token := domain.RefreshToken{
		ID:        idx.New().String(),
		UserID:    user.ID,
		Token:     opaque,
		ExpiresAt: now.Add(s.TTL),
		CreatedAt: now,
	}

	if err := s.Store.RefreshTokens().CreateRefreshToken(ctx, token); err != nil {
		return domain.RefreshToken{}, err
	}

	l.Info("refresh token created", "user_id", user.ID, "expires_at", token.ExpiresAt)
	return token, nil
}

// FindByToken returns the stored record for an opaque token value. Expiry is
// NOT checked here; callers follow up with VerifyExpiration.
func (s *RefreshTokenService) FindByToken(ctx context.Context, token string) (domain.RefreshToken, error) {
	return s.Store.RefreshTokens().GetRefreshTokenByToken(ctx, token)
}

// VerifyExpiration reports whether the token is still live. An expired token
// is deleted as a side effect and false is returned: callers must treat
// false as "token consumed", not merely "token invalid". A concurrent
// deletion of the same expiring token is tolerated.
func (s *RefreshTokenService) VerifyExpiration(ctx context.Context, token domain.RefreshToken) (bool, error) {
	l := slogx.FromContext(ctx)

	if !token.ExpiredAt(time.Now().UTC()) {
		return true, nil
	}

	err := s.Store.RefreshTokens().DeleteRefreshToken(ctx, token.Token)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return false, err
	}

	l.Info("refresh token expired and deleted", "user_id", token.UserID, "expired_at", token.ExpiresAt)
	return false, nil
}

// Delete revokes a single token by its opaque value.
func (s *RefreshTokenService) Delete(ctx context.Context, token string) error {
	return s.Store.RefreshTokens().DeleteRefreshToken(ctx, token)
}

// DeleteByUser removes every token the user holds. Used on logout-all and
// account deletion; zero live tokens is not an error.
func (s *RefreshTokenService) DeleteByUser(ctx context.Context, userID string) error {
	slogx.FromContext(ctx).Info("deleting refresh tokens for user", "user_id", userID)
	return s.Store.RefreshTokens().DeleteUserRefreshTokens(ctx, userID)
}

// DeleteExpired is the housekeeping sweep.
func (s *RefreshTokenService) DeleteExpired(ctx context.Context) error {
	return s.Store.RefreshTokens().DeleteExpiredRefreshTokens(ctx)
}
