package service

import (
	"context"
	"errors"
	"time"

	"github.com/roadvice/roadvice/internal/quiz/domain"
	"github.com/roadvice/roadvice/internal/quiz/store"
	"github.com/roadvice/roadvice/pkg/cryptox"
	"github.com/roadvice/roadvice/pkg/jwtx"
	"github.com/roadvice/roadvice/pkg/slogx"
)

// AuthService handles credential verification and token pair issuance. It
// composes the refresh token lifecycle with short-lived JWT access tokens.
type AuthService struct {
	Store         store.Store
	Signer        *jwtx.Signer
	RefreshTokens *RefreshTokenService
}

// Login verifies username/password and mints a token pair. Disabled
// accounts and unknown usernames both map to ErrInvalidCredentials so the
// response cannot be used to probe for accounts.
func (s *AuthService) Login(ctx context.Context, username, password string) (domain.TokenPair, error) {
	l := slogx.FromContext(ctx)

	user, err := s.Store.Users().GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.TokenPair{}, ErrInvalidCredentials
		}
		return domain.TokenPair{}, err
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrPasswordMismatch) {
			l.Warn("login failed", "username", username)
			return domain.TokenPair{}, ErrInvalidCredentials
		}
		return domain.TokenPair{}, err
	}

	if !user.Enabled {
		l.Warn("login attempt on disabled account", "user_id", user.ID)
		return domain.TokenPair{}, ErrInvalidCredentials
	}

	refresh, err := s.RefreshTokens.Create(ctx, user.Username)
	if err != nil {
		return domain.TokenPair{}, err
	}

	access, err := s.Signer.Sign(user.ID, user.Username, user.Roles, time.Now().UTC())
	if err != nil {
		return domain.TokenPair{}, err
	}

	l.Info("user logged in", "user_id", user.ID)
	return domain.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh.Token,
		TokenType:    "Bearer",
		ExpiresIn:    s.Signer.TTL,
	}, nil
}

// Refresh exchanges a live refresh token for a new access token. The
// refresh token itself is returned unchanged; tokens are not rotated on
// use. Unknown and expired tokens both surface as errors, expired ones
// having been deleted along the way.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (domain.TokenPair, error) {
	token, err := s.RefreshTokens.FindByToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.TokenPair{}, ErrUnauthorized
		}
		return domain.TokenPair{}, err
	}

	live, err := s.RefreshTokens.VerifyExpiration(ctx, token)
	if err != nil {
		return domain.TokenPair{}, err
	}
	if !live {
		return domain.TokenPair{}, ErrExpiredToken
	}

	user, err := s.Store.Users().GetUserByID(ctx, token.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.TokenPair{}, ErrUnauthorized
		}
		return domain.TokenPair{}, err
	}

	access, err := s.Signer.Sign(user.ID, user.Username, user.Roles, time.Now().UTC())
	if err != nil {
		return domain.TokenPair{}, err
	}

	return domain.TokenPair{
		AccessToken:  access,
		RefreshToken: token.Token,
		TokenType:    "Bearer",
		ExpiresIn:    s.Signer.TTL,
	}, nil
}

// Logout revokes every refresh token the user holds.
func (s *AuthService) Logout(ctx context.Context, userID string) error {
	return s.RefreshTokens.DeleteByUser(ctx, userID)
}
