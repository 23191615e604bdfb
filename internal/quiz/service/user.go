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

// UserService manages accounts. Registration enforces username and email
// uniqueness up front with explicit existence checks so callers get a clear
// conflict error instead of a raw constraint violation.
type UserService struct {
	Store store.Store
}

// Register creates a new enabled account with the USER role and a freshly
// hashed password.
func (s *UserService) Register(ctx context.Context, username, email, password string) (domain.User, error) {
	l := slogx.FromContext(ctx)

	if taken, err := s.Store.Users().ExistsByUsername(ctx, username); err != nil {
		return domain.User{}, err
	} else if taken {
		return domain.User{}, store.ErrAlreadyExists
	}
	if taken, err := s.Store.Users().ExistsByEmail(ctx, email); err != nil {
		return domain.User{}, err
	} else if taken {
		return domain.User{}, store.ErrAlreadyExists
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return domain.User{}, err
	}

	now := time.Now().UTC()
	user := domain.User{
		ID:           idx.New().String(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Enabled:      true,
		Roles:        []string{domain.RoleUser},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().CreateUser(ctx, user); err != nil {
			return err
		}
		return tx.Users().SetUserRoles(ctx, user.ID, user.Roles)
	})
	if err != nil {
		return domain.User{}, err
	}

	l.Info("user registered", "user_id", user.ID, "username", username)
	return user, nil
}

// GetByID fetches a single account.
func (s *UserService) GetByID(ctx context.Context, id string) (domain.User, error) {
	return s.Store.Users().GetUserByID(ctx, id)
}

// GetByUsername fetches a single account by name.
func (s *UserService) GetByUsername(ctx context.Context, username string) (domain.User, error) {
	return s.Store.Users().GetUserByUsername(ctx, username)
}

// GetByEmail fetches a single account by email.
func (s *UserService) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	return s.Store.Users().GetUserByEmail(ctx, email)
}

// List returns a page of accounts.
func (s *UserService) List(ctx context.Context, page store.Page) ([]domain.User, error) {
	return s.Store.Users().ListUsers(ctx, page)
}

// ChangeUsername renames an account after checking the new name is free.
func (s *UserService) ChangeUsername(ctx context.Context, id, username string) error {
	taken, err := s.Store.Users().ExistsByUsername(ctx, username)
	if err != nil {
		return err
	}
	if taken {
		return store.ErrAlreadyExists
	}
	return s.Store.Users().UpdateUsername(ctx, id, username)
}

// ChangePassword rotates the password, requiring proof of the old one.
func (s *UserService) ChangePassword(ctx context.Context, id, oldPassword, newPassword string) error {
	l := slogx.FromContext(ctx)

	if id == "" {
		return ErrUnauthorized
	}

	user, err := s.Store.Users().GetUserByID(ctx, id)
	if err != nil {
		return err
	}

	if err := cryptox.VerifyPassword(oldPassword, user.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrPasswordMismatch) {
			return ErrPasswordMismatch
		}
		return err
	}

	hash, err := cryptox.HashPassword(newPassword)
	if err != nil {
		return err
	}

	if err := s.Store.Users().UpdatePasswordHash(ctx, id, hash); err != nil {
		return err
	}

	l.Info("password changed", "user_id", id)
	return nil
}

// SetEnabled flips the account on or off. Disabled accounts cannot log in
// but keep their data.
func (s *UserService) SetEnabled(ctx context.Context, id string, enabled bool) error {
	return s.Store.Users().UpdateEnabled(ctx, id, enabled)
}

// SetRoles replaces the account's role set atomically. An unknown role name
// aborts the whole replacement and the prior set survives.
func (s *UserService) SetRoles(ctx context.Context, id string, roles []string) error {
	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		return tx.Users().SetUserRoles(ctx, id, roles)
	})
}

// AddPoints credits points to an account, typically after a quiz submit.
func (s *UserService) AddPoints(ctx context.Context, id string, delta int) error {
	return s.Store.Users().AddPoints(ctx, id, delta)
}

// Delete removes the account and everything hanging off it: refresh tokens
// and completed quizzes go via foreign key cascade in the same transaction.
func (s *UserService) Delete(ctx context.Context, id string) error {
	l := slogx.FromContext(ctx)

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.RefreshTokens().DeleteUserRefreshTokens(ctx, id); err != nil {
			return err
		}
		return tx.Users().DeleteUser(ctx, id)
	})
	if err != nil {
		return err
	}

	l.Info("user deleted", "user_id", id)
	return nil
}
