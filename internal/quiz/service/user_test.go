package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/roadvice/roadvice/internal/quiz/domain"
	"github.com/roadvice/roadvice/internal/quiz/store"
)

func TestRegisterCreatesEnabledUser(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &UserService{Store: st}

	user, err := svc.Register(ctx, "alice", "alice@example.com", "password-1")
	require.NoError(t, err)
	require.True(t, user.Enabled)
	require.Equal(t, []string{domain.RoleUser}, user.Roles)
	require.NotEqual(t, "password-1", user.PasswordHash)

	stored, err := svc.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, user.ID, stored.ID)
	require.Equal(t, []string{domain.RoleUser}, stored.Roles)
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &UserService{Store: st}

	_, err := svc.Register(ctx, "bob", "bob@example.com", "password-1")
	require.NoError(t, err)

	t.Run("duplicate username", func(t *testing.T) {
		_, err := svc.Register(ctx, "bob", "other@example.com", "password-1")
		require.ErrorIs(t, err, store.ErrAlreadyExists)
	})

	t.Run("duplicate email", func(t *testing.T) {
		_, err := svc.Register(ctx, "robert", "bob@example.com", "password-1")
		require.ErrorIs(t, err, store.ErrAlreadyExists)
	})
}

func TestChangeUsername(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &UserService{Store: st}

	user := seedUser(t, st, "carol", "password-1")
	seedUser(t, st, "taken", "password-1")

	require.NoError(t, svc.ChangeUsername(ctx, user.ID, "caroline"))

	renamed, err := svc.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, "caroline", renamed.Username)

	require.ErrorIs(t, svc.ChangeUsername(ctx, user.ID, "taken"), store.ErrAlreadyExists)
}

func TestChangePassword(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &UserService{Store: st}
	auth := newAuthService(st)

	user := seedUser(t, st, "dave", "old-password-1")

	t.Run("wrong old password", func(t *testing.T) {
		err := svc.ChangePassword(ctx, user.ID, "not-the-old-one", "new-password-1")
		require.ErrorIs(t, err, ErrPasswordMismatch)
	})

	t.Run("correct old password", func(t *testing.T) {
		require.NoError(t, svc.ChangePassword(ctx, user.ID, "old-password-1", "new-password-1"))

		_, err := auth.Login(ctx, "dave", "old-password-1")
		require.ErrorIs(t, err, ErrInvalidCredentials)

		_, err = auth.Login(ctx, "dave", "new-password-1")
		require.NoError(t, err)
	})
}

func TestSetRolesAndEnabled(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &UserService{Store: st}

	user := seedUser(t, st, "erin", "password-1")

	require.NoError(t, svc.SetRoles(ctx, user.ID, []string{domain.RoleAdmin, domain.RoleUser}))
	require.NoError(t, svc.SetEnabled(ctx, user.ID, false))

	updated, err := svc.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.False(t, updated.Enabled)
	require.True(t, updated.HasRole(domain.RoleAdmin))
	require.True(t, updated.HasRole(domain.RoleUser))
}

func TestSetRolesUnknownRoleLeavesSetIntact(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &UserService{Store: st}

	user := seedUser(t, st, "heidi", "password-1")

	// The replacement must be all-or-nothing: a failing role name midway
	// through the list may not leave the account with a partial set.
	err := svc.SetRoles(ctx, user.ID, []string{domain.RoleAdmin, "NO_SUCH_ROLE"})
	require.ErrorIs(t, err, store.ErrNotFound)

	unchanged, err := svc.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, []string{domain.RoleUser}, unchanged.Roles)
	require.False(t, unchanged.HasRole(domain.RoleAdmin))
}

func TestAddPoints(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &UserService{Store: st}

	user := seedUser(t, st, "frank", "password-1")

	require.NoError(t, svc.AddPoints(ctx, user.ID, 3))
	require.NoError(t, svc.AddPoints(ctx, user.ID, 2))

	updated, err := svc.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, 5, updated.Points)
}

func TestDeleteUserCascades(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &UserService{Store: st}
	tokens := &RefreshTokenService{Store: st, TTL: time.Hour}

	user := seedUser(t, st, "grace", "password-1")
	token, err := tokens.Create(ctx, user.Username)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, user.ID))

	_, err = svc.GetByID(ctx, user.ID)
	require.ErrorIs(t, err, store.ErrNotFound)

	_, err = tokens.FindByToken(ctx, token.Token)
	require.ErrorIs(t, err, store.ErrNotFound)

	require.ErrorIs(t, svc.Delete(ctx, user.ID), store.ErrNotFound)
}
