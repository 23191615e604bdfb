package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roadvice/roadvice/internal/quiz/domain"
	"github.com/roadvice/roadvice/internal/quiz/store"
)

func TestRoleCreateAndLookup(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &RoleService{Store: st}

	role, err := svc.Create(ctx, "MODERATOR")
	require.NoError(t, err)

	byName, err := svc.GetByName(ctx, "MODERATOR")
	require.NoError(t, err)
	require.Equal(t, role.ID, byName.ID)

	_, err = svc.Create(ctx, "MODERATOR")
	require.ErrorIs(t, err, store.ErrAlreadyExists)
}

func TestDeleteRoleStillHeldIsConflict(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &RoleService{Store: st}
	users := &UserService{Store: st}

	user := seedUser(t, st, "ivan", "password-1")

	role, err := svc.GetByName(ctx, domain.RoleUser)
	require.NoError(t, err)

	require.ErrorIs(t, svc.Delete(ctx, role.ID), store.ErrConflict)

	// Once no user holds the role the delete goes through.
	require.NoError(t, users.SetRoles(ctx, user.ID, []string{domain.RoleAdmin}))
	require.NoError(t, svc.Delete(ctx, role.ID))

	_, err = svc.GetByName(ctx, domain.RoleUser)
	require.ErrorIs(t, err, store.ErrNotFound)
}
