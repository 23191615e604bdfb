package service

import (
	"context"
	"time"

	"github.com/roadvice/roadvice/internal/quiz/domain"
	"github.com/roadvice/roadvice/internal/quiz/store"
	"github.com/roadvice/roadvice/pkg/idx"
)

// RoleService manages the role catalog. The ADMIN and USER roles are seeded
// by migration and should not normally be deleted.
type RoleService struct {
	Store store.Store
}

func (s *RoleService) Create(ctx context.Context, name string) (domain.Role, error) {
	role := domain.Role{
		ID:        idx.New().String(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.Store.Roles().CreateRole(ctx, role); err != nil {
		return domain.Role{}, err
	}
	return role, nil
}

func (s *RoleService) GetByID(ctx context.Context, id string) (domain.Role, error) {
	return s.Store.Roles().GetRoleByID(ctx, id)
}

func (s *RoleService) GetByName(ctx context.Context, name string) (domain.Role, error) {
	return s.Store.Roles().GetRoleByName(ctx, name)
}

func (s *RoleService) List(ctx context.Context) ([]domain.Role, error) {
	return s.Store.Roles().ListRoles(ctx)
}

// Delete removes a role. The schema restricts deletion while any user still
// holds the role, so this fails rather than silently stripping assignments.
func (s *RoleService) Delete(ctx context.Context, id string) error {
	return s.Store.Roles().DeleteRole(ctx, id)
}
