package sqlite

import (
	"context"
	"time"

	"github.com/roadvice/roadvice/internal/quiz/domain"
)

type rolesRepo struct {
	db dbtx
}

func (r *rolesRepo) GetRoleByID(ctx context.Context, id string) (domain.Role, error) {
	return r.getRole(ctx, `SELECT id, name, created_at FROM roles WHERE id = ?`, id)
}

func (r *rolesRepo) GetRoleByName(ctx context.Context, name string) (domain.Role, error) {
	return r.getRole(ctx, `SELECT id, name, created_at FROM roles WHERE name = ?`, name)
}

func (r *rolesRepo) getRole(ctx context.Context, query string, arg any) (domain.Role, error) {
	var role domain.Role
	err := r.db.QueryRowContext(ctx, query, arg).Scan(&role.ID, &role.Name, &role.CreatedAt)
	if err != nil {
		return domain.Role{}, mapNotFound(err)
	}
	return role, nil
}

func (r *rolesRepo) ListRoles(ctx context.Context) ([]domain.Role, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, created_at FROM roles ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roles []domain.Role
	for rows.Next() {
		var role domain.Role
		if err := rows.Scan(&role.ID, &role.Name, &role.CreatedAt); err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}

func (r *rolesRepo) CreateRole(ctx context.Context, role domain.Role) error {
	if role.CreatedAt.IsZero() {
		role.CreatedAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO roles (id, name, created_at) VALUES (?, ?, ?)`,
		role.ID, role.Name, role.CreatedAt,
	)
	return mapConflict(err)
}

func (r *rolesRepo) DeleteRole(ctx context.Context, roleID string) error {
	// user_roles references roles with ON DELETE RESTRICT, so this fails
	// while the role is still assigned.
	_, err := r.db.ExecContext(ctx, `DELETE FROM roles WHERE id = ?`, roleID)
	return mapRestricted(err)
}
