package sqlite

import (
	"context"
	"time"

	"github.com/roadvice/roadvice/internal/quiz/domain"
	"github.com/roadvice/roadvice/internal/quiz/store"
)

type usersRepo struct {
	db dbtx
}

const userColumns = `id, username, email, password_hash, enabled, points, created_at, updated_at`

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	return r.getUser(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
}

func (r *usersRepo) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	return r.getUser(ctx, `SELECT `+userColumns+` FROM users WHERE username = ?`, username)
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	return r.getUser(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, email)
}

func (r *usersRepo) getUser(ctx context.Context, query string, arg any) (domain.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}

	u.Roles, err = r.roleNames(ctx, u.ID)
	if err != nil {
		return domain.User{}, err
	}
	return u, nil
}

func (r *usersRepo) ListUsers(ctx context.Context, page store.Page) ([]domain.User, error) {
	page = page.Normalize()
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`,
		page.Limit, page.Offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range users {
		users[i].Roles, err = r.roleNames(ctx, users[i].ID)
		if err != nil {
			return nil, err
		}
	}
	return users, nil
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	now := time.Now().UTC()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	if u.UpdatedAt.IsZero() {
		u.UpdatedAt = now
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, username, email, password_hash, enabled, points, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Username, u.Email, u.PasswordHash, u.Enabled, u.Points, u.CreatedAt, u.UpdatedAt,
	)
	return mapConflict(err)
}

func (r *usersRepo) SetUserRoles(ctx context.Context, userID string, roleNames []string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM user_roles WHERE user_id = ?`, userID); err != nil {
		return err
	}
	for _, name := range roleNames {
		res, err := r.db.ExecContext(ctx,
			`INSERT INTO user_roles (user_id, role_id) SELECT ?, id FROM roles WHERE name = ?`,
			userID, name,
		)
		if err != nil {
			return err
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			// Unknown role name
			return store.ErrNotFound
		}
	}
	return nil
}

func (r *usersRepo) UpdateUsername(ctx context.Context, userID, username string) error {
	return r.touch(ctx, userID, `UPDATE users SET username = ?, updated_at = ? WHERE id = ?`, username)
}

func (r *usersRepo) UpdateEnabled(ctx context.Context, userID string, enabled bool) error {
	return r.touch(ctx, userID, `UPDATE users SET enabled = ?, updated_at = ? WHERE id = ?`, enabled)
}

func (r *usersRepo) UpdatePoints(ctx context.Context, userID string, points int) error {
	return r.touch(ctx, userID, `UPDATE users SET points = ?, updated_at = ? WHERE id = ?`, points)
}

func (r *usersRepo) AddPoints(ctx context.Context, userID string, delta int) error {
	return r.touch(ctx, userID, `UPDATE users SET points = points + ?, updated_at = ? WHERE id = ?`, delta)
}

func (r *usersRepo) UpdatePasswordHash(ctx context.Context, userID, newHash string) error {
	return r.touch(ctx, userID, `UPDATE users SET password_hash = ?, updated_at = ? WHERE id = ?`, newHash)
}

// touch runs an UPDATE of shape "SET <field> = ?, updated_at = ? WHERE id = ?"
// and maps zero affected rows to ErrNotFound.
func (r *usersRepo) touch(ctx context.Context, userID, query string, value any) error {
	res, err := r.db.ExecContext(ctx, query, value, time.Now().UTC(), userID)
	if err != nil {
		return mapConflict(err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *usersRepo) DeleteUser(ctx context.Context, userID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, userID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *usersRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, `SELECT COUNT(1) FROM users WHERE username = ?`, username)
}

func (r *usersRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, `SELECT COUNT(1) FROM users WHERE email = ?`, email)
}

func (r *usersRepo) exists(ctx context.Context, query string, arg any) (bool, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, query, arg).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *usersRepo) roleNames(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT r.name FROM user_roles ur JOIN roles r ON r.id = ur.role_id
		 WHERE ur.user_id = ? ORDER BY r.name`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID, &u.Username, &u.Email, &u.PasswordHash,
		&u.Enabled, &u.Points, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return domain.User{}, err
	}
	return u, nil
}
