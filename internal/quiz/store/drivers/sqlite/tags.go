package sqlite

import (
	"context"
	"time"

	"github.com/roadvice/roadvice/internal/quiz/domain"
	"github.com/roadvice/roadvice/internal/quiz/store"
)

type tagsRepo struct {
	db dbtx
}

const tagColumns = `id, name, created_at, updated_at`

func (r *tagsRepo) GetTagByID(ctx context.Context, id string) (domain.Tag, error) {
	return r.getTag(ctx, `SELECT `+tagColumns+` FROM tags WHERE id = ?`, id)
}

func (r *tagsRepo) GetTagByName(ctx context.Context, name string) (domain.Tag, error) {
	return r.getTag(ctx, `SELECT `+tagColumns+` FROM tags WHERE name = ?`, name)
}

func (r *tagsRepo) getTag(ctx context.Context, query string, arg any) (domain.Tag, error) {
	var t domain.Tag
	err := r.db.QueryRowContext(ctx, query, arg).Scan(&t.ID, &t.Name, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return domain.Tag{}, mapNotFound(err)
	}
	return t, nil
}

func (r *tagsRepo) ListTags(ctx context.Context) ([]domain.Tag, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+tagColumns+` FROM tags ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []domain.Tag
	for rows.Next() {
		var t domain.Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

func (r *tagsRepo) CreateTag(ctx context.Context, t domain.Tag) error {
	now := time.Now().UTC()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	if t.UpdatedAt.IsZero() {
		t.UpdatedAt = now
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO tags (id, name, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		t.ID, t.Name, t.CreatedAt, t.UpdatedAt,
	)
	return mapConflict(err)
}

func (r *tagsRepo) UpdateTagName(ctx context.Context, tagID, name string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE tags SET name = ?, updated_at = ? WHERE id = ?`,
		name, time.Now().UTC(), tagID,
	)
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

func (r *tagsRepo) DeleteTag(ctx context.Context, tagID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM tags WHERE id = ?`, tagID)
	return err
}

func (r *tagsRepo) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM tags WHERE name = ?`, name).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}
