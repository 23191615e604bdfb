package sqlite

import (
	"context"
	"time"

	"github.com/roadvice/roadvice/internal/quiz/domain"
	"github.com/roadvice/roadvice/internal/quiz/store"
)

type adviceRepo struct {
	db dbtx
}

const adviceColumns = `id, title, contents, created_at, updated_at`

func (r *adviceRepo) GetAdviceByID(ctx context.Context, id string) (domain.Advice, error) {
	a, err := scanAdvice(r.db.QueryRowContext(ctx,
		`SELECT `+adviceColumns+` FROM advice WHERE id = ?`, id))
	if err != nil {
		return domain.Advice{}, mapNotFound(err)
	}

	a.Tags, err = r.tagNames(ctx, a.ID)
	if err != nil {
		return domain.Advice{}, err
	}
	return a, nil
}

func (r *adviceRepo) ListAdvice(ctx context.Context, page store.Page) ([]domain.Advice, error) {
	page = page.Normalize()
	return r.listAdvice(ctx,
		`SELECT `+adviceColumns+` FROM advice ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`,
		page.Limit, page.Offset,
	)
}

func (r *adviceRepo) ListAdviceByTag(ctx context.Context, tagName string, page store.Page) ([]domain.Advice, error) {
	page = page.Normalize()
	return r.listAdvice(ctx,
		`SELECT a.id, a.title, a.contents, a.created_at, a.updated_at
		 FROM advice a
		 JOIN advice_tags at ON at.advice_id = a.id
		 JOIN tags t ON t.id = at.tag_id
		 WHERE t.name = ?
		 ORDER BY a.created_at DESC, a.id DESC LIMIT ? OFFSET ?`,
		tagName, page.Limit, page.Offset,
	)
}

func (r *adviceRepo) listAdvice(ctx context.Context, query string, args ...any) ([]domain.Advice, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var articles []domain.Advice
	for rows.Next() {
		a, err := scanAdvice(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range articles {
		articles[i].Tags, err = r.tagNames(ctx, articles[i].ID)
		if err != nil {
			return nil, err
		}
	}
	return articles, nil
}

func (r *adviceRepo) CreateAdvice(ctx context.Context, a domain.Advice) error {
	now := time.Now().UTC()
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}
	if a.UpdatedAt.IsZero() {
		a.UpdatedAt = now
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO advice (id, title, contents, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		a.ID, a.Title, a.Contents, a.CreatedAt, a.UpdatedAt,
	)
	return mapConflict(err)
}

func (r *adviceRepo) SetAdviceTags(ctx context.Context, adviceID string, tagNames []string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM advice_tags WHERE advice_id = ?`, adviceID); err != nil {
		return err
	}
	for _, name := range tagNames {
		res, err := r.db.ExecContext(ctx,
			`INSERT INTO advice_tags (advice_id, tag_id) SELECT ?, id FROM tags WHERE name = ?`,
			adviceID, name,
		)
		if err != nil {
			return err
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			// Unknown tag name
			return store.ErrNotFound
		}
	}
	return nil
}

func (r *adviceRepo) DeleteAdvice(ctx context.Context, adviceID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM advice WHERE id = ?`, adviceID)
	return err
}

func (r *adviceRepo) tagNames(ctx context.Context, adviceID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT t.name FROM advice_tags at JOIN tags t ON t.id = at.tag_id
		 WHERE at.advice_id = ? ORDER BY t.name`,
		adviceID,
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

func scanAdvice(row rowScanner) (domain.Advice, error) {
	var a domain.Advice
	err := row.Scan(&a.ID, &a.Title, &a.Contents, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return domain.Advice{}, err
	}
	return a, nil
}
