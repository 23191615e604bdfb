package sqlite

import (
	"context"
	"time"

	"github.com/roadvice/roadvice/internal/quiz/domain"
	"github.com/roadvice/roadvice/internal/quiz/store"
)

type answersRepo struct {
	db dbtx
}

const answerColumns = `id, question_id, contents, is_correct, created_at, updated_at`

func (r *answersRepo) GetAnswerByID(ctx context.Context, id string) (domain.Answer, error) {
	a, err := scanAnswer(r.db.QueryRowContext(ctx,
		`SELECT `+answerColumns+` FROM answers WHERE id = ?`, id))
	if err != nil {
		return domain.Answer{}, mapNotFound(err)
	}
	return a, nil
}

func (r *answersRepo) ListAnswersByQuestion(ctx context.Context, questionID string) ([]domain.Answer, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+answerColumns+` FROM answers WHERE question_id = ? ORDER BY created_at, id`,
		questionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var answers []domain.Answer
	for rows.Next() {
		a, err := scanAnswer(rows)
		if err != nil {
			return nil, err
		}
		answers = append(answers, a)
	}
	return answers, rows.Err()
}

func (r *answersRepo) CreateAnswer(ctx context.Context, a domain.Answer) error {
	now := time.Now().UTC()
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}
	if a.UpdatedAt.IsZero() {
		a.UpdatedAt = now
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO answers (id, question_id, contents, is_correct, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		a.ID, a.QuestionID, a.Contents, a.IsCorrect, a.CreatedAt, a.UpdatedAt,
	)
	return err
}

func (r *answersRepo) UpdateAnswerContents(ctx context.Context, answerID, contents string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE answers SET contents = ?, updated_at = ? WHERE id = ?`,
		contents, time.Now().UTC(), answerID,
	)
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

func (r *answersRepo) DeleteAnswer(ctx context.Context, answerID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM answers WHERE id = ?`, answerID)
	return err
}

func scanAnswer(row rowScanner) (domain.Answer, error) {
	var a domain.Answer
	err := row.Scan(&a.ID, &a.QuestionID, &a.Contents, &a.IsCorrect, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return domain.Answer{}, err
	}
	return a, nil
}
