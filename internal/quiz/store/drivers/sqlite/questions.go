package sqlite

import (
	"context"
	"time"

	"github.com/roadvice/roadvice/internal/quiz/domain"
)

type questionsRepo struct {
	db dbtx
}

const questionColumns = `id, advice_id, contents, created_at, updated_at`

func (r *questionsRepo) GetQuestionByID(ctx context.Context, id string) (domain.Question, error) {
	var q domain.Question
	err := r.db.QueryRowContext(ctx,
		`SELECT `+questionColumns+` FROM questions WHERE id = ?`, id,
	).Scan(&q.ID, &q.AdviceID, &q.Contents, &q.CreatedAt, &q.UpdatedAt)
	if err != nil {
		return domain.Question{}, mapNotFound(err)
	}
	return q, nil
}

func (r *questionsRepo) ListQuestionsByAdvice(ctx context.Context, adviceID string) ([]domain.Question, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+questionColumns+` FROM questions WHERE advice_id = ? ORDER BY created_at, id`,
		adviceID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []domain.Question
	for rows.Next() {
		var q domain.Question
		if err := rows.Scan(&q.ID, &q.AdviceID, &q.Contents, &q.CreatedAt, &q.UpdatedAt); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

func (r *questionsRepo) CreateQuestion(ctx context.Context, q domain.Question) error {
	now := time.Now().UTC()
	if q.CreatedAt.IsZero() {
		q.CreatedAt = now
	}
	if q.UpdatedAt.IsZero() {
		q.UpdatedAt = now
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO questions (id, advice_id, contents, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		q.ID, q.AdviceID, q.Contents, q.CreatedAt, q.UpdatedAt,
	)
	return err
}

func (r *questionsRepo) DeleteQuestion(ctx context.Context, questionID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM questions WHERE id = ?`, questionID)
	return err
}
