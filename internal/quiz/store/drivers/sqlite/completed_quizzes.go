package sqlite

import (
	"context"
	"time"

	"github.com/roadvice/roadvice/internal/quiz/domain"
	"github.com/roadvice/roadvice/internal/quiz/store"
)

type completedQuizzesRepo struct {
	db dbtx
}

const quizColumns = `id, user_id, advice_id, score, created_at`

// CreateCompletedQuiz inserts the quiz row and one given-answer row per
// occurrence. The insert is multi-statement, so callers run it inside a
// store transaction to keep the record atomic.
func (r *completedQuizzesRepo) CreateCompletedQuiz(ctx context.Context, q domain.CompletedQuiz) error {
	if q.CreatedAt.IsZero() {
		q.CreatedAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO completed_quizzes (id, user_id, advice_id, score, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		q.ID, q.UserID, q.AdviceID, q.Score, q.CreatedAt,
	)
	if err != nil {
		return mapConflict(err)
	}

	for pos, answerID := range q.AnswerIDs {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO completed_quiz_answers (quiz_id, position, answer_id) VALUES (?, ?, ?)`,
			q.ID, pos, answerID,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *completedQuizzesRepo) GetCompletedQuizByID(ctx context.Context, id string) (domain.CompletedQuiz, error) {
	q, err := scanCompletedQuiz(r.db.QueryRowContext(ctx,
		`SELECT `+quizColumns+` FROM completed_quizzes WHERE id = ?`, id))
	if err != nil {
		return domain.CompletedQuiz{}, mapNotFound(err)
	}

	q.AnswerIDs, err = r.givenAnswers(ctx, q.ID)
	if err != nil {
		return domain.CompletedQuiz{}, err
	}
	return q, nil
}

func (r *completedQuizzesRepo) ListByUser(ctx context.Context, userID string, page store.Page) ([]domain.CompletedQuiz, error) {
	page = page.Normalize()
	return r.listQuizzes(ctx,
		`SELECT `+quizColumns+` FROM completed_quizzes WHERE user_id = ?
		 ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`,
		userID, page.Limit, page.Offset,
	)
}

func (r *completedQuizzesRepo) ListByAdvice(ctx context.Context, adviceID string, page store.Page) ([]domain.CompletedQuiz, error) {
	page = page.Normalize()
	return r.listQuizzes(ctx,
		`SELECT `+quizColumns+` FROM completed_quizzes WHERE advice_id = ?
		 ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`,
		adviceID, page.Limit, page.Offset,
	)
}

func (r *completedQuizzesRepo) ListByUserAndAdvice(ctx context.Context, userID, adviceID string) ([]domain.CompletedQuiz, error) {
	return r.listQuizzes(ctx,
		`SELECT `+quizColumns+` FROM completed_quizzes WHERE user_id = ? AND advice_id = ?
		 ORDER BY created_at DESC, id DESC`,
		userID, adviceID,
	)
}

// GetHighestScoreByUserAndAdvice returns the maximal-score record; ties break
// by most recent submission.
func (r *completedQuizzesRepo) GetHighestScoreByUserAndAdvice(ctx context.Context, userID, adviceID string) (domain.CompletedQuiz, error) {
	q, err := scanCompletedQuiz(r.db.QueryRowContext(ctx,
		`SELECT `+quizColumns+` FROM completed_quizzes WHERE user_id = ? AND advice_id = ?
		 ORDER BY score DESC, created_at DESC, id DESC LIMIT 1`,
		userID, adviceID,
	))
	if err != nil {
		return domain.CompletedQuiz{}, mapNotFound(err)
	}

	q.AnswerIDs, err = r.givenAnswers(ctx, q.ID)
	if err != nil {
		return domain.CompletedQuiz{}, err
	}
	return q, nil
}

func (r *completedQuizzesRepo) DeleteCompletedQuiz(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM completed_quizzes WHERE id = ?`, id)
	return err
}

func (r *completedQuizzesRepo) listQuizzes(ctx context.Context, query string, args ...any) ([]domain.CompletedQuiz, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var quizzes []domain.CompletedQuiz
	for rows.Next() {
		q, err := scanCompletedQuiz(rows)
		if err != nil {
			return nil, err
		}
		quizzes = append(quizzes, q)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range quizzes {
		quizzes[i].AnswerIDs, err = r.givenAnswers(ctx, quizzes[i].ID)
		if err != nil {
			return nil, err
		}
	}
	return quizzes, nil
}

func (r *completedQuizzesRepo) givenAnswers(ctx context.Context, quizID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT answer_id FROM completed_quiz_answers WHERE quiz_id = ? ORDER BY position`,
		quizID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func scanCompletedQuiz(row rowScanner) (domain.CompletedQuiz, error) {
	var q domain.CompletedQuiz
	err := row.Scan(&q.ID, &q.UserID, &q.AdviceID, &q.Score, &q.CreatedAt)
	if err != nil {
		return domain.CompletedQuiz{}, err
	}
	return q, nil
}
