package service

import (
	"context"
	"time"

	"github.com/roadvice/roadvice/internal/quiz/domain"
	"github.com/roadvice/roadvice/internal/quiz/store"
	"github.com/roadvice/roadvice/pkg/idx"
	"github.com/roadvice/roadvice/pkg/slogx"
)

// CompletedQuizService assembles and persists immutable quiz-attempt records.
type CompletedQuizService struct {
	Store store.Store
}

// Submit resolves the referenced user, advice article and answers (in that
// order), computes the score and persists the record. The whole operation
// runs inside one transaction: any unresolvable reference aborts it and
// nothing is written.
//
// Scoring is a pure occurrence count of answers flagged correct. Repeated
// answer ids count once per occurrence. Answers are not checked to belong
// to the stated advice article.
func (s *CompletedQuizService) Submit(
	ctx context.Context,
	userID, adviceID string,
	answerIDs []string,
) (domain.CompletedQuiz, error) {
	l := slogx.FromContext(ctx)

	var quiz domain.CompletedQuiz
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		user, err := tx.Users().GetUserByID(ctx, userID)
		if err != nil {
			return err
		}

		advice, err := tx.Advice().GetAdviceByID(ctx, adviceID)
		if err != nil {
			return err
		}

		given := make([]domain.Answer, 0, len(answerIDs))
		for _, answerID := range answerIDs {
			answer, err := tx.Answers().GetAnswerByID(ctx, answerID)
			if err != nil {
				return err
			}
			given = append(given, answer)
		}

		quiz = domain.NewCompletedQuiz(idx.New().String(), user, advice, given, time.Now().UTC())
		return tx.CompletedQuizzes().CreateCompletedQuiz(ctx, quiz)
	})
	if err != nil {
		return domain.CompletedQuiz{}, err
	}

	l.Info("completed quiz saved",
		"quiz_id", quiz.ID,
		"user_id", quiz.UserID,
		"advice_id", quiz.AdviceID,
		"score", quiz.Score,
		"answers", len(quiz.AnswerIDs),
	)
	return quiz, nil
}

// Delete removes one record. No cascading side effects beyond the row and
// its given-answer rows.
func (s *CompletedQuizService) Delete(ctx context.Context, quizID string) error {
	slogx.FromContext(ctx).Info("deleting completed quiz", "quiz_id", quizID)
	return s.Store.CompletedQuizzes().DeleteCompletedQuiz(ctx, quizID)
}

// GetByID fetches one record with its given answers.
func (s *CompletedQuizService) GetByID(ctx context.Context, quizID string) (domain.CompletedQuiz, error) {
	return s.Store.CompletedQuizzes().GetCompletedQuizByID(ctx, quizID)
}

// GetQuizzesByUser returns the user's attempts, newest first.
func (s *CompletedQuizService) GetQuizzesByUser(ctx context.Context, userID string, page store.Page) ([]domain.CompletedQuiz, error) {
	return s.Store.CompletedQuizzes().ListByUser(ctx, userID, page)
}

// GetQuizzesByAdvice returns all attempts on one advice article, newest first.
func (s *CompletedQuizService) GetQuizzesByAdvice(ctx context.Context, adviceID string, page store.Page) ([]domain.CompletedQuiz, error) {
	return s.Store.CompletedQuizzes().ListByAdvice(ctx, adviceID, page)
}

// GetQuizzesByUserAndAdvice returns one user's attempts on one article.
func (s *CompletedQuizService) GetQuizzesByUserAndAdvice(ctx context.Context, userID, adviceID string) ([]domain.CompletedQuiz, error) {
	return s.Store.CompletedQuizzes().ListByUserAndAdvice(ctx, userID, adviceID)
}

// GetHighestScoreQuizByUserAndAdvice returns the single best attempt; ties
// break by most recent.
func (s *CompletedQuizService) GetHighestScoreQuizByUserAndAdvice(ctx context.Context, userID, adviceID string) (domain.CompletedQuiz, error) {
	return s.Store.CompletedQuizzes().GetHighestScoreByUserAndAdvice(ctx, userID, adviceID)
}
