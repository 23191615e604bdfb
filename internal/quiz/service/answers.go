package service

import (
	"context"
	"time"

	"github.com/roadvice/roadvice/internal/quiz/domain"
	"github.com/roadvice/roadvice/internal/quiz/store"
	"github.com/roadvice/roadvice/pkg/idx"
)

// AnswerService manages answer options under questions. Updates touch text
// only: the correctness flag is fixed at creation so that an edit cannot
// silently invalidate already recorded quiz scores.
type AnswerService struct {
	Store store.Store
}

func (s *AnswerService) Create(ctx context.Context, questionID, contents string, isCorrect bool) (domain.Answer, error) {
	if _, err := s.Store.Questions().GetQuestionByID(ctx, questionID); err != nil {
		return domain.Answer{}, err
	}

	now := time.Now().UTC()
	answer := domain.Answer{
		ID:         idx.New().String(),
		QuestionID: questionID,
		Contents:   contents,
		IsCorrect:  isCorrect,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.Store.Answers().CreateAnswer(ctx, answer); err != nil {
		return domain.Answer{}, err
	}
	return answer, nil
}

func (s *AnswerService) GetByID(ctx context.Context, id string) (domain.Answer, error) {
	return s.Store.Answers().GetAnswerByID(ctx, id)
}

func (s *AnswerService) ListByQuestion(ctx context.Context, questionID string) ([]domain.Answer, error) {
	return s.Store.Answers().ListAnswersByQuestion(ctx, questionID)
}

// UpdateContents edits the answer text in place.
func (s *AnswerService) UpdateContents(ctx context.Context, id, contents string) error {
	return s.Store.Answers().UpdateAnswerContents(ctx, id, contents)
}

func (s *AnswerService) Delete(ctx context.Context, id string) error {
	return s.Store.Answers().DeleteAnswer(ctx, id)
}
