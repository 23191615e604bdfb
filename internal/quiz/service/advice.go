package service

import (
	"context"
	"time"

	"github.com/roadvice/roadvice/internal/quiz/domain"
	"github.com/roadvice/roadvice/internal/quiz/store"
	"github.com/roadvice/roadvice/pkg/idx"
	"github.com/roadvice/roadvice/pkg/slogx"
)

// AdviceService manages advice articles and the questions attached to them.
// Tag assignment resolves tag names to ids, so an unknown tag name surfaces
// as store.ErrNotFound rather than creating tags implicitly.
type AdviceService struct {
	Store store.Store
}

// Create stores a new article and assigns its tags in one transaction.
func (s *AdviceService) Create(ctx context.Context, title, contents string, tags []string) (domain.Advice, error) {
	now := time.Now().UTC()
	advice := domain.Advice{
		ID:        idx.New().String(),
		Title:     title,
		Contents:  contents,
		Tags:      tags,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Advice().CreateAdvice(ctx, advice); err != nil {
			return err
		}
		if len(tags) == 0 {
			return nil
		}
		return tx.Advice().SetAdviceTags(ctx, advice.ID, tags)
	})
	if err != nil {
		return domain.Advice{}, err
	}

	slogx.FromContext(ctx).Info("advice created", "advice_id", advice.ID, "title", title)
	return advice, nil
}

func (s *AdviceService) GetByID(ctx context.Context, id string) (domain.Advice, error) {
	return s.Store.Advice().GetAdviceByID(ctx, id)
}

func (s *AdviceService) List(ctx context.Context, page store.Page) ([]domain.Advice, error) {
	return s.Store.Advice().ListAdvice(ctx, page)
}

func (s *AdviceService) ListByTag(ctx context.Context, tagName string, page store.Page) ([]domain.Advice, error) {
	return s.Store.Advice().ListAdviceByTag(ctx, tagName, page)
}

// SetTags replaces the article's tag set atomically. An unknown tag name
// aborts the whole replacement and the prior set survives.
func (s *AdviceService) SetTags(ctx context.Context, id string, tags []string) error {
	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		return tx.Advice().SetAdviceTags(ctx, id, tags)
	})
}

// Delete removes the article. Questions, answers and completed quiz records
// referencing it cascade per schema.
func (s *AdviceService) Delete(ctx context.Context, id string) error {
	slogx.FromContext(ctx).Info("deleting advice", "advice_id", id)
	return s.Store.Advice().DeleteAdvice(ctx, id)
}

// AddQuestion attaches a question to an existing article.
func (s *AdviceService) AddQuestion(ctx context.Context, adviceID, contents string) (domain.Question, error) {
	if _, err := s.Store.Advice().GetAdviceByID(ctx, adviceID); err != nil {
		return domain.Question{}, err
	}

	now := time.Now().UTC()
	question := domain.Question{
		ID:        idx.New().String(),
		AdviceID:  adviceID,
		Contents:  contents,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Store.Questions().CreateQuestion(ctx, question); err != nil {
		return domain.Question{}, err
	}
	return question, nil
}

func (s *AdviceService) GetQuestion(ctx context.Context, id string) (domain.Question, error) {
	return s.Store.Questions().GetQuestionByID(ctx, id)
}

func (s *AdviceService) ListQuestions(ctx context.Context, adviceID string) ([]domain.Question, error) {
	return s.Store.Questions().ListQuestionsByAdvice(ctx, adviceID)
}

// DeleteQuestion removes a question and its answers.
func (s *AdviceService) DeleteQuestion(ctx context.Context, id string) error {
	return s.Store.Questions().DeleteQuestion(ctx, id)
}
