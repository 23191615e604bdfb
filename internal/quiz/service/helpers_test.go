package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/roadvice/roadvice/internal/quiz/domain"
	"github.com/roadvice/roadvice/internal/quiz/store"
	"github.com/roadvice/roadvice/internal/quiz/store/drivers/sqlite"
	"github.com/roadvice/roadvice/pkg/cryptox"
	"github.com/roadvice/roadvice/pkg/idx"
)

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func seedUser(t *testing.T, st store.Store, username, password string) domain.User {
	t.Helper()
	ctx := context.Background()

	hash, err := cryptox.HashPassword(password)
	require.NoError(t, err)

	now := time.Now().UTC()
	user := domain.User{
		ID:           idx.New().String(),
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: hash,
		Enabled:      true,
		Roles:        []string{domain.RoleUser},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, st.Users().CreateUser(ctx, user))
	require.NoError(t, st.Users().SetUserRoles(ctx, user.ID, user.Roles))
	return user
}

func seedAdvice(t *testing.T, st store.Store, title string) domain.Advice {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC()
	advice := domain.Advice{
		ID:        idx.New().String(),
		Title:     title,
		Contents:  "always check your mirrors",
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, st.Advice().CreateAdvice(ctx, advice))
	return advice
}

// seedQuestionWithAnswers attaches one question to the advice and returns
// the created answers, correct ones according to the flags given.
func seedQuestionWithAnswers(t *testing.T, st store.Store, adviceID string, correct ...bool) []domain.Answer {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC()
	question := domain.Question{
		ID:        idx.New().String(),
		AdviceID:  adviceID,
		Contents:  "what should you do first?",
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, st.Questions().CreateQuestion(ctx, question))

	answers := make([]domain.Answer, 0, len(correct))
	for _, isCorrect := range correct {
		a := domain.Answer{
			ID:         idx.New().String(),
			QuestionID: question.ID,
			Contents:   "an option",
			IsCorrect:  isCorrect,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		require.NoError(t, st.Answers().CreateAnswer(ctx, a))
		answers = append(answers, a)
	}
	return answers
}
