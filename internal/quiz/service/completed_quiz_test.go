package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roadvice/roadvice/internal/quiz/store"
	"github.com/roadvice/roadvice/pkg/idx"
)

func TestSubmitCountsCorrectOccurrences(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &CompletedQuizService{Store: st}

	user := seedUser(t, st, "alice", "password-1")
	advice := seedAdvice(t, st, "roundabouts")
	answers := seedQuestionWithAnswers(t, st, advice.ID, true, false, true)

	// The first correct answer appears twice; each occurrence counts.
	given := []string{answers[0].ID, answers[1].ID, answers[2].ID, answers[0].ID}

	quiz, err := svc.Submit(ctx, user.ID, advice.ID, given)
	require.NoError(t, err)
	require.Equal(t, 3, quiz.Score)
	require.Equal(t, given, quiz.AnswerIDs)
	require.Equal(t, user.ID, quiz.UserID)
	require.Equal(t, advice.ID, quiz.AdviceID)

	// The stored record preserves submission order, duplicates included.
	stored, err := st.CompletedQuizzes().GetCompletedQuizByID(ctx, quiz.ID)
	require.NoError(t, err)
	require.Equal(t, given, stored.AnswerIDs)
	require.Equal(t, 3, stored.Score)
}

func TestSubmitAllWrongScoresZero(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &CompletedQuizService{Store: st}

	user := seedUser(t, st, "bob", "password-1")
	advice := seedAdvice(t, st, "parking")
	answers := seedQuestionWithAnswers(t, st, advice.ID, false, false)

	quiz, err := svc.Submit(ctx, user.ID, advice.ID, []string{answers[0].ID, answers[1].ID})
	require.NoError(t, err)
	require.Equal(t, 0, quiz.Score)
}

func TestSubmitEmptyAnswersIsValid(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &CompletedQuizService{Store: st}

	user := seedUser(t, st, "carol", "password-1")
	advice := seedAdvice(t, st, "overtaking")

	quiz, err := svc.Submit(ctx, user.ID, advice.ID, nil)
	require.NoError(t, err)
	require.Equal(t, 0, quiz.Score)
	require.Empty(t, quiz.AnswerIDs)
}

func TestSubmitUnknownReferenceWritesNothing(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &CompletedQuizService{Store: st}

	user := seedUser(t, st, "dave", "password-1")
	advice := seedAdvice(t, st, "lane changes")
	answers := seedQuestionWithAnswers(t, st, advice.ID, true)

	t.Run("unknown user", func(t *testing.T) {
		_, err := svc.Submit(ctx, idx.New().String(), advice.ID, []string{answers[0].ID})
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("unknown advice", func(t *testing.T) {
		_, err := svc.Submit(ctx, user.ID, idx.New().String(), []string{answers[0].ID})
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("unknown answer mid-list", func(t *testing.T) {
		_, err := svc.Submit(ctx, user.ID, advice.ID, []string{answers[0].ID, idx.New().String()})
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	// The failed submissions must not have left partial rows behind.
	records, err := svc.GetQuizzesByUser(ctx, user.ID, store.Page{})
	require.NoError(t, err)
	require.Empty(t, records)
}

func TestQuizHistoryProjections(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &CompletedQuizService{Store: st}

	user := seedUser(t, st, "erin", "password-1")
	other := seedUser(t, st, "frank", "password-1")
	advice := seedAdvice(t, st, "speed limits")
	answers := seedQuestionWithAnswers(t, st, advice.ID, true, false)

	first, err := svc.Submit(ctx, user.ID, advice.ID, []string{answers[1].ID})
	require.NoError(t, err)
	second, err := svc.Submit(ctx, user.ID, advice.ID, []string{answers[0].ID})
	require.NoError(t, err)
	_, err = svc.Submit(ctx, other.ID, advice.ID, []string{answers[0].ID})
	require.NoError(t, err)

	byUser, err := svc.GetQuizzesByUser(ctx, user.ID, store.Page{})
	require.NoError(t, err)
	require.Len(t, byUser, 2)
	require.Equal(t, second.ID, byUser[0].ID)
	require.Equal(t, first.ID, byUser[1].ID)

	byAdvice, err := svc.GetQuizzesByAdvice(ctx, advice.ID, store.Page{})
	require.NoError(t, err)
	require.Len(t, byAdvice, 3)

	both, err := svc.GetQuizzesByUserAndAdvice(ctx, user.ID, advice.ID)
	require.NoError(t, err)
	require.Len(t, both, 2)

	best, err := svc.GetHighestScoreQuizByUserAndAdvice(ctx, user.ID, advice.ID)
	require.NoError(t, err)
	require.Equal(t, second.ID, best.ID)
	require.Equal(t, 1, best.Score)

	// No history at all surfaces as not found.
	_, err = svc.GetHighestScoreQuizByUserAndAdvice(ctx, other.ID, idx.New().String())
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestHighestScoreTieBreaksByRecency(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &CompletedQuizService{Store: st}

	user := seedUser(t, st, "grace", "password-1")
	advice := seedAdvice(t, st, "school zones")
	answers := seedQuestionWithAnswers(t, st, advice.ID, true)

	_, err := svc.Submit(ctx, user.ID, advice.ID, []string{answers[0].ID})
	require.NoError(t, err)
	latest, err := svc.Submit(ctx, user.ID, advice.ID, []string{answers[0].ID})
	require.NoError(t, err)

	best, err := svc.GetHighestScoreQuizByUserAndAdvice(ctx, user.ID, advice.ID)
	require.NoError(t, err)
	require.Equal(t, latest.ID, best.ID)
}

func TestDeleteCompletedQuiz(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &CompletedQuizService{Store: st}

	user := seedUser(t, st, "henry", "password-1")
	advice := seedAdvice(t, st, "headlights")
	answers := seedQuestionWithAnswers(t, st, advice.ID, true)

	quiz, err := svc.Submit(ctx, user.ID, advice.ID, []string{answers[0].ID})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, quiz.ID))

	_, err = svc.GetByID(ctx, quiz.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
}
