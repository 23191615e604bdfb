package domain

import "time"

// CompletedQuiz is an immutable record of one quiz attempt: who, on which
// advice, which answers were chosen (in order, duplicates included) and the
// resulting score. The score is frozen at submission time; later edits to an
// answer's correctness flag do not rewrite history.
type CompletedQuiz struct {
	ID        string
	UserID    string
	AdviceID  string
	AnswerIDs []string // given answers, submission order preserved
	Score     int
	CreatedAt time.Time
}

// NewCompletedQuiz assembles a record from fully resolved references and
// computes the score atomically with the other fields. The score is a pure
// occurrence count: every resolved answer whose IsCorrect flag is set counts,
// including repeats of the same answer ID.
func NewCompletedQuiz(id string, user User, advice Advice, given []Answer, now time.Time) CompletedQuiz {
	answerIDs := make([]string, len(given))
	score := 0
	for i, a := range given {
		answerIDs[i] = a.ID
		if a.IsCorrect {
			score++
		}
	}
	return CompletedQuiz{
		ID:        id,
		UserID:    user.ID,
		AdviceID:  advice.ID,
		AnswerIDs: answerIDs,
		Score:     score,
		CreatedAt: now,
	}
}
