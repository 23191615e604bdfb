package domain

import "time"

// Tag categorises advice articles.
type Tag struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Advice is a content article that owns a set of quiz questions.
type Advice struct {
	ID        string
	Title     string
	Contents  string
	Tags      []string // tag names
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Question belongs to exactly one advice article.
type Question struct {
	ID        string
	AdviceID  string
	Contents  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Answer belongs to exactly one question. Its text may be edited after
// creation; its identity and correctness flag may not.
type Answer struct {
	ID         string
	QuestionID string
	Contents   string
	IsCorrect  bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Equal reports answer identity equality. Two answers are the same answer
// iff they share an ID; content fields do not participate.
func (a Answer) Equal(other Answer) bool {
	return a.ID == other.ID
}
