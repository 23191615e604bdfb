package store

import (
	"context"
	"errors"

	"github.com/roadvice/roadvice/internal/quiz/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")

	// ErrConflict reports a mutation blocked by rows that still reference
	// the target, e.g. deleting a role a user still holds.
	ErrConflict = errors.New("store: conflict")
)

// Page bounds a list query. The zero value means "driver defaults".
type Page struct {
	Limit  int
	Offset int
}

// DefaultPageLimit caps unbounded list queries.
const DefaultPageLimit = 50

// Normalize clamps the page to sane bounds.
func (p Page) Normalize() Page {
	if p.Limit <= 0 || p.Limit > DefaultPageLimit {
		p.Limit = DefaultPageLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}

// Store is the root data access interface. Concrete drivers (sqlite today)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable, and a transaction API for multi-step operations that must be
// atomic (quiz submission, user deletion).
type Store interface {
	Users() Users
	Roles() Roles
	Tags() Tags
	Advice() Advice
	Questions() Questions
	Answers() Answers
	RefreshTokens() RefreshTokens
	CompletedQuizzes() CompletedQuizzes

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed. This is the
	// recommended way to handle transactions.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It exposes the same repos but adds
// Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user with role names populated.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByUsername is used during login and token issuance.
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)

	// GetUserByEmail returns a user by its unique email.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// ListUsers returns users ordered by creation (newest first).
	ListUsers(ctx context.Context, page Page) ([]domain.User, error)

	// CreateUser inserts a new user row (roles are assigned separately via
	// SetUserRoles; ids are provided by the app via ULID).
	CreateUser(ctx context.Context, u domain.User) error

	// SetUserRoles replaces the user's role set with the named roles.
	SetUserRoles(ctx context.Context, userID string, roleNames []string) error

	// UpdateUsername mutates the username and bumps updated_at.
	UpdateUsername(ctx context.Context, userID, username string) error

	// UpdateEnabled flips the enabled flag.
	UpdateEnabled(ctx context.Context, userID string, enabled bool) error

	// UpdatePoints sets the accumulated points to an absolute value.
	UpdatePoints(ctx context.Context, userID string, points int) error

	// AddPoints accrues delta onto the user's points.
	AddPoints(ctx context.Context, userID string, delta int) error

	// UpdatePasswordHash sets the password_hash and bumps updated_at.
	UpdatePasswordHash(ctx context.Context, userID, newHash string) error

	// DeleteUser removes the user row (refresh tokens and completed quizzes
	// cascade per schema).
	DeleteUser(ctx context.Context, userID string) error

	// ExistsByUsername reports whether the username is taken.
	ExistsByUsername(ctx context.Context, username string) (bool, error)

	// ExistsByEmail reports whether the email is taken.
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

type Roles interface {
	GetRoleByID(ctx context.Context, id string) (domain.Role, error)
	GetRoleByName(ctx context.Context, name string) (domain.Role, error)
	ListRoles(ctx context.Context) ([]domain.Role, error)
	CreateRole(ctx context.Context, r domain.Role) error

	// DeleteRole removes a role; returns ErrConflict while users still
	// reference it.
	DeleteRole(ctx context.Context, roleID string) error
}

type Tags interface {
	GetTagByID(ctx context.Context, id string) (domain.Tag, error)
	GetTagByName(ctx context.Context, name string) (domain.Tag, error)
	ListTags(ctx context.Context) ([]domain.Tag, error)
	CreateTag(ctx context.Context, t domain.Tag) error
	UpdateTagName(ctx context.Context, tagID, name string) error
	DeleteTag(ctx context.Context, tagID string) error

	// ExistsByName reports whether the tag name is taken.
	ExistsByName(ctx context.Context, name string) (bool, error)
}

type Advice interface {
	// GetAdviceByID returns the article with its tag names populated.
	GetAdviceByID(ctx context.Context, id string) (domain.Advice, error)

	// ListAdvice returns articles ordered by creation (newest first).
	ListAdvice(ctx context.Context, page Page) ([]domain.Advice, error)

	// ListAdviceByTag filters articles carrying the named tag.
	ListAdviceByTag(ctx context.Context, tagName string, page Page) ([]domain.Advice, error)

	CreateAdvice(ctx context.Context, a domain.Advice) error

	// SetAdviceTags replaces the article's tag set with the named tags.
	SetAdviceTags(ctx context.Context, adviceID string, tagNames []string) error

	// DeleteAdvice removes the article (questions and answers cascade).
	DeleteAdvice(ctx context.Context, adviceID string) error
}

type Questions interface {
	GetQuestionByID(ctx context.Context, id string) (domain.Question, error)
	ListQuestionsByAdvice(ctx context.Context, adviceID string) ([]domain.Question, error)
	CreateQuestion(ctx context.Context, q domain.Question) error

	// DeleteQuestion removes the question (answers cascade).
	DeleteQuestion(ctx context.Context, questionID string) error
}

type Answers interface {
	GetAnswerByID(ctx context.Context, id string) (domain.Answer, error)
	ListAnswersByQuestion(ctx context.Context, questionID string) ([]domain.Answer, error)
	CreateAnswer(ctx context.Context, a domain.Answer) error

	// UpdateAnswerContents edits the answer text; identity and correctness
	// are untouched.
	UpdateAnswerContents(ctx context.Context, answerID, contents string) error

	DeleteAnswer(ctx context.Context, answerID string) error
}

type RefreshTokens interface {
	// CreateRefreshToken stores a new refresh token record. The token value
	// carries a UNIQUE constraint.
	CreateRefreshToken(ctx context.Context, t domain.RefreshToken) error

	// GetRefreshTokenByToken returns the record matching the opaque token
	// value as stored. Expiry is NOT checked here.
	GetRefreshTokenByToken(ctx context.Context, token string) (domain.RefreshToken, error)

	// DeleteRefreshToken removes a single token by its opaque value.
	// Returns ErrNotFound when no row matched; callers detecting a lazy
	// expiry race should treat that as already-deleted.
	DeleteRefreshToken(ctx context.Context, token string) error

	// DeleteUserRefreshTokens removes every token owned by the user.
	// Zero matching rows is not an error.
	DeleteUserRefreshTokens(ctx context.Context, userID string) error

	// DeleteExpiredRefreshTokens is housekeeping; expiry detection proper
	// stays lazy.
	DeleteExpiredRefreshTokens(ctx context.Context) error
}

type CompletedQuizzes interface {
	// CreateCompletedQuiz persists the quiz row plus one given-answer row
	// per occurrence, preserving submission order. Call inside a transaction;
	// the insert is multi-statement.
	CreateCompletedQuiz(ctx context.Context, q domain.CompletedQuiz) error

	GetCompletedQuizByID(ctx context.Context, id string) (domain.CompletedQuiz, error)

	// ListByUser returns the user's records, newest first.
	ListByUser(ctx context.Context, userID string, page Page) ([]domain.CompletedQuiz, error)

	// ListByAdvice returns records for an advice article, newest first.
	ListByAdvice(ctx context.Context, adviceID string, page Page) ([]domain.CompletedQuiz, error)

	// ListByUserAndAdvice returns one user's records for one article.
	ListByUserAndAdvice(ctx context.Context, userID, adviceID string) ([]domain.CompletedQuiz, error)

	// GetHighestScoreByUserAndAdvice returns the single maximal-score record,
	// ties broken by most recent.
	GetHighestScoreByUserAndAdvice(ctx context.Context, userID, adviceID string) (domain.CompletedQuiz, error)

	// DeleteCompletedQuiz removes the row; deleting a missing id is a no-op
	// at this layer.
	DeleteCompletedQuiz(ctx context.Context, id string) error
}
