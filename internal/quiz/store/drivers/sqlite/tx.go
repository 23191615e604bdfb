package sqlite

import (
	"context"
	"database/sql"

	"github.com/roadvice/roadvice/internal/quiz/store"
)

type txStore struct {
	tx *sql.Tx
}

func newTx(tx *sql.Tx) *txStore {
	return &txStore{tx: tx}
}

func (t *txStore) Commit() error   { return t.tx.Commit() }
func (t *txStore) Rollback() error { return t.tx.Rollback() }

func (t *txStore) Close() error { return nil } // nothing to close; outer DB stays open

// Ping is a no-op for transactions; the connection already exists.
func (t *txStore) Ping(ctx context.Context) error {
	return nil
}

func (t *txStore) Tx(ctx context.Context) (store.Tx, error) {
	// Nested tx not supported; could emulate with SAVEPOINT if needed
	return nil, sql.ErrTxDone
}

func (t *txStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	// Nested tx not supported; could emulate with SAVEPOINT if needed
	return sql.ErrTxDone
}

func (t *txStore) ApplyMigrations() error { return nil } // migrations run before any tx starts

func (t *txStore) Users() store.Users                       { return &usersRepo{db: t.tx} }
func (t *txStore) Roles() store.Roles                       { return &rolesRepo{db: t.tx} }
func (t *txStore) Tags() store.Tags                         { return &tagsRepo{db: t.tx} }
func (t *txStore) Advice() store.Advice                     { return &adviceRepo{db: t.tx} }
func (t *txStore) Questions() store.Questions               { return &questionsRepo{db: t.tx} }
func (t *txStore) Answers() store.Answers                   { return &answersRepo{db: t.tx} }
func (t *txStore) RefreshTokens() store.RefreshTokens       { return &refreshTokensRepo{db: t.tx} }
func (t *txStore) CompletedQuizzes() store.CompletedQuizzes { return &completedQuizzesRepo{db: t.tx} }
