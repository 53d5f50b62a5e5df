package sqlite

import (
	"context"
	"database/sql"

	"github.com/taskdeck/taskdeck/internal/store"
)

type txStore struct {
	tx *sql.Tx
}

func (t *txStore) Commit() error   { return t.tx.Commit() }
func (t *txStore) Rollback() error { return t.tx.Rollback() }

func (t *txStore) Close() error { return nil } // caller commits/rolls back; outer DB stays open

// Ping is a no-op inside a transaction; the connection already exists.
func (t *txStore) Ping(ctx context.Context) error { return nil }

func (t *txStore) Tx(ctx context.Context) (store.Tx, error) {
	// Nested tx not supported; could emulate with SAVEPOINT if needed
	return nil, sql.ErrTxDone
}

func (t *txStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	// Nested tx not supported; could emulate with SAVEPOINT if needed
	return sql.ErrTxDone
}

func (t *txStore) ApplyMigrations() error { return nil } // migrations run before any tx starts

func (t *txStore) Users() store.Users                 { return &usersRepo{q: t.tx} }
func (t *txStore) Organizations() store.Organizations { return &organizationsRepo{q: t.tx} }
func (t *txStore) Invites() store.Invites             { return &invitesRepo{q: t.tx} }
func (t *txStore) Tasks() store.Tasks                 { return &tasksRepo{q: t.tx} }
