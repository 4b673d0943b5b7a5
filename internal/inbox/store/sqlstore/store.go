// Package sqlstore implements store.Store over database/sql. The sqlite and
// postgres drivers supply the connection, a Dialect and their migrations.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"

	"github.com/aussiebroadwan/whisper/internal/inbox/store"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// MigrateFunc brings the schema of db up to date.
type MigrateFunc func(ctx context.Context, db *sql.DB) error

type Store struct {
	db      *sql.DB
	q       *queries
	migrate MigrateFunc
}

func New(db *sql.DB, d Dialect, migrate MigrateFunc) *Store {
	return &Store{
		db:      db,
		q:       &queries{db: db, d: d},
		migrate: migrate,
	}
}

// DB exposes the pool for driver specific setup.
func (s *Store) DB() *sql.DB { return s.db }

func (s *Store) Users() store.Users       { return &usersRepo{q: s.q} }
func (s *Store) Messages() store.Messages { return &messagesRepo{q: s.q} }

func (s *Store) ApplyMigrations(ctx context.Context) error {
	if s.migrate == nil {
		return nil
	}
	return s.migrate(ctx, s.db)
}

func (s *Store) Close() error                   { return s.db.Close() }
func (s *Store) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }

func (s *Store) Tx(ctx context.Context) (store.Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &txStore{tx: tx, q: &queries{db: tx, d: s.q.d}}, nil
}

func (s *Store) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	tx, err := s.Tx(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }() // no-op after Commit

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

type txStore struct {
	tx *sql.Tx
	q  *queries
}

func (t *txStore) Users() store.Users       { return &usersRepo{q: t.q} }
func (t *txStore) Messages() store.Messages { return &messagesRepo{q: t.q} }

func (t *txStore) Commit() error   { return t.tx.Commit() }
func (t *txStore) Rollback() error { return t.tx.Rollback() }

// Migrations run before any transaction is opened.
func (t *txStore) ApplyMigrations(context.Context) error { return nil }

func (t *txStore) Close() error               { return nil }
func (t *txStore) Ping(context.Context) error { return nil }

func (t *txStore) Tx(context.Context) (store.Tx, error) { return nil, sql.ErrTxDone }
func (t *txStore) WithTx(context.Context, func(store.Tx) error) error {
	return sql.ErrTxDone
}

type queries struct {
	db DBTX
	d  Dialect
}

func (q *queries) exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	res, err := q.db.ExecContext(ctx, q.d.Rebind(query), args...)
	return res, q.mapErr(err)
}

func (q *queries) query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return q.db.QueryContext(ctx, q.d.Rebind(query), args...)
}

func (q *queries) queryRow(ctx context.Context, query string, args ...any) *sql.Row {
	return q.db.QueryRowContext(ctx, q.d.Rebind(query), args...)
}

func (q *queries) mapErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sql.ErrNoRows):
		return store.ErrNotFound
	case q.d.IsUniqueViolation != nil && q.d.IsUniqueViolation(err):
		return errors.Join(store.ErrAlreadyExists, err)
	}
	return err
}

// mustAffect turns a zero row count into ErrNotFound.
func mustAffect(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
