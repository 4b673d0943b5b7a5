package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/whisper/internal/inbox/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface implemented by the sqlite and
// postgres drivers. Repositories hang off it so a Tx exposes the same ones.
type Store interface {
	Users() Users
	Messages() Messages

	ApplyMigrations(ctx context.Context) error

	// Tx starts a read/write transaction. The caller must Commit or Rollback.
	Tx(ctx context.Context) (Tx, error)

	// WithTx runs fn in a transaction, committing when fn returns nil.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error
	Ping(ctx context.Context) error
}

// Tx is a Store bound to one transaction. Nested transactions are not
// supported.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// CreateUser inserts u. A clashing username or email gives ErrAlreadyExists.
	CreateUser(ctx context.Context, u domain.User) error

	GetUserByID(ctx context.Context, id string) (domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// ResetVerification replaces the password and pending code of an
	// unverified user, used when someone signs up again with the same email.
	ResetVerification(ctx context.Context, userID, passwordHash, codeHash string, expiresAt time.Time) error

	// MarkVerified sets verified and clears the pending code.
	MarkVerified(ctx context.Context, userID string) error

	// SetAcceptingMessages updates the flag in a single statement.
	// ErrNotFound when no such user exists.
	SetAcceptingMessages(ctx context.Context, userID string, accept bool) error

	// DeleteUser cascades to the user's messages.
	DeleteUser(ctx context.Context, userID string) error

	// DeleteStaleUnverified removes unverified users whose code expired
	// before the cutoff and returns how many went.
	DeleteStaleUnverified(ctx context.Context, before time.Time) (int64, error)
}

type Messages interface {
	AppendMessage(ctx context.Context, m domain.Message) error

	// ListMessages returns the user's inbox newest first.
	ListMessages(ctx context.Context, userID string) ([]domain.Message, error)

	// DeleteMessage removes one message owned by userID and reports whether
	// anything was removed.
	DeleteMessage(ctx context.Context, userID, messageID string) (bool, error)

	CountMessages(ctx context.Context, userID string) (int, error)
}
