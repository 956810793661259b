package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/signin/internal/auth/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface implemented by each driver. Repos
// are reached through methods so that a Tx can hand out tx-scoped repos and
// nested transactions cannot be started by accident.
type Store interface {
	Users() Users
	Sessions() Sessions

	ApplyMigrations() error

	// Tx starts a read/write transaction. The caller must Commit or Rollback.
	Tx(ctx context.Context) (Tx, error)

	// WithTx runs fn in a transaction, committing when fn returns nil and
	// rolling back otherwise.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail matches case-insensitively on the normalized email.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser inserts u. Returns ErrAlreadyExists when the email is taken.
	CreateUser(ctx context.Context, u domain.User) error

	// SetTwoFactorEnabled flips the master 2FA switch and bumps updated_at.
	SetTwoFactorEnabled(ctx context.Context, userID string, enabled bool) error

	// SetEmailTwoFactorEnabled flips the email method switch and bumps updated_at.
	SetEmailTwoFactorEnabled(ctx context.Context, userID string, enabled bool) error

	IsEmpty(ctx context.Context) (bool, error)
}

type Sessions interface {
	CreateSession(ctx context.Context, s domain.Session) error
	GetSession(ctx context.Context, id string) (domain.Session, error)

	// RevokeSession marks the session revoked. Unknown ids return ErrNotFound.
	RevokeSession(ctx context.Context, id string) error

	// DeleteExpiredSessions removes sessions that expired before now or were
	// revoked, returning how many were removed.
	DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error)
}
