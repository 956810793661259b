package otp

import (
	"context"
	"time"
)

// DefaultTTL is how long an issued code stays valid.
const DefaultTTL = 5 * time.Minute

// CodeStore keeps one outstanding code per user. Implementations must make
// Store, Validate and Remove atomic with respect to each other per user.
type CodeStore interface {
	// Store records code for userID, replacing any earlier code. The code
	// expires after the store's TTL.
	Store(ctx context.Context, userID, code string) error

	// Validate reports whether code is the live code for userID. A match
	// consumes the code. A mismatch leaves it in place for another attempt.
	// An expired code is removed and never matches.
	Validate(ctx context.Context, userID, code string) (bool, error)

	// Remove deletes any code for userID.
	Remove(ctx context.Context, userID string) error

	// Withdraw deletes the code for userID only while it still holds code. A
	// newer code stored in the meantime is left alone.
	Withdraw(ctx context.Context, userID, code string) error

	// DeleteExpired purges expired codes and returns how many were removed.
	DeleteExpired(ctx context.Context) (int, error)

	Ping(ctx context.Context) error
	Close() error
}
