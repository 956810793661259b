package sqlite_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aussiebroadwan/signin/internal/auth/domain"
	"github.com/aussiebroadwan/signin/internal/auth/store"
	"github.com/aussiebroadwan/signin/internal/auth/store/drivers/sqlite"
	"github.com/aussiebroadwan/signin/pkg/idx"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *sqlite.Store {
	t.Helper()
	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, s.ApplyMigrations())
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func seedUser(t *testing.T, s store.Store, email string) domain.User {
	t.Helper()
	u := domain.User{
		ID:           idx.New().String(),
		UserName:     "alice",
		Email:        email,
		PasswordHash: "hash",
	}
	require.NoError(t, s.Users().CreateUser(context.Background(), u))
	return u
}

func TestMigrationsIdempotent(t *testing.T) {
	t.Parallel()
	s := newStore(t)
	require.NoError(t, s.ApplyMigrations())
	require.NoError(t, s.Ping(context.Background()))
}

func TestUsers(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newStore(t)

	empty, err := s.Users().IsEmpty(ctx)
	require.NoError(t, err)
	require.True(t, empty)

	phone := "+61 400 000 000"
	u := domain.User{
		ID:             idx.New().String(),
		UserName:       "Alice",
		Email:          "Alice@Example.com",
		EmailConfirmed: true,
		PhoneNumber:    &phone,
		PasswordHash:   "hash",
	}
	require.NoError(t, s.Users().CreateUser(ctx, u))

	t.Run("lookup by email ignores case", func(t *testing.T) {
		got, err := s.Users().GetUserByEmail(ctx, "  alice@EXAMPLE.com ")
		require.NoError(t, err)
		require.Equal(t, u.ID, got.ID)
		require.Equal(t, "Alice@Example.com", got.Email)
		require.True(t, got.EmailConfirmed)
		require.NotNil(t, got.PhoneNumber)
		require.Equal(t, phone, *got.PhoneNumber)
		require.False(t, got.TwoFactorEnabled)
	})

	t.Run("duplicate email", func(t *testing.T) {
		dup := u
		dup.ID = idx.New().String()
		dup.Email = "ALICE@example.com"
		require.ErrorIs(t, s.Users().CreateUser(ctx, dup), store.ErrAlreadyExists)
	})

	t.Run("switches", func(t *testing.T) {
		require.NoError(t, s.Users().SetTwoFactorEnabled(ctx, u.ID, true))
		require.NoError(t, s.Users().SetEmailTwoFactorEnabled(ctx, u.ID, true))

		got, err := s.Users().GetUserByID(ctx, u.ID)
		require.NoError(t, err)
		require.True(t, got.TwoFactorEnabled)
		require.True(t, got.EmailTwoFactorEnabled)
		require.True(t, got.RequiresEmailChallenge())
		require.False(t, got.AuthenticatorTwoFactorEnabled)
	})

	t.Run("missing user", func(t *testing.T) {
		_, err := s.Users().GetUserByID(ctx, "nope")
		require.ErrorIs(t, err, store.ErrNotFound)
		_, err = s.Users().GetUserByEmail(ctx, "nobody@example.com")
		require.ErrorIs(t, err, store.ErrNotFound)
		require.ErrorIs(t, s.Users().SetTwoFactorEnabled(ctx, "nope", true), store.ErrNotFound)
		require.ErrorIs(t, s.Users().SetEmailTwoFactorEnabled(ctx, "nope", true), store.ErrNotFound)
	})

	empty, err = s.Users().IsEmpty(ctx)
	require.NoError(t, err)
	require.False(t, empty)
}

func TestSessions(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newStore(t)
	u := seedUser(t, s, "bob@example.com")
	now := time.Now()

	live := domain.Session{ID: idx.New().String(), UserID: u.ID, Persistent: true, AMR: []string{"pwd", "otp", "mfa"}, ExpiresAt: now.Add(time.Hour)}
	expired := domain.Session{ID: idx.New().String(), UserID: u.ID, AMR: []string{"pwd"}, ExpiresAt: now.Add(-time.Hour)}
	revoked := domain.Session{ID: idx.New().String(), UserID: u.ID, AMR: []string{"pwd"}, ExpiresAt: now.Add(time.Hour)}
	for _, sess := range []domain.Session{live, expired, revoked} {
		require.NoError(t, s.Sessions().CreateSession(ctx, sess))
	}
	require.NoError(t, s.Sessions().RevokeSession(ctx, revoked.ID))

	got, err := s.Sessions().GetSession(ctx, live.ID)
	require.NoError(t, err)
	require.Equal(t, u.ID, got.UserID)
	require.True(t, got.Persistent)
	require.Equal(t, []string{"pwd", "otp", "mfa"}, got.AMR)
	require.WithinDuration(t, live.ExpiresAt, got.ExpiresAt, time.Second)
	require.True(t, got.Active(now))

	n, err := s.Sessions().DeleteExpiredSessions(ctx, now)
	require.NoError(t, err)
	require.EqualValues(t, 2, n)

	_, err = s.Sessions().GetSession(ctx, expired.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
	_, err = s.Sessions().GetSession(ctx, live.ID)
	require.NoError(t, err)

	require.ErrorIs(t, s.Sessions().RevokeSession(ctx, "nope"), store.ErrNotFound)
}

func TestWithTx(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newStore(t)

	boom := errors.New("boom")
	err := s.WithTx(ctx, func(tx store.Tx) error {
		seedUser(t, tx, "rolled@example.com")
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = s.Users().GetUserByEmail(ctx, "rolled@example.com")
	require.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, s.WithTx(ctx, func(tx store.Tx) error {
		seedUser(t, tx, "kept@example.com")
		return nil
	}))
	_, err = s.Users().GetUserByEmail(ctx, "kept@example.com")
	require.NoError(t, err)
}
