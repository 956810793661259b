package service_test

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/signin/internal/auth/domain"
	"github.com/aussiebroadwan/signin/internal/auth/otp"
	"github.com/aussiebroadwan/signin/internal/auth/service"
	"github.com/aussiebroadwan/signin/internal/auth/store/drivers/sqlite"
	"github.com/aussiebroadwan/signin/pkg/cryptox"
	"github.com/aussiebroadwan/signin/pkg/idx"
	"github.com/aussiebroadwan/signin/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

const (
	testIssuer   = "signin-test"
	testPassword = "correct horse battery staple"
)

type sentCode struct {
	To   string
	Code string
}

// fakeMailer records every code it is asked to send.
type fakeMailer struct {
	mu   sync.Mutex
	sent []sentCode
	fail bool
}

func (m *fakeMailer) Send2FACode(_ context.Context, to, code string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return false
	}
	m.sent = append(m.sent, sentCode{To: to, Code: code})
	return true
}

func (m *fakeMailer) last(t *testing.T) sentCode {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	require.NotEmpty(t, m.sent)
	return m.sent[len(m.sent)-1]
}

func (m *fakeMailer) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

type fixture struct {
	store     *sqlite.Store
	codes     *otp.MemoryStore
	mailer    *fakeMailer
	passwords *cryptox.PasswordHasher
	sessions  *service.SessionService
	login     *service.LoginService
	account   *service.AccountService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })

	_, key, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	signer, err := jwtx.NewSigner(key)
	require.NoError(t, err)

	passwords := cryptox.NewPasswordHasher("pepper").WithParams(cryptox.Argon2Params{
		Memory: 64, Iterations: 1, Parallelism: 1, KeyLength: 32, SaltLength: 16,
	})
	codes := otp.NewMemoryStore(otp.DefaultTTL)
	mailer := &fakeMailer{}
	sessions := &service.SessionService{
		Store:    st,
		Signer:   signer,
		Verifier: jwtx.NewVerifier(jwtx.NewKeyRing(signer.PublicKey()), testIssuer),
		Issuer:   testIssuer,
		TTL:      time.Hour,
	}

	return &fixture{
		store:     st,
		codes:     codes,
		mailer:    mailer,
		passwords: passwords,
		sessions:  sessions,
		login: &service.LoginService{
			Store:     st,
			Passwords: passwords,
			Codes:     codes,
			Mailer:    mailer,
			Sessions:  sessions,
		},
		account: &service.AccountService{Store: st, Codes: codes},
	}
}

func (f *fixture) createUser(t *testing.T, email string, twoFactor, emailTwoFactor bool) domain.User {
	t.Helper()
	hash, err := f.passwords.Hash(testPassword)
	require.NoError(t, err)

	u := domain.User{
		ID:                    idx.New().String(),
		UserName:              "user",
		Email:                 email,
		EmailConfirmed:        true,
		PasswordHash:          hash,
		TwoFactorEnabled:      twoFactor,
		EmailTwoFactorEnabled: emailTwoFactor,
	}
	require.NoError(t, f.store.Users().CreateUser(context.Background(), u))
	return u
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
