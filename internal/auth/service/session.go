package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aussiebroadwan/signin/internal/auth/domain"
	"github.com/aussiebroadwan/signin/internal/auth/store"
	"github.com/aussiebroadwan/signin/pkg/idx"
	"github.com/aussiebroadwan/signin/pkg/jwtx"
	"github.com/aussiebroadwan/signin/pkg/slogx"
)

// DefaultSessionTTL is used when SessionService.TTL is zero.
const DefaultSessionTTL = 14 * 24 * time.Hour

// Authentication method sets recorded on sessions.
var (
	AMRPasswordOnly = []string{jwtx.AMRPassword}
	AMREmailCode    = []string{jwtx.AMRPassword, jwtx.AMROTP, jwtx.AMRMFA}
)

// SessionService issues and checks signed session tokens backed by a
// revocable sessions row.
type SessionService struct {
	Store    store.Store
	Signer   *jwtx.Signer
	Verifier *jwtx.Verifier
	Issuer   string
	TTL      time.Duration
	Now      func() time.Time
}

func (s *SessionService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *SessionService) ttl() time.Duration {
	if s.TTL > 0 {
		return s.TTL
	}
	return DefaultSessionTTL
}

// SignIn establishes a session for user. rememberMe makes the cookie outlive
// the browser session.
func (s *SessionService) SignIn(ctx context.Context, user domain.User, rememberMe bool, amr []string) (*domain.IssuedSession, error) {
	now := s.now()
	sess := domain.Session{
		ID:         idx.NewAt(now).String(),
		UserID:     user.ID,
		Persistent: rememberMe,
		AMR:        amr,
		ExpiresAt:  now.Add(s.ttl()),
	}

	if err := s.Store.Sessions().CreateSession(ctx, sess); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	claims := jwtx.NewSessionClaims(s.Issuer, user.ID, sess.ID, user.Email, amr, rememberMe, now, sess.ExpiresAt)
	token, err := s.Signer.Sign(claims)
	if err != nil {
		return nil, fmt.Errorf("failed to sign session: %w", err)
	}

	slogx.FromContext(ctx).Info("session established",
		"user_id", user.ID, "session_id", sess.ID, "amr", amr, "persistent", rememberMe)

	return &domain.IssuedSession{
		Token:      token,
		SessionID:  sess.ID,
		ExpiresAt:  sess.ExpiresAt,
		Persistent: rememberMe,
	}, nil
}

// Authenticate resolves a session token. The token must verify and its
// session row must exist, belong to the token's subject, and be active.
func (s *SessionService) Authenticate(ctx context.Context, token string) (string, string, error) {
	claims, err := s.Verifier.Verify(token)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrSessionInvalid, err)
	}

	sess, err := s.Store.Sessions().GetSession(ctx, claims.SID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", "", fmt.Errorf("%w: unknown session", ErrSessionInvalid)
		}
		return "", "", fmt.Errorf("failed to load session: %w", err)
	}
	if sess.UserID != claims.Subject || !sess.Active(s.now()) {
		return "", "", fmt.Errorf("%w: session revoked or expired", ErrSessionInvalid)
	}
	return sess.UserID, sess.ID, nil
}

// SignOut revokes the session. Unknown sessions are ignored.
func (s *SessionService) SignOut(ctx context.Context, sessionID string) error {
	err := s.Store.Sessions().RevokeSession(ctx, sessionID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	slogx.FromContext(ctx).Info("session revoked", "session_id", sessionID)
	return nil
}
