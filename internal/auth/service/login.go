package service

import (
	"context"
	"errors"
	"sync"

	"github.com/aussiebroadwan/signin/internal/auth/domain"
	"github.com/aussiebroadwan/signin/internal/auth/otp"
	"github.com/aussiebroadwan/signin/internal/auth/store"
	"github.com/aussiebroadwan/signin/pkg/cryptox"
	"github.com/aussiebroadwan/signin/pkg/slogx"
)

// CodeSender delivers a sign-in code and reports whether it was sent.
type CodeSender interface {
	Send2FACode(ctx context.Context, to, code string) bool
}

// LoginService runs password sign-in and the email code challenge that may
// follow it. It applies no attempt limiting of its own.
type LoginService struct {
	Store     store.Store
	Passwords *cryptox.PasswordHasher
	Codes     otp.CodeStore
	Mailer    CodeSender
	Sessions  *SessionService

	// NewCode generates codes. Defaults to otp.GenerateCode.
	NewCode func() string

	dummyOnce sync.Once
	dummyHash string
}

func (s *LoginService) newCode() string {
	if s.NewCode != nil {
		return s.NewCode()
	}
	return otp.GenerateCode()
}

// Login checks the password for email. Accounts with both 2FA switches on get
// a challenge and a freshly emailed code; all others are signed in directly.
func (s *LoginService) Login(ctx context.Context, email, password string, rememberMe bool) (domain.LoginResult, error) {
	log := slogx.FromContext(ctx)

	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			log.Error("failed to look up user", "err", err)
			return domain.LoginResult{}, err
		}
		s.burnPasswordCheck(ctx, password)
		return domain.LoginResult{}, ErrInvalidCredentials
	}

	if err := s.Passwords.Verify(password, user.PasswordHash); err != nil {
		if !errors.Is(err, cryptox.ErrPasswordMismatch) {
			log.Error("stored password hash unusable", "user_id", user.ID, "err", err)
		}
		return domain.LoginResult{}, ErrInvalidCredentials
	}

	if !user.RequiresEmailChallenge() {
		issued, err := s.Sessions.SignIn(ctx, user, rememberMe, AMRPasswordOnly)
		if err != nil {
			return domain.LoginResult{}, err
		}
		return domain.LoginResult{User: &user, Session: issued}, nil
	}

	if err := s.issueCode(ctx, user); err != nil {
		return domain.LoginResult{}, err
	}
	log.Info("email code challenge issued", "user_id", user.ID)
	return domain.LoginResult{Challenge: &domain.Challenge{Email: user.Email}}, nil
}

// Verify completes a challenge with code and signs the user in.
func (s *LoginService) Verify(ctx context.Context, email, code string, rememberMe bool) (domain.SignedIn, error) {
	log := slogx.FromContext(ctx)

	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.SignedIn{}, ErrInvalidCode
		}
		log.Error("failed to look up user", "err", err)
		return domain.SignedIn{}, err
	}

	if !otp.IsWellFormed(code) {
		return domain.SignedIn{}, ErrInvalidCode
	}

	ok, err := s.Codes.Validate(ctx, user.ID, code)
	if err != nil {
		log.Error("failed to validate code", "user_id", user.ID, "err", err)
		return domain.SignedIn{}, err
	}
	if !ok {
		log.Info("email code rejected", "user_id", user.ID)
		return domain.SignedIn{}, ErrInvalidCode
	}

	issued, err := s.Sessions.SignIn(ctx, user, rememberMe, AMREmailCode)
	if err != nil {
		return domain.SignedIn{}, err
	}
	return domain.SignedIn{User: &user, Session: issued}, nil
}

// Resend replaces the outstanding code for email with a new one and emails it.
func (s *LoginService) Resend(ctx context.Context, email string) error {
	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrTwoFactorNotApplicable
		}
		slogx.FromContext(ctx).Error("failed to look up user", "err", err)
		return err
	}
	if !user.RequiresEmailChallenge() {
		return ErrTwoFactorNotApplicable
	}
	return s.issueCode(ctx, user)
}

// issueCode stores a new code for user and emails it. When delivery fails the
// code is withdrawn unless a concurrent issue has already replaced it.
func (s *LoginService) issueCode(ctx context.Context, user domain.User) error {
	log := slogx.FromContext(ctx).With("user_id", user.ID)

	code := s.newCode()
	if err := s.Codes.Store(ctx, user.ID, code); err != nil {
		log.Error("failed to store code", "err", err)
		return ErrCodeDelivery
	}

	if s.Mailer.Send2FACode(ctx, user.Email, code) {
		return nil
	}

	// The request may have been cancelled; the withdrawal must still happen.
	if err := s.Codes.Withdraw(context.WithoutCancel(ctx), user.ID, code); err != nil {
		log.Error("failed to withdraw undelivered code", "err", err)
	}
	return ErrCodeDelivery
}

// burnPasswordCheck verifies against a throwaway hash so an unknown email
// costs the same as a wrong password.
func (s *LoginService) burnPasswordCheck(ctx context.Context, password string) {
	s.dummyOnce.Do(func() {
		hash, err := s.Passwords.Hash("not-a-real-password")
		if err != nil {
			slogx.FromContext(ctx).Error("failed to prepare dummy password hash; unknown emails will answer faster", "err", err)
			return
		}
		s.dummyHash = hash
	})
	_ = s.Passwords.Verify(password, s.dummyHash)
}
