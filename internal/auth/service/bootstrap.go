package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aussiebroadwan/signin/internal/auth/domain"
	"github.com/aussiebroadwan/signin/internal/auth/store"
	"github.com/aussiebroadwan/signin/pkg/cryptox"
	"github.com/aussiebroadwan/signin/pkg/idx"
)

var ErrBootstrapAlready = errors.New("users already exist")

// SeedAccount is the account created on first start.
type SeedAccount struct {
	Email    string
	Password string
	UserName string
}

// BootstrapService creates the first account of an empty database.
type BootstrapService struct {
	Store     store.Store
	Passwords *cryptox.PasswordHasher
	Logger    *slog.Logger
}

// IsBootstrapped reports whether any account exists.
func (s *BootstrapService) IsBootstrapped(ctx context.Context) (bool, error) {
	empty, err := s.Store.Users().IsEmpty(ctx)
	if err != nil {
		return false, err
	}
	return !empty, nil
}

// Seed creates acct when the users table is empty. The account starts with a
// confirmed email and both 2FA switches off. A missing password is generated
// and logged once.
func (s *BootstrapService) Seed(ctx context.Context, acct SeedAccount) (domain.User, error) {
	acct.Email = strings.TrimSpace(acct.Email)
	if acct.Email == "" {
		return domain.User{}, errors.New("seed account requires an email")
	}

	if acct.Password == "" {
		generated, err := cryptox.GeneratePassword()
		if err != nil {
			return domain.User{}, err
		}
		acct.Password = generated
		s.Logger.Warn("generated password for seed account", "email", acct.Email, "password", generated)
	}
	if acct.UserName == "" {
		acct.UserName, _, _ = strings.Cut(acct.Email, "@")
	}

	hash, err := s.Passwords.Hash(acct.Password)
	if err != nil {
		return domain.User{}, fmt.Errorf("failed to hash seed password: %w", err)
	}

	user := domain.User{
		ID:             idx.New().String(),
		UserName:       acct.UserName,
		Email:          acct.Email,
		EmailConfirmed: true,
		PasswordHash:   hash,
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		empty, err := tx.Users().IsEmpty(ctx)
		if err != nil {
			return err
		}
		if !empty {
			return ErrBootstrapAlready
		}
		return tx.Users().CreateUser(ctx, user)
	})
	if err != nil {
		return domain.User{}, err
	}

	s.Logger.Info("seed account created", "user_id", user.ID, "email", user.Email)
	return user, nil
}
