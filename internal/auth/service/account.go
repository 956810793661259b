package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/aussiebroadwan/signin/internal/auth/domain"
	"github.com/aussiebroadwan/signin/internal/auth/otp"
	"github.com/aussiebroadwan/signin/internal/auth/store"
	"github.com/aussiebroadwan/signin/pkg/slogx"
)

// AccountService reads and updates the signed-in user's security settings.
type AccountService struct {
	Store store.Store
	Codes otp.CodeStore
}

func (s *AccountService) GetUserData(ctx context.Context, userID string) (domain.User, error) {
	u, err := s.Store.Users().GetUserByID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.User{}, ErrUserNotFound
	}
	return u, err
}

// SetTwoFactorEnabled flips the master 2FA switch and returns the new value.
func (s *AccountService) SetTwoFactorEnabled(ctx context.Context, userID string, enable bool) (bool, error) {
	if err := s.Store.Users().SetTwoFactorEnabled(ctx, userID, enable); err != nil {
		return false, s.updateErr(err)
	}
	s.afterToggle(ctx, userID, "two_factor_enabled", enable)
	return enable, nil
}

// SetEmailTwoFactorEnabled flips the email method switch and returns the new value.
func (s *AccountService) SetEmailTwoFactorEnabled(ctx context.Context, userID string, enable bool) (bool, error) {
	if err := s.Store.Users().SetEmailTwoFactorEnabled(ctx, userID, enable); err != nil {
		return false, s.updateErr(err)
	}
	s.afterToggle(ctx, userID, "email_two_factor_enabled", enable)
	return enable, nil
}

func (s *AccountService) updateErr(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return ErrUserNotFound
	}
	return fmt.Errorf("failed to update user: %w", err)
}

// afterToggle withdraws any outstanding code once 2FA is switched off.
func (s *AccountService) afterToggle(ctx context.Context, userID, setting string, enabled bool) {
	log := slogx.FromContext(ctx)
	log.Info("security setting changed", "setting", setting, "enabled", enabled)
	if enabled {
		return
	}
	if err := s.Codes.Remove(ctx, userID); err != nil {
		log.Warn("failed to withdraw outstanding code", "err", err)
	}
}
