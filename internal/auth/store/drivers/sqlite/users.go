package sqlite

import (
	"context"

	"github.com/aussiebroadwan/signin/internal/auth/domain"
	"github.com/aussiebroadwan/signin/internal/auth/store/drivers/sqlite/gen"
)

type usersRepo struct {
	q *gen.Queries
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	row, err := r.q.GetUserByID(ctx, id)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return mapUser(row), nil
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	row, err := r.q.GetUserByNormalizedEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return mapUser(row), nil
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	err := r.q.CreateUser(ctx, gen.CreateUserParams{
		ID:                            u.ID,
		UserName:                      u.UserName,
		Email:                         u.Email,
		NormalizedEmail:               domain.NormalizeEmail(u.Email),
		EmailConfirmed:                u.EmailConfirmed,
		PhoneNumber:                   mapOptionalString(u.PhoneNumber),
		PasswordHash:                  u.PasswordHash,
		TwoFactorEnabled:              u.TwoFactorEnabled,
		EmailTwoFactorEnabled:         u.EmailTwoFactorEnabled,
		AuthenticatorTwoFactorEnabled: u.AuthenticatorTwoFactorEnabled,
	})
	return mapConstraint(err)
}

func (r *usersRepo) SetTwoFactorEnabled(ctx context.Context, userID string, enabled bool) error {
	return affectedOne(r.q.SetUserTwoFactorEnabled(ctx, gen.SetUserTwoFactorEnabledParams{
		TwoFactorEnabled: enabled,
		ID:               userID,
	}))
}

func (r *usersRepo) SetEmailTwoFactorEnabled(ctx context.Context, userID string, enabled bool) error {
	return affectedOne(r.q.SetUserEmailTwoFactorEnabled(ctx, gen.SetUserEmailTwoFactorEnabledParams{
		EmailTwoFactorEnabled: enabled,
		ID:                    userID,
	}))
}

func (r *usersRepo) IsEmpty(ctx context.Context) (bool, error) {
	count, err := r.q.CountUsers(ctx)
	if err != nil {
		return false, err
	}
	return count == 0, nil
}
