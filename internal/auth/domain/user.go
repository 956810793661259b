package domain

import (
	"strings"
	"time"
)

// User is an account as stored by the user store.
type User struct {
	ID             string
	UserName       string
	Email          string
	EmailConfirmed bool
	PhoneNumber    *string
	PasswordHash   string

	// TwoFactorEnabled is the master switch; EmailTwoFactorEnabled selects
	// the email method. A login is challenged only when both are set.
	TwoFactorEnabled              bool
	EmailTwoFactorEnabled         bool
	AuthenticatorTwoFactorEnabled bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// RequiresEmailChallenge reports whether a password login must be completed
// with an emailed code.
func (u *User) RequiresEmailChallenge() bool {
	return u.TwoFactorEnabled && u.EmailTwoFactorEnabled
}

// NormalizeEmail is the lookup key for an email address.
func NormalizeEmail(email string) string {
	return strings.ToUpper(strings.TrimSpace(email))
}
