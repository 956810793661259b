package service

import "errors"

// Errors returned to the HTTP layer. Collaborator faults are converted into
// one of these at the service boundary.
var (
	// ErrInvalidCredentials covers both an unknown email and a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrCodeDelivery means a code could not be issued or emailed. The
	// caller should retry; the credentials were fine.
	ErrCodeDelivery = errors.New("code delivery failed")

	// ErrInvalidCode covers wrong, expired, already used and unknown codes.
	ErrInvalidCode = errors.New("invalid or expired code")

	// ErrTwoFactorNotApplicable is returned by Resend when the account does
	// not exist or does not have email 2FA switched on.
	ErrTwoFactorNotApplicable = errors.New("email two-factor not applicable")

	// ErrUserNotFound means the session's user no longer exists.
	ErrUserNotFound = errors.New("user not found")

	// ErrSessionInvalid means a session token was rejected.
	ErrSessionInvalid = errors.New("session invalid")
)
