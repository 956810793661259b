package http

import (
	"net/http"

	"github.com/aussiebroadwan/signin/internal/auth/domain"
	"github.com/aussiebroadwan/signin/pkg/authsdk"
	"github.com/aussiebroadwan/signin/pkg/httpx"
)

// User-facing messages. Raw errors are only ever logged.
const (
	msgInvalidBody        = "Invalid request body."
	msgInvalidCredentials = "Invalid email or password."
	msgCodeDelivery       = "We could not send your verification code. Please try again."
	msgInvalidCode        = "Invalid or expired verification code."
	msgNotApplicable      = "Email two-factor authentication is not enabled for this account."
	msgCodeResent         = "A new verification code has been sent to your email."
	msgUserNotFound       = "User not found."
	msgUpdateFailed       = "Failed to update two-factor settings."
	msgLoggedOut          = "Logged out successfully"
	msgUnexpected         = "An unexpected error occurred."
)

func writeUnexpected(w http.ResponseWriter) {
	httpx.WriteMessage(w, http.StatusInternalServerError, msgUnexpected)
}

func userPayload(u *domain.User) *authsdk.UserPayload {
	return &authsdk.UserPayload{
		UserID:                        u.ID,
		UserName:                      u.UserName,
		Email:                         u.Email,
		EmailConfirmed:                u.EmailConfirmed,
		PhoneNumber:                   u.PhoneNumber,
		TwoFactorEnabled:              u.TwoFactorEnabled,
		EmailTwoFactorEnabled:         u.EmailTwoFactorEnabled,
		AuthenticatorTwoFactorEnabled: u.AuthenticatorTwoFactorEnabled,
	}
}

func enabledWord(enabled bool) string {
	if enabled {
		return "enabled"
	}
	return "disabled"
}
