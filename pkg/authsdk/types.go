package authsdk

// ============================================================================
// Sign-in Types
// ============================================================================

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	RememberMe bool   `json:"rememberMe"`
}

// LoginResponse is returned by a successful password check. Either
// RequiresEmailTwoFactor is true and Email names the challenged account, or
// Success is true and User is set.
type LoginResponse struct {
	// RequiresEmailTwoFactor means a code was emailed and must be verified
	// before a session is issued.
	RequiresEmailTwoFactor bool   `json:"requiresEmailTwoFactor,omitempty"`
	Email                  string `json:"email,omitempty"`

	Success bool         `json:"success,omitempty"`
	User    *UserPayload `json:"user,omitempty"`
}

// VerifyEmail2FARequest is the body of POST /api/auth/verify-email-2fa.
type VerifyEmail2FARequest struct {
	Email      string `json:"email"`
	Code       string `json:"code"`
	RememberMe bool   `json:"rememberMe"`
}

// ResendEmail2FARequest is the body of POST /api/auth/resend-email-2fa.
type ResendEmail2FARequest struct {
	Email string `json:"email"`
}

// SignInResponse is returned when a session has been issued.
type SignInResponse struct {
	Success bool         `json:"success"`
	User    *UserPayload `json:"user"`
}

// ============================================================================
// Account Types
// ============================================================================

// UserPayload describes the signed-in account.
type UserPayload struct {
	UserID                        string  `json:"userId"`
	UserName                      string  `json:"userName"`
	Email                         string  `json:"email"`
	EmailConfirmed                bool    `json:"emailConfirmed"`
	PhoneNumber                   *string `json:"phoneNumber"`
	TwoFactorEnabled              bool    `json:"twoFactorEnabled"`
	EmailTwoFactorEnabled         bool    `json:"emailTwoFactorEnabled"`
	AuthenticatorTwoFactorEnabled bool    `json:"authenticatorTwoFactorEnabled"`
}

// ToggleRequest is the body of both 2FA toggle endpoints.
type ToggleRequest struct {
	Enable bool `json:"enable"`
}

// ToggleTwoFactorResponse reports the new master 2FA switch value.
type ToggleTwoFactorResponse struct {
	Message          string `json:"message"`
	TwoFactorEnabled bool   `json:"twoFactorEnabled"`
}

// ToggleEmailTwoFactorResponse reports the new email 2FA switch value.
type ToggleEmailTwoFactorResponse struct {
	Message               string `json:"message"`
	EmailTwoFactorEnabled bool   `json:"emailTwoFactorEnabled"`
}

// MessageResponse carries a human-readable message. Every error response
// has this shape.
type MessageResponse struct {
	Message string `json:"message"`
}

// ============================================================================
// Health Types
// ============================================================================

// HealthResponse is returned by /livez and /readyz.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks holds per-dependency readiness results.
type HealthChecks struct {
	Database  string `json:"database"`
	CodeStore string `json:"code_store"`
}
