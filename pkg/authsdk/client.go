package authsdk

import (
	"context"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"
)

// Client talks to the sign-in service. It keeps the session cookie in a
// cookie jar, so a successful Login or VerifyEmail2FA authenticates every
// later call made through the same Client.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a client with its own cookie jar.
func NewClient(baseURL string) *Client {
	jar, _ := cookiejar.New(nil) // never fails without options
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 15 * time.Second,
			Jar:     jar,
		},
	}
}

// Login submits credentials. A challenged login returns a response with
// RequiresEmailTwoFactor set and no session.
func (c *Client) Login(ctx context.Context, email, password string, rememberMe bool) (*LoginResponse, error) {
	var out LoginResponse
	req := LoginRequest{Email: email, Password: password, RememberMe: rememberMe}
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/login", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// VerifyEmail2FA completes an email challenge.
func (c *Client) VerifyEmail2FA(ctx context.Context, email, code string, rememberMe bool) (*SignInResponse, error) {
	var out SignInResponse
	req := VerifyEmail2FARequest{Email: email, Code: code, RememberMe: rememberMe}
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/verify-email-2fa", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ResendEmail2FA asks for a fresh code, which replaces the previous one.
func (c *Client) ResendEmail2FA(ctx context.Context, email string) (*MessageResponse, error) {
	var out MessageResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/resend-email-2fa", ResendEmail2FARequest{Email: email}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UserData returns the signed-in account.
func (c *Client) UserData(ctx context.Context) (*UserPayload, error) {
	var out UserPayload
	if err := c.doJSON(ctx, http.MethodGet, "/api/auth/userdata", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ToggleTwoFactor sets the master 2FA switch.
func (c *Client) ToggleTwoFactor(ctx context.Context, enable bool) (*ToggleTwoFactorResponse, error) {
	var out ToggleTwoFactorResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/toggle-2fa", ToggleRequest{Enable: enable}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ToggleEmailTwoFactor sets the email 2FA switch.
func (c *Client) ToggleEmailTwoFactor(ctx context.Context, enable bool) (*ToggleEmailTwoFactorResponse, error) {
	var out ToggleEmailTwoFactorResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/toggle-email-2fa", ToggleRequest{Enable: enable}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Logout ends the session and drops the cookie.
func (c *Client) Logout(ctx context.Context) (*MessageResponse, error) {
	var out MessageResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/logout", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetLiveness calls /livez.
func (c *Client) GetLiveness(ctx context.Context) (*HealthResponse, error) {
	var out HealthResponse
	if err := c.doJSON(ctx, http.MethodGet, "/livez", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetReadiness calls /readyz. A 503 is returned as an *APIError.
func (c *Client) GetReadiness(ctx context.Context) (*HealthResponse, error) {
	var out HealthResponse
	if err := c.doJSON(ctx, http.MethodGet, "/readyz", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
