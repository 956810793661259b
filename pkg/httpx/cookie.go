package httpx

import (
	"net/http"
	"time"
)

// DefaultSessionCookie is the cookie name used when none is configured.
const DefaultSessionCookie = "signin_session"

// CookieConfig controls how the session cookie is written.
type CookieConfig struct {
	Name   string
	Secure bool
}

func (c CookieConfig) name() string {
	if c.Name == "" {
		return DefaultSessionCookie
	}
	return c.Name
}

// SetSessionCookie writes the session token. A persistent cookie carries an
// expiry; otherwise it lives until the browser session ends.
func SetSessionCookie(w http.ResponseWriter, cfg CookieConfig, token string, expiresAt time.Time, persistent bool) {
	cookie := &http.Cookie{
		Name:     cfg.name(),
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	}
	if persistent {
		cookie.Expires = expiresAt.UTC()
		cookie.MaxAge = max(int(time.Until(expiresAt).Seconds()), 1)
	}
	http.SetCookie(w, cookie)
}

// ClearSessionCookie expires the session cookie.
func ClearSessionCookie(w http.ResponseWriter, cfg CookieConfig) {
	http.SetCookie(w, &http.Cookie{
		Name:     cfg.name(),
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
	})
}

// SessionToken returns the session cookie value, or "" when absent.
func SessionToken(r *http.Request, cfg CookieConfig) string {
	c, err := r.Cookie(cfg.name())
	if err != nil {
		return ""
	}
	return c.Value
}
