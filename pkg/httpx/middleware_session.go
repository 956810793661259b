package httpx

import (
	"context"
	"net/http"

	"github.com/aussiebroadwan/signin/pkg/slogx"
)

// Authenticator resolves a session token to the user and session it belongs to.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (userID, sessionID string, err error)
}

// RequireSession rejects requests without a valid session cookie with 401.
// On success the user and session ids are stored in the request context.
func RequireSession(auth Authenticator, cfg CookieConfig) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := SessionToken(r, cfg)
			if token == "" {
				WriteMessage(w, http.StatusUnauthorized, "Not signed in.")
				return
			}

			userID, sessionID, err := auth.Authenticate(r.Context(), token)
			if err != nil {
				slogx.FromContext(r.Context()).Debug("session rejected", "err", err)
				WriteMessage(w, http.StatusUnauthorized, "Not signed in.")
				return
			}

			ctx := contextWithSession(r.Context(), userID, sessionID)
			ctx = slogx.With(ctx, "user_id", userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
