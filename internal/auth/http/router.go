package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/signin/internal/auth/otp"
	"github.com/aussiebroadwan/signin/internal/auth/service"
	"github.com/aussiebroadwan/signin/internal/auth/store"
	"github.com/aussiebroadwan/signin/pkg/httpx"
	"github.com/aussiebroadwan/signin/pkg/slogx"

	_ "github.com/aussiebroadwan/signin/api/auth" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store store.Store
	codes otp.CodeStore

	LoginService   *service.LoginService
	AccountService *service.AccountService
	SessionService *service.SessionService

	// Cookie configures the session cookie.
	Cookie httpx.CookieConfig
	// EnableSwagger mounts the Swagger UI under /swagger/.
	EnableSwagger bool
}

func NewRouter(buildVersion string, st store.Store, codes otp.CodeStore, logger *slog.Logger) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		codes:        codes,
		logger:       logger,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerSignIn()
	r.registerAccount()
	r.registerSystem()

	if r.EnableSwagger {
		r.Mux.Handle("/swagger/", httpSwagger.Handler())
	}
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title						Sign-in Service API
//	@version					0.1.0
//	@description				Password sign-in with an optional emailed one-time code as the second factor.
//	@description
//	@description				Sessions are carried in an HttpOnly cookie set by login or verify-email-2fa.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/signin
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	SessionCookie
//	@in							cookie
//	@name						signin_session
//	@description				Session cookie issued on sign-in.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerSignIn() {
	h := &SignInHandler{LoginService: r.LoginService, Cookie: r.Cookie}

	// Each endpoint keeps its own strict buckets, keyed by client IP and email.
	limited := func(fn http.HandlerFunc) http.Handler {
		return httpx.Chain(fn, httpx.RateLimitByIPAndJSONField(httpx.StrictLimit, "email"))
	}

	r.Mux.Handle("POST /api/auth/login", limited(h.HandleLogin))
	r.Mux.Handle("POST /api/auth/verify-email-2fa", limited(h.HandleVerify))
	r.Mux.Handle("POST /api/auth/resend-email-2fa", limited(h.HandleResend))
}

func (r *Router) registerAccount() {
	h := &AccountHandler{
		AccountService: r.AccountService,
		SessionService: r.SessionService,
		Cookie:         r.Cookie,
	}

	secured := func(fn http.HandlerFunc) http.Handler {
		return httpx.Chain(fn,
			httpx.RequireSession(r.SessionService, r.Cookie),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		)
	}

	r.Mux.Handle("GET /api/auth/userdata", secured(h.HandleUserData))
	r.Mux.Handle("POST /api/auth/toggle-2fa", secured(h.HandleToggleTwoFactor))
	r.Mux.Handle("POST /api/auth/toggle-email-2fa", secured(h.HandleToggleEmailTwoFactor))
	r.Mux.Handle("POST /api/auth/logout", secured(h.HandleLogout))
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.codes),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
