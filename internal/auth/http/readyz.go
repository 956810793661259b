package http

import (
	"context"
	"net/http"
	"time"

	"github.com/aussiebroadwan/signin/pkg/authsdk"
	"github.com/aussiebroadwan/signin/pkg/httpx"
	"github.com/aussiebroadwan/signin/pkg/slogx"
)

// Pinger is anything readiness can probe.
type Pinger interface {
	Ping(ctx context.Context) error
}

const readyTimeout = 2 * time.Second

// ReadyzHandler godoc
//
//	@Summary		Readiness probe
//	@Description	Pings the user database and the code store. Returns 503 when either is unreachable.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	authsdk.HealthResponse	"status, uptime, version, checks"
//	@Failure		503	{object}	authsdk.HealthResponse	"status, uptime, version, checks - service not ready"
//	@Router			/readyz [get].
func ReadyzHandler(startTime time.Time, version string, db, codes Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
		defer cancel()

		checks := &authsdk.HealthChecks{Database: "ok", CodeStore: "ok"}
		status, code := "ok", http.StatusOK

		if err := db.Ping(ctx); err != nil {
			slogx.FromContext(ctx).Warn("database not ready", "err", err)
			checks.Database = "error: " + err.Error()
			status, code = "degraded", http.StatusServiceUnavailable
		}
		if err := codes.Ping(ctx); err != nil {
			slogx.FromContext(ctx).Warn("code store not ready", "err", err)
			checks.CodeStore = "error: " + err.Error()
			status, code = "degraded", http.StatusServiceUnavailable
		}

		httpx.WriteJSON(w, code, authsdk.HealthResponse{
			Status:  status,
			Uptime:  time.Since(startTime).Round(time.Second).String(),
			Version: version,
			Checks:  checks,
		})
	}
}
