package http

import (
	"net/http"
	"time"

	"github.com/smatehq/timeclock/internal/timeclock/store"
	"github.com/smatehq/timeclock/pkg/clocksdk"
	"github.com/smatehq/timeclock/pkg/httpx"
	"github.com/smatehq/timeclock/pkg/jwtx"
)

// ReadyzHandler godoc
//
//	@Summary		Readiness Check Endpoint
//	@Description	Readiness probe checking the database connection and the JWKS key material
//	@Description	Returns 503 with per-check detail while any dependency is degraded
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	clocksdk.HealthResponse	"status, uptime, version, checks"
//	@Failure		503	{object}	clocksdk.HealthResponse	"status, uptime, version, checks - service not ready"
//	@Router			/readyz [get].
func ReadyzHandler(
	startTime time.Time,
	version string,
	st store.Store,
	keys *jwtx.KeySet,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := &clocksdk.HealthChecks{
			Database: "ok",
			Verifier: "ok",
		}
		overallStatus := "ok"
		statusCode := http.StatusOK

		// Check database connectivity
		if err := st.Ping(r.Context()); err != nil {
			checks.Database = "error: " + err.Error()
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		// Token verification is dead in the water until the JWKS fetch
		// has landed at least once.
		if !keys.IsReady() {
			checks.Verifier = "error: no keys loaded"
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		response := clocksdk.HealthResponse{
			Status:  overallStatus,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		}
		httpx.WriteJSON(w, statusCode, response)
	}
}
