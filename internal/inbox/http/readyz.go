package http

import (
	"net/http"
	"time"

	"github.com/aussiebroadwan/whisper/internal/inbox/store"
	"github.com/aussiebroadwan/whisper/pkg/httpx"
	"github.com/aussiebroadwan/whisper/pkg/inboxsdk"
	"github.com/aussiebroadwan/whisper/pkg/jwtx"
)

// ReadyzHandler godoc
//
//	@Summary		Readiness Check Endpoint
//	@Description	Readiness probe checking the database, the signing keys and, when configured, the suggestion cache
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	inboxsdk.HealthResponse	"status, uptime, version, checks"
//	@Failure		503	{object}	inboxsdk.HealthResponse	"status, uptime, version, checks - service not ready"
//	@Router			/readyz [get].
func ReadyzHandler(
	startTime time.Time,
	version string,
	st store.Store,
	keys *jwtx.KeySet,
	cachePing func(*http.Request) error,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := &inboxsdk.HealthChecks{
			Database: "ok",
			Signer:   "ok",
		}
		overallStatus := "ok"
		statusCode := http.StatusOK

		if err := st.Ping(r.Context()); err != nil {
			checks.Database = "error: " + err.Error()
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		if !keys.IsReady() {
			checks.Signer = "error: no keys loaded"
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		// The cache is optional: a failure is reported but does not fail readiness.
		if cachePing != nil {
			checks.Cache = "ok"
			if err := cachePing(r); err != nil {
				checks.Cache = "error: " + err.Error()
			}
		}

		httpx.WriteJSON(w, statusCode, inboxsdk.HealthResponse{
			Status:  overallStatus,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		})
	}
}
