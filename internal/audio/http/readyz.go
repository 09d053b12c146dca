package http

import (
	"net/http"
	"os"
	"time"

	"github.com/linguastream/linguastream/internal/audio/service"
	"github.com/linguastream/linguastream/internal/audio/store"
	"github.com/linguastream/linguastream/pkg/audiosdk"
	"github.com/linguastream/linguastream/pkg/httpx"
)

// ReadyzHandler godoc
//
//	@Summary		Readiness Check Endpoint
//	@Description	Readiness probe endpoint returning service health status and checks for critical dependencies
//	@Description	Includes uptime, version, and status of the database and media library
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	audiosdk.HealthResponse	"status, uptime, version, checks"
//	@Failure		503	{object}	audiosdk.HealthResponse	"status, uptime, version, checks - service not ready"
//	@Router			/readyz [get].
func ReadyzHandler(
	startTime time.Time,
	version string,
	st store.Store,
	resolver *service.MediaResolver,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := &audiosdk.HealthChecks{
			Database: "ok",
			Media:    "ok",
		}
		overallStatus := "ok"
		statusCode := http.StatusOK

		// Check database connectivity
		if err := st.Ping(r.Context()); err != nil {
			checks.Database = "error: " + err.Error()
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		// Check the system media library is mounted
		if fi, err := os.Stat(resolver.SystemDir); err != nil || !fi.IsDir() {
			checks.Media = "error: media library unavailable"
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		response := audiosdk.HealthResponse{
			Status:  overallStatus,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		}
		httpx.WriteJSON(w, statusCode, response)
	}
}
