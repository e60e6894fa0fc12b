package endpoint

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/protokoll/observability"
)

// HealthChecker returns health results for registered components.
type HealthChecker func(ctx context.Context) []observability.Health

// Health returns a handler that reports service health including the status
// of each registered component (redis, yt-dlp, ffmpeg, diarization and
// transcription backends). The response is 503 when any component is down.
func Health(serviceName, version string, checker HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		sh := observability.NewServiceHealth(serviceName, version)
		if checker != nil {
			for _, ch := range checker(c.Request.Context()) {
				sh.AddComponent(ch)
			}
		}

		httpStatus := http.StatusOK
		if sh.Status == observability.HealthStatusDown {
			httpStatus = http.StatusServiceUnavailable
		}

		c.JSON(httpStatus, gin.H{
			"status":     sh.Status,
			"service":    sh.Service,
			"version":    sh.Version,
			"timestamp":  time.Now().UTC().Format(time.RFC3339),
			"components": sh.Components,
		})
	}
}
