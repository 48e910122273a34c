package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"resume-diagnostics/internal/shared/telemetry"
)

// Context keys handlers set so the request log can carry analysis details.
const (
	ResumeIDKey = "resumeId"
	ATSScoreKey = "atsScore"
)

// Logging emits a structured log per request.
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.EqualFold(c.Request.Method, "OPTIONS") {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		latency := time.Since(start)

		resumeID, _ := c.Get(ResumeIDKey)
		atsScore, _ := c.Get(ATSScoreKey)

		telemetry.Info("request.complete", map[string]any{
			"request_id":  RequestIDFromContext(c),
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"route":       c.FullPath(),
			"status":      c.Writer.Status(),
			"duration_ms": float64(latency.Microseconds()) / 1000.0,
			"resume_id":   resumeID,
			"ats_score":   atsScore,
			"client_ip":   c.ClientIP(),
			"user_agent":  c.Request.UserAgent(),
		})
	}
}
