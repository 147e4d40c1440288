package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	logger "github.com/vre-platform/portal-bff/logging"
	"github.com/vre-platform/portal-bff/model"
)

// Logger is a middleware that logs incoming HTTP requests and assigns
// each a correlation id propagated to downstream calls.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		correlationID := c.GetHeader("X-Request-Id")
		if correlationID == "" {
			correlationID = uuid.NewString()
		}
		c.Set("correlationID", correlationID)
		c.Header("X-Request-Id", correlationID)

		// Process request
		c.Next()

		// Log request details
		end := time.Now()
		latency := end.Sub(start)

		username := ""
		if v, exists := c.Get("identity"); exists {
			if identity, ok := v.(model.Identity); ok {
				username = identity.Username
			}
		}

		if len(c.Errors) > 0 {
			for _, e := range c.Errors.Errors() {
				logger.Error("Request error",
					zap.String("path", path),
					zap.String("query", query),
					zap.String("ip", c.ClientIP()),
					zap.String("correlation_id", correlationID),
					zap.String("error", e),
				)
			}
		} else {
			logger.Info("Request processed",
				zap.String("method", c.Request.Method),
				zap.String("path", path),
				zap.String("query", query),
				zap.Int("status", c.Writer.Status()),
				zap.Duration("latency", latency),
				zap.String("ip", c.ClientIP()),
				zap.String("username", username),
				zap.String("correlation_id", correlationID),
			)
		}
	}
}
