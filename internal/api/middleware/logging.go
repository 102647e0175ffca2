// Package middleware provides HTTP middleware for the API server.
package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
)

// RequestLogger returns middleware that logs each request with method, path,
// status, and duration.
func RequestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		attrs := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start).Round(time.Microsecond),
		}
		if c.Writer.Status() >= 500 {
			logger.Error("request failed", attrs...)
			return
		}
		logger.Info("request", attrs...)
	}
}
