package middleware

import (
	"time"

	"habit_tracker/internal/metrics"

	"github.com/gin-gonic/gin"
)

// MetricsMiddleware records the latency of every request under its route pattern
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metrics.RecordHTTPRequest(c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}
