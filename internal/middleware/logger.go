package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/liqrisk/internal/logger"
	"github.com/guttosm/liqrisk/internal/observability"
)

// RequestLogger is a Gin middleware that logs method, path, status code,
// request latency, and request ID (if available), and counts the request
// in metrics under its route template.
//
// metrics may be nil.
//
// Usage:
//
//	router := gin.New()
//	router.Use(middleware.RequestID(), middleware.RequestLogger(m))
//
// Example log output:
//
//	request_id=123e4567-e89b-12d3-a456-426614174000 method=POST path=/api/v1/analysis status=200 latency_ms=15
func RequestLogger(metrics *observability.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		method := c.Request.Method
		path := c.Request.URL.Path

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()
		rid, _ := c.Get(RequestIDKey)

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.RecordHTTP(route, status)

		ev := logger.L().Info()
		if len(c.Errors) > 0 {
			ev = logger.L().Warn().Str("errors", c.Errors.String())
		}
		ev.Str("request_id", toString(rid)).
			Str("method", method).
			Str("path", path).
			Int("status", status).
			Int64("latency_ms", latency.Milliseconds()).
			Str("client_ip", c.ClientIP()).
			Msg("http_request")
	}
}

func toString(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}
