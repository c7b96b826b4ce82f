package middleware

import (
	"context"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/assessment-report-engine/internal/metrics"
)

// CorrelationIDKey is the gin context key holding the request's correlation ID
const CorrelationIDKey = "correlation_id"

// SecurityHeaders adds security headers to all responses
func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")

		if gin.Mode() == gin.ReleaseMode {
			c.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}

		// Reports may be served as HTML; nothing they contain should execute
		c.Header("Content-Security-Policy", "default-src 'none'; style-src 'unsafe-inline'")
		c.Header("Referrer-Policy", "no-referrer")

		// Assessment data must not be cached by intermediaries
		c.Header("Cache-Control", "no-store")

		c.Next()
	}
}

// CorrelationID adds a unique correlation ID to each request for audit trails
func CorrelationID() gin.HandlerFunc {
	return func(c *gin.Context) {
		correlationID := c.GetHeader("X-Correlation-ID")
		if correlationID == "" {
			correlationID = uuid.New().String()
		}

		c.Set(CorrelationIDKey, correlationID)
		c.Header("X-Correlation-ID", correlationID)

		c.Next()
	}
}

// RequestTimeout bounds the request context. Handlers observe the deadline through ctx.
func RequestTimeout(timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if timeout <= 0 {
			c.Next()
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// AuditLogger logs one structured entry per request
func AuditLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := logger.WithFields(logrus.Fields{
			"correlation_id": c.GetString(CorrelationIDKey),
			"method":         c.Request.Method,
			"path":           c.Request.URL.Path,
			"status":         c.Writer.Status(),
			"latency_ms":     time.Since(start).Milliseconds(),
			"client_ip":      c.ClientIP(),
			"response_size":  c.Writer.Size(),
		})
		if len(c.Errors) > 0 {
			entry.WithField("errors", c.Errors.String()).Warn("Request completed with errors")
			return
		}
		entry.Info("Request completed")
	}
}

// Metrics records request counts and latency per route
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		m.HTTPRequest(path, c.Request.Method, strconv.Itoa(c.Writer.Status()), time.Since(start))
	}
}
