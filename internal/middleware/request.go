package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
)

const (
	RequestIDHeader  = "X-Request-ID"
	ContextRequestID = "requestID"
	ContextLogger    = "logger"
)

// RequestID propagates the caller's X-Request-ID or assigns a new one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		c.Set(ContextRequestID, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// RequestLogger attaches a request-scoped logger to the context and logs
// one line per request.
func RequestLogger(logger hclog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		reqLogger := logger.With("request_id", c.GetString(ContextRequestID))
		c.Set(ContextLogger, reqLogger)

		c.Next()

		level := hclog.Info
		switch {
		case c.Writer.Status() >= 500:
			level = hclog.Error
		case c.Request.URL.Path == "/health" || c.Request.URL.Path == "/metrics":
			level = hclog.Debug
		}
		reqLogger.Log(level, "request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
			"errors", c.Errors.String())
	}
}

// Logger returns the request-scoped logger, or fallback when none is set.
func Logger(c *gin.Context, fallback hclog.Logger) hclog.Logger {
	if v, ok := c.Get(ContextLogger); ok {
		if l, ok := v.(hclog.Logger); ok {
			return l
		}
	}
	return fallback
}
