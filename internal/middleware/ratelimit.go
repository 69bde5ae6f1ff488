package middleware

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/go-hclog"
	"github.com/siteproof/api/internal/limiter"
)

// CheckRateLimit counts one use of action for the caller's organization and
// writes a 429 when the limit is exceeded. It reports whether the request
// may proceed. Limiter failures let the request through.
func CheckRateLimit(c *gin.Context, l *limiter.Limiter, action string, logger hclog.Logger) bool {
	if l == nil {
		return true
	}

	clientID := fmt.Sprintf("org:%d", c.GetInt64(ContextOrganizationID))
	result, err := l.Check(c.Request.Context(), clientID, action)
	if err != nil {
		Logger(c, logger).Warn("rate limiter unavailable", "action", action, "error", err)
		return true
	}

	c.Header("X-RateLimit-Limit", strconv.FormatInt(result.Limit, 10))
	c.Header("X-RateLimit-Remaining", strconv.FormatInt(result.Remaining, 10))
	c.Header("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt, 10))

	if !result.Allowed {
		RecordRateLimited(action)
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
			"error":    "rate limit exceeded",
			"action":   action,
			"reset_at": result.ResetAt,
		})
		return false
	}
	return true
}

// RateLimit is the middleware form of CheckRateLimit.
func RateLimit(l *limiter.Limiter, action string, logger hclog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !CheckRateLimit(c, l, action, logger) {
			return
		}
		c.Next()
	}
}
