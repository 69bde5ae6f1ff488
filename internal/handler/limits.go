package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/siteproof/api/internal/limiter"
)

type LimitsHandler struct {
	limiter *limiter.Limiter
}

func NewLimitsHandler(l *limiter.Limiter) *LimitsHandler {
	return &LimitsHandler{limiter: l}
}

// GetLimits lists the configured rate limits
func (h *LimitsHandler) GetLimits(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"limits": h.limiter.Limits()})
}
