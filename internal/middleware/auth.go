package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/siteproof/api/internal/auth"
)

// Context keys set by the auth middleware.
const (
	ContextUserID         = "userID"
	ContextOrganizationID = "organizationID"
	ContextClaims         = "claims"
)

// AuthMiddleware requires a valid JWT token
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, msg := claimsFromHeader(c.GetHeader("Authorization"), jwtSecret)
		if claims == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
			return
		}

		setClaims(c, claims)
		c.Next()
	}
}

// AdminMiddleware requires a valid JWT token carrying the admin role
func AdminMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, msg := claimsFromHeader(c.GetHeader("Authorization"), jwtSecret)
		if claims == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
			return
		}
		if !claims.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			return
		}

		setClaims(c, claims)
		c.Next()
	}
}

func claimsFromHeader(authHeader, jwtSecret string) (*auth.Claims, string) {
	if authHeader == "" {
		return nil, "authorization header required"
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return nil, "invalid authorization header format"
	}

	claims, err := auth.ValidateAccessToken(parts[1], jwtSecret)
	if err != nil {
		return nil, "invalid or expired token"
	}
	return claims, ""
}

func setClaims(c *gin.Context, claims *auth.Claims) {
	c.Set(ContextUserID, claims.UserID)
	c.Set(ContextOrganizationID, claims.OrganizationID)
	c.Set(ContextClaims, claims)
}
