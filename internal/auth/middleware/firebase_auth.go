package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/coffeecraft/coffeecraft-backend/internal/auth"
)

// RequireSession validates the bearer token and rejects the request when it
// is missing or invalid.
func RequireSession(v auth.TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "missing authorization token"})
			return
		}

		s, err := v.Verify(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "invalid token"})
			return
		}

		attach(c, s)
		c.Next()
	}
}

// OptionalSession attaches a session when a valid bearer token is present.
// Anonymous and unverifiable callers pass through without one.
func OptionalSession(v auth.TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := extractToken(c); token != "" {
			if s, err := v.Verify(c.Request.Context(), token); err == nil {
				attach(c, s)
			}
		}
		c.Next()
	}
}

func attach(c *gin.Context, s *auth.Session) {
	c.Set(auth.CtxFirebaseUID, s.UID)
	if s.Email != "" {
		c.Set(auth.CtxEmail, s.Email)
	}
	c.Request = c.Request.WithContext(auth.WithSession(c.Request.Context(), s))
}

// extractToken extracts the Bearer token from the Authorization header
func extractToken(c *gin.Context) string {
	bearerToken := c.GetHeader("Authorization")
	if len(bearerToken) > 7 && strings.HasPrefix(bearerToken, "Bearer ") {
		return strings.TrimSpace(bearerToken[7:])
	}
	return ""
}
