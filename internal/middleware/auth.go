package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"meetme-api/internal/auth"
)

// UserIDKey is the gin context key holding the authenticated user's id.
const UserIDKey = "user_id"

// AccessTokenCookie carries the signed access token; it is issued http-only
// at login and cleared at logout.
const AccessTokenCookie = "access_token"

// Auth reads the credential from the access_token cookie, falling back to
// an Authorization: Bearer header, and stores the caller's user id in the
// request context. Missing or invalid credentials abort with 401.
func Auth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, _ := c.Cookie(AccessTokenCookie)
		if raw == "" {
			if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
				raw = strings.TrimPrefix(h, "Bearer ")
			}
		}
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "not authorized, no token"})
			return
		}

		claims, err := auth.ParseToken(raw, secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "not authorized, token failed"})
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Next()
	}
}

// UserID returns the authenticated user's id set by Auth.
func UserID(c *gin.Context) string {
	v, _ := c.Get(UserIDKey)
	s, _ := v.(string)
	return s
}
