package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/anviet/tuition-api/internal/presentation/http/dto/response"
	"github.com/anviet/tuition-api/pkg/utils"
)

// SessionIDKey is the gin context key holding the authenticated session id
const SessionIDKey = "session_id"

// AuthMiddleware creates a JWT authentication middleware. The token is read
// from the Authorization header, or from the access_token query parameter for
// pages opened directly in a print window.
func AuthMiddleware(jwtManager *utils.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			response.Unauthorized(c, "Authorization header is required")
			c.Abort()
			return
		}

		claims, err := jwtManager.ValidateSessionToken(tokenString)
		if err != nil {
			response.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(SessionIDKey, claims.SessionID)

		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		token := c.Query("access_token")
		return token, token != ""
	}

	// Extract token from "Bearer <token>"
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
