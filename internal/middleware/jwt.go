package middleware

import (
	"habit_tracker/internal/utils" // JWT utility functions
	"net/http"                     // HTTP status codes
	"strings"                      // String manipulation

	"github.com/gin-gonic/gin" // Gin web framework
)

// Context keys set by the middlewares in this package
const (
	ContextUserID    = "userID"
	ContextUsername  = "username"
	ContextRequestID = "requestID"
)

// TokenCookie is the cookie carrying the JWT for browser clients
const TokenCookie = "token"

// JWTAuthMiddleware validates JWT tokens and extracts user information.
// A missing token is 401, an invalid or expired one is 403.
func JWTAuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := bearerToken(c) // Header first, then cookie
		if tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication token was not provided", "code": "Unauthenticated"})
			return
		}
		claims, err := utils.ParseJWT(tokenStr, secret) // Parse the JWT token
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Invalid authentication token", "code": "InvalidToken"})
			return
		}
		c.Set(ContextUserID, claims.ID)         // Store userID in context
		c.Set(ContextUsername, claims.Username) // Store username in context
		c.Next()                                // Proceed to the next handler
	}
}

func bearerToken(c *gin.Context) string {
	if authHeader := c.GetHeader("Authorization"); strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	}
	if cookie, err := c.Cookie(TokenCookie); err == nil {
		return cookie
	}
	return ""
}

// CallerID returns the authenticated user id, or 0 when the request is anonymous
func CallerID(c *gin.Context) uint {
	if v, ok := c.Get(ContextUserID); ok {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}
