package middleware

import (
	"context"                       // Context for repository calls
	"habit_tracker/internal/domain" // Importing domain models
	"net/http"                      // HTTP status codes

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// UserFinder looks users up by id, nil when absent
type UserFinder interface {
	FindByID(ctx context.Context, id uint) (*domain.User, error)
}

// ActiveUserMiddleware rejects tokens whose user no longer exists
func ActiveUserMiddleware(users UserFinder) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := CallerID(c) // Get userID from context
		// Check if userID exists in context
		if userID == 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated.", "code": "Unauthenticated"})
			return
		}
		user, err := users.FindByID(c.Request.Context(), userID)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"user_id":    userID,
				"request_id": c.GetString(ContextRequestID),
				"error":      err.Error(),
			}).Error("Failed to load caller")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error", "code": "StorageFailure"})
			return
		}
		// Deleted users keep valid tokens until expiry
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated.", "code": "Unauthenticated"})
			return
		}
		c.Next()
	}
}
