package api

import (
	"context"                           // Context for repository calls
	"errors"                            // Error inspection
	"habit_tracker/internal/apperr"     // Error kinds
	"habit_tracker/internal/domain"     // Importing domain models
	"habit_tracker/internal/middleware" // Cookie name
	"habit_tracker/internal/utils"      // Utility functions
	"net/http"                          // HTTP status codes
	"strings"                           // String manipulation
	"time"                              // Token lifetime
	"unicode/utf8"                      // Username length

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"golang.org/x/crypto/bcrypt" // Password hashing
)

// UserRepository is the user storage used by the auth handlers.
// Lookups return nil, nil when the user does not exist.
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	FindByID(ctx context.Context, id uint) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
}

// Request struct for registration
type RegisterRequest struct {
	Username string `json:"username" binding:"required"` // Username must be provided
	Password string `json:"password" binding:"required"` // Password must be provided
}

// Request struct for login
type LoginRequest struct {
	Username string `json:"username" binding:"required"` // Username must be provided
	Password string `json:"password" binding:"required"` // Password must be provided
}

// Response struct for authentication
type AuthResponse struct {
	ID       uint   `json:"id"`       // User ID
	Username string `json:"username"` // Username
	Token    string `json:"token"`    // JWT token
}

// TokenSettings configures issued tokens
type TokenSettings struct {
	Secret       string        // HMAC secret
	Expiration   time.Duration // Token lifetime
	SecureCookie bool          // Send the cookie over HTTPS only
}

// isValidUsername checks that the trimmed username has 1 to 50 characters
func isValidUsername(username string) bool {
	n := utf8.RuneCountInString(username)
	return n >= 1 && n <= 50
}

// isValidPassword checks the password fits bcrypt's 72 byte input limit
func isValidPassword(password string) bool {
	return len(password) >= 1 && len(password) <= 72
}

// RegisterHandler creates a user and returns a token for it
func RegisterHandler(users UserRepository, tokens TokenSettings) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, logrus.Fields{}, invalidRequest)
			return
		}
		username := strings.TrimSpace(req.Username)
		// Validate username and password
		if !isValidUsername(username) {
			respondError(c, logrus.Fields{}, apperr.New(apperr.InvalidRequest, "Username must be 1-50 characters"))
			return
		}
		if !isValidPassword(req.Password) {
			respondError(c, logrus.Fields{}, apperr.New(apperr.InvalidRequest, "Password must be at most 72 bytes"))
			return
		}
		// Hash the password and create the user
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			respondError(c, logrus.Fields{"username": username}, apperr.Storage(err))
			return
		}
		user := domain.User{Username: username, PasswordHash: string(hash)}
		if err := users.Create(c.Request.Context(), &user); err != nil {
			if errors.Is(err, domain.ErrDuplicate) {
				respondError(c, logrus.Fields{}, apperr.New(apperr.Conflict, "Username already exists"))
				return
			}
			respondError(c, logrus.Fields{"username": username}, apperr.Storage(err))
			return
		}
		token, err := utils.GenerateJWT(user.ID, user.Username, tokens.Secret, tokens.Expiration)
		if err != nil {
			respondError(c, logrus.Fields{"user_id": user.ID}, apperr.Storage(err))
			return
		}
		logrus.WithFields(logrus.Fields{"user_id": user.ID, "username": user.Username}).Info("User registered")
		c.JSON(http.StatusCreated, AuthResponse{ID: user.ID, Username: user.Username, Token: token})
	}
}

// LoginHandler authenticates a user and returns a JWT token
func LoginHandler(users UserRepository, tokens TokenSettings) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, logrus.Fields{}, invalidRequest)
			return
		}
		invalid := apperr.New(apperr.InvalidCredentials, "Invalid username or password")
		user, err := users.FindByUsername(c.Request.Context(), strings.TrimSpace(req.Username))
		if err != nil {
			respondError(c, logrus.Fields{"username": req.Username}, apperr.Storage(err))
			return
		}
		if user == nil {
			respondError(c, logrus.Fields{}, invalid)
			return
		}
		// Compare provided password with stored hash
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
			respondError(c, logrus.Fields{}, invalid)
			return
		}
		token, err := utils.GenerateJWT(user.ID, user.Username, tokens.Secret, tokens.Expiration)
		if err != nil {
			respondError(c, logrus.Fields{"user_id": user.ID}, apperr.Storage(err))
			return
		}
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(middleware.TokenCookie, token, int(tokens.Expiration.Seconds()), "/", "", tokens.SecureCookie, true)
		c.JSON(http.StatusOK, AuthResponse{ID: user.ID, Username: user.Username, Token: token})
	}
}

// LogoutHandler clears the token cookie
func LogoutHandler(tokens TokenSettings) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(middleware.TokenCookie, "", -1, "/", "", tokens.SecureCookie, true)
		c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
	}
}
