package api

import (
	"net/http"
	"time"

	"habit_tracker/internal/frequency"
	"habit_tracker/internal/habit"
	"habit_tracker/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

// Deps are the collaborators the routes are built from
type Deps struct {
	Habits      *habit.Service
	Frequencies *frequency.Service
	Users       UserRepository
	Redis       *redis.Client // Optional, nil disables caching
	Tokens      TokenSettings
	CacheTTL    time.Duration
	CORSOrigin  string
}

// NewRouter mounts every route on a fresh engine
func NewRouter(d Deps) *gin.Engine {
	r := gin.Default()
	r.Use(
		middleware.RequestIDMiddleware(),
		middleware.MetricsMiddleware(),
		middleware.CORSMiddleware(d.CORSOrigin),
		middleware.CaseConverterMiddleware(),
	)

	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Habit Tracker Backend API is running!")
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/api/v1")

	// Auth routes
	auth := v1.Group("/auth")
	auth.POST("/register", RegisterHandler(d.Users, d.Tokens))
	auth.POST("/login", LoginHandler(d.Users, d.Tokens))
	auth.POST("/logout", LogoutHandler(d.Tokens))

	// Everything below requires a valid token for an existing user
	protected := v1.Group("")
	protected.Use(middleware.JWTAuthMiddleware(d.Tokens.Secret), middleware.ActiveUserMiddleware(d.Users))

	habits := protected.Group("/habits")
	habits.GET("", ListHabitsHandler(d.Habits, d.Redis, d.CacheTTL))
	habits.POST("", CreateHabitHandler(d.Habits, d.Redis))
	habits.PUT("/:id", UpdateHabitHandler(d.Habits, d.Redis))
	habits.DELETE("/:id", DeleteHabitHandler(d.Habits, d.Redis))

	options := protected.Group("/frequency-options")
	options.GET("", ListFrequencyOptionsHandler(d.Frequencies, d.Redis, d.CacheTTL))
	options.POST("", CreateFrequencyOptionHandler(d.Frequencies, d.Redis))
	options.DELETE("/:id", DeleteFrequencyOptionHandler(d.Frequencies, d.Redis))

	return r
}
