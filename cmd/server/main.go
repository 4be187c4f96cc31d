package main

import (
	"context"                                  // context package is needed for Redis operations
	"habit_tracker/internal/api"               // Custom package for API handlers
	"habit_tracker/internal/config"            // Custom package for configuration
	"habit_tracker/internal/db"                // Database connection
	"habit_tracker/internal/frequency"         // Frequency option rules
	"habit_tracker/internal/habit"             // Habit rules
	"habit_tracker/internal/repository"        // gorm repositories
	"habit_tracker/internal/repository/memory" // In-memory fallback store

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	if cfg.IsProd {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logrus.SetLevel(level)
	}

	if cfg.JWTSecret == "" {
		logrus.Fatal("JWT_SECRET must be set")
	}

	// Storage: MySQL when configured, otherwise an in-memory store for local development
	var (
		users       api.UserRepository
		habitRepo   habit.Repository
		optionsRepo frequency.Repository
	)
	if cfg.DBName != "" {
		gdb, err := db.Open(cfg.DSN())
		if err != nil {
			logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
		}
		users = repository.NewUserRepository(gdb)
		habitRepo = repository.NewHabitRepository(gdb)
		optionsRepo = repository.NewFrequencyOptionRepository(gdb)
	} else {
		logrus.Warn("DB_NAME not set, using in-memory store")
		store := memory.NewSeededStore()
		users = store.Users()
		habitRepo = store.Habits()
		optionsRepo = store.FrequencyOptions()
	}

	// Setup Redis client when configured
	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr, // Redis server address
			Password: cfg.RedisPass, // Redis password
			DB:       cfg.RedisDB,   // Redis database number
		})
		// Test Redis connection
		if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
			logrus.Fatalf("failed to connect to Redis: %v", err)
		}
	} else {
		logrus.Info("REDIS_ADDR not set, caching disabled")
	}

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	r := api.NewRouter(api.Deps{
		Habits:      habit.NewService(habitRepo, optionsRepo),
		Frequencies: frequency.NewService(optionsRepo),
		Users:       users,
		Redis:       redisClient,
		Tokens: api.TokenSettings{
			Secret:       cfg.JWTSecret,
			Expiration:   cfg.JWTExpiration,
			SecureCookie: cfg.IsProd,
		},
		CacheTTL:   cfg.CacheTTL,
		CORSOrigin: cfg.CORSOrigin,
	})

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	logrus.Info("Server running on " + cfg.AppPort) // Log server start
	if err := r.Run(":" + cfg.AppPort); err != nil {
		logrus.Fatalf("server stopped: %v", err)
	}
}
