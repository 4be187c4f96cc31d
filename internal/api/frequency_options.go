package api

import (
	"habit_tracker/internal/domain"     // Importing domain models
	"habit_tracker/internal/frequency"  // Frequency option rules
	"habit_tracker/internal/metrics"    // Prometheus collectors
	"habit_tracker/internal/middleware" // Caller identity
	"habit_tracker/internal/utils"      // Utility functions
	"net/http"                          // HTTP status codes
	"strconv"                           // String conversion
	"time"                              // Time durations

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
)

// ListFrequencyOptionsHandler returns the default options and the caller's own
func ListFrequencyOptionsHandler(svc *frequency.Service, rdb *redis.Client, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.CallerID(c)
		ctx := c.Request.Context()
		cacheKey := utils.FrequencyOptionsCacheKey(userID)
		// Try to get cached response
		var cached []domain.FrequencyOption
		found, err := utils.GetCache(ctx, rdb, cacheKey, &cached)
		if err != nil {
			logrus.WithFields(logrus.Fields{"key": cacheKey, "error": err.Error()}).Warn("Cache read failed")
		}
		if err == nil && found {
			metrics.RecordCacheLookup("frequency_options", true)
			c.Header("X-Cache", "HIT")
			c.JSON(http.StatusOK, cached)
			return
		}
		options, err := svc.List(ctx, userID)
		if err != nil {
			respondError(c, logrus.Fields{"user_id": userID}, err)
			return
		}
		metrics.RecordCacheLookup("frequency_options", false)
		// Cache the response for future requests
		if err := utils.SetCache(ctx, rdb, cacheKey, options, ttl); err != nil {
			logrus.WithFields(logrus.Fields{"key": cacheKey, "error": err.Error()}).Warn("Cache write failed")
		}
		c.Header("X-Cache", "MISS")
		c.JSON(http.StatusOK, options)
	}
}

// CreateFrequencyOptionHandler adds a custom option for the caller
func CreateFrequencyOptionHandler(svc *frequency.Service, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.CallerID(c)
		var req frequency.CreateInput // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, logrus.Fields{"user_id": userID}, invalidRequest)
			return
		}
		option, err := svc.Create(c.Request.Context(), userID, req)
		if err != nil {
			respondError(c, logrus.Fields{"user_id": userID}, err)
			return
		}
		logrus.WithFields(logrus.Fields{
			"user_id":             userID,
			"frequency_option_id": option.ID,
		}).Info("Frequency option created")
		invalidateFrequencyOptions(c, rdb, userID)
		c.JSON(http.StatusCreated, option)
	}
}

// DeleteFrequencyOptionHandler removes one of the caller's custom options
func DeleteFrequencyOptionHandler(svc *frequency.Service, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.CallerID(c)
		var id uint
		if v, err := strconv.ParseUint(c.Param("id"), 10, 64); err == nil {
			id = uint(v)
		}
		if err := svc.Delete(c.Request.Context(), userID, id); err != nil {
			respondError(c, logrus.Fields{"user_id": userID, "frequency_option_id": id}, err)
			return
		}
		logrus.WithFields(logrus.Fields{
			"user_id":             userID,
			"frequency_option_id": id,
		}).Info("Frequency option deleted")
		invalidateFrequencyOptions(c, rdb, userID)
		c.JSON(http.StatusOK, gin.H{"message": "Frequency option deleted successfully"})
	}
}

// invalidateFrequencyOptions drops the caller's cached option list after a write
func invalidateFrequencyOptions(c *gin.Context, rdb *redis.Client, userID uint) {
	if err := utils.DeleteCache(c.Request.Context(), rdb, utils.FrequencyOptionsCacheKey(userID)); err != nil {
		logrus.WithFields(logrus.Fields{"user_id": userID, "error": err.Error()}).Warn("Cache invalidation failed")
	}
}
