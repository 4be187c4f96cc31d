package api

import (
	"habit_tracker/internal/apperr"     // Error kinds
	"habit_tracker/internal/domain"     // Importing domain models
	"habit_tracker/internal/habit"      // Habit rules
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

// habitID parses the :id path parameter. Ids that cannot exist are reported as 0.
func habitID(c *gin.Context) uint {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0
	}
	return uint(id)
}

func result(err error) string {
	if err == nil {
		return "ok"
	}
	return string(apperr.KindOf(err))
}

// ListHabitsHandler returns the caller's habits with their frequency names
func ListHabitsHandler(svc *habit.Service, rdb *redis.Client, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.CallerID(c) // Get userID from context
		ctx := c.Request.Context()
		// Serve from cache when possible
		cacheKey := utils.HabitsCacheKey(userID)
		var cached []domain.HabitWithFrequency
		found, err := utils.GetCache(ctx, rdb, cacheKey, &cached)
		if err != nil {
			logrus.WithFields(logrus.Fields{"key": cacheKey, "error": err.Error()}).Warn("Cache read failed")
		}
		if userID != 0 && err == nil && found {
			metrics.RecordCacheLookup("habits", true)
			metrics.RecordHabitOperation("list", "ok")
			c.Header("X-Cache", "HIT")
			c.JSON(http.StatusOK, cached)
			return
		}
		habits, err := svc.ListHabits(ctx, userID)
		metrics.RecordHabitOperation("list", result(err))
		if err != nil {
			respondError(c, logrus.Fields{"user_id": userID}, err)
			return
		}
		metrics.RecordCacheLookup("habits", false)
		// Cache the list for future requests
		if err := utils.SetCache(ctx, rdb, cacheKey, habits, ttl); err != nil {
			logrus.WithFields(logrus.Fields{"key": cacheKey, "error": err.Error()}).Warn("Cache write failed")
		}
		c.Header("X-Cache", "MISS")
		c.JSON(http.StatusOK, habits)
	}
}

// CreateHabitHandler validates the body and stores a new habit for the caller
func CreateHabitHandler(svc *habit.Service, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.CallerID(c) // Get userID from context
		var req habit.Payload            // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			metrics.RecordHabitOperation("create", string(apperr.InvalidRequest))
			respondError(c, logrus.Fields{"user_id": userID}, invalidRequest)
			return
		}
		created, err := svc.CreateHabit(c.Request.Context(), userID, req)
		metrics.RecordHabitOperation("create", result(err))
		if err != nil {
			respondError(c, logrus.Fields{"user_id": userID}, err)
			return
		}
		logrus.WithFields(logrus.Fields{
			"user_id":    userID,                                   // User ID
			"habit_id":   created.ID,                               // Habit ID
			"habit_type": created.HabitType,                        // Habit type
			"request_id": c.GetString(middleware.ContextRequestID), // Request ID
		}).Info("Habit created")
		invalidateHabits(c, rdb, userID)
		c.JSON(http.StatusCreated, created)
	}
}

// UpdateHabitHandler replaces the editable fields of one of the caller's habits
func UpdateHabitHandler(svc *habit.Service, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.CallerID(c)
		id := habitID(c)
		// Existence and ownership are answered before the body is looked at
		if _, err := svc.OwnedHabit(c.Request.Context(), userID, id); err != nil {
			metrics.RecordHabitOperation("update", result(err))
			respondError(c, logrus.Fields{"user_id": userID, "habit_id": id}, err)
			return
		}
		var req habit.Payload
		if err := c.ShouldBindJSON(&req); err != nil {
			metrics.RecordHabitOperation("update", string(apperr.InvalidRequest))
			respondError(c, logrus.Fields{"user_id": userID, "habit_id": id}, invalidRequest)
			return
		}
		updated, err := svc.UpdateHabit(c.Request.Context(), userID, id, req)
		metrics.RecordHabitOperation("update", result(err))
		if err != nil {
			respondError(c, logrus.Fields{"user_id": userID, "habit_id": id}, err)
			return
		}
		logrus.WithFields(logrus.Fields{
			"user_id":    userID,
			"habit_id":   id,
			"request_id": c.GetString(middleware.ContextRequestID),
		}).Info("Habit updated")
		invalidateHabits(c, rdb, userID)
		c.JSON(http.StatusOK, updated)
	}
}

// DeleteHabitHandler removes one of the caller's habits
func DeleteHabitHandler(svc *habit.Service, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.CallerID(c)
		id := habitID(c)
		err := svc.DeleteHabit(c.Request.Context(), userID, id)
		metrics.RecordHabitOperation("delete", result(err))
		if err != nil {
			respondError(c, logrus.Fields{"user_id": userID, "habit_id": id}, err)
			return
		}
		logrus.WithFields(logrus.Fields{
			"user_id":    userID,
			"habit_id":   id,
			"request_id": c.GetString(middleware.ContextRequestID),
		}).Info("Habit deleted")
		invalidateHabits(c, rdb, userID)
		c.JSON(http.StatusOK, gin.H{"message": "Habit deleted successfully"})
	}
}

// invalidateHabits drops the caller's cached habit list after a write
func invalidateHabits(c *gin.Context, rdb *redis.Client, userID uint) {
	if err := utils.DeleteCache(c.Request.Context(), rdb, utils.HabitsCacheKey(userID)); err != nil {
		logrus.WithFields(logrus.Fields{"user_id": userID, "error": err.Error()}).Warn("Cache invalidation failed")
	}
}
