package api

import (
	"habit_tracker/internal/apperr"     // Error kinds
	"habit_tracker/internal/middleware" // Context keys
	"net/http"                          // HTTP status codes

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// statusByKind maps every error kind to its HTTP status
var statusByKind = map[apperr.Kind]int{
	apperr.Unauthenticated:        http.StatusUnauthorized,
	apperr.InvalidCredentials:     http.StatusUnauthorized,
	apperr.InvalidToken:           http.StatusForbidden,
	apperr.MissingRequiredField:   http.StatusBadRequest,
	apperr.InvalidFrequencyID:     http.StatusBadRequest,
	apperr.FrequencyNotFound:      http.StatusBadRequest,
	apperr.InvalidHabitType:       http.StatusBadRequest,
	apperr.TargetFieldsNotAllowed: http.StatusBadRequest,
	apperr.TargetFieldsRequired:   http.StatusBadRequest,
	apperr.InvalidTargetValue:     http.StatusBadRequest,
	apperr.InvalidTargetUnit:      http.StatusBadRequest,
	apperr.InvalidRequest:         http.StatusBadRequest,
	apperr.NotFound:               http.StatusNotFound,
	apperr.Forbidden:              http.StatusForbidden,
	apperr.Conflict:               http.StatusConflict,
	apperr.StorageFailure:         http.StatusInternalServerError,
}

// StatusOf returns the HTTP status for err
func StatusOf(err error) int {
	if status, ok := statusByKind[apperr.KindOf(err)]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// respondError writes err as {"error", "code"}. Storage failures are logged
// with their cause and reported with an opaque message.
func respondError(c *gin.Context, fields logrus.Fields, err error) {
	kind := apperr.KindOf(err)
	if kind == apperr.StorageFailure {
		fields["request_id"] = c.GetString(middleware.ContextRequestID)
		fields["error"] = err.Error()
		logrus.WithFields(fields).Error("Request failed")
	}
	c.JSON(StatusOf(err), gin.H{"error": apperr.MessageOf(err), "code": kind})
}

// invalidRequest is returned when the body cannot be bound
var invalidRequest = apperr.New(apperr.InvalidRequest, "Invalid request")
