package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"alcyxob/fitness-coach/internal/planning"
	"alcyxob/fitness-coach/internal/service"

	"github.com/gin-gonic/gin"
)

const secondsPerDay = 24 * 60 * 60

var notFoundErrors = []error{
	service.ErrProfileNotFound,
	service.ErrActivePlanNotFound,
	service.ErrWorkoutNotFound,
	service.ErrInjuryNotFound,
	service.ErrExerciseNotFound,
	planning.ErrPlanNotFound,
}

var conflictErrors = []error{
	service.ErrPlanConflict,
	service.ErrUserAlreadyExists,
	service.ErrExerciseAlreadyExists,
}

// respondError maps service and engine errors onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	var cooldown *planning.CooldownError
	switch {
	case errors.As(err, &cooldown):
		c.Header("Retry-After", strconv.Itoa(cooldown.DaysRemaining*secondsPerDay))
		abortWithError(c, http.StatusTooManyRequests, err.Error())
	case errors.Is(err, service.ErrValidation), errors.Is(err, service.ErrInvalidRole):
		abortWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrAuthenticationFailed):
		abortWithError(c, http.StatusUnauthorized, err.Error())
	case isAny(err, notFoundErrors):
		abortWithError(c, http.StatusNotFound, err.Error())
	case isAny(err, conflictErrors):
		abortWithError(c, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrExportUnavailable):
		abortWithError(c, http.StatusServiceUnavailable, err.Error())
	default:
		slog.ErrorContext(c.Request.Context(), "request failed", slog.String("path", c.FullPath()), slog.Any("error", err))
		abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred")
	}
}

func isAny(err error, targets []error) bool {
	for _, t := range targets {
		if errors.Is(err, t) {
			return true
		}
	}
	return false
}
