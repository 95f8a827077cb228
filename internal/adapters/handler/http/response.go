package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-progression-engine/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/kanso-progression-engine/internal/core/domain"
)

var badRequestErrors = []error{
	domain.ErrInvalidDate,
	domain.ErrHabitTitleEmpty,
	domain.ErrHabitTitleTooLong,
	domain.ErrHabitUnitTooLong,
	domain.ErrHabitInvalidUserID,
	domain.ErrInvalidDirection,
	domain.ErrInvalidStartValue,
	domain.ErrProgressionRequired,
	domain.ErrProgressionNotAllowed,
	domain.ErrInvalidProgressionMode,
	domain.ErrInvalidPeriod,
	domain.ErrInvalidProgression,
	domain.ErrPercentageTooLarge,
	domain.ErrInvalidTarget,
	domain.ErrTargetNotAllowed,
	domain.ErrInvalidEntryMode,
	domain.ErrInvalidPauseDate,
	domain.ErrInvalidEntry,
	domain.ErrNegativeValue,
	domain.ErrFutureEntry,
	domain.ErrHabitInactive,
	domain.ErrWrongEntryMode,
	domain.ErrNothingToUndo,
	domain.ErrInvalidEmail,
	domain.ErrPasswordTooShort,
	domain.ErrPasswordTooLong,
}

// Lifecycle transitions that do not apply to the habit's current state.
var stateConflictErrors = []error{
	domain.ErrHabitArchived,
	domain.ErrHabitNotArchived,
	domain.ErrHabitAlreadyPaused,
	domain.ErrHabitNotPaused,
}

func isAny(err error, targets []error) bool {
	for _, t := range targets {
		if errors.Is(err, t) {
			return true
		}
	}
	return false
}

func handleError(c *gin.Context, err error) {
	switch {
	case isAny(err, badRequestErrors):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

	case errors.Is(err, domain.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})

	case errors.Is(err, domain.ErrUnauthorized):
		c.JSON(http.StatusForbidden, gin.H{"error": "unauthorized access"})

	case errors.Is(err, domain.ErrEntryNotFound) || errors.Is(err, domain.ErrHabitNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "resource not found"})

	case errors.Is(err, domain.ErrEntryConflict) || errors.Is(err, domain.ErrHabitConflict):
		c.JSON(http.StatusConflict, gin.H{
			"error":   "version conflict",
			"message": "data has been modified elsewhere, reload and retry",
		})

	case errors.Is(err, domain.ErrEmailAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"error": "email already exists"})

	case isAny(err, stateConflictErrors):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})

	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}

// currentUser writes the 401 itself when the auth middleware did not run.
func currentUser(c *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
	}
	return userID, ok
}

// dateQuery reads a YYYY-MM-DD query parameter, falling back when absent.
func dateQuery(c *gin.Context, key string, fallback domain.Date) (domain.Date, bool) {
	raw := c.Query(key)
	if raw == "" {
		return fallback, true
	}
	d, err := domain.ParseDate(raw)
	if err != nil {
		badRequest(c, "invalid "+key+" format, expected YYYY-MM-DD")
		return domain.Date{}, false
	}
	return d, true
}

func intQuery(c *gin.Context, key string) (int, bool) {
	raw := c.Query(key)
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		badRequest(c, key+" must be a non-negative integer")
		return 0, false
	}
	return n, true
}
