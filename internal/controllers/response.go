package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"healio/internal/middleware"
	"healio/internal/nutrition"
	"healio/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// errorStatus maps domain errors onto HTTP status codes.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, nutrition.ErrGoalZero):
		return http.StatusUnprocessableEntity
	case errors.Is(err, nutrition.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrFoodNotFound),
		errors.Is(err, services.ErrMealNotFound),
		errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, services.ErrEmailTaken):
		return http.StatusConflict
	case errors.Is(err, services.ErrGoogleAuthDisabled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the error envelope. Internal errors are attached to the
// gin context for the request logger and hidden from the client.
func respondError(c *gin.Context, message string, err error) {
	status := errorStatus(err)
	detail := err.Error()
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		detail = "Internal server error"
	}
	c.JSON(status, gin.H{
		"status":  "error",
		"message": message,
		"error":   detail,
	})
}

func badRequest(c *gin.Context, message string, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"status":  "error",
		"message": message,
		"error":   err.Error(),
	})
}

func respondSuccess(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, gin.H{
		"status":  "success",
		"message": message,
		"data":    data,
	})
}

func currentUserID(c *gin.Context) (uint, bool) {
	value, exists := c.Get(middleware.ContextUserID)
	userID, ok := value.(uint)
	if !exists || !ok || userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{
			"status":  "error",
			"message": "Unauthorized",
			"error":   "User ID not found in token",
		})
		return 0, false
	}
	return userID, true
}

func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid ID",
			"error":   "ID must be a valid positive integer",
		})
		return 0, false
	}
	return uint(id), true
}
