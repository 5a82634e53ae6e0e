package utils

import (
	"errors"
	"github.com/gin-gonic/gin"
	"log"
	"net/http"
)

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func traceID(c *gin.Context) string {
	if v, ok := c.Get("trace_id"); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: message,
		TraceID: traceID(c),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: traceID(c),
	})
}

func HandleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrAccountNotFound):
		RespondError(c, http.StatusNotFound, "Account not found")
	case errors.Is(err, ErrActivityNotFound):
		RespondError(c, http.StatusNotFound, "Activity not found")
	case errors.Is(err, ErrGroupNotFound):
		RespondError(c, http.StatusNotFound, "Group not found")
	case errors.Is(err, ErrEmailAlreadyExists):
		RespondError(c, http.StatusConflict, "Email already exists")
	case errors.Is(err, ErrAlreadyApplied):
		RespondError(c, http.StatusConflict, "Application already pending")
	case errors.Is(err, ErrAlreadyMember):
		RespondError(c, http.StatusConflict, "Already a group member")
	case errors.Is(err, ErrInvalidCredentials):
		RespondError(c, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, ErrNotGroupAdmin):
		RespondError(c, http.StatusForbidden, "Only the group admin can do this")
	case errors.Is(err, ErrInvalidRaceDistance):
		RespondError(c, http.StatusBadRequest, "Invalid race distance")
	case errors.Is(err, ErrInvalidPage):
		RespondError(c, http.StatusBadRequest, "Page must be greater than 0")
	case errors.Is(err, ErrInvalidPageSize):
		RespondError(c, http.StatusBadRequest, "Page size must be between 1 and 100")
	case errors.Is(err, ErrStravaNotConnected):
		RespondError(c, http.StatusBadRequest, "Strava account not connected")
	case errors.Is(err, ErrReauthorizationRequired):
		RespondError(c, http.StatusUnauthorized, "Strava authorization expired, please reconnect")
	case errors.Is(err, ErrSyncTooRecent):
		RespondError(c, http.StatusTooManyRequests, "Synced recently, try again later")
	case errors.Is(err, ErrProviderUnavailable):
		RespondError(c, http.StatusBadGateway, "Strava is unavailable, try again later")
	case errors.Is(err, ErrDatabaseError):
		log.Printf("Database error: %v", err)
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	default:
		log.Printf("Unknown error: %v", err)
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	}
}
