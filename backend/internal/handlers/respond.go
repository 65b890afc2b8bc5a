package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xyppyx/DoNext/backend/internal/apperrors"
)

// ErrorResponse is the uniform error body every endpoint returns.
type ErrorResponse struct {
	Error     string `json:"error"`
	Message   string `json:"message"`
	Status    int    `json:"status"`
	Timestamp string `json:"timestamp"`
}

func statusForKind(kind apperrors.Kind) int {
	switch kind {
	case apperrors.KindNotFound:
		return http.StatusNotFound
	case apperrors.KindAccessDenied:
		return http.StatusForbidden
	case apperrors.KindValidation:
		return http.StatusBadRequest
	case apperrors.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondError maps a service error onto the HTTP status for its kind.
// Unclassified errors become opaque 500s so store internals never leak.
func respondError(c *gin.Context, err error) {
	kind := apperrors.KindOf(err)
	status := statusForKind(kind)

	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "internal server error"
	}

	c.JSON(status, ErrorResponse{
		Error:     string(kind),
		Message:   message,
		Status:    status,
		Timestamp: time.Now().Format(time.RFC3339),
	})
}

func respondValidation(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error:     string(apperrors.KindValidation),
		Message:   message,
		Status:    http.StatusBadRequest,
		Timestamp: time.Now().Format(time.RFC3339),
	})
}
