package httpserver

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"jericho-storefront/internal/domain"
	"jericho-storefront/internal/service/admin"
	"jericho-storefront/internal/service/storefront"
)

type errorResponse struct {
	StatusCode int                  `json:"statusCode"`
	Message    string               `json:"message"`
	Snapshot   *storefront.Snapshot `json:"snapshot,omitempty"`
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrStaleReference),
		errors.Is(err, domain.ErrIndexOutOfRange):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrTransitionRejected),
		errors.Is(err, domain.ErrAlreadyExists),
		errors.Is(err, storefront.ErrNoHandler):
		return http.StatusConflict
	case errors.Is(err, admin.ErrInvalidCredentials),
		errors.Is(err, admin.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, admin.ErrLoginDisabled):
		return http.StatusServiceUnavailable
	case errors.Is(err, storefront.ErrSessionClosed):
		return http.StatusGone
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// errorBody hides the message of unmapped errors and records them on the
// gin context so the access log shows them.
func errorBody(c *gin.Context, err error) errorResponse {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		msg = "internal error"
	}
	return errorResponse{StatusCode: status, Message: msg}
}

func respondError(c *gin.Context, err error) {
	body := errorBody(c, err)
	c.JSON(body.StatusCode, body)
}

func writeError(c *gin.Context, status int, msg string) {
	c.JSON(status, errorResponse{StatusCode: status, Message: msg})
}
