// Package response holds the JSON envelopes shared by every handler and the
// mapping from domain errors to HTTP status codes.
package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"gallery_backend/internal/domain"
	"gallery_backend/internal/platform/validation"
)

type ErrorResponse struct {
	Error  string                  `json:"error"`
	Fields []validation.FieldError `json:"fields,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// Status maps a domain error to its HTTP status. Unknown errors are 500.
func Status(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrInvalidBackup):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrProductNotFound),
		errors.Is(err, domain.ErrCartItemNotFound),
		errors.Is(err, domain.ErrCustomOrderNotFound),
		errors.Is(err, domain.ErrSettingNotFound),
		errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrEmailAlreadyExists),
		errors.Is(err, domain.ErrAlreadyInCart),
		errors.Is(err, domain.ErrProductSold),
		errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, domain.ErrEmptyCart):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrStoreNotInitialized):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// Error writes err as a JSON error body. Internal errors are logged and hidden
// from the client.
func Error(c *gin.Context, op string, err error) {
	status := Status(err)
	if status >= http.StatusInternalServerError {
		slog.Error(op+" failed", "error", err, "path", c.FullPath(), "remote_addr", c.ClientIP())
		c.JSON(status, ErrorResponse{Error: "internal error"})
		return
	}
	slog.Warn(op+" rejected", "error", err, "path", c.FullPath(), "remote_addr", c.ClientIP())
	body := ErrorResponse{Error: err.Error()}
	var verr *validation.Error
	if errors.As(err, &verr) {
		body.Fields = verr.Fields
	}
	c.JSON(status, body)
}

// BadRequest answers a request whose body or parameters could not be bound.
func BadRequest(c *gin.Context, op string, err error) {
	slog.Warn(op+" validation failed", "error", err, "remote_addr", c.ClientIP())
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request"})
}
