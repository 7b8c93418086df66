package common

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Response is the envelope every endpoint returns.
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// RespondOK sends a success envelope.
func RespondOK(c echo.Context, status int, data interface{}) error {
	return c.JSON(status, Response{Success: true, Data: data})
}

// RespondError maps a domain error to its HTTP status and sends an error envelope.
// Cross-tenant access and genuine absence both surface as 404 so nothing leaks
// about other tenants' data.
func RespondError(c echo.Context, err error) error {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, ErrRateLimited):
		status = http.StatusTooManyRequests
	case errors.Is(err, ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, ErrConflict), errors.Is(err, ErrInvalidTransition):
		status = http.StatusConflict
	case errors.Is(err, ErrValidation):
		status = http.StatusUnprocessableEntity
	}
	return c.JSON(status, Response{Success: false, Error: err.Error()})
}

// RespondValidationError sends a 422 with a field-specific message.
func RespondValidationError(c echo.Context, message string) error {
	return c.JSON(http.StatusUnprocessableEntity, Response{Success: false, Error: message})
}
