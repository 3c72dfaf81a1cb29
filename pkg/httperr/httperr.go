// Package httperr defines the error taxonomy shared by every service and the
// single translation point from typed failures to HTTP responses.
package httperr

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

var (
	ErrAlreadyExists      = errors.New("resource already exists")
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token has expired")
	ErrForbidden          = errors.New("forbidden")
	ErrValidation         = errors.New("validation failed")
)

type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string { return "validation failed" }

func (e *ValidationError) Unwrap() error { return ErrValidation }

func Validation(fields map[string]string) error {
	return &ValidationError{Fields: fields}
}

// Response is the error envelope every service returns. It never carries
// stack traces or internal detail.
type Response struct {
	Status           int               `json:"status"`
	Message          string            `json:"message"`
	ValidationErrors map[string]string `json:"validationErrors,omitempty"`
	Timestamp        time.Time         `json:"timestamp"`
}

func StatusOf(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrInvalidToken),
		errors.Is(err, ErrTokenExpired):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrAlreadyExists):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// JSON translates a typed failure to its envelope and writes it. Unknown
// errors collapse to a generic 500 message.
func JSON(c echo.Context, err error) error {
	status := StatusOf(err)

	resp := Response{
		Status:    status,
		Message:   err.Error(),
		Timestamp: time.Now().UTC(),
	}
	if status == http.StatusInternalServerError {
		resp.Message = "internal server error"
	}

	var ve *ValidationError
	if errors.As(err, &ve) {
		resp.ValidationErrors = ve.Fields
	}

	return c.JSON(status, resp)
}
