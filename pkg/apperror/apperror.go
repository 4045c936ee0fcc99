package apperror

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrRateLimited  = errors.New("rate limited")
	ErrInternal     = errors.New("internal server error")
)

// AppError is the error shape every handler forwards to the error middleware.
// Label and Message become the `error` and `message` fields of the JSON
// response; Field names the offending unique key on conflicts.
type AppError struct {
	BaseError error
	Label     string
	Message   string
	Field     string
	Err       error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Label, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Label, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.BaseError
}

func New(base error, label, message string, err error) *AppError {
	return &AppError{BaseError: base, Label: label, Message: message, Err: err}
}

func NewNotFound(resource, message string) *AppError {
	if message == "" {
		message = fmt.Sprintf("%s not found", resource)
	}
	return New(ErrNotFound, "Not Found", message, nil)
}

func NewBadRequest(message string, err error) *AppError {
	return New(ErrInvalidInput, "Bad Request", message, err)
}

func NewValidation(message string, err error) *AppError {
	return New(ErrInvalidInput, "Validation Error", message, err)
}

// NewDuplicate marks a unique-constraint violation, naming the field the
// store flagged.
func NewDuplicate(field string) *AppError {
	e := New(ErrConflict, "Duplicate Entry", "A record with this value already exists", nil)
	e.Field = field
	return e
}

func NewAuthRequired() *AppError {
	return New(ErrUnauthorized, "Authentication Required", "Please provide valid credentials", nil)
}

func NewAuthFailed() *AppError {
	return New(ErrUnauthorized, "Authentication Failed", "Invalid credentials", nil)
}

func NewAuthError(err error) *AppError {
	return New(ErrUnauthorized, "Authentication Error", "Failed to authenticate request", err)
}

func NewRateLimited() *AppError {
	return New(ErrRateLimited, "Too Many Requests", "Too many requests from this IP, please try again later.", nil)
}

func NewInternal(message string, err error) *AppError {
	return New(ErrInternal, "Internal Server Error", message, err)
}

func ToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrRateLimited):
		return http.StatusTooManyRequests
	}
	return http.StatusInternalServerError
}

// ToJSON renders the stable error envelope. Callers key off the success
// boolean, never off the status code alone.
func (e *AppError) ToJSON() gin.H {
	return gin.H{
		"success": false,
		"error":   e.Label,
		"message": e.Message,
	}
}
