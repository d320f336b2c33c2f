package errors

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error represents an application error
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a new Error
func New(code int, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Validation creates a 400 error with the given message.
func Validation(message string) *Error {
	return New(http.StatusBadRequest, message, nil)
}

// NotFound creates a 404 error with the given message.
func NotFound(message string) *Error {
	return New(http.StatusNotFound, message, nil)
}

// Conflict creates a 409 error with the given message.
func Conflict(message string) *Error {
	return New(http.StatusConflict, message, nil)
}

// Unauthorized creates a 401 error with the given message.
func Unauthorized(message string) *Error {
	return New(http.StatusUnauthorized, message, nil)
}

// Internal wraps an unexpected error into a 500.
func Internal(err error) *Error {
	return New(http.StatusInternalServerError, "Internal server error", err)
}

// Authentication error types
var (
	ErrInvalidCredentials = New(http.StatusUnauthorized, "Invalid credentials", nil)
	ErrInvalidToken       = New(http.StatusUnauthorized, "Invalid token", nil)
)

// Business logic error types
var (
	ErrInsufficientSpaces = New(http.StatusConflict, "Insufficient spaces", nil)
	ErrLessonNotFound     = New(http.StatusNotFound, "Lesson not found", nil)
	ErrEmailTaken         = New(http.StatusConflict, "Email already registered", nil)
)

// From converts any error into an *Error, wrapping unknown errors as 500s.
func From(err error) *Error {
	if e, ok := err.(*Error); ok {
		return e
	}
	return Internal(err)
}

// ErrorMiddleware turns errors attached to the gin context into JSON responses.
func ErrorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			appErr := From(c.Errors.Last().Err)
			c.JSON(appErr.Code, appErr)
			c.Abort()
		}
	}
}
