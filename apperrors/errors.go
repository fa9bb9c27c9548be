package apperrors

import (
	"errors"
	"net/http"
)

var (
	ErrValidation     = errors.New("validation failed")
	ErrDuplicate      = errors.New("resource already exists")
	ErrAuthentication = errors.New("invalid credentials")
	ErrAuthorization  = errors.New("forbidden access")
	ErrNotFound       = errors.New("requested resource not found")
	ErrConnection     = errors.New("database connection failed")
	ErrNotConnected   = errors.New("database not connected")
)

// Error pairs one of the sentinel kinds above with a message that is safe to
// return to API clients.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func New(kind error, message string) error {
	return &Error{Kind: kind, Message: message}
}

func Validation(message string) error {
	return New(ErrValidation, message)
}

func Duplicate(message string) error {
	return New(ErrDuplicate, message)
}

func NotFound(message string) error {
	return New(ErrNotFound, message)
}

func Forbidden(message string) error {
	return New(ErrAuthorization, message)
}

// HTTPStatus maps error kinds to HTTP status codes.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrValidation), errors.Is(err, ErrDuplicate):
		return http.StatusBadRequest
	case errors.Is(err, ErrAuthentication):
		return http.StatusUnauthorized
	case errors.Is(err, ErrAuthorization):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the client-facing text of err, or fallback when err carries
// no such text.
func Message(err error, fallback string) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return fallback
}
