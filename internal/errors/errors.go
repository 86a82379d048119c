package errors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrInvalidCredentials is returned when username or password is incorrect.
	// The message is deliberately identical for an unknown name and a wrong
	// password so a caller cannot probe which usernames exist.
	ErrInvalidCredentials = errors.New("Invalid username or password")
	// ErrUserExists is returned when registration hits an existing name or email.
	ErrUserExists = errors.New("That username and/or email already exist.")
	// ErrLoginRequired is returned when a session-requiring route is hit
	// without an authenticated session.
	ErrLoginRequired = errors.New("You need to login first.")
	// ErrTaskNotFound is returned when a referenced task does not exist.
	ErrTaskNotFound = errors.New("Element does not exist")
	// ErrForbiddenUpdate is returned when a user tries to complete a task they do not own.
	ErrForbiddenUpdate = errors.New("You can only update tasks that belong to you.")
	// ErrForbiddenDelete is returned when a user tries to delete a task they do not own.
	ErrForbiddenDelete = errors.New("You can only delete tasks that belong to you.")
)

// ValidationError reports a single invalid input field. It is surfaced as a
// field-level message and never reaches the store layer.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidationError creates a field-level validation error.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Field      string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Field: e.Field,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return &HTTPError{
			StatusCode: http.StatusBadRequest,
			Message:    vErr.Message,
			Field:      vErr.Field,
		}
	}

	switch {
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, err.Error())
	case errors.Is(err, ErrLoginRequired):
		return NewHTTPError(http.StatusUnauthorized, err.Error())
	case errors.Is(err, ErrForbiddenUpdate), errors.Is(err, ErrForbiddenDelete):
		return NewHTTPError(http.StatusForbidden, err.Error())
	case errors.Is(err, ErrTaskNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, ErrUserExists):
		return NewHTTPError(http.StatusConflict, err.Error())
	default:
		return NewHTTPError(http.StatusInternalServerError, "Something went terribly wrong.")
	}
}
