// Package errors defines the error types used across taskboard and the
// helpers that classify them.
//
// # Error Types
//
// There is exactly one failure class a user ever sees: a request to the
// task API that did not succeed. RequestError covers transport failures
// (server down, connection refused, timeouts) and non-2xx responses alike.
// Callers never surface the error text itself; they map it to the fixed
// message of the action that failed and log the details.
//
// ValidationError reports bad configuration values.
//
// # Usage
//
//	err := errors.NewRequestError("PUT", "/tasks/3", cause).WithStatus(500)
//
//	if errors.IsNotFound(err) { ... }
//	code := errors.StatusCode(err)
//
//	var reqErr *errors.RequestError
//	if errors.As(err, &reqErr) { ... }
package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Re-export standard library functions so callers only need this package.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// -----------------------------------------------------------------------------
// Sentinel Errors
// -----------------------------------------------------------------------------

var (
	// ErrRequestFailed matches every RequestError.
	ErrRequestFailed = New("request failed")
	// ErrNotFound matches a RequestError whose response status was 404.
	ErrNotFound = New("not found")
	// ErrUnexpectedStatus is the cause recorded when a response is non-2xx
	// and the body carried no error message.
	ErrUnexpectedStatus = New("unexpected status")
	// ErrInvalidInput indicates that validation failed.
	ErrInvalidInput = New("invalid input")
)

// baseError holds the message and cause shared by every error type.
type baseError struct {
	message string
	cause   error
}

func (e *baseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

func (e *baseError) Unwrap() error {
	return e.cause
}

func (e *baseError) Is(target error) bool {
	if e.cause != nil {
		return errors.Is(e.cause, target)
	}
	return false
}

// -----------------------------------------------------------------------------
// RequestError
// -----------------------------------------------------------------------------

// RequestError is a failed call to the task API.
//
// Example:
//
//	err := errors.NewRequestError("DELETE", "/comments/9", nil).
//		WithStatus(404).
//		WithServerMessage("Comment not found")
//	fmt.Println(err) // "request failed [DELETE /comments/9, status=404]: Comment not found"
type RequestError struct {
	baseError
	Method        string
	Path          string
	StatusCode    int
	RequestID     string
	ServerMessage string
}

// NewRequestError creates a RequestError for the given call. cause is the
// transport error, or nil when the server answered with a bad status.
func NewRequestError(method, path string, cause error) *RequestError {
	return &RequestError{
		baseError: baseError{
			message: "request failed",
			cause:   cause,
		},
		Method: method,
		Path:   path,
	}
}

// WithStatus records the HTTP status code of the response.
func (e *RequestError) WithStatus(code int) *RequestError {
	e.StatusCode = code
	if e.cause == nil {
		e.cause = ErrUnexpectedStatus
	}
	return e
}

// WithServerMessage records the "error" field of the response body.
func (e *RequestError) WithServerMessage(msg string) *RequestError {
	e.ServerMessage = msg
	return e
}

// WithRequestID records the X-Request-ID sent with the request.
func (e *RequestError) WithRequestID(id string) *RequestError {
	e.RequestID = id
	return e
}

// Error returns the formatted error message.
func (e *RequestError) Error() string {
	parts := []string{strings.TrimSpace(e.Method + " " + e.Path)}
	if e.StatusCode != 0 {
		parts = append(parts, fmt.Sprintf("status=%d", e.StatusCode))
	}
	if e.RequestID != "" {
		parts = append(parts, fmt.Sprintf("request=%s", e.RequestID))
	}
	prefix := fmt.Sprintf("%s [%s]", e.message, strings.Join(parts, ", "))

	switch {
	case e.ServerMessage != "":
		return fmt.Sprintf("%s: %s", prefix, e.ServerMessage)
	case e.cause != nil:
		return fmt.Sprintf("%s: %v", prefix, e.cause)
	}
	return prefix
}

// Is reports whether target is ErrRequestFailed, ErrNotFound for a 404,
// any *RequestError, or matches the wrapped cause.
func (e *RequestError) Is(target error) bool {
	if _, ok := target.(*RequestError); ok {
		return true
	}
	if target == ErrRequestFailed {
		return true
	}
	if target == ErrNotFound && e.StatusCode == http.StatusNotFound {
		return true
	}
	return e.baseError.Is(target)
}

// -----------------------------------------------------------------------------
// ValidationError
// -----------------------------------------------------------------------------

// ValidationError represents an invalid input value.
//
// Example:
//
//	err := errors.NewValidationError("must be an http or https URL").
//		WithField("api.base_url").
//		WithValue("ftp://x")
type ValidationError struct {
	baseError
	Field string
	Value any
}

// NewValidationError creates a new ValidationError.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{baseError: baseError{message: message}}
}

// WithField adds a field name to the error context.
func (e *ValidationError) WithField(field string) *ValidationError {
	e.Field = field
	return e
}

// WithValue adds the invalid value to the error context.
func (e *ValidationError) WithValue(value any) *ValidationError {
	e.Value = value
	return e
}

// WithCause adds a cause to the error.
func (e *ValidationError) WithCause(cause error) *ValidationError {
	e.cause = cause
	return e
}

// Error returns the formatted error message.
func (e *ValidationError) Error() string {
	var parts []string
	if e.Field != "" {
		parts = append(parts, fmt.Sprintf("field=%s", e.Field))
	}
	if e.Value != nil {
		parts = append(parts, fmt.Sprintf("value=%v", e.Value))
	}

	prefix := "validation error"
	if len(parts) > 0 {
		prefix = fmt.Sprintf("validation error [%s]", strings.Join(parts, ", "))
	}

	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Is checks if this error matches the target.
func (e *ValidationError) Is(target error) bool {
	if _, ok := target.(*ValidationError); ok {
		return true
	}
	if target == ErrInvalidInput {
		return true
	}
	return e.baseError.Is(target)
}

// -----------------------------------------------------------------------------
// Classification Helpers
// -----------------------------------------------------------------------------

// IsNotFound reports whether err is a RequestError for a 404 response.
func IsNotFound(err error) bool {
	return err != nil && Is(err, ErrNotFound)
}

// StatusCode returns the HTTP status recorded in err, or 0 when err is not a
// RequestError or the request never got a response.
func StatusCode(err error) int {
	var reqErr *RequestError
	if As(err, &reqErr) {
		return reqErr.StatusCode
	}
	return 0
}

// -----------------------------------------------------------------------------
// Convenience Constructors
// -----------------------------------------------------------------------------

// Wrap wraps an error with additional context message.
//
// Example:
//
//	err := errors.Wrap(cfgErr, "invalid configuration")
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
