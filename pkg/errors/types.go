package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// ErrorCode identifies a class of failure across the API and CLI
type ErrorCode string

const (
	ErrCodeConfigInvalid  ErrorCode = "CONFIG_INVALID"
	ErrCodeConfigRequired ErrorCode = "CONFIG_REQUIRED"

	ErrCodeDatabaseConnection ErrorCode = "DATABASE_CONNECTION"
	ErrCodeDatabaseQuery      ErrorCode = "DATABASE_QUERY"
	ErrCodeDatabaseMigration  ErrorCode = "DATABASE_MIGRATION"

	ErrCodeNotFound     ErrorCode = "NOT_FOUND"
	ErrCodeValidation   ErrorCode = "VALIDATION"
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	ErrCodeAPIRateLimit ErrorCode = "API_RATE_LIMIT"

	ErrCodeInternal    ErrorCode = "INTERNAL"
	ErrCodeServiceDown ErrorCode = "SERVICE_DOWN"
)

// statusByCode holds the non-500 defaults
var statusByCode = map[ErrorCode]int{
	ErrCodeNotFound:           http.StatusNotFound,
	ErrCodeValidation:         http.StatusBadRequest,
	ErrCodeInvalidInput:       http.StatusBadRequest,
	ErrCodeAPIRateLimit:       http.StatusTooManyRequests,
	ErrCodeServiceDown:        http.StatusServiceUnavailable,
	ErrCodeDatabaseConnection: http.StatusServiceUnavailable,
}

// AppError carries a code, a client-safe message and structured details.
// The HTTP layer renders it; the CLI prints Error().
type AppError struct {
	Code     ErrorCode              `json:"code"`
	Message  string                 `json:"message"`
	Details  map[string]interface{} `json:"details,omitempty"`
	Cause    error                  `json:"-"`
	HTTPCode int                    `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithCause attaches the underlying error
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// GetHTTPCode returns the explicit status, or the default for the code
func (e *AppError) GetHTTPCode() int {
	if e.HTTPCode != 0 {
		return e.HTTPCode
	}
	return statusFor(e.Code)
}

func (e *AppError) detail(kv ...interface{}) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]interface{}, len(kv)/2)
	}
	for i := 0; i+1 < len(kv); i += 2 {
		e.Details[fmt.Sprint(kv[i])] = kv[i+1]
	}
	return e
}

func statusFor(code ErrorCode) int {
	if status, ok := statusByCode[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// New creates an AppError with the default status for code
func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message, HTTPCode: statusFor(code)}
}

// Wrap creates an AppError around cause
func Wrap(cause error, code ErrorCode, message string) *AppError {
	return New(code, message).WithCause(cause)
}

// NotFound reports a missing resource, such as an unknown route
func NotFound(resource string, id interface{}) *AppError {
	return New(ErrCodeNotFound, resource+" not found").detail("resource", resource, "id", id)
}

// ValidationError reports a rejected request field
func ValidationError(field, reason string) *AppError {
	return New(ErrCodeValidation, fmt.Sprintf("validation failed for field '%s': %s", field, reason)).
		detail("field", field, "reason", reason)
}

// DatabaseError wraps a failed registry database operation
func DatabaseError(operation string, cause error) *AppError {
	return Wrap(cause, ErrCodeDatabaseQuery, fmt.Sprintf("database %s failed", operation)).
		detail("operation", operation)
}

// ConfigError reports an invalid configuration key
func ConfigError(key, reason string) *AppError {
	return New(ErrCodeConfigInvalid, fmt.Sprintf("configuration error for '%s': %s", key, reason)).
		detail("key", key, "reason", reason)
}

// RateLimitError reports a throttled client
func RateLimitError(resource, limit string) *AppError {
	return New(ErrCodeAPIRateLimit, fmt.Sprintf("rate limit exceeded for '%s': %s", resource, limit)).
		detail("resource", resource, "limit", limit)
}

// Is reports whether err wraps an AppError with code
func Is(err error, code ErrorCode) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr) && appErr.Code == code
}

// GetCode returns the AppError code in err, or ErrCodeInternal
func GetCode(err error) ErrorCode {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	return ErrCodeInternal
}

// GetHTTPCode returns the status for err, or 500 when it carries no AppError
func GetHTTPCode(err error) int {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.GetHTTPCode()
	}
	return http.StatusInternalServerError
}
