// internal/core/errors.go
package core

import "fmt"

// Error represents a structured error with code and optional cause.
type Error struct {
	Code    string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is matching by code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// WrapError creates a new error with the same code but with a cause.
func WrapError(base *Error, cause error) *Error {
	return &Error{
		Code:    base.Code,
		Message: base.Message,
		Cause:   cause,
	}
}

// ValidationError creates a VALIDATION_FAILED error with a specific message.
func ValidationError(msg string) *Error {
	return &Error{Code: ErrValidation.Code, Message: msg}
}

// Predefined errors
var (
	// Provider errors: contained within the fetcher, never user-facing.
	ErrProviderFailed     = &Error{Code: "PROVIDER_FAILED", Message: "provider request failed"}
	ErrAllProvidersFailed = &Error{Code: "ALL_PROVIDERS_FAILED", Message: "all quote providers failed"}
	ErrRateFetchFailed    = &Error{Code: "RATE_FETCH_FAILED", Message: "exchange rate fetch failed"}

	// User-facing errors: surfaced directly at the API boundary.
	ErrValidation   = &Error{Code: "VALIDATION_FAILED", Message: "invalid input"}
	ErrDataNotReady = &Error{Code: "DATA_NOT_READY", Message: "asset data not loaded yet"}

	// Config errors
	ErrConfigInvalid = &Error{Code: "CONFIG_INVALID", Message: "configuration invalid"}
)
