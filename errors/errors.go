package errors

import (
	"fmt"
	"net/http"
)

// AppError is the application error type returned by use cases and mapped to HTTP by handlers
type AppError struct {
	Raw      error
	HTTPCode int
	Code     ErrorCode
	Message  string
}

// Error implements error interface
func (e AppError) Error() string {
	if e.Raw != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code.String(), e.Message, e.Raw)
	}
	return fmt.Sprintf("[%s] %s", e.Code.String(), e.Message)
}

// Unwrap exposes the underlying error
func (e AppError) Unwrap() error {
	return e.Raw
}

// IsUpstream reports whether the error came from an external dependency.
// Only upstream errors expose the underlying message to callers.
func (e AppError) IsUpstream() bool {
	switch e.Code {
	case ErrorCode_INTEGRATION_COMPLETION_FAILED, ErrorCode_INTEGRATION_MAIL_FAILED:
		return true
	}
	return false
}

// Details returns the diagnostic message sent alongside upstream errors
func (e AppError) Details() string {
	if e.Raw == nil || !e.IsUpstream() {
		return ""
	}
	return e.Raw.Error()
}

// General Errors
func ErrInternal(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_INTERNAL,
		Message:  "Internal server error",
	}
}

// ErrValidation is the caller's fault and is never retried
func ErrValidation(message string) AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_INVALID_ARGUMENT,
		Message:  message,
	}
}

func ErrInvalidPayload(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_INVALID_PAYLOAD,
		Message:  "Invalid request body",
	}
}

// ErrConfiguration signals a deployment problem, e.g. a missing credential
func ErrConfiguration(message string) AppError {
	return AppError{
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_CONFIGURATION,
		Message:  message,
	}
}

func ErrEndpointNotFound() AppError {
	return AppError{
		HTTPCode: http.StatusNotFound,
		Code:     ErrorCode_NOT_FOUND,
		Message:  "Endpoint not found",
	}
}

func ErrTooManyRequests() AppError {
	return AppError{
		HTTPCode: http.StatusTooManyRequests,
		Code:     ErrorCode_TOO_MANY_REQUESTS,
		Message:  "Too many requests from this IP, please try again later.",
	}
}

func ErrCORSRejected(origin string) AppError {
	return AppError{
		Raw:      fmt.Errorf("origin %q is not allowed", origin),
		HTTPCode: http.StatusForbidden,
		Code:     ErrorCode_FORBIDDEN,
		Message:  "Not allowed by CORS",
	}
}

// Integration Errors
func ErrSummaryFailed(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_INTEGRATION_COMPLETION_FAILED,
		Message:  "Failed to generate summary",
	}
}

func ErrShareFailed(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_INTEGRATION_MAIL_FAILED,
		Message:  "Failed to share summary via email",
	}
}
