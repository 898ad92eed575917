package domain

import "fmt"

// ErrorType classifies a failure for transport mapping and logging.
type ErrorType string

const (
	// ConfigError represents a missing or invalid configuration value.
	// Not retryable; surfaces before any network call is made.
	ConfigError ErrorType = "CONFIG_ERROR"
	// AuthError represents a credential exchange rejected by the identity provider.
	AuthError ErrorType = "AUTH_ERROR"
	// NotFoundError represents a requested course that does not exist upstream.
	NotFoundError ErrorType = "NOT_FOUND_ERROR"
	// UpstreamError represents any other non-success response or network
	// failure from the Classroom API.
	UpstreamError ErrorType = "UPSTREAM_ERROR"
	// ValidationError represents invalid caller input.
	ValidationError ErrorType = "VALIDATION_ERROR"
	// InternalError represents unexpected internal failures.
	InternalError ErrorType = "INTERNAL_ERROR"
)

// Error is a classified error with diagnostic context.
type Error struct {
	Type    ErrorType              `json:"type"`
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
	Cause   error                  `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause error.
func (e *Error) Unwrap() error {
	return e.Cause
}

// NewConfigError creates a configuration error. Details should name the
// missing or invalid fields.
func NewConfigError(code, message string, details map[string]interface{}) *Error {
	return &Error{
		Type:    ConfigError,
		Code:    code,
		Message: message,
		Details: details,
	}
}

// NewAuthError creates a credential exchange error.
func NewAuthError(code, message string, cause error) *Error {
	return &Error{
		Type:    AuthError,
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// NewNotFoundError creates a not found error.
func NewNotFoundError(code, message string) *Error {
	return &Error{
		Type:    NotFoundError,
		Code:    code,
		Message: message,
	}
}

// NewUpstreamError creates an upstream failure error carrying the upstream
// HTTP status when one was received.
func NewUpstreamError(code, message string, status int, cause error) *Error {
	var details map[string]interface{}
	if status != 0 {
		details = map[string]interface{}{"upstream_status": status}
	}
	return &Error{
		Type:    UpstreamError,
		Code:    code,
		Message: message,
		Details: details,
		Cause:   cause,
	}
}

// NewValidationError creates a validation error.
func NewValidationError(code, message string, details map[string]interface{}) *Error {
	return &Error{
		Type:    ValidationError,
		Code:    code,
		Message: message,
		Details: details,
	}
}

// NewInternalError creates an internal error.
func NewInternalError(code, message string, cause error) *Error {
	return &Error{
		Type:    InternalError,
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// TypeOf returns the error type of err, or InternalError for unclassified errors.
func TypeOf(err error) ErrorType {
	if derr, ok := err.(*Error); ok {
		return derr.Type
	}
	return InternalError
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	return TypeOf(err) == NotFoundError
}

// IsConfig reports whether err is a ConfigError.
func IsConfig(err error) bool {
	return TypeOf(err) == ConfigError
}

// IsAuth reports whether err is an AuthError.
func IsAuth(err error) bool {
	return TypeOf(err) == AuthError
}
