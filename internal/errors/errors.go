// Package errors defines stable error codes for the codeatlas pipeline.
package errors

import "fmt"

// ErrorCode represents stable error codes for all failure modes
type ErrorCode string

const (
	// ParseFailed indicates a source file could not be parsed
	ParseFailed ErrorCode = "PARSE_FAILED"
	// FileUnreadable indicates a source file could not be read
	FileUnreadable ErrorCode = "FILE_UNREADABLE"
	// UnsupportedLanguage indicates no analyzer exists for a language tag
	UnsupportedLanguage ErrorCode = "UNSUPPORTED_LANGUAGE"
	// GraphInvariant indicates a graph construction contract was violated
	GraphInvariant ErrorCode = "GRAPH_INVARIANT"
	// ConfigInvalid indicates invalid configuration
	ConfigInvalid ErrorCode = "CONFIG_INVALID"
	// InternalError indicates unexpected error
	InternalError ErrorCode = "INTERNAL_ERROR"
)

// AtlasError represents a codeatlas error with a stable code and optional cause.
type AtlasError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Details any       `json:"details,omitempty"`
	cause   error
}

// New creates a new AtlasError.
func New(code ErrorCode, message string, cause error) *AtlasError {
	return &AtlasError{
		Code:    code,
		Message: message,
		cause:   cause,
	}
}

// Error implements the error interface
func (e *AtlasError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *AtlasError) Unwrap() error {
	return e.cause
}

// WithDetails adds details to the error
func (e *AtlasError) WithDetails(details any) *AtlasError {
	e.Details = details
	return e
}
