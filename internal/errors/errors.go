// Package errors provides typed error definitions for ghup.
// Every failure a workflow step can surface is identified by a code so
// the CLI layer can map it to user output and an exit status without
// string matching.
package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique identifier for different error types
type ErrorCode string

const (
	// Configuration errors
	ErrConfigNotFound    ErrorCode = "CONFIG_NOT_FOUND"
	ErrConfigMissingKeys ErrorCode = "CONFIG_MISSING_KEYS"
	ErrConfigParse       ErrorCode = "CONFIG_PARSE"

	// External tool errors
	ErrToolMissing  ErrorCode = "TOOL_MISSING"
	ErrToolFailed   ErrorCode = "TOOL_FAILED"
	ErrToolTimedOut ErrorCode = "TOOL_TIMEOUT"

	// Git errors
	ErrGitRepoNotFound ErrorCode = "GIT_REPO_NOT_FOUND"
	ErrTagExists       ErrorCode = "TAG_EXISTS"

	// Docs errors
	ErrDocBuildFailed ErrorCode = "DOC_BUILD_FAILED"
	ErrDocsNotFound   ErrorCode = "DOCS_NOT_FOUND"

	// Network/API errors
	ErrAPICall ErrorCode = "API_CALL"

	// Export errors
	ErrExportFailed ErrorCode = "EXPORT_FAILED"

	// Input errors
	ErrInvalidInput ErrorCode = "INVALID_INPUT"

	// ErrNothingToCommit is raised only when the project config sets
	// on_clean = "fail"; the default policy treats a clean tree as success.
	ErrNothingToCommit ErrorCode = "NOTHING_TO_COMMIT"
)

// GhupError represents a structured error with additional context
type GhupError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Details string                 `json:"details,omitempty"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"context,omitempty"`
}

// Error implements the error interface
func (e *GhupError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause error
func (e *GhupError) Unwrap() error {
	return e.Cause
}

// WithContext adds context information to the error
func (e *GhupError) WithContext(key string, value interface{}) *GhupError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// WithCause adds the underlying cause error
func (e *GhupError) WithCause(cause error) *GhupError {
	e.Cause = cause
	return e
}

// New creates a new GhupError
func New(code ErrorCode, message string) *GhupError {
	return &GhupError{
		Code:    code,
		Message: message,
	}
}

// NewWithDetails creates a new GhupError with details
func NewWithDetails(code ErrorCode, message, details string) *GhupError {
	return &GhupError{
		Code:    code,
		Message: message,
		Details: details,
	}
}

// Wrap creates a new GhupError that wraps an existing error
func Wrap(code ErrorCode, message string, cause error) *GhupError {
	return &GhupError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WrapWithDetails creates a new GhupError with details that wraps an existing error
func WrapWithDetails(code ErrorCode, message, details string, cause error) *GhupError {
	return &GhupError{
		Code:    code,
		Message: message,
		Details: details,
		Cause:   cause,
	}
}

// GetCode extracts the error code from an error, walking the wrap chain
func GetCode(err error) ErrorCode {
	var ge *GhupError
	if errors.As(err, &ge) {
		return ge.Code
	}
	return ""
}

// HasCode checks if an error has a specific error code
func HasCode(err error, code ErrorCode) bool {
	return GetCode(err) == code
}

// GetContext extracts a context value from an error, if present
func GetContext(err error, key string) (interface{}, bool) {
	var ge *GhupError
	if errors.As(err, &ge) && ge.Context != nil {
		v, ok := ge.Context[key]
		return v, ok
	}
	return nil, false
}
