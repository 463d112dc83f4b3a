package errors

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrorType represents different categories of errors.
type ErrorType string

const (
	ErrorTypeValidation ErrorType = "validation"
	ErrorTypeIO         ErrorType = "io"
	ErrorTypeConfig     ErrorType = "config"
	ErrorTypeManifest   ErrorType = "manifest"
)

// AnalysisError is a structured error type with context.
type AnalysisError struct {
	Type        ErrorType
	Code        string
	Message     string
	Cause       error
	Context     map[string]interface{}
	Component   string
	Path        string
	Recoverable bool
}

// Error implements the error interface.
func (e *AnalysisError) Error() string {
	var parts []string

	if e.Code != "" {
		parts = append(parts, fmt.Sprintf("[%s]", e.Code))
	}

	if e.Component != "" {
		parts = append(parts, "component:"+e.Component)
	}

	if e.Path != "" {
		parts = append(parts, e.Path)
	}

	parts = append(parts, e.Message)

	result := strings.Join(parts, " ")

	if e.Cause != nil {
		result += fmt.Sprintf(": %v", e.Cause)
	}

	return result
}

// Unwrap returns the underlying cause error.
func (e *AnalysisError) Unwrap() error {
	return e.Cause
}

// Is implements error comparison on type and code.
func (e *AnalysisError) Is(target error) bool {
	var t *AnalysisError
	if errors.As(target, &t) {
		return e.Type == t.Type && e.Code == t.Code
	}

	return false
}

// WithContext adds context information to the error.
func (e *AnalysisError) WithContext(key string, value interface{}) *AnalysisError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value

	return e
}

// WithPath attaches the file or directory the error refers to.
func (e *AnalysisError) WithPath(path string) *AnalysisError {
	e.Path = path

	return e
}

// WithComponent adds component context.
func (e *AnalysisError) WithComponent(component string) *AnalysisError {
	e.Component = component

	return e
}

// NewValidationError creates a validation error.
func NewValidationError(code, message string) *AnalysisError {
	return &AnalysisError{
		Type:        ErrorTypeValidation,
		Code:        code,
		Message:     message,
		Recoverable: true,
	}
}

// NewIOError creates an I/O error. I/O errors are fatal unless the caller
// marks them otherwise with NewFileError.
func NewIOError(code, message string, cause error) *AnalysisError {
	return &AnalysisError{
		Type:        ErrorTypeIO,
		Code:        code,
		Message:     message,
		Cause:       cause,
		Recoverable: false,
	}
}

// NewFileError creates a recoverable per-file I/O error: the file is skipped
// and the walk continues.
func NewFileError(code, path string, cause error) *AnalysisError {
	return &AnalysisError{
		Type:        ErrorTypeIO,
		Code:        code,
		Message:     "skipping file",
		Cause:       cause,
		Path:        path,
		Recoverable: true,
	}
}

// NewManifestError creates a recoverable manifest decoding error.
func NewManifestError(path string, cause error) *AnalysisError {
	return &AnalysisError{
		Type:        ErrorTypeManifest,
		Code:        ErrCodeManifestInvalid,
		Message:     "manifest could not be decoded",
		Cause:       cause,
		Path:        path,
		Recoverable: true,
	}
}

// NewConfigError creates a configuration error.
func NewConfigError(code, message string) *AnalysisError {
	return &AnalysisError{
		Type:        ErrorTypeConfig,
		Code:        code,
		Message:     message,
		Recoverable: false,
	}
}

// IsRecoverable checks if an error is recoverable.
func IsRecoverable(err error) bool {
	var ae *AnalysisError
	if errors.As(err, &ae) {
		return ae.Recoverable
	}

	return false
}

// HasCode reports whether err is an AnalysisError carrying code.
func HasCode(err error, code string) bool {
	var ae *AnalysisError
	if errors.As(err, &ae) {
		return ae.Code == code
	}

	return false
}

// ErrorHandler provides centralized error handling.
type ErrorHandler struct {
	logger Logger
}

// Logger interface for error logging.
type Logger interface {
	Debug(ctx context.Context, msg string, fields ...interface{})
	Error(ctx context.Context, err error, msg string, fields ...interface{})
	Warn(ctx context.Context, err error, msg string, fields ...interface{})
}

// NewErrorHandler creates a new error handler.
func NewErrorHandler(logger Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// Handle logs an error at a level matching its category. Recoverable
// per-file problems are routine during a walk and stay at debug level.
func (h *ErrorHandler) Handle(ctx context.Context, err error) {
	if err == nil || h.logger == nil {
		return
	}

	var ae *AnalysisError
	if !errors.As(err, &ae) {
		h.logger.Error(ctx, err, "Unhandled error occurred")
		return
	}

	switch {
	case ae.Recoverable && (ae.Type == ErrorTypeIO || ae.Type == ErrorTypeManifest):
		h.logger.Debug(ctx, "Skipped unreadable input",
			"code", ae.Code,
			"path", ae.Path,
			"error", ae.Error())
	case ae.Type == ErrorTypeValidation:
		h.logger.Warn(ctx, ae, "Validation error occurred",
			"type", ae.Type,
			"code", ae.Code,
			"component", ae.Component)
	default:
		h.logger.Error(ctx, ae, "Error occurred",
			"type", ae.Type,
			"code", ae.Code,
			"component", ae.Component,
			"path", ae.Path)
	}
}

// Common error codes.
const (
	ErrCodeRootUnreadable  = "ERR_ROOT_UNREADABLE"
	ErrCodeFileTooLarge    = "ERR_FILE_TOO_LARGE"
	ErrCodeFileUnreadable  = "ERR_FILE_UNREADABLE"
	ErrCodeFileNotFound    = "ERR_FILE_NOT_FOUND"
	ErrCodeManifestInvalid = "ERR_MANIFEST_INVALID"
	ErrCodeConfigInvalid   = "ERR_INVALID_CONFIG"
	ErrCodeInvalidPath     = "ERR_INVALID_PATH"
	ErrCodeInternalError   = "ERR_INTERNAL"
)

// ErrInvalidPath creates a path validation error. reason completes the
// sentence that starts with the path, as in "/x is a directory".
func ErrInvalidPath(path, reason string) *AnalysisError {
	return NewValidationError(ErrCodeInvalidPath, reason).WithPath(path)
}

// ErrRootUnreadable creates the fatal error returned when an analysis root
// cannot be opened.
func ErrRootUnreadable(path string, cause error) *AnalysisError {
	return NewIOError(ErrCodeRootUnreadable, "cannot open project root", cause).WithPath(path)
}
