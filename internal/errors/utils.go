package errors

import (
	"errors"
)

// Wrap wraps an error with additional context, creating an AnalysisError if the input is not already one
func Wrap(err error, errType ErrorType, code, message string) *AnalysisError {
	if err == nil {
		return nil
	}

	var ae *AnalysisError
	if errors.As(err, &ae) {
		return &AnalysisError{
			Type:        errType,
			Code:        code,
			Message:     message,
			Cause:       ae,
			Context:     ae.Context,
			Component:   ae.Component,
			Path:        ae.Path,
			Recoverable: ae.Recoverable,
		}
	}

	return &AnalysisError{
		Type:        errType,
		Code:        code,
		Message:     message,
		Cause:       err,
		Recoverable: errType == ErrorTypeValidation || errType == ErrorTypeManifest,
	}
}

// WrapValidation wraps an error as a validation error
func WrapValidation(err error, code, message string) *AnalysisError {
	return Wrap(err, ErrorTypeValidation, code, message)
}

// WrapConfig wraps an error as a configuration error
func WrapConfig(err error, code, message string) *AnalysisError {
	wrapped := Wrap(err, ErrorTypeConfig, code, message)
	if wrapped != nil {
		wrapped.Recoverable = false
	}
	return wrapped
}

// FormatError formats an error for user display. The configuration field
// an AnalysisError refers to is appended when known.
func FormatError(err error) string {
	if err == nil {
		return ""
	}

	message := err.Error()
	if field, ok := GetErrorContext(err)["field"].(string); ok && field != "" {
		message += " (field: " + field + ")"
	}

	return message
}

// GetErrorContext extracts context information from an AnalysisError
func GetErrorContext(err error) map[string]interface{} {
	var ae *AnalysisError
	if !errors.As(err, &ae) {
		return nil
	}

	context := make(map[string]interface{})
	for k, v := range ae.Context {
		context[k] = v
	}
	if ae.Component != "" {
		context["component"] = ae.Component
	}
	if ae.Path != "" {
		context["path"] = ae.Path
	}

	return context
}
