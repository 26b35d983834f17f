package errors

import (
	"fmt"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrTypeFileNotFound  ErrorType = "FILE_NOT_FOUND"
	ErrTypeMissingColumn ErrorType = "MISSING_COLUMN"
	ErrTypeParsing       ErrorType = "PARSE_FAILURE"
	ErrTypeStorage       ErrorType = "STORAGE"
	ErrTypeValidation    ErrorType = "VALIDATION"
	ErrTypeConfig        ErrorType = "CONFIG"
	ErrTypeUnexpected    ErrorType = "UNEXPECTED"
)

// Sentinels for errors.Is. An *AppError matches a sentinel of the same type.
var (
	ErrFileNotFound  = &AppError{Type: ErrTypeFileNotFound, Message: "file not found"}
	ErrMissingColumn = &AppError{Type: ErrTypeMissingColumn, Message: "missing column"}
	ErrParseFailure  = &AppError{Type: ErrTypeParsing, Message: "parse failure"}
	ErrStorage       = &AppError{Type: ErrTypeStorage, Message: "storage failure"}
	ErrConfig        = &AppError{Type: ErrTypeConfig, Message: "invalid configuration"}
	ErrUnexpected    = &AppError{Type: ErrTypeUnexpected, Message: "unexpected error"}
)

// AppError represents an application-specific error
type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap allows errors.Is and errors.As to work with AppError
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an AppError of the same type.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Type == e.Type
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewAppError creates a new application error
func NewAppError(errType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// NewFileNotFoundError reports a missing input file.
func NewFileNotFoundError(path string, cause error) *AppError {
	return NewAppError(ErrTypeFileNotFound, fmt.Sprintf("%s not found", path), cause).
		WithContext("path", path)
}

// NewMissingColumnError reports columns absent from a sheet header.
func NewMissingColumnError(source string, columns []string) *AppError {
	return NewAppError(ErrTypeMissingColumn, fmt.Sprintf("%s is missing columns %q", source, columns), nil).
		WithContext("source", source).
		WithContext("columns", columns)
}

// NewParsingError creates a parsing-related error
func NewParsingError(message string, cause error) *AppError {
	return NewAppError(ErrTypeParsing, message, cause)
}

// NewStorageError creates a storage-related error
func NewStorageError(message string, cause error) *AppError {
	return NewAppError(ErrTypeStorage, message, cause)
}

// NewAppValidationError creates a validation error for AppError type
func NewAppValidationError(message string) *AppError {
	return NewAppError(ErrTypeValidation, message, nil)
}

// NewConfigError creates a configuration error
func NewConfigError(message string, cause error) *AppError {
	return NewAppError(ErrTypeConfig, message, cause)
}

// NewUnexpectedError wraps an error no other type describes.
func NewUnexpectedError(message string, cause error) *AppError {
	return NewAppError(ErrTypeUnexpected, message, cause)
}
