package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrUsage        ErrorCode = "USAGE"

	// Mask errors
	ErrNullMask    ErrorCode = "NULL_MASK"
	ErrOutOfMemory ErrorCode = "OUT_OF_MEMORY"

	// Source errors
	ErrSourceOpen  ErrorCode = "SOURCE_OPEN"
	ErrSourceMap   ErrorCode = "SOURCE_MAP"
	ErrAlreadyOpen ErrorCode = "ALREADY_OPEN"
	ErrNotOpen     ErrorCode = "NOT_OPEN"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// Output errors
	ErrOutputWrite ErrorCode = "OUTPUT_WRITE"
)

// LogReaderError represents a structured error with code and details
type LogReaderError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *LogReaderError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *LogReaderError) Unwrap() error {
	return e.Wrapped
}

// Is reports whether target is a LogReaderError with the same code
func (e *LogReaderError) Is(target error) bool {
	var targetErr *LogReaderError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new LogReaderError with the given code and message
func New(code ErrorCode, message string) *LogReaderError {
	return &LogReaderError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new LogReaderError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *LogReaderError {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap wraps an existing error with a LogReaderError. Returns nil for a nil err.
func Wrap(err error, code ErrorCode, message string) *LogReaderError {
	if err == nil {
		return nil
	}
	e := New(code, message)
	e.Wrapped = err
	return e
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *LogReaderError {
	if err == nil {
		return nil
	}
	return Wrap(err, code, fmt.Sprintf(format, args...))
}

// WithDetail adds a detail to the error
func (e *LogReaderError) WithDetail(key string, value interface{}) *LogReaderError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var lrErr *LogReaderError
	if errors.As(err, &lrErr) {
		return lrErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a LogReaderError
func GetErrorCode(err error) ErrorCode {
	var lrErr *LogReaderError
	if errors.As(err, &lrErr) {
		return lrErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a LogReaderError
func GetErrorDetails(err error) map[string]interface{} {
	var lrErr *LogReaderError
	if errors.As(err, &lrErr) {
		return lrErr.Details
	}
	return nil
}
