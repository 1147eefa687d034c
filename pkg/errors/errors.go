package errors

import (
	"errors"
	"fmt"
)

// ErrorCode is a stable identifier for a failure category
type ErrorCode string

const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrFileAccess   ErrorCode = "FILE_ACCESS"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// Preparation errors
	ErrPackageManagerNotFound ErrorCode = "PACKAGE_MANAGER_NOT_FOUND"
	ErrCommandNotFound        ErrorCode = "COMMAND_NOT_FOUND"
	ErrCommandFailed          ErrorCode = "COMMAND_FAILED"
	ErrStubCreate             ErrorCode = "STUB_CREATE"

	// Mirror errors
	ErrMirrorSourceMissing ErrorCode = "MIRROR_SOURCE_MISSING"
)

// PackdepsError is a structured error with a code and optional details
type PackdepsError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *PackdepsError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *PackdepsError) Unwrap() error {
	return e.Wrapped
}

// Is reports whether target is a PackdepsError with the same code
func (e *PackdepsError) Is(target error) bool {
	var targetErr *PackdepsError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a PackdepsError with the given code and message
func New(code ErrorCode, message string) *PackdepsError {
	return &PackdepsError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a PackdepsError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *PackdepsError {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap wraps err with a code and message. Returns nil if err is nil.
func Wrap(err error, code ErrorCode, message string) *PackdepsError {
	if err == nil {
		return nil
	}
	e := New(code, message)
	e.Wrapped = err
	return e
}

// Wrapf wraps err with a formatted message. Returns nil if err is nil.
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *PackdepsError {
	if err == nil {
		return nil
	}
	return Wrap(err, code, fmt.Sprintf(format, args...))
}

// WithDetail adds a detail to the error
func (e *PackdepsError) WithDetail(key string, value interface{}) *PackdepsError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if any error in the chain carries code
func IsErrorCode(err error, code ErrorCode) bool {
	var pErr *PackdepsError
	if errors.As(err, &pErr) {
		return pErr.Code == code
	}
	return false
}

// GetErrorCode returns the code of the first PackdepsError in the chain,
// or ErrUnknown
func GetErrorCode(err error) ErrorCode {
	var pErr *PackdepsError
	if errors.As(err, &pErr) {
		return pErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details of the first PackdepsError in the chain
func GetErrorDetails(err error) map[string]interface{} {
	var pErr *PackdepsError
	if errors.As(err, &pErr) {
		return pErr.Details
	}
	return nil
}
