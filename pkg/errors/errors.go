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
	ErrUnknown       ErrorCode = "UNKNOWN"
	ErrInternal      ErrorCode = "INTERNAL"
	ErrInvalidInput  ErrorCode = "INVALID_INPUT"
	ErrNotFound      ErrorCode = "NOT_FOUND"
	ErrAlreadyExists ErrorCode = "ALREADY_EXISTS"
	ErrPermission    ErrorCode = "PERMISSION"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// Operator store errors
	ErrOperatorAccess  ErrorCode = "OPERATOR_ACCESS"
	ErrOperatorInvalid ErrorCode = "OPERATOR_INVALID"

	// Schema errors
	ErrSchemaLoad    ErrorCode = "SCHEMA_LOAD"
	ErrSchemaInvalid ErrorCode = "SCHEMA_INVALID"

	// Render errors
	ErrTemplateParse  ErrorCode = "TEMPLATE_PARSE"
	ErrTemplateRender ErrorCode = "TEMPLATE_RENDER"
	ErrSectionDecode  ErrorCode = "SECTION_DECODE"

	// FileSystem errors
	ErrFileNotFound ErrorCode = "FILE_NOT_FOUND"
	ErrFileAccess   ErrorCode = "FILE_ACCESS"
	ErrFileCreate   ErrorCode = "FILE_CREATE"
	ErrFileWrite    ErrorCode = "FILE_WRITE"
	ErrDirCreate    ErrorCode = "DIR_CREATE"
)

// NeosetupError represents a structured error with code and details
type NeosetupError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *NeosetupError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *NeosetupError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *NeosetupError) Is(target error) bool {
	var targetErr *NeosetupError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new NeosetupError with the given code and message
func New(code ErrorCode, message string) *NeosetupError {
	return &NeosetupError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new NeosetupError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *NeosetupError {
	return &NeosetupError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a NeosetupError
func Wrap(err error, code ErrorCode, message string) *NeosetupError {
	if err == nil {
		return nil
	}
	return &NeosetupError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *NeosetupError {
	if err == nil {
		return nil
	}
	return &NeosetupError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *NeosetupError) WithDetail(key string, value interface{}) *NeosetupError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *NeosetupError) WithDetails(details map[string]interface{}) *NeosetupError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var nerr *NeosetupError
	if errors.As(err, &nerr) {
		return nerr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a NeosetupError
func GetErrorCode(err error) ErrorCode {
	var nerr *NeosetupError
	if errors.As(err, &nerr) {
		return nerr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a NeosetupError
func GetErrorDetails(err error) map[string]interface{} {
	var nerr *NeosetupError
	if errors.As(err, &nerr) {
		return nerr.Details
	}
	return nil
}
