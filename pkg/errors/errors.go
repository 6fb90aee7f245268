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

	// Action validation errors
	ErrInvalidRoot      ErrorCode = "INVALID_ROOT"
	ErrInvalidFormat    ErrorCode = "INVALID_FORMAT"
	ErrMalformedLiteral ErrorCode = "MALFORMED_LITERAL"
	ErrUnsafeCommand    ErrorCode = "UNSAFE_COMMAND"

	// Execution errors
	ErrPrivilegeRequired ErrorCode = "PRIVILEGE_REQUIRED"
	ErrNotFound          ErrorCode = "NOT_FOUND"
	ErrTimeout           ErrorCode = "TIMEOUT"
	ErrBackendFault      ErrorCode = "BACKEND_FAULT"
	ErrCommandFailed     ErrorCode = "COMMAND_FAILED"
	ErrKeyHasSubkeys     ErrorCode = "KEY_HAS_SUBKEYS"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"

	// Catalog errors
	ErrCatalogLoad      ErrorCode = "CATALOG_LOAD"
	ErrActionNotFound   ErrorCode = "ACTION_NOT_FOUND"
	ErrUnknownBackend   ErrorCode = "UNKNOWN_BACKEND"
	ErrTempFileCreate   ErrorCode = "TEMP_FILE_CREATE"
	ErrStoreUnavailable ErrorCode = "STORE_UNAVAILABLE"
)

// WinregiError represents a structured error with code and details
type WinregiError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *WinregiError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *WinregiError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *WinregiError) Is(target error) bool {
	var targetErr *WinregiError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new WinregiError with the given code and message
func New(code ErrorCode, message string) *WinregiError {
	return &WinregiError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new WinregiError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *WinregiError {
	return &WinregiError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a WinregiError.
// A nil err yields a nil *WinregiError; do not return it through an error
// interface without checking first.
func Wrap(err error, code ErrorCode, message string) *WinregiError {
	if err == nil {
		return nil
	}
	return &WinregiError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *WinregiError {
	if err == nil {
		return nil
	}
	return &WinregiError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *WinregiError) WithDetail(key string, value interface{}) *WinregiError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *WinregiError) WithDetails(details map[string]interface{}) *WinregiError {
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
	var winregiErr *WinregiError
	if errors.As(err, &winregiErr) {
		return winregiErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a WinregiError
func GetErrorCode(err error) ErrorCode {
	var winregiErr *WinregiError
	if errors.As(err, &winregiErr) {
		return winregiErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a WinregiError
func GetErrorDetails(err error) map[string]interface{} {
	var winregiErr *WinregiError
	if errors.As(err, &winregiErr) {
		return winregiErr.Details
	}
	return nil
}
