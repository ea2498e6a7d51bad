package errors

import (
	stderrors "errors"
	"fmt"
)

// AppError represents a structured application error
type AppError struct {
	Code    string
	Message string
	Path    string
	Cause   error
}

func (e *AppError) Error() string {
	msg := e.Message
	if e.Path != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.Path)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return &AppError{
			Code:    appErr.Code,
			Message: message,
			Cause:   err,
		}
	}
	return &AppError{
		Code:    CodeInternalError,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted additional context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// WithCode adds an error code to an existing error
func WithCode(code string, err error) error {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*AppError); ok {
		return &AppError{
			Code:    code,
			Message: appErr.Message,
			Path:    appErr.Path,
			Cause:   appErr.Cause,
		}
	}
	return &AppError{
		Code:    code,
		Message: err.Error(),
		Cause:   err,
	}
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr)
}

// GetCode returns the code of the outermost AppError in the chain, or "UNKNOWN"
func GetCode(err error) string {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	return "UNKNOWN"
}

// HasCode reports whether any AppError in the chain carries code
func HasCode(err error, code string) bool {
	for err != nil {
		if appErr, ok := err.(*AppError); ok && appErr.Code == code {
			return true
		}
		err = stderrors.Unwrap(err)
	}
	return false
}

// Predefined error codes
const (
	CodeConfigInvalid        = "CONFIG_INVALID"
	CodeDatabaseError        = "DATABASE_ERROR"
	CodeNotFound             = "NOT_FOUND"
	CodeInternalError        = "INTERNAL_ERROR"
	CodeInvalidInput         = "INVALID_INPUT"
	CodeFileNotReadable      = "FILE_NOT_READABLE"
	CodeMalformedRow         = "MALFORMED_ROW"
	CodeEmptyResult          = "EMPTY_RESULT"
	CodeUnsupportedExtension = "UNSUPPORTED_EXTENSION"
	CodeWriteFailed          = "WRITE_FAILED"
)

// Common error constructors
func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}

func DatabaseError(message string, cause error) *AppError {
	return &AppError{Code: CodeDatabaseError, Message: message, Cause: cause}
}

func NotFound(resource string) *AppError {
	return New(CodeNotFound, fmt.Sprintf("%s not found", resource))
}

func InternalError(message string) *AppError {
	return New(CodeInternalError, message)
}

func InvalidInput(message string) *AppError {
	return New(CodeInvalidInput, message)
}

// FileNotReadable reports an input that could not be opened or decoded
func FileNotReadable(path string, cause error) *AppError {
	return &AppError{Code: CodeFileNotReadable, Message: "cannot read input file", Path: path, Cause: cause}
}

// MalformedRow reports a row that was sanitized rather than rejected
func MalformedRow(row int, reason string) *AppError {
	return New(CodeMalformedRow, fmt.Sprintf("row %d: %s", row, reason))
}

// EmptyResult reports that every row was filtered out
func EmptyResult(path string) *AppError {
	return &AppError{Code: CodeEmptyResult, Message: "no rows left after cleaning", Path: path}
}

// UnsupportedExtension rejects an input before any I/O happens
func UnsupportedExtension(path, want string) *AppError {
	return &AppError{
		Code:    CodeUnsupportedExtension,
		Message: fmt.Sprintf("input must have a %s extension", want),
		Path:    path,
	}
}

// WriteFailed reports an output artifact that could not be written
func WriteFailed(path string, cause error) *AppError {
	return &AppError{Code: CodeWriteFailed, Message: "cannot write output", Path: path, Cause: cause}
}
