// Package errors provides structured error types for the roomcal application.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across CLI and web UI
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures
//   - *_NOT_FOUND / MISSING_*: Required resources absent from the workbook
//   - NETWORK_* / TIMEOUT: Auxiliary-resource fetch failures
//   - INTERNAL_*: Unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeSheetNotFound, "no worksheet named %q", name)
//	if errors.Is(err, errors.ErrCodeSheetNotFound) {
//	    // Handle missing sheet
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeNetwork, origErr, "failed to fetch %s", url)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidMonth  Code = "INVALID_MONTH"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidTheme  Code = "INVALID_THEME"

	// Workbook input errors (fatal for the requested render)
	ErrCodeFileNotFound  Code = "FILE_NOT_FOUND"
	ErrCodeWorkbook      Code = "WORKBOOK_UNREADABLE"
	ErrCodeSheetNotFound Code = "SHEET_NOT_FOUND"
	ErrCodeMissingColumn Code = "MISSING_COLUMN"

	// Data-quality errors (readable sheet, unusable content)
	ErrCodeBadDate      Code = "BAD_DATE"
	ErrCodeNoUsableData Code = "NO_USABLE_DATA"

	// Auxiliary-resource errors (degrade gracefully; never abort a render)
	ErrCodeNetwork         Code = "NETWORK_ERROR"
	ErrCodeTimeout         Code = "TIMEOUT"
	ErrCodeFontUnavailable Code = "FONT_UNAVAILABLE"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// IsInputError reports whether err is a fatal input error: the workbook is
// unreadable, the sheet is missing, a required column is absent, or a
// required date cell could not be parsed.
func IsInputError(err error) bool {
	switch GetCode(err) {
	case ErrCodeFileNotFound, ErrCodeWorkbook, ErrCodeSheetNotFound, ErrCodeMissingColumn, ErrCodeBadDate:
		return true
	}
	return false
}

// IsDataQualityError reports whether err indicates a readable sheet that
// contained no usable booking rows.
func IsDataQualityError(err error) bool {
	return GetCode(err) == ErrCodeNoUsableData
}
