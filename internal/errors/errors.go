// Package errors defines the portal's typed application errors and their
// mapping onto the HTTP status codes surfaced at the boundary.
package errors

import (
	"errors"
	"net/http"
)

// ErrorCode names an error category. The string value is what API clients
// see in the "code" field of an error body.
type ErrorCode string

// Error categories.
const (
	ErrCodeValidation   ErrorCode = "validation"
	ErrCodeUnauthorized ErrorCode = "unauthorized"
	ErrCodeForbidden    ErrorCode = "forbidden"
	ErrCodeNotFound     ErrorCode = "not_found"
	ErrCodeConflict     ErrorCode = "conflict"
	ErrCodeInternal     ErrorCode = "internal"
)

var statusByCode = map[ErrorCode]int{
	ErrCodeValidation:   http.StatusBadRequest,
	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,
	ErrCodeNotFound:     http.StatusNotFound,
	ErrCodeConflict:     http.StatusConflict,
	ErrCodeInternal:     http.StatusInternalServerError,
}

// StatusFor returns the HTTP status for code. Unknown codes are 500.
func StatusFor(code ErrorCode) int {
	if status, ok := statusByCode[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// AppError is a categorized error. Message is safe to show to the caller;
// Cause is kept for logs and errors.Is/As. Field names the offending input
// when the error concerns a single form field.
type AppError struct {
	Code    ErrorCode
	Message string
	Cause   error
	Field   string
}

func (e *AppError) Error() string {
	if e.Cause == nil {
		return e.Message
	}
	return e.Message + ": " + e.Cause.Error()
}

func (e *AppError) Unwrap() error { return e.Cause }

// HTTPStatus is StatusFor(e.Code).
func (e *AppError) HTTPStatus() int { return StatusFor(e.Code) }

func newError(code ErrorCode, field, message string) *AppError {
	return &AppError{Code: code, Message: message, Field: field}
}

func NotFound(message string) *AppError     { return newError(ErrCodeNotFound, "", message) }
func Conflict(message string) *AppError     { return newError(ErrCodeConflict, "", message) }
func Validation(message string) *AppError   { return newError(ErrCodeValidation, "", message) }
func Unauthorized(message string) *AppError { return newError(ErrCodeUnauthorized, "", message) }
func Forbidden(message string) *AppError    { return newError(ErrCodeForbidden, "", message) }
func Internal(message string) *AppError     { return newError(ErrCodeInternal, "", message) }

// ValidationField reports invalid input in a named form field.
func ValidationField(field, message string) *AppError {
	return newError(ErrCodeValidation, field, message)
}

// ConflictField reports a uniqueness clash on a named field, such as a
// registered email.
func ConflictField(field, message string) *AppError {
	return newError(ErrCodeConflict, field, message)
}

// Wrap attaches code and message to err. A nil err stays nil.
func Wrap(err error, code ErrorCode, message string) *AppError {
	if err == nil {
		return nil
	}
	e := newError(code, "", message)
	e.Cause = err
	return e
}

func asAppError(err error) (*AppError, bool) {
	var appErr *AppError
	ok := errors.As(err, &appErr)
	return appErr, ok
}

// GetCode returns the code of the first AppError in err's chain, or "".
func GetCode(err error) ErrorCode {
	if appErr, ok := asAppError(err); ok {
		return appErr.Code
	}
	return ""
}

// GetField returns the field of the first AppError in err's chain, or "".
func GetField(err error) string {
	if appErr, ok := asAppError(err); ok {
		return appErr.Field
	}
	return ""
}

func IsNotFound(err error) bool   { return GetCode(err) == ErrCodeNotFound }
func IsConflict(err error) bool   { return GetCode(err) == ErrCodeConflict }
func IsValidation(err error) bool { return GetCode(err) == ErrCodeValidation }
func IsInternal(err error) bool   { return GetCode(err) == ErrCodeInternal }
