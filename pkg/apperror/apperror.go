package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is an application error carrying the HTTP status it maps to.
type Error struct {
	Code    int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Validation reports malformed or incomplete input (400)
func Validation(format string, args ...interface{}) *Error {
	return &Error{Code: http.StatusBadRequest, Message: fmt.Sprintf(format, args...)}
}

// NotFound reports a missing referenced entity (404)
func NotFound(format string, args ...interface{}) *Error {
	return &Error{Code: http.StatusNotFound, Message: fmt.Sprintf(format, args...)}
}

// Conflict reports an illegal state transition (409)
func Conflict(format string, args ...interface{}) *Error {
	return &Error{Code: http.StatusConflict, Message: fmt.Sprintf(format, args...)}
}

// Persistence wraps an underlying store failure (500)
func Persistence(err error, message string) *Error {
	return &Error{Code: http.StatusInternalServerError, Message: message, Err: err}
}

// StatusOf maps err to an HTTP status, defaulting to 500
func StatusOf(err error) int {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return http.StatusInternalServerError
}

func isCode(err error, code int) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.Code == code
}

func IsValidation(err error) bool { return isCode(err, http.StatusBadRequest) }
func IsNotFound(err error) bool   { return isCode(err, http.StatusNotFound) }
func IsConflict(err error) bool   { return isCode(err, http.StatusConflict) }
