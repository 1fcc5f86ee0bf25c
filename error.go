package normdoc

import (
	"errors"
	"fmt"
)

// Application error codes.
//
// The code is the stable error-kind discriminator reported to API callers.
const (
	EINVALID  = "invalid"   // caller input missing or malformed
	ENOTFOUND = "not_found" // unknown resource or route
	EFETCH    = "fetch"     // upstream transport failure after retries
	EEXTRACT  = "extract"   // markup could not be turned into a record
	EINTERNAL = "internal"  // anything unclassified
)

// Error represents an application-specific error.
type Error struct {
	// Code is one of the E* constants.
	Code string

	// Message is a human-readable description of the problem.
	Message string

	// URL is the upstream document or listing URL the error relates to, if any.
	URL string

	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.URL != "" {
		return fmt.Sprintf("%s (url=%s)", e.Message, e.URL)
	}
	return e.Message
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// WithURL attaches the related URL to the error and returns it.
func (e *Error) WithURL(url string) *Error {
	e.URL = url
	return e
}

// Errorf is a helper function to return an Error with a given code and
// formatted message. A %w verb in format records the wrapped cause.
func Errorf(code string, format string, args ...any) *Error {
	err := fmt.Errorf(format, args...)
	return &Error{
		Code:    code,
		Message: err.Error(),
		Err:     errors.Unwrap(err),
	}
}

// ErrorCode unwraps an application error and returns its code.
// Non-application errors always return EINTERNAL.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors always return "Internal error.".
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error."
}

// ErrorURL unwraps an application error and returns the URL it relates to.
func ErrorURL(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.URL
	}
	return ""
}
