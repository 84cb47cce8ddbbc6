package core

import (
	"fmt"
	"net/http"

	"github.com/pkg/errors"
)

// FieldError is used to indicate an error with a specific payload field.
type FieldError struct {
	Field string
	Error string
}

// ValidationError reports client-side payload validation failures; it is
// raised before any network call is issued.
type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		return ""
	}
	return err.Err.Error()
}

// IsValidationError reports whether err (or its cause) is a ValidationError.
func IsValidationError(err error) (*ValidationError, bool) {
	vErr, ok := errors.Cause(err).(*ValidationError)
	return vErr, ok
}

// APIError is a failure reported by the backend itself: a non-2xx status or a
// `success: false` envelope. Message carries the backend-provided text when
// available so it can be shown to the user verbatim.
type APIError struct {
	StatusCode int
	Message    string
}

func NewAPIError(status int, msg string) error {
	if msg == "" {
		msg = http.StatusText(status)
	}
	return &APIError{StatusCode: status, Message: msg}
}

func (e APIError) Error() string {
	return fmt.Sprintf("%d: %s", e.StatusCode, e.Message)
}

// IsAPIError reports whether err (or its cause) is an APIError.
func IsAPIError(err error) (*APIError, bool) {
	aErr, ok := errors.Cause(err).(*APIError)
	return aErr, ok
}

// UserMessage renders err the way a notification should show it: backend and
// validation messages verbatim, anything else (network failures, decode
// failures) as a generic message.
func UserMessage(err error) string {
	switch origErr := errors.Cause(err).(type) {
	case *APIError:
		return origErr.Message
	case *ValidationError:
		if len(origErr.Fields) > 0 {
			return origErr.Fields[0].Field + ": " + origErr.Fields[0].Error
		}
		return origErr.Error()
	default:
		return "something went wrong, please try again"
	}
}
