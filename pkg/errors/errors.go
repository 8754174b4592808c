// Package errors defines the coded errors shared by the toldot CLI, the
// dataset sources and the HTTP API.
//
// A [Code] is a stable string the server returns to clients and the CLI
// prints on failure. Codes sort into a small number of classes by their
// prefix or suffix (INVALID_*, *NOT_FOUND, NETWORK_ERROR, ...), and [Class]
// reports which one, so callers can map a whole family to an HTTP status or
// an exit code without listing every code.
//
//	err := errors.New(errors.ErrCodeInvalidDataset, "duplicate period id %q", id)
//	if errors.Is(err, errors.ErrCodeInvalidDataset) {
//		...
//	}
//
// The pure packages (dates, bounds, filter, layout) never return errors.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Code is a machine-readable error code.
type Code string

const (
	ErrCodeInvalidInput   Code = "INVALID_INPUT"
	ErrCodeInvalidFormat  Code = "INVALID_FORMAT"
	ErrCodeInvalidStyle   Code = "INVALID_STYLE"
	ErrCodeInvalidDataset Code = "INVALID_DATASET"
	ErrCodeInvalidFilter  Code = "INVALID_FILTER"
	ErrCodeInvalidPath    Code = "INVALID_PATH"

	ErrCodeNotFound       Code = "NOT_FOUND"
	ErrCodePersonNotFound Code = "PERSON_NOT_FOUND"
	ErrCodeFileNotFound   Code = "FILE_NOT_FOUND"

	ErrCodeNetwork     Code = "NETWORK_ERROR"
	ErrCodeTimeout     Code = "TIMEOUT"
	ErrCodeRateLimited Code = "RATE_LIMITED"

	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Class groups codes by who is at fault.
type Class int

const (
	ClassUnknown  Class = iota
	ClassInvalid        // the caller sent bad input
	ClassNotFound       // the named thing does not exist
	ClassUpstream       // a dataset backend failed or throttled us
	ClassInternal       // a bug or a missing capability
)

// Class reports the family c belongs to.
func (c Code) Class() Class {
	switch {
	case c == "":
		return ClassUnknown
	case strings.HasPrefix(string(c), "INVALID_"):
		return ClassInvalid
	case strings.HasSuffix(string(c), "NOT_FOUND"):
		return ClassNotFound
	case c == ErrCodeNetwork, c == ErrCodeTimeout, c == ErrCodeRateLimited:
		return ClassUpstream
	}
	return ClassInternal
}

// Error carries a Code, a message safe to show users, and an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return string(e.Code) + ": " + e.Message
	}
	return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an *Error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap is New with a cause attached.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	e := New(code, format, args...)
	e.Cause = cause
	return e
}

// Is reports whether the outermost coded error in err's chain has code.
func Is(err error, code Code) bool {
	return GetCode(err) == code && code != ""
}

// GetCode returns the code of the outermost coded error in err's chain. A
// *RateLimitedError counts as ErrCodeRateLimited.
func GetCode(err error) Code {
	var e *Error
	var rl *RateLimitedError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &e):
		return e.Code
	case errors.As(err, &rl):
		return rl.Code()
	}
	return ""
}

// UserMessage strips the code prefix and cause from coded errors. Other
// errors are returned verbatim.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// RateLimitedError is returned when a dataset backend answers 429.
type RateLimitedError struct {
	Host       string
	RetryAfter int // seconds, 0 if the backend sent none
}

func (e *RateLimitedError) Error() string {
	msg := "rate limited"
	if e.Host != "" {
		msg += " by " + e.Host
	}
	if e.RetryAfter > 0 {
		msg += fmt.Sprintf(", retry in %ds", e.RetryAfter)
	}
	return msg
}

// Code returns ErrCodeRateLimited.
func (e *RateLimitedError) Code() Code { return ErrCodeRateLimited }
