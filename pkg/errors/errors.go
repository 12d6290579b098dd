// Package errors provides structured error types shared by the planar CLI
// and HTTP API.
//
// Library packages (geom, dcel, sweep) return plain sentinel errors. The
// pipeline layer classifies them into an [*Error] carrying a [Code] so that
// the CLI can print a short message and the server can pick a status code.
//
// # Error Codes
//
//   - INVALID_*: the input was rejected before any work was done
//   - DEGENERATE: the input is valid but not in general position
//   - INVARIANT: a subdivision failed its structural checks
//   - NOT_FOUND: a stored arrangement does not exist
//   - STORE, NETWORK: a backend failed
//   - INTERNAL: anything else
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidScene, "scene has no lines")
//	if errors.Is(err, errors.ErrCodeInvalidScene) {
//	    // reject the request
//	}
//
//	err = errors.Wrap(errors.ErrCodeStore, cause, "load arrangement %s", id)
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code represents a machine-readable error code.
type Code string

const (
	// Input validation errors
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidScene    Code = "INVALID_SCENE"
	ErrCodeInvalidGeometry Code = "INVALID_GEOMETRY"
	ErrCodeInvalidFormat   Code = "INVALID_FORMAT"
	ErrCodeInvalidID       Code = "INVALID_ID"
	ErrCodeInvalidPath     Code = "INVALID_PATH"

	// Geometry errors
	ErrCodeDegenerate Code = "DEGENERATE"
	ErrCodeInvariant  Code = "INVARIANT"

	// Resource errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Backend errors
	ErrCodeStore   Code = "STORE"
	ErrCodeNetwork Code = "NETWORK_ERROR"
	ErrCodeTimeout Code = "TIMEOUT"

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

// New creates an Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an Error wrapping cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Is reports whether the first *Error in err's chain has the given code.
func Is(err error, code Code) bool {
	return GetCode(err) == code
}

// GetCode extracts the error code from an error, or "" if it carries none.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns the message of the first *Error in err's chain followed
// by the messages of its causes, without code prefixes. Other errors are
// returned as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Cause != nil {
			return e.Message + ": " + UserMessage(e.Cause)
		}
		return e.Message
	}
	return err.Error()
}

// HTTPStatus maps a code to an HTTP status.
func HTTPStatus(code Code) int {
	switch code {
	case ErrCodeInvalidInput, ErrCodeInvalidScene, ErrCodeInvalidGeometry,
		ErrCodeInvalidFormat, ErrCodeInvalidID, ErrCodeInvalidPath:
		return http.StatusBadRequest
	case ErrCodeDegenerate:
		return http.StatusUnprocessableEntity
	case ErrCodeNotFound, ErrCodeFileNotFound:
		return http.StatusNotFound
	case ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case ErrCodeNetwork, ErrCodeStore:
		return http.StatusServiceUnavailable
	case ErrCodeUnsupported:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}
