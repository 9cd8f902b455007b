// Package domainerrors defines the coded errors shared by the dispatch core,
// the transport layer and command handlers.
//
// A code is the single source of truth for both the HTTP status and the
// envelope error code of a failure:
//
//	err := dErrors.New(dErrors.CodeValidation, "message is required")
//	dErrors.ToHTTPStatus(dErrors.CodeOf(err)) // 422
//	dErrors.CodeOf(err).EnvelopeCode()         // "VALIDATION_ERROR"
package domainerrors

import (
	"errors"
	"net/http"
	"strings"
)

// Code classifies a failure.
type Code string

const (
	CodeBadRequest     Code = "bad_request"
	CodeUnknownCommand Code = "unknown_command"
	CodeValidation     Code = "validation_error"
	CodeNotFound       Code = "not_found"
	CodeInternal       Code = "internal_error"
	CodeRequest        Code = "request_error"
)

// EnvelopeCode returns the upper-case form used in response envelopes.
func (c Code) EnvelopeCode() string {
	return strings.ToUpper(string(c))
}

// Error is a coded error with an optional cause.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil && e.Message != "" {
		return e.Message + ": " + e.Err.Error()
	}
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return string(e.Code)
}

func (e *Error) Unwrap() error { return e.Err }

// New creates a coded error.
func New(code Code, msg string) *Error {
	return &Error{Code: code, Message: msg}
}

// Wrap attaches a code and message to err. A nil err yields nil.
func Wrap(err error, code Code, msg string) error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Message: msg, Err: err}
}

// CodeOf returns the code of the outermost coded error in the chain,
// or CodeInternal when there is none.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// HasCode reports whether err carries the given code.
func HasCode(err error, code Code) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// ToHTTPStatus maps a code to its HTTP status.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeBadRequest, CodeUnknownCommand:
		return http.StatusBadRequest
	case CodeValidation:
		return http.StatusUnprocessableEntity
	case CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
