// Package domainerrors defines the code-based error taxonomy shared by
// services, stores, and the HTTP transport. Services return these errors;
// the transport layer maps codes to HTTP statuses in exactly one place.
package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code labels a class of failure. Codes are part of the API contract: they
// appear verbatim in JSON error envelopes and must stay stable.
type Code string

const (
	CodeBadRequest              Code = "bad_request"
	CodeNotFound                Code = "not_found"
	CodeInternal                Code = "internal"
	CodeInvalidTransition       Code = "invalid_transition"
	CodeInvalidMethodParameters Code = "invalid_method_parameters"
	CodeUnknownCarrier          Code = "unknown_carrier"
	CodeAlreadyResolved         Code = "already_resolved"
	CodeConcurrentModification  Code = "concurrent_modification"
	CodeDeliveryDispatchFailed  Code = "delivery_dispatch_failed"
)

// Error is the concrete error type carried across layers.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New builds a domain error with the given code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf builds a domain error with a formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code and message to an underlying error.
func Wrap(code Code, message string, err error) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// Is reports whether err carries the given code anywhere in its chain.
func Is(err error, code Code) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// CodeOf extracts the code from err, defaulting to CodeInternal for errors
// that did not originate in this package.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// ToHTTPStatus maps an error code to its HTTP status. Validation failures are
// 4xx, state and version conflicts are 409, everything unrecognized is a 500.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeBadRequest, CodeInvalidMethodParameters:
		return http.StatusBadRequest
	case CodeNotFound, CodeUnknownCarrier:
		return http.StatusNotFound
	case CodeInvalidTransition, CodeAlreadyResolved, CodeConcurrentModification:
		return http.StatusConflict
	case CodeDeliveryDispatchFailed:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
