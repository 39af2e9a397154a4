// Package apierror defines the domain error taxonomy and the JSON envelope
// returned to clients. All 4xx/5xx responses go through this package so that
// internal details (stack traces, SQL errors) never leak to the client.
package apierror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a domain error. Each kind maps to exactly one HTTP status.
type Kind int

const (
	KindInternal Kind = iota
	KindUnauthenticated
	KindForbidden
	KindValidation
	KindNotFound
	KindConflict
	KindInsufficientStock
	KindTemplate
	KindConversion
)

// Error is the domain error carried from services up to the request boundary.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// E builds a domain error with a client-safe message.
func E(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap attaches an internal cause that is logged but never sent to clients.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func Unauthenticated(msg string) *Error   { return E(KindUnauthenticated, msg) }
func Validation(msg string) *Error        { return E(KindValidation, msg) }
func NotFound(msg string) *Error          { return E(KindNotFound, msg) }
func Conflict(msg string) *Error          { return E(KindConflict, msg) }
func InsufficientStock(msg string) *Error { return E(KindInsufficientStock, msg) }

// IsKind reports whether err is a domain error of the given kind.
func IsKind(err error, kind Kind) bool {
	var de *Error
	return errors.As(err, &de) && de.Kind == kind
}

// Status maps an error to its HTTP status code. Non-domain errors are 500.
func Status(err error) int {
	var de *Error
	if !errors.As(err, &de) {
		return http.StatusInternalServerError
	}
	switch de.Kind {
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindValidation, KindInsufficientStock:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the client-safe message for err. Template, conversion and
// unclassified errors collapse to a generic message; their cause is for logs only.
func Message(err error) string {
	var de *Error
	if !errors.As(err, &de) {
		return "Internal server error."
	}
	switch de.Kind {
	case KindTemplate, KindConversion, KindInternal:
		return "Internal server error."
	default:
		return de.Message
	}
}

// APIError is the canonical error envelope for all error responses.
type APIError struct {
	Message string `json:"message"`
}

func New(msg string) *APIError { return &APIError{Message: msg} }

// ForbiddenError carries the caller's role alongside the denial message.
// Returned only by the admin role guard.
type ForbiddenError struct {
	Message  string `json:"message"`
	UserRole string `json:"userRole"`
}
