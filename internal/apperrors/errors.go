// Package apperrors defines the error kinds returned by services and their HTTP mapping.
//
// Services return *Error values (or wrap them); handlers translate them to status codes
// through HTTPStatus and never expose the wrapped cause of an internal error.
package apperrors

import (
	"errors"
	"net/http"
)

// Kind classifies an application error
type Kind int

// Kind constants
const (
	KindInternal Kind = iota
	KindValidation
	KindAuthentication
	KindAuthorization
	KindNotFound
	KindConflict
)

// Error is an application error with a client-facing message and an optional cause
type Error struct {
	Kind    Kind
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

// Validation returns a 400 error for bad or missing input
func Validation(message string) error {
	return &Error{Kind: KindValidation, Message: message}
}

// Authentication returns a 401 error for missing or invalid credentials
func Authentication(message string) error {
	return &Error{Kind: KindAuthentication, Message: message}
}

// Authorization returns a 403 error for insufficient role or non-owner access
func Authorization(message string) error {
	return &Error{Kind: KindAuthorization, Message: message}
}

// NotFound returns a 404 error for a missing resource
func NotFound(message string) error {
	return &Error{Kind: KindNotFound, Message: message}
}

// Conflict returns an error for a duplicate unique key
func Conflict(message string) error {
	return &Error{Kind: KindConflict, Message: message}
}

// Internal wraps a storage or file-system failure
func Internal(message string, err error) error {
	return &Error{Kind: KindInternal, Message: message, Err: err}
}

// KindOf returns the kind of err, KindInternal for errors that are not *Error
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// Is reports whether err is an application error of the given kind
func Is(err error, kind Kind) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.Kind == kind
}

// HTTPStatus maps err to its response status code
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation, KindConflict:
		return http.StatusBadRequest
	case KindAuthentication:
		return http.StatusUnauthorized
	case KindAuthorization:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage returns the message safe to send to a client.
// Internal errors are reduced to the fallback so storage details never leak.
func PublicMessage(err error, fallback string) string {
	var appErr *Error
	if !errors.As(err, &appErr) || appErr.Kind == KindInternal {
		return fallback
	}
	return appErr.Message
}
