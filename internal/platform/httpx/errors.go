// Package httpx provides JSON response helpers and the error taxonomy
// shared by all HTTP handlers.
package httpx

import (
	"errors"
	"net/http"
)

// Sentinel errors for the domain layer. Handlers and services classify
// failures by wrapping one of these; anything else maps to a 500.
var (
	ErrValidation   = errors.New("validation failed")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
)

type apiError struct {
	sentinel error
	message  string
}

func (e *apiError) Error() string { return e.message }

func (e *apiError) Unwrap() error { return e.sentinel }

// Message attaches a client-facing message to a sentinel error. The
// message is what RespondError echoes to the caller, so it must never
// contain internals.
func Message(sentinel error, message string) error {
	return &apiError{sentinel: sentinel, message: message}
}

// RespondError maps a classified error to its HTTP status. Unclassified
// errors become a generic 500; their details stay server-side.
func RespondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		Error(w, http.StatusBadRequest, clientMessage(err, "Invalid request"))
	case errors.Is(err, ErrConflict):
		Error(w, http.StatusConflict, clientMessage(err, "Already exists"))
	case errors.Is(err, ErrUnauthorized):
		Error(w, http.StatusUnauthorized, clientMessage(err, "Invalid credentials"))
	case errors.Is(err, ErrForbidden):
		Error(w, http.StatusForbidden, clientMessage(err, "Forbidden"))
	case errors.Is(err, ErrNotFound):
		Error(w, http.StatusNotFound, clientMessage(err, "Not found"))
	default:
		Error(w, http.StatusInternalServerError, "Internal Server Error")
	}
}

// IsClassified reports whether err wraps one of the sentinel errors.
// Unclassified errors are the ones worth logging before responding.
func IsClassified(err error) bool {
	for _, sentinel := range []error{ErrValidation, ErrConflict, ErrUnauthorized, ErrForbidden, ErrNotFound} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

func clientMessage(err error, fallback string) string {
	var ae *apiError
	if errors.As(err, &ae) {
		return ae.message
	}
	return fallback
}
