package client

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	ErrValidation   = errors.New("validation failed")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrUnexpected   = errors.New("unexpected response")
)

// APIError is a non-2xx backend response. It unwraps to one of the sentinel
// errors above so callers can match with errors.Is.
type APIError struct {
	Status  int
	Message string
	kind    error
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s (%d): %s", e.kind, e.Status, e.Message)
	}
	return fmt.Sprintf("%s (%d)", e.kind, e.Status)
}

func (e *APIError) Unwrap() error {
	return e.kind
}

// NewAPIError classifies status into a sentinel error.
func NewAPIError(status int, message string) *APIError {
	return &APIError{Status: status, Message: message, kind: classify(status)}
}

func classify(status int) error {
	switch {
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		return ErrUnauthorized
	case status == http.StatusBadRequest, status == http.StatusUnprocessableEntity:
		return ErrValidation
	case status == http.StatusNotFound:
		return ErrNotFound
	case status == http.StatusConflict:
		return ErrConflict
	case status >= 500:
		return ErrUnavailable
	default:
		return ErrUnexpected
	}
}
