package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Token lifecycle errors.
	ErrInvalidToken   = errors.New("invalid token")
	ErrNoSession      = errors.New("no active session")
	ErrSessionExpired = errors.New("session expired")

	// Input errors.
	ErrUnknownTab = errors.New("unknown feed tab")
	ErrEmptyInput = errors.New("empty input")
)
