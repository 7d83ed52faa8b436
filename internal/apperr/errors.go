// Package apperr defines the error kinds shared by the domain services.
// Domain sentinels wrap one of these so the HTTP boundary can map them to
// status codes with errors.Is.
package apperr

import "errors"

var (
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
)
