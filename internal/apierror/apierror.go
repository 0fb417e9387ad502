// Package apierror provides standardized error response structures for the API.
// All errors returned to clients go through this package so the envelope is the
// same for every endpoint.
package apierror

import (
	"errors"
	"net/http"
)

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
// Error and Stack are only filled in development mode.
type APIError struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
	Error   string   `json:"error,omitempty"`
	Stack   string   `json:"stack,omitempty"`
}

func New(msg string) *APIError {
	return &APIError{Message: msg}
}

// NewValidation wraps the per-field messages of a rejected request body.
func NewValidation(fields []string) *APIError {
	return &APIError{Message: "Error de validación", Errors: fields}
}

// Error is a failure with a known HTTP status. Services return it so handlers
// can answer without guessing; Unwrap exposes the sentinel for errors.Is.
type Error struct {
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Err }

func newStatus(status int) func(msg string, sentinel error) *Error {
	return func(msg string, sentinel error) *Error {
		return &Error{Status: status, Message: msg, Err: sentinel}
	}
}

var (
	BadRequest   = newStatus(http.StatusBadRequest)
	Unauthorized = newStatus(http.StatusUnauthorized)
	Forbidden    = newStatus(http.StatusForbidden)
	NotFound     = newStatus(http.StatusNotFound)
	Conflict     = newStatus(http.StatusConflict)
)

// StatusOf returns the HTTP status carried by err, or 500 when err is not typed.
func StatusOf(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Status
	}
	return http.StatusInternalServerError
}
