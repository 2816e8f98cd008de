package backend

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidBaseURL  = errors.New("backend.invalid_base_url")
	ErrUnavailable     = errors.New("backend.unavailable")
	ErrRejected        = errors.New("backend.rejected")
	ErrNotFound        = errors.New("backend.not_found")
	ErrUnauthorized    = errors.New("backend.unauthorized")
	ErrInvalidResponse = errors.New("backend.invalid_response")
	ErrInvalidPrice    = errors.New("backend.invalid_price")
)

// APIError is a non-2xx answer of the remote API.
// Kind is one of ErrNotFound, ErrUnauthorized, ErrUnavailable or ErrRejected.
type APIError struct {
	Kind    error
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %d %s", e.Kind, e.Status, e.Message)
}

func (e *APIError) Unwrap() error { return e.Kind }
