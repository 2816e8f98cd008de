package kvstore

import "errors"

var (
	// ErrNotFound is returned by Get when the key holds no value.
	ErrNotFound = errors.New("kvstore.not_found")

	// ErrEmptyKey is returned when an operation is called with an empty key.
	ErrEmptyKey = errors.New("kvstore.empty_key")

	// ErrUnavailable wraps driver failures (network, closed client).
	ErrUnavailable = errors.New("kvstore.unavailable")
)
