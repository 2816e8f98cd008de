package authsession

import "errors"

var (
	// ErrNotReady is returned by mutations attempted before Hydrate completed.
	ErrNotReady = errors.New("authsession.not_ready")

	// ErrInvalidIdentity is returned by Login for identities without an email.
	ErrInvalidIdentity = errors.New("authsession.invalid_identity")

	// ErrPersist wraps storage failures while saving or removing the record.
	ErrPersist = errors.New("authsession.persist_failed")
)
