package kvstore

import (
	"context"
)

// Storage is a flat key/value store.
type Storage interface {
	// Get returns the value stored under key or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

type namespaced struct {
	prefix string
	next   Storage
}

// Namespace returns a Storage that transparently prefixes every key.
func Namespace(s Storage, prefix string) Storage {
	if prefix == "" {
		return s
	}
	return &namespaced{prefix: prefix, next: s}
}

func (n *namespaced) Get(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, ErrEmptyKey
	}
	return n.next.Get(ctx, n.prefix+key)
}

func (n *namespaced) Set(ctx context.Context, key string, value []byte) error {
	if key == "" {
		return ErrEmptyKey
	}
	return n.next.Set(ctx, n.prefix+key, value)
}

func (n *namespaced) Delete(ctx context.Context, key string) error {
	if key == "" {
		return ErrEmptyKey
	}
	return n.next.Delete(ctx, n.prefix+key)
}
