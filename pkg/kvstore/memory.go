package kvstore

import (
	"context"
	"slices"
	"sync"
	"time"
)

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

func (e memoryEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// MemoryStorage implements Storage in process memory.
// Values are copied on write and on read, so callers never share buffers.
type MemoryStorage struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
	ticker  *time.Ticker
	done    chan struct{}
}

// MemoryOption configures a MemoryStorage.
type MemoryOption func(*MemoryStorage)

// WithMemoryTTL expires every value ttl after its last write. Zero disables expiry.
func WithMemoryTTL(ttl time.Duration) MemoryOption {
	return func(m *MemoryStorage) {
		m.ttl = ttl
	}
}

// WithMemoryClock overrides the time source. Used in tests.
func WithMemoryClock(now func() time.Time) MemoryOption {
	return func(m *MemoryStorage) {
		if now != nil {
			m.now = now
		}
	}
}

// NewMemoryStorage creates an in-memory storage.
// A positive cleanupInterval starts a background sweep of expired values.
func NewMemoryStorage(cleanupInterval time.Duration, opts ...MemoryOption) *MemoryStorage {
	m := &MemoryStorage{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
		done:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(m)
	}

	if cleanupInterval > 0 {
		m.ticker = time.NewTicker(cleanupInterval)
		go m.cleanupLoop()
	}

	return m
}

// Get returns a copy of the stored value.
func (m *MemoryStorage) Get(_ context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, ErrEmptyKey
	}

	m.mu.RLock()
	entry, ok := m.entries[key]
	m.mu.RUnlock()

	if !ok {
		return nil, ErrNotFound
	}
	now := m.now()
	if !entry.expired(now) {
		return slices.Clone(entry.value), nil
	}

	// The entry may have been rewritten since the read lock was released.
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, ok = m.entries[key]
	if !ok {
		return nil, ErrNotFound
	}
	if entry.expired(now) {
		delete(m.entries, key)
		return nil, ErrNotFound
	}
	return slices.Clone(entry.value), nil
}

// Set stores a copy of value.
func (m *MemoryStorage) Set(_ context.Context, key string, value []byte) error {
	if key == "" {
		return ErrEmptyKey
	}

	entry := memoryEntry{value: slices.Clone(value)}
	if m.ttl > 0 {
		entry.expiresAt = m.now().Add(m.ttl)
	}

	m.mu.Lock()
	m.entries[key] = entry
	m.mu.Unlock()
	return nil
}

// Delete removes key.
func (m *MemoryStorage) Delete(_ context.Context, key string) error {
	if key == "" {
		return ErrEmptyKey
	}

	m.mu.Lock()
	delete(m.entries, key)
	m.mu.Unlock()
	return nil
}

// Len reports the number of stored values, expired ones included until swept.
func (m *MemoryStorage) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// DeleteExpired removes every expired value.
func (m *MemoryStorage) DeleteExpired() {
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	for key, entry := range m.entries {
		if entry.expired(now) {
			delete(m.entries, key)
		}
	}
}

// Close stops the cleanup goroutine.
func (m *MemoryStorage) Close() error {
	if m.ticker != nil {
		m.ticker.Stop()
		select {
		case <-m.done:
		default:
			close(m.done)
		}
	}
	return nil
}

func (m *MemoryStorage) cleanupLoop() {
	for {
		select {
		case <-m.ticker.C:
			m.DeleteExpired()
		case <-m.done:
			return
		}
	}
}
