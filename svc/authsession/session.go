package authsession

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/dmitrymomot/storefront/pkg/kvstore"
	"github.com/dmitrymomot/storefront/pkg/logger"
)

const (
	// StorageKey is the session-lifetime storage key of the identity record.
	StorageKey = "user"

	// MaxInactivity is how long a stored identity survives without activity.
	MaxInactivity = 20 * time.Hour
)

// Outcome describes what Hydrate found in storage.
type Outcome string

const (
	OutcomeGuest       Outcome = "guest"
	OutcomeRestored    Outcome = "restored"
	OutcomeExpired     Outcome = "expired"
	OutcomeCorrupt     Outcome = "corrupt"
	OutcomeUnavailable Outcome = "unavailable"
)

// Operation names reported to an Observer.
const (
	OpLogin  = "login"
	OpLogout = "logout"
	OpTouch  = "touch"
)

// Observer is told the result of every mutation, err is nil on success.
type Observer func(op string, err error)

// Listener observes committed identity changes. identity is nil after logout.
type Listener func(ctx context.Context, identity *Identity)

// Session is the single writer of the persisted identity record.
type Session struct {
	storage       kvstore.Storage
	logger        *slog.Logger
	now           func() time.Time
	maxInactivity time.Duration
	observer      Observer

	mu        sync.RWMutex
	identity  *Identity
	ready     bool
	outcome   Outcome
	listeners []Listener

	hydrateOnce sync.Once
}

// New creates a guest Session that is not ready until Hydrate runs.
func New(storage kvstore.Storage, opts ...Option) *Session {
	s := &Session{
		storage:       storage,
		logger:        slog.New(slog.DiscardHandler),
		now:           time.Now,
		maxInactivity: MaxInactivity,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Hydrate restores the identity from storage. Only the first call does work;
// later calls return the first outcome. The session is ready afterwards no
// matter what storage returned.
func (s *Session) Hydrate(ctx context.Context) Outcome {
	s.hydrateOnce.Do(func() {
		outcome, identity := s.load(ctx)

		s.mu.Lock()
		s.identity = identity
		s.outcome = outcome
		s.ready = true
		s.mu.Unlock()
	})

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.outcome
}

func (s *Session) load(ctx context.Context) (Outcome, *Identity) {
	data, err := s.storage.Get(ctx, StorageKey)
	switch {
	case errors.Is(err, kvstore.ErrNotFound):
		return OutcomeGuest, nil
	case err != nil:
		s.logger.WarnContext(ctx, "session record unavailable, continuing as guest",
			logger.Component("authsession"),
			logger.Error(err),
		)
		return OutcomeUnavailable, nil
	}

	identity, ok := decodeIdentity(data)
	if !ok {
		s.logger.WarnContext(ctx, "discarding malformed session record",
			logger.Component("authsession"),
		)
		s.discard(ctx)
		return OutcomeCorrupt, nil
	}

	if s.now().Sub(identity.LastActivity) > s.maxInactivity {
		s.logger.InfoContext(ctx, "session expired after inactivity",
			logger.Component("authsession"),
			logger.Email(identity.Email),
			slog.Time("last_activity", identity.LastActivity),
		)
		s.discard(ctx)
		return OutcomeExpired, nil
	}

	return OutcomeRestored, &identity
}

// discard removes a record that must not be restored. Failures are logged only.
func (s *Session) discard(ctx context.Context) {
	if err := s.storage.Delete(ctx, StorageKey); err != nil {
		s.logger.WarnContext(ctx, "failed to remove session record",
			logger.Component("authsession"),
			logger.Error(err),
		)
	}
}

// Ready reports whether Hydrate has completed.
func (s *Session) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

// Identity returns a copy of the current identity; ok is false for guests.
func (s *Session) Identity() (Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.identity == nil {
		return Identity{}, false
	}
	return *s.identity, true
}

// Subscribe registers l for identity changes committed after this call.
func (s *Session) Subscribe(l Listener) {
	if l == nil {
		return
	}
	s.mu.Lock()
	s.listeners = append(s.listeners, l)
	s.mu.Unlock()
}

// Login replaces the current identity, stamping it with the current time.
func (s *Session) Login(ctx context.Context, identity Identity) error {
	return s.observe(OpLogin, s.login(ctx, identity))
}

func (s *Session) login(ctx context.Context, identity Identity) error {
	identity.Email = normalizeEmail(identity.Email)
	if identity.Email == "" {
		return ErrInvalidIdentity
	}
	identity.LastActivity = s.now()

	s.mu.Lock()
	if !s.ready {
		s.mu.Unlock()
		return ErrNotReady
	}
	if err := s.persist(ctx, &identity); err != nil {
		s.mu.Unlock()
		return err
	}
	s.identity = &identity
	listeners := s.listeners
	s.mu.Unlock()

	s.notify(ctx, &identity, listeners)
	return nil
}

// Logout clears the identity and removes the persisted record.
func (s *Session) Logout(ctx context.Context) error {
	return s.observe(OpLogout, s.logout(ctx))
}

func (s *Session) logout(ctx context.Context) error {
	s.mu.Lock()
	if !s.ready {
		s.mu.Unlock()
		return ErrNotReady
	}
	if err := s.persist(ctx, nil); err != nil {
		s.mu.Unlock()
		return err
	}
	s.identity = nil
	listeners := s.listeners
	s.mu.Unlock()

	s.notify(ctx, nil, listeners)
	return nil
}

// Touch renews the activity stamp of a logged-in identity.
// It is a no-op for guests.
func (s *Session) Touch(ctx context.Context) error {
	return s.observe(OpTouch, s.touch(ctx))
}

func (s *Session) touch(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.ready {
		return ErrNotReady
	}
	if s.identity == nil {
		return nil
	}

	touched := *s.identity
	touched.LastActivity = s.now()
	if err := s.persist(ctx, &touched); err != nil {
		return err
	}
	s.identity = &touched
	return nil
}

// persist must be called with s.mu held.
func (s *Session) persist(ctx context.Context, identity *Identity) error {
	if identity == nil {
		if err := s.storage.Delete(ctx, StorageKey); err != nil {
			return errors.Join(ErrPersist, err)
		}
		return nil
	}

	data, err := encodeIdentity(*identity)
	if err != nil {
		return errors.Join(ErrPersist, err)
	}
	if err := s.storage.Set(ctx, StorageKey, data); err != nil {
		return errors.Join(ErrPersist, err)
	}
	return nil
}

func (s *Session) notify(ctx context.Context, identity *Identity, listeners []Listener) {
	for _, l := range listeners {
		if identity == nil {
			l(ctx, nil)
			continue
		}
		cp := *identity
		l(ctx, &cp)
	}
}

func (s *Session) observe(op string, err error) error {
	if s.observer != nil {
		s.observer(op, err)
	}
	return err
}
