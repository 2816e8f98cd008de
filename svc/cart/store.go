package cart

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"

	"github.com/dmitrymomot/storefront/pkg/kvstore"
	"github.com/dmitrymomot/storefront/pkg/logger"
	"github.com/dmitrymomot/storefront/svc/authsession"
)

// IdentitySource is the part of the auth session the cart depends on.
type IdentitySource interface {
	Ready() bool
	Identity() (authsession.Identity, bool)
}

// subscriber is implemented by *authsession.Session.
type subscriber interface {
	Subscribe(authsession.Listener)
}

// Snapshot is a consistent view of the cart at one point in time.
type Snapshot struct {
	StorageKey string  `json:"storageKey"`
	Items      Items   `json:"items"`
	Total      float64 `json:"total"`
	Count      int     `json:"count"`
}

// Operation names reported to an Observer.
const (
	OpAdd    = "cart_add"
	OpUpdate = "cart_update"
	OpRemove = "cart_remove"
	OpClear  = "cart_clear"
)

// Observer is told the result of every mutation, err is nil on success.
type Observer func(op string, err error)

// Store is the single writer of the cart records of one visitor.
type Store struct {
	auth    IdentitySource
	storage  kvstore.Storage
	logger   *slog.Logger
	observer Observer

	mu       sync.Mutex
	key      string
	items    Items
	hydrated bool
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for recovered storage problems.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithObserver reports the result of every cart mutation to fn.
func WithObserver(fn Observer) Option {
	return func(s *Store) { s.observer = fn }
}

// New creates a Store bound to auth. If auth supports subscriptions the store
// follows identity changes automatically.
func New(auth IdentitySource, storage kvstore.Storage, opts ...Option) *Store {
	s := &Store{
		auth:    auth,
		storage: storage,
		logger:  slog.New(slog.DiscardHandler),
		items:   Items{},
	}
	for _, opt := range opts {
		opt(s)
	}

	if sub, ok := auth.(subscriber); ok {
		sub.Subscribe(s.onIdentityChange)
	}

	return s
}

// Hydrate loads the items stored under the key of the current identity.
// It does nothing and returns ErrNotReady while the identity source is not ready.
func (s *Store) Hydrate(ctx context.Context) error {
	if !s.auth.Ready() {
		return ErrNotReady
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hydrateLocked(ctx, s.currentKey())
}

func (s *Store) currentKey() string {
	identity, ok := s.auth.Identity()
	if !ok {
		return ResolveStorageKey(nil)
	}
	return ResolveStorageKey(&identity)
}

// hydrateLocked switches to key and loads its items. Must be called with s.mu held.
// On a transport failure the store is left empty and un-hydrated so the next
// operation retries instead of overwriting the stored cart.
func (s *Store) hydrateLocked(ctx context.Context, key string) error {
	s.key = key
	s.items = Items{}
	s.hydrated = false

	data, err := s.storage.Get(ctx, key)
	switch {
	case errors.Is(err, kvstore.ErrNotFound):
		s.hydrated = true
		return nil
	case err != nil:
		return errors.Join(ErrLoad, err)
	}

	items, ok := decodeItems(data)
	if !ok {
		s.logger.WarnContext(ctx, "discarding malformed cart record",
			logger.Component("cart"),
			logger.StorageKey(key),
		)
		s.hydrated = true
		return nil
	}

	s.items = items
	s.hydrated = true
	return nil
}

// onIdentityChange re-scopes the store to the new identity.
func (s *Store) onIdentityChange(ctx context.Context, identity *authsession.Identity) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.hydrateLocked(ctx, ResolveStorageKey(identity)); err != nil {
		s.logger.ErrorContext(ctx, "failed to load cart after identity change",
			logger.Component("cart"),
			logger.StorageKey(s.key),
			logger.Error(err),
		)
	}
}

// ensureScope makes sure the in-memory items belong to the current identity.
// Must be called with s.mu held.
func (s *Store) ensureScope(ctx context.Context) error {
	if !s.auth.Ready() {
		return ErrNotReady
	}
	key := s.currentKey()
	if s.hydrated && key == s.key {
		return nil
	}
	return s.hydrateLocked(ctx, key)
}

func (s *Store) observe(op string, err error) error {
	if s.observer != nil {
		s.observer(op, err)
	}
	return err
}

// mutate applies fn to a copy of the items, persists the result, then commits it.
// Nothing is written when fn reports the items unchanged.
func (s *Store) mutate(ctx context.Context, op string, fn func(Items) (Items, bool, error)) error {
	return s.observe(op, s.apply(ctx, fn))
}

func (s *Store) apply(ctx context.Context, fn func(Items) (Items, bool, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureScope(ctx); err != nil {
		return err
	}

	next, changed, err := fn(s.items.clone())
	if err != nil || !changed {
		return err
	}

	data, err := json.Marshal(next)
	if err != nil {
		return errors.Join(ErrPersist, err)
	}
	if err := s.storage.Set(ctx, s.key, data); err != nil {
		return errors.Join(ErrPersist, err)
	}

	s.items = next
	return nil
}

// AddToCart increments the quantity of an existing line or appends a new one.
func (s *Store) AddToCart(ctx context.Context, p Product) error {
	if !p.valid() {
		return ErrInvalidProduct
	}

	return s.mutate(ctx, OpAdd, func(items Items) (Items, bool, error) {
		if i := items.index(p.ID); i >= 0 {
			items[i].Quantity++
			return items, true, nil
		}
		return append(items, Item{
			ID:         p.ID,
			Title:      p.Title,
			Price:      p.Price,
			ProductImg: p.ProductImg,
			Quantity:   1,
		}), true, nil
	})
}

// UpdateQuantity sets the quantity of the line with id. Unknown ids are ignored.
func (s *Store) UpdateQuantity(ctx context.Context, id string, quantity int) error {
	if quantity < MinQuantity {
		return ErrInvalidQuantity
	}

	return s.mutate(ctx, OpUpdate, func(items Items) (Items, bool, error) {
		i := items.index(id)
		if i < 0 || items[i].Quantity == quantity {
			return items, false, nil
		}
		items[i].Quantity = quantity
		return items, true, nil
	})
}

// RemoveFromCart drops the line with id. Unknown ids are ignored.
func (s *Store) RemoveFromCart(ctx context.Context, id string) error {
	return s.mutate(ctx, OpRemove, func(items Items) (Items, bool, error) {
		if i := items.index(id); i >= 0 {
			return append(items[:i], items[i+1:]...), true, nil
		}
		return items, false, nil
	})
}

// ClearCart empties the cart and deletes its record.
func (s *Store) ClearCart(ctx context.Context) error {
	return s.observe(OpClear, s.clear(ctx))
}

func (s *Store) clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.auth.Ready() {
		return ErrNotReady
	}

	key := s.currentKey()
	if err := s.storage.Delete(ctx, key); err != nil {
		return errors.Join(ErrPersist, err)
	}

	s.key = key
	s.items = Items{}
	s.hydrated = true
	return nil
}

// Read reconciles the store with the current identity, loading the cart when
// an earlier load failed, and returns a snapshot. It returns ErrLoad while the
// cart cannot be read, so an empty snapshot always means an empty cart.
func (s *Store) Read(ctx context.Context) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureScope(ctx); err != nil {
		return Snapshot{}, err
	}
	return s.snapshotLocked(), nil
}

// StorageKey returns the key the items currently belong to.
func (s *Store) StorageKey() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.key
}

// Items returns a copy of the cart lines in insertion order.
func (s *Store) Items() Items {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.items.clone()
}

// CartTotal is the sum of price times quantity over all lines.
func (s *Store) CartTotal() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.items.Total()
}

// CartCount is the sum of quantities over all lines.
func (s *Store) CartCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.items.Count()
}

// Snapshot returns key, items and derived values read under a single lock.
// It does not touch storage; use Read when the result must reflect storage.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() Snapshot {
	items := s.items.clone()
	return Snapshot{
		StorageKey: s.key,
		Items:      items,
		Total:      items.Total(),
		Count:      items.Count(),
	}
}
