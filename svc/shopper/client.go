package shopper

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/dmitrymomot/storefront/pkg/kvstore"
	"github.com/dmitrymomot/storefront/pkg/logger"
	"github.com/dmitrymomot/storefront/svc/authsession"
	"github.com/dmitrymomot/storefront/svc/cart"
)

const (
	// ReturnPathKey holds the path to resume after login.
	ReturnPathKey = "redirectAfterLogin"

	// DefaultActivityThreshold is the minimum gap between two persisted touches.
	// Zero touches on every activity signal.
	DefaultActivityThreshold time.Duration = 0
)

// Client is the hydrated state of one visitor for the duration of a request.
type Client struct {
	Auth *authsession.Session
	Cart *cart.Store

	session           kvstore.Storage
	now               func() time.Time
	activityThreshold time.Duration
	logger            *slog.Logger
}

// Option configures Open.
type Option func(*options)

type options struct {
	logger            *slog.Logger
	now               func() time.Time
	maxInactivity     time.Duration
	activityThreshold time.Duration
}

// WithLogger sets the logger shared by the client services.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithMaxInactivity overrides how long an idle identity survives.
func WithMaxInactivity(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.maxInactivity = d
		}
	}
}

// WithActivityThreshold sets the minimum gap between persisted touches.
// Zero persists every activity signal.
func WithActivityThreshold(d time.Duration) Option {
	return func(o *options) {
		if d >= 0 {
			o.activityThreshold = d
		}
	}
}

func newOptions(opts []Option) options {
	o := options{
		logger:            logger.Discard(),
		now:               time.Now,
		maxInactivity:     authsession.MaxInactivity,
		activityThreshold: DefaultActivityThreshold,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Open builds and hydrates a Client. session is the session-lifetime scope and
// durable the device scope. The cart is hydrated only after the identity, so it
// never reads storage with an unresolved key. A cart read failure is logged and
// left for the next cart read or mutation to retry; those return cart.ErrLoad
// while storage stays down.
func Open(ctx context.Context, session, durable kvstore.Storage, opts ...Option) *Client {
	o := newOptions(opts)

	auth := authsession.New(session,
		authsession.WithLogger(o.logger),
		authsession.WithClock(o.now),
		authsession.WithMaxInactivity(o.maxInactivity),
		authsession.WithObserver(observeOperation),
	)
	store := cart.New(auth, durable,
		cart.WithLogger(o.logger),
		cart.WithObserver(observeOperation),
	)

	outcome := auth.Hydrate(ctx)
	hydrateOutcomes.WithLabelValues(string(outcome)).Inc()

	if err := store.Hydrate(ctx); err != nil {
		cartHydrateFailures.Inc()
		o.logger.ErrorContext(ctx, "cart hydration failed",
			logger.Component("shopper"),
			logger.Error(err),
		)
	}

	return &Client{
		Auth:              auth,
		Cart:              store,
		session:           session,
		now:               o.now,
		activityThreshold: o.activityThreshold,
		logger:            o.logger,
	}
}

// Activity records a user interaction. With a non-zero threshold the identity
// is re-persisted only when the last stamp is older than it. Guests are ignored.
func (c *Client) Activity(ctx context.Context) error {
	identity, ok := c.Auth.Identity()
	if !ok {
		return nil
	}
	if c.activityThreshold > 0 && c.now().Sub(identity.LastActivity) < c.activityThreshold {
		return nil
	}
	return c.Auth.Touch(ctx)
}

// RememberReturnPath stores a local path to resume after login.
func (c *Client) RememberReturnPath(ctx context.Context, path string) error {
	if !isLocalPath(path) {
		return ErrInvalidPath
	}
	if err := c.session.Set(ctx, ReturnPathKey, []byte(path)); err != nil {
		return errors.Join(ErrReturnPathStore, err)
	}
	return nil
}

// TakeReturnPath returns and forgets the remembered path.
func (c *Client) TakeReturnPath(ctx context.Context) (string, bool) {
	data, err := c.session.Get(ctx, ReturnPathKey)
	if err != nil {
		if !errors.Is(err, kvstore.ErrNotFound) {
			c.logger.WarnContext(ctx, "failed to read return path",
				logger.Component("shopper"),
				logger.Error(err),
			)
		}
		return "", false
	}

	if err := c.session.Delete(ctx, ReturnPathKey); err != nil {
		c.logger.WarnContext(ctx, "failed to forget return path",
			logger.Component("shopper"),
			logger.Error(err),
		)
	}

	path := string(data)
	if !isLocalPath(path) {
		return "", false
	}
	return path, true
}

// isLocalPath accepts absolute paths on this host only.
func isLocalPath(path string) bool {
	return strings.HasPrefix(path, "/") &&
		!strings.HasPrefix(path, "//") &&
		!strings.Contains(path, `\`)
}
