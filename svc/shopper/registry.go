package shopper

import (
	"context"
	"net/http"
	"time"

	"github.com/dmitrymomot/storefront/pkg/kvstore"
	"github.com/dmitrymomot/storefront/pkg/visitor"
)

const (
	sessionPrefix = "ss:"
	durablePrefix = "ls:"
)

// Registry opens Clients for visitors and serializes requests per device.
type Registry struct {
	session kvstore.Storage
	durable kvstore.Storage
	opts    []Option
	locks   *deviceLocks
}

// NewRegistry creates a Registry. session backs session-lifetime data and should
// expire idle keys; durable backs device data. Both may be the same backend.
func NewRegistry(session, durable kvstore.Storage, opts ...Option) *Registry {
	return &Registry{
		session: session,
		durable: durable,
		opts:    opts,
		locks:   newDeviceLocks(),
	}
}

// Acquire waits for exclusive access to the device of ids and opens its Client.
// release must be called when the request is done.
func (r *Registry) Acquire(ctx context.Context, ids visitor.IDs) (*Client, func(), error) {
	if ids.DeviceID == "" || ids.SessionID == "" {
		return nil, nil, ErrNoVisitor
	}

	start := time.Now()
	unlock, err := r.locks.lock(ctx, ids.DeviceID)
	if err != nil {
		return nil, nil, err
	}
	visitorLockWait.Observe(time.Since(start).Seconds())
	activeVisitors.Inc()

	client := Open(ctx,
		kvstore.Namespace(r.session, sessionPrefix+ids.SessionID+":"),
		kvstore.Namespace(r.durable, durablePrefix+ids.DeviceID+":"),
		r.opts...,
	)

	return client, func() {
		activeVisitors.Dec()
		unlock()
	}, nil
}

// Middleware opens the Client of the visitor identified by visitor.Middleware
// and places it in the request context.
func (r *Registry) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		ids, ok := visitor.FromContext(req.Context())
		if !ok {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		client, release, err := r.Acquire(req.Context(), ids)
		if err != nil {
			http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
			return
		}
		defer release()

		next.ServeHTTP(w, req.WithContext(WithContext(req.Context(), client)))
	})
}

type contextKey struct{}

// WithContext stores c in ctx.
func WithContext(ctx context.Context, c *Client) context.Context {
	return context.WithValue(ctx, contextKey{}, c)
}

// FromContext returns the Client placed by Registry.Middleware.
func FromContext(ctx context.Context) (*Client, bool) {
	c, ok := ctx.Value(contextKey{}).(*Client)
	return c, ok && c != nil
}
