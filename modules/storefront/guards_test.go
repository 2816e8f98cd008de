package storefront

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/storefront/handler"
	"github.com/dmitrymomot/storefront/pkg/kvstore"
	"github.com/dmitrymomot/storefront/pkg/logger"
	"github.com/dmitrymomot/storefront/svc/authsession"
	"github.com/dmitrymomot/storefront/svc/shopper"
)

func okHandler(Context, struct{}) handler.Response {
	return handler.JSON("ok")
}

func serveGuarded(t *testing.T, dec handler.Decorator[Context, struct{}], r *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	ctx := newContext(w, r)
	if err := dec(okHandler)(ctx, struct{}{}).Render(w, r); err != nil {
		handler.NewErrorHandler[Context](logger.Discard(), classify)(ctx, err)
	}
	return w
}

func openClient(t *testing.T, storage kvstore.Storage) *shopper.Client {
	t.Helper()
	return shopper.Open(context.Background(),
		kvstore.Namespace(storage, "ss:s1:"),
		kvstore.Namespace(storage, "ls:d1:"),
	)
}

func TestRequireRole_NotReady(t *testing.T) {
	t.Parallel()
	g := guard{retryAfter: 1500 * time.Millisecond, logger: logger.Discard()}

	r := httptest.NewRequest(http.MethodGet, "/account/orders", nil)
	w := serveGuarded(t, requireAuth[struct{}](g, ""), r)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "2", w.Header().Get("Retry-After"))
	assert.Contains(t, w.Body.String(), "session_not_ready")
}

func TestRequireRole(t *testing.T) {
	t.Parallel()
	g := guard{retryAfter: time.Second, logger: logger.Discard()}
	storage := kvstore.NewMemoryStorage(0)
	t.Cleanup(func() { _ = storage.Close() })

	withClient := func(r *http.Request, c *shopper.Client) *http.Request {
		return r.WithContext(shopper.WithContext(r.Context(), c))
	}

	t.Run("guest POST is not remembered", func(t *testing.T) {
		client := openClient(t, storage)
		r := withClient(httptest.NewRequest(http.MethodPost, "/admin/products", nil), client)

		w := serveGuarded(t, requireAdmin[struct{}](g), r)
		assert.Equal(t, http.StatusUnauthorized, w.Code)

		_, ok := client.TakeReturnPath(r.Context())
		assert.False(t, ok)
	})

	t.Run("guest GET remembers the request URI", func(t *testing.T) {
		client := openClient(t, storage)
		r := withClient(httptest.NewRequest(http.MethodGet, "/account/orders?page=2", nil), client)

		w := serveGuarded(t, requireAuth[struct{}](g, ""), r)
		assert.Equal(t, http.StatusUnauthorized, w.Code)

		path, ok := client.TakeReturnPath(r.Context())
		assert.True(t, ok)
		assert.Equal(t, "/account/orders?page=2", path)
	})

	t.Run("seller guard admits admins", func(t *testing.T) {
		client := openClient(t, storage)
		r := withClient(httptest.NewRequest(http.MethodGet, "/seller/products", nil), client)
		require.NoError(t, client.Auth.Login(r.Context(), authsession.Identity{Email: "admin@example.com", Admin: true}))

		w := serveGuarded(t, requireSeller[struct{}](g), r)
		assert.Equal(t, http.StatusOK, w.Code)

		require.NoError(t, client.Auth.Logout(r.Context()))
	})
}
