package handler_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/storefront/binder"
	"github.com/dmitrymomot/storefront/handler"
	"github.com/dmitrymomot/storefront/pkg/validator"
)

type echoRequest struct {
	Name string `json:"name"`
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) handler.JSONResponse {
	t.Helper()
	var body handler.JSONResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestWrap(t *testing.T) {
	t.Parallel()

	t.Run("binds request and renders data", func(t *testing.T) {
		t.Parallel()

		h := handler.Wrap(func(ctx handler.Context, req echoRequest) handler.Response {
			return handler.JSON(map[string]string{"hello": req.Name}, handler.WithJSONStatus(http.StatusCreated))
		}, handler.WithBinders[handler.Context, echoRequest](binder.JSON()))

		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"ana"}`))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
		assert.JSONEq(t, `{"data":{"hello":"ana"}}`, rec.Body.String())
	})

	t.Run("binder failure becomes bad request", func(t *testing.T) {
		t.Parallel()

		called := false
		h := handler.Wrap(func(ctx handler.Context, req echoRequest) handler.Response {
			called = true
			return handler.Empty()
		}, handler.WithBinders[handler.Context, echoRequest](binder.JSON()))

		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":`))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.False(t, called)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "bad_request", decodeBody(t, rec).Error.Code)
	})

	t.Run("decorators run outermost first", func(t *testing.T) {
		t.Parallel()

		var order []string
		trace := func(name string) handler.Decorator[handler.Context, echoRequest] {
			return func(next handler.HandlerFunc[handler.Context, echoRequest]) handler.HandlerFunc[handler.Context, echoRequest] {
				return func(ctx handler.Context, req echoRequest) handler.Response {
					order = append(order, name)
					return next(ctx, req)
				}
			}
		}

		h := handler.Wrap(func(ctx handler.Context, req echoRequest) handler.Response {
			order = append(order, "handler")
			return handler.Empty()
		}, handler.WithDecorators(trace("first"), trace("second")))

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, []string{"first", "second", "handler"}, order)
	})

	t.Run("nil response", func(t *testing.T) {
		t.Parallel()

		var handled error
		h := handler.Wrap(func(ctx handler.Context, req echoRequest) handler.Response {
			return nil
		}, handler.WithErrorHandler[handler.Context, echoRequest](func(ctx handler.Context, err error) {
			handled = err
			ctx.ResponseWriter().WriteHeader(http.StatusTeapot)
		}))

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.ErrorIs(t, handled, handler.ErrNilResponse)
		assert.Equal(t, http.StatusTeapot, rec.Code)
	})

	t.Run("context exposes request", func(t *testing.T) {
		t.Parallel()

		h := handler.Wrap(func(ctx handler.Context, req echoRequest) handler.Response {
			return handler.JSON(ctx.Request().URL.Path)
		})

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/cart", nil))
		assert.JSONEq(t, `{"data":"/cart"}`, rec.Body.String())
	})
}

func TestError(t *testing.T) {
	t.Parallel()

	var handled error
	h := handler.Wrap(func(ctx handler.Context, req echoRequest) handler.Response {
		return handler.Error(handler.ErrConflict)
	}, handler.WithErrorHandler[handler.Context, echoRequest](func(ctx handler.Context, err error) {
		handled = err
		handler.NewErrorHandler[handler.Context](nil)(ctx, err)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.ErrorIs(t, handled, handler.ErrConflict)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "conflict", decodeBody(t, rec).Error.Code)
}

func TestJSONError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"http error", handler.ErrForbidden, http.StatusForbidden, "forbidden"},
		{"wrapped http error", errors.Join(errors.New("boom"), handler.ErrNotFound), http.StatusNotFound, "not_found"},
		{"plain error hides message", errors.New("db password leaked"), http.StatusInternalServerError, "internal_server_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := httptest.NewRecorder()
			require.NoError(t, handler.JSONError(tt.err).Render(rec, httptest.NewRequest(http.MethodGet, "/", nil)))

			assert.Equal(t, tt.wantStatus, rec.Code)
			body := decodeBody(t, rec)
			require.NotNil(t, body.Error)
			assert.Equal(t, tt.wantCode, body.Error.Code)
			assert.NotContains(t, rec.Body.String(), "password")
		})
	}

	t.Run("validation errors carry field details", func(t *testing.T) {
		t.Parallel()
		err := validator.Apply(
			validator.Required("email", ""),
			validator.MinLen("password", "123", 6),
		)

		rec := httptest.NewRecorder()
		require.NoError(t, handler.JSONError(err).Render(rec, httptest.NewRequest(http.MethodPost, "/", nil)))

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		body := decodeBody(t, rec)
		require.NotNil(t, body.Error)
		assert.Equal(t, "validation_error", body.Error.Code)
		assert.Contains(t, body.Error.Details, "email")
		assert.Contains(t, body.Error.Details, "password")
	})

	t.Run("headers", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		resp := handler.JSONError(handler.ErrServiceUnavailable, handler.WithJSONHeader("Retry-After", "1"))
		require.NoError(t, resp.Render(rec, httptest.NewRequest(http.MethodGet, "/", nil)))

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Equal(t, "1", rec.Header().Get("Retry-After"))
	})
}

func TestNewErrorHandler(t *testing.T) {
	t.Parallel()

	errOutOfStock := errors.New("shop.out_of_stock")
	classify := func(err error) (handler.HTTPError, bool) {
		if errors.Is(err, errOutOfStock) {
			return handler.ErrConflict, true
		}
		return handler.HTTPError{}, false
	}

	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"classified", errOutOfStock, http.StatusConflict},
		{"unsupported media", binder.ErrUnsupportedMediaType, http.StatusUnsupportedMediaType},
		{"unknown", errors.New("unexpected"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h := handler.NewErrorHandler[handler.Context](nil, classify)

			rec := httptest.NewRecorder()
			h(handler.NewContext(rec, httptest.NewRequest(http.MethodGet, "/", nil)), tt.err)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestRedirect(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	require.NoError(t, handler.Redirect("/login?next=%2Fcheckout").Render(rec, httptest.NewRequest(http.MethodGet, "/checkout", nil)))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login?next=%2Fcheckout", rec.Header().Get("Location"))
}
