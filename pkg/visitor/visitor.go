package visitor

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/storefront/pkg/cookie"
	"github.com/dmitrymomot/storefront/pkg/logger"
)

const (
	DeviceCookie  = "did"
	SessionCookie = "vsid"

	// DeviceMaxAge is the lifetime of the device cookie.
	DeviceMaxAge = 400 * 24 * time.Hour
)

// IDs identifies one browser.
type IDs struct {
	DeviceID  string
	SessionID string
}

type contextKey struct{}

// WithContext stores ids in ctx.
func WithContext(ctx context.Context, ids IDs) context.Context {
	return context.WithValue(ctx, contextKey{}, ids)
}

// FromContext returns the ids placed by Middleware.
func FromContext(ctx context.Context) (IDs, bool) {
	if ctx == nil {
		return IDs{}, false
	}
	ids, ok := ctx.Value(contextKey{}).(IDs)
	return ids, ok
}

// LoggerExtractor adds the device id to log records.
func LoggerExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		if ids, ok := FromContext(ctx); ok {
			return logger.DeviceID(ids.DeviceID), true
		}
		return slog.Attr{}, false
	}
}

// CookieManager reads and writes signed cookies.
type CookieManager interface {
	SetSigned(w http.ResponseWriter, name, value string, opts ...cookie.Option)
	GetSigned(r *http.Request, name string) (string, error)
}

// Middleware guarantees both cookies and places the ids in the request context.
func Middleware(cookies CookieManager, log *slog.Logger) func(http.Handler) http.Handler {
	if log == nil {
		log = logger.Discard()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ids := IDs{
				DeviceID:  ensure(w, r, cookies, log, DeviceCookie, int(DeviceMaxAge/time.Second)),
				SessionID: ensure(w, r, cookies, log, SessionCookie, 0),
			}
			next.ServeHTTP(w, r.WithContext(WithContext(r.Context(), ids)))
		})
	}
}

// ensure returns the id stored in cookie name or issues a new one.
func ensure(w http.ResponseWriter, r *http.Request, cookies CookieManager, log *slog.Logger, name string, maxAge int) string {
	value, err := cookies.GetSigned(r, name)
	if err == nil {
		if _, perr := uuid.Parse(value); perr == nil {
			return value
		}
	}
	if err != nil && !errors.Is(err, cookie.ErrNotFound) {
		log.WarnContext(r.Context(), "replacing invalid visitor cookie",
			logger.Component("visitor"),
			slog.String("cookie", name),
			logger.Error(err),
		)
	}

	id := uuid.NewString()
	cookies.SetSigned(w, name, id, cookie.WithMaxAge(maxAge))
	return id
}
