package storefront

import (
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrymomot/storefront/handler"
	"github.com/dmitrymomot/storefront/pkg/logger"
	"github.com/dmitrymomot/storefront/svc/authsession"
)

const (
	loginPage   = "/login"
	accountPage = "/account"
)

type guard struct {
	retryAfter time.Duration
	logger     *slog.Logger
}

// requireAuth admits identified visitors. Guests get 401, or a redirect to the
// login page for browser navigations, and returnTo is remembered for after
// login. An empty returnTo remembers the request URI of GET requests.
func requireAuth[R any](g guard, returnTo string) handler.Decorator[Context, R] {
	return requireRole[R](g, returnTo, nil, handler.HTTPError{})
}

// requireAdmin admits admins. Other identified visitors get 403, or a redirect
// to the account page for browser navigations.
func requireAdmin[R any](g guard) handler.Decorator[Context, R] {
	return requireRole[R](g, "", func(id authsession.Identity) bool { return id.Admin }, ErrAdminRequired)
}

// requireSeller admits sellers and admins.
func requireSeller[R any](g guard) handler.Decorator[Context, R] {
	return requireRole[R](g, "", func(id authsession.Identity) bool { return id.Seller || id.Admin }, ErrSellerRequired)
}

// requireRole never decides before the session is ready.
func requireRole[R any](g guard, returnTo string, allowed func(authsession.Identity) bool, denied handler.HTTPError) handler.Decorator[Context, R] {
	return func(next handler.HandlerFunc[Context, R]) handler.HandlerFunc[Context, R] {
		return func(ctx Context, req R) handler.Response {
			client := ctx.Shopper()
			if client == nil || !client.Auth.Ready() {
				return g.notReady()
			}

			identity, ok := client.Auth.Identity()
			if !ok {
				return g.loginRequired(ctx, returnTo)
			}

			if allowed != nil && !allowed(identity) {
				if wantsHTML(ctx.Request()) {
					return handler.Redirect(accountPage)
				}
				return handler.Error(denied)
			}

			return next(ctx, req)
		}
	}
}

func (g guard) notReady() handler.Response {
	seconds := max(1, int(math.Ceil(g.retryAfter.Seconds())))
	return handler.JSONError(ErrNotReady, handler.WithJSONHeader("Retry-After", strconv.Itoa(seconds)))
}

func (g guard) loginRequired(ctx Context, returnTo string) handler.Response {
	r := ctx.Request()
	if returnTo == "" && r.Method == http.MethodGet {
		returnTo = r.URL.RequestURI()
	}

	if returnTo != "" {
		if err := ctx.Shopper().RememberReturnPath(ctx, returnTo); err != nil {
			g.logger.WarnContext(ctx, "failed to remember return path",
				logger.Component("guard"),
				logger.Error(err),
			)
		}
	}

	if wantsHTML(r) {
		target := loginPage
		if returnTo != "" {
			target += "?next=" + url.QueryEscape(returnTo)
		}
		return handler.Redirect(target)
	}
	return handler.Error(ErrLoginRequired)
}

// wantsHTML reports a browser navigation rather than an API call.
func wantsHTML(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "text/html")
}
