package storefront

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"github.com/dmitrymomot/storefront/binder"
	"github.com/dmitrymomot/storefront/handler"
	"github.com/dmitrymomot/storefront/pkg/clientip"
	"github.com/dmitrymomot/storefront/pkg/backend"
	"github.com/dmitrymomot/storefront/pkg/httpserver"
	"github.com/dmitrymomot/storefront/pkg/logger"
	"github.com/dmitrymomot/storefront/pkg/visitor"
	"github.com/dmitrymomot/storefront/svc/shopper"
)

const healthTimeout = 2 * time.Second

// Deps are the collaborators of the storefront router.
type Deps struct {
	Config   Config
	Logger   *slog.Logger
	Cookies  visitor.CookieManager
	Registry *shopper.Registry
	Backend  Backend
	// Checks back the /readyz probe.
	Checks []httpserver.Check
}

type module struct {
	backend      Backend
	logger       *slog.Logger
	guard        guard
	errorHandler handler.ErrorHandler[Context]
}

// Router builds the storefront HTTP API.
//
// Every visitor route runs behind visitor.Middleware (device and session
// cookies) and shopper.Registry.Middleware (hydrated Auth and Cart, one
// request per device at a time). Each such request counts as visitor activity.
//
//	r := storefront.Router(storefront.Deps{
//		Config:   cfg.Storefront,
//		Logger:   log,
//		Cookies:  cookies,
//		Registry: shopper.NewRegistry(sessionStorage, durableStorage),
//		Backend:  api,
//	})
func Router(deps Deps) http.Handler {
	log := deps.Logger
	if log == nil {
		log = logger.Discard()
	}

	m := &module{
		backend:      deps.Backend,
		logger:       log,
		guard:        guard{retryAfter: deps.Config.RetryAfter, logger: log},
		errorHandler: handler.NewErrorHandler[Context](log, classify),
	}
	limiter := newIPLimiter(deps.Config.LoginRate, deps.Config.LoginBurst, deps.Config.LimiterIdle)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(clientip.New(deps.Config.TrustedProxyHeaders...).Middleware)
	r.Use(requestLogger(log))
	r.Use(middleware.Recoverer)

	if len(deps.Config.AllowedOrigins) > 0 {
		r.Use(cors.New(cors.Options{
			AllowedOrigins:   deps.Config.AllowedOrigins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
			AllowedHeaders:   []string{"Accept", "Content-Type"},
			AllowCredentials: true,
			MaxAge:           300,
		}).Handler)
	}

	r.Get("/healthz", httpserver.HealthCheckHandler(log, healthTimeout))
	r.Get("/readyz", httpserver.HealthCheckHandler(log, healthTimeout, deps.Checks...))
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(visitor.Middleware(deps.Cookies, log))
		r.Use(deps.Registry.Middleware)
		r.Use(m.activity)

		r.Route("/auth", func(r chi.Router) {
			r.With(limiter.middleware).Post("/login", wrap[loginRequest](m, m.login, withJSON[loginRequest]()))
			r.With(limiter.middleware).Post("/register", wrap[registerRequest](m, m.register, withJSON[registerRequest]()))
			r.Post("/logout", wrap[struct{}](m, m.logout))
			r.Get("/me", wrap[struct{}](m, m.me))
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", wrap[struct{}](m, m.getCart))
			r.Delete("/", wrap[struct{}](m, m.clearCart))
			r.Post("/items", wrap[addItemRequest](m, m.addItem, withJSON[addItemRequest]()))
			r.Patch("/items/{id}", wrap[updateQuantityRequest](m, m.updateQuantity, withPath[updateQuantityRequest](), withJSON[updateQuantityRequest]()))
			r.Delete("/items/{id}", wrap[itemRequest](m, m.removeItem, withPath[itemRequest]()))
		})

		r.Get("/products", wrap[listProductsRequest](m, m.listProducts, withQuery[listProductsRequest]()))
		r.Get("/products/{id}", wrap[productRequest](m, m.getProduct, withPath[productRequest]()))

		r.Route("/checkout", func(r chi.Router) {
			r.Post("/shipping", wrap[shippingRequest](m, m.quoteShipping, withJSON[shippingRequest]()))
			r.Post("/", wrap[checkoutRequest](m, m.checkout,
				withJSON[checkoutRequest](),
				handler.WithDecorators(requireAuth[checkoutRequest](m.guard, checkoutPage)),
			))
			r.Post("/success", wrap[struct{}](m, m.checkoutSuccess))
		})

		r.Get("/account/orders", wrap[struct{}](m, m.customerOrders,
			handler.WithDecorators(requireAuth[struct{}](m.guard, "")),
		))

		r.Route("/admin", func(r chi.Router) {
			r.Get("/orders", wrap[struct{}](m, m.adminOrders, handler.WithDecorators(requireAdmin[struct{}](m.guard))))
			r.Get("/products", wrap[struct{}](m, m.adminProducts, handler.WithDecorators(requireAdmin[struct{}](m.guard))))
			r.Post("/products", wrap[backend.Product](m, m.saveProduct,
				withJSON[backend.Product](),
				handler.WithDecorators(requireAdmin[backend.Product](m.guard)),
			))
			r.Delete("/products/{id}", wrap[productRequest](m, m.deleteProduct,
				withPath[productRequest](),
				handler.WithDecorators(requireAdmin[productRequest](m.guard)),
			))
		})

		r.Route("/seller", func(r chi.Router) {
			r.Get("/products", wrap[struct{}](m, m.sellerProducts, handler.WithDecorators(requireSeller[struct{}](m.guard))))
			r.Post("/products", wrap[backend.Product](m, m.saveProduct,
				withJSON[backend.Product](),
				handler.WithDecorators(requireSeller[backend.Product](m.guard)),
			))
		})
	})

	return r
}

// wrap adapts a visitor handler with the storefront context and error handler.
func wrap[R any](m *module, h handler.HandlerFunc[Context, R], opts ...handler.WrapOption[Context, R]) http.HandlerFunc {
	base := []handler.WrapOption[Context, R]{
		handler.WithContextFactory[Context, R](newContext),
		handler.WithErrorHandler[Context, R](m.errorHandler),
	}
	return handler.Wrap(h, append(base, opts...)...)
}

func withJSON[R any]() handler.WrapOption[Context, R] {
	return handler.WithBinders[Context, R](binder.JSON())
}

func withPath[R any]() handler.WrapOption[Context, R] {
	return handler.WithBinders[Context, R](binder.Path(chi.URLParam))
}

func withQuery[R any]() handler.WrapOption[Context, R] {
	return handler.WithBinders[Context, R](binder.Query())
}

// activity refreshes the identity's lastActivity; a failed touch is logged and
// the request goes on.
func (m *module) activity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if client, ok := shopper.FromContext(r.Context()); ok {
			if err := client.Activity(r.Context()); err != nil {
				m.logger.WarnContext(r.Context(), "activity touch failed",
					logger.Component("storefront"),
					logger.Error(err),
				)
			}
		}
		next.ServeHTTP(w, r)
	})
}

// requestLogger logs one line per request with status and latency.
func requestLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			log.LogAttrs(r.Context(), slog.LevelDebug, "http request",
				logger.RequestID(middleware.GetReqID(r.Context())),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("client_ip", clientIP(r)),
				slog.Int("status", ww.Status()),
				slog.Int("bytes", ww.BytesWritten()),
				logger.Duration(time.Since(start)),
			)
		})
	}
}
