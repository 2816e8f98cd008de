package storefront

import "time"

// Config holds the HTTP surface settings.
type Config struct {
	// AllowedOrigins lists CORS origins. Empty disables cross-origin access.
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`

	// TrustedProxyHeaders name the forwarding headers set by the fronting
	// proxy, e.g. "CF-Connecting-IP,X-Forwarded-For". Empty trusts the peer only.
	TrustedProxyHeaders []string `env:"TRUSTED_PROXY_HEADERS" envSeparator:","`

	// LoginRate and LoginBurst throttle /auth/login and /auth/register per client IP.
	LoginRate  float64 `env:"LOGIN_RATE_PER_SECOND" envDefault:"0.2"`
	LoginBurst int     `env:"LOGIN_BURST" envDefault:"5"`

	// LimiterIdle is how long an IP keeps its limiter after its last request.
	LimiterIdle time.Duration `env:"LOGIN_LIMITER_IDLE" envDefault:"10m"`

	// RetryAfter is advertised when a visitor's session is not ready.
	RetryAfter time.Duration `env:"NOT_READY_RETRY_AFTER" envDefault:"1s"`
}
