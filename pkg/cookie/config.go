package cookie

// Config is the environment configuration of a Manager.
type Config struct {
	Secrets []string `env:"COOKIE_SECRETS" envSeparator:","`
	Domain  string   `env:"COOKIE_DOMAIN"`
	Secure  bool     `env:"COOKIE_SECURE" envDefault:"false"`
}

// NewFromConfig creates a Manager from cfg. opts are applied after the config values.
func NewFromConfig(cfg Config, opts ...Option) (*Manager, error) {
	base := make([]Option, 0, 2+len(opts))
	if cfg.Domain != "" {
		base = append(base, WithDomain(cfg.Domain))
	}
	if cfg.Secure {
		base = append(base, WithSecure(true))
	}
	return New(cfg.Secrets, append(base, opts...)...)
}
