package backend

import "time"

// Config is the environment configuration of a Client.
type Config struct {
	BaseURL          string        `env:"BACKEND_URL" envDefault:"http://localhost:3000"`
	Timeout          time.Duration `env:"BACKEND_TIMEOUT" envDefault:"10s"`
	RetryAttempts    uint64        `env:"BACKEND_RETRY_ATTEMPTS" envDefault:"3"`
	RetryBaseDelay   time.Duration `env:"BACKEND_RETRY_BASE_DELAY" envDefault:"200ms"`
	ProductCacheSize int           `env:"BACKEND_PRODUCT_CACHE_SIZE" envDefault:"512"`
	ProductCacheTTL  time.Duration `env:"BACKEND_PRODUCT_CACHE_TTL" envDefault:"1m"`
}
