package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/storefront/modules/storefront"
	"github.com/dmitrymomot/storefront/pkg/backend"
	"github.com/dmitrymomot/storefront/pkg/config"
	"github.com/dmitrymomot/storefront/pkg/cookie"
	"github.com/dmitrymomot/storefront/pkg/httpserver"
	"github.com/dmitrymomot/storefront/pkg/kvstore"
	"github.com/dmitrymomot/storefront/pkg/logger"
	"github.com/dmitrymomot/storefront/pkg/redis"
	"github.com/dmitrymomot/storefront/pkg/visitor"
	"github.com/dmitrymomot/storefront/svc/shopper"
)

const (
	driverMemory = "memory"
	driverRedis  = "redis"
)

type appConfig struct {
	Env     string `env:"APP_ENV" envDefault:"development"`
	Service string `env:"SERVICE_NAME" envDefault:"storefront"`

	StorageDriver    string        `env:"STORAGE_DRIVER" envDefault:"memory"`
	MaxInactivity    time.Duration `env:"SESSION_MAX_INACTIVITY" envDefault:"20h"`
	MemoryCleanup    time.Duration `env:"MEMORY_CLEANUP_INTERVAL" envDefault:"5m"`
	ActivityThrottle time.Duration `env:"ACTIVITY_THRESHOLD" envDefault:"0s"`

	HTTP       httpserver.Config
	Storefront storefront.Config
	Cookie     cookie.Config
	Backend    backend.Config
	Redis      redis.Config
}

func main() {
	if err := run(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	var cfg appConfig
	if err := config.Load(&cfg); err != nil {
		return err
	}

	log := logger.New(
		logger.WithEnvironment(cfg.Env, cfg.Service),
		logger.WithContextExtractors(requestIDExtractor, visitor.LoggerExtractor()),
	)

	stores, err := openStorage(ctx, cfg, log)
	if err != nil {
		return err
	}

	cookies, err := cookie.NewFromConfig(cfg.Cookie)
	if err != nil {
		return err
	}

	api, err := backend.New(cfg.Backend, backend.WithLogger(log))
	if err != nil {
		return err
	}

	registry := shopper.NewRegistry(stores.session, stores.durable,
		shopper.WithLogger(log),
		shopper.WithMaxInactivity(cfg.MaxInactivity),
		shopper.WithActivityThreshold(cfg.ActivityThrottle),
	)

	router := storefront.Router(storefront.Deps{
		Config:   cfg.Storefront,
		Logger:   log,
		Cookies:  cookies,
		Registry: registry,
		Backend:  api,
		Checks:   stores.checks,
	})

	srv := httpserver.NewFromConfig(cfg.HTTP,
		httpserver.WithLogger(log),
		httpserver.WithStopHook(stores.close),
	)
	return srv.Run(ctx, router)
}

type storage struct {
	session kvstore.Storage
	durable kvstore.Storage
	checks  []httpserver.Check
	close   func(context.Context) error
}

// openStorage builds the session and device scopes. Session data expires after
// the inactivity ceiling; device data lives as long as the device cookie.
func openStorage(ctx context.Context, cfg appConfig, log *slog.Logger) (storage, error) {
	switch cfg.StorageDriver {
	case driverMemory:
		session := kvstore.NewMemoryStorage(cfg.MemoryCleanup, kvstore.WithMemoryTTL(cfg.MaxInactivity))
		durable := kvstore.NewMemoryStorage(cfg.MemoryCleanup, kvstore.WithMemoryTTL(visitor.DeviceMaxAge))
		log.WarnContext(ctx, "using in-memory storage, visitor data is lost on restart",
			logger.Component("main"),
		)
		return storage{
			session: session,
			durable: durable,
			close: func(context.Context) error {
				return errors.Join(session.Close(), durable.Close())
			},
		}, nil

	case driverRedis:
		client, err := redis.Connect(ctx, cfg.Redis)
		if err != nil {
			return storage{}, err
		}
		return storage{
			session: kvstore.NewRedisStorage(client, cfg.MaxInactivity),
			durable: kvstore.NewRedisStorage(client, visitor.DeviceMaxAge),
			checks:  []httpserver.Check{{Name: "redis", Fn: redis.Healthcheck(client)}},
			close: func(context.Context) error {
				return client.Close()
			},
		}, nil
	}

	return storage{}, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
}

func requestIDExtractor(ctx context.Context) (slog.Attr, bool) {
	id := middleware.GetReqID(ctx)
	if id == "" {
		return slog.Attr{}, false
	}
	return logger.RequestID(id), true
}
