package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/storefront/pkg/config"
)

type testConfig struct {
	Addr      string        `env:"CFGTEST_ADDR" envDefault:":8080"`
	Timeout   time.Duration `env:"CFGTEST_TIMEOUT" envDefault:"10s"`
	Secrets   []string      `env:"CFGTEST_SECRETS" envSeparator:","`
	FromFile  string        `env:"CFGTEST_FROM_FILE"`
	Overwrite string        `env:"CFGTEST_OVERWRITE"`
}

type requiredConfig struct {
	Value string `env:"CFGTEST_REQUIRED,required"`
}

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		var cfg testConfig
		require.NoError(t, config.Load(&cfg, config.WithEnvFiles()))

		assert.Equal(t, ":8080", cfg.Addr)
		assert.Equal(t, 10*time.Second, cfg.Timeout)
		assert.Empty(t, cfg.Secrets)
	})

	t.Run("environment values", func(t *testing.T) {
		t.Setenv("CFGTEST_ADDR", ":9090")
		t.Setenv("CFGTEST_TIMEOUT", "250ms")
		t.Setenv("CFGTEST_SECRETS", "a,b")

		var cfg testConfig
		require.NoError(t, config.Load(&cfg, config.WithEnvFiles()))

		assert.Equal(t, ":9090", cfg.Addr)
		assert.Equal(t, 250*time.Millisecond, cfg.Timeout)
		assert.Equal(t, []string{"a", "b"}, cfg.Secrets)
	})

	t.Run("env file does not override process env", func(t *testing.T) {
		dir := t.TempDir()
		file := filepath.Join(dir, "test.env")
		require.NoError(t, os.WriteFile(file, []byte("CFGTEST_FROM_FILE=file\nCFGTEST_OVERWRITE=file\n"), 0o600))
		t.Setenv("CFGTEST_OVERWRITE", "process")
		t.Cleanup(func() { _ = os.Unsetenv("CFGTEST_FROM_FILE") })

		var cfg testConfig
		require.NoError(t, config.Load(&cfg, config.WithEnvFiles(file, filepath.Join(dir, "missing.env"))))

		assert.Equal(t, "file", cfg.FromFile)
		assert.Equal(t, "process", cfg.Overwrite)
	})

	t.Run("prefix", func(t *testing.T) {
		t.Setenv("APP_CFGTEST_ADDR", ":7070")

		var cfg testConfig
		require.NoError(t, config.Load(&cfg, config.WithEnvFiles(), config.WithPrefix("APP_")))
		assert.Equal(t, ":7070", cfg.Addr)
	})

	t.Run("required missing", func(t *testing.T) {
		var cfg requiredConfig
		assert.ErrorIs(t, config.Load(&cfg, config.WithEnvFiles()), config.ErrParsingConfig)
	})

	t.Run("nil pointer", func(t *testing.T) {
		var cfg *testConfig
		assert.ErrorIs(t, config.Load(cfg), config.ErrNilPointer)
		assert.Panics(t, func() { config.MustLoad(cfg) })
	})
}
