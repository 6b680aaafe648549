package config_test

import (
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/validation/pkg/config"
)

type defaultsConfig struct {
	Format      string `env:"CONFIG_TEST_FORMAT" envDefault:"yaml"`
	Concurrency int    `env:"CONFIG_TEST_CONCURRENCY" envDefault:"4"`
	FailFast    bool   `env:"CONFIG_TEST_FAIL_FAST" envDefault:"true"`
}

type overrideConfig struct {
	Format      string `env:"CONFIG_TEST_OVERRIDE_FORMAT" envDefault:"yaml"`
	Concurrency int    `env:"CONFIG_TEST_OVERRIDE_CONCURRENCY" envDefault:"4"`
}

type cachedConfig struct {
	Value string `env:"CONFIG_TEST_CACHED" envDefault:"initial"`
}

type requiredConfig struct {
	Value string `env:"CONFIG_TEST_REQUIRED,required"`
}

type fileConfig struct {
	Loaded string `env:"CONFIG_TEST_FROM_FILE"`
	Preset string `env:"CONFIG_TEST_PRESET"`
}

func TestLoad(t *testing.T) {
	t.Run("applies defaults", func(t *testing.T) {
		var cfg defaultsConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, "yaml", cfg.Format)
		assert.Equal(t, 4, cfg.Concurrency)
		assert.True(t, cfg.FailFast)
	})

	t.Run("reads environment variables", func(t *testing.T) {
		t.Setenv("CONFIG_TEST_OVERRIDE_FORMAT", "json")
		t.Setenv("CONFIG_TEST_OVERRIDE_CONCURRENCY", "16")

		var cfg overrideConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, "json", cfg.Format)
		assert.Equal(t, 16, cfg.Concurrency)
	})

	t.Run("caches per type", func(t *testing.T) {
		t.Setenv("CONFIG_TEST_CACHED", "first")
		var first cachedConfig
		require.NoError(t, config.Load(&first))

		t.Setenv("CONFIG_TEST_CACHED", "second")
		var second cachedConfig
		require.NoError(t, config.Load(&second))
		assert.Equal(t, "first", second.Value)

		var reloaded cachedConfig
		require.NoError(t, config.ForceReloadConfig(&reloaded))
		assert.Equal(t, "second", reloaded.Value)
	})

	t.Run("reports missing required variables", func(t *testing.T) {
		config.ResetCache()
		var cfg requiredConfig
		err := config.Load(&cfg)
		assert.ErrorIs(t, err, config.ErrParsingConfig)
		assert.Panics(t, func() { config.MustLoad(&cfg) })

		t.Setenv("CONFIG_TEST_REQUIRED", "present")
		config.ResetCache()
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, "present", cfg.Value)
	})

	t.Run("rejects nil pointers", func(t *testing.T) {
		assert.ErrorIs(t, config.Load[defaultsConfig](nil), config.ErrNilPointer)
	})

	t.Run("concurrent loads agree", func(t *testing.T) {
		config.ResetCache()
		var wg sync.WaitGroup
		for range 10 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				var cfg defaultsConfig
				assert.NoError(t, config.Load(&cfg))
				assert.Equal(t, 4, cfg.Concurrency)
			}()
		}
		wg.Wait()
	})
}

func TestLoadEnv(t *testing.T) {
	t.Run("loads files without overriding the environment", func(t *testing.T) {
		t.Setenv("CONFIG_TEST_PRESET", "from-env")
		t.Cleanup(func() { os.Unsetenv("CONFIG_TEST_FROM_FILE") })
		config.ResetCache()

		require.NoError(t, config.LoadEnv("testdata/.env.test"))

		var cfg fileConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, "from-env", cfg.Preset)
		assert.Equal(t, "loaded", cfg.Loaded)
	})

	t.Run("fails for missing files", func(t *testing.T) {
		err := config.LoadEnv("testdata/missing.env")
		assert.ErrorIs(t, err, config.ErrLoadingEnvFile)
		assert.Panics(t, func() { config.MustLoadEnv("testdata/missing.env") })
	})
}
