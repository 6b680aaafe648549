package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// cached holds the parse result for one configuration type.
type cached struct {
	once  sync.Once
	value any
	err   error
}

var (
	mu       sync.Mutex
	registry = map[reflect.Type]*cached{}

	dotenvOnce sync.Once
)

// Load fills v from environment variables according to its `env` tags.
//
// The first call loads a .env file from the working directory if one exists.
// Each configuration type is parsed once; later calls copy the cached value.
//
//	type Settings struct {
//		LogLevel    string `env:"VCHECK_LOG_LEVEL" envDefault:"info"`
//		Concurrency int    `env:"VCHECK_CONCURRENCY" envDefault:"4"`
//	}
//
//	var s Settings
//	if err := config.Load(&s); err != nil {
//		return err
//	}
func Load[T any](v *T) error {
	if v == nil {
		return ErrNilPointer
	}
	dotenvOnce.Do(func() {
		// A missing .env file is not an error.
		_ = godotenv.Load()
	})

	c := entryFor[T]()
	c.once.Do(func() {
		var fresh T
		if err := env.Parse(&fresh); err != nil {
			c.err = errors.Join(ErrParsingConfig, err)
			return
		}
		c.value = fresh
	})
	if c.err != nil {
		return c.err
	}
	*v = c.value.(T)
	return nil
}

// MustLoad is like Load but panics on error.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("config: failed to load %s: %v", reflect.TypeFor[T](), err))
	}
}

// LoadEnv loads the given env files into the process environment without
// overriding variables that are already set. It replaces the implicit .env
// lookup done by the first Load.
func LoadEnv(paths ...string) error {
	dotenvOnce.Do(func() {})
	if err := godotenv.Load(paths...); err != nil {
		return errors.Join(ErrLoadingEnvFile, err)
	}
	return nil
}

// MustLoadEnv is like LoadEnv but panics on error.
func MustLoadEnv(paths ...string) {
	if err := LoadEnv(paths...); err != nil {
		panic(err)
	}
}

// ResetCache forgets every parsed configuration. Mostly useful in tests.
func ResetCache() {
	mu.Lock()
	defer mu.Unlock()
	clear(registry)
}

// ForceReloadConfig parses T again, replacing the cached value.
func ForceReloadConfig[T any](v *T) error {
	mu.Lock()
	delete(registry, reflect.TypeFor[T]())
	mu.Unlock()
	return Load(v)
}

func entryFor[T any]() *cached {
	key := reflect.TypeFor[T]()
	mu.Lock()
	defer mu.Unlock()
	c, ok := registry[key]
	if !ok {
		c = &cached{}
		registry[key] = c
	}
	return c
}
