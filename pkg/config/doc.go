// Package config loads typed configuration from environment variables.
//
// Configuration structs declare their variables with `env` and `envDefault`
// tags (github.com/caarlos0/env). Load parses each struct type once and
// serves later calls from a per-type cache; a .env file in the working
// directory is loaded on first use (github.com/joho/godotenv).
//
// # Usage
//
//	type Settings struct {
//		OutputFormat string `env:"VCHECK_OUTPUT_FORMAT" envDefault:"yaml"`
//		CacheSize    int    `env:"VCHECK_CACHE_SIZE" envDefault:"1024"`
//	}
//
//	var s Settings
//	config.MustLoad(&s)
//
// LoadEnv loads explicit env files instead of the default .env; variables
// already present in the environment take precedence.
//
// # Error Handling
//
// Parse failures wrap ErrParsingConfig, env file failures wrap
// ErrLoadingEnvFile. A failed parse is cached like a successful one until
// ResetCache or ForceReloadConfig.
package config
