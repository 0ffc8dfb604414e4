// Package config loads typed configuration from environment variables and
// optional dotenv files.
//
// Struct fields are bound with caarlos0/env tags and dotenv files are read
// with joho/godotenv:
//
//	type Config struct {
//		AppEnv   string `env:"APP_ENV" envDefault:"development"`
//		LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
//	}
//
//	cfg, err := config.Load[Config](config.WithEnvFiles(".env"))
//
// Variables already set in the process environment take precedence over
// values from files. Tests can pass WithEnvironment to avoid touching the
// process environment.
package config
