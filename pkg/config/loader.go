package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Option configures Load.
type Option func(*loader)

type loader struct {
	files       []string
	filesStrict bool
	environ     map[string]string
}

// WithEnvFiles reads variables from the given dotenv files. Missing files are
// skipped. Real environment variables win over file values, and earlier
// files win over later ones.
func WithEnvFiles(paths ...string) Option {
	return func(l *loader) {
		l.files = append(l.files, paths...)
	}
}

// WithRequiredEnvFiles is WithEnvFiles that fails on missing files.
func WithRequiredEnvFiles(paths ...string) Option {
	return func(l *loader) {
		l.files = append(l.files, paths...)
		l.filesStrict = true
	}
}

// WithEnvironment replaces the process environment, mostly for tests.
func WithEnvironment(environ map[string]string) Option {
	return func(l *loader) {
		l.environ = environ
	}
}

// Load parses environment variables into a new T according to its `env`
// struct tags. Without options, a ".env" file in the working directory is
// read when present.
//
//	type Config struct {
//		Addr string `env:"HTTP_ADDR" envDefault:":8080"`
//	}
//
//	cfg, err := config.Load[Config]()
func Load[T any](opts ...Option) (T, error) {
	l := &loader{}
	for _, opt := range opts {
		opt(l)
	}
	if len(opts) == 0 {
		l.files = []string{".env"}
	}

	var zero T
	environ, err := l.environment()
	if err != nil {
		return zero, err
	}

	cfg, err := env.ParseAsWithOptions[T](env.Options{Environment: environ})
	if err != nil {
		return zero, errors.Join(ErrParsingConfig, err)
	}
	return cfg, nil
}

// MustLoad is Load that panics on error. Use it for configuration the
// process cannot start without.
func MustLoad[T any](opts ...Option) T {
	cfg, err := Load[T](opts...)
	if err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
	return cfg
}

func (l *loader) environment() (map[string]string, error) {
	out := make(map[string]string)

	for _, path := range l.files {
		values, err := godotenv.Read(path)
		if err != nil {
			if !l.filesStrict && errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, errors.Join(ErrReadingEnvFile, err)
		}
		for k, v := range values {
			if _, ok := out[k]; !ok {
				out[k] = v
			}
		}
	}

	if l.environ != nil {
		for k, v := range l.environ {
			out[k] = v
		}
		return out, nil
	}

	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			out[k] = v
		}
	}
	return out, nil
}
