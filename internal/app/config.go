package app

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/dmitrymomot/mentionkit/pkg/httpserver"
	"github.com/dmitrymomot/mentionkit/pkg/pg"
	"github.com/dmitrymomot/mentionkit/pkg/ratelimiter"
	"github.com/dmitrymomot/mentionkit/pkg/redis"
)

// Directory backends.
const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
)

// Lookup caches.
const (
	CacheNone  = "none"
	CacheLRU   = "lru"
	CacheRedis = "redis"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the service configuration, read from the environment.
type Config struct {
	AppName  string `env:"APP_NAME" envDefault:"mentionkit"`
	AppEnv   string `env:"APP_ENV" envDefault:"development"`
	LogLevel string `env:"LOG_LEVEL"` // overrides the APP_ENV default when set

	DefaultTenant string `env:"DEFAULT_TENANT" envDefault:"demo"`
	SuggestLimit  int    `env:"SUGGEST_LIMIT" envDefault:"6"`

	// CORSAllowedOrigins lists browser origins allowed to call the API; "*" allows any.
	CORSAllowedOrigins []string `env:"CORS_ALLOW_ORIGIN" envSeparator:"," envDefault:"*"`

	// TrustedIPHeaders lists proxy headers that carry the client address, most trusted first.
	TrustedIPHeaders []string `env:"TRUSTED_IP_HEADERS" envSeparator:","`

	// RateLimitEnabled turns on per-tenant limiting of /suggest and /resolve.
	RateLimitEnabled bool `env:"RATE_LIMIT_ENABLED" envDefault:"false"`

	Directory DirectoryConfig
	HTTP      httpserver.Config
	Postgres  pg.Config
	Redis     redis.Config
	RateLimit ratelimiter.Config
}

// DirectoryConfig selects where tenant entities live and how lookups are cached.
type DirectoryConfig struct {
	Backend   string        `env:"DIRECTORY_BACKEND" envDefault:"memory"`
	SeedPath  string        `env:"DIRECTORY_SEED_PATH"`
	Cache     string        `env:"DIRECTORY_CACHE" envDefault:"none"`
	CacheSize int           `env:"DIRECTORY_CACHE_SIZE" envDefault:"1024"`
	CacheTTL  time.Duration `env:"DIRECTORY_CACHE_TTL" envDefault:"5m"`
}

// Validate reports the first setting the service cannot start with.
func (c Config) Validate() error {
	switch c.Directory.Backend {
	case BackendMemory, BackendPostgres:
	default:
		return fmt.Errorf("%w: DIRECTORY_BACKEND must be %q or %q", ErrInvalidConfig, BackendMemory, BackendPostgres)
	}
	switch c.Directory.Cache {
	case CacheNone, CacheRedis:
	case CacheLRU:
		if c.Directory.CacheSize <= 0 {
			return fmt.Errorf("%w: DIRECTORY_CACHE_SIZE must be positive", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: DIRECTORY_CACHE must be %q, %q or %q", ErrInvalidConfig, CacheNone, CacheLRU, CacheRedis)
	}
	if c.Directory.CacheTTL < 0 {
		return fmt.Errorf("%w: DIRECTORY_CACHE_TTL must not be negative", ErrInvalidConfig)
	}
	if c.SuggestLimit <= 0 {
		return fmt.Errorf("%w: SUGGEST_LIMIT must be positive", ErrInvalidConfig)
	}
	if len(c.CORSAllowedOrigins) == 0 || slices.ContainsFunc(c.CORSAllowedOrigins, func(o string) bool {
		return strings.TrimSpace(o) == ""
	}) {
		return fmt.Errorf("%w: CORS_ALLOW_ORIGIN must list non-empty origins", ErrInvalidConfig)
	}
	return nil
}
