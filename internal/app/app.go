package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/dmitrymomot/mentionkit/internal/api"
	"github.com/dmitrymomot/mentionkit/pkg/clientip"
	"github.com/dmitrymomot/mentionkit/pkg/directory"
	"github.com/dmitrymomot/mentionkit/pkg/httpserver"
	"github.com/dmitrymomot/mentionkit/pkg/logger"
	"github.com/dmitrymomot/mentionkit/pkg/pg"
	"github.com/dmitrymomot/mentionkit/pkg/ratelimiter"
	"github.com/dmitrymomot/mentionkit/pkg/redis"
	"github.com/dmitrymomot/mentionkit/pkg/requestid"
	"github.com/dmitrymomot/mentionkit/pkg/tenant"
)

// NewLogger builds the service logger with request and tenant attributes
// pulled from the context.
func NewLogger(cfg Config) (*slog.Logger, error) {
	opts := []logger.Option{
		logger.WithEnvironment(cfg.AppEnv, cfg.AppName),
		logger.WithOutput(os.Stdout),
		logger.WithContextExtractors(
			requestid.LoggerExtractor(),
			tenant.LoggerExtractor(),
			clientip.LoggerExtractor(),
		),
	}
	if cfg.LogLevel != "" {
		level, err := logger.ParseLevel(cfg.LogLevel)
		if err != nil {
			return nil, errors.Join(ErrInvalidConfig, err)
		}
		opts = append(opts, logger.WithLevel(level))
	}
	return logger.New(opts...), nil
}

// App holds the directory and the backend connections it owns.
type App struct {
	cfg     Config
	log     *slog.Logger
	store   directory.Store
	limiter ratelimiter.Limiter
	checks  []httpserver.Check
	closers []func()
}

// Build opens the configured directory backend and lookup cache and seeds
// the directory. Close releases whatever Build opened, also after a failure.
func Build(ctx context.Context, cfg Config, log *slog.Logger) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	a := &App{cfg: cfg, log: log}

	store, err := a.openDirectory(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}
	if store, err = a.withCache(ctx, store); err != nil {
		a.Close()
		return nil, err
	}
	a.store = store

	if cfg.RateLimitEnabled {
		limits := ratelimiter.NewMemoryStore()
		a.closers = append(a.closers, limits.Close)
		bucket, err := ratelimiter.NewBucket(limits, cfg.RateLimit)
		if err != nil {
			a.Close()
			return nil, errors.Join(ErrInvalidConfig, err)
		}
		a.limiter = bucket
	}
	return a, nil
}

// Store returns the directory used by the API.
func (a *App) Store() directory.Store { return a.store }

// Handler returns the API routes over the directory.
func (a *App) Handler() http.Handler {
	opts := []api.Option{
		api.WithLogger(a.log),
		api.WithDefaultTenant(a.cfg.DefaultTenant),
		api.WithSuggestLimit(a.cfg.SuggestLimit),
		api.WithAllowedOrigins(trimAll(a.cfg.CORSAllowedOrigins)...),
		api.WithReadinessChecks(a.checks...),
		api.WithClientIP(clientip.New(a.cfg.TrustedIPHeaders...)),
	}
	if a.limiter != nil {
		opts = append(opts, api.WithRateLimiter(a.limiter))
	}
	return api.New(a.store, opts...).Routes()
}

// Run serves the API until ctx ends or the process is signalled.
func (a *App) Run(ctx context.Context) error {
	srv := httpserver.NewFromConfig(a.cfg.HTTP, httpserver.WithLogger(a.log))
	return srv.Run(ctx, a.Handler())
}

// Close releases backend connections in reverse order of opening.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

func (a *App) openDirectory(ctx context.Context) (directory.Store, error) {
	switch a.cfg.Directory.Backend {
	case BackendPostgres:
		pool, err := pg.Connect(ctx, a.cfg.Postgres)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, pool.Close)
		a.checks = append(a.checks, httpserver.Check{Name: "postgres", Probe: pg.Healthcheck(pool)})

		if err := pg.Migrate(ctx, pool, directory.Migrations(), a.cfg.Postgres, a.log); err != nil {
			return nil, err
		}
		store := directory.NewPostgresStore(pool)
		if err := a.seed(ctx, store); err != nil {
			return nil, err
		}
		return store, nil

	default:
		if a.cfg.Directory.SeedPath == "" {
			a.log.InfoContext(ctx, "serving the demo directory", logger.TenantID(directory.DemoTenant))
			return directory.DemoDataset(), nil
		}
		store, err := directory.NewMemoryStore()
		if err != nil {
			return nil, err
		}
		if err := a.seed(ctx, store); err != nil {
			return nil, err
		}
		return store, nil
	}
}

func (a *App) seed(ctx context.Context, w directory.Writer) error {
	path := a.cfg.Directory.SeedPath
	if path == "" {
		return nil
	}
	seed, err := directory.LoadSeed(path)
	if err != nil {
		return err
	}
	if err := seed.Apply(ctx, w); err != nil {
		return err
	}
	a.log.InfoContext(ctx, "directory seeded", slog.String("path", path), slog.Int("tenants", len(seed.Tenants)))
	return nil
}

func (a *App) withCache(ctx context.Context, store directory.Store) (directory.Store, error) {
	dc := a.cfg.Directory
	var c directory.Cache
	switch dc.Cache {
	case CacheLRU:
		c = directory.NewLRUCache(dc.CacheSize, dc.CacheTTL)
	case CacheRedis:
		client, err := redis.Connect(ctx, a.cfg.Redis)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, func() {
			if err := client.Close(); err != nil {
				a.log.WarnContext(ctx, "close redis client", logger.Error(err))
			}
		})
		a.checks = append(a.checks, httpserver.Check{Name: "redis", Probe: redis.Healthcheck(client)})
		c = directory.NewRedisCache(client, a.cfg.Redis.KeyPrefix, dc.CacheTTL)
	default:
		return store, nil
	}
	return directory.NewCachedStore(store, c, directory.WithCacheLogger(a.log)), nil
}

func trimAll(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strings.TrimSpace(v)
	}
	return out
}
