package api

import (
	"log/slog"
	"slices"

	"github.com/dmitrymomot/mentionkit/pkg/clientip"
	"github.com/dmitrymomot/mentionkit/pkg/directory"
	"github.com/dmitrymomot/mentionkit/pkg/httpserver"
	"github.com/dmitrymomot/mentionkit/pkg/mention"
	"github.com/dmitrymomot/mentionkit/pkg/ratelimiter"
)

const (
	// DefaultMaxBodyBytes caps the /resolve request body.
	DefaultMaxBodyBytes int64 = 1 << 20

	DefaultAllowOrigin = "*"
)

type config struct {
	logger         *slog.Logger
	defaultTenant  string
	suggestLimit   int
	allowedOrigins []string
	maxBodyBytes   int64
	checks         []httpserver.Check
	limiter        ratelimiter.Limiter
	clientIP       *clientip.Extractor
	summary        []mention.SummaryOption
}

// Option configures the API.
type Option func(*config)

// WithLogger sets the request logger. Nil discards logs.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) { c.logger = l }
}

// WithDefaultTenant sets the tenant used when a request carries no X-Tenant-Id header.
// An empty tenant makes the header mandatory.
func WithDefaultTenant(id string) Option {
	return func(c *config) { c.defaultTenant = id }
}

// WithSuggestLimit caps the number of /suggest results.
func WithSuggestLimit(n int) Option {
	if n <= 0 {
		panic("api: WithSuggestLimit requires a positive limit")
	}
	return func(c *config) { c.suggestLimit = n }
}

// WithAllowedOrigins replaces the CORS origin list. "*" allows any origin,
// and an entry may hold one wildcard such as "https://*.example.com".
func WithAllowedOrigins(origins ...string) Option {
	if len(origins) == 0 || slices.Contains(origins, "") {
		panic("api: WithAllowedOrigins requires non-empty origins")
	}
	origins = slices.Clone(origins)
	return func(c *config) { c.allowedOrigins = origins }
}

func WithMaxBodyBytes(n int64) Option {
	if n <= 0 {
		panic("api: WithMaxBodyBytes requires a positive size")
	}
	return func(c *config) { c.maxBodyBytes = n }
}

// WithReadinessChecks registers the probes served on /health/ready.
func WithReadinessChecks(checks ...httpserver.Check) Option {
	return func(c *config) { c.checks = append(c.checks, checks...) }
}

// WithRateLimiter limits /suggest and /resolve per tenant.
func WithRateLimiter(l ratelimiter.Limiter) Option {
	return func(c *config) { c.limiter = l }
}

// WithClientIP sets how client addresses are determined for logs. The
// default trusts no forwarded headers.
func WithClientIP(e *clientip.Extractor) Option {
	return func(c *config) {
		if e != nil {
			c.clientIP = e
		}
	}
}

// WithSummaryOptions tunes the prompt-safe summary of /resolve.
func WithSummaryOptions(opts ...mention.SummaryOption) Option {
	return func(c *config) { c.summary = append(c.summary, opts...) }
}

func defaultConfig() *config {
	return &config{
		defaultTenant:  directory.DemoTenant,
		suggestLimit:   directory.DefaultSearchLimit,
		allowedOrigins: []string{DefaultAllowOrigin},
		maxBodyBytes:   DefaultMaxBodyBytes,
		clientIP:       clientip.New(),
	}
}
