package ratelimiter

import (
	"context"
	"fmt"
	"time"
)

// Config describes a token bucket.
type Config struct {
	Capacity       int           `env:"RATE_LIMIT_CAPACITY" envDefault:"60"`         // burst size
	RefillRate     int           `env:"RATE_LIMIT_REFILL_RATE" envDefault:"1"`       // tokens added per interval
	RefillInterval time.Duration `env:"RATE_LIMIT_REFILL_INTERVAL" envDefault:"1s"` // how often tokens are added
}

func (c Config) validate() error {
	switch {
	case c.Capacity <= 0:
		return fmt.Errorf("%w: capacity must be positive, got %d", ErrInvalidConfig, c.Capacity)
	case c.RefillRate <= 0:
		return fmt.Errorf("%w: refill rate must be positive, got %d", ErrInvalidConfig, c.RefillRate)
	case c.RefillInterval <= 0:
		return fmt.Errorf("%w: refill interval must be positive, got %v", ErrInvalidConfig, c.RefillInterval)
	}
	return nil
}

// Result is the outcome of one Take.
type Result struct {
	Allowed   bool
	Limit     int
	Remaining int
	// ResetAt is when the next token is added.
	ResetAt time.Time
}

// RetryAfter is how long a denied caller should wait, measured from now.
func (r Result) RetryAfter(now time.Time) time.Duration {
	if r.Allowed || !r.ResetAt.After(now) {
		return 0
	}
	return r.ResetAt.Sub(now)
}

// Store keeps bucket state per key.
type Store interface {
	// Take removes n tokens from the key's bucket when it holds at least n.
	// n == 0 only refreshes and reports the bucket.
	Take(ctx context.Context, key string, n int, cfg Config) (Result, error)
	Reset(ctx context.Context, key string) error
}

// Limiter is what Middleware needs from a Bucket.
type Limiter interface {
	Allow(ctx context.Context, key string) (Result, error)
}

// Bucket applies one Config to many keys.
type Bucket struct {
	store Store
	cfg   Config
}

var _ Limiter = (*Bucket)(nil)

// NewBucket validates cfg and returns a limiter backed by store.
func NewBucket(store Store, cfg Config) (*Bucket, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Bucket{store: store, cfg: cfg}, nil
}

// Allow takes one token for key.
func (b *Bucket) Allow(ctx context.Context, key string) (Result, error) {
	return b.AllowN(ctx, key, 1)
}

// AllowN takes n tokens for key.
func (b *Bucket) AllowN(ctx context.Context, key string, n int) (Result, error) {
	if n <= 0 {
		return Result{}, fmt.Errorf("%w: must be positive, got %d", ErrInvalidTokenCount, n)
	}
	return b.store.Take(ctx, key, n, b.cfg)
}

// Status reports the bucket of key without taking tokens.
func (b *Bucket) Status(ctx context.Context, key string) (Result, error) {
	return b.store.Take(ctx, key, 0, b.cfg)
}

// Reset refills the bucket of key.
func (b *Bucket) Reset(ctx context.Context, key string) error {
	return b.store.Reset(ctx, key)
}
