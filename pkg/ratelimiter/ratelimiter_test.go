package ratelimiter_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mentionkit/pkg/ratelimiter"
)

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func newClock() *clock { return &clock{now: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)} }

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newBucket(t *testing.T, c *clock, cfg ratelimiter.Config) *ratelimiter.Bucket {
	t.Helper()
	store := ratelimiter.NewMemoryStore(ratelimiter.WithClock(c.Now), ratelimiter.WithCleanupInterval(0))
	t.Cleanup(store.Close)
	b, err := ratelimiter.NewBucket(store, cfg)
	require.NoError(t, err)
	return b
}

func TestNewBucket_InvalidConfig(t *testing.T) {
	t.Parallel()

	for _, cfg := range []ratelimiter.Config{
		{Capacity: 0, RefillRate: 1, RefillInterval: time.Second},
		{Capacity: 1, RefillRate: 0, RefillInterval: time.Second},
		{Capacity: 1, RefillRate: 1, RefillInterval: 0},
	} {
		_, err := ratelimiter.NewBucket(ratelimiter.NewMemoryStore(ratelimiter.WithCleanupInterval(0)), cfg)
		assert.ErrorIs(t, err, ratelimiter.ErrInvalidConfig)
	}
}

func TestBucket_BurstAndRefill(t *testing.T) {
	t.Parallel()

	c := newClock()
	b := newBucket(t, c, ratelimiter.Config{Capacity: 3, RefillRate: 1, RefillInterval: time.Second})
	ctx := context.Background()

	for i := range 3 {
		res, err := b.Allow(ctx, "demo")
		require.NoError(t, err)
		assert.True(t, res.Allowed, "request %d", i)
		assert.Equal(t, 2-i, res.Remaining)
	}

	res, err := b.Allow(ctx, "demo")
	require.NoError(t, err)
	assert.False(t, res.Allowed)
	assert.Equal(t, 0, res.Remaining, "denials do not go into debt")
	assert.Equal(t, time.Second, res.RetryAfter(c.Now()))

	c.Advance(1500 * time.Millisecond)
	res, err = b.Allow(ctx, "demo")
	require.NoError(t, err)
	assert.True(t, res.Allowed)
	assert.Equal(t, 0, res.Remaining)

	// The half interval left over still counts towards the next token.
	c.Advance(500 * time.Millisecond)
	res, err = b.Status(ctx, "demo")
	require.NoError(t, err)
	assert.Equal(t, 1, res.Remaining)

	c.Advance(time.Hour)
	res, err = b.Status(ctx, "demo")
	require.NoError(t, err)
	assert.Equal(t, 3, res.Remaining, "refill is capped at capacity")
}

func TestBucket_KeysAreIndependent(t *testing.T) {
	t.Parallel()

	b := newBucket(t, newClock(), ratelimiter.Config{Capacity: 1, RefillRate: 1, RefillInterval: time.Minute})
	ctx := context.Background()

	res, err := b.Allow(ctx, "acme")
	require.NoError(t, err)
	assert.True(t, res.Allowed)

	res, err = b.Allow(ctx, "demo")
	require.NoError(t, err)
	assert.True(t, res.Allowed)

	res, err = b.Allow(ctx, "acme")
	require.NoError(t, err)
	assert.False(t, res.Allowed)

	require.NoError(t, b.Reset(ctx, "acme"))
	res, err = b.Allow(ctx, "acme")
	require.NoError(t, err)
	assert.True(t, res.Allowed)
}

func TestBucket_AllowN(t *testing.T) {
	t.Parallel()

	b := newBucket(t, newClock(), ratelimiter.Config{Capacity: 5, RefillRate: 1, RefillInterval: time.Second})
	ctx := context.Background()

	_, err := b.AllowN(ctx, "k", 0)
	assert.ErrorIs(t, err, ratelimiter.ErrInvalidTokenCount)

	res, err := b.AllowN(ctx, "k", 4)
	require.NoError(t, err)
	assert.True(t, res.Allowed)

	res, err = b.AllowN(ctx, "k", 2)
	require.NoError(t, err)
	assert.False(t, res.Allowed)
	assert.Equal(t, 1, res.Remaining)
}

func TestMemoryStore_Sweep(t *testing.T) {
	t.Parallel()

	c := newClock()
	store := ratelimiter.NewMemoryStore(
		ratelimiter.WithClock(c.Now),
		ratelimiter.WithCleanupInterval(5*time.Millisecond),
		ratelimiter.WithStaleAfter(time.Minute),
	)
	t.Cleanup(store.Close)

	cfg := ratelimiter.Config{Capacity: 1, RefillRate: 1, RefillInterval: time.Second}
	_, err := store.Take(context.Background(), "k", 1, cfg)
	require.NoError(t, err)
	require.Equal(t, 1, store.Len())

	c.Advance(2 * time.Minute)
	assert.Eventually(t, func() bool { return store.Len() == 0 }, time.Second, 5*time.Millisecond)

	store.Close()
	store.Close()
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	c := newClock()
	b := newBucket(t, c, ratelimiter.Config{Capacity: 1, RefillRate: 1, RefillInterval: 30 * time.Second})
	key := func(r *http.Request) string { return r.Header.Get("X-Tenant-Id") }
	h := ratelimiter.Middleware(b, key)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	call := func(tenantID string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if tenantID != "" {
			req.Header.Set("X-Tenant-Id", tenantID)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	rec := call("demo")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, rec.Header().Get("X-RateLimit-Reset"))

	rec = call("demo")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))

	for range 3 {
		assert.Equal(t, http.StatusNoContent, call("").Code, "empty key is not limited")
	}
}

type brokenLimiter struct{}

func (brokenLimiter) Allow(context.Context, string) (ratelimiter.Result, error) {
	return ratelimiter.Result{}, errors.New("store down")
}

func TestMiddleware_ErrorHandler(t *testing.T) {
	t.Parallel()

	var got error
	mw := ratelimiter.Middleware(brokenLimiter{},
		func(*http.Request) string { return "k" },
		ratelimiter.WithErrorHandler(func(w http.ResponseWriter, _ *http.Request, err error) {
			got = err
			w.WriteHeader(http.StatusServiceUnavailable)
		}),
	)
	rec := httptest.NewRecorder()
	mw(http.NotFoundHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	require.Error(t, got)
	assert.NotErrorIs(t, got, ratelimiter.ErrRateLimited)
}
