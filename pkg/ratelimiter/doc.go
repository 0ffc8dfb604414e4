// Package ratelimiter implements a token bucket limiter with an in-memory
// store and HTTP middleware.
//
// A bucket starts full at Capacity tokens and regains RefillRate tokens every
// RefillInterval. A request that finds too few tokens is denied without
// consuming any, so bursts of rejected calls do not push a key further into
// debt.
//
//	store := ratelimiter.NewMemoryStore()
//	defer store.Close()
//
//	limiter, err := ratelimiter.NewBucket(store, ratelimiter.Config{
//		Capacity:       60,
//		RefillRate:     1,
//		RefillInterval: time.Second,
//	})
//
//	r.Use(ratelimiter.Middleware(limiter, tenantKey))
//
// The middleware sets X-RateLimit-Limit, X-RateLimit-Remaining and
// X-RateLimit-Reset on every limited response and Retry-After on denials.
package ratelimiter
