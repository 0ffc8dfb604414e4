package ratelimiter

import (
	"errors"
	"net/http"
	"strconv"
	"time"
)

// KeyFunc picks the bucket of a request. An empty key skips limiting.
type KeyFunc func(r *http.Request) string

// ErrorHandler answers requests the middleware stops. err is ErrRateLimited
// for denials or the store failure otherwise.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

type middlewareConfig struct {
	errorHandler ErrorHandler
	now          func() time.Time
}

type MiddlewareOption func(*middlewareConfig)

// WithErrorHandler replaces the plain-text 429 and 500 responses.
func WithErrorHandler(h ErrorHandler) MiddlewareOption {
	return func(c *middlewareConfig) {
		if h != nil {
			c.errorHandler = h
		}
	}
}

// Middleware limits requests per key.
func Middleware(limiter Limiter, key KeyFunc, opts ...MiddlewareOption) func(http.Handler) http.Handler {
	cfg := &middlewareConfig{errorHandler: defaultErrorHandler, now: time.Now}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			k := key(r)
			if k == "" {
				next.ServeHTTP(w, r)
				return
			}

			res, err := limiter.Allow(r.Context(), k)
			if err != nil {
				cfg.errorHandler(w, r, err)
				return
			}

			h := w.Header()
			h.Set("X-RateLimit-Limit", strconv.Itoa(res.Limit))
			h.Set("X-RateLimit-Remaining", strconv.Itoa(max(0, res.Remaining)))
			h.Set("X-RateLimit-Reset", strconv.FormatInt(res.ResetAt.Unix(), 10))

			if !res.Allowed {
				// Round up so clients never retry a moment too early.
				wait := res.RetryAfter(cfg.now())
				secs := int((wait + time.Second - 1) / time.Second)
				h.Set("Retry-After", strconv.Itoa(max(1, secs)))
				cfg.errorHandler(w, r, ErrRateLimited)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func defaultErrorHandler(w http.ResponseWriter, _ *http.Request, err error) {
	if errors.Is(err, ErrRateLimited) {
		http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
		return
	}
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}
