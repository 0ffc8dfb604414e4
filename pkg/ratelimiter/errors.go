package ratelimiter

import "errors"

var (
	ErrInvalidConfig     = errors.New("invalid rate limiter configuration")
	ErrInvalidTokenCount = errors.New("invalid token count")

	// ErrRateLimited is passed to the middleware error handler for denied requests.
	ErrRateLimited = errors.New("rate limit exceeded")
)
