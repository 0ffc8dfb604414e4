package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/mentionkit/pkg/redis"
)

func TestConnect_InvalidConfig(t *testing.T) {
	t.Parallel()

	_, err := redis.Connect(context.Background(), redis.Config{})
	assert.ErrorIs(t, err, redis.ErrEmptyConnectionURL)

	_, err = redis.Connect(context.Background(), redis.Config{ConnectionURL: "mysql://localhost"})
	assert.ErrorIs(t, err, redis.ErrFailedToParseRedisConnString)
}

func TestConnect_Unreachable(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	_, err := redis.Connect(ctx, redis.Config{
		ConnectionURL: "redis://127.0.0.1:1/0",
		RetryAttempts: 2,
		RetryInterval: 10 * time.Millisecond,
	})
	assert.ErrorIs(t, err, redis.ErrRedisNotReady)
}
