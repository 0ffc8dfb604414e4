package directory_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mentionkit/pkg/directory"
	"github.com/dmitrymomot/mentionkit/pkg/redis"
)

// TestRedisCache runs against a real server when MENTIONKIT_TEST_REDIS_URL is set.
func TestRedisCache(t *testing.T) {
	url := os.Getenv("MENTIONKIT_TEST_REDIS_URL")
	if url == "" {
		t.Skip("MENTIONKIT_TEST_REDIS_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := redis.Connect(ctx, redis.Config{ConnectionURL: url, RetryAttempts: 1})
	require.NoError(t, err)
	defer client.Close()

	c := directory.NewRedisCache(client, "mentionkit-test:"+uuid.NewString()+":", time.Minute)

	_, ok, err := c.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	want := directory.Entity{TenantID: "demo", Type: "contact", ID: dwightID, Label: "Dwight Schrute"}
	require.NoError(t, c.Set(ctx, "k", want))

	got, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, want, got)

	backend := &countingStore{Store: directory.DemoDataset()}
	store := directory.NewCachedStore(backend, c)
	for range 2 {
		_, err := store.Lookup(ctx, directory.DemoTenant, "contact", jimID)
		require.NoError(t, err)
	}
	assert.Equal(t, int32(1), backend.lookups.Load())
}
