package directory_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mentionkit/pkg/directory"
)

// countingStore records how many lookups reach the wrapped store.
type countingStore struct {
	directory.Store
	lookups atomic.Int32
}

func (s *countingStore) Lookup(ctx context.Context, tenantID, entityType string, id uuid.UUID) (directory.Entity, error) {
	s.lookups.Add(1)
	return s.Store.Lookup(ctx, tenantID, entityType, id)
}

type failingCache struct{}

func (failingCache) Get(context.Context, string) (directory.Entity, bool, error) {
	return directory.Entity{}, false, errors.New("cache down")
}

func (failingCache) Set(context.Context, string, directory.Entity) error {
	return errors.New("cache down")
}

func TestCachedStore_Lookup(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	backend := &countingStore{Store: directory.DemoDataset()}
	store := directory.NewCachedStore(backend, directory.NewLRUCache(16, time.Minute))

	for range 3 {
		e, err := store.Lookup(ctx, directory.DemoTenant, "contact", dwightID)
		require.NoError(t, err)
		assert.Equal(t, "Dwight Schrute", e.Label)
	}
	assert.Equal(t, int32(1), backend.lookups.Load())

	// Aliased types share the cache entry.
	_, err := store.Lookup(ctx, directory.DemoTenant, "person", dwightID)
	require.NoError(t, err)
	assert.Equal(t, int32(1), backend.lookups.Load())
}

func TestCachedStore_MissesAreNotCached(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	memory, err := directory.NewMemoryStore(
		directory.Entity{TenantID: "acme", Type: "contact", ID: dwightID, Label: "Dwight"},
	)
	require.NoError(t, err)
	backend := &countingStore{Store: memory}
	store := directory.NewCachedStore(backend, directory.NewLRUCache(16, 0))

	_, err = store.Lookup(ctx, "acme", "contact", jimID)
	require.ErrorIs(t, err, directory.ErrEntityNotFound)

	require.NoError(t, memory.Put(ctx, directory.Entity{TenantID: "acme", Type: "contact", ID: jimID, Label: "Jim"}))

	e, err := store.Lookup(ctx, "acme", "contact", jimID)
	require.NoError(t, err)
	assert.Equal(t, "Jim", e.Label)
	assert.Equal(t, int32(2), backend.lookups.Load())
}

func TestCachedStore_TenantsDoNotShareEntries(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	memory, err := directory.NewMemoryStore(
		directory.Entity{TenantID: "acme", Type: "contact", ID: dwightID, Label: "Acme"},
	)
	require.NoError(t, err)
	require.NoError(t, memory.AddTenant(ctx, "globex"))
	store := directory.NewCachedStore(memory, directory.NewLRUCache(16, 0))

	_, err = store.Lookup(ctx, "acme", "contact", dwightID)
	require.NoError(t, err)

	_, err = store.Lookup(ctx, "globex", "contact", dwightID)
	assert.ErrorIs(t, err, directory.ErrUnsupportedType)
}

func TestCachedStore_CacheFailureFallsThrough(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log := slog.New(slog.NewTextHandler(buf, nil))
	store := directory.NewCachedStore(directory.DemoDataset(), failingCache{}, directory.WithCacheLogger(log))

	e, err := store.Lookup(context.Background(), directory.DemoTenant, "meeting", meetingID)
	require.NoError(t, err)
	assert.Equal(t, "Conference Room All Hands", e.Label)
	assert.Contains(t, buf.String(), "directory cache read failed")
	assert.Contains(t, buf.String(), "directory cache write failed")
	assert.NotContains(t, buf.String(), meetingID.String())
}

func TestCachedStore_DelegatesOtherMethods(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := directory.NewCachedStore(directory.DemoDataset(), directory.NewLRUCache(4, 0))

	got, err := store.Search(ctx, directory.DemoTenant, "jim", 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"Jim Halpert"}, labels(got))

	types, err := store.Types(ctx, directory.DemoTenant)
	require.NoError(t, err)
	assert.Equal(t, []string{"contact", "meeting", "assignment"}, types)
}
