package directory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/mentionkit/pkg/cache"
	"github.com/dmitrymomot/mentionkit/pkg/logger"
	"github.com/dmitrymomot/mentionkit/pkg/mention"
)

// Cache stores positive lookups. A miss is reported as (Entity{}, false, nil).
type Cache interface {
	Get(ctx context.Context, key string) (Entity, bool, error)
	Set(ctx context.Context, key string, e Entity) error
}

// lruCache keeps lookups in process memory.
type lruCache struct {
	lru *cache.LRU[string, Entity]
}

// NewLRUCache returns an in-process Cache bounded to size entries, each kept
// for at most ttl (0 keeps entries until evicted).
func NewLRUCache(size int, ttl time.Duration) Cache {
	return &lruCache{lru: cache.NewLRU[string, Entity](size, ttl)}
}

func (c *lruCache) Get(_ context.Context, key string) (Entity, bool, error) {
	e, ok := c.lru.Get(key)
	return e, ok, nil
}

func (c *lruCache) Set(_ context.Context, key string, e Entity) error {
	c.lru.Put(key, e)
	return nil
}

// redisCache shares lookups between instances.
type redisCache struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// NewRedisCache returns a Cache backed by Redis. Keys are namespaced with
// prefix and expire after ttl (0 means no expiry).
func NewRedisCache(client redis.UniversalClient, prefix string, ttl time.Duration) Cache {
	return &redisCache{client: client, prefix: prefix, ttl: ttl}
}

type cachedEntity struct {
	TenantID string    `json:"tenant_id"`
	Type     string    `json:"type"`
	ID       uuid.UUID `json:"id"`
	Label    string    `json:"label"`
}

func (c *redisCache) Get(ctx context.Context, key string) (Entity, bool, error) {
	data, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return Entity{}, false, nil
	}
	if err != nil {
		return Entity{}, false, err
	}

	var ce cachedEntity
	if err := json.Unmarshal(data, &ce); err != nil {
		return Entity{}, false, err
	}
	return Entity(ce), true, nil
}

func (c *redisCache) Set(ctx context.Context, key string, e Entity) error {
	data, err := json.Marshal(cachedEntity(e))
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.prefix+key, data, c.ttl).Err()
}

// CachedStore serves Lookup from a Cache in front of another Store.
// Only successful lookups are cached, so newly added entities and revoked
// tenants are never masked by a cached miss. Cache failures fall through to
// the underlying store.
type CachedStore struct {
	Store
	cache Cache
	log   *slog.Logger
}

// CachedStoreOption configures a CachedStore.
type CachedStoreOption func(*CachedStore)

// WithCacheLogger logs cache failures with log.
func WithCacheLogger(log *slog.Logger) CachedStoreOption {
	return func(s *CachedStore) {
		if log != nil {
			s.log = log
		}
	}
}

// NewCachedStore wraps store with c.
func NewCachedStore(store Store, c Cache, opts ...CachedStoreOption) *CachedStore {
	s := &CachedStore{
		Store: store,
		cache: c,
		log:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Lookup implements Store.
func (s *CachedStore) Lookup(ctx context.Context, tenantID, entityType string, id uuid.UUID) (Entity, error) {
	key := cacheKey(tenantID, entityType, id)

	e, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.log.WarnContext(ctx, "directory cache read failed", logger.Component("directory"), logger.Error(err))
	}
	if ok {
		return e, nil
	}

	e, err = s.Store.Lookup(ctx, tenantID, entityType, id)
	if err != nil {
		return Entity{}, err
	}
	if err := s.cache.Set(ctx, key, e); err != nil {
		s.log.WarnContext(ctx, "directory cache write failed", logger.Component("directory"), logger.Error(err))
	}
	return e, nil
}

// cacheKey length-prefixes the tenant so that tenant ids containing the
// separator cannot collide with other keys.
func cacheKey(tenantID, entityType string, id uuid.UUID) string {
	return fmt.Sprintf("entity:%d:%s:%s:%s", len(tenantID), tenantID, mention.NormalizeType(entityType), id)
}
