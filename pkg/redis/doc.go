// Package redis connects to Redis with go-redis/v9 for the shared directory
// lookup cache.
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
//	lookups := directory.NewRedisCache(client, cfg.KeyPrefix, time.Minute)
//
// Healthcheck adapts the client to the readiness probe signature used by the
// HTTP server.
package redis
