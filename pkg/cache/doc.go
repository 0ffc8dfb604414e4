// Package cache provides a generic, thread-safe LRU cache with optional
// time-based expiry.
//
// It backs the in-process directory lookup cache:
//
//	c := cache.NewLRU[string, directory.Entity](1024, time.Minute)
//	c.Put(key, entity)
//	entity, ok := c.Get(key)
//
// Entries are evicted least recently used first once the capacity is reached.
// With a positive ttl an entry is also treated as missing once it is older
// than ttl; expired entries are dropped lazily on Get.
package cache
