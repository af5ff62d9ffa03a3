// Package cache provides an optional Redis cache for place-by-id lookups.
//
// Place IDs are stable provider identifiers, so a GetPlace result can be
// served from cache for a bounded time. The client consults the cache only
// after the credential gate has passed, and every cache failure falls back
// to the provider.
//
// # Basic Usage
//
//	// Create Redis client
//	redisClient := redis.NewClient(&redis.Options{
//		Addr: "localhost:6379",
//	})
//
//	// Create cache manager
//	manager := cache.NewManager(redisClient)
//
//	key := cache.CacheKey{Index: "places", PlaceID: "AQAAAFUA...", Language: "de"}
//
//	entry, err := manager.Get(ctx, key)
//	if err == cache.ErrCacheMiss {
//		// fetch from the provider, then:
//		_ = manager.Set(ctx, key, cache.NewEntry(place, 24*time.Hour))
//	}
//
// # Metrics
//
//   - geo_place_cache_hits_total - Cache hits
//   - geo_place_cache_misses_total - Cache misses
//   - geo_place_cache_errors_total{operation} - Cache operation errors
package cache
