package cache

import (
	"time"

	"github.com/Sternrassler/geo-location-client/pkg/geo"
)

// CacheEntry is a cached place.
type CacheEntry struct {
	Place geo.Place `json:"place"`

	// Expires is when the entry becomes stale.
	Expires time.Time `json:"expires"`

	// CachedAt is when we cached this place.
	CachedAt time.Time `json:"cachedAt"`
}

// NewEntry wraps place with an expiry ttl from now.
func NewEntry(place geo.Place, ttl time.Duration) *CacheEntry {
	now := time.Now()
	return &CacheEntry{
		Place:    place,
		Expires:  now.Add(ttl),
		CachedAt: now,
	}
}

// IsExpired returns true if the cache entry has expired.
func (e *CacheEntry) IsExpired() bool {
	return time.Now().After(e.Expires)
}

// TTL returns the time until expiration.
// Returns 0 if already expired.
func (e *CacheEntry) TTL() time.Duration {
	ttl := time.Until(e.Expires)
	if ttl < 0 {
		return 0
	}
	return ttl
}
