package cache

import (
	"strings"
)

// CacheKey identifies a cached place.
type CacheKey struct {
	// Index is the resolved place index name.
	Index string

	// PlaceID is the provider place identifier.
	PlaceID string

	// Language is the requested result language, empty for the index default.
	Language string
}

// String generates a deterministic cache key string.
// Format: geo:place:<index>:<placeId>[:lang=<language>]
//
// Example:
//
//	geo:place:places:AQAAAFUA:lang=de
func (k CacheKey) String() string {
	parts := []string{"geo", "place", k.Index, k.PlaceID}
	if k.Language != "" {
		parts = append(parts, "lang="+strings.ToLower(k.Language))
	}
	return strings.Join(parts, ":")
}
