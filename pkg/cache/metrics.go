package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CacheHits tracks place cache hits
	CacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "geo_place_cache_hits_total",
			Help: "Total number of place cache hits",
		},
	)

	// CacheMisses tracks place cache misses, including expired entries
	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "geo_place_cache_misses_total",
			Help: "Total number of place cache misses",
		},
	)

	// CacheErrors tracks cache operation errors
	CacheErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "geo_place_cache_errors_total",
			Help: "Total number of place cache operation errors",
		},
		[]string{"operation"}, // "get", "set", "delete"
	)
)
