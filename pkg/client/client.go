// Package client provides the geo service client: place search and geofence
// management backed by Amazon Location Service.
package client

import (
	"fmt"
	"time"

	"github.com/Sternrassler/geo-location-client/pkg/auth"
	"github.com/Sternrassler/geo-location-client/pkg/cache"
	"github.com/Sternrassler/geo-location-client/pkg/config"
	"github.com/Sternrassler/geo-location-client/pkg/logging"
	"github.com/Sternrassler/geo-location-client/pkg/transport"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/location"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
)

// Prometheus metrics for client operations.
var (
	geoRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "geo_requests_total",
		Help: "Total geo requests by operation and status",
	}, []string{"operation", "status"})

	geoRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "geo_request_duration_seconds",
		Help:    "Geo request duration in seconds by operation",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5},
	}, []string{"operation"})
)

const (
	// Category is the plugin category this client serves.
	Category = "Geo"

	// ProviderName identifies the backing provider.
	ProviderName = "AmazonLocationService"

	// DefaultAppID is the client tag sent with every provider call.
	DefaultAppID = "geo-location-client"
)

// Client is the geo service client. It is safe for concurrent use.
type Client struct {
	api      transport.LocationAPI
	resolver *config.Resolver
	gate     *auth.Gate
	cache    *cache.Manager
	config   Config
	logger   zerolog.Logger
}

// Config holds the client configuration.
type Config struct {
	// Source provides the geo resource configuration, read on every call.
	Source config.Source

	// Sessions provides credentials for every provider call.
	Sessions auth.SessionProvider

	// API is the Amazon Location client, usually from transport.New.
	API transport.LocationAPI

	// AppID tags every provider call.
	AppID string

	// PlaceCache optionally caches place-by-id lookups.
	PlaceCache *cache.Manager

	// PlaceCacheTTL is how long cached places stay valid.
	PlaceCacheTTL time.Duration
}

// DefaultConfig returns a configuration with default tag and cache TTL.
func DefaultConfig(source config.Source, sessions auth.SessionProvider, api transport.LocationAPI) Config {
	return Config{
		Source:        source,
		Sessions:      sessions,
		API:           api,
		AppID:         DefaultAppID,
		PlaceCacheTTL: 24 * time.Hour,
	}
}

// New creates a new geo client.
func New(cfg Config) (*Client, error) {
	if cfg.Source == nil {
		return nil, fmt.Errorf("config source is required")
	}

	if cfg.Sessions == nil {
		return nil, fmt.Errorf("session provider is required")
	}

	if cfg.API == nil {
		return nil, fmt.Errorf("location api is required")
	}

	if cfg.PlaceCacheTTL < 0 {
		return nil, fmt.Errorf("place_cache_ttl must be >= 0 (got %s)", cfg.PlaceCacheTTL)
	}

	if cfg.PlaceCache != nil && cfg.PlaceCacheTTL == 0 {
		return nil, fmt.Errorf("place_cache_ttl is required when a place cache is set")
	}

	return &Client{
		api:      cfg.API,
		resolver: config.NewResolver(cfg.Source),
		gate:     auth.NewGate(cfg.Sessions),
		cache:    cfg.PlaceCache,
		config:   cfg,
		logger:   logging.NewLogger(logging.ComponentClient),
	}, nil
}

// Category returns the plugin category, "Geo".
func (c *Client) Category() string {
	return Category
}

// ProviderName returns "AmazonLocationService".
func (c *Client) ProviderName() string {
	return ProviderName
}

// callOptions builds the per-call transport options for op.
func (c *Client) callOptions(op string, creds aws.Credentials, region string) func(*location.Options) {
	return transport.CallOptions(transport.CallInfo{
		Credentials: creds,
		Region:      region,
		AppID:       c.config.AppID,
		Operation:   op,
	})
}

// observe records the outcome of a public operation.
func (c *Client) observe(op string, start time.Time, err error) {
	status := requestStatus(err)
	geoRequestDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	geoRequestsTotal.WithLabelValues(op, status).Inc()

	if err != nil {
		c.logger.Debug().Err(err).Str("operation", op).Str("status", status).Msg("Geo request failed")
	}
}
