// Package config resolves Amazon Location resource names (search index,
// geofence collection, maps) from an externally mutable configuration source.
//
// Sources are read on every call; nothing is cached at construction, so a
// configuration change is picked up by the next operation.
package config

import (
	"context"
	"sync"

	"github.com/Sternrassler/geo-location-client/pkg/geo"
)

// MapItem describes one configured map resource.
type MapItem struct {
	Style string `json:"style" mapstructure:"style"`
}

// MapsConfig lists map resources and the default one.
type MapsConfig struct {
	Default string             `json:"default" mapstructure:"default"`
	Items   map[string]MapItem `json:"items" mapstructure:"items"`
}

// DefaultResource names the default resource of a kind.
type DefaultResource struct {
	Default string `json:"default" mapstructure:"default"`
}

// GeoConfig is the Amazon Location section of the host configuration.
type GeoConfig struct {
	Region              string          `json:"region" mapstructure:"region"`
	Maps                MapsConfig      `json:"maps" mapstructure:"maps"`
	SearchIndices       DefaultResource `json:"searchIndices" mapstructure:"search_indices"`
	GeofenceCollections DefaultResource `json:"geofenceCollections" mapstructure:"geofence_collections"`
}

// Source provides the current geo configuration. Implementations must return
// the latest value on every call and be safe for concurrent use. A source
// holding no configuration returns an error matching geo.ErrMissingConfiguration.
type Source interface {
	Load(ctx context.Context) (*GeoConfig, error)
}

// StaticSource is an in-memory Source whose value can be replaced at any time.
type StaticSource struct {
	mu  sync.RWMutex
	cfg *GeoConfig
}

// NewStaticSource creates a source holding cfg. cfg may be nil.
func NewStaticSource(cfg *GeoConfig) *StaticSource {
	s := &StaticSource{}
	s.Set(cfg)
	return s
}

// Set replaces the configuration. A nil cfg clears it.
func (s *StaticSource) Set(cfg *GeoConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cfg == nil {
		s.cfg = nil
		return
	}
	s.cfg = cfg.clone()
}

// Load returns a copy of the current configuration.
func (s *StaticSource) Load(_ context.Context) (*GeoConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.cfg == nil {
		return nil, errNoGeoConfig
	}
	return s.cfg.clone(), nil
}

var errNoGeoConfig = &geo.Error{
	Kind:    geo.KindMissingConfiguration,
	Message: "no geo configuration found",
}

func (c *GeoConfig) clone() *GeoConfig {
	out := *c
	if c.Maps.Items != nil {
		out.Maps.Items = make(map[string]MapItem, len(c.Maps.Items))
		for k, v := range c.Maps.Items {
			out.Maps.Items[k] = v
		}
	}
	return &out
}
