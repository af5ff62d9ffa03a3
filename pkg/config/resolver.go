package config

import (
	"context"

	"github.com/Sternrassler/geo-location-client/pkg/geo"
	"github.com/Sternrassler/geo-location-client/pkg/logging"
	"github.com/rs/zerolog"
)

// Resolved is an effective resource name together with the region it lives in.
type Resolved struct {
	Name   string
	Region string
}

// Resolver resolves resource names: explicit override first, then the
// configured default. The source is consulted on every call.
type Resolver struct {
	source Source
	logger zerolog.Logger
}

// NewResolver creates a resolver over source.
func NewResolver(source Source) *Resolver {
	return &Resolver{
		source: source,
		logger: logging.NewLogger(logging.ComponentConfig),
	}
}

// SearchIndex resolves the place index name.
func (r *Resolver) SearchIndex(ctx context.Context, override string) (Resolved, error) {
	cfg, err := r.source.Load(ctx)
	if err != nil {
		return Resolved{}, err
	}
	name := override
	if name == "" {
		name = cfg.SearchIndices.Default
	}
	if name == "" {
		r.logger.Debug().Msg("No search index configured and no override given")
		return Resolved{}, &geo.Error{
			Kind:    geo.KindMissingConfiguration,
			Message: "no search index found in geo configuration",
		}
	}
	return Resolved{Name: name, Region: cfg.Region}, nil
}

// GeofenceCollection resolves the geofence collection name.
func (r *Resolver) GeofenceCollection(ctx context.Context, override string) (Resolved, error) {
	cfg, err := r.source.Load(ctx)
	if err != nil {
		return Resolved{}, err
	}
	name := override
	if name == "" {
		name = cfg.GeofenceCollections.Default
	}
	if name == "" {
		r.logger.Debug().Msg("No geofence collection configured and no override given")
		return Resolved{}, &geo.Error{
			Kind:    geo.KindMissingConfiguration,
			Message: "no geofence collections found in geo configuration",
		}
	}
	return Resolved{Name: name, Region: cfg.Region}, nil
}

// Maps returns the configured map resources and region. It fails when no
// maps or no default map are configured.
func (r *Resolver) Maps(ctx context.Context) (MapsConfig, string, error) {
	cfg, err := r.source.Load(ctx)
	if err != nil {
		return MapsConfig{}, "", err
	}
	if len(cfg.Maps.Items) == 0 {
		return MapsConfig{}, "", &geo.Error{
			Kind:    geo.KindMissingConfiguration,
			Message: "no map resources found in geo configuration",
		}
	}
	if cfg.Maps.Default == "" {
		return MapsConfig{}, "", &geo.Error{
			Kind:    geo.KindMissingConfiguration,
			Message: "no default map resource found in geo configuration",
		}
	}
	return cfg.Maps, cfg.Region, nil
}
