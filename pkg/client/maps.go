package client

import (
	"context"
	"maps"
	"slices"

	"github.com/Sternrassler/geo-location-client/pkg/geo"
)

// AvailableMaps lists the configured map resources, sorted by name.
func (c *Client) AvailableMaps(ctx context.Context) ([]geo.MapStyle, error) {
	cfg, region, err := c.resolver.Maps(ctx)
	if err != nil {
		return nil, err
	}

	styles := make([]geo.MapStyle, 0, len(cfg.Items))
	for _, name := range slices.Sorted(maps.Keys(cfg.Items)) {
		styles = append(styles, geo.MapStyle{
			MapName: name,
			Style:   cfg.Items[name].Style,
			Region:  region,
		})
	}
	return styles, nil
}

// DefaultMap returns the configured default map resource.
func (c *Client) DefaultMap(ctx context.Context) (geo.MapStyle, error) {
	cfg, region, err := c.resolver.Maps(ctx)
	if err != nil {
		return geo.MapStyle{}, err
	}

	item, ok := cfg.Items[cfg.Default]
	if !ok {
		return geo.MapStyle{}, geo.NewError(geo.KindMissingConfiguration,
			"default map %q is not among the configured map resources", cfg.Default)
	}
	return geo.MapStyle{
		MapName: cfg.Default,
		Style:   item.Style,
		Region:  region,
	}, nil
}
