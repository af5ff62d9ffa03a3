package config

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/viper"
)

// DefaultEnvPrefix is the environment prefix of ViperSource:
// GEO_REGION, GEO_SEARCH_INDICES_DEFAULT, GEO_GEOFENCE_COLLECTIONS_DEFAULT,
// GEO_MAPS_DEFAULT.
const DefaultEnvPrefix = "GEO"

// ViperSource reads the geo configuration from an optional YAML file and the
// environment. The file is re-read on every Load, so edits take effect on
// the next operation without a restart.
//
// Map resources are listed by name rather than keyed by it: viper lower-cases
// map keys, and Amazon Location resource names are case-sensitive.
//
// File layout:
//
//	region: eu-central-1
//	maps:
//	  default: Streets
//	  items:
//	    - name: Streets
//	      style: VectorEsriStreets
//	search_indices:
//	  default: places
//	geofence_collections:
//	  default: fences
type ViperSource struct {
	mu   sync.Mutex
	v    *viper.Viper
	path string
}

// NewViperSource creates a source reading path (may be empty for env-only)
// with the given environment prefix (DefaultEnvPrefix when empty).
func NewViperSource(path, envPrefix string) *ViperSource {
	if envPrefix == "" {
		envPrefix = DefaultEnvPrefix
	}

	v := viper.New()
	v.SetDefault("region", "")
	v.SetDefault("maps.default", "")
	v.SetDefault("search_indices.default", "")
	v.SetDefault("geofence_collections.default", "")

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
	}

	// GEO_SEARCH_INDICES_DEFAULT → search_indices.default
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return &ViperSource{v: v, path: path}
}

// Load re-reads the file (if any) and returns the merged configuration.
func (s *ViperSource) Load(_ context.Context) (*GeoConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.path != "" {
		if err := s.v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read geo config %s: %w", s.path, err)
		}
	}

	var file viperConfig
	if err := s.v.Unmarshal(&file); err != nil {
		return nil, fmt.Errorf("unmarshal geo config: %w", err)
	}
	return file.geoConfig()
}

// viperConfig is the file shape of GeoConfig.
type viperConfig struct {
	Region string `mapstructure:"region"`
	Maps   struct {
		Default string         `mapstructure:"default"`
		Items   []namedMapItem `mapstructure:"items"`
	} `mapstructure:"maps"`
	SearchIndices       DefaultResource `mapstructure:"search_indices"`
	GeofenceCollections DefaultResource `mapstructure:"geofence_collections"`
}

type namedMapItem struct {
	Name  string `mapstructure:"name"`
	Style string `mapstructure:"style"`
}

func (f viperConfig) geoConfig() (*GeoConfig, error) {
	cfg := &GeoConfig{
		Region:              f.Region,
		Maps:                MapsConfig{Default: f.Maps.Default},
		SearchIndices:       f.SearchIndices,
		GeofenceCollections: f.GeofenceCollections,
	}
	if len(f.Maps.Items) == 0 {
		return cfg, nil
	}

	cfg.Maps.Items = make(map[string]MapItem, len(f.Maps.Items))
	for i, item := range f.Maps.Items {
		if item.Name == "" {
			return nil, fmt.Errorf("maps.items[%d]: name is required", i)
		}
		if _, dup := cfg.Maps.Items[item.Name]; dup {
			return nil, fmt.Errorf("maps.items[%d]: duplicate map name %q", i, item.Name)
		}
		cfg.Maps.Items[item.Name] = MapItem{Style: item.Style}
	}
	return cfg, nil
}
