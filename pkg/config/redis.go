package config

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisKey is the key RedisSource reads when none is given.
const DefaultRedisKey = "geo:config"

// RedisSource reads the geo configuration as a JSON document from a Redis
// key. Several processes can share one configuration and observe updates
// published with Store.
type RedisSource struct {
	redis *redis.Client
	key   string
}

// NewRedisSource creates a source reading key (DefaultRedisKey when empty).
func NewRedisSource(redisClient *redis.Client, key string) *RedisSource {
	if redisClient == nil {
		panic("redis client cannot be nil")
	}
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisSource{redis: redisClient, key: key}
}

// Load fetches and decodes the current configuration.
func (s *RedisSource) Load(ctx context.Context) (*GeoConfig, error) {
	data, err := s.redis.Get(ctx, s.key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, errNoGeoConfig
		}
		return nil, fmt.Errorf("redis get %s: %w", s.key, err)
	}

	var cfg GeoConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("decode geo config: %w", err)
	}
	return &cfg, nil
}

// Store publishes cfg under the source key.
func (s *RedisSource) Store(ctx context.Context, cfg *GeoConfig) error {
	if cfg == nil {
		return fmt.Errorf("geo config cannot be nil")
	}
	data, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode geo config: %w", err)
	}
	if err := s.redis.Set(ctx, s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", s.key, err)
	}
	return nil
}
