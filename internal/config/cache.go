package config

import "time"

// CacheConfig controls the Redis response cache applied to catalog GET
// endpoints. When Enabled is false or no Redis client could be built,
// caching is a no-op.
type CacheConfig struct {
	Enabled bool
	TTL     time.Duration
	Prefix  string
}

// LoadCacheConfig reads cache settings from the environment with
// development defaults.
func LoadCacheConfig() CacheConfig {
	ttl, err := time.ParseDuration(getenv("CACHE_TTL", "30s"))
	if err != nil {
		ttl = 30 * time.Second
	}
	return CacheConfig{
		Enabled: getenv("CACHE_ENABLED", "true") == "true",
		TTL:     ttl,
		Prefix:  getenv("CACHE_PREFIX", "cache"),
	}
}
