package config

import "time"

// CacheConfig defines settings for the query result cache.  When Enabled
// is false every query goes to the database.  Results are stored in Redis
// when a client is configured and in process memory otherwise.  TTL only
// applies to Redis entries; in-process entries live until the cache is
// cleared.
type CacheConfig struct {
	Enabled bool
	TTL     time.Duration
	Prefix  string
	Redis   RedisConfig
}

// LoadCacheConfig reads environment variables to build a CacheConfig.
// Defaults are used when variables are not set.
func LoadCacheConfig() CacheConfig {
	return CacheConfig{
		Enabled: envBool("QUERY_CACHE_ENABLED", true),
		TTL:     envDur("QUERY_CACHE_TTL", time.Hour),
		Prefix:  envStr("QUERY_CACHE_PREFIX", "dirq"),
		Redis:   loadRedisConfig(),
	}
}
