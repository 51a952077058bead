package config

import (
	"time"
)

// CacheConfig defines settings for the response cache middleware.  Caching
// is disabled when Enabled is false or no Redis client is available.
// Methods lists the HTTP methods to cache; TTL is the entry lifetime;
// KeyStrategy decides which parts of the request contribute to the cache
// key; Prefix namespaces keys; MaxBodyBytes caps the size of cached bodies.
type CacheConfig struct {
	Enabled      bool
	Methods      map[string]bool
	TTL          time.Duration
	KeyStrategy  string
	Prefix       string
	MaxBodyBytes int
}

// LoadCacheConfig reads environment variables to build a CacheConfig,
// falling back to defaults when variables are unset.
func LoadCacheConfig() CacheConfig {
	return CacheConfig{
		Enabled:      getenv("CACHE_ENABLED", "true") == "true",
		Methods:      parseSet(getenv("CACHE_METHODS", "GET")),
		TTL:          envDur("CACHE_TTL", 30*time.Second),
		KeyStrategy:  getenv("CACHE_KEY_STRATEGY", "route_query"),
		Prefix:       getenv("CACHE_PREFIX", "cache"),
		MaxBodyBytes: envInt("CACHE_MAX_BODY_BYTES", 1<<20),
	}
}
