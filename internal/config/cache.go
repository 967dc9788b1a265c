package config

import (
	"strings"
	"time"
)

// CacheConfig drives the catalogue response cache. The venue listing and
// detail pages are the read-heavy surface and tolerate a short TTL;
// bookings, auth and owner views carry per-user state and are excluded
// via SkipPrefixes. KeyStrategy picks which parts of the request form the
// cache key; Prefix namespaces the keys in Redis.
type CacheConfig struct {
	Enabled      bool
	Methods      map[string]bool
	TTL          time.Duration
	KeyStrategy  string
	Prefix       string
	MaxBodyBytes int
	SkipPrefixes []string
}

// LoadCacheConfig builds a CacheConfig from the environment. The default
// skip list covers every route whose response depends on the caller.
func LoadCacheConfig() CacheConfig {
	return CacheConfig{
		Enabled:      getenv("CACHE_ENABLED", "true") == "true",
		Methods:      parseMethods(getenv("CACHE_METHODS", "GET")),
		TTL:          parseDur(getenv("CACHE_TTL", "30s")),
		KeyStrategy:  getenv("CACHE_KEY_STRATEGY", "route_query"),
		Prefix:       getenv("CACHE_PREFIX", "vhb:cache"),
		MaxBodyBytes: atoi(getenv("CACHE_MAX_BODY_BYTES", "1048576")),
		SkipPrefixes: parseCSV(getenv("CACHE_SKIP_PREFIXES",
			"/v1/bookings,/v1/my-bookings,/v1/auth,/v1/me,/v1/logout,/v1/halls")),
	}
}

func parseMethods(s string) map[string]bool {
	m := map[string]bool{}
	for _, p := range parseCSV(s) {
		m[strings.ToUpper(p)] = true
	}
	return m
}

func parseCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
