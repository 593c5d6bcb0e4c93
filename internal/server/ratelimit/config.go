package ratelimit

import (
	"strconv"
	"strings"
	"time"
)

// EndpointConfig limits one path and method. A Path ending in "/" matches by prefix.
type EndpointConfig struct {
	Path   string
	Method string
	Limit  int // requests per Window; 0 means unlimited
	Window time.Duration
	Burst  int // bucket capacity, defaults to Limit
}

// key groups prefix routes into one bucket so /analyses/1 and /analyses/2 share a budget.
func (e *EndpointConfig) key(path string) string {
	if e.Path != "" {
		return e.Path
	}
	return path
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	IdleTTL         time.Duration
	Whitelist       map[string]bool
	Blacklist       map[string]bool
	EndpointConfigs []EndpointConfig
}

// DefaultConfig returns the limits used when no environment overrides are set.
func DefaultConfig() *Config {
	return &Config{
		Enabled:         true,
		DefaultLimit:    600,
		DefaultWindow:   time.Minute,
		CleanupInterval: 5 * time.Minute,
		IdleTTL:         time.Hour,
		Whitelist:       map[string]bool{},
		Blacklist:       map[string]bool{},
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// DefaultEndpointConfigs returns the per-route limits. Batch analysis is the
// most expensive route, single analysis next; reads fall through to the default.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		{Path: "/analyze", Method: "POST", Limit: 120, Window: time.Minute, Burst: 20},
		{Path: "/analyze/batch", Method: "POST", Limit: 20, Window: time.Minute, Burst: 5},
	}
}

// LoadConfig builds a Config from RATE_LIMIT_* variables found by lookup.
// Unparseable values fall back to the defaults.
func LoadConfig(lookup func(string) (string, bool)) *Config {
	cfg := DefaultConfig()
	env := envReader(lookup)

	cfg.Enabled = env.bool("RATE_LIMIT_ENABLED", cfg.Enabled)
	if !cfg.Enabled {
		return &Config{Enabled: false}
	}

	cfg.DefaultLimit = env.int("RATE_LIMIT_DEFAULT_LIMIT", cfg.DefaultLimit)
	cfg.DefaultWindow = env.duration("RATE_LIMIT_DEFAULT_WINDOW", cfg.DefaultWindow)
	cfg.CleanupInterval = env.duration("RATE_LIMIT_CLEANUP_INTERVAL", cfg.CleanupInterval)
	cfg.Whitelist = parseIPList(env.string("RATE_LIMIT_WHITELIST", ""))
	cfg.Blacklist = parseIPList(env.string("RATE_LIMIT_BLACKLIST", ""))

	for i := range cfg.EndpointConfigs {
		ep := &cfg.EndpointConfigs[i]
		prefix := "RATE_LIMIT_" + envName(ep.Path)
		ep.Limit = env.int(prefix+"_LIMIT", ep.Limit)
		ep.Burst = env.int(prefix+"_BURST", ep.Burst)
	}
	return cfg
}

// envName turns "/analyze/batch" into "ANALYZE_BATCH".
func envName(path string) string {
	return strings.ToUpper(strings.ReplaceAll(strings.Trim(path, "/"), "/", "_"))
}

type envReader func(string) (string, bool)

func (r envReader) string(key, def string) string {
	if v, ok := r(key); ok && v != "" {
		return v
	}
	return def
}

func (r envReader) int(key string, def int) int {
	if n, err := strconv.Atoi(r.string(key, "")); err == nil {
		return n
	}
	return def
}

func (r envReader) bool(key string, def bool) bool {
	if b, err := strconv.ParseBool(r.string(key, "")); err == nil {
		return b
	}
	return def
}

func (r envReader) duration(key string, def time.Duration) time.Duration {
	if d, err := time.ParseDuration(r.string(key, "")); err == nil {
		return d
	}
	return def
}

// parseIPList parses a comma-separated list of client addresses.
func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}
