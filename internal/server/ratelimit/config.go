package ratelimit

import (
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

// EndpointConfig sets the quota for one endpoint. A Path ending in "/" is a
// prefix pattern covering everything below it.
type EndpointConfig struct {
	Path   string
	Method string
	Limit  int           // requests per Window
	Window time.Duration
	Burst  int           // bucket capacity; defaults to Limit when 0
}

// MatchEndpoint finds the configuration covering a path and method. Exact
// paths win over prefix patterns. The health check is always unlimited.
func MatchEndpoint(path, method string, configs []EndpointConfig) *EndpointConfig {
	if path == "/health" && method == http.MethodGet {
		return &EndpointConfig{}
	}

	for i := range configs {
		c := &configs[i]
		if c.Method == method && c.Path == path {
			return c
		}
	}
	for i := range configs {
		c := &configs[i]
		if c.Method == method && strings.HasSuffix(c.Path, "/") && strings.HasPrefix(path, c.Path) {
			return c
		}
	}
	return nil
}

// LoadConfig builds the limiter configuration from the environment:
// RATE_LIMIT_ENABLED, RATE_LIMIT_DEFAULT_LIMIT, RATE_LIMIT_DEFAULT_WINDOW,
// RATE_LIMIT_CLEANUP_INTERVAL, RATE_LIMIT_WHITELIST, RATE_LIMIT_BLACKLIST.
func LoadConfig() *Config {
	if !envBool("RATE_LIMIT_ENABLED", true) {
		return &Config{}
	}

	return &Config{
		Enabled:         true,
		DefaultLimit:    envInt("RATE_LIMIT_DEFAULT_LIMIT", 1000),
		DefaultWindow:   envDuration("RATE_LIMIT_DEFAULT_WINDOW", time.Minute),
		CleanupInterval: envDuration("RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute),
		Whitelist:       clientSet(os.Getenv("RATE_LIMIT_WHITELIST")),
		Blacklist:       clientSet(os.Getenv("RATE_LIMIT_BLACKLIST")),
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// DefaultEndpointConfigs returns the per-endpoint quotas. Transcription,
// chat completions and PDF extraction cost real money or CPU per call, so
// they sit in the strictest tier; auth and chat writes get per-minute
// limits; reads fall through to the default quota.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		{Path: "/youtube/process", Method: "POST", Limit: 20, Window: time.Hour, Burst: 3},
		{Path: "/chat", Method: "POST", Limit: 60, Window: time.Hour, Burst: 5},
		{Path: "/pdf/upload", Method: "POST", Limit: 60, Window: time.Hour, Burst: 5},

		{Path: "/auth/signup", Method: "POST", Limit: 10, Window: time.Minute, Burst: 3},
		{Path: "/auth/signin", Method: "POST", Limit: 20, Window: time.Minute, Burst: 5},
		{Path: "/auth/password", Method: "PUT", Limit: 10, Window: time.Minute, Burst: 3},
		{Path: "/chats", Method: "POST", Limit: 100, Window: time.Minute, Burst: 10},
		{Path: "/chats/", Method: "PUT", Limit: 100, Window: time.Minute, Burst: 10},
		{Path: "/chats/", Method: "POST", Limit: 100, Window: time.Minute, Burst: 10},
		{Path: "/chats/", Method: "DELETE", Limit: 100, Window: time.Minute, Burst: 10},
		{Path: "/notion/page/title", Method: "POST", Limit: 100, Window: time.Minute, Burst: 10},
	}
}

func envBool(key string, def bool) bool {
	if raw := os.Getenv(key); raw != "" {
		if v, err := strconv.ParseBool(raw); err == nil {
			return v
		}
	}
	return def
}

func envInt(key string, def int) int {
	if raw := os.Getenv(key); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			return v
		}
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if raw := os.Getenv(key); raw != "" {
		if v, err := time.ParseDuration(raw); err == nil {
			return v
		}
	}
	return def
}

// clientSet parses a comma-separated client ID list into a lookup set.
func clientSet(list string) map[string]bool {
	set := make(map[string]bool)
	for _, id := range strings.Split(list, ",") {
		if id = strings.TrimSpace(id); id != "" {
			set[id] = true
		}
	}
	return set
}
