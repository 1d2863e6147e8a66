package ratelimit

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // Endpoint path pattern (prefix match when it ends with "/")
	Method string        // HTTP method
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// key groups every path under a prefix tier into one bucket.
func (c *EndpointConfig) key(path string) string {
	if c.Path != "" {
		return c.Path
	}
	return path
}

type envConfig struct {
	Enabled         bool          `env:"RATE_LIMIT_ENABLED" envDefault:"true"`
	DefaultLimit    int           `env:"RATE_LIMIT_DEFAULT_LIMIT" envDefault:"600"`
	DefaultWindow   time.Duration `env:"RATE_LIMIT_DEFAULT_WINDOW" envDefault:"1m"`
	CleanupInterval time.Duration `env:"RATE_LIMIT_CLEANUP_INTERVAL" envDefault:"5m"`
	Whitelist       []string      `env:"RATE_LIMIT_WHITELIST" envSeparator:","`
	Blacklist       []string      `env:"RATE_LIMIT_BLACKLIST" envSeparator:","`
}

// LoadConfig loads rate limiting configuration from environment variables.
// Unparseable values fall back to the defaults.
func LoadConfig() *Config {
	var raw envConfig
	if err := env.Parse(&raw); err != nil {
		log.Printf("[rate-limit] %v; using defaults", fmt.Errorf("parse env: %w", err))
		raw = envConfig{Enabled: true, DefaultLimit: 600, DefaultWindow: time.Minute, CleanupInterval: 5 * time.Minute}
	}
	if !raw.Enabled {
		return &Config{Enabled: false}
	}

	return &Config{
		Enabled:         true,
		DefaultLimit:    raw.DefaultLimit,
		DefaultWindow:   raw.DefaultWindow,
		CleanupInterval: raw.CleanupInterval,
		Whitelist:       toSet(raw.Whitelist),
		Blacklist:       toSet(raw.Blacklist),
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// DefaultEndpointConfigs returns the default endpoint-specific configurations.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		// Tier 1: credential checks and submissions
		{Path: "/auth/login", Method: "POST", Limit: 30, Window: time.Minute, Burst: 5},
		{Path: "/jobs/", Method: "POST", Limit: 20, Window: time.Minute, Burst: 5},

		// Tier 2: admin writes
		{Path: "/admin/jobs", Method: "POST", Limit: 100, Window: time.Minute, Burst: 10},
		{Path: "/admin/jobs/", Method: "PUT", Limit: 100, Window: time.Minute, Burst: 10},

		// Tier 3: reads use the default limit; /health is unlimited
	}
}

func toSet(items []string) map[string]bool {
	result := make(map[string]bool, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			result[item] = true
		}
	}
	return result
}
