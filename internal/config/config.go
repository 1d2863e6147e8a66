// Package config provides configuration loading and validation for the portal.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Default values used when neither the config file nor the environment sets one.
const (
	DefaultPort              = 8080
	DefaultSessionDB         = ".hiring/session.db"
	DefaultSubmitLatency     = 1500 * time.Millisecond
	DefaultCandidatePageSize = 5
)

// Config represents the portal configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or come from the environment.
type Config struct {
	// Paths
	FixturesDir string `json:"fixtures_dir,omitempty"` // Directory with jobs.json, candidates.json, users.json
	SessionDB   string `json:"session_db,omitempty"`   // SQLite file for the terminal session

	// Behavior
	SubmitLatency     Duration `json:"submit_latency,omitempty"`      // Simulated submission delay
	CandidatePageSize int      `json:"candidate_page_size,omitempty"` // Rows per admin candidate page

	// Services
	DatabaseURL  string `json:"database_url,omitempty"`  // PostgreSQL application archive
	Port         int    `json:"port,omitempty"`          // HTTP listen port
	OTELEndpoint string `json:"otel_endpoint,omitempty"` // OTLP/HTTP trace collector
}

// Duration is a time.Duration that reads "1500ms" style strings from JSON.
type Duration time.Duration

// UnmarshalJSON accepts either a duration string or a number of milliseconds.
func (d *Duration) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		parsed, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", s, err)
		}
		*d = Duration(parsed)
		return nil
	}
	var ms int64
	if err := json.Unmarshal(b, &ms); err != nil {
		return fmt.Errorf("duration must be a string or milliseconds: %w", err)
	}
	*d = Duration(time.Duration(ms) * time.Millisecond)
	return nil
}

// MarshalJSON writes the duration in its string form.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.SubmitLatency < 0 {
		return fmt.Errorf("config error: 'submit_latency' must be non-negative")
	}
	if c.CandidatePageSize < 0 {
		return fmt.Errorf("config error: 'candidate_page_size' must be non-negative")
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' out of range: %d", c.Port)
	}

	if c.FixturesDir != "" {
		info, err := os.Stat(c.FixturesDir)
		if os.IsNotExist(err) {
			return fmt.Errorf("config error: fixtures directory not found: %s", c.FixturesDir)
		}
		if err == nil && !info.IsDir() {
			return fmt.Errorf("config error: fixtures path is not a directory: %s", c.FixturesDir)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// Values still unset afterwards fall back to the package defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.FixturesDir == "" {
		result.FixturesDir = defaults.FixturesDir
	}
	if result.SessionDB == "" {
		result.SessionDB = defaults.SessionDB
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.OTELEndpoint == "" {
		result.OTELEndpoint = defaults.OTELEndpoint
	}
	if result.SubmitLatency == 0 {
		result.SubmitLatency = defaults.SubmitLatency
	}
	if result.CandidatePageSize == 0 {
		result.CandidatePageSize = defaults.CandidatePageSize
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}

	if result.SessionDB == "" {
		result.SessionDB = DefaultSessionDB
	}
	if result.SubmitLatency == 0 {
		result.SubmitLatency = Duration(DefaultSubmitLatency)
	}
	if result.CandidatePageSize == 0 {
		result.CandidatePageSize = DefaultCandidatePageSize
	}
	if result.Port == 0 {
		result.Port = DefaultPort
	}

	return result
}
