package config

import (
	"fmt"
	"time"
)

// JWTConfig holds configuration for the tokens the HTTP server issues.
type JWTConfig struct {
	Secret          string
	ExpirationHours int
}

// NewJWTConfig reads JWT_SECRET (required) and JWT_EXPIRATION_HOURS (default: 24).
func NewJWTConfig() (*JWTConfig, error) {
	e, err := LoadEnv()
	if err != nil {
		return nil, err
	}
	return e.JWT()
}

// JWT builds the token configuration from the environment.
func (e Env) JWT() (*JWTConfig, error) {
	if e.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required but not set")
	}
	c := &JWTConfig{Secret: e.JWTSecret, ExpirationHours: e.JWTExpirationHours}
	if err := c.normalize(); err != nil {
		return nil, err
	}
	return c, nil
}

// TTL is the lifetime of an issued token.
func (c *JWTConfig) TTL() time.Duration {
	return time.Duration(c.ExpirationHours) * time.Hour
}

func (c *JWTConfig) normalize() error {
	if c.Secret == "" {
		return fmt.Errorf("JWT_SECRET cannot be empty")
	}
	if c.ExpirationHours < 1 {
		return fmt.Errorf("JWT_EXPIRATION_HOURS must be at least 1 hour, got: %d", c.ExpirationHours)
	}
	return nil
}
