package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Env is the process environment the portal reads at startup.
type Env struct {
	Port          int           `env:"HIRING_PORT"`
	DatabaseURL   string        `env:"DATABASE_URL"`
	FixturesDir   string        `env:"HIRING_FIXTURES_DIR"`
	SessionDB     string        `env:"SESSION_DB"`
	SubmitLatency time.Duration `env:"SUBMIT_LATENCY"`
	OTELEndpoint  string        `env:"OTEL_ENDPOINT"`

	JWTSecret          string `env:"JWT_SECRET"`
	JWTExpirationHours int    `env:"JWT_EXPIRATION_HOURS" envDefault:"24"`
	BcryptCost         int    `env:"BCRYPT_COST" envDefault:"12"`
	PasswordPepper     string `env:"PASSWORD_PEPPER"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// LoadEnv parses Env from the process environment.
func LoadEnv() (Env, error) {
	var e Env
	if err := ParseEnv(&e); err != nil {
		return Env{}, err
	}
	return e, nil
}

// Config returns the environment as a Config layer for MergeWithDefaults.
func (e Env) Config() Config {
	return Config{
		FixturesDir:   e.FixturesDir,
		SessionDB:     e.SessionDB,
		SubmitLatency: Duration(e.SubmitLatency),
		DatabaseURL:   e.DatabaseURL,
		Port:          e.Port,
		OTELEndpoint:  e.OTELEndpoint,
	}
}
