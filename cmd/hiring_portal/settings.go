package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/hiring-portal/internal/catalog"
	"github.com/jonathan/hiring-portal/internal/config"
	"github.com/jonathan/hiring-portal/internal/db"
	"github.com/jonathan/hiring-portal/internal/fixtures"
	"github.com/jonathan/hiring-portal/internal/session"
	"github.com/jonathan/hiring-portal/internal/storage/sqlite"
)

// loadSettings layers the environment over the config file over the defaults.
func loadSettings() (config.Config, config.Env, error) {
	env, err := config.LoadEnv()
	if err != nil {
		return config.Config{}, config.Env{}, err
	}

	var file config.Config
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return config.Config{}, config.Env{}, err
		}
		file = *loaded
	}

	envCfg := env.Config()
	cfg := envCfg.MergeWithDefaults(file)
	if err := cfg.Validate(); err != nil {
		return config.Config{}, config.Env{}, err
	}
	return cfg, env, nil
}

// loadFixtures reads fixtures from the configured directory, or the embedded
// set when none is configured.
func loadFixtures(ctx context.Context, cfg config.Config) (*fixtures.Repository, error) {
	if cfg.FixturesDir != "" {
		return fixtures.LoadDir(ctx, cfg.FixturesDir)
	}
	return fixtures.LoadEmbedded(ctx)
}

// openArchive connects to PostgreSQL when a database URL is configured.
// The returned close func is never nil.
func openArchive(ctx context.Context, cfg config.Config) (*db.DB, func(), error) {
	if cfg.DatabaseURL == "" {
		return nil, func() {}, nil
	}
	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.EnsureSchema(ctx); err != nil {
		database.Close()
		return nil, nil, fmt.Errorf("failed to prepare database schema: %w", err)
	}
	return database, database.Close, nil
}

// newCatalog wraps repo, forwarding applications to archive when present.
func newCatalog(repo *fixtures.Repository, archive *db.DB) *catalog.Catalog {
	if archive == nil {
		return catalog.New(repo)
	}
	return catalog.New(repo, catalog.WithArchive(archive))
}

// openSession restores the terminal session stored at cfg.SessionDB.
func openSession(ctx context.Context, cfg config.Config, env config.Env, repo *fixtures.Repository) (*session.Store, func(), error) {
	if dir := filepath.Dir(cfg.SessionDB); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("failed to create session directory: %w", err)
		}
	}
	store, err := sqlite.Open(ctx, cfg.SessionDB)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open session store: %w", err)
	}

	pw, err := env.Password()
	if err != nil {
		_ = store.Close()
		return nil, nil, fmt.Errorf("failed to create password config: %w", err)
	}
	sessions := session.NewStore(repo, store, session.WithPasswordVerifier(pw))
	if err := sessions.Init(ctx); err != nil {
		_ = store.Close()
		return nil, nil, err
	}
	return sessions, func() { _ = store.Close() }, nil
}
