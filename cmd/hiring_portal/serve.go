package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jonathan/hiring-portal/internal/server"
	"github.com/jonathan/hiring-portal/internal/server/ratelimit"
	"github.com/jonathan/hiring-portal/internal/session"
	"github.com/jonathan/hiring-portal/internal/telemetry"
	"github.com/spf13/cobra"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes the job listing, application and admin endpoints.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default from HIRING_PORT or 8080)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := commandContext(cmd)

	cfg, env, err := loadSettings()
	if err != nil {
		return err
	}
	if servePort != 0 {
		cfg.Port = servePort
	}

	shutdownTracing, err := telemetry.Setup(ctx, "hiring-portal", cfg.OTELEndpoint)
	if err != nil {
		return fmt.Errorf("failed to set up tracing: %w", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			log.Printf("[serve] tracing shutdown: %v", err)
		}
	}()

	repo, err := loadFixtures(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to load fixtures: %w", err)
	}
	archive, closeArchive, err := openArchive(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeArchive()
	if archive != nil {
		log.Printf("[serve] archiving applications to PostgreSQL")
	}

	jwtConfig, err := env.JWT()
	if err != nil {
		return fmt.Errorf("failed to create JWT config: %w", err)
	}
	passwordConfig, err := env.Password()
	if err != nil {
		return fmt.Errorf("failed to create password config: %w", err)
	}

	srv, err := server.New(server.Config{
		Port:              cfg.Port,
		SubmitLatency:     time.Duration(cfg.SubmitLatency),
		CandidatePageSize: cfg.CandidatePageSize,
	}, server.Deps{
		Catalog: newCatalog(repo, archive),
		// HTTP sessions live in tokens; the store only checks credentials.
		Sessions:    session.NewStore(repo, session.NewMemoryPersistence(), session.WithPasswordVerifier(passwordConfig)),
		JWT:         server.NewJWTService(jwtConfig),
		RateLimiter: ratelimit.NewLimiter(ratelimit.LoadConfig()),
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
