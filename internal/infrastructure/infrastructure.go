// Package infrastructure provides core service initialization for application startup.
// It assembles the common dependencies (logging, database, token verification)
// that domain systems require.
package infrastructure

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/JaimeStill/aspiredu/internal/access"
	"github.com/JaimeStill/aspiredu/internal/config"
	"github.com/JaimeStill/aspiredu/pkg/database"
	"github.com/JaimeStill/aspiredu/pkg/lifecycle"
)

const discoveryTimeout = 30 * time.Second

// Infrastructure holds the core systems required by all domain modules.
type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Database  database.System
	// Verifier checks bearer tokens issued by the configured OpenID provider.
	Verifier access.Verifier
}

// New creates an Infrastructure from the application configuration.
// Provider discovery happens here so a misconfigured issuer fails startup.
// Systems are not started; call Start separately.
func New(cfg *config.Config) (*Infrastructure, error) {
	lc := lifecycle.New()
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	db, err := database.New(&cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}

	ctx, cancel := context.WithTimeout(lc.Context(), discoveryTimeout)
	defer cancel()

	verifier, err := access.NewVerifier(ctx, &cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("auth init failed: %w", err)
	}

	return &Infrastructure{
		Lifecycle: lc,
		Logger:    logger,
		Database:  db,
		Verifier:  verifier,
	}, nil
}

// Start registers the database with the lifecycle coordinator.
func (i *Infrastructure) Start() error {
	if err := i.Database.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("database start failed: %w", err)
	}
	return nil
}
