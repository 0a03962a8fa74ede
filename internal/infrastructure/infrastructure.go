// Package infrastructure assembles the shared systems domain modules build
// on: lifecycle coordination, structured logging, the PostgreSQL connection,
// and blob storage.
package infrastructure

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/privacypoint/privacypoint/internal/config"
	"github.com/privacypoint/privacypoint/pkg/database"
	"github.com/privacypoint/privacypoint/pkg/lifecycle"
	"github.com/privacypoint/privacypoint/pkg/storage"
)

const envLogFormat = "PRIVPOINT_LOG_FORMAT"

// Infrastructure holds the core systems required by all domain modules.
type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Database  database.System
	Storage   storage.System
}

// New creates an Infrastructure from the application configuration. Systems
// are initialized but not started; call Start separately.
func New(cfg *config.Config) (*Infrastructure, error) {
	lc := lifecycle.New()
	logger := newLogger()

	db, err := database.New(&cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}

	store, err := storage.New(&cfg.Storage, logger)
	if err != nil {
		return nil, fmt.Errorf("storage init failed: %w", err)
	}

	return &Infrastructure{
		Lifecycle: lc,
		Logger:    logger,
		Database:  db,
		Storage:   store,
	}, nil
}

// Start registers all infrastructure systems with the lifecycle coordinator.
func (i *Infrastructure) Start() error {
	if err := i.Database.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("database start failed: %w", err)
	}
	if err := i.Storage.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("storage start failed: %w", err)
	}
	return nil
}

// newLogger builds the root slog logger. PRIVPOINT_LOG_FORMAT=json switches
// to JSON output for log aggregation; anything else logs text.
func newLogger() *slog.Logger {
	if os.Getenv(envLogFormat) == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, nil))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, nil))
}
