package api

import (
	"github.com/privacypoint/privacypoint/internal/config"
	"github.com/privacypoint/privacypoint/internal/infrastructure"
)

// Runtime extends Infrastructure with the API module's configuration.
type Runtime struct {
	*infrastructure.Infrastructure
	Config *config.Config
}

// NewRuntime creates an API runtime with a module-scoped logger.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) *Runtime {
	return &Runtime{
		Infrastructure: &infrastructure.Infrastructure{
			Lifecycle: infra.Lifecycle,
			Logger:    infra.Logger.With("module", "api"),
			Database:  infra.Database,
			Storage:   infra.Storage,
		},
		Config: cfg,
	}
}
