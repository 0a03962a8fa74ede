// Package api assembles the API module: domain wiring, middleware, and
// route registration.
package api

import (
	"net/http"

	"github.com/privacypoint/privacypoint/internal/config"
	"github.com/privacypoint/privacypoint/internal/infrastructure"
	"github.com/privacypoint/privacypoint/pkg/middleware"
	"github.com/privacypoint/privacypoint/pkg/module"
)

// NewModule creates the API module with all domain handlers and middleware.
func NewModule(cfg *config.Config, infra *infrastructure.Infrastructure) (*module.Module, error) {
	runtime := NewRuntime(cfg, infra)

	domain, err := NewDomain(runtime)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	registerRoutes(mux, domain, cfg)

	m := module.New(cfg.API.BasePath, mux)
	m.Use(middleware.CORS(&cfg.API.CORS))
	m.Use(middleware.Logger(runtime.Logger))

	return m, nil
}
