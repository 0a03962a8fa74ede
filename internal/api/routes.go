package api

import (
	"net/http"

	"github.com/privacypoint/privacypoint/internal/config"
	"github.com/privacypoint/privacypoint/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	cfg *config.Config,
) {
	routes.Register(
		mux,
		domain.Documents.Handler(cfg.API.MaxUploadSizeBytes()).Routes(),
	)
}
