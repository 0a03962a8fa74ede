package api

import (
	"fmt"

	"github.com/privacypoint/privacypoint/internal/agents"
	"github.com/privacypoint/privacypoint/internal/documents"
	"github.com/privacypoint/privacypoint/internal/metrics"
	"github.com/privacypoint/privacypoint/internal/ocr"
	"github.com/privacypoint/privacypoint/internal/pipeline"
)

// Domain holds the domain systems that comprise the API.
type Domain struct {
	Documents documents.System
	Metrics   *metrics.Metrics
}

// NewDomain wires the workflow: OCR engines, the chat agent, the stage
// registry, and the document system that drives them.
func NewDomain(runtime *Runtime) (*Domain, error) {
	cfg := runtime.Config

	ocrSystem, err := ocr.New([]ocr.Engine{
		ocr.NewTextEngine(),
		ocr.NewVisionEngine(cfg.Agents.Vision),
	}, runtime.Logger)
	if err != nil {
		return nil, fmt.Errorf("ocr init failed: %w", err)
	}

	stageRuntime := &agents.Runtime{
		Completer: agents.NewCompleter(cfg.Agents.Chat),
		OCR:       ocrSystem,
		Config:    cfg.Workflow.Pipeline(),
		Logger:    runtime.Logger,
	}

	m := metrics.New()
	notifier := documents.NewNotifier(runtime.Logger, cfg.Workflow.WebhookTimeoutDuration())

	docsSystem, err := documents.New(
		runtime.Database.Connection(),
		runtime.Storage,
		agents.Registry(stageRuntime),
		notifier,
		runtime.Logger,
		documents.Config{
			Pagination:        cfg.API.Pagination,
			Workflow:          cfg.Workflow.Pipeline(),
			MaxConcurrentRuns: cfg.Workflow.MaxConcurrentRuns,
			RunTimeout:        cfg.Workflow.RunTimeoutDuration(),
		},
		pipeline.WithObserver(m),
	)
	if err != nil {
		return nil, fmt.Errorf("documents init failed: %w", err)
	}

	return &Domain{
		Documents: docsSystem,
		Metrics:   m,
	}, nil
}
