// Package agents provides the workflow stage implementations. Model-backed
// stages compose a prompt, call the chat agent, and parse a structured
// response into the document state; analysis stages evaluate deterministic
// rule tables. Every stage returns errors to the pipeline guard and never
// writes a partial result on failure paths that matter downstream.
package agents

import (
	"log/slog"

	"github.com/privacypoint/privacypoint/internal/ocr"
	"github.com/privacypoint/privacypoint/internal/pipeline"
)

// Runtime bundles the dependencies the workflow stages require. It is
// constructed by higher-level composition code from Infrastructure and
// configuration.
type Runtime struct {
	Completer Completer
	OCR       ocr.System
	Config    pipeline.Config
	Logger    *slog.Logger
}

// Registry returns the full stage registry in execution order.
func Registry(rt *Runtime) []pipeline.Stage {
	return []pipeline.Stage{
		OCRStage(rt),
		ClassifyStage(rt),
		DataMappingStage(rt),
		ResearchStage(rt),
		LegalExpertStage(rt),
		CyberSecurityStage(rt),
		StructureStage(rt),
		GenerateStage(rt),
		QualityStage(rt),
		ComplianceStage(rt),
		SupervisionStage(rt),
	}
}
