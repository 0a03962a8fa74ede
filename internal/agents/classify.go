package agents

import (
	"context"
	"fmt"

	"github.com/privacypoint/privacypoint/internal/pipeline"
	"github.com/privacypoint/privacypoint/internal/prompts"
	"github.com/privacypoint/privacypoint/pkg/formatting"
)

type classifyResponse struct {
	DocumentType     string   `json:"document_type"`
	Complexity       string   `json:"complexity"`
	Urgency          string   `json:"urgency"`
	RequiredSections []string `json:"required_sections"`
	EstimatedPages   int      `json:"estimated_pages"`
	Rationale        string   `json:"rationale"`
}

// ClassifyStage scopes the document: complexity, urgency, and the sections
// it must contain. When source text was extracted, the model also
// classifies what kind of document the source is; the requested document
// type stays authoritative.
func ClassifyStage(rt *Runtime) pipeline.Stage {
	return pipeline.Stage{
		Name:   pipeline.StageClassify,
		Status: pipeline.StatusClassified,
		Run: func(ctx context.Context, s *pipeline.DocumentState) error {
			content, err := rt.Completer.Complete(ctx, prompts.Classify(s))
			if err != nil {
				return fmt.Errorf("classify request: %w", err)
			}

			parsed, err := formatting.Parse[classifyResponse](content)
			if err != nil {
				return fmt.Errorf("%w: classify response: %w", pipeline.ErrContent, err)
			}

			applyClassification(s, parsed)
			return nil
		},
	}
}

func applyClassification(s *pipeline.DocumentState, resp classifyResponse) {
	if t, err := pipeline.ParseDocumentType(resp.DocumentType); err == nil && s.OCRText != "" {
		s.SourceClassification = string(t)
	}

	s.Complexity = defaultString(resp.Complexity, "medium")
	s.Urgency = defaultString(resp.Urgency, "normal")

	s.RequiredSections = resp.RequiredSections
	if len(s.RequiredSections) == 0 {
		s.RequiredSections = DefaultSections(s.DocumentType)
	}

	s.EstimatedPages = resp.EstimatedPages
	if s.EstimatedPages <= 0 {
		s.EstimatedPages = defaultPageEstimate(s.Complexity)
	}
}

func defaultString(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

func defaultPageEstimate(complexity string) int {
	switch complexity {
	case "low":
		return 3
	case "high":
		return 10
	default:
		return 5
	}
}
