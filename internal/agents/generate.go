package agents

import (
	"context"
	"fmt"
	"strings"

	"github.com/privacypoint/privacypoint/internal/pipeline"
	"github.com/privacypoint/privacypoint/internal/prompts"
	"github.com/privacypoint/privacypoint/pkg/formatting"
)

type generateResponse struct {
	Content  string            `json:"content"`
	Sections map[string]string `json:"sections"`
	Clauses  []string          `json:"clauses"`
}

// GenerateStage drafts the full document from the planned structure. On
// revision passes the prompt carries the prior pass's quality issues and
// reviewer feedback so the draft can address them.
func GenerateStage(rt *Runtime) pipeline.Stage {
	return pipeline.Stage{
		Name:   pipeline.StageGenerate,
		Status: pipeline.StatusGenerated,
		Run: func(ctx context.Context, s *pipeline.DocumentState) error {
			content, err := rt.Completer.Complete(ctx, prompts.Generate(s))
			if err != nil {
				return fmt.Errorf("generate request: %w", err)
			}

			parsed, err := formatting.Parse[generateResponse](content)
			if err != nil {
				return fmt.Errorf("%w: generate response: %w", pipeline.ErrContent, err)
			}

			if strings.TrimSpace(parsed.Content) == "" {
				return fmt.Errorf("%w: generate returned empty content", pipeline.ErrContent)
			}

			s.GeneratedContent = parsed.Content
			s.ContentSections = parsed.Sections
			s.LegalClauses = parsed.Clauses
			return nil
		},
	}
}
