package agents

import (
	"context"
	"fmt"

	"github.com/privacypoint/privacypoint/internal/pipeline"
	"github.com/privacypoint/privacypoint/internal/prompts"
	"github.com/privacypoint/privacypoint/pkg/formatting"
)

type legalExpertResponse struct {
	RiskLevel        string   `json:"risk_level"`
	Notes            []string `json:"notes"`
	MandatoryClauses []string `json:"mandatory_clauses"`
}

// LegalExpertStage reviews the researched basis and produces the risk
// assessment and the clauses the generated document must contain.
func LegalExpertStage(rt *Runtime) pipeline.Stage {
	return pipeline.Stage{
		Name:   pipeline.StageLegalExpert,
		Status: pipeline.StatusLegalReviewed,
		Run: func(ctx context.Context, s *pipeline.DocumentState) error {
			content, err := rt.Completer.Complete(ctx, prompts.LegalExpert(s))
			if err != nil {
				return fmt.Errorf("legal review request: %w", err)
			}

			parsed, err := formatting.Parse[legalExpertResponse](content)
			if err != nil {
				return fmt.Errorf("%w: legal review response: %w", pipeline.ErrContent, err)
			}

			s.LegalReview = pipeline.LegalReview{
				RiskLevel:        pipeline.ParseRiskLevel(parsed.RiskLevel),
				Notes:            parsed.Notes,
				MandatoryClauses: parsed.MandatoryClauses,
			}

			// Sensitive data processing floors the risk at high.
			if len(s.DataMap.SensitiveData) > 0 && s.LegalReview.RiskLevel.Weight() < pipeline.RiskHigh.Weight() {
				s.LegalReview.RiskLevel = pipeline.RiskHigh
				s.LegalReview.Notes = append(
					s.LegalReview.Notes,
					"risco elevado por tratamento de dados sensíveis",
				)
			}

			return nil
		},
	}
}
