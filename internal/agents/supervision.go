package agents

import (
	"context"
	"fmt"

	"github.com/privacypoint/privacypoint/internal/pipeline"
)

// SupervisionStage moves the document into human review. With automatic
// review enabled the stage resolves the decision itself from the quality
// and compliance scores; otherwise the state parks in human review until an
// external reviewer submits a decision.
func SupervisionStage(rt *Runtime) pipeline.Stage {
	return pipeline.Stage{
		Name: pipeline.StageHumanSupervision,
		Run: func(ctx context.Context, s *pipeline.DocumentState) error {
			if err := s.Transition(pipeline.StatusHumanReview); err != nil {
				return err
			}

			if !rt.Config.AutoReview {
				s.AppendLog(pipeline.StageHumanSupervision, "awaiting external review")
				return nil
			}

			decision, feedback := simulateReview(s, rt.Config)
			return pipeline.ApplyDecision(s, decision, "supervisor-automatico", feedback, rt.Config.MaxRevisionAttempts)
		},
	}
}

// simulateReview derives a review decision from the recorded scores. Both
// scores at or above the approval threshold approve; a score below the
// revision floor requests another pass while attempts remain; anything else
// rejects.
func simulateReview(s *pipeline.DocumentState, cfg pipeline.Config) (pipeline.Decision, string) {
	switch {
	case s.QualityScore >= cfg.ApprovalThreshold && s.ComplianceScore >= cfg.ApprovalThreshold:
		return pipeline.DecisionApproved,
			fmt.Sprintf("Documento aprovado automaticamente (qualidade %.2f, conformidade %.2f)",
				s.QualityScore, s.ComplianceScore)
	case s.RevisionAttempts < cfg.MaxRevisionAttempts &&
		(s.QualityScore < cfg.QualityThreshold || s.ComplianceScore < cfg.QualityThreshold):
		return pipeline.DecisionNeedsRevision,
			fmt.Sprintf("Revisão solicitada (qualidade %.2f, conformidade %.2f)",
				s.QualityScore, s.ComplianceScore)
	default:
		return pipeline.DecisionRejected,
			fmt.Sprintf("Documento rejeitado (qualidade %.2f, conformidade %.2f)",
				s.QualityScore, s.ComplianceScore)
	}
}
