package agents

import (
	"context"
	"fmt"

	"github.com/privacypoint/privacypoint/internal/pipeline"
	"github.com/privacypoint/privacypoint/internal/prompts"
	"github.com/privacypoint/privacypoint/pkg/formatting"
)

type researchResponse struct {
	ApplicableLaws         []string          `json:"applicable_laws"`
	LegalBasis             []legalBasisEntry `json:"legal_basis"`
	RegulatoryRequirements []string          `json:"regulatory_requirements"`
	ComplianceGaps         []string          `json:"compliance_gaps"`
}

type legalBasisEntry struct {
	Article     string `json:"article"`
	Description string `json:"description"`
}

// baseLaws always apply to Brazilian personal data processing regardless
// of what the model returns.
var baseLaws = []string{
	"LGPD - Lei nº 13.709/2018",
	"Marco Civil da Internet - Lei nº 12.965/2014",
}

// ResearchStage identifies the statutes, articles, and obligations that
// govern the activity. Model findings are merged over the base statutes
// that always apply.
func ResearchStage(rt *Runtime) pipeline.Stage {
	return pipeline.Stage{
		Name:   pipeline.StageResearch,
		Status: pipeline.StatusResearched,
		Run: func(ctx context.Context, s *pipeline.DocumentState) error {
			content, err := rt.Completer.Complete(ctx, prompts.Research(s))
			if err != nil {
				return fmt.Errorf("research request: %w", err)
			}

			parsed, err := formatting.Parse[researchResponse](content)
			if err != nil {
				return fmt.Errorf("%w: research response: %w", pipeline.ErrContent, err)
			}

			if len(parsed.LegalBasis) == 0 {
				return fmt.Errorf("%w: research returned no legal basis", pipeline.ErrContent)
			}

			applyResearch(s, parsed)
			return nil
		},
	}
}

func applyResearch(s *pipeline.DocumentState, resp researchResponse) {
	laws := append([]string{}, baseLaws...)
	for _, law := range resp.ApplicableLaws {
		laws = appendUnique(laws, law)
	}
	s.ApplicableLaws = laws

	s.LegalBasis = make([]pipeline.LegalReference, 0, len(resp.LegalBasis))
	for _, entry := range resp.LegalBasis {
		if entry.Article == "" {
			continue
		}
		s.LegalBasis = append(s.LegalBasis, pipeline.LegalReference{
			Article:     entry.Article,
			Description: entry.Description,
		})
	}

	s.RegulatoryRequirements = resp.RegulatoryRequirements
	s.ComplianceGaps = resp.ComplianceGaps
}
