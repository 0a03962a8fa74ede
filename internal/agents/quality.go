package agents

import (
	"context"
	"fmt"
	"strings"

	"github.com/privacypoint/privacypoint/internal/pipeline"
)

// placeholderMarkers are fragments that indicate the model left editorial
// gaps instead of operative text.
var placeholderMarkers = []string{
	"[inserir",
	"[preencher",
	"[nome da",
	"lorem ipsum",
	"todo:",
	"xxx",
}

type qualityCheck struct {
	Name       string
	Severity   pipeline.RiskLevel
	Suggestion string
	Passed     func(s *pipeline.DocumentState) bool
}

var qualityChecks = []qualityCheck{
	{
		Name:       "has_content",
		Severity:   pipeline.RiskCritical,
		Suggestion: "Gerar o conteúdo completo do documento",
		Passed: func(s *pipeline.DocumentState) bool {
			return strings.TrimSpace(s.GeneratedContent) != ""
		},
	},
	{
		Name:       "sections_complete",
		Severity:   pipeline.RiskHigh,
		Suggestion: "Redigir todas as seções planejadas na estrutura",
		Passed: func(s *pipeline.DocumentState) bool {
			for _, sec := range s.Structure.Sections {
				if !sectionDrafted(s, sec.Title) {
					return false
				}
			}
			return true
		},
	},
	{
		Name:       "clauses_drafted",
		Severity:   pipeline.RiskHigh,
		Suggestion: "Incluir todas as cláusulas obrigatórias apontadas na revisão jurídica",
		Passed: func(s *pipeline.DocumentState) bool {
			return len(s.LegalClauses) >= len(s.LegalReview.MandatoryClauses)
		},
	},
	{
		Name:       "no_placeholders",
		Severity:   pipeline.RiskMedium,
		Suggestion: "Substituir marcadores de edição por texto definitivo",
		Passed: func(s *pipeline.DocumentState) bool {
			lower := strings.ToLower(s.GeneratedContent)
			for _, marker := range placeholderMarkers {
				if strings.Contains(lower, marker) {
					return false
				}
			}
			return true
		},
	},
	{
		Name:       "company_named",
		Severity:   pipeline.RiskMedium,
		Suggestion: "Identificar a empresa responsável no corpo do documento",
		Passed: func(s *pipeline.DocumentState) bool {
			return strings.Contains(
				strings.ToLower(s.GeneratedContent),
				strings.ToLower(s.CompanyName),
			)
		},
	},
	{
		Name:       "legal_basis_cited",
		Severity:   pipeline.RiskMedium,
		Suggestion: "Citar a base legal aplicável no texto do documento",
		Passed: func(s *pipeline.DocumentState) bool {
			lower := strings.ToLower(s.GeneratedContent)
			for _, ref := range s.LegalBasis {
				if strings.Contains(lower, strings.ToLower(ref.Article)) {
					return true
				}
			}
			return len(s.LegalBasis) == 0
		},
	},
}

// QualityStage runs the deterministic quality checklist over the draft.
// When the score falls below the configured threshold and revision
// attempts remain, it flags the state for another generation pass.
func QualityStage(rt *Runtime) pipeline.Stage {
	return pipeline.Stage{
		Name:   pipeline.StageQuality,
		Status: pipeline.StatusQualityChecked,
		Run: func(ctx context.Context, s *pipeline.DocumentState) error {
			checklist := make(map[string]bool, len(qualityChecks))
			issues := []pipeline.QualityIssue{}
			passed := 0

			for _, check := range qualityChecks {
				ok := check.Passed(s)
				checklist[check.Name] = ok
				if ok {
					passed++
					continue
				}
				issues = append(issues, pipeline.QualityIssue{
					Severity:    check.Severity,
					Category:    check.Name,
					Description: fmt.Sprintf("quality check %s failed", check.Name),
					Suggestion:  check.Suggestion,
				})
			}

			s.QualityScore = float64(passed) / float64(len(qualityChecks))
			s.QualityChecklist = checklist
			s.QualityIssues = issues

			critical := 0
			for _, issue := range issues {
				if issue.Severity == pipeline.RiskCritical {
					critical++
				}
			}

			// Acceptability requires the score threshold AND no critical
			// issue; a critical failure forces revision even at a passing
			// score.
			acceptable := s.QualityScore >= rt.Config.QualityThreshold && critical == 0
			if !acceptable && s.RevisionAttempts < rt.Config.MaxRevisionAttempts {
				s.RevisionAttempts++
				s.NeedsRevision = true
				s.AppendLog(pipeline.StageQuality,
					fmt.Sprintf("score %.2f, threshold %.2f, critical issues %d, revision requested",
						s.QualityScore, rt.Config.QualityThreshold, critical))
			}

			return nil
		},
	}
}

func sectionDrafted(s *pipeline.DocumentState, title string) bool {
	for name := range s.ContentSections {
		if strings.EqualFold(strings.TrimSpace(name), strings.TrimSpace(title)) {
			return true
		}
	}
	return strings.Contains(
		strings.ToLower(s.GeneratedContent),
		strings.ToLower(strings.TrimSpace(title)),
	)
}
