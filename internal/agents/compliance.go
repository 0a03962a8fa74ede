package agents

import (
	"context"
	"fmt"
	"strings"

	"github.com/privacypoint/privacypoint/internal/pipeline"
)

// ComplianceStage screens the generated document against the LGPD, ANPD,
// and sector requirement tables and assembles the weighted compliance
// report. A document is compliant when the overall score meets the
// configured threshold and no critical requirement is unmet.
func ComplianceStage(rt *Runtime) pipeline.Stage {
	return pipeline.Stage{
		Name:   pipeline.StageCompliance,
		Status: pipeline.StatusComplianceValidated,
		Run: func(ctx context.Context, s *pipeline.DocumentState) error {
			report := ValidateCompliance(s, rt.Config.ComplianceThreshold)

			s.Validation = report
			s.ComplianceScore = report.OverallScore
			s.ComplianceIssues = complianceIssues(report.Findings)
			s.ComplianceChecklist = complianceChecklist(report.Findings)

			s.AppendLog(pipeline.StageCompliance,
				fmt.Sprintf("lgpd %.2f, anpd %.2f, sector %.2f, overall %.2f",
					report.LGPDScore, report.ANPDScore, report.SectorScore, report.OverallScore))

			return nil
		},
	}
}

// ValidateCompliance evaluates the document text against all applicable
// requirement tables.
func ValidateCompliance(s *pipeline.DocumentState, threshold float64) *pipeline.ComplianceReport {
	content := s.GeneratedContent

	lgpdFindings, lgpdScore := pipeline.EvaluateRequirements(content, lgpdRequirements)
	anpdFindings, anpdScore := pipeline.EvaluateRequirements(content, anpdRequirements)
	sectorFindings, sectorScore := pipeline.EvaluateRequirements(
		content, sectorRequirements[strings.ToLower(s.IndustrySector)])

	findings := make([]pipeline.Finding, 0, len(lgpdFindings)+len(anpdFindings)+len(sectorFindings))
	findings = append(findings, lgpdFindings...)
	findings = append(findings, anpdFindings...)
	findings = append(findings, sectorFindings...)

	overall := pipeline.ComposeScore(lgpdScore, anpdScore, sectorScore)
	gaps := pipeline.CriticalGaps(findings)

	return &pipeline.ComplianceReport{
		LGPDScore:       lgpdScore,
		ANPDScore:       anpdScore,
		SectorScore:     sectorScore,
		OverallScore:    overall,
		Findings:        findings,
		CriticalGaps:    gaps,
		Recommendations: recommendations(findings),
		Compliant:       overall >= threshold && len(gaps) == 0,
	}
}

func complianceIssues(findings []pipeline.Finding) []string {
	issues := []string{}
	for _, f := range findings {
		if f.Met() {
			continue
		}
		issues = append(issues, fmt.Sprintf("%s: %s", f.RequirementID, f.Description))
	}
	return issues
}

func complianceChecklist(findings []pipeline.Finding) map[string]bool {
	checklist := make(map[string]bool, len(findings))
	for _, f := range findings {
		checklist[f.RequirementID] = f.Met()
	}
	return checklist
}

func recommendations(findings []pipeline.Finding) []string {
	recs := []string{}
	for _, f := range findings {
		if f.Met() {
			continue
		}
		switch f.Score {
		case 0.5:
			recs = append(recs, fmt.Sprintf("Reforçar a cobertura de: %s", f.Description))
		default:
			recs = append(recs, fmt.Sprintf("Incluir seção tratando de: %s", f.Description))
		}
	}
	return recs
}
