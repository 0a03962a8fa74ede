package prompts

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/privacypoint/privacypoint/internal/pipeline"
)

const ocrExcerptLimit = 6000

// VisionOCR returns the page transcription prompt. It takes no document
// context; each page is transcribed independently.
func VisionOCR() string {
	return compose(StageVisionOCR, "")
}

// Classify returns the classification prompt with the request profile and
// any extracted source text.
func Classify(s *pipeline.DocumentState) string {
	var b strings.Builder
	writeProfile(&b, s)

	if s.OCRText != "" {
		fmt.Fprintf(
			&b, "\nSource document text (ocr confidence %.2f):\n%s\n",
			s.OCRConfidence, excerpt(s.OCRText),
		)
	}

	return compose(StageClassify, b.String())
}

// Research returns the legal research prompt with the classification
// outcome and data mapping inventory.
func Research(s *pipeline.DocumentState) string {
	var b strings.Builder
	writeProfile(&b, s)

	fmt.Fprintf(&b, "\nClassified complexity: %s, urgency: %s\n", s.Complexity, s.Urgency)
	writeList(&b, "Required sections", s.RequiredSections)
	writeDataMap(&b, s.DataMap)

	return compose(StageResearch, b.String())
}

// LegalExpert returns the legal review prompt with the researched basis.
func LegalExpert(s *pipeline.DocumentState) string {
	var b strings.Builder
	writeProfile(&b, s)

	writeList(&b, "Applicable laws", s.ApplicableLaws)
	writeLegalBasis(&b, s.LegalBasis)
	writeList(&b, "Regulatory requirements", s.RegulatoryRequirements)
	writeList(&b, "Compliance gaps", s.ComplianceGaps)
	writeDataMap(&b, s.DataMap)

	return compose(StageLegalExpert, b.String())
}

// Structure returns the outline planning prompt with the full analysis.
func Structure(s *pipeline.DocumentState) string {
	var b strings.Builder
	writeProfile(&b, s)

	writeList(&b, "Required sections", s.RequiredSections)
	writeList(&b, "Mandatory clauses", s.LegalReview.MandatoryClauses)
	writeList(&b, "Required security measures", s.SecurityAssessment.RequiredMeasures)
	fmt.Fprintf(&b, "\nLegal risk level: %s\n", s.LegalReview.RiskLevel)

	return compose(StageStructure, b.String())
}

// Generate returns the drafting prompt with the planned structure and the
// complete analysis context. On revision passes it includes the prior
// quality issues and reviewer feedback so the draft can address them.
func Generate(s *pipeline.DocumentState) string {
	var b strings.Builder
	writeProfile(&b, s)

	if outline, err := json.MarshalIndent(s.Structure, "", "  "); err == nil {
		fmt.Fprintf(&b, "\nPlanned structure:\n%s\n", outline)
	}

	writeLegalBasis(&b, s.LegalBasis)
	writeList(&b, "Mandatory clauses", s.LegalReview.MandatoryClauses)
	writeList(&b, "Required security measures", s.SecurityAssessment.RequiredMeasures)
	writeDataMap(&b, s.DataMap)

	if s.RevisionAttempts > 0 {
		fmt.Fprintf(&b, "\nThis is revision pass %d. The previous draft scored %.2f on quality and %.2f on compliance.\n",
			s.RevisionAttempts, s.QualityScore, s.ComplianceScore)

		for _, issue := range s.QualityIssues {
			fmt.Fprintf(&b, "- [%s] %s", issue.Severity, issue.Description)
			if issue.Suggestion != "" {
				fmt.Fprintf(&b, " (suggestion: %s)", issue.Suggestion)
			}
			b.WriteString("\n")
		}

		writeList(&b, "Unresolved compliance issues", s.ComplianceIssues)

		if s.ReviewFeedback != "" {
			fmt.Fprintf(&b, "\nReviewer feedback: %s\n", s.ReviewFeedback)
		}
	}

	return compose(StageGenerate, b.String())
}

func compose(stage Stage, context string) string {
	var b strings.Builder

	b.WriteString(instructions[stage])
	b.WriteString("\n\n")

	if context != "" {
		b.WriteString(strings.TrimSpace(context))
		b.WriteString("\n\n")
	}

	b.WriteString(specs[stage])
	return b.String()
}

func writeProfile(b *strings.Builder, s *pipeline.DocumentState) {
	fmt.Fprintf(b, "Document type: %s\n", s.DocumentType)
	fmt.Fprintf(b, "Company: %s\n", s.CompanyName)
	fmt.Fprintf(b, "Processing activity: %s\n", s.ActivityDescription)
	fmt.Fprintf(b, "Industry sector: %s\n", s.IndustrySector)
	fmt.Fprintf(b, "Language: %s, jurisdiction: %s\n", s.Language, s.Jurisdiction)
}

func writeList(b *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}

	fmt.Fprintf(b, "\n%s:\n", title)
	for _, item := range items {
		fmt.Fprintf(b, "- %s\n", item)
	}
}

func writeLegalBasis(b *strings.Builder, basis []pipeline.LegalReference) {
	if len(basis) == 0 {
		return
	}

	b.WriteString("\nLegal basis:\n")
	for _, ref := range basis {
		fmt.Fprintf(b, "- %s: %s\n", ref.Article, ref.Description)
	}
}

func writeDataMap(b *strings.Builder, dm pipeline.DataMap) {
	if len(dm.Categories) == 0 && len(dm.SensitiveData) == 0 {
		return
	}

	writeList(b, "Personal data categories", dm.Categories)
	writeList(b, "Sensitive data", dm.SensitiveData)
	writeList(b, "Processing purposes", dm.Purposes)
	writeList(b, "Data recipients", dm.Recipients)

	if dm.Retention != "" {
		fmt.Fprintf(b, "Retention: %s\n", dm.Retention)
	}
	if dm.InternationalTransfer {
		b.WriteString("The activity involves international data transfer.\n")
	}
}

func excerpt(text string) string {
	if len(text) <= ocrExcerptLimit {
		return text
	}
	return text[:ocrExcerptLimit] + "\n[...]"
}
