package pipeline

import (
	"regexp"
	"strings"
)

// Requirement is one regulatory obligation checked against generated content.
// Keywords are the textual evidence the check looks for; Risk weights the
// requirement's contribution to the category score.
type Requirement struct {
	ID          string    `json:"id"`
	Description string    `json:"description"`
	Keywords    []string  `json:"keywords"`
	Risk        RiskLevel `json:"risk"`
}

// Finding is the scored outcome of one requirement check.
type Finding struct {
	RequirementID string    `json:"requirement_id"`
	Description   string    `json:"description"`
	Risk          RiskLevel `json:"risk"`
	Score         float64   `json:"score"`
}

// Met reports whether the requirement was fully satisfied.
func (f Finding) Met() bool {
	return f.Score >= 1.0
}

// ComplianceReport aggregates weighted requirement scores across the three
// regulatory categories. Overall combines them 50/30/20.
type ComplianceReport struct {
	LGPDScore       float64   `json:"lgpd_score"`
	ANPDScore       float64   `json:"anpd_score"`
	SectorScore     float64   `json:"sector_score"`
	OverallScore    float64   `json:"overall_score"`
	Findings        []Finding `json:"findings"`
	CriticalGaps    []string  `json:"critical_gaps"`
	Recommendations []string  `json:"recommendations"`
	Compliant       bool      `json:"compliant"`
}

// pattern compiles the requirement's evidence expression: a case-insensitive
// word-bounded alternation of its keywords. Reports false when the
// requirement carries no usable keywords.
func (r Requirement) pattern() (*regexp.Regexp, bool) {
	terms := make([]string, 0, len(r.Keywords))
	for _, kw := range r.Keywords {
		if kw == "" {
			continue
		}
		terms = append(terms, regexp.QuoteMeta(kw))
	}
	if len(terms) == 0 {
		return nil, false
	}

	return regexp.MustCompile(`(?i)\b(?:` + strings.Join(terms, "|") + `)\b`), true
}

// ScoreRequirement checks one requirement against content by counting every
// occurrence of its evidence terms: two or more occurrences score 1.0,
// exactly one scores 0.5, none scores 0.0. A single term repeated twice
// satisfies the requirement just as two distinct terms do.
func ScoreRequirement(content string, r Requirement) float64 {
	re, ok := r.pattern()
	if !ok {
		return 0.0
	}

	switch occurrences := len(re.FindAllStringIndex(content, -1)); {
	case occurrences >= 2:
		return 1.0
	case occurrences == 1:
		return 0.5
	default:
		return 0.0
	}
}

// EvaluateRequirements scores every requirement against content and returns
// the findings alongside the risk-weighted category score. Empty requirement
// sets score a neutral 1.0 so absent sector tables never penalize a document.
func EvaluateRequirements(content string, reqs []Requirement) ([]Finding, float64) {
	if len(reqs) == 0 {
		return []Finding{}, 1.0
	}

	findings := make([]Finding, 0, len(reqs))
	weighted := 0.0
	totalWeight := 0

	for _, r := range reqs {
		score := ScoreRequirement(content, r)
		weight := r.Risk.Weight()

		weighted += score * float64(weight)
		totalWeight += weight

		findings = append(findings, Finding{
			RequirementID: r.ID,
			Description:   r.Description,
			Risk:          r.Risk,
			Score:         score,
		})
	}

	return findings, weighted / float64(totalWeight)
}

// ComposeScore combines the three category scores into the overall
// compliance score: LGPD 50%, ANPD 30%, sector 20%.
func ComposeScore(lgpd, anpd, sector float64) float64 {
	return 0.5*lgpd + 0.3*anpd + 0.2*sector
}

// CriticalGaps returns the descriptions of unmet critical requirements.
func CriticalGaps(findings []Finding) []string {
	gaps := make([]string, 0)
	for _, f := range findings {
		if f.Risk == RiskCritical && !f.Met() {
			gaps = append(gaps, f.Description)
		}
	}
	return gaps
}
