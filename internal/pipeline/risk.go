package pipeline

// RiskLevel grades the severity of a requirement, finding, or review issue.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// Weight returns the scoring weight for the risk level. Unknown levels
// weigh the same as low.
func (r RiskLevel) Weight() int {
	switch r {
	case RiskMedium:
		return 2
	case RiskHigh:
		return 3
	case RiskCritical:
		return 4
	default:
		return 1
	}
}

// ParseRiskLevel converts a string to a RiskLevel, defaulting to medium
// for unrecognized values so model output never produces an unweighted level.
func ParseRiskLevel(s string) RiskLevel {
	switch RiskLevel(s) {
	case RiskLow, RiskMedium, RiskHigh, RiskCritical:
		return RiskLevel(s)
	default:
		return RiskMedium
	}
}
