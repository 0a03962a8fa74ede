package pipeline

// Config carries the workflow decision thresholds. All values are explicit;
// DefaultConfig returns the production defaults.
type Config struct {
	// QualityThreshold is the minimum quality score that avoids a
	// revision pass.
	QualityThreshold float64
	// ComplianceThreshold is the minimum overall compliance score for a
	// document to be considered compliant.
	ComplianceThreshold float64
	// ApprovalThreshold is the minimum both scores must reach for the
	// simulated reviewer to approve.
	ApprovalThreshold float64
	// MaxRevisionAttempts bounds the revision loop.
	MaxRevisionAttempts int
	// AutoReview enables the simulated reviewer. When disabled the
	// workflow parks in human review until an external decision arrives.
	AutoReview bool
}

// DefaultConfig returns the standard thresholds.
func DefaultConfig() Config {
	return Config{
		QualityThreshold:    0.8,
		ComplianceThreshold: 0.85,
		ApprovalThreshold:   0.85,
		MaxRevisionAttempts: 2,
		AutoReview:          true,
	}
}
