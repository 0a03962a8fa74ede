package pipeline

import "fmt"

// Status tracks a document's position in the generation workflow.
// Statuses advance strictly forward along the stage chain, with a single
// loopback edge from human review to the structured status for revision
// passes. Terminal statuses absorb all further transitions.
type Status string

const (
	StatusPending             Status = "pending"
	StatusOCRComplete         Status = "ocr_complete"
	StatusClassified          Status = "classified"
	StatusDataMapped          Status = "data_mapped"
	StatusResearched          Status = "researched"
	StatusLegalReviewed       Status = "legal_reviewed"
	StatusSecurityReviewed    Status = "security_reviewed"
	StatusStructured          Status = "structured"
	StatusGenerated           Status = "generated"
	StatusQualityChecked      Status = "quality_checked"
	StatusComplianceValidated Status = "compliance_validated"
	StatusHumanReview         Status = "human_review"
	StatusApproved            Status = "approved"
	StatusRejected            Status = "rejected"
	StatusError               Status = "error"
)

// transitions defines the permitted status edges. Any non-terminal status
// may additionally transition to StatusError.
var transitions = map[Status][]Status{
	StatusPending:             {StatusOCRComplete},
	StatusOCRComplete:         {StatusClassified},
	StatusClassified:          {StatusDataMapped},
	StatusDataMapped:          {StatusResearched},
	StatusResearched:          {StatusLegalReviewed},
	StatusLegalReviewed:       {StatusSecurityReviewed},
	StatusSecurityReviewed:    {StatusStructured},
	StatusStructured:          {StatusGenerated},
	StatusGenerated:           {StatusQualityChecked},
	StatusQualityChecked:      {StatusComplianceValidated},
	StatusComplianceValidated: {StatusHumanReview},
	StatusHumanReview:         {StatusApproved, StatusRejected, StatusStructured},
	StatusApproved:            {},
	StatusRejected:            {},
	StatusError:               {},
}

var terminal = map[Status]bool{
	StatusApproved: true,
	StatusRejected: true,
	StatusError:    true,
}

// IsTerminal reports whether the status admits no further transitions.
func (s Status) IsTerminal() bool {
	return terminal[s]
}

// IsValid reports whether the status is a known workflow status.
func (s Status) IsValid() bool {
	_, ok := transitions[s]
	return ok
}

// CanTransition reports whether moving from s to next is a permitted edge.
func (s Status) CanTransition(next Status) bool {
	if s.IsTerminal() {
		return false
	}
	if next == StatusError {
		return true
	}
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s Status) String() string {
	return string(s)
}

// ParseStatus validates and converts a string to a Status.
func ParseStatus(v string) (Status, error) {
	s := Status(v)
	if !s.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, v)
	}
	return s, nil
}
