package pipeline

import "fmt"

// Decision is the outcome of a human review, whether simulated by the
// supervision stage or submitted by an external reviewer.
type Decision string

const (
	DecisionApproved      Decision = "approved"
	DecisionNeedsRevision Decision = "needs_revision"
	DecisionRejected      Decision = "rejected"
)

// ParseDecision validates and converts a string to a Decision.
func ParseDecision(s string) (Decision, error) {
	d := Decision(s)
	switch d {
	case DecisionApproved, DecisionNeedsRevision, DecisionRejected:
		return d, nil
	default:
		return "", fmt.Errorf("unknown review decision: %q", s)
	}
}

// ApplyDecision resolves a review decision against the state. Approval and
// rejection move the state to its terminal status. A needs-revision decision
// increments the revision counter and holds the state in human review until
// the engine re-enters the generation loop; once the revision budget is
// exhausted the decision degrades to rejection.
//
// The state must be in human review.
func ApplyDecision(s *DocumentState, decision Decision, reviewer, feedback string, maxAttempts int) error {
	if s.Status != StatusHumanReview {
		return fmt.Errorf("%w: cannot review in status %s", ErrInvalidTransition, s.Status)
	}

	if decision == DecisionNeedsRevision && s.RevisionAttempts >= maxAttempts {
		decision = DecisionRejected
		feedback = appendFeedback(feedback, "revision limit reached")
	}

	s.Reviewer = reviewer
	s.ReviewFeedback = feedback
	s.ReviewDecision = decision

	switch decision {
	case DecisionApproved:
		if err := s.Transition(StatusApproved); err != nil {
			return err
		}
	case DecisionRejected:
		if err := s.Transition(StatusRejected); err != nil {
			return err
		}
	case DecisionNeedsRevision:
		if !s.NeedsRevision {
			s.RevisionAttempts++
		}
		s.AppendLog(StageHumanSupervision, "revision requested")
		return nil
	default:
		return fmt.Errorf("unknown review decision: %q", decision)
	}

	s.Finalize()
	s.AppendLog(StageHumanSupervision, "review resolved: "+string(decision))
	return nil
}

func appendFeedback(feedback, note string) string {
	if feedback == "" {
		return note
	}
	return feedback + "; " + note
}
