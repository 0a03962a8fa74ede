package pipeline_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/privacypoint/privacypoint/internal/pipeline"
)

func TestNewState(t *testing.T) {
	tests := []struct {
		name     string
		docType  pipeline.DocumentType
		company  string
		activity string
		wantErr  error
	}{
		{
			name:     "valid request",
			docType:  pipeline.TypePrivacyPolicy,
			company:  "Acme Ltda",
			activity: "e-commerce de eletrônicos",
		},
		{
			name:     "unknown document type",
			docType:  pipeline.DocumentType("newsletter"),
			company:  "Acme Ltda",
			activity: "e-commerce",
			wantErr:  pipeline.ErrUnknownDocumentType,
		},
		{
			name:     "missing company",
			docType:  pipeline.TypeConsentForm,
			activity: "telemedicina",
			wantErr:  pipeline.ErrMissingCompany,
		},
		{
			name:    "missing activity",
			docType: pipeline.TypeConsentForm,
			company: "Clínica Vida",
			wantErr: pipeline.ErrMissingActivity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := pipeline.NewState(tt.docType, tt.company, tt.activity, pipeline.NewStateOptions{})

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if s.Status != pipeline.StatusPending {
				t.Errorf("expected pending status, got %s", s.Status)
			}
			if s.IndustrySector != "geral" {
				t.Errorf("expected default sector geral, got %s", s.IndustrySector)
			}
			if s.Language != "pt-BR" || s.Jurisdiction != "BR" {
				t.Errorf("expected pt-BR/BR defaults, got %s/%s", s.Language, s.Jurisdiction)
			}
			if s.ID.String() == "" {
				t.Error("expected generated document ID")
			}
		})
	}
}

func TestStateRecordFailure(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		wantCategory string
	}{
		{
			name:         "content failure",
			err:          fmt.Errorf("%w: unparseable model output", pipeline.ErrContent),
			wantCategory: pipeline.CategoryContent,
		},
		{
			name:         "infrastructure failure",
			err:          errors.New("connection refused"),
			wantCategory: pipeline.CategoryInfrastructure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := pipeline.NewState(pipeline.TypePrivacyPolicy, "Acme", "varejo", pipeline.NewStateOptions{})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			s.RecordFailure(pipeline.StageResearch, tt.err)

			if s.Status != pipeline.StatusError {
				t.Errorf("expected error status, got %s", s.Status)
			}
			if len(s.Errors) != 1 {
				t.Fatalf("expected 1 stage error, got %d", len(s.Errors))
			}
			if s.Errors[0].Category != tt.wantCategory {
				t.Errorf("expected category %s, got %s", tt.wantCategory, s.Errors[0].Category)
			}
			if s.Errors[0].Stage != pipeline.StageResearch {
				t.Errorf("expected stage %s, got %s", pipeline.StageResearch, s.Errors[0].Stage)
			}
			if len(s.ProcessingLog) != 1 {
				t.Errorf("expected 1 log entry, got %d", len(s.ProcessingLog))
			}
		})
	}
}

func TestStateTransitionRejectsIllegalEdge(t *testing.T) {
	s, err := pipeline.NewState(pipeline.TypeImpactAssessment, "Acme", "logística", pipeline.NewStateOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := s.Transition(pipeline.StatusGenerated); !errors.Is(err, pipeline.ErrInvalidTransition) {
		t.Errorf("expected ErrInvalidTransition, got %v", err)
	}
	if s.Status != pipeline.StatusPending {
		t.Errorf("status mutated on rejected transition: %s", s.Status)
	}
}

func TestApplyDecision(t *testing.T) {
	makeReviewable := func(t *testing.T) *pipeline.DocumentState {
		t.Helper()
		s, err := pipeline.NewState(pipeline.TypePrivacyPolicy, "Acme", "varejo", pipeline.NewStateOptions{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		s.Status = pipeline.StatusHumanReview
		return s
	}

	t.Run("approval finalizes the document", func(t *testing.T) {
		s := makeReviewable(t)

		if err := pipeline.ApplyDecision(s, pipeline.DecisionApproved, "dpo@acme.com", "", 2); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if s.Status != pipeline.StatusApproved {
			t.Errorf("expected approved, got %s", s.Status)
		}
		if !s.IsApproved || !s.CanBeDelivered || !s.IsComplete {
			t.Error("expected delivery flags set on approval")
		}
		if s.ApprovedAt == nil {
			t.Error("expected approval timestamp")
		}
	})

	t.Run("needs revision increments attempts", func(t *testing.T) {
		s := makeReviewable(t)

		if err := pipeline.ApplyDecision(s, pipeline.DecisionNeedsRevision, "dpo@acme.com", "seção de retenção incompleta", 2); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if s.RevisionAttempts != 1 {
			t.Errorf("expected 1 revision attempt, got %d", s.RevisionAttempts)
		}
		if s.Status != pipeline.StatusHumanReview {
			t.Errorf("expected state held in human review, got %s", s.Status)
		}
	})

	t.Run("needs revision degrades to rejection at the limit", func(t *testing.T) {
		s := makeReviewable(t)
		s.RevisionAttempts = 2

		if err := pipeline.ApplyDecision(s, pipeline.DecisionNeedsRevision, "dpo@acme.com", "", 2); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if s.Status != pipeline.StatusRejected {
			t.Errorf("expected rejected, got %s", s.Status)
		}
		if s.RevisionAttempts != 2 {
			t.Errorf("attempts exceeded the limit: %d", s.RevisionAttempts)
		}
	})

	t.Run("review outside human review fails", func(t *testing.T) {
		s, err := pipeline.NewState(pipeline.TypePrivacyPolicy, "Acme", "varejo", pipeline.NewStateOptions{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if err := pipeline.ApplyDecision(s, pipeline.DecisionApproved, "dpo@acme.com", "", 2); !errors.Is(err, pipeline.ErrInvalidTransition) {
			t.Errorf("expected ErrInvalidTransition, got %v", err)
		}
	})
}
