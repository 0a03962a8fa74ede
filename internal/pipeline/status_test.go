package pipeline_test

import (
	"testing"

	"github.com/privacypoint/privacypoint/internal/pipeline"
)

func TestStatusCanTransition(t *testing.T) {
	tests := []struct {
		name string
		from pipeline.Status
		to   pipeline.Status
		want bool
	}{
		{"pending to ocr complete", pipeline.StatusPending, pipeline.StatusOCRComplete, true},
		{"pending skips ahead", pipeline.StatusPending, pipeline.StatusClassified, false},
		{"chain advances forward", pipeline.StatusStructured, pipeline.StatusGenerated, true},
		{"chain cannot reverse", pipeline.StatusGenerated, pipeline.StatusStructured, false},
		{"human review approves", pipeline.StatusHumanReview, pipeline.StatusApproved, true},
		{"human review rejects", pipeline.StatusHumanReview, pipeline.StatusRejected, true},
		{"human review loops to structured", pipeline.StatusHumanReview, pipeline.StatusStructured, true},
		{"human review cannot skip to generated", pipeline.StatusHumanReview, pipeline.StatusGenerated, false},
		{"any active status may error", pipeline.StatusDataMapped, pipeline.StatusError, true},
		{"approved is absorbing", pipeline.StatusApproved, pipeline.StatusError, false},
		{"rejected is absorbing", pipeline.StatusRejected, pipeline.StatusPending, false},
		{"error is absorbing", pipeline.StatusError, pipeline.StatusOCRComplete, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.from.CanTransition(tt.to); got != tt.want {
				t.Errorf("CanTransition(%s -> %s) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestStatusIsTerminal(t *testing.T) {
	terminal := []pipeline.Status{
		pipeline.StatusApproved,
		pipeline.StatusRejected,
		pipeline.StatusError,
	}

	for _, s := range terminal {
		if !s.IsTerminal() {
			t.Errorf("expected %s to be terminal", s)
		}
	}

	active := []pipeline.Status{
		pipeline.StatusPending,
		pipeline.StatusGenerated,
		pipeline.StatusHumanReview,
	}

	for _, s := range active {
		if s.IsTerminal() {
			t.Errorf("expected %s to be active", s)
		}
	}
}

func TestParseStatus(t *testing.T) {
	if _, err := pipeline.ParseStatus("compliance_validated"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	if _, err := pipeline.ParseStatus("drafting"); err == nil {
		t.Error("expected error for unknown status")
	}
}

func TestParseDocumentType(t *testing.T) {
	for _, dt := range pipeline.DocumentTypes() {
		if _, err := pipeline.ParseDocumentType(string(dt)); err != nil {
			t.Errorf("ParseDocumentType(%s): unexpected error: %v", dt, err)
		}
	}

	if _, err := pipeline.ParseDocumentType("sales_brochure"); err == nil {
		t.Error("expected error for unsupported document type")
	}
}
