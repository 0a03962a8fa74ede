package documents

import (
	"errors"
	"testing"

	"github.com/privacypoint/privacypoint/internal/pipeline"
)

func TestReportIndependentOfLaterMutation(t *testing.T) {
	state, err := pipeline.NewState(
		pipeline.TypePrivacyPolicy,
		"Acme Ltda",
		"e-commerce de varejo",
		pipeline.NewStateOptions{},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	snapshot := report(state)

	// A background run mutates the state after the snapshot is taken; the
	// snapshot must not see any of it.
	state.RecordFailure(pipeline.StageOCR, errors.New("engine offline"))

	if snapshot.Status != pipeline.StatusPending {
		t.Errorf("snapshot status = %s, want %s", snapshot.Status, pipeline.StatusPending)
	}
	if len(snapshot.Errors) != 0 {
		t.Errorf("snapshot errors = %d, want 0", len(snapshot.Errors))
	}
}

func TestRunnable(t *testing.T) {
	tests := []struct {
		name  string
		state pipeline.DocumentState
		want  bool
	}{
		{
			name:  "pending document",
			state: pipeline.DocumentState{Status: pipeline.StatusPending},
			want:  true,
		},
		{
			name: "reviewed needs revision",
			state: pipeline.DocumentState{
				Status:         pipeline.StatusHumanReview,
				ReviewDecision: pipeline.DecisionNeedsRevision,
			},
			want: true,
		},
		{
			name: "flagged but awaiting its reviewer",
			state: pipeline.DocumentState{
				Status:        pipeline.StatusHumanReview,
				NeedsRevision: true,
			},
			want: false,
		},
		{
			name: "reviewer overrode a passing quality check",
			state: pipeline.DocumentState{
				Status:         pipeline.StatusHumanReview,
				ReviewDecision: pipeline.DecisionNeedsRevision,
				NeedsRevision:  false,
			},
			want: true,
		},
		{
			name:  "approved document",
			state: pipeline.DocumentState{Status: pipeline.StatusApproved},
			want:  false,
		},
		{
			name:  "errored document",
			state: pipeline.DocumentState{Status: pipeline.StatusError},
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := runnable(&tt.state); got != tt.want {
				t.Errorf("runnable() = %v, want %v", got, tt.want)
			}
		})
	}
}
