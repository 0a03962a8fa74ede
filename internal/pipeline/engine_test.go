package pipeline_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/privacypoint/privacypoint/internal/pipeline"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// stubRegistry builds a full workflow registry with no-op analysis stages
// and configurable quality and compliance outcomes. calls tracks per-stage
// invocation counts.
func stubRegistry(cfg pipeline.Config, quality, compliance float64, calls map[string]int) []pipeline.Stage {
	var mu sync.Mutex
	record := func(name string) {
		mu.Lock()
		calls[name]++
		mu.Unlock()
	}

	passthrough := func(name string, status pipeline.Status) pipeline.Stage {
		return pipeline.Stage{
			Name:   name,
			Status: status,
			Run: func(ctx context.Context, s *pipeline.DocumentState) error {
				record(name)
				return nil
			},
		}
	}

	return []pipeline.Stage{
		passthrough(pipeline.StageOCR, pipeline.StatusOCRComplete),
		passthrough(pipeline.StageClassify, pipeline.StatusClassified),
		passthrough(pipeline.StageDataMapping, pipeline.StatusDataMapped),
		passthrough(pipeline.StageResearch, pipeline.StatusResearched),
		passthrough(pipeline.StageLegalExpert, pipeline.StatusLegalReviewed),
		passthrough(pipeline.StageCyberSecurity, pipeline.StatusSecurityReviewed),
		passthrough(pipeline.StageStructure, pipeline.StatusStructured),
		passthrough(pipeline.StageGenerate, pipeline.StatusGenerated),
		{
			Name:   pipeline.StageQuality,
			Status: pipeline.StatusQualityChecked,
			Run: func(ctx context.Context, s *pipeline.DocumentState) error {
				record(pipeline.StageQuality)
				s.QualityScore = quality
				s.NeedsRevision = false
				if quality < cfg.QualityThreshold && s.RevisionAttempts < cfg.MaxRevisionAttempts {
					s.RevisionAttempts++
					s.NeedsRevision = true
				}
				return nil
			},
		},
		{
			Name:   pipeline.StageCompliance,
			Status: pipeline.StatusComplianceValidated,
			Run: func(ctx context.Context, s *pipeline.DocumentState) error {
				record(pipeline.StageCompliance)
				s.ComplianceScore = compliance
				return nil
			},
		},
		{
			Name: pipeline.StageHumanSupervision,
			Run: func(ctx context.Context, s *pipeline.DocumentState) error {
				record(pipeline.StageHumanSupervision)
				if err := s.Transition(pipeline.StatusHumanReview); err != nil {
					return err
				}

				var decision pipeline.Decision
				switch {
				case s.QualityScore >= cfg.ApprovalThreshold && s.ComplianceScore >= cfg.ApprovalThreshold:
					decision = pipeline.DecisionApproved
				case s.RevisionAttempts < cfg.MaxRevisionAttempts &&
					(s.QualityScore < cfg.QualityThreshold || s.ComplianceScore < cfg.QualityThreshold):
					decision = pipeline.DecisionNeedsRevision
				default:
					decision = pipeline.DecisionRejected
				}

				return pipeline.ApplyDecision(s, decision, "reviewer", "", cfg.MaxRevisionAttempts)
			},
		},
	}
}

func newTestState(t *testing.T) *pipeline.DocumentState {
	t.Helper()
	s, err := pipeline.NewState(pipeline.TypePrivacyPolicy, "Acme Ltda", "e-commerce", pipeline.NewStateOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return s
}

func TestEngineApprovesHighScores(t *testing.T) {
	cfg := pipeline.DefaultConfig()
	calls := map[string]int{}

	engine, err := pipeline.NewEngine(stubRegistry(cfg, 0.9, 0.9, calls), discardLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s := engine.Run(context.Background(), newTestState(t))

	if s.Status != pipeline.StatusApproved {
		t.Fatalf("expected approved, got %s", s.Status)
	}
	if s.RevisionAttempts != 0 {
		t.Errorf("expected no revision attempts, got %d", s.RevisionAttempts)
	}
	if !s.IsComplete || !s.IsApproved || !s.CanBeDelivered {
		t.Error("expected completion flags set")
	}
	if s.ProcessingTime <= 0 {
		t.Error("expected recorded processing time")
	}

	for _, name := range engine.Stages() {
		if calls[name] != 1 {
			t.Errorf("stage %s ran %d times, want 1", name, calls[name])
		}
	}
}

func TestEngineRejectsAfterRevisionLimit(t *testing.T) {
	cfg := pipeline.DefaultConfig()
	calls := map[string]int{}

	engine, err := pipeline.NewEngine(stubRegistry(cfg, 0.6, 0.9, calls), discardLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s := engine.Run(context.Background(), newTestState(t))

	if s.Status != pipeline.StatusRejected {
		t.Fatalf("expected rejected, got %s", s.Status)
	}
	if s.RevisionAttempts != cfg.MaxRevisionAttempts {
		t.Errorf("expected %d revision attempts, got %d", cfg.MaxRevisionAttempts, s.RevisionAttempts)
	}
	if calls[pipeline.StageQuality] != 2 {
		t.Errorf("quality stage ran %d times, want 2", calls[pipeline.StageQuality])
	}
	if calls[pipeline.StageOCR] != 1 {
		t.Errorf("revision loop re-ran upstream stages: ocr ran %d times", calls[pipeline.StageOCR])
	}
	if s.IsApproved || s.CanBeDelivered {
		t.Error("rejected document must not be deliverable")
	}
}

func TestEngineRevisesOnceThenApproves(t *testing.T) {
	cfg := pipeline.DefaultConfig()
	calls := map[string]int{}

	// Compliance below the revision floor on the first evaluation only.
	compliance := 0.5
	registry := stubRegistry(cfg, 0.9, 0, calls)
	for i := range registry {
		if registry[i].Name == pipeline.StageCompliance {
			registry[i].Run = func(ctx context.Context, s *pipeline.DocumentState) error {
				calls[pipeline.StageCompliance]++
				s.ComplianceScore = compliance
				compliance = 0.95
				return nil
			}
		}
	}

	engine, err := pipeline.NewEngine(registry, discardLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s := engine.Run(context.Background(), newTestState(t))

	if s.Status != pipeline.StatusApproved {
		t.Fatalf("expected approved after revision, got %s", s.Status)
	}
	if s.RevisionAttempts != 1 {
		t.Errorf("expected 1 revision attempt, got %d", s.RevisionAttempts)
	}
	if calls[pipeline.StageGenerate] != 2 {
		t.Errorf("generate stage ran %d times, want 2", calls[pipeline.StageGenerate])
	}
}

func TestEngineHaltsOnStageFailure(t *testing.T) {
	cfg := pipeline.DefaultConfig()
	calls := map[string]int{}
	registry := stubRegistry(cfg, 0.9, 0.9, calls)

	for i := range registry {
		if registry[i].Name == pipeline.StageResearch {
			registry[i].Run = func(ctx context.Context, s *pipeline.DocumentState) error {
				return fmt.Errorf("%w: model returned prose instead of JSON", pipeline.ErrContent)
			}
		}
	}

	engine, err := pipeline.NewEngine(registry, discardLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s := engine.Run(context.Background(), newTestState(t))

	if s.Status != pipeline.StatusError {
		t.Fatalf("expected error status, got %s", s.Status)
	}
	if len(s.Errors) != 1 {
		t.Fatalf("expected 1 stage error, got %d", len(s.Errors))
	}
	if s.Errors[0].Stage != pipeline.StageResearch {
		t.Errorf("expected failure recorded for research, got %s", s.Errors[0].Stage)
	}
	if s.Errors[0].Category != pipeline.CategoryContent {
		t.Errorf("expected content category, got %s", s.Errors[0].Category)
	}
	if calls[pipeline.StageLegalExpert] != 0 {
		t.Error("stages after the failure must not run")
	}
}

func TestEngineResumesFromExternalRevision(t *testing.T) {
	cfg := pipeline.DefaultConfig()
	calls := map[string]int{}

	engine, err := pipeline.NewEngine(stubRegistry(cfg, 0.9, 0.9, calls), discardLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s := newTestState(t)
	s.Status = pipeline.StatusHumanReview
	s.ReviewDecision = pipeline.DecisionNeedsRevision
	s.RevisionAttempts = 1

	s = engine.Run(context.Background(), s)

	if s.Status != pipeline.StatusApproved {
		t.Fatalf("expected approved after resume, got %s", s.Status)
	}
	if calls[pipeline.StageOCR] != 0 {
		t.Error("resume must not re-run analysis stages")
	}
	if calls[pipeline.StageGenerate] != 1 {
		t.Errorf("generate stage ran %d times, want 1", calls[pipeline.StageGenerate])
	}
}

func TestEngineSkipsTerminalState(t *testing.T) {
	cfg := pipeline.DefaultConfig()
	calls := map[string]int{}

	engine, err := pipeline.NewEngine(stubRegistry(cfg, 0.9, 0.9, calls), discardLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s := newTestState(t)
	s.Status = pipeline.StatusApproved

	s = engine.Run(context.Background(), s)

	if s.Status != pipeline.StatusApproved {
		t.Errorf("terminal state mutated: %s", s.Status)
	}
	if calls[pipeline.StageOCR] != 0 {
		t.Error("terminal state must not run stages")
	}
}

func TestEngineRecordsCancellation(t *testing.T) {
	cfg := pipeline.DefaultConfig()
	calls := map[string]int{}

	engine, err := pipeline.NewEngine(stubRegistry(cfg, 0.9, 0.9, calls), discardLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := engine.Run(ctx, newTestState(t))

	if s.Status != pipeline.StatusError {
		t.Fatalf("expected error status, got %s", s.Status)
	}
	if !errors.Is(ctx.Err(), context.Canceled) {
		t.Fatal("test context should be canceled")
	}
	if calls[pipeline.StageOCR] != 0 {
		t.Error("no stage should run under a canceled context")
	}
}

func TestEngineRequiresGenerateStage(t *testing.T) {
	stages := []pipeline.Stage{
		{Name: pipeline.StageOCR, Status: pipeline.StatusOCRComplete, Run: func(ctx context.Context, s *pipeline.DocumentState) error { return nil }},
	}

	if _, err := pipeline.NewEngine(stages, discardLogger()); !errors.Is(err, pipeline.ErrNoGenerateStage) {
		t.Errorf("expected ErrNoGenerateStage, got %v", err)
	}
}

func TestEngineObserver(t *testing.T) {
	cfg := pipeline.DefaultConfig()
	calls := map[string]int{}
	obs := &recordingObserver{}

	engine, err := pipeline.NewEngine(
		stubRegistry(cfg, 0.9, 0.9, calls),
		discardLogger(),
		pipeline.WithObserver(obs),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	engine.Run(context.Background(), newTestState(t))

	if obs.stages != 11 {
		t.Errorf("expected 11 stage notifications, got %d", obs.stages)
	}
	if obs.runs != 1 {
		t.Errorf("expected 1 run notification, got %d", obs.runs)
	}
	if obs.finalStatus != pipeline.StatusApproved {
		t.Errorf("expected approved in run notification, got %s", obs.finalStatus)
	}
}

type recordingObserver struct {
	stages      int
	runs        int
	finalStatus pipeline.Status
}

func (o *recordingObserver) StageCompleted(stage string, status pipeline.Status, elapsed time.Duration) {
	o.stages++
}

func (o *recordingObserver) RunCompleted(s *pipeline.DocumentState, elapsed time.Duration) {
	o.runs++
	o.finalStatus = s.Status
}
