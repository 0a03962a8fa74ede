package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Observer receives workflow progress notifications. Implementations must
// tolerate being called from the engine goroutine.
type Observer interface {
	StageCompleted(stage string, status Status, elapsed time.Duration)
	RunCompleted(s *DocumentState, elapsed time.Duration)
}

// Engine drives a DocumentState through the stage registry. The walk is an
// explicit transition table: stages run in registry order, the run halts as
// soon as a stage records a failure, and a needs-revision outcome of the
// final stage loops execution back to the generate stage. Run leaves the
// state either in a terminal status or parked in human review awaiting an
// external decision.
type Engine struct {
	stages     []Stage
	reentry    int
	logger     *slog.Logger
	observer   Observer
	checkpoint func(context.Context, *DocumentState)
}

// NewEngine validates the registry and creates an engine. The registry must
// contain uniquely named stages including the generate stage, which anchors
// the revision loop.
func NewEngine(stages []Stage, logger *slog.Logger, opts ...EngineOption) (*Engine, error) {
	reentry := -1
	seen := make(map[string]bool, len(stages))

	for i, st := range stages {
		if seen[st.Name] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateStage, st.Name)
		}
		seen[st.Name] = true
		if st.Name == StageGenerate {
			reentry = i
		}
	}

	if reentry < 0 {
		return nil, ErrNoGenerateStage
	}

	e := &Engine{
		stages:  stages,
		reentry: reentry,
		logger:  logger.With("system", "engine"),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e, nil
}

// EngineOption configures optional engine behavior.
type EngineOption func(*Engine)

// WithObserver attaches a progress observer.
func WithObserver(obs Observer) EngineOption {
	return func(e *Engine) { e.observer = obs }
}

// WithCheckpoint attaches a callback invoked after every stage so callers
// can persist intermediate state. Checkpoint failures are the callback's
// concern; the engine does not inspect them.
func WithCheckpoint(fn func(context.Context, *DocumentState)) EngineOption {
	return func(e *Engine) { e.checkpoint = fn }
}

// Stages returns the registry stage names in execution order.
func (e *Engine) Stages() []string {
	names := make([]string, len(e.stages))
	for i, st := range e.stages {
		names[i] = st.Name
	}
	return names
}

// Run executes the workflow to its resting point and returns the same
// state. A pending state starts from the first stage; a
// state holding a needs-revision review decision resumes at the generate
// stage. Context cancellation is recorded as an infrastructure failure.
func (e *Engine) Run(ctx context.Context, s *DocumentState) *DocumentState {
	start := time.Now()

	i, err := e.startIndex(s)
	if err != nil {
		e.logger.Warn("run skipped", "document", s.ID, "status", s.Status, "error", err)
		return s
	}

	for i < len(e.stages) {
		if err := ctx.Err(); err != nil {
			s.RecordFailure(e.stages[i].Name, fmt.Errorf("run canceled: %w", err))
			break
		}

		st := e.stages[i]
		stageStart := time.Now()
		st.execute(ctx, s, e.logger)

		if e.observer != nil {
			e.observer.StageCompleted(st.Name, s.Status, time.Since(stageStart))
		}
		if e.checkpoint != nil {
			e.checkpoint(ctx, s)
		}

		if s.Status == StatusError {
			break
		}

		i++
		if i == len(e.stages) && s.ReviewDecision == DecisionNeedsRevision {
			if err := s.Reenter(); err != nil {
				s.RecordFailure(StageHumanSupervision, err)
				break
			}
			i = e.reentry
		}
	}

	e.finish(s, start)
	return s
}

func (e *Engine) startIndex(s *DocumentState) (int, error) {
	switch {
	case s.Status == StatusPending:
		return 0, nil
	case s.Status == StatusHumanReview && s.ReviewDecision == DecisionNeedsRevision:
		if err := s.Reenter(); err != nil {
			return 0, err
		}
		return e.reentry, nil
	default:
		return 0, fmt.Errorf("%w: cannot run from status %s", ErrInvalidTransition, s.Status)
	}
}

func (e *Engine) finish(s *DocumentState, start time.Time) {
	s.ProcessingTime += time.Since(start)
	s.Finalize()

	if e.observer != nil {
		e.observer.RunCompleted(s, time.Since(start))
	}

	e.logger.Info(
		"run complete",
		"document", s.ID,
		"status", s.Status,
		"quality", s.QualityScore,
		"compliance", s.ComplianceScore,
		"attempts", s.RevisionAttempts,
		"elapsed", time.Since(start),
	)
}
