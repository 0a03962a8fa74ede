// Package ocr extracts text from uploaded source documents. Multiple
// engines run concurrently against the same input and the highest
// confidence result wins; when every engine fails the system fails closed
// with an empty result rather than aborting the workflow.
package ocr

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Result is the outcome of a text extraction.
type Result struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
	Engine     string  `json:"engine"`
}

// Engine extracts text from raw file bytes.
type Engine interface {
	Name() string
	Extract(ctx context.Context, data []byte, filename string) (Result, error)
}

// System runs the configured engines and selects the best result.
type System interface {
	Extract(ctx context.Context, data []byte, filename string) (Result, error)
}

type system struct {
	engines []Engine
	logger  *slog.Logger
}

// New creates an OCR system over the given engines.
func New(engines []Engine, logger *slog.Logger) (System, error) {
	if len(engines) == 0 {
		return nil, ErrNoEngines
	}
	return &system{
		engines: engines,
		logger:  logger.With("system", "ocr"),
	}, nil
}

// Extract fans the input out to every engine concurrently and returns the
// result with the highest confidence. Individual engine failures are logged
// and skipped; ErrAllEnginesFailed is returned only when no engine produced
// a result.
func (s *system) Extract(ctx context.Context, data []byte, filename string) (Result, error) {
	if len(data) == 0 {
		return Result{}, ErrEmptyInput
	}

	var mu sync.Mutex
	results := make([]Result, 0, len(s.engines))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(len(s.engines))

	for _, engine := range s.engines {
		g.Go(func() error {
			res, err := engine.Extract(gctx, data, filename)
			if err != nil {
				s.logger.Warn(
					"engine extraction failed",
					"engine", engine.Name(),
					"file", filename,
					"error", err,
				)
				return nil
			}

			res.Engine = engine.Name()
			mu.Lock()
			results = append(results, res)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Result{}, fmt.Errorf("extract: %w", err)
	}

	best, ok := selectBest(results)
	if !ok {
		return Result{}, fmt.Errorf("%w: %s", ErrAllEnginesFailed, filename)
	}

	s.logger.Info(
		"text extracted",
		"file", filename,
		"engine", best.Engine,
		"confidence", best.Confidence,
		"chars", len(best.Text),
	)

	return best, nil
}

func selectBest(results []Result) (Result, bool) {
	var best Result
	found := false

	for _, r := range results {
		if r.Text == "" {
			continue
		}
		if !found || r.Confidence > best.Confidence {
			best = r
			found = true
		}
	}

	return best, found
}

// Errors reported by the OCR system.
var (
	ErrNoEngines        = errors.New("no ocr engines configured")
	ErrEmptyInput       = errors.New("empty input data")
	ErrAllEnginesFailed = errors.New("all ocr engines failed")
	ErrUnsupportedInput = errors.New("unsupported input format")
)
