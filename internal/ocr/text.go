package ocr

import (
	"context"
	"fmt"
	"unicode/utf8"
)

// TextEngine handles plain-text source files. It is cheap and runs
// alongside the vision engine; binary inputs are rejected so the vision
// result wins for PDFs.
type TextEngine struct{}

// NewTextEngine creates a plain-text extraction engine.
func NewTextEngine() *TextEngine {
	return &TextEngine{}
}

func (e *TextEngine) Name() string {
	return "plaintext"
}

func (e *TextEngine) Extract(ctx context.Context, data []byte, filename string) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	if isPDF(data) || !utf8.Valid(data) {
		return Result{}, fmt.Errorf("%w: %s is not plain text", ErrUnsupportedInput, filename)
	}

	return Result{
		Text:       string(data),
		Confidence: 0.99,
	}, nil
}
