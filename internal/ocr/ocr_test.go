package ocr_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/privacypoint/privacypoint/internal/ocr"
)

type fakeEngine struct {
	name       string
	text       string
	confidence float64
	err        error
}

func (f *fakeEngine) Name() string { return f.name }

func (f *fakeEngine) Extract(ctx context.Context, data []byte, filename string) (ocr.Result, error) {
	if f.err != nil {
		return ocr.Result{}, f.err
	}
	return ocr.Result{Text: f.text, Confidence: f.confidence}, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSystemSelectsHighestConfidence(t *testing.T) {
	sys, err := ocr.New([]ocr.Engine{
		&fakeEngine{name: "low", text: "texto ruim", confidence: 0.4},
		&fakeEngine{name: "high", text: "texto bom", confidence: 0.92},
		&fakeEngine{name: "mid", text: "texto razoável", confidence: 0.7},
	}, discardLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	res, err := sys.Extract(context.Background(), []byte("input"), "doc.pdf")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.Engine != "high" {
		t.Errorf("expected high-confidence engine, got %s", res.Engine)
	}
	if res.Text != "texto bom" {
		t.Errorf("unexpected text: %q", res.Text)
	}
}

func TestSystemSkipsFailedEngines(t *testing.T) {
	sys, err := ocr.New([]ocr.Engine{
		&fakeEngine{name: "broken", err: errors.New("model unavailable")},
		&fakeEngine{name: "working", text: "conteúdo", confidence: 0.6},
	}, discardLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	res, err := sys.Extract(context.Background(), []byte("input"), "doc.pdf")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.Engine != "working" {
		t.Errorf("expected surviving engine, got %s", res.Engine)
	}
}

func TestSystemFailsWhenAllEnginesFail(t *testing.T) {
	sys, err := ocr.New([]ocr.Engine{
		&fakeEngine{name: "a", err: errors.New("down")},
		&fakeEngine{name: "b", err: errors.New("also down")},
	}, discardLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := sys.Extract(context.Background(), []byte("input"), "doc.pdf"); !errors.Is(err, ocr.ErrAllEnginesFailed) {
		t.Errorf("expected ErrAllEnginesFailed, got %v", err)
	}
}

func TestSystemRejectsEmptyInput(t *testing.T) {
	sys, err := ocr.New([]ocr.Engine{
		&fakeEngine{name: "a", text: "x", confidence: 1},
	}, discardLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := sys.Extract(context.Background(), nil, "doc.pdf"); !errors.Is(err, ocr.ErrEmptyInput) {
		t.Errorf("expected ErrEmptyInput, got %v", err)
	}
}

func TestNewRequiresEngines(t *testing.T) {
	if _, err := ocr.New(nil, discardLogger()); !errors.Is(err, ocr.ErrNoEngines) {
		t.Errorf("expected ErrNoEngines, got %v", err)
	}
}

func TestTextEngine(t *testing.T) {
	engine := ocr.NewTextEngine()

	t.Run("accepts plain text", func(t *testing.T) {
		res, err := engine.Extract(context.Background(), []byte("política de privacidade"), "policy.txt")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Text != "política de privacidade" {
			t.Errorf("unexpected text: %q", res.Text)
		}
	})

	t.Run("rejects pdf bytes", func(t *testing.T) {
		if _, err := engine.Extract(context.Background(), []byte("%PDF-1.7 ..."), "doc.pdf"); !errors.Is(err, ocr.ErrUnsupportedInput) {
			t.Errorf("expected ErrUnsupportedInput, got %v", err)
		}
	})
}

func TestExtractEntities(t *testing.T) {
	text := `Contrato entre Acme Ltda, CNPJ 12.345.678/0001-90, e o titular
CPF 123.456.789-01, contato dpo@acme.com.br ou (11) 98765-4321,
assinado em 15/03/2024 pelo valor de R$ 1.500,00.
Reenvio para dpo@acme.com.br.`

	entities := ocr.ExtractEntities(text)

	if len(entities.Identifiers) != 2 {
		t.Errorf("expected CPF and CNPJ, got %v", entities.Identifiers)
	}
	if len(entities.Emails) != 1 {
		t.Errorf("expected deduplicated email, got %v", entities.Emails)
	}
	if len(entities.Phones) != 1 {
		t.Errorf("expected one phone, got %v", entities.Phones)
	}
	if len(entities.Dates) != 1 || entities.Dates[0] != "15/03/2024" {
		t.Errorf("expected signature date, got %v", entities.Dates)
	}
	if len(entities.MonetaryValues) != 1 {
		t.Errorf("expected one monetary value, got %v", entities.MonetaryValues)
	}
}
