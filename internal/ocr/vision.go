package ocr

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/JaimeStill/document-context/pkg/config"
	"github.com/JaimeStill/document-context/pkg/document"
	"github.com/JaimeStill/document-context/pkg/encoding"
	"github.com/JaimeStill/document-context/pkg/image"

	"github.com/JaimeStill/go-agents/pkg/agent"
	gaconfig "github.com/JaimeStill/go-agents/pkg/config"

	"golang.org/x/sync/errgroup"

	"github.com/privacypoint/privacypoint/internal/prompts"
	"github.com/privacypoint/privacypoint/pkg/formatting"
)

const sourcePDF = "source.pdf"

type pageText struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
}

// VisionEngine extracts text from PDF files by rendering each page to an
// image and sending it to a vision model. Page renders run concurrently
// under a bounded errgroup; page transcriptions run sequentially to keep
// output ordered.
type VisionEngine struct {
	agentConfig gaconfig.AgentConfig
}

// NewVisionEngine creates a vision-model OCR engine.
func NewVisionEngine(agentConfig gaconfig.AgentConfig) *VisionEngine {
	return &VisionEngine{agentConfig: agentConfig}
}

func (e *VisionEngine) Name() string {
	return "vision"
}

func (e *VisionEngine) Extract(ctx context.Context, data []byte, filename string) (Result, error) {
	if !isPDF(data) {
		return Result{}, fmt.Errorf("%w: %s is not a pdf", ErrUnsupportedInput, filename)
	}

	tempDir, err := os.MkdirTemp("", "privacypoint-ocr-*")
	if err != nil {
		return Result{}, fmt.Errorf("create temp directory: %w", err)
	}
	defer os.RemoveAll(tempDir)

	pages, err := renderPages(ctx, tempDir, data)
	if err != nil {
		return Result{}, err
	}

	a, err := agent.New(&e.agentConfig)
	if err != nil {
		return Result{}, fmt.Errorf("create agent: %w", err)
	}

	var texts []string
	total := 0.0

	for i, imgPath := range pages {
		page, err := transcribePage(ctx, a, imgPath)
		if err != nil {
			return Result{}, fmt.Errorf("page %d: %w", i+1, err)
		}

		texts = append(texts, page.Text)
		total += page.Confidence
	}

	if len(pages) == 0 {
		return Result{}, fmt.Errorf("%w: pdf has no pages", ErrUnsupportedInput)
	}

	return Result{
		Text:       strings.Join(texts, "\n\n"),
		Confidence: total / float64(len(pages)),
	}, nil
}

func transcribePage(ctx context.Context, a agent.Agent, imgPath string) (pageText, error) {
	data, err := os.ReadFile(imgPath)
	if err != nil {
		return pageText{}, fmt.Errorf("read image: %w", err)
	}

	dataURI, err := encoding.EncodeImageDataURI(data, document.PNG)
	if err != nil {
		return pageText{}, fmt.Errorf("encode image: %w", err)
	}

	resp, err := a.Vision(ctx, prompts.VisionOCR(), []string{dataURI})
	if err != nil {
		return pageText{}, fmt.Errorf("vision call: %w", err)
	}

	parsed, err := formatting.Parse[pageText](resp.Content())
	if err != nil {
		return pageText{}, fmt.Errorf("parse response: %w", err)
	}

	return parsed, nil
}

func renderPages(ctx context.Context, tempDir string, data []byte) ([]string, error) {
	pdfPath := filepath.Join(tempDir, sourcePDF)
	if err := os.WriteFile(pdfPath, data, 0600); err != nil {
		return nil, fmt.Errorf("write temp pdf: %w", err)
	}

	pdfDoc, err := document.OpenPDF(pdfPath)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer pdfDoc.Close()

	renderer, err := image.NewImageMagickRenderer(config.DefaultImageConfig())
	if err != nil {
		return nil, fmt.Errorf("create renderer: %w", err)
	}

	allPages, err := pdfDoc.ExtractAllPages()
	if err != nil {
		return nil, fmt.Errorf("extract pages: %w", err)
	}

	paths := make([]string, len(allPages))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(renderWorkerCount(len(allPages)))

	for i, page := range allPages {
		pageNum := i + 1
		imgPath := filepath.Join(tempDir, fmt.Sprintf("page-%d.png", pageNum))
		paths[i] = imgPath

		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}

			rendered, err := page.ToImage(renderer, nil)
			if err != nil {
				return fmt.Errorf("render page %d: %w", pageNum, err)
			}

			if err := os.WriteFile(imgPath, rendered, 0600); err != nil {
				return fmt.Errorf("write page %d image: %w", pageNum, err)
			}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return paths, nil
}

func renderWorkerCount(pageCount int) int {
	return max(min(runtime.NumCPU(), pageCount), 1)
}

func isPDF(data []byte) bool {
	return len(data) > 4 && string(data[:5]) == "%PDF-"
}
