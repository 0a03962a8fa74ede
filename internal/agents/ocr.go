package agents

import (
	"context"

	"github.com/privacypoint/privacypoint/internal/ocr"
	"github.com/privacypoint/privacypoint/internal/pipeline"
)

// OCRStage extracts text from the uploaded source file, when one exists,
// and scans it for personal data entities. Extraction failures are
// contained within the stage: the workflow continues without source text
// rather than aborting a generation that can proceed from the request
// profile alone.
func OCRStage(rt *Runtime) pipeline.Stage {
	return pipeline.Stage{
		Name:   pipeline.StageOCR,
		Status: pipeline.StatusOCRComplete,
		Run: func(ctx context.Context, s *pipeline.DocumentState) error {
			if len(s.UploadedFile) == 0 {
				rt.Logger.Info("no source file provided, skipping extraction", "document", s.ID)
				return nil
			}

			res, err := rt.OCR.Extract(ctx, s.UploadedFile, s.FileName)
			if err != nil {
				rt.Logger.Warn(
					"extraction failed, continuing without source text",
					"document", s.ID,
					"file", s.FileName,
					"error", err,
				)
				s.OCRText = ""
				s.OCRConfidence = 0
				return nil
			}

			s.OCRText = res.Text
			s.OCRConfidence = res.Confidence
			s.OCREngine = res.Engine

			entities := ocr.ExtractEntities(res.Text)
			s.ExtractedEntities = pipeline.ExtractedEntities{
				Identifiers:    entities.Identifiers,
				Emails:         entities.Emails,
				Phones:         entities.Phones,
				Dates:          entities.Dates,
				MonetaryValues: entities.MonetaryValues,
			}

			return nil
		},
	}
}
