// Package documents implements the document generation domain for Privacy
// Point. It persists workflow state, exposes the HTTP surface for requesting
// and reviewing documents, and drives the generation engine in the
// background.
package documents

import (
	"time"

	"github.com/google/uuid"

	"github.com/privacypoint/privacypoint/internal/pipeline"
)

// Document is the summary row for a generation request. The full workflow
// state is stored alongside it and retrievable separately; list and search
// operations work against these columns only.
type Document struct {
	ID               uuid.UUID             `json:"id"`
	DocumentType     pipeline.DocumentType `json:"document_type"`
	CompanyName      string                `json:"company_name"`
	IndustrySector   string                `json:"industry_sector"`
	Status           pipeline.Status       `json:"status"`
	CurrentStep      string                `json:"current_step"`
	QualityScore     float64               `json:"quality_score"`
	ComplianceScore  float64               `json:"compliance_score"`
	RevisionAttempts int                   `json:"revision_attempts"`
	NeedsRevision    bool                  `json:"needs_revision"`
	FileName         *string               `json:"file_name"`
	StorageKey       *string               `json:"storage_key"`
	CreatedAt        time.Time             `json:"created_at"`
	UpdatedAt        time.Time             `json:"updated_at"`
}

// CreateCommand carries the data needed to register a generation request.
// Data optionally holds the raw bytes of a source file to run through OCR;
// the file is also uploaded to blob storage for audit.
type CreateCommand struct {
	DocumentType        string
	CompanyName         string
	ActivityDescription string
	IndustrySector      string
	Language            string
	Jurisdiction        string
	WebhookURL          string
	Data                []byte
	Filename            string
	ContentType         string
}

// ReviewCommand carries an external reviewer's decision for a document
// parked in human review.
type ReviewCommand struct {
	Decision string `json:"decision"`
	Reviewer string `json:"reviewer"`
	Feedback string `json:"feedback,omitempty"`
}

// StatusReport is the progress view of a generation request.
type StatusReport struct {
	ID               uuid.UUID             `json:"id"`
	Status           pipeline.Status       `json:"status"`
	CurrentStep      string                `json:"current_step"`
	QualityScore     float64               `json:"quality_score"`
	ComplianceScore  float64               `json:"compliance_score"`
	RevisionAttempts int                   `json:"revision_attempts"`
	NeedsRevision    bool                  `json:"needs_revision"`
	IsComplete       bool                  `json:"is_complete"`
	IsApproved       bool                  `json:"is_approved"`
	Errors           []pipeline.StageError `json:"errors"`
	UpdatedAt        time.Time             `json:"updated_at"`
}

// ContentResponse delivers the generated document text with its section
// breakdown.
type ContentResponse struct {
	ID         uuid.UUID         `json:"id"`
	Title      string            `json:"title"`
	Status     pipeline.Status   `json:"status"`
	Content    string            `json:"content"`
	Sections   map[string]string `json:"sections,omitempty"`
	Clauses    []string          `json:"clauses,omitempty"`
	ApprovedAt *time.Time        `json:"approved_at,omitempty"`
}

func report(s *pipeline.DocumentState) *StatusReport {
	errs := make([]pipeline.StageError, len(s.Errors))
	copy(errs, s.Errors)

	return &StatusReport{
		ID:               s.ID,
		Status:           s.Status,
		CurrentStep:      s.CurrentStep,
		QualityScore:     s.QualityScore,
		ComplianceScore:  s.ComplianceScore,
		RevisionAttempts: s.RevisionAttempts,
		NeedsRevision:    s.NeedsRevision,
		IsComplete:       s.IsComplete,
		IsApproved:       s.IsApproved,
		Errors:           errs,
		UpdatedAt:        s.UpdatedAt,
	}
}
