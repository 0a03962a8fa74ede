// Package pipeline implements the document generation workflow core: a typed
// document state advanced through a fixed sequence of stages, with per-stage
// failure containment, a bounded revision loop, and weighted requirement
// scoring for quality and compliance validation.
package pipeline

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// LogEntry records one stage invocation in the processing log.
type LogEntry struct {
	Stage   string    `json:"stage"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

// StageError records a contained stage failure.
type StageError struct {
	Stage    string    `json:"stage"`
	Category string    `json:"category"`
	Message  string    `json:"message"`
	At       time.Time `json:"at"`
}

// ExtractedEntities holds personal data references found in source text.
type ExtractedEntities struct {
	Identifiers    []string `json:"identifiers"`
	Emails         []string `json:"emails"`
	Phones         []string `json:"phones"`
	Dates          []string `json:"dates"`
	MonetaryValues []string `json:"monetary_values"`
}

// LegalReference cites a statutory article supporting the document.
type LegalReference struct {
	Article     string `json:"article"`
	Description string `json:"description"`
}

// LegalReview holds the legal expert stage's assessment.
type LegalReview struct {
	RiskLevel        RiskLevel `json:"risk_level"`
	Notes            []string  `json:"notes"`
	MandatoryClauses []string  `json:"mandatory_clauses"`
}

// SecurityAssessment holds the security stage's evaluation of the
// processing activity.
type SecurityAssessment struct {
	RiskLevel        RiskLevel `json:"risk_level"`
	RequiredMeasures []string  `json:"required_measures"`
	Concerns         []string  `json:"concerns"`
}

// DataMap describes the personal data processing inventory for the activity.
type DataMap struct {
	Categories            []string `json:"categories"`
	SensitiveData         []string `json:"sensitive_data"`
	Purposes              []string `json:"purposes"`
	Recipients            []string `json:"recipients"`
	Retention             string   `json:"retention"`
	InternationalTransfer bool     `json:"international_transfer"`
}

// SectionSpec defines one planned section of the document.
type SectionSpec struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Required    bool   `json:"required"`
	Order       int    `json:"order"`
}

// DocumentStructure is the planned outline the generation stage fills in.
type DocumentStructure struct {
	Title    string        `json:"title"`
	Sections []SectionSpec `json:"sections"`
}

// QualityIssue describes one defect found during quality review.
type QualityIssue struct {
	Severity    RiskLevel `json:"severity"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Location    string    `json:"location,omitempty"`
	Suggestion  string    `json:"suggestion,omitempty"`
}

// DocumentState is the single aggregate the workflow advances. Every stage
// reads from and writes to this state; it is the only value that crosses
// stage boundaries.
type DocumentState struct {
	ID                  uuid.UUID    `json:"id"`
	DocumentType        DocumentType `json:"document_type"`
	CompanyName         string       `json:"company_name"`
	ActivityDescription string       `json:"activity_description"`
	IndustrySector      string       `json:"industry_sector"`
	Language            string       `json:"language"`
	Jurisdiction        string       `json:"jurisdiction"`

	Status        Status       `json:"status"`
	CurrentStep   string       `json:"current_step"`
	ProcessingLog []LogEntry   `json:"processing_log"`
	Errors        []StageError `json:"errors"`

	UploadedFile []byte `json:"-"`
	FileName     string `json:"file_name,omitempty"`
	FileKey      string `json:"file_key,omitempty"`

	OCRText              string            `json:"ocr_text,omitempty"`
	OCRConfidence        float64           `json:"ocr_confidence"`
	OCREngine            string            `json:"ocr_engine,omitempty"`
	ExtractedEntities    ExtractedEntities `json:"extracted_entities"`
	SourceClassification string            `json:"source_classification,omitempty"`

	RequiredSections []string `json:"required_sections"`
	Complexity       string   `json:"complexity,omitempty"`
	Urgency          string   `json:"urgency,omitempty"`
	EstimatedPages   int      `json:"estimated_pages"`

	DataMap DataMap `json:"data_map"`

	ApplicableLaws         []string         `json:"applicable_laws"`
	LegalBasis             []LegalReference `json:"legal_basis"`
	RegulatoryRequirements []string         `json:"regulatory_requirements"`
	ComplianceGaps         []string         `json:"compliance_gaps"`

	LegalReview        LegalReview        `json:"legal_review"`
	SecurityAssessment SecurityAssessment `json:"security_assessment"`

	Structure      DocumentStructure `json:"structure"`
	ContentOutline string            `json:"content_outline,omitempty"`

	GeneratedContent string            `json:"generated_content,omitempty"`
	ContentSections  map[string]string `json:"content_sections,omitempty"`
	LegalClauses     []string          `json:"legal_clauses,omitempty"`

	QualityScore     float64         `json:"quality_score"`
	QualityIssues    []QualityIssue  `json:"quality_issues,omitempty"`
	QualityChecklist map[string]bool `json:"quality_checklist,omitempty"`
	NeedsRevision    bool            `json:"needs_revision"`

	ComplianceScore     float64           `json:"compliance_score"`
	ComplianceIssues    []string          `json:"compliance_issues,omitempty"`
	ComplianceChecklist map[string]bool   `json:"compliance_checklist,omitempty"`
	Validation          *ComplianceReport `json:"validation,omitempty"`

	ReviewDecision Decision   `json:"review_decision,omitempty"`
	Reviewer       string     `json:"reviewer,omitempty"`
	ReviewFeedback string     `json:"review_feedback,omitempty"`
	ApprovedAt     *time.Time `json:"approved_at,omitempty"`

	RevisionAttempts int           `json:"revision_attempts"`
	ProcessingTime   time.Duration `json:"processing_time"`
	WebhookURL       string        `json:"webhook_url,omitempty"`

	IsComplete     bool `json:"is_complete"`
	IsApproved     bool `json:"is_approved"`
	CanBeDelivered bool `json:"can_be_delivered"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewStateOptions carries optional parameters for NewState.
type NewStateOptions struct {
	IndustrySector string
	Language       string
	Jurisdiction   string
	UploadedFile   []byte
	FileName       string
	WebhookURL     string
}

// NewState creates a validated initial DocumentState in the pending status.
func NewState(docType DocumentType, companyName, activityDescription string, opts NewStateOptions) (*DocumentState, error) {
	if !docType.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDocumentType, docType)
	}
	if companyName == "" {
		return nil, ErrMissingCompany
	}
	if activityDescription == "" {
		return nil, ErrMissingActivity
	}

	if opts.IndustrySector == "" {
		opts.IndustrySector = "geral"
	}
	if opts.Language == "" {
		opts.Language = "pt-BR"
	}
	if opts.Jurisdiction == "" {
		opts.Jurisdiction = "BR"
	}

	now := time.Now().UTC()

	return &DocumentState{
		ID:                  uuid.New(),
		DocumentType:        docType,
		CompanyName:         companyName,
		ActivityDescription: activityDescription,
		IndustrySector:      opts.IndustrySector,
		Language:            opts.Language,
		Jurisdiction:        opts.Jurisdiction,
		Status:              StatusPending,
		ProcessingLog:       []LogEntry{},
		Errors:              []StageError{},
		UploadedFile:        opts.UploadedFile,
		FileName:            opts.FileName,
		WebhookURL:          opts.WebhookURL,
		RequiredSections:    []string{},
		ApplicableLaws:      []string{},
		CreatedAt:           now,
		UpdatedAt:           now,
	}, nil
}

// AppendLog records a processing log entry and touches the update timestamp.
func (s *DocumentState) AppendLog(stage, message string) {
	now := time.Now().UTC()
	s.ProcessingLog = append(s.ProcessingLog, LogEntry{
		Stage:   stage,
		Message: message,
		At:      now,
	})
	s.UpdatedAt = now
}

// Transition moves the state to the next status if the edge is permitted.
func (s *DocumentState) Transition(next Status) error {
	if !s.Status.CanTransition(next) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s.Status, next)
	}
	s.Status = next
	s.UpdatedAt = time.Now().UTC()
	return nil
}

// RecordFailure contains a stage error in the state: it appends a categorized
// StageError, logs the failure, and moves the status to error. The workflow
// halts at the next engine check; no error escapes the stage boundary.
func (s *DocumentState) RecordFailure(stage string, err error) {
	category := CategoryInfrastructure
	if errors.Is(err, ErrContent) {
		category = CategoryContent
	}

	now := time.Now().UTC()
	s.Errors = append(s.Errors, StageError{
		Stage:    stage,
		Category: category,
		Message:  err.Error(),
		At:       now,
	})
	s.AppendLog(stage, "failed: "+err.Error())
	s.Status = StatusError
	s.IsComplete = true
}

// Reenter prepares the state for a revision pass. The status loops back to
// structured so the generate stage can run again, and the pending review
// decision and revision flag are cleared. Scores from the prior pass remain
// until their stages overwrite them.
func (s *DocumentState) Reenter() error {
	if err := s.Transition(StatusStructured); err != nil {
		return err
	}
	s.ReviewDecision = ""
	s.NeedsRevision = false
	s.AppendLog(StageGenerate, fmt.Sprintf("revision pass %d started", s.RevisionAttempts))
	return nil
}

// Finalize stamps terminal bookkeeping after an approved or rejected outcome.
func (s *DocumentState) Finalize() {
	s.IsComplete = s.Status.IsTerminal()
	s.IsApproved = s.Status == StatusApproved
	s.CanBeDelivered = s.IsApproved
	if s.IsApproved && s.ApprovedAt == nil {
		now := time.Now().UTC()
		s.ApprovedAt = &now
	}
}
