package pipeline

import "errors"

// Failure categories for stage errors. Infrastructure failures cover
// transport, model, and storage faults; content failures cover malformed
// or unusable model output.
const (
	CategoryInfrastructure = "infrastructure"
	CategoryContent        = "content"
)

// Domain errors for workflow state operations.
var (
	ErrUnknownDocumentType = errors.New("unknown document type")
	ErrUnknownStatus       = errors.New("unknown status")
	ErrInvalidTransition   = errors.New("invalid status transition")
	ErrMissingCompany      = errors.New("company name required")
	ErrMissingActivity     = errors.New("activity description required")
	ErrNoGenerateStage     = errors.New("registry missing generate stage")
	ErrDuplicateStage      = errors.New("duplicate stage name in registry")

	// ErrContent marks a stage failure caused by unusable model output.
	// Stage failures not wrapping ErrContent are categorized as infrastructure.
	ErrContent = errors.New("content failure")
)
