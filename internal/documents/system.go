package documents

import (
	"context"
	"io"

	"github.com/google/uuid"

	"github.com/privacypoint/privacypoint/internal/pipeline"
	"github.com/privacypoint/privacypoint/pkg/pagination"
)

// System defines the public contract for document generation operations.
type System interface {
	Handler(maxUploadSize int64) *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Document], error)

	Find(ctx context.Context, id uuid.UUID) (*Document, error)
	State(ctx context.Context, id uuid.UUID) (*pipeline.DocumentState, error)
	Status(ctx context.Context, id uuid.UUID) (*StatusReport, error)
	Content(ctx context.Context, id uuid.UUID) (*ContentResponse, error)

	// Source streams the uploaded source file for a document, returning the
	// stream and the original file name. The caller closes the stream.
	Source(ctx context.Context, id uuid.UUID) (io.ReadCloser, string, error)

	// Create registers a generation request and starts the workflow in the
	// background. The returned Document reflects the pending state; callers
	// poll Status or register a webhook for completion.
	Create(ctx context.Context, cmd CreateCommand) (*Document, error)

	// Generate starts or resumes the workflow for a registered document that
	// is pending or parked in human review with a revision outstanding.
	Generate(ctx context.Context, id uuid.UUID) (*StatusReport, error)

	// Review applies an external reviewer's decision to a document parked
	// in human review. A needs-revision decision resumes the workflow.
	Review(ctx context.Context, id uuid.UUID, cmd ReviewCommand) (*StatusReport, error)

	Delete(ctx context.Context, id uuid.UUID) error
}
