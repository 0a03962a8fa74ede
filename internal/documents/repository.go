package documents

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	"github.com/privacypoint/privacypoint/internal/pipeline"
	"github.com/privacypoint/privacypoint/pkg/pagination"
	"github.com/privacypoint/privacypoint/pkg/repository"
	"github.com/privacypoint/privacypoint/pkg/storage"
)

// Config carries the document system's tuning values, assembled by the
// configuration layer.
type Config struct {
	Pagination        pagination.Config
	Workflow          pipeline.Config
	MaxConcurrentRuns int64
	RunTimeout        time.Duration
}

type repo struct {
	db       *sql.DB
	storage  storage.System
	engine   *pipeline.Engine
	notifier *Notifier
	logger   *slog.Logger
	config   Config
	runs     *semaphore.Weighted
}

// New creates a document system. The engine is built here so stage
// checkpoints persist through this repository.
func New(
	db *sql.DB,
	store storage.System,
	stages []pipeline.Stage,
	notifier *Notifier,
	logger *slog.Logger,
	config Config,
	opts ...pipeline.EngineOption,
) (System, error) {
	r := &repo{
		db:       db,
		storage:  store,
		notifier: notifier,
		logger:   logger.With("system", "documents"),
		config:   config,
		runs:     semaphore.NewWeighted(config.MaxConcurrentRuns),
	}

	opts = append(opts, pipeline.WithCheckpoint(r.checkpoint))
	engine, err := pipeline.NewEngine(stages, logger, opts...)
	if err != nil {
		return nil, fmt.Errorf("build workflow engine: %w", err)
	}

	r.engine = engine
	return r, nil
}

func (r *repo) Handler(maxUploadSize int64) *Handler {
	return NewHandler(r, r.logger, r.config.Pagination, maxUploadSize)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Document], error) {
	page.Normalize(r.config.Pagination)

	where, args := whereClause(filters, page.Search)

	var total int
	countSQL := "SELECT COUNT(*) FROM document_states" + where
	if err := r.db.QueryRowContext(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count documents: %w", err)
	}

	pageSQL := fmt.Sprintf(
		"%s%s%s LIMIT $%d OFFSET $%d",
		projection, where, orderClause(page.Sort),
		len(args)+1, len(args)+2,
	)
	args = append(args, page.PageSize, page.Offset())

	docs, err := repository.QueryMany(ctx, r.db, pageSQL, args, scanDocument)
	if err != nil {
		return nil, fmt.Errorf("query documents: %w", err)
	}

	result := pagination.NewPageResult(docs, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Document, error) {
	q := projection + " WHERE id = $1"

	d, err := repository.QueryOne(ctx, r.db, q, []any{id}, scanDocument)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &d, nil
}

func (r *repo) State(ctx context.Context, id uuid.UUID) (*pipeline.DocumentState, error) {
	var raw []byte
	err := r.db.
		QueryRowContext(ctx, "SELECT state FROM document_states WHERE id = $1", id).
		Scan(&raw)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	var state pipeline.DocumentState
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, fmt.Errorf("decode document state %s: %w", id, err)
	}

	return &state, nil
}

func (r *repo) Status(ctx context.Context, id uuid.UUID) (*StatusReport, error) {
	state, err := r.State(ctx, id)
	if err != nil {
		return nil, err
	}
	return report(state), nil
}

func (r *repo) Content(ctx context.Context, id uuid.UUID) (*ContentResponse, error) {
	state, err := r.State(ctx, id)
	if err != nil {
		return nil, err
	}

	if state.GeneratedContent == "" {
		return nil, fmt.Errorf("%w: %s", ErrNoContent, id)
	}

	return &ContentResponse{
		ID:         state.ID,
		Title:      state.Structure.Title,
		Status:     state.Status,
		Content:    state.GeneratedContent,
		Sections:   state.ContentSections,
		Clauses:    state.LegalClauses,
		ApprovedAt: state.ApprovedAt,
	}, nil
}

func (r *repo) Source(ctx context.Context, id uuid.UUID) (io.ReadCloser, string, error) {
	doc, err := r.Find(ctx, id)
	if err != nil {
		return nil, "", err
	}

	if doc.StorageKey == nil {
		return nil, "", fmt.Errorf("%w: %s", ErrNoSource, id)
	}

	stream, err := r.storage.Download(ctx, *doc.StorageKey)
	if err != nil {
		return nil, "", fmt.Errorf("download source blob: %w", err)
	}

	name := "document"
	if doc.FileName != nil {
		name = *doc.FileName
	}

	return stream, name, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Document, error) {
	docType, err := pipeline.ParseDocumentType(cmd.DocumentType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	state, err := pipeline.NewState(
		docType,
		cmd.CompanyName,
		cmd.ActivityDescription,
		pipeline.NewStateOptions{
			IndustrySector: cmd.IndustrySector,
			Language:       cmd.Language,
			Jurisdiction:   cmd.Jurisdiction,
			UploadedFile:   cmd.Data,
			FileName:       cmd.Filename,
			WebhookURL:     cmd.WebhookURL,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	if len(cmd.Data) > 0 {
		key := buildStorageKey(state.ID, sanitizeFilename(cmd.Filename))
		if err := r.storage.Upload(ctx, key, bytes.NewReader(cmd.Data), cmd.ContentType); err != nil {
			return nil, fmt.Errorf("upload source blob: %w", err)
		}
		state.FileKey = key
	}

	d, err := r.insert(ctx, state)
	if err != nil {
		if state.FileKey != "" {
			if delErr := r.storage.Delete(ctx, state.FileKey); delErr != nil {
				r.logger.Warn("compensating blob delete failed", "key", state.FileKey, "error", delErr)
			}
		}
		return nil, err
	}

	r.logger.Info(
		"document registered",
		"id", state.ID,
		"type", state.DocumentType,
		"company", state.CompanyName,
	)

	r.launch(state)
	return d, nil
}

func (r *repo) Review(ctx context.Context, id uuid.UUID, cmd ReviewCommand) (*StatusReport, error) {
	decision, err := pipeline.ParseDecision(cmd.Decision)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	state, err := r.State(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := pipeline.ApplyDecision(
		state, decision, cmd.Reviewer, cmd.Feedback,
		r.config.Workflow.MaxRevisionAttempts,
	); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotReviewable, err)
	}

	if err := r.save(ctx, state); err != nil {
		return nil, err
	}

	r.logger.Info(
		"review applied",
		"id", id,
		"decision", state.ReviewDecision,
		"reviewer", cmd.Reviewer,
	)

	// Snapshot before launch: the goroutine owns the state from here on.
	snapshot := report(state)
	if state.ReviewDecision == pipeline.DecisionNeedsRevision {
		r.launch(state)
	}

	return snapshot, nil
}

func (r *repo) Generate(ctx context.Context, id uuid.UUID) (*StatusReport, error) {
	state, err := r.State(ctx, id)
	if err != nil {
		return nil, err
	}

	if !runnable(state) {
		return nil, fmt.Errorf("%w: document %s is %s", ErrNotRunnable, id, state.Status)
	}

	// The persisted snapshot omits file bytes; restore them so the
	// extraction stage can see the source.
	if state.Status == pipeline.StatusPending && state.FileKey != "" {
		stream, err := r.storage.Download(ctx, state.FileKey)
		if err != nil {
			return nil, fmt.Errorf("download source blob: %w", err)
		}
		data, err := io.ReadAll(stream)
		stream.Close()
		if err != nil {
			return nil, fmt.Errorf("read source blob: %w", err)
		}
		state.UploadedFile = data
	}

	r.logger.Info("run requested", "id", id, "status", state.Status)

	// Snapshot before launch: the goroutine owns the state from here on.
	snapshot := report(state)
	r.launch(state)
	return snapshot, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	doc, err := r.Find(ctx, id)
	if err != nil {
		return err
	}

	_, err = repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		return struct{}{}, repository.ExecExpectOne(
			ctx, tx,
			"DELETE FROM document_states WHERE id = $1",
			id,
		)
	})
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	if doc.StorageKey != nil {
		if delErr := r.storage.Delete(ctx, *doc.StorageKey); delErr != nil {
			r.logger.Warn(
				"blob delete failed after DB delete",
				"key", *doc.StorageKey,
				"error", delErr,
			)
		}
	}

	r.logger.Info("document deleted", "id", id)
	return nil
}

func (r *repo) insert(ctx context.Context, s *pipeline.DocumentState) (*Document, error) {
	raw, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode document state: %w", err)
	}

	q := `
		INSERT INTO document_states(
			id, document_type, company_name, industry_sector, status,
			current_step, quality_score, compliance_score, revision_attempts,
			needs_revision, file_name, storage_key, state, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id, document_type, company_name, industry_sector, status,
		          current_step, quality_score, compliance_score, revision_attempts,
		          needs_revision, file_name, storage_key, created_at, updated_at`

	args := []any{
		s.ID,
		s.DocumentType,
		s.CompanyName,
		s.IndustrySector,
		s.Status,
		s.CurrentStep,
		s.QualityScore,
		s.ComplianceScore,
		s.RevisionAttempts,
		s.NeedsRevision,
		nullable(s.FileName),
		nullable(s.FileKey),
		raw,
		s.CreatedAt,
		s.UpdatedAt,
	}

	d, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Document, error) {
		return repository.QueryOne(ctx, tx, q, args, scanDocument)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	return &d, nil
}

func (r *repo) save(ctx context.Context, s *pipeline.DocumentState) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode document state: %w", err)
	}

	q := `
		UPDATE document_states
		SET status = $2, current_step = $3, quality_score = $4,
		    compliance_score = $5, revision_attempts = $6, needs_revision = $7,
		    state = $8, updated_at = $9
		WHERE id = $1`

	err = repository.ExecExpectOne(ctx, r.db, q,
		s.ID,
		s.Status,
		s.CurrentStep,
		s.QualityScore,
		s.ComplianceScore,
		s.RevisionAttempts,
		s.NeedsRevision,
		raw,
		s.UpdatedAt,
	)
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	return nil
}

// checkpoint persists the state after every stage. Persistence failure is
// logged and the run continues; the final save has another chance.
func (r *repo) checkpoint(ctx context.Context, s *pipeline.DocumentState) {
	if err := r.save(ctx, s); err != nil {
		r.logger.Warn("checkpoint failed", "id", s.ID, "step", s.CurrentStep, "error", err)
	}
}

// launch runs the workflow in the background. Concurrency is bounded; a
// request that cannot acquire a slot before the run timeout is recorded as
// an infrastructure failure on the state.
func (r *repo) launch(s *pipeline.DocumentState) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), r.config.RunTimeout)
		defer cancel()

		if err := r.runs.Acquire(ctx, 1); err != nil {
			s.RecordFailure(s.CurrentStep, fmt.Errorf("run slot unavailable: %w", err))
			r.checkpoint(ctx, s)
			return
		}
		defer r.runs.Release(1)

		r.engine.Run(ctx, s)
		r.checkpoint(ctx, s)
		r.notifier.Notify(ctx, s)
	}()
}

// runnable mirrors the engine's start conditions: a fresh run, or a
// re-entry after a needs-revision review decision. A document merely
// flagged for revision by the quality stage is still waiting on its
// reviewer and cannot be resumed.
func runnable(s *pipeline.DocumentState) bool {
	return s.Status == pipeline.StatusPending ||
		(s.Status == pipeline.StatusHumanReview &&
			s.ReviewDecision == pipeline.DecisionNeedsRevision)
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func buildStorageKey(id uuid.UUID, filename string) string {
	return fmt.Sprintf("documents/%s/%s", id, filename)
}

func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	if name == "." || name == "" {
		name = "document"
	}
	return url.PathEscape(name)
}
