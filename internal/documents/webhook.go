package documents

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/privacypoint/privacypoint/internal/pipeline"
)

// WebhookPayload is the completion notification body posted to a request's
// webhook URL whenever a workflow run reaches a resting point.
type WebhookPayload struct {
	ID               uuid.UUID       `json:"id"`
	Status           pipeline.Status `json:"status"`
	QualityScore     float64         `json:"quality_score"`
	ComplianceScore  float64         `json:"compliance_score"`
	RevisionAttempts int             `json:"revision_attempts"`
	IsComplete       bool            `json:"is_complete"`
	IsApproved       bool            `json:"is_approved"`
}

// Notifier posts workflow outcomes to caller-supplied webhook URLs.
// Delivery is best effort: failures are logged, never surfaced to the
// workflow.
type Notifier struct {
	client *http.Client
	logger *slog.Logger
}

// NewNotifier creates a webhook notifier with the given delivery timeout.
func NewNotifier(logger *slog.Logger, timeout time.Duration) *Notifier {
	return &Notifier{
		client: &http.Client{Timeout: timeout},
		logger: logger.With("system", "webhook"),
	}
}

// Notify posts the state's outcome to its webhook URL. States without a
// webhook URL are skipped.
func (n *Notifier) Notify(ctx context.Context, s *pipeline.DocumentState) {
	if s.WebhookURL == "" {
		return
	}

	payload := WebhookPayload{
		ID:               s.ID,
		Status:           s.Status,
		QualityScore:     s.QualityScore,
		ComplianceScore:  s.ComplianceScore,
		RevisionAttempts: s.RevisionAttempts,
		IsComplete:       s.IsComplete,
		IsApproved:       s.IsApproved,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		n.logger.Warn("webhook payload encoding failed", "id", s.ID, "error", err)
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.WebhookURL, bytes.NewReader(body))
	if err != nil {
		n.logger.Warn("webhook request build failed", "id", s.ID, "error", err)
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		n.logger.Warn("webhook delivery failed", "id", s.ID, "url", s.WebhookURL, "error", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		n.logger.Warn(
			"webhook delivery rejected",
			"id", s.ID,
			"url", s.WebhookURL,
			"status", resp.StatusCode,
		)
		return
	}

	n.logger.Info("webhook delivered", "id", s.ID, "status", s.Status)
}
