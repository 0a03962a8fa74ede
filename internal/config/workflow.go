package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/privacypoint/privacypoint/internal/pipeline"
)

const (
	EnvWorkflowQualityThreshold    = "PRIVPOINT_WORKFLOW_QUALITY_THRESHOLD"
	EnvWorkflowComplianceThreshold = "PRIVPOINT_WORKFLOW_COMPLIANCE_THRESHOLD"
	EnvWorkflowApprovalThreshold   = "PRIVPOINT_WORKFLOW_APPROVAL_THRESHOLD"
	EnvWorkflowMaxRevisionAttempts = "PRIVPOINT_WORKFLOW_MAX_REVISION_ATTEMPTS"
	EnvWorkflowAutoReview          = "PRIVPOINT_WORKFLOW_AUTO_REVIEW"
	EnvWorkflowMaxConcurrentRuns   = "PRIVPOINT_WORKFLOW_MAX_CONCURRENT_RUNS"
	EnvWorkflowRunTimeout          = "PRIVPOINT_WORKFLOW_RUN_TIMEOUT"
	EnvWorkflowWebhookTimeout      = "PRIVPOINT_WORKFLOW_WEBHOOK_TIMEOUT"
)

// WorkflowConfig holds the generation workflow's decision thresholds and
// execution limits. Thresholds use pointers so a configured zero can be told
// apart from an absent value.
type WorkflowConfig struct {
	QualityThreshold    *float64 `toml:"quality_threshold"`
	ComplianceThreshold *float64 `toml:"compliance_threshold"`
	ApprovalThreshold   *float64 `toml:"approval_threshold"`
	MaxRevisionAttempts *int     `toml:"max_revision_attempts"`
	AutoReview          *bool    `toml:"auto_review"`
	MaxConcurrentRuns   int64    `toml:"max_concurrent_runs"`
	RunTimeout          string   `toml:"run_timeout"`
	WebhookTimeout      string   `toml:"webhook_timeout"`
}

// Pipeline maps the finalized workflow config onto the engine's config.
func (c *WorkflowConfig) Pipeline() pipeline.Config {
	return pipeline.Config{
		QualityThreshold:    *c.QualityThreshold,
		ComplianceThreshold: *c.ComplianceThreshold,
		ApprovalThreshold:   *c.ApprovalThreshold,
		MaxRevisionAttempts: *c.MaxRevisionAttempts,
		AutoReview:          *c.AutoReview,
	}
}

// RunTimeoutDuration returns RunTimeout as a time.Duration.
func (c *WorkflowConfig) RunTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.RunTimeout)
	return d
}

// WebhookTimeoutDuration returns WebhookTimeout as a time.Duration.
func (c *WorkflowConfig) WebhookTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.WebhookTimeout)
	return d
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *WorkflowConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites set fields from overlay.
func (c *WorkflowConfig) Merge(overlay *WorkflowConfig) {
	if overlay.QualityThreshold != nil {
		c.QualityThreshold = overlay.QualityThreshold
	}
	if overlay.ComplianceThreshold != nil {
		c.ComplianceThreshold = overlay.ComplianceThreshold
	}
	if overlay.ApprovalThreshold != nil {
		c.ApprovalThreshold = overlay.ApprovalThreshold
	}
	if overlay.MaxRevisionAttempts != nil {
		c.MaxRevisionAttempts = overlay.MaxRevisionAttempts
	}
	if overlay.AutoReview != nil {
		c.AutoReview = overlay.AutoReview
	}
	if overlay.MaxConcurrentRuns != 0 {
		c.MaxConcurrentRuns = overlay.MaxConcurrentRuns
	}
	if overlay.RunTimeout != "" {
		c.RunTimeout = overlay.RunTimeout
	}
	if overlay.WebhookTimeout != "" {
		c.WebhookTimeout = overlay.WebhookTimeout
	}
}

func (c *WorkflowConfig) loadDefaults() {
	defaults := pipeline.DefaultConfig()

	if c.QualityThreshold == nil {
		c.QualityThreshold = &defaults.QualityThreshold
	}
	if c.ComplianceThreshold == nil {
		c.ComplianceThreshold = &defaults.ComplianceThreshold
	}
	if c.ApprovalThreshold == nil {
		c.ApprovalThreshold = &defaults.ApprovalThreshold
	}
	if c.MaxRevisionAttempts == nil {
		c.MaxRevisionAttempts = &defaults.MaxRevisionAttempts
	}
	if c.AutoReview == nil {
		c.AutoReview = &defaults.AutoReview
	}
	if c.MaxConcurrentRuns == 0 {
		c.MaxConcurrentRuns = 4
	}
	if c.RunTimeout == "" {
		c.RunTimeout = "15m"
	}
	if c.WebhookTimeout == "" {
		c.WebhookTimeout = "10s"
	}
}

func (c *WorkflowConfig) loadEnv() {
	setFloat := func(envVar string, target **float64) {
		if v := os.Getenv(envVar); v != "" {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				*target = &f
			}
		}
	}

	setFloat(EnvWorkflowQualityThreshold, &c.QualityThreshold)
	setFloat(EnvWorkflowComplianceThreshold, &c.ComplianceThreshold)
	setFloat(EnvWorkflowApprovalThreshold, &c.ApprovalThreshold)

	if v := os.Getenv(EnvWorkflowMaxRevisionAttempts); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MaxRevisionAttempts = &n
		}
	}
	if v := os.Getenv(EnvWorkflowAutoReview); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.AutoReview = &b
		}
	}
	if v := os.Getenv(EnvWorkflowMaxConcurrentRuns); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.MaxConcurrentRuns = n
		}
	}
	if v := os.Getenv(EnvWorkflowRunTimeout); v != "" {
		c.RunTimeout = v
	}
	if v := os.Getenv(EnvWorkflowWebhookTimeout); v != "" {
		c.WebhookTimeout = v
	}
}

func (c *WorkflowConfig) validate() error {
	threshold := func(name string, v *float64) error {
		if *v < 0 || *v > 1 {
			return fmt.Errorf("invalid %s: %f", name, *v)
		}
		return nil
	}

	if err := threshold("quality_threshold", c.QualityThreshold); err != nil {
		return err
	}
	if err := threshold("compliance_threshold", c.ComplianceThreshold); err != nil {
		return err
	}
	if err := threshold("approval_threshold", c.ApprovalThreshold); err != nil {
		return err
	}
	if *c.MaxRevisionAttempts < 0 {
		return fmt.Errorf("invalid max_revision_attempts: %d", *c.MaxRevisionAttempts)
	}
	if c.MaxConcurrentRuns < 1 {
		return fmt.Errorf("invalid max_concurrent_runs: %d", c.MaxConcurrentRuns)
	}
	if _, err := time.ParseDuration(c.RunTimeout); err != nil {
		return fmt.Errorf("invalid run_timeout: %w", err)
	}
	if _, err := time.ParseDuration(c.WebhookTimeout); err != nil {
		return fmt.Errorf("invalid webhook_timeout: %w", err)
	}
	return nil
}
