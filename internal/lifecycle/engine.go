package lifecycle

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fernwood-labs/donorpulse/internal/model"
	"github.com/fernwood-labs/donorpulse/internal/service"
)

// Engine wires the pure evaluation pipeline to the storage layer. The
// engine itself holds no mutable state: each BuildReport call fetches a
// fresh snapshot and computes an independent report, so concurrent runs for
// different organizations need no coordination.
type Engine struct {
	storage service.Storage
	config  Config
}

// New creates an engine with the default configuration.
func New(storage service.Storage) (*Engine, error) {
	return NewWithConfig(storage, DefaultConfig())
}

// NewWithConfig creates an engine with a custom configuration, rejecting
// invalid configurations up front.
func NewWithConfig(storage service.Storage, config Config) (*Engine, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Engine{storage: storage, config: config}, nil
}

// Config returns the engine's evaluation configuration.
func (e *Engine) Config() Config {
	return e.config
}

// BuildReport evaluates the full donor base of an organization at the given
// instant. The instant is required: sampling the wall clock here would make
// reports non-replayable.
func (e *Engine) BuildReport(ctx context.Context, organizationID string, now time.Time) (*model.LifecycleReport, error) {
	if organizationID == "" {
		return nil, fmt.Errorf("organization ID is required")
	}
	if now.IsZero() {
		return nil, fmt.Errorf("evaluation instant is required")
	}

	histories, err := e.storage.GetDonorHistories(ctx, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to load donor histories: %w", err)
	}

	slog.Info("Evaluating donor base",
		"organization_id", organizationID,
		"donors", len(histories),
		"snapshot_at", now.Format(time.RFC3339))

	report, err := Compute(Snapshot{
		Now:            now,
		OrganizationID: organizationID,
		Donors:         histories,
	}, e.config)
	if err != nil {
		return nil, err
	}

	slog.Info("Evaluation complete",
		"total_donors", report.Summary.TotalDonors,
		"active_donors", report.Summary.ActiveDonors,
		"at_risk", report.Summary.AtRiskCount,
		"retention_rate", report.Summary.RetentionRate)

	return report, nil
}
