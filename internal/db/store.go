package db

import (
	"context"

	"github.com/biaslens/biaslens/internal/models"
)

// Store adapts the package-level persistence calls to the interface the
// HTTP server consumes, so handlers can be tested against a fake.
type Store struct{}

func (Store) SaveJob(ctx context.Context, job models.AnalysisJob) error {
	return SaveJob(ctx, job)
}

func (Store) GetJob(ctx context.Context, jobID string) (models.AnalysisJob, bool, error) {
	return GetJob(ctx, jobID)
}

func (Store) StoreHistory(ctx context.Context, record models.HistoryRecord) error {
	return StoreHistory(ctx, record)
}

func (Store) GetRecentHistory(ctx context.Context, sessionID string, limit int) ([]models.HistoryItem, error) {
	return GetRecentHistory(ctx, sessionID, limit)
}

func (Store) StoreFeedback(ctx context.Context, fb models.FeedbackRecord) error {
	return StoreFeedback(ctx, fb)
}

func (Store) GetMetrics(ctx context.Context) (models.Metrics, error) {
	return GetMetrics(ctx)
}
