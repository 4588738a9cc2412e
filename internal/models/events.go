package models

import "time"

const (
	EventAnalysisCompleted = "analysis_completed"
	EventAnalysisFailed    = "analysis_failed"
	EventJobEnqueued       = "job_enqueued"
	EventJobCompleted      = "job_completed"
	EventJobFailed         = "job_failed"
	EventFeedbackSubmitted = "feedback_submitted"
)

// Event is one usage-log entry, published to Kafka and batch-written to
// storage by the worker. ExpiresAt is an epoch-seconds TTL attribute.
type Event struct {
	EventID   string            `json:"event_id" dynamodbav:"event_id"`
	SessionID string            `json:"session_id" dynamodbav:"session_id"`
	EventType string            `json:"event_type" dynamodbav:"event_type"`
	Metadata  map[string]string `json:"metadata,omitempty" dynamodbav:"metadata,omitempty"`
	CreatedAt time.Time         `json:"created_at" dynamodbav:"created_at"`
	ExpiresAt int64             `json:"expires_at" dynamodbav:"expires_at"`
}

// Metrics aggregates usage counters for the metrics endpoint.
type Metrics struct {
	AnalysesTotal int64 `json:"analyses_total"`
	FeedbackTotal int64 `json:"feedback_total"`
	FeedbackUp    int64 `json:"feedback_up"`
	FeedbackDown  int64 `json:"feedback_down"`
	JobsTotal     int64 `json:"jobs_total"`
	JobsFailed    int64 `json:"jobs_failed"`
}
