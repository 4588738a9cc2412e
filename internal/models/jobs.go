package models

import "time"

type JobStatus string

const (
	JobQueued    JobStatus = "queued"
	JobRunning   JobStatus = "running"
	JobCompleted JobStatus = "completed"
	JobFailed    JobStatus = "failed"
)

// JobTTL bounds how long job rows stay queryable before DynamoDB expires
// them.
const JobTTL = 7 * 24 * time.Hour

// AnalysisJob is the persisted state of one queued analysis request.
// ExpiresAt is an epoch-seconds TTL attribute.
type AnalysisJob struct {
	JobID     string           `json:"job_id" dynamodbav:"job_id"`
	SessionID string           `json:"session_id" dynamodbav:"session_id"`
	InputURL  string           `json:"input_url" dynamodbav:"input_url"`
	Status    JobStatus        `json:"status" dynamodbav:"status"`
	Error     string           `json:"error,omitempty" dynamodbav:"error,omitempty"`
	Result    *AnalysisOutcome `json:"result,omitempty" dynamodbav:"result,omitempty"`
	CreatedAt time.Time        `json:"created_at" dynamodbav:"created_at"`
	UpdatedAt time.Time        `json:"updated_at" dynamodbav:"updated_at"`
	ExpiresAt int64            `json:"expires_at" dynamodbav:"expires_at"`
}

// JobMessage is the Kafka payload that hands a queued job to a worker.
type JobMessage struct {
	JobID      string    `json:"job_id"`
	SessionID  string    `json:"session_id"`
	InputURL   string    `json:"input_url"`
	EnqueuedAt time.Time `json:"enqueued_at"`
}
