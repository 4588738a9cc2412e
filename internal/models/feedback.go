package models

import "time"

const (
	VoteUp   = "up"
	VoteDown = "down"
)

// FeedbackRecord stores one thumbs-up/down vote, optionally tied to an
// analysis. Notes are truncated to 600 characters before storage.
type FeedbackRecord struct {
	ID         string    `json:"id" dynamodbav:"id"`
	SessionID  string    `json:"session_id" dynamodbav:"session_id"`
	AnalysisID string    `json:"analysis_id,omitempty" dynamodbav:"analysis_id,omitempty"`
	Vote       string    `json:"vote" dynamodbav:"vote"`
	Note       string    `json:"note,omitempty" dynamodbav:"note,omitempty"`
	CreatedAt  time.Time `json:"created_at" dynamodbav:"created_at"`
}
