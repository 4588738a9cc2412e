package models

import "time"

// HistoryRecord is one persisted analysis, keyed by a generated id.
type HistoryRecord struct {
	ID                string         `json:"id" dynamodbav:"id"`
	SessionID         string         `json:"session_id" dynamodbav:"session_id"`
	InputURL          string         `json:"input_url" dynamodbav:"input_url"`
	NormalizedURL     string         `json:"normalized_url" dynamodbav:"normalized_url"`
	Source            SourceLabel    `json:"source" dynamodbav:"source"`
	ExtractionKind    ContentKind    `json:"extraction_kind" dynamodbav:"extraction_kind"`
	ExtractedChars    int            `json:"extracted_chars" dynamodbav:"extracted_chars"`
	DurationMS        int64          `json:"duration_ms" dynamodbav:"duration_ms"`
	Summary           string         `json:"summary" dynamodbav:"summary"`
	TopSignal         string         `json:"top_signal" dynamodbav:"top_signal"`
	GlobalPerspective string         `json:"global_perspective" dynamodbav:"global_perspective"`
	LeftPct           float64        `json:"left_pct" dynamodbav:"left_pct"`
	CenterPct         float64        `json:"center_pct" dynamodbav:"center_pct"`
	RightPct          float64        `json:"right_pct" dynamodbav:"right_pct"`
	ToneLabel         string         `json:"tone_label,omitempty" dynamodbav:"tone_label,omitempty"`
	ToneScore         float64        `json:"tone_score,omitempty" dynamodbav:"tone_score,omitempty"`
	Result            AnalysisResult `json:"result" dynamodbav:"result"`
	CreatedAt         time.Time      `json:"created_at" dynamodbav:"created_at"`
}

// NewHistoryRecord flattens a finished outcome into the persisted shape,
// reusing the analysis id as the record id.
func NewHistoryRecord(sessionID string, outcome AnalysisOutcome) HistoryRecord {
	return HistoryRecord{
		ID:                outcome.AnalysisID,
		SessionID:         sessionID,
		InputURL:          outcome.InputURL,
		NormalizedURL:     outcome.NormalizedURL,
		Source:            outcome.Source,
		ExtractionKind:    outcome.ExtractionKind,
		ExtractedChars:    outcome.ExtractedChars,
		DurationMS:        outcome.DurationMS,
		Summary:           outcome.Summary,
		TopSignal:         outcome.TopSignal,
		GlobalPerspective: outcome.GlobalPerspective,
		LeftPct:           outcome.LeftPct,
		CenterPct:         outcome.CenterPct,
		RightPct:          outcome.RightPct,
		ToneLabel:         outcome.ToneLabel,
		ToneScore:         outcome.ToneScore,
		Result: AnalysisResult{
			Summary:           outcome.Summary,
			Essay:             outcome.Essay,
			TopSignal:         outcome.TopSignal,
			GlobalPerspective: outcome.GlobalPerspective,
			BiasScores:        outcome.BiasScores,
		},
		CreatedAt: time.Now().UTC(),
	}
}

// HistoryItem is the trimmed listing shape returned by the history endpoint.
type HistoryItem struct {
	ID             string      `json:"id"`
	InputURL       string      `json:"input_url"`
	Source         SourceLabel `json:"source"`
	ExtractionKind ContentKind `json:"extraction_kind"`
	LeftPct        float64     `json:"left_pct"`
	CenterPct      float64     `json:"center_pct"`
	RightPct       float64     `json:"right_pct"`
	CreatedAt      time.Time   `json:"created_at"`
}
