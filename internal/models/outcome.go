package models

import "math"

// AnalysisOutcome is the full response for one analyzed URL: the cached
// AnalysisResult plus extraction metadata and display-ready percentages.
type AnalysisOutcome struct {
	AnalysisID        string      `json:"analysis_id,omitempty"`
	Status            string      `json:"status"`
	InputURL          string      `json:"input_url"`
	NormalizedURL     string      `json:"normalized_url"`
	ExtractionKind    ContentKind `json:"extraction_kind"`
	ExtractedChars    int         `json:"extracted_chars"`
	DurationMS        int64       `json:"duration_ms"`
	Source            SourceLabel `json:"source"`
	Summary           string      `json:"summary"`
	Essay             string      `json:"essay"`
	TopSignal         string      `json:"top_signal"`
	GlobalPerspective string      `json:"global_perspective"`
	BiasScores        BiasScores  `json:"bias_scores"`
	LeftPct           float64     `json:"left_pct"`
	CenterPct         float64     `json:"center_pct"`
	RightPct          float64     `json:"right_pct"`
	ToneLabel         string      `json:"tone_label,omitempty"`
	ToneScore         float64     `json:"tone_score,omitempty"`
}

// ToPercent converts a unit-interval score into a display percentage:
// scaled by 100, rounded to 1 decimal, clamped to [0,100]. Non-finite
// input yields 0.
func ToPercent(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0.0
	}
	p := math.Round(v*100*10) / 10
	if p < 0 {
		return 0.0
	}
	if p > 100 {
		return 100.0
	}
	return p
}
