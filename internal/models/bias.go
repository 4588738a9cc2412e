package models

// BiasScores is a three-way distribution over editorial leanings.
// Values are ≥ 0 and sum to 1 within 3-decimal rounding.
type BiasScores struct {
	Left   float64 `json:"Left" dynamodbav:"left"`
	Center float64 `json:"Center" dynamodbav:"center"`
	Right  float64 `json:"Right" dynamodbav:"right"`
}

// DefaultBiasScores is the neutral fallback used whenever model output
// cannot be coerced into a usable distribution.
func DefaultBiasScores() BiasScores {
	return BiasScores{Left: 0.333, Center: 0.334, Right: 0.333}
}

// AnalysisResult is the cached unit of work: one per (source, text) pair.
type AnalysisResult struct {
	Summary           string     `json:"summary" dynamodbav:"summary"`
	Essay             string     `json:"essay" dynamodbav:"essay"`
	TopSignal         string     `json:"top_signal" dynamodbav:"top_signal"`
	GlobalPerspective string     `json:"global_perspective" dynamodbav:"global_perspective"`
	BiasScores        BiasScores `json:"bias_scores" dynamodbav:"bias_scores"`
}
