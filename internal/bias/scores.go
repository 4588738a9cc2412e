package bias

import (
	"math"
	"strconv"
	"strings"

	"github.com/biaslens/biaslens/internal/models"
)

// SOURCE_CALIBRATION_ADJUSTMENT is how far a known outlet lean shifts
// the model's distribution before renormalizing.
const SOURCE_CALIBRATION_ADJUSTMENT = 0.15

var scoreKeySynonyms = map[string][]string{
	"left":   {"left", "liberal", "progressive"},
	"center": {"center", "centrist", "neutral"},
	"right":  {"right", "conservative"},
}

// CoerceScores maps a raw bias_scores value onto the three-way
// distribution. Keys match case-insensitively after trimming; the first
// matching synonym wins per side; numeric strings are accepted and
// unusable values count as zero. Anything that is not an object yields
// the default distribution. The result is always normalized.
func CoerceScores(raw any) models.BiasScores {
	obj, ok := raw.(map[string]any)
	if !ok {
		return models.DefaultBiasScores()
	}

	lookup := make(map[string]any, len(obj))
	for k, v := range obj {
		lookup[strings.ToLower(strings.TrimSpace(k))] = v
	}

	pick := func(keys []string) float64 {
		for _, key := range keys {
			if v, ok := lookup[key]; ok {
				return numericValue(v)
			}
		}
		return 0
	}

	return NormalizeScores(models.BiasScores{
		Left:   pick(scoreKeySynonyms["left"]),
		Center: pick(scoreKeySynonyms["center"]),
		Right:  pick(scoreKeySynonyms["right"]),
	})
}

func numericValue(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

// NormalizeScores clamps negatives to zero and scales the distribution
// to sum to 1 with 3-decimal rounding. A non-positive sum yields the
// default distribution exactly.
func NormalizeScores(s models.BiasScores) models.BiasScores {
	left := math.Max(s.Left, 0)
	center := math.Max(s.Center, 0)
	right := math.Max(s.Right, 0)

	total := left + center + right
	if total <= 0 {
		return models.DefaultBiasScores()
	}

	return models.BiasScores{
		Left:   round3(left / total),
		Center: round3(center / total),
		Right:  round3(right / total),
	}
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

// Calibrate nudges the distribution toward the outlet's known lean.
// Unknown sources only pass through the renormalize.
func Calibrate(s models.BiasScores, source models.SourceLabel) models.BiasScores {
	adjusted := s

	switch source {
	case models.SourceRight:
		adjusted.Right += SOURCE_CALIBRATION_ADJUSTMENT
		adjusted.Left -= SOURCE_CALIBRATION_ADJUSTMENT / 2
	case models.SourceLeft:
		adjusted.Left += SOURCE_CALIBRATION_ADJUSTMENT
		adjusted.Right -= SOURCE_CALIBRATION_ADJUSTMENT / 2
	case models.SourceCenter:
		adjusted.Center += SOURCE_CALIBRATION_ADJUSTMENT
	}

	return NormalizeScores(adjusted)
}
