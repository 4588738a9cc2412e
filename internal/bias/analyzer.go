package bias

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/biaslens/biaslens/internal/cache"
	"github.com/biaslens/biaslens/internal/models"
)

// ANALYSIS_MAX_INPUT_RUNES caps how much article text reaches the model;
// it also bounds the cache key.
const ANALYSIS_MAX_INPUT_RUNES = 6500

const (
	DEFAULT_SUMMARY            = "No summary available."
	DEFAULT_ESSAY              = "No detailed reasoning available."
	DEFAULT_TOP_SIGNAL         = "No dominant signal detected."
	DEFAULT_GLOBAL_PERSPECTIVE = "Global perspective was not generated for this article."
	CACHED_GLOBAL_PERSPECTIVE  = "Global perspective unavailable for this cached result."
)

// Completer is the slice of the model gateway the analyzer needs.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Analyzer runs the bias pipeline: cache lookup, prompt, parse with one
// repair pass, score coercion and source calibration.
type Analyzer struct {
	gateway Completer
	cache   cache.Store
}

func NewAnalyzer(gw Completer, store cache.Store) *Analyzer {
	return &Analyzer{gateway: gw, cache: store}
}

// Analyze produces the bias assessment for the text, serving repeated
// (source, text) pairs from the cache. Model failures surface as the
// gateway's error; unparseable output after one repair call surfaces as
// a ResponseFormatError.
func (a *Analyzer) Analyze(ctx context.Context, text string, source models.SourceLabel) (models.AnalysisResult, error) {
	text = truncateRunes(text, ANALYSIS_MAX_INPUT_RUNES)
	key := string(source) + "|" + text

	if cached, ok := a.lookup(ctx, key); ok {
		return cached, nil
	}

	raw, err := a.gateway.Complete(ctx, analysisPrompt(text))
	if err != nil {
		return models.AnalysisResult{}, err
	}

	payload, err := ParseModelJSON(raw)
	if err != nil {
		slog.Warn("[Analyzer] Model response was not JSON, requesting repair",
			slog.String("error", err.Error()))

		repaired, repairErr := a.gateway.Complete(ctx, repairPrompt(raw))
		if repairErr != nil {
			return models.AnalysisResult{}, repairErr
		}
		payload, err = ParseModelJSON(repaired)
		if err != nil {
			return models.AnalysisResult{}, &ResponseFormatError{Err: err}
		}
	}

	result := models.AnalysisResult{
		Summary:           narrativeField(payload, "summary", DEFAULT_SUMMARY),
		Essay:             narrativeField(payload, "essay", DEFAULT_ESSAY),
		TopSignal:         narrativeField(payload, "top_signal", DEFAULT_TOP_SIGNAL),
		GlobalPerspective: narrativeField(payload, "global_perspective", DEFAULT_GLOBAL_PERSPECTIVE),
		BiasScores:        Calibrate(CoerceScores(payload["bias_scores"]), source),
	}

	if err := a.cache.Put(ctx, key, result); err != nil {
		slog.Warn("[Analyzer] Cache write failed", slog.String("error", err.Error()))
	}
	return result, nil
}

// lookup treats cache errors as misses. Entries written before the
// global_perspective field existed get a stand-in value.
func (a *Analyzer) lookup(ctx context.Context, key string) (models.AnalysisResult, bool) {
	cached, ok, err := a.cache.Get(ctx, key)
	if err != nil {
		slog.Warn("[Analyzer] Cache read failed, treating as miss",
			slog.String("error", err.Error()))
		return models.AnalysisResult{}, false
	}
	if !ok {
		return models.AnalysisResult{}, false
	}

	if cached.GlobalPerspective == "" {
		cached.GlobalPerspective = CACHED_GLOBAL_PERSPECTIVE
	}
	return cached, true
}

// narrativeField mirrors a permissive map get: absent or null values
// fall back, present values are stringified and trimmed.
func narrativeField(payload map[string]any, key, fallback string) string {
	v, ok := payload[key]
	if !ok || v == nil {
		return fallback
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(fmt.Sprint(v))
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
