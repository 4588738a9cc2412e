package pipeline

import (
	"context"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/biaslens/biaslens/internal/models"
	"github.com/biaslens/biaslens/internal/source"
	"github.com/biaslens/biaslens/internal/tone"
)

type Extractor interface {
	Extract(ctx context.Context, rawURL string) (models.ExtractionResult, error)
}

type Analyzer interface {
	Analyze(ctx context.Context, text string, source models.SourceLabel) (models.AnalysisResult, error)
}

// Pipeline runs one URL through extraction, source classification, bias
// analysis and tone enrichment. Both the sync API handler and the job
// worker drive it.
type Pipeline struct {
	extractor Extractor
	analyzer  Analyzer
}

func New(extractor Extractor, analyzer Analyzer) *Pipeline {
	return &Pipeline{
		extractor: extractor,
		analyzer:  analyzer,
	}
}

func (p *Pipeline) Run(ctx context.Context, rawURL, sessionID string) (models.AnalysisOutcome, error) {
	started := time.Now()

	extraction, err := p.extractor.Extract(ctx, rawURL)
	if err != nil {
		return models.AnalysisOutcome{}, err
	}

	label := source.Classify(extraction.NormalizedURL)

	result, err := p.analyzer.Analyze(ctx, extraction.Text, label)
	if err != nil {
		return models.AnalysisOutcome{}, err
	}

	outcome := models.AnalysisOutcome{
		AnalysisID:        uuid.NewString(),
		Status:            "done",
		InputURL:          rawURL,
		NormalizedURL:     extraction.NormalizedURL,
		ExtractionKind:    extraction.ContentKind,
		ExtractedChars:    utf8.RuneCountInString(extraction.Text),
		Source:            label,
		Summary:           result.Summary,
		Essay:             result.Essay,
		TopSignal:         result.TopSignal,
		GlobalPerspective: result.GlobalPerspective,
		BiasScores:        result.BiasScores,
		LeftPct:           models.ToPercent(result.BiasScores.Left),
		CenterPct:         models.ToPercent(result.BiasScores.Center),
		RightPct:          models.ToPercent(result.BiasScores.Right),
	}

	// Tone is a bonus reading over the model narrative; a missing label
	// never fails the analysis.
	enrichment := tone.Analyze(result.Summary + "\n\n" + result.Essay)
	if enrichment.Label == "" {
		slog.Warn("[Pipeline] Tone enrichment produced no reading",
			slog.String("session_id", sessionID),
			slog.String("url", rawURL))
	} else {
		outcome.ToneLabel = enrichment.Label
		outcome.ToneScore = enrichment.Score
	}

	outcome.DurationMS = time.Since(started).Milliseconds()

	slog.Info("[Pipeline] Analysis complete",
		slog.String("session_id", sessionID),
		slog.String("source", string(outcome.Source)),
		slog.String("kind", string(outcome.ExtractionKind)),
		slog.Int("chars", outcome.ExtractedChars),
		slog.Int64("duration_ms", outcome.DurationMS))

	return outcome, nil
}
