package bias

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/biaslens/biaslens/internal/cache"
	"github.com/biaslens/biaslens/internal/models"
)

const validModelResponse = `{"summary":"A measured recap of the vote.",` +
	`"essay":"The article leans on procedural framing over outcomes.",` +
	`"top_signal":"Procedural framing",` +
	`"global_perspective":"Most regions would read this as a routine budget fight.",` +
	`"bias_scores":{"Left":0.2,"Center":0.5,"Right":0.3}}`

type fakeGateway struct {
	responses []string
	err       error
	calls     int
	prompts   []string
}

func (f *fakeGateway) Complete(_ context.Context, prompt string) (string, error) {
	f.calls++
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}

	idx := f.calls - 1
	if idx >= len(f.responses) {
		idx = len(f.responses) - 1
	}
	return f.responses[idx], nil
}

type failingStore struct{}

func (failingStore) Get(context.Context, string) (models.AnalysisResult, bool, error) {
	return models.AnalysisResult{}, false, errors.New("store down")
}

func (failingStore) Put(context.Context, string, models.AnalysisResult) error {
	return errors.New("store down")
}

func newTestAnalyzer(gw *fakeGateway) *Analyzer {
	return NewAnalyzer(gw, cache.NewMemoryStore(16, time.Minute))
}

func TestAnalyzeBuildsPromptAndParsesResult(t *testing.T) {
	gw := &fakeGateway{responses: []string{validModelResponse}}
	a := newTestAnalyzer(gw)

	got, err := a.Analyze(context.Background(), "The council voted on the budget.", models.SourceUnknown)
	require.NoError(t, err)
	require.Equal(t, "A measured recap of the vote.", got.Summary)
	require.Equal(t, "The article leans on procedural framing over outcomes.", got.Essay)
	require.Equal(t, "Procedural framing", got.TopSignal)
	require.Equal(t, "Most regions would read this as a routine budget fight.", got.GlobalPerspective)
	require.InDelta(t, 0.2, got.BiasScores.Left, 0.0005)
	require.InDelta(t, 0.5, got.BiasScores.Center, 0.0005)
	require.InDelta(t, 0.3, got.BiasScores.Right, 0.0005)

	require.Len(t, gw.prompts, 1)
	require.Contains(t, gw.prompts[0], "Return ONLY valid JSON.")
	require.Contains(t, gw.prompts[0], "- bias_scores must sum to 1")
	require.Contains(t, gw.prompts[0], "Article:\nThe council voted on the budget.")
}

func TestAnalyzeCachesSecondCall(t *testing.T) {
	gw := &fakeGateway{responses: []string{validModelResponse}}
	a := newTestAnalyzer(gw)
	text := "The council voted on the budget after a long session."

	first, err := a.Analyze(context.Background(), text, models.SourceCenter)
	require.NoError(t, err)

	second, err := a.Analyze(context.Background(), text, models.SourceCenter)
	require.NoError(t, err)

	require.Equal(t, 1, gw.calls)
	require.Equal(t, first, second)
}

func TestAnalyzeKeyIncludesSource(t *testing.T) {
	gw := &fakeGateway{responses: []string{validModelResponse}}
	a := newTestAnalyzer(gw)
	text := "Same article text."

	_, err := a.Analyze(context.Background(), text, models.SourceLeft)
	require.NoError(t, err)
	_, err = a.Analyze(context.Background(), text, models.SourceRight)
	require.NoError(t, err)

	require.Equal(t, 2, gw.calls)
}

func TestAnalyzeProseWrappedResponseNeedsNoRepair(t *testing.T) {
	gw := &fakeGateway{responses: []string{"Here you go!\n```json\n" + validModelResponse + "\n```"}}
	a := newTestAnalyzer(gw)

	got, err := a.Analyze(context.Background(), "text", models.SourceUnknown)
	require.NoError(t, err)
	require.Equal(t, "A measured recap of the vote.", got.Summary)
	require.Equal(t, 1, gw.calls)
}

func TestAnalyzeRepairPath(t *testing.T) {
	raw := "I analyzed the article and found it mostly centrist in tone."
	gw := &fakeGateway{responses: []string{raw, validModelResponse}}
	a := newTestAnalyzer(gw)

	got, err := a.Analyze(context.Background(), "text", models.SourceUnknown)
	require.NoError(t, err)
	require.Equal(t, "A measured recap of the vote.", got.Summary)

	require.Equal(t, 2, gw.calls)
	require.Equal(t, repairPromptPrefix+raw, gw.prompts[1])
	require.True(t, strings.HasPrefix(gw.prompts[1],
		"Convert this to valid JSON using the exact schema and no markdown:\n\n"))
}

func TestAnalyzeRepairStillInvalid(t *testing.T) {
	gw := &fakeGateway{responses: []string{"not json", "still not json"}}
	a := newTestAnalyzer(gw)

	_, err := a.Analyze(context.Background(), "text", models.SourceUnknown)
	require.Error(t, err)

	var formatErr *ResponseFormatError
	require.ErrorAs(t, err, &formatErr)
	require.Equal(t, 2, gw.calls)
}

func TestAnalyzeFieldDefaults(t *testing.T) {
	gw := &fakeGateway{responses: []string{`{"summary":null,"bias_scores":{"left":"not-a-number"}}`}}
	a := newTestAnalyzer(gw)

	got, err := a.Analyze(context.Background(), "text", models.SourceUnknown)
	require.NoError(t, err)
	require.Equal(t, DEFAULT_SUMMARY, got.Summary)
	require.Equal(t, DEFAULT_ESSAY, got.Essay)
	require.Equal(t, DEFAULT_TOP_SIGNAL, got.TopSignal)
	require.Equal(t, DEFAULT_GLOBAL_PERSPECTIVE, got.GlobalPerspective)
	require.Equal(t, models.DefaultBiasScores(), got.BiasScores)
}

func TestAnalyzeStringifiesOddNarratives(t *testing.T) {
	gw := &fakeGateway{responses: []string{
		`{"summary":42,"essay":"  padded essay  ","top_signal":true,"bias_scores":{"Left":1}}`,
	}}
	a := newTestAnalyzer(gw)

	got, err := a.Analyze(context.Background(), "text", models.SourceUnknown)
	require.NoError(t, err)
	require.Equal(t, "42", got.Summary)
	require.Equal(t, "padded essay", got.Essay)
	require.Equal(t, "true", got.TopSignal)
}

func TestAnalyzeTruncationBoundsCacheKey(t *testing.T) {
	gw := &fakeGateway{responses: []string{validModelResponse}}
	a := newTestAnalyzer(gw)

	base := strings.Repeat("a", ANALYSIS_MAX_INPUT_RUNES)
	_, err := a.Analyze(context.Background(), base+" tail one", models.SourceUnknown)
	require.NoError(t, err)
	require.NotContains(t, gw.prompts[0], "tail one")

	_, err = a.Analyze(context.Background(), base+" other tail", models.SourceUnknown)
	require.NoError(t, err)
	require.Equal(t, 1, gw.calls)
}

func TestAnalyzeBackfillsCachedGlobalPerspective(t *testing.T) {
	gw := &fakeGateway{}
	store := cache.NewMemoryStore(16, time.Minute)
	a := NewAnalyzer(gw, store)

	text := "Cached article body."
	seeded := models.AnalysisResult{
		Summary:    "Seeded summary.",
		Essay:      "Seeded essay.",
		TopSignal:  "Seeded signal",
		BiasScores: models.DefaultBiasScores(),
	}
	require.NoError(t, store.Put(context.Background(), "unknown|"+text, seeded))

	got, err := a.Analyze(context.Background(), text, models.SourceUnknown)
	require.NoError(t, err)
	require.Zero(t, gw.calls)
	require.Equal(t, "Seeded summary.", got.Summary)
	require.Equal(t, CACHED_GLOBAL_PERSPECTIVE, got.GlobalPerspective)
}

func TestAnalyzeCacheFailureDegrades(t *testing.T) {
	gw := &fakeGateway{responses: []string{validModelResponse}}
	a := NewAnalyzer(gw, failingStore{})

	got, err := a.Analyze(context.Background(), "text", models.SourceUnknown)
	require.NoError(t, err)
	require.Equal(t, "A measured recap of the vote.", got.Summary)
	require.Equal(t, 1, gw.calls)
}

func TestAnalyzeGatewayErrorPropagates(t *testing.T) {
	gw := &fakeGateway{err: errors.New("model down")}
	a := newTestAnalyzer(gw)

	_, err := a.Analyze(context.Background(), "text", models.SourceUnknown)
	require.ErrorContains(t, err, "model down")
}
