package tone

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRemoveLinks(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "markdown link keeps text",
			input: "Read [the full report](https://example.com/report) today.",
			want:  "Read the full report today.",
		},
		{
			name:  "bare url removed",
			input: "Details at https://example.com/details now.",
			want:  "Details at  now.",
		},
		{
			name:  "www url removed",
			input: "See www.example.com for more.",
			want:  "See  for more.",
		},
		{
			name:  "plain text untouched",
			input: "Nothing to strip here.",
			want:  "Nothing to strip here.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, RemoveLinks(tt.input))
		})
	}
}

func TestAnalyzeLabels(t *testing.T) {
	positive := Analyze("This is wonderful, amazing, excellent news and everyone is thrilled.")
	require.Equal(t, "positive", positive.Label)
	require.GreaterOrEqual(t, positive.Score, TONE_LABEL_THRESHOLD)

	negative := Analyze("This is terrible, horrible, disastrous news and everyone is furious.")
	require.Equal(t, "negative", negative.Label)
	require.LessOrEqual(t, negative.Score, -TONE_LABEL_THRESHOLD)

	neutral := Analyze("The meeting is scheduled for Tuesday at noon in the main hall.")
	require.Equal(t, "neutral", neutral.Label)
}

func TestAnalyzeFlattensMarkdown(t *testing.T) {
	got := Analyze("**Great** [news](https://example.com) for the whole neighborhood!")
	require.Equal(t, "positive", got.Label)
}

func TestAnalyzeEmptyInput(t *testing.T) {
	require.Equal(t, Enrichment{}, Analyze(""))
	require.Equal(t, Enrichment{}, Analyze("   "))
}
