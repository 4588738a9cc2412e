package models

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestToPercent(t *testing.T) {
	tests := []struct {
		name  string
		input float64
		want  float64
	}{
		{name: "simple score", input: 0.333, want: 33.3},
		{name: "zero", input: 0, want: 0.0},
		{name: "full share", input: 1, want: 100.0},
		{name: "rounds to one decimal", input: 0.12345, want: 12.3},
		{name: "rounds up", input: 0.6789, want: 67.9},
		{name: "negative clamps to zero", input: -0.2, want: 0.0},
		{name: "above one clamps to hundred", input: 1.7, want: 100.0},
		{name: "nan yields zero", input: math.NaN(), want: 0.0},
		{name: "positive infinity yields zero", input: math.Inf(1), want: 0.0},
		{name: "negative infinity yields zero", input: math.Inf(-1), want: 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.InDelta(t, tt.want, ToPercent(tt.input), 1e-9)
		})
	}
}

func TestDefaultBiasScores(t *testing.T) {
	d := DefaultBiasScores()
	require.Equal(t, 0.333, d.Left)
	require.Equal(t, 0.334, d.Center)
	require.Equal(t, 0.333, d.Right)
	require.InDelta(t, 1.0, d.Left+d.Center+d.Right, 1e-9)
}
