package bias

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/biaslens/biaslens/internal/models"
)

func requireDistribution(t *testing.T, s models.BiasScores) {
	t.Helper()
	require.GreaterOrEqual(t, s.Left, 0.0)
	require.GreaterOrEqual(t, s.Center, 0.0)
	require.GreaterOrEqual(t, s.Right, 0.0)
	require.InDelta(t, 1.0, s.Left+s.Center+s.Right, 0.003)
}

func TestNormalizeScoresSumsToOne(t *testing.T) {
	inputs := []models.BiasScores{
		{Left: 2, Center: 1, Right: 1},
		{Left: 0.5, Center: 0.3, Right: 0.2},
		{Left: 10, Center: 0, Right: 0},
		{Left: 0.1, Center: 0.1, Right: 0.1},
		{Left: -0.4, Center: 0.7, Right: 0.7},
	}

	for _, in := range inputs {
		requireDistribution(t, NormalizeScores(in))
	}
}

func TestNormalizeScoresNonPositiveSum(t *testing.T) {
	require.Equal(t, models.DefaultBiasScores(), NormalizeScores(models.BiasScores{}))
	require.Equal(t, models.DefaultBiasScores(),
		NormalizeScores(models.BiasScores{Left: -1, Center: -2, Right: -0.5}))
}

func TestNormalizeScoresIdempotent(t *testing.T) {
	inputs := []models.BiasScores{
		{Left: 3, Center: 2, Right: 1},
		{Left: 0.333, Center: 0.334, Right: 0.333},
		{Left: 0.7, Center: 0.2, Right: 0.1},
	}

	for _, in := range inputs {
		once := NormalizeScores(in)
		twice := NormalizeScores(once)
		require.InDelta(t, once.Left, twice.Left, 0.003)
		require.InDelta(t, once.Center, twice.Center, 0.003)
		require.InDelta(t, once.Right, twice.Right, 0.003)
	}
}

func TestCoerceScores(t *testing.T) {
	t.Run("synonym keys", func(t *testing.T) {
		got := CoerceScores(map[string]any{"liberal": 0.6, "neutral": 0.2, "conservative": 0.2})
		require.InDelta(t, 0.6, got.Left, 0.0005)
		require.InDelta(t, 0.2, got.Center, 0.0005)
		require.InDelta(t, 0.2, got.Right, 0.0005)
	})

	t.Run("case insensitive keys with whitespace and numeric strings", func(t *testing.T) {
		got := CoerceScores(map[string]any{" LEFT ": "0.5", "Center": 0.25, "right": "0.25"})
		require.InDelta(t, 0.5, got.Left, 0.0005)
		require.InDelta(t, 0.25, got.Center, 0.0005)
		require.InDelta(t, 0.25, got.Right, 0.0005)
	})

	t.Run("first matching key wins", func(t *testing.T) {
		got := CoerceScores(map[string]any{"left": 0.2, "liberal": 0.8, "center": 0.4, "right": 0.4})
		require.InDelta(t, 0.2, got.Left, 0.0005)
		require.InDelta(t, 0.4, got.Center, 0.0005)
		require.InDelta(t, 0.4, got.Right, 0.0005)
	})

	t.Run("unparseable value counts as zero", func(t *testing.T) {
		got := CoerceScores(map[string]any{"left": "lots", "center": 1.0, "right": 1.0})
		require.Zero(t, got.Left)
		require.InDelta(t, 0.5, got.Center, 0.0005)
		require.InDelta(t, 0.5, got.Right, 0.0005)
	})

	t.Run("non object input", func(t *testing.T) {
		require.Equal(t, models.DefaultBiasScores(), CoerceScores(nil))
		require.Equal(t, models.DefaultBiasScores(), CoerceScores("0.5"))
		require.Equal(t, models.DefaultBiasScores(), CoerceScores([]any{0.5, 0.3, 0.2}))
	})

	t.Run("empty object degrades to default", func(t *testing.T) {
		require.Equal(t, models.DefaultBiasScores(), CoerceScores(map[string]any{}))
	})

	t.Run("single side", func(t *testing.T) {
		got := CoerceScores(map[string]any{"left": 3.0})
		require.InDelta(t, 1.0, got.Left, 0.0005)
		require.Zero(t, got.Center)
		require.Zero(t, got.Right)
	})
}

func TestCalibrate(t *testing.T) {
	base := models.DefaultBiasScores()

	t.Run("right source boosts right over unknown", func(t *testing.T) {
		right := Calibrate(base, models.SourceRight)
		unknown := Calibrate(base, models.SourceUnknown)
		require.Greater(t, right.Right, unknown.Right)
		requireDistribution(t, right)
	})

	t.Run("right source values", func(t *testing.T) {
		got := Calibrate(base, models.SourceRight)
		require.InDelta(t, 0.240, got.Left, 0.0005)
		require.InDelta(t, 0.311, got.Center, 0.0005)
		require.InDelta(t, 0.449, got.Right, 0.0005)
	})

	t.Run("left source mirrors right", func(t *testing.T) {
		got := Calibrate(base, models.SourceLeft)
		require.InDelta(t, 0.449, got.Left, 0.0005)
		require.InDelta(t, 0.311, got.Center, 0.0005)
		require.InDelta(t, 0.240, got.Right, 0.0005)
	})

	t.Run("center source", func(t *testing.T) {
		got := Calibrate(base, models.SourceCenter)
		require.InDelta(t, 0.290, got.Left, 0.0005)
		require.InDelta(t, 0.421, got.Center, 0.0005)
		require.InDelta(t, 0.290, got.Right, 0.0005)
	})

	t.Run("unknown source untouched", func(t *testing.T) {
		require.Equal(t, base, Calibrate(base, models.SourceUnknown))
	})

	t.Run("negative adjustment clamps", func(t *testing.T) {
		got := Calibrate(models.BiasScores{Left: 0.9, Center: 0.05, Right: 0.05}, models.SourceLeft)
		require.Zero(t, got.Right)
		requireDistribution(t, got)
	})
}
