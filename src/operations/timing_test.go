package operations

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRunTimingReportsModulusAndNoise(t *testing.T) {
	result, err := RunTiming(TimingOptions{Instantiation: "Toy"})
	require.NoError(t, err)
	require.Greater(t, result.ModulusBits, 0)
	require.InDelta(t, float64(result.ModulusBits), result.ModulusEntropy, 1.0)
	require.Equal(t, 8, result.NoiseAfterY.SampleCount)
	require.NotEmpty(t, result.SessionKey)
	require.Len(t, result.Projected, 4)
	for _, proj := range result.Projected {
		require.NotEmpty(t, proj.Instantiation)
	}
}

func TestRunTimingRejectsUnknownInstantiation(t *testing.T) {
	_, err := RunTiming(TimingOptions{Instantiation: "Nonexistent"})
	require.Error(t, err)
}
