package diagnostics

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSummarizeNoise(t *testing.T) {
	stats, err := SummarizeNoise([]int{10, 20, 30, 40})
	require.NoError(t, err)
	require.Equal(t, 10, stats.Min)
	require.Equal(t, 40, stats.Max)
	require.Equal(t, 25.0, stats.Mean)
	require.Equal(t, 4, stats.SampleCount)
	require.Greater(t, stats.StdDev, 0.0)
}

func TestSummarizeNoiseRejectsEmptyInput(t *testing.T) {
	_, err := SummarizeNoise(nil)
	require.Error(t, err)
}

func TestModulusEntropyBitsMatchesBitLen(t *testing.T) {
	x0 := new(big.Int).Lsh(big.NewInt(1), 1000)
	x0.Sub(x0, big.NewInt(1)) // 2^1000 - 1, exactly 1000 bits

	got := ModulusEntropyBits(x0)
	require.InDelta(t, 1000.0, got, 0.01)
}
