package concurrency

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRangeVisitsEveryIndexExactlyOnce(t *testing.T) {
	const n = 200
	var counts [n]int32

	err := Range(n, 8, func(i int) error {
		atomic.AddInt32(&counts[i], 1)
		return nil
	})
	require.NoError(t, err)

	for i, c := range counts {
		require.Equal(t, int32(1), c, "index %d visited %d times", i, c)
	}
}

func TestRangePropagatesFirstError(t *testing.T) {
	err := Range(50, 4, func(i int) error {
		if i == 10 {
			return fmt.Errorf("boom at %d", i)
		}
		return nil
	})
	require.Error(t, err)
}

func TestRangeHandlesZeroAndSingleWorker(t *testing.T) {
	require.NoError(t, Range(0, 4, func(i int) error {
		t.Fatalf("f should never be called for n=0")
		return nil
	}))

	var total int32
	require.NoError(t, Range(10, 1, func(i int) error {
		atomic.AddInt32(&total, 1)
		return nil
	}))
	require.Equal(t, int32(10), total)
}

func TestAccumulatorFoldsConcurrently(t *testing.T) {
	acc := NewAccumulator(0, func(a, b int) int { return a + b })
	err := Range(1000, 16, func(i int) error {
		acc.Add(1)
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, 1000, acc.Value())
}

func TestWorkersReturnsPositive(t *testing.T) {
	require.Greater(t, Workers(), 0)
}
