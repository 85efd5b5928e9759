// Package diagnostics reports noise-budget and modulus-entropy figures for
// the demo drivers and tests. Nothing here feeds back into the core
// arithmetic: these are purely human-readable / test-assertion helpers.
package diagnostics

import (
	"fmt"
	"math/big"

	"github.com/ALTree/bigfloat"
	"github.com/montanaflynn/stats"
)

// NoiseStats summarizes the bit-length of a batch of noise measurements.
type NoiseStats struct {
	Min, Max     int
	Mean, StdDev float64
	SampleCount  int
}

// SummarizeNoise reduces a batch of per-encoding noise bit-lengths (as
// returned by repeated calls to a Key's Noise method) to min/mean/max/stddev,
// so callers can watch the noise budget trend across many samples instead
// of eyeballing one encoding at a time.
func SummarizeNoise(bits []int) (NoiseStats, error) {
	if len(bits) == 0 {
		return NoiseStats{}, fmt.Errorf("diagnostics: SummarizeNoise requires at least one sample")
	}
	data := make(stats.Float64Data, len(bits))
	min, max := bits[0], bits[0]
	for i, b := range bits {
		data[i] = float64(b)
		if b < min {
			min = b
		}
		if b > max {
			max = b
		}
	}
	mean, err := data.Mean()
	if err != nil {
		return NoiseStats{}, fmt.Errorf("diagnostics: computing mean: %w", err)
	}
	std, err := data.StandardDeviation()
	if err != nil {
		return NoiseStats{}, fmt.Errorf("diagnostics: computing stddev: %w", err)
	}
	return NoiseStats{Min: min, Max: max, Mean: mean, StdDev: std, SampleCount: len(bits)}, nil
}

// ModulusEntropyBits computes log2(x0) with arbitrary-precision floats. It
// exists purely for the security-margin line the demo drivers print: the
// integer approximation x0.BitLen() is already exact to within one bit, but
// this gives a human a precise fractional value (e.g. "1,838.37 bits")
// rather than a ceiling.
func ModulusEntropyBits(x0 *big.Int) float64 {
	f := new(big.Float).SetPrec(x0.BitLen() + 64).SetInt(x0)
	lg2 := bigfloat.Log(f)
	lg2.Quo(lg2, bigfloat.Log(big.NewFloat(2)))
	v, _ := lg2.Float64()
	return v
}
