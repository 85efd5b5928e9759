// Package rng provides the uniform random source the multilinear-map
// engine is built on: arbitrary-bit-width non-negative integers, uniform
// integers in [0, n), and the centered variant used throughout the
// encoding samplers.
package rng

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"

	"github.com/zeebo/blake3"
)

// Source is the injected randomness dependency. KeySetup and the encoding
// samplers never touch crypto/rand directly so that tests can substitute a
// deterministic source and production code can substitute a hardware RNG.
type Source interface {
	// Bits returns a uniform integer in [0, 2^k).
	Bits(k int) (*big.Int, error)
	// Range returns a uniform integer in [0, n).
	Range(n *big.Int) (*big.Int, error)
}

// reader wraps any io.Reader (crypto/rand.Reader by default) as a Source.
// crypto/rand.Reader is already safe for concurrent use, so reader needs no
// locking of its own.
type reader struct {
	r io.Reader
}

// New returns the default Source, backed by crypto/rand.Reader.
func New() Source {
	return reader{r: rand.Reader}
}

// FromReader wraps an arbitrary io.Reader as a Source, for tests that want a
// deterministic but still io.Reader-shaped stream.
func FromReader(r io.Reader) Source {
	return reader{r: r}
}

func (s reader) Bits(k int) (*big.Int, error) {
	if k <= 0 {
		return big.NewInt(0), nil
	}
	nbytes := (k + 7) / 8
	buf := make([]byte, nbytes)
	if _, err := io.ReadFull(s.r, buf); err != nil {
		return nil, fmt.Errorf("rng: sampling %d bits: %w", k, err)
	}
	v := new(big.Int).SetBytes(buf)
	// Mask off the excess high bits so the result is uniform in [0, 2^k).
	excess := nbytes*8 - k
	if excess > 0 {
		mask := new(big.Int).Lsh(big.NewInt(1), uint(k))
		mask.Sub(mask, big.NewInt(1))
		v.And(v, mask)
	}
	return v, nil
}

func (s reader) Range(n *big.Int) (*big.Int, error) {
	if n.Sign() <= 0 {
		return nil, fmt.Errorf("rng: Range requires n > 0, got %s", n.String())
	}
	return rand.Int(s.r, n)
}

// Centered draws a uniform integer in [0, 2^k) and re-centers it to
// [-2^(k-1), 2^(k-1)). k <= 1 is a degenerate case returning a uniform bit
// in {0, 1}, matching the source construction's generateRandom special case.
func Centered(src Source, k int) (*big.Int, error) {
	if k <= 1 {
		b, err := src.Bits(1)
		if err != nil {
			return nil, err
		}
		return b, nil
	}
	u, err := src.Bits(k)
	if err != nil {
		return nil, err
	}
	half := new(big.Int).Lsh(big.NewInt(1), uint(k-1))
	return u.Sub(u, half), nil
}

// Shard derives n independent sub-sources from a single master seed, one per
// worker slot, using blake3 as a domain-separated expansion function: each
// sub-source reads from an XOF keyed on (seed, index), so concurrent workers
// never draw from the same stream even though no coordination happens
// between them. This only matters for injected sources that are not already
// concurrency-safe; the default crypto/rand-backed Source needs no sharding
// and is safe to share across goroutines as-is.
func Shard(seed []byte, n int) []Source {
	out := make([]Source, n)
	for i := 0; i < n; i++ {
		h := blake3.New()
		h.Write(seed)
		var idx [8]byte
		putUint64(idx[:], uint64(i))
		h.Write(idx[:])
		xof := h.Digest()
		out[i] = FromReader(xof)
	}
	return out
}

func putUint64(b []byte, v uint64) {
	for i := 0; i < 8; i++ {
		b[i] = byte(v >> (8 * uint(i)))
	}
}
