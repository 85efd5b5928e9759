package mm

import (
	"math/big"

	"cltmm/src/rng"
)

// Rerandomize adds Theta random products drawn from the varpi pool to a
// level-1 encoding, synthesizing a near-uniform level-1 encoding of the
// same plaintext (spec.md §4.4). It panics if c is not degree 1 (a
// programmer-error contract violation per spec.md §4.7).
//
// The Delta x Delta pseudo-tensor decomposition turns a Theta-of-Delta^2
// subset sum over an exponentially large pool into Theta*2 index draws: the
// two varpi halves are independent level-0 zero encodings and level-1
// alpha-scale encodings, whose product is again a level-1 encoding of a
// small random element.
func (k *Key) Rerandomize(c Encoding, src rng.Source) (Encoding, error) {
	if c.d != 1 {
		panic("mm: Rerandomize requires degree 1")
	}

	indices, err := k.distinctRerandIndices(src)
	if err != nil {
		return Encoding{}, err
	}

	cval := new(big.Int).Set(c.c)
	delta := k.Params.Delta
	for _, idx := range indices {
		row := k.public.varpi[idx%delta]
		col := k.public.varpi[delta+idx/delta]
		term := new(big.Int).Mul(row, col)
		cval.Add(cval, term)
	}

	return Encoding{key: k, c: k.reduce(cval), d: 1}, nil
}

// distinctRerandIndices draws Theta distinct indices uniformly without
// replacement from [0, Delta^2) via rejection sampling: spec.md's Open
// Questions note that the reference implementation instead redraws a
// colliding index by decrementing the outer loop counter, which has the
// same distribution but is brittle for small Delta^2. We use explicit
// rejection sampling instead, as the spec recommends.
func (k *Key) distinctRerandIndices(src rng.Source) ([]int, error) {
	theta := k.Params.Theta
	limit := big.NewInt(int64(k.Params.Delta) * int64(k.Params.Delta))

	seen := make(map[int]bool, theta)
	out := make([]int, 0, theta)
	for len(out) < theta {
		v, err := src.Range(limit)
		if err != nil {
			return nil, err
		}
		idx := int(v.Int64())
		if seen[idx] {
			continue
		}
		seen[idx] = true
		out = append(out, idx)
	}
	return out, nil
}
