package mm

import (
	"fmt"
	"math/big"

	"cltmm/src/rng"
)

// encodeWithSKVector implements spec.md §4.2's EncodeWithSK(m[0..N), k, d):
//
//	res = sum_i (m[i] + g[i] * centered(k)) * crtCoeff[i]   mod x0
//	repeat d times: res = res * zinv mod x0
func (k *Key) encodeWithSKVector(m []*big.Int, nbBits, degree int, src rng.Source) (*big.Int, error) {
	if len(m) != k.Params.N {
		return nil, fmt.Errorf("mm: EncodeWithSK: message vector has %d slots, want %d", len(m), k.Params.N)
	}
	res := big.NewInt(0)
	for i := 0; i < k.Params.N; i++ {
		r, err := rng.Centered(src, nbBits)
		if err != nil {
			return nil, err
		}
		term := new(big.Int).Mul(k.secret.g[i], r)
		term.Add(term, m[i])
		term.Mul(term, k.secret.crtCoeff[i])
		res.Add(res, term)
	}
	res = mod(res, k.public.x0)
	for j := 0; j < degree; j++ {
		res = mod(new(big.Int).Mul(res, k.secret.zinv), k.public.x0)
	}
	return res, nil
}

// encodeWithSKScalar implements spec.md §4.2's scalar overload: m <= 1 is
// embedded directly into every slot, m > 1 is reinterpreted as "draw a
// fresh centered m-bit random per slot" (the ϖ-pool's second half relies on
// the m == alpha branch to synthesize level-1 encodings of small randoms).
func (k *Key) encodeWithSKScalar(m uint64, nbBits, degree int, src rng.Source) (*big.Int, error) {
	res := big.NewInt(0)
	for i := 0; i < k.Params.N; i++ {
		var input *big.Int
		r, err := rng.Centered(src, nbBits)
		if err != nil {
			return nil, err
		}
		noise := new(big.Int).Mul(k.secret.g[i], r)

		if m <= 1 {
			input = new(big.Int).Add(big.NewInt(int64(m)), noise)
		} else {
			slot, err := rng.Centered(src, int(m))
			if err != nil {
				return nil, err
			}
			input = new(big.Int).Add(slot, noise)
		}
		input.Mul(input, k.secret.crtCoeff[i])
		res.Add(res, input)
	}
	res = mod(res, k.public.x0)
	for j := 0; j < degree; j++ {
		res = mod(new(big.Int).Mul(res, k.secret.zinv), k.public.x0)
	}
	return res, nil
}

// EncodePublic returns the level-0 encoding of the bit vector b via the
// public subset-sum xp_0..xp_{l-1}: sum_{i : b[i]} xp[i] mod x0.
func (k *Key) EncodePublic(b []bool) (Encoding, error) {
	if len(b) != k.Params.Ell {
		return Encoding{}, fmt.Errorf("mm: EncodePublic: bit vector has %d entries, want %d", len(b), k.Params.Ell)
	}
	c := big.NewInt(0)
	for i, bit := range b {
		if bit {
			c.Add(c, k.public.xp[i])
		}
	}
	return Encoding{key: k, c: k.reduce(c), d: 0}, nil
}

// Sample draws a fresh random plaintext vector (a centered Alpha-bit value
// per slot) and returns its secret-key encoding at the given degree, noised
// at Params.Rho. This is the "random plaintext at level k" primitive named
// in spec.md §6's programmatic API.
func (k *Key) Sample(degree int, src rng.Source) (Encoding, error) {
	m := make([]*big.Int, k.Params.N)
	for i := range m {
		v, err := rng.Centered(src, k.Params.Alpha)
		if err != nil {
			return Encoding{}, err
		}
		m[i] = v
	}
	c, err := k.encodeWithSKVector(m, k.Params.Rho, degree, src)
	if err != nil {
		return Encoding{}, err
	}
	return Encoding{key: k, c: c, d: degree}, nil
}

// EncodeSecret encodes an arbitrary plaintext vector m (one value per CRT
// slot, |m[i]| < g_i/2) at the given degree and noise bitsize. It is the
// exported form of the vector encoder that Sample and the xp generation
// call directly; varpi and y are built with the scalar encoder instead.
func (k *Key) EncodeSecret(m []*big.Int, nbBits, degree int, src rng.Source) (Encoding, error) {
	c, err := k.encodeWithSKVector(m, nbBits, degree, src)
	if err != nil {
		return Encoding{}, err
	}
	return Encoding{key: k, c: c, d: degree}, nil
}

// Y returns the public level-1 encoding of the all-ones message.
func (k *Key) Y() Encoding {
	return Encoding{key: k, c: new(big.Int).Set(k.public.y), d: 1}
}
