package mm

import "math/big"

// ZeroTest lifts the value c of the given degree to level Kappa by
// multiplying by y exactly Kappa-degree times, multiplies by the
// zero-tester v, and returns the centered representative. It panics if
// degree exceeds Kappa (spec.md §4.5 / §4.7).
func (k *Key) ZeroTest(c *big.Int, degree int) *big.Int {
	if degree > k.Params.Kappa {
		panic("mm: ZeroTest requires degree <= Kappa")
	}
	w := modNear(new(big.Int).Mul(c, k.public.v), k.public.x0)
	for i := 0; i < k.Params.Kappa-degree; i++ {
		w = modNear(new(big.Int).Mul(w, k.public.y), k.public.x0)
	}
	return w
}

// IsZero reports whether c is (very likely) an encoding of the all-zero
// plaintext: its zero-test magnitude must fall short of bitlen(x0)-Bound.
func (k *Key) IsZero(c Encoding) bool {
	w := k.ZeroTest(c.c, c.d)
	return k.NbBits(w) < k.NbBits(k.public.x0)-k.Params.Bound
}

// DeriveSessionKey extracts the top SessionKeyBits bits of c's zero-test
// value. It panics unless c.Degree() == Kappa (spec.md §4.5 / §4.7): every
// encoding of the same plaintext at level Kappa shares these top bits, so
// all parties in a (Kappa+1)-user multipartite exchange agree on the same
// session key once every user has multiplied in everyone else's
// contribution.
func (k *Key) DeriveSessionKey(c Encoding) *big.Int {
	if c.d != k.Params.Kappa {
		panic("mm: DeriveSessionKey requires degree == Kappa")
	}
	w := k.ZeroTest(c.c, c.d)
	shift := uint(k.NbBits(k.public.x0) - k.Params.SessionKeyBits)
	return new(big.Int).Rsh(w, shift)
}
