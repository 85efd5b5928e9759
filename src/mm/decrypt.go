package mm

import "math/big"

// liftToLevel0 multiplies c's underlying value by z exactly degree times,
// undoing the zinv multiplications EncodeWithSK applied, so that each slot
// can be recovered by reduction mod p_i / mod g_i.
func (k *Key) liftToLevel0(c *big.Int, degree int) *big.Int {
	v := new(big.Int).Set(c)
	for i := 0; i < degree; i++ {
		v = mod(new(big.Int).Mul(v, k.secret.z), k.public.x0)
	}
	return v
}

// Decrypt recovers the N-slot plaintext vector underlying an encoding, using
// the secret key. This is a diagnostic primitive (spec.md §4.6): production
// use of the scheme never decrypts, it only adds, multiplies, rerandomizes
// and finally derives a session key.
func (k *Key) Decrypt(c Encoding) []*big.Int {
	v := k.liftToLevel0(c.c, c.d)
	m := make([]*big.Int, k.Params.N)
	for i := 0; i < k.Params.N; i++ {
		m[i] = modNear(modNear(v, k.secret.p[i]), k.secret.g[i])
	}
	return m
}

// Noise returns the bit-length of the largest per-slot noise term
// quotNear(modNear(v, p_i), g_i), the diagnostic used to watch the noise
// budget against Eta-Alpha (the decryption-correctness bound, spec.md §8
// S4).
func (k *Key) Noise(c Encoding) int {
	v := k.liftToLevel0(c.c, c.d)
	max := 0
	for i := 0; i < k.Params.N; i++ {
		noise := quotNear(modNear(v, k.secret.p[i]), k.secret.g[i])
		if n := noise.BitLen(); n > max {
			max = n
		}
	}
	return max
}
