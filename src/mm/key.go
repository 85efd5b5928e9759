// Package mm implements a CLT-style graded encoding scheme (a multilinear
// map over the integers) and the arithmetic needed to drive it through a
// multipartite non-interactive Diffie-Hellman key exchange: parameter
// generation, encoding arithmetic with degree tracking, rerandomization,
// and the zero-test/extraction primitive that lets every party derive the
// same session key.
//
// The scheme is a reference implementation of the CLT13 construction. It
// is not hardened against the zeroizing attacks known to break CLT-style
// multilinear maps, and it does not attempt to be: that is an accepted
// property of the construction, not a defect of this package. Do not use
// varpi (the rerandomization pool) or any secret-key value outside of a
// single trusted Key.
package mm

import (
	"fmt"
	"math/big"

	"cltmm/src/concurrency"
	"cltmm/src/params"
	"cltmm/src/rng"
)

// SecretState holds every value that must never leave the Key that owns it.
type SecretState struct {
	p        []*big.Int // the N secret primes (or products of primes)
	crtCoeff []*big.Int // CRT lift coefficients, crtCoeff[i] == 1 mod p[i], == 0 mod p[j]
	g        []*big.Int // the N plaintext-slot moduli (alpha-bit primes)
	z        *big.Int   // the level-shifting secret
	zinv     *big.Int   // z^-1 mod x0
	zkappa   *big.Int   // z^kappa mod x0
}

// PublicState holds every value that is safe to share with other parties.
type PublicState struct {
	x0 *big.Int   // the top-level modulus, prod(p_i)
	xp []*big.Int // level-0 public encodings of A's rows
	y  *big.Int   // level-1 encoding of the all-ones message
	v  *big.Int   // the zero-tester

	// varpi is the rerandomization pool: the first Delta entries are
	// level-0 encodings of zero, the second Delta are level-1 encodings of
	// a fresh centered alpha-bit value. Exposing varpi to an untrusted
	// party breaks the scheme (spec.md §9) -- treat it as secret in
	// practice even though the construction calls it public.
	varpi []*big.Int

	// A is the l x N matrix of alpha-bit entries behind xp. Kept for
	// audit/re-encoding; an implementation may also choose to treat it as
	// secret.
	A []*big.Int // row-major, row i occupies A[i*N : (i+1)*N]
}

// Key owns both the secret and public state produced by KeySetup. Encodings
// hold a non-owning reference to their Key: they stay usable for as long as
// the Key is reachable, and become useless (not unsafe) once it is not.
type Key struct {
	Params params.Params

	secret SecretState
	public PublicState
}

// ProgressFunc is invoked after each named setup stage completes, mirroring
// the teacher's progress-callback convention (see src/crypto/tlp.go's
// SolvePuzzle). A nil callback disables reporting.
type ProgressFunc func(stage string)

// NewKey runs KeySetup: it generates the secret primes, the CRT
// coefficients, the plaintext-slot moduli, the level-shifting secret, the
// public encodings, the rerandomization pool and the zero-tester. The
// N-slot (and l-slot, Delta-slot) loops run concurrently across
// concurrency.Workers() goroutines; accumulation into x0 and v is
// serialized. Because src need not be safe for concurrent draws (spec.md
// §5), NewKey never hands the same src to two goroutines: it draws one
// master seed from src up front and, for every parallel loop, shards that
// seed per-index with rng.Shard so index i always reads from the same
// independent stream regardless of which goroutine happens to process it.
// progress may be nil.
func NewKey(p params.Params, src rng.Source, progress ProgressFunc) (*Key, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	report := func(stage string) {
		if progress != nil {
			progress(stage)
		}
	}
	workers := concurrency.Workers()

	masterSeedBits, err := src.Bits(256)
	if err != nil {
		return nil, fmt.Errorf("mm: deriving per-slot seed: %w", err)
	}
	masterSeed := masterSeedBits.Bytes()

	k := &Key{Params: p}

	// 1. p_i's and x0.
	pp := make([]*big.Int, p.N)
	x0Acc := concurrency.NewAccumulator(big.NewInt(1), func(acc, next *big.Int) *big.Int {
		return acc.Mul(acc, next)
	})
	pSrcs := loopSources(masterSeed, "p_i", p.N)
	err = concurrency.Range(p.N, workers, func(i int) error {
		pi, err := generateBlockPrime(p.Eta, p.Etp, pSrcs[i])
		if err != nil {
			return err
		}
		pp[i] = pi
		x0Acc.Add(pi)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("mm: generating p_i: %w", err)
	}
	k.secret.p = pp
	k.public.x0 = x0Acc.Value()
	report("p_i and x0")

	// 2. CRT coefficients: crtCoeff[i] = Q * (Q^-1 mod p_i), Q = x0/p_i.
	crt := make([]*big.Int, p.N)
	err = concurrency.Range(p.N, workers, func(i int) error {
		q := new(big.Int).Div(k.public.x0, pp[i])
		qinv := new(big.Int).ModInverse(q, pp[i])
		if qinv == nil {
			return fmt.Errorf("mm: Q not invertible mod p[%d] (x0 not squarefree?)", i)
		}
		crt[i] = new(big.Int).Mul(q, qinv)
		return nil
	})
	if err != nil {
		return nil, err
	}
	k.secret.crtCoeff = crt
	report("crtCoeff_i")

	// 3. g_i's: alpha-bit primes.
	gg := make([]*big.Int, p.N)
	gSrcs := loopSources(masterSeed, "g_i", p.N)
	err = concurrency.Range(p.N, workers, func(i int) error {
		gUnif, err := gSrcs[i].Bits(p.Alpha)
		if err != nil {
			return err
		}
		gg[i] = nextPrime(gUnif)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("mm: generating g_i: %w", err)
	}
	k.secret.g = gg
	report("g_i")

	// 4. z, zinv: resample until z is invertible mod x0.
	var z, zinv *big.Int
	for {
		var err error
		z, err = src.Range(k.public.x0)
		if err != nil {
			return nil, fmt.Errorf("mm: sampling z: %w", err)
		}
		zinv = new(big.Int).ModInverse(z, k.public.x0)
		if zinv != nil {
			break
		}
	}
	k.secret.z = z
	k.secret.zinv = zinv
	report("z and zinv")

	// 5. A: l x N centered alpha-bit entries.
	A := make([]*big.Int, p.Ell*p.N)
	for i := 0; i < p.Ell; i++ {
		for j := 0; j < p.N; j++ {
			a, err := rng.Centered(src, p.Alpha)
			if err != nil {
				return nil, fmt.Errorf("mm: generating A: %w", err)
			}
			A[i*p.N+j] = a
		}
	}
	k.public.A = A
	report("A")

	// 6. xp_i = EncodeWithSK(A[i,:], rho, 0), in parallel over rows.
	xp := make([]*big.Int, p.Ell)
	xpSrcs := loopSources(masterSeed, "xp_i", p.Ell)
	err = concurrency.Range(p.Ell, workers, func(i int) error {
		v, err := k.encodeWithSKVector(A[i*p.N:(i+1)*p.N], p.Rho, 0, xpSrcs[i])
		if err != nil {
			return err
		}
		xp[i] = v
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("mm: generating xp_i: %w", err)
	}
	k.public.xp = xp
	report("xp_i")

	// 7. varpi: Delta level-0 encodings of 0, Delta level-1 encodings of a
	// fresh centered alpha-bit value per slot.
	varpi := make([]*big.Int, 2*p.Delta)
	varpiSrcs := loopSources(masterSeed, "varpi", p.Delta)
	err = concurrency.Range(p.Delta, workers, func(i int) error {
		zero, err := k.encodeWithSKScalar(0, p.Rho, 0, varpiSrcs[i])
		if err != nil {
			return err
		}
		alphaScale, err := k.encodeWithSKScalar(uint64(p.Alpha), p.Rho, 1, varpiSrcs[i])
		if err != nil {
			return err
		}
		varpi[i] = zero
		varpi[p.Delta+i] = alphaScale
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("mm: generating varpi: %w", err)
	}
	k.public.varpi = varpi
	report("varpi")

	// 8. y = EncodeWithSK(1, rho, 1).
	y, err := k.encodeWithSKScalar(1, p.Rho, 1, src)
	if err != nil {
		return nil, fmt.Errorf("mm: generating y: %w", err)
	}
	k.public.y = y
	report("y")

	// 9. Zero-tester v.
	zkappa := big.NewInt(1)
	for i := 0; i < p.Kappa; i++ {
		zkappa = mod(new(big.Int).Mul(zkappa, z), k.public.x0)
	}
	k.secret.zkappa = zkappa

	vAcc := concurrency.NewAccumulator(big.NewInt(0), func(acc, next *big.Int) *big.Int {
		return acc.Add(acc, next)
	})
	vSrcs := loopSources(masterSeed, "v", p.N)
	err = concurrency.Range(p.N, workers, func(i int) error {
		ginv := new(big.Int).ModInverse(gg[i], pp[i])
		if ginv == nil {
			return fmt.Errorf("mm: g[%d] not invertible mod p[%d]", i, i)
		}
		h, err := rng.Centered(vSrcs[i], p.Beta)
		if err != nil {
			return err
		}
		term := mod(new(big.Int).Mul(ginv, zkappa), pp[i])
		term.Mul(term, h)
		qi := new(big.Int).Div(k.public.x0, pp[i])
		term.Mul(term, qi)
		vAcc.Add(term)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("mm: generating zero-tester v: %w", err)
	}
	k.public.v = mod(vAcc.Value(), k.public.x0)
	report("zero-tester v")

	return k, nil
}

// loopSources derives n independent, per-index random sources from a
// shared master seed and a loop tag, via rng.Shard. Every N-slot (or
// l-slot, Delta-slot) loop in NewKey calls this once and indexes the
// result by the same i its concurrency.Range callback receives, so index i
// always draws from the same stream no matter which worker goroutine ends
// up processing it: the result neither races (distinct goroutines never
// touch the same *big.Int-backed reader) nor depends on scheduling order
// (spec.md §5's "safe under concurrent draws or sharded per worker with
// distinct seeds", sharpened to per-index rather than per-worker so the
// work-stealing queue's assignment can't perturb a seeded run's output).
func loopSources(master []byte, tag string, n int) []rng.Source {
	seed := make([]byte, 0, len(master)+len(tag))
	seed = append(seed, master...)
	seed = append(seed, tag...)
	return rng.Shard(seed, n)
}

// generateBlockPrime builds one p_i as a product of ceil(eta/etp) primes of
// etp bits, the last block absorbing whatever remainder eta leaves below an
// exact multiple of etp (spec.md §4.1.1). None of the named instantiations'
// eta happens to be an exact multiple of etp, so this remainder handling is
// exercised on every KeySetup, not just a theoretical edge case.
func generateBlockPrime(eta, etp int, src rng.Source) (*big.Int, error) {
	niter := (eta + etp - 1) / etp
	pi := big.NewInt(1)
	for j := 0; j < niter; j++ {
		psize := etp
		if j == niter-1 {
			psize = maxInt(1, eta-etp*(niter-1))
		}
		unif, err := src.Bits(psize)
		if err != nil {
			return nil, err
		}
		pi.Mul(pi, nextPrime(unif))
	}
	return pi, nil
}

// X0 returns the top-level modulus.
func (k *Key) X0() *big.Int { return new(big.Int).Set(k.public.x0) }

// MatrixRow returns a copy of A's i-th row, the alpha-bit plaintext vector
// behind xp[i] (spec.md §3: A is kept for audit/re-encoding).
func (k *Key) MatrixRow(i int) []*big.Int {
	row := make([]*big.Int, k.Params.N)
	for j := 0; j < k.Params.N; j++ {
		row[j] = new(big.Int).Set(k.public.A[i*k.Params.N+j])
	}
	return row
}

// SlotModulus returns a copy of g_i, the i-th plaintext-slot modulus. Like
// Decrypt and Noise (spec.md §4.6), this is a diagnostic/audit accessor
// that exposes secret-key material for testing; production use of the
// scheme never needs it.
func (k *Key) SlotModulus(i int) *big.Int {
	return new(big.Int).Set(k.secret.g[i])
}

// NbBits returns the bit-length of v, matching MMKey::nbBits in the
// reference construction (mpz_sizeinbase(v, 2), i.e. 0 for v == 0).
func (k *Key) NbBits(v *big.Int) int {
	return v.BitLen()
}

// reduce returns c mod x0, canonicalized to [0, x0).
func (k *Key) reduce(c *big.Int) *big.Int {
	return mod(c, k.public.x0)
}
