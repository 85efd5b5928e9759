package mm

import "math/big"

// Encoding is a big integer in [0, x0) tagged with a degree (level), plus a
// non-owning reference to the Key whose public/secret state governs
// reduction. Encodings are value-like: they may be freely copied and
// destroyed independently of one another and of the Key, though they stop
// being useful (not unsafe) once their Key is no longer reachable.
type Encoding struct {
	key *Key
	c   *big.Int
	d   int
}

// Degree returns the encoding's level.
func (e Encoding) Degree() int { return e.d }

// Value returns the encoding's canonical representative in [0, x0).
func (e Encoding) Value() *big.Int { return new(big.Int).Set(e.c) }

// Add returns a+b. Requires a.Degree() == b.Degree().
func (a Encoding) Add(b Encoding) Encoding {
	if a.d != b.d {
		panic("mm: Add requires equal degrees")
	}
	c := a.key.reduce(new(big.Int).Add(a.c, b.c))
	return Encoding{key: a.key, c: c, d: a.d}
}

// Sub returns a-b. Requires a.Degree() == b.Degree().
func (a Encoding) Sub(b Encoding) Encoding {
	if a.d != b.d {
		panic("mm: Sub requires equal degrees")
	}
	c := a.key.reduce(new(big.Int).Sub(a.c, b.c))
	return Encoding{key: a.key, c: c, d: a.d}
}

// AddScalar returns a+m, m an arbitrary big integer. Degree is unchanged.
func (a Encoding) AddScalar(m *big.Int) Encoding {
	c := a.key.reduce(new(big.Int).Add(a.c, m))
	return Encoding{key: a.key, c: c, d: a.d}
}

// SubScalar returns a-m, m an arbitrary big integer. Degree is unchanged.
func (a Encoding) SubScalar(m *big.Int) Encoding {
	c := a.key.reduce(new(big.Int).Sub(a.c, m))
	return Encoding{key: a.key, c: c, d: a.d}
}

// Mul returns a*b. The result's degree is a.Degree()+b.Degree() unless both
// operands are degree 0, in which case it stays 0 (spec.md §4.3).
func (a Encoding) Mul(b Encoding) Encoding {
	c := a.key.reduce(new(big.Int).Mul(a.c, b.c))
	d := a.d + b.d
	if a.d == 0 && b.d == 0 {
		d = 0
	}
	return Encoding{key: a.key, c: c, d: d}
}

// MulScalar returns a*m, m an arbitrary big integer. Degree is unchanged.
func (a Encoding) MulScalar(m *big.Int) Encoding {
	c := a.key.reduce(new(big.Int).Mul(a.c, m))
	return Encoding{key: a.key, c: c, d: a.d}
}
