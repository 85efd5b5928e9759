package mm

import (
	"math/big"

	"golang.org/x/exp/constraints"
)

var one = big.NewInt(1)
var two = big.NewInt(2)

// mod returns a mod b with 0 <= result < b.
func mod(a, b *big.Int) *big.Int {
	return new(big.Int).Mod(a, b)
}

// modNear returns a mod b folded into (-b/2, b/2], the canonical centered
// representative used by zero_test, Decrypt and Noise.
func modNear(a, b *big.Int) *big.Int {
	res := new(big.Int).Mod(a, b)
	half := new(big.Int).Rsh(b, 1)
	if res.Cmp(half) > 0 {
		res.Sub(res, b)
	}
	return res
}

// quotNear returns the integer nearest to a/b, i.e. (a - modNear(a,b)) / b.
func quotNear(a, b *big.Int) *big.Int {
	num := new(big.Int).Sub(a, modNear(a, b))
	return num.Div(num, b)
}

// nextPrime returns the smallest prime >= n, mirroring GMP's
// mpz_nextprime: even candidates are skipped, odd candidates are advanced
// by 2 and tested with Miller-Rabin/Baillie-PSW via big.Int.ProbablyPrime.
func nextPrime(n *big.Int) *big.Int {
	c := new(big.Int).Set(n)
	if c.Cmp(two) < 0 {
		return new(big.Int).Set(two)
	}
	if c.Bit(0) == 0 {
		c.Add(c, one)
	}
	for !c.ProbablyPrime(40) {
		c.Add(c, two)
	}
	return c
}

// maxInt returns the larger of a and b. Used by the prime-factor size
// computation in generateBlockPrime (the size of the last block).
func maxInt[T constraints.Integer](a, b T) T {
	if a > b {
		return a
	}
	return b
}
