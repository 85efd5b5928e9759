package mm

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"cltmm/src/params"
	"cltmm/src/rng"
)

// toyKey builds a Key over the Toy instantiation from a deterministic,
// test-only source so repeated runs of the same test see the same primes.
func toyKey(t *testing.T, seed string) *Key {
	t.Helper()
	src := rng.Shard([]byte(seed), 1)[0]
	k, err := NewKey(params.Toy, src, nil)
	require.NoError(t, err)
	return k
}

func TestNewKeyStagesAndShape(t *testing.T) {
	var stages []string
	src := rng.Shard([]byte("stage-order"), 1)[0]
	k, err := NewKey(params.Toy, src, func(stage string) {
		stages = append(stages, stage)
	})
	require.NoError(t, err)

	require.Equal(t, []string{
		"p_i and x0", "crtCoeff_i", "g_i", "z and zinv", "A",
		"xp_i", "varpi", "y", "zero-tester v",
	}, stages)

	// x0 is the product of N values of at most Eta bits each. Every p_i is
	// built from uniformly sampled blocks advanced to the next prime, and a
	// uniform block usually has a leading zero bit or two, so x0 has at most
	// N*Eta bits and typically falls a few bits per slot short of that.
	want := params.Toy.N * params.Toy.Eta
	got := k.X0().BitLen()
	require.LessOrEqual(t, got, want)
	require.GreaterOrEqual(t, got, want-16*params.Toy.N)
}

func TestNewKeyRejectsInvalidParams(t *testing.T) {
	bad := params.Toy
	bad.Theta = bad.Delta*bad.Delta + 1
	_, err := NewKey(bad, rng.New(), nil)
	require.Error(t, err)
}

func TestNbBitsMatchesBitLen(t *testing.T) {
	k := toyKey(t, "nbbits")
	require.Equal(t, k.public.x0.BitLen(), k.NbBits(k.public.x0))
	require.Equal(t, 0, k.NbBits(big.NewInt(0)))
}
