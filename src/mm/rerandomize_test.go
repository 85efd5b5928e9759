package mm

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"cltmm/src/rng"
)

// TestRerandomizePreservesPlaintext covers S6: repeatedly rerandomizing a
// level-1 encoding must never change the plaintext vector it decrypts to.
func TestRerandomizePreservesPlaintext(t *testing.T) {
	k := toyKey(t, "rerandomize")
	src := rng.Shard([]byte("rerandomize-samples"), 1)[0]

	level0, err := k.Sample(0, src)
	require.NoError(t, err)
	level1 := level0.Mul(k.Y())
	require.Equal(t, 1, level1.Degree())

	want := k.Decrypt(level1)

	c := level1
	for i := 0; i < 100; i++ {
		c, err = k.Rerandomize(c, src)
		require.NoError(t, err)
		require.Equal(t, 1, c.Degree())

		got := k.Decrypt(c)
		if diff := cmp.Diff(want, got, bigIntComparer()); diff != "" {
			t.Fatalf("round %d: plaintext changed by Rerandomize (-want +got):\n%s", i, diff)
		}
	}
}

// TestRerandomizeRequiresDegreeOne covers the panic-based contract violation
// for rerandomizing a non-level-1 encoding (spec.md 4.7).
func TestRerandomizeRequiresDegreeOne(t *testing.T) {
	k := toyKey(t, "rerandomize-degree")
	src := rng.Shard([]byte("rerandomize-degree-samples"), 1)[0]

	level0, err := k.Sample(0, src)
	require.NoError(t, err)

	require.Panics(t, func() {
		_, _ = k.Rerandomize(level0, src)
	})
}

// TestDistinctRerandIndicesAreUnique checks the rejection-sampling helper
// never returns a repeated index, the property spec.md's Open Questions
// flagged the reference implementation's index-decrement trick as fragile
// for.
func TestDistinctRerandIndicesAreUnique(t *testing.T) {
	k := toyKey(t, "rerand-indices")
	src := rng.Shard([]byte("rerand-indices-samples"), 1)[0]

	for trial := 0; trial < 20; trial++ {
		idx, err := k.distinctRerandIndices(src)
		require.NoError(t, err)
		require.Len(t, idx, k.Params.Theta)

		seen := make(map[int]bool, len(idx))
		for _, v := range idx {
			require.False(t, seen[v], "index %d repeated", v)
			seen[v] = true
			require.GreaterOrEqual(t, v, 0)
			require.Less(t, v, k.Params.Delta*k.Params.Delta)
		}
	}
}
