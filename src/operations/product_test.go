package operations

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRunProductReachesKappaAndExtractsKey(t *testing.T) {
	result, err := RunProduct(ProductOptions{Instantiation: "Toy"})
	require.NoError(t, err)
	require.Equal(t, 6, result.FinalDegree)
	require.NotEmpty(t, result.SessionKey)
	require.True(t, result.ZeroIsZero)
}

func TestRunProductRejectsUnknownInstantiation(t *testing.T) {
	_, err := RunProduct(ProductOptions{Instantiation: "Nonexistent"})
	require.Error(t, err)
}

func TestZeroVectorLength(t *testing.T) {
	v := zeroVector(5)
	require.Len(t, v, 5)
	for _, x := range v {
		require.Zero(t, x.Sign())
	}
}
