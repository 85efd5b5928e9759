package params

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNamedInstantiationsValidate(t *testing.T) {
	for _, p := range []Params{Small, Medium, Large, Extra, Toy} {
		t.Run(p.Name, func(t *testing.T) {
			require.NoError(t, p.Validate())
			want := (p.Eta + p.Etp - 1) / p.Etp
			require.Equal(t, want, p.NbPrimeFactors())
			require.GreaterOrEqual(t, p.NbPrimeFactors()*p.Etp, p.Eta)
		})
	}
}

func TestLoadUnknownInstantiation(t *testing.T) {
	_, err := Load("Nonexistent")
	require.Error(t, err)
}

func TestLoadKnownInstantiation(t *testing.T) {
	p, err := Load("Toy")
	require.NoError(t, err)
	require.Equal(t, Toy, p)
}

func TestValidateRejectsBadTheta(t *testing.T) {
	p := Toy
	p.Theta = p.Delta*p.Delta + 1
	require.Error(t, p.Validate())
}

func TestValidateAcceptsNonDivisibleEta(t *testing.T) {
	// None of the named instantiations have eta as an exact multiple of
	// etp; generateBlockPrime's last block absorbs the remainder.
	p := Toy
	p.Eta = p.Etp + 1
	require.NoError(t, p.Validate())
}

func TestValidateRejectsEtpLargerThanEta(t *testing.T) {
	p := Toy
	p.Etp = p.Eta + 1
	require.Error(t, p.Validate())
}

func TestValidateRejectsBoundBelowSessionKeyBits(t *testing.T) {
	p := Toy
	p.Bound = p.SessionKeyBits - 1
	require.Error(t, p.Validate())
}

func TestLoadYAMLOverridesInstantiationFields(t *testing.T) {
	doc := []byte(`
name: custom-small
n: 20
eta: 1838
etp: 460
rho: 41
delta: 5
`)
	p, err := LoadYAML(doc)
	require.NoError(t, err)
	require.Equal(t, 20, p.N)
	require.Equal(t, 1838, p.Eta)
	require.Equal(t, 80, p.Alpha) // inherited from sharedConstants
	require.NoError(t, p.Validate())
}

func TestLoadYAMLRejectsInvalidDocument(t *testing.T) {
	_, err := LoadYAML([]byte("n: 0\neta: 1838\netp: 460\nrho: 41\ndelta: 5\n"))
	require.Error(t, err)
}
