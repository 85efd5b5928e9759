package operations

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestRunDHAllUsersAgree covers S3: every user in the multipartite exchange
// derives the same session key.
func TestRunDHAllUsersAgree(t *testing.T) {
	result, err := RunDH(DHOptions{Instantiation: "Toy"})
	require.NoError(t, err)
	require.True(t, result.AllAgree)
	require.NotEmpty(t, result.Users)
}

func TestRunDHDefaultsToKappaPlusOneUsers(t *testing.T) {
	result, err := RunDH(DHOptions{Instantiation: "Toy"})
	require.NoError(t, err)
	require.Len(t, result.Users, 7) // Toy shares Kappa=6 with the named instantiations
	for _, u := range result.Users {
		require.Equal(t, 0, u.Level0Degree)
		require.Equal(t, 1, u.Level1Degree)
		require.Equal(t, 6, u.FinalDegree)
		require.NotEmpty(t, u.SessionKey)
	}
}

func TestRunDHRejectsTooManyUsers(t *testing.T) {
	_, err := RunDH(DHOptions{Instantiation: "Toy", Users: 8})
	require.Error(t, err)
}

func TestRunDHRejectsUnknownInstantiation(t *testing.T) {
	_, err := RunDH(DHOptions{Instantiation: "Nonexistent"})
	require.Error(t, err)
}

func TestRunDHReportsProgress(t *testing.T) {
	var stages []string
	_, err := RunDH(DHOptions{
		Instantiation: "Toy",
		Users:         3,
		Progress:      func(stage string) { stages = append(stages, stage) },
	})
	require.NoError(t, err)
	require.NotEmpty(t, stages)
}
