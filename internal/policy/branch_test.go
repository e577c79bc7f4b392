package policy

import (
	"testing"

	"github.com/stretchr/testify/require"

	shipiterrors "shipit.dev/shipit/internal/errors"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		branch   string
		strategy Strategy
		label    string
	}{
		{Develop, StrategyAlphaTrain, "development"},
		{Stage, StrategyBetaIncrement, "stage"},
		{Master, StrategyPatch, "production"},
	}

	for _, tt := range tests {
		t.Run(tt.branch, func(t *testing.T) {
			env, err := Resolve(tt.branch)
			require.NoError(t, err)
			require.Equal(t, tt.branch, env.Branch)
			require.Equal(t, tt.strategy, env.Strategy)
			require.Equal(t, tt.label, env.Label)
			require.True(t, IsReleaseBranch(tt.branch))
		})
	}
}

func TestResolveRejectsOtherBranches(t *testing.T) {
	for _, branch := range []string{"", "main", "feature/login", "Develop", "release"} {
		t.Run(branch, func(t *testing.T) {
			_, err := Resolve(branch)
			require.ErrorIs(t, err, shipiterrors.ErrInvalidBranch)
			require.False(t, IsReleaseBranch(branch))
		})
	}
}

func TestResolveSuggestsNearbyBranch(t *testing.T) {
	_, err := Resolve("mastr")

	var branchErr *shipiterrors.InvalidBranchError
	require.ErrorAs(t, err, &branchErr)
	require.Equal(t, Master, branchErr.Suggestion)
	require.Equal(t, Branches(), branchErr.Allowed)

	_, err = Resolve("feature/login")
	require.ErrorAs(t, err, &branchErr)
	require.Empty(t, branchErr.Suggestion)
}
