package version

import (
	"testing"

	"github.com/Masterminds/semver/v3"
	"github.com/stretchr/testify/require"

	shipiterrors "shipit.dev/shipit/internal/errors"
	"shipit.dev/shipit/internal/policy"
)

func mustParse(t *testing.T, s string) *semver.Version {
	t.Helper()
	v, err := Parse(s)
	require.NoError(t, err)
	return v
}

func TestPlanNext(t *testing.T) {
	tests := []struct {
		name   string
		old    string
		branch string
		bump   Bump
		want   string
	}{
		{"master increments patch", "1.2.3", policy.Master, "", "1.2.4"},
		{"master finalizes prerelease past its core", "2.0.0-alpha.3", policy.Master, "", "2.0.1"},
		{"master ignores bump", "1.2.3", policy.Master, BumpMajor, "1.2.4"},
		{"stage opens beta on clean release", "1.2.3", policy.Stage, "", "1.2.4-beta.0"},
		{"stage continues beta", "1.3.0-beta.0", policy.Stage, "", "1.3.0-beta.1"},
		{"stage promotes alpha to beta", "1.3.0-alpha.7", policy.Stage, "", "1.3.0-beta.0"},
		{"develop continues alpha ignoring bump", "2.0.0-alpha.1", policy.Develop, BumpMajor, "2.0.0-alpha.2"},
		{"develop continues from beta", "2.0.0-beta.2", policy.Develop, "", "2.0.1-alpha.0"},
		{"develop opens minor train", "2.0.0", policy.Develop, BumpMinor, "2.1.0-alpha.0"},
		{"develop opens major train", "2.3.4", policy.Develop, BumpMajor, "3.0.0-alpha.0"},
		{"develop defaults to patch", "2.3.4", policy.Develop, "", "2.3.5-alpha.0"},
		{"develop handles bare alpha", "1.0.0-alpha", policy.Develop, "", "1.0.0-alpha.0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, err := PlanNext(mustParse(t, tt.old), tt.branch, tt.bump)
			require.NoError(t, err)
			require.Equal(t, tt.want, next.String())
		})
	}
}

func TestPlanNextErrors(t *testing.T) {
	_, err := PlanNext(mustParse(t, "1.0.0"), "feature", "")
	require.ErrorIs(t, err, shipiterrors.ErrInvalidBranch)

	_, err = PlanNext(mustParse(t, "1.0.0"), policy.Develop, Bump("huge"))
	require.ErrorIs(t, err, shipiterrors.ErrInvalidBump)

	// Bump validation only matters when a train is opened
	next, err := PlanNext(mustParse(t, "1.0.0-alpha.0"), policy.Develop, Bump("huge"))
	require.NoError(t, err)
	require.Equal(t, "1.0.0-alpha.1", next.String())

	_, err = PlanNext(mustParse(t, "1.0.0-alpha.18446744073709551615"), policy.Develop, "")
	require.ErrorIs(t, err, shipiterrors.ErrVersionOverflow)
	require.Contains(t, err.Error(), "18446744073709551615")

	_, err = PlanNext(mustParse(t, "1.0.0-beta.18446744073709551615"), policy.Stage, "")
	require.ErrorIs(t, err, shipiterrors.ErrVersionOverflow)
}

func TestPlanNextIsMonotonic(t *testing.T) {
	versions := []string{
		"0.0.0", "0.0.1", "1.2.3", "10.20.30",
		"1.0.0-alpha", "1.0.0-alpha.0", "1.0.0-alpha.9", "1.0.0-alpha.1.2",
		"1.0.0-beta", "1.0.0-beta.0", "1.0.0-beta.11",
		"1.0.0-rc.1", "1.0.0-0", "1.0.0-x.7.z.92",
	}

	for _, raw := range versions {
		old := mustParse(t, raw)
		for _, branch := range policy.Branches() {
			for _, bump := range Bumps() {
				next, err := PlanNext(old, branch, bump)
				require.NoError(t, err, "%s on %s with %s", raw, branch, bump)
				require.True(t, next.GreaterThan(old), "%s -> %s on %s with %s", raw, next, branch, bump)
			}
		}
	}
}

func TestRequiresManualBump(t *testing.T) {
	require.True(t, RequiresManualBump(mustParse(t, "1.0.0"), policy.Develop))
	require.True(t, RequiresManualBump(mustParse(t, "1.0.0-rc.1"), policy.Develop))
	require.False(t, RequiresManualBump(mustParse(t, "1.0.0-alpha.1"), policy.Develop))
	require.False(t, RequiresManualBump(mustParse(t, "1.0.0-beta.1"), policy.Develop))
	require.False(t, RequiresManualBump(mustParse(t, "1.0.0"), policy.Master))
	require.False(t, RequiresManualBump(mustParse(t, "1.0.0"), policy.Stage))
}

func TestParseBump(t *testing.T) {
	for in, want := range map[string]Bump{"": BumpPatch, "patch": BumpPatch, "Minor": BumpMinor, " major ": BumpMajor} {
		got, err := ParseBump(in)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
	_, err := ParseBump("prerelease")
	require.ErrorIs(t, err, shipiterrors.ErrInvalidBump)
}
