package version

import (
	"testing"

	"github.com/stretchr/testify/require"

	"shipit.dev/shipit/internal/policy"
)

func TestResolveCurrentHidesBetaOnDevelop(t *testing.T) {
	tags := []string{"v1.0.0", "v1.1.0-beta.0", "v1.2.0"}

	res := ResolveCurrent(tags, policy.Develop, mustParse(t, "0.0.1"))
	require.True(t, res.FromTags)
	require.Equal(t, "1.2.0", res.Current.String())
	for _, tag := range res.Top {
		require.NotEqual(t, "v1.1.0-beta.0", tag.Name)
	}

	tags = []string{"v1.0.0", "v1.3.0-beta.2", "v1.3.0-alpha.5"}
	require.Equal(t, "1.3.0-alpha.5", ResolveCurrent(tags, policy.Develop, nil).Current.String())
	require.Equal(t, "1.3.0-beta.2", ResolveCurrent(tags, policy.Stage, nil).Current.String())
	require.Equal(t, "1.3.0-beta.2", ResolveCurrent(tags, policy.Master, nil).Current.String())
}

func TestResolveCurrentDiscardsInvalidTags(t *testing.T) {
	tags := []string{"latest", "v2", "release-1.0.0", "vv1.0.0", "1.4.0", "v1.3.9"}

	res := ResolveCurrent(tags, policy.Master, mustParse(t, "0.1.0"))
	require.True(t, res.FromTags)
	require.Equal(t, "1.4.0", res.Current.String())
	require.Len(t, res.Top, 2)
	require.Equal(t, "1.4.0", res.Top[0].Name)
	require.Equal(t, "v1.3.9", res.Top[1].Name)
}

func TestResolveCurrentFallsBack(t *testing.T) {
	fallback := mustParse(t, "1.2.3")

	res := ResolveCurrent(nil, policy.Master, fallback)
	require.False(t, res.FromTags)
	require.Same(t, fallback, res.Current)
	require.Empty(t, res.Top)

	res = ResolveCurrent([]string{"v9.0.0-beta.1", "nightly"}, policy.Develop, fallback)
	require.False(t, res.FromTags)
	require.Equal(t, "1.2.3", res.Current.String())
}

func TestResolveCurrentKeepsTopFive(t *testing.T) {
	tags := []string{
		"v1.0.0", "v1.0.1", "v1.0.2", "v1.1.0", "v1.10.0",
		"v1.2.0", "v1.9.0", "v1.10.0-alpha.1", "v0.9.0",
	}

	res := ResolveCurrent(tags, policy.Master, nil)
	require.Equal(t, "1.10.0", res.Current.String())

	names := make([]string, 0, len(res.Top))
	for _, tag := range res.Top {
		names = append(names, tag.Name)
	}
	require.Equal(t, []string{"v1.10.0", "v1.10.0-alpha.1", "v1.9.0", "v1.2.0", "v1.1.0"}, names)
}

func TestResolveCurrentPrereleaseOrdering(t *testing.T) {
	tags := []string{"v2.0.0-alpha.2", "v2.0.0-alpha.10", "v2.0.0-alpha.9"}
	res := ResolveCurrent(tags, policy.Develop, nil)
	require.Equal(t, "2.0.0-alpha.10", res.Current.String())
}

func TestFormat(t *testing.T) {
	v := mustParse(t, "v1.2.4")
	require.Equal(t, "v1.2.4", FormatTag(v))
	require.Equal(t, "v1.2.4", Format(v, true))
	require.Equal(t, "1.2.4", Format(v, false))

	_, ok := ParseTag("v1.2")
	require.False(t, ok)
}
