package cli_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	shipiterrors "shipit.dev/shipit/internal/errors"
	"shipit.dev/shipit/testhelpers/scenario"
)

const chartManifest = `chart:
  dir: chart/Chart.yaml
  versionKeys: ["$.appVersion"]
settings:
  dir: settings.toml
  prefix: true
  versionKeys: ["$.release.tag"]
`

func chartScenario(t *testing.T, branch string) *scenario.Scenario {
	t.Helper()
	return scenario.NewScenario(t, nil).
		Checkout(branch).
		WithFile("chart/Chart.yaml", "apiVersion: v2\nname: app\nappVersion: 1.4.0\n").
		WithFile("settings.toml", "[release]\ntag = \"v1.4.0\"\n").
		WithManifest(chartManifest)
}

func TestScenarioMasterRelease(t *testing.T) {
	s := chartScenario(t, "master").WithTags("v1.4.0").Pushed()

	s.MustRelease("--yes").
		ExpectBranch("develop").
		ExpectTags("v1.4.0", "v1.4.1").
		ExpectCommits("master", "Released v1.4.1").
		ExpectFile("master", "chart/Chart.yaml", "appVersion: 1.4.1").
		ExpectFile("master", "settings.toml", `tag = "v1.4.1"`)
}

func TestScenarioStageTrainAcrossRuns(t *testing.T) {
	s := chartScenario(t, "stage").WithTags("v1.4.0", "v1.5.0-beta.0").Pushed()

	s.MustRelease("--yes")
	s.Checkout("stage").MustRelease("--yes")

	s.ExpectTags("v1.4.0", "v1.5.0-beta.0", "v1.5.0-beta.1", "v1.5.0-beta.2").
		ExpectFile("stage", "chart/Chart.yaml", "appVersion: 1.5.0-beta.2")
}

func TestScenarioDevelopHidesBetaTags(t *testing.T) {
	s := chartScenario(t, "develop").WithTags("v1.4.0", "v1.5.0-beta.3", "v1.5.0-alpha.1").Pushed()

	s.MustRelease("--yes").
		ExpectFile("develop", "chart/Chart.yaml", "appVersion: 1.5.0-alpha.2")
}

func TestScenarioRerunAfterRemoteTagExists(t *testing.T) {
	s := chartScenario(t, "master").WithTags("v1.4.0").Pushed()
	s.MustRelease("--yes")

	// A second run on master sees v1.4.1 and moves on to v1.4.2.
	s.Checkout("master").MustRelease("--yes").
		ExpectCommits("master", "Released v1.4.2", "Released v1.4.1")
}

func TestScenarioPathNotFoundLeavesTreeUntouched(t *testing.T) {
	s := chartScenario(t, "master").
		WithManifest(`chart:
  dir: chart/Chart.yaml
  versionKeys: ["$.appVersion", "$.missing.key"]
`).
		WithTags("v1.4.0").
		Pushed()

	err := s.Release("--yes")
	require.ErrorIs(t, err, shipiterrors.ErrPathNotFound)
	require.Equal(t, shipiterrors.ExitData, shipiterrors.ExitCode(err))

	s.ExpectBranch("master").
		ExpectTags("v1.4.0").
		ExpectFile("master", "chart/Chart.yaml", "appVersion: 1.4.0")
}

func TestScenarioRootVersionKeyFailsBeforeWriting(t *testing.T) {
	s := chartScenario(t, "master").
		WithManifest(`chart:
  dir: chart/Chart.yaml
  versionKeys: ["$.appVersion"]
settings:
  dir: settings.toml
  versionKeys: ["$"]
`).
		WithTags("v1.4.0").
		Pushed()

	err := s.Release("--yes")
	require.ErrorIs(t, err, shipiterrors.ErrConfig)
	require.Equal(t, shipiterrors.ExitConfig, shipiterrors.ExitCode(err))

	s.ExpectBranch("master").
		ExpectTags("v1.4.0").
		ExpectFile("master", "chart/Chart.yaml", "appVersion: 1.4.0")
}

func TestScenarioInvalidBumpIsConfigError(t *testing.T) {
	s := chartScenario(t, "develop").WithTags("v1.4.0").Pushed()

	err := s.Release("--yes", "--bump", "huge")
	require.ErrorIs(t, err, shipiterrors.ErrInvalidBump)
	require.Equal(t, shipiterrors.ExitConfig, shipiterrors.ExitCode(err))
	s.ExpectTags("v1.4.0")
}
