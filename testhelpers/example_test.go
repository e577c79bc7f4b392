package testhelpers_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"shipit.dev/shipit/testhelpers"
)

// TestExampleUsage shows the basic pattern for using scenes.
func TestExampleUsage(t *testing.T) {
	scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)

	branches, err := scene.Repo.RunGitCommandAndGetOutput("branch", "--list")
	require.NoError(t, err)
	require.Contains(t, branches, "main")
}

func TestGitRepoBasicOperations(t *testing.T) {
	scene := testhelpers.NewScene(t, nil)

	require.NoError(t, scene.Repo.CreateChangeAndCommit("test content", "test"))

	branch, err := scene.Repo.CurrentBranchName()
	require.NoError(t, err)
	require.Equal(t, "main", branch)

	testhelpers.ExpectCommits(t, scene.Repo, "main", []string{"test"})
}

func TestReleaseSceneSetup(t *testing.T) {
	scene := testhelpers.NewScene(t, testhelpers.ReleaseSceneSetup)

	branch, err := scene.Repo.CurrentBranchName()
	require.NoError(t, err)
	require.Equal(t, "develop", branch)

	for _, b := range []string{"main", "master", "stage", "develop"} {
		rev, err := scene.Repo.RemoteRevision(b)
		require.NoError(t, err, b)
		require.NotEmpty(t, rev)
	}
	testhelpers.ExpectRemoteTags(t, scene.Repo, nil)
}

func TestTagAndFileAssertions(t *testing.T) {
	scene := testhelpers.NewScene(t, testhelpers.ReleaseSceneSetup)

	require.NoError(t, scene.Repo.WriteFile("nested/version.txt", "v1.0.0\n"))
	require.NoError(t, scene.Repo.CommitAll("version"))
	require.NoError(t, scene.Repo.CreateTag("v1.0.0"))

	testhelpers.ExpectTags(t, scene.Repo, []string{"v1.0.0"})
	testhelpers.ExpectRemoteTags(t, scene.Repo, []string{})
	testhelpers.ExpectFileContains(t, scene.Repo, "nested/version.txt", "v1.0.0")
	testhelpers.ExpectCommits(t, scene.Repo, "develop", []string{"version", "init"})
}
