// Package scenario provides a high-level test scenario that combines a Scene
// with the shipit command to give integration tests a terse API.
package scenario

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"shipit.dev/shipit/internal/cli"
	"shipit.dev/shipit/testhelpers"
)

// ManifestFile is the manifest name WithManifest writes.
const ManifestFile = "release.yaml"

// Scenario is a release repository with an origin remote and the
// develop, stage and master branches.
type Scenario struct {
	T          *testing.T
	Scene      *testhelpers.Scene
	BinaryPath string
}

// NewScenario creates a release scene and runs the optional extra setup.
// NOTE: not safe for parallel tests as NewScene changes directory and env.
func NewScenario(t *testing.T, setup testhelpers.SceneSetup) *Scenario {
	t.Helper()
	t.Setenv("SHIPIT_LOG_FILE", filepath.Join(t.TempDir(), "shipit.log"))

	scene := testhelpers.NewScene(t, func(s *testhelpers.Scene) error {
		if err := testhelpers.ReleaseSceneSetup(s); err != nil {
			return err
		}
		if setup != nil {
			return setup(s)
		}
		return nil
	})
	return &Scenario{T: t, Scene: scene}
}

// Checkout checks out a branch.
func (s *Scenario) Checkout(branch string) *Scenario {
	s.T.Helper()
	require.NoError(s.T, s.Scene.Repo.CheckoutBranch(branch))
	return s
}

// WithFile writes and commits a file on the current branch.
func (s *Scenario) WithFile(rel, content string) *Scenario {
	s.T.Helper()
	require.NoError(s.T, s.Scene.Repo.WriteFile(rel, content))
	require.NoError(s.T, s.Scene.Repo.CommitAll("add "+rel))
	return s
}

// WithManifest writes and commits the release manifest.
func (s *Scenario) WithManifest(content string) *Scenario {
	return s.WithFile(ManifestFile, content)
}

// WithTags creates tags on the current commit.
func (s *Scenario) WithTags(tags ...string) *Scenario {
	s.T.Helper()
	for _, tag := range tags {
		require.NoError(s.T, s.Scene.Repo.CreateTag(tag))
	}
	return s
}

// Pushed pushes the current branch and all tags to origin.
func (s *Scenario) Pushed() *Scenario {
	s.T.Helper()
	branch, err := s.Scene.Repo.CurrentBranchName()
	require.NoError(s.T, err)
	require.NoError(s.T, s.Scene.Repo.PushBranch("origin", branch))
	require.NoError(s.T, s.Scene.Repo.RunGitCommand("push", "origin", "--tags"))
	return s
}

// Args returns the required flags followed by extra.
func (s *Scenario) Args(extra ...string) []string {
	args := []string{"--root", s.Scene.Dir, "--config", filepath.Join(s.Scene.Dir, ManifestFile)}
	return append(args, extra...)
}

// Release runs shipit in-process and returns its error.
func (s *Scenario) Release(extra ...string) error {
	cmd := cli.NewRootCmd("test", "none", "unknown")
	cmd.SetArgs(s.Args(extra...))
	return cmd.ExecuteContext(context.Background())
}

// MustRelease runs shipit in-process and fails the test on error.
func (s *Scenario) MustRelease(extra ...string) *Scenario {
	s.T.Helper()
	require.NoError(s.T, s.Release(extra...))
	return s
}

// WithBinaryPath sets the path to the shipit binary for RunCli.
func (s *Scenario) WithBinaryPath(path string) *Scenario {
	s.BinaryPath = path
	return s
}

// RunCli executes the shipit binary with the required flags and returns its
// combined output.
func (s *Scenario) RunCli(extra ...string) (string, error) {
	s.T.Helper()
	if s.BinaryPath == "" {
		s.T.Fatal("BinaryPath not set. Call WithBinaryPath first.")
	}
	cmd := exec.Command(s.BinaryPath, s.Args(extra...)...)
	cmd.Dir = s.Scene.Dir
	cmd.Env = append(os.Environ(), "SHIPIT_NO_INTERACTIVE=1")
	output, err := cmd.CombinedOutput()
	return string(output), err
}

// ExpectBranch asserts that the current branch is as expected.
func (s *Scenario) ExpectBranch(expected string) *Scenario {
	s.T.Helper()
	actual, err := s.Scene.Repo.CurrentBranchName()
	require.NoError(s.T, err)
	require.Equal(s.T, expected, actual)
	return s
}

// ExpectTags asserts the local and remote tag sets.
func (s *Scenario) ExpectTags(expected ...string) *Scenario {
	s.T.Helper()
	testhelpers.ExpectTags(s.T, s.Scene.Repo, expected)
	testhelpers.ExpectRemoteTags(s.T, s.Scene.Repo, expected)
	return s
}

// ExpectFile asserts that a file on the given branch contains every fragment.
func (s *Scenario) ExpectFile(branch, rel string, fragments ...string) *Scenario {
	s.T.Helper()
	current, err := s.Scene.Repo.CurrentBranchName()
	require.NoError(s.T, err)
	require.NoError(s.T, s.Scene.Repo.CheckoutBranch(branch))
	defer func() { _ = s.Scene.Repo.CheckoutBranch(current) }()
	testhelpers.ExpectFileContains(s.T, s.Scene.Repo, rel, fragments...)
	return s
}

// ExpectCommits asserts the newest commit subjects on branch.
func (s *Scenario) ExpectCommits(branch string, expected ...string) *Scenario {
	s.T.Helper()
	testhelpers.ExpectCommits(s.T, s.Scene.Repo, branch, expected)
	return s
}
