package testhelpers

import (
	"os/exec"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// ExpectTags asserts that the repository has exactly the expected local tags.
func ExpectTags(t *testing.T, repo *GitRepo, expected []string) {
	t.Helper()

	cmd := exec.Command("git", "-C", repo.Dir, "tag", "--list")
	output, err := cmd.Output()
	require.NoError(t, err, "Failed to list tags")

	require.Equal(t, sorted(expected), sorted(splitLines(string(output))), "Tags do not match")
}

// ExpectRemoteTags asserts that the bare remote has exactly the expected tags.
func ExpectRemoteTags(t *testing.T, repo *GitRepo, expected []string) {
	t.Helper()
	require.NotEmpty(t, repo.RemoteDir, "Repository has no remote")

	cmd := exec.Command("git", "--git-dir", repo.RemoteDir, "tag", "--list")
	output, err := cmd.Output()
	require.NoError(t, err, "Failed to list remote tags")

	require.Equal(t, sorted(expected), sorted(splitLines(string(output))), "Remote tags do not match")
}

// ExpectCommits asserts that the newest commits on branch have the expected
// subjects, newest first.
func ExpectCommits(t *testing.T, repo *GitRepo, branch string, expected []string) {
	t.Helper()

	cmd := exec.Command("git", "-C", repo.Dir, "log", "--format=%s", branch)
	output, err := cmd.Output()
	require.NoError(t, err, "Failed to list commits")

	commits := splitLines(string(output))
	if len(commits) < len(expected) {
		require.Fail(t, "Not enough commits", "Expected %d commits, got %d", len(expected), len(commits))
		return
	}
	require.Equal(t, expected, commits[:len(expected)], "Commits do not match")
}

// ExpectFileContains asserts that a file in the work tree contains every
// given fragment.
func ExpectFileContains(t *testing.T, repo *GitRepo, rel string, fragments ...string) {
	t.Helper()

	content, err := repo.ReadFile(rel)
	require.NoError(t, err, "Failed to read %s", rel)
	for _, fragment := range fragments {
		require.Contains(t, content, fragment, "%s does not contain %q", rel, fragment)
	}
}

func splitLines(output string) []string {
	lines := []string{}
	for _, line := range strings.Split(strings.TrimSpace(output), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func sorted(values []string) []string {
	out := append([]string{}, values...)
	sort.Strings(out)
	return out
}
