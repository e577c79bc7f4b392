package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitOK},
		{"declined", fmt.Errorf("confirm: %w", ErrDeclined), ExitOK},
		{"config", NewConfigError("--root", errors.New("missing")), ExitConfig},
		{"branch", NewInvalidBranchError("feature", []string{"develop"}, ""), ExitPolicy},
		{"git", NewGitCommandError("git", []string{"push"}, "", "rejected", errors.New("exit status 1")), ExitGit},
		{"path", NewPathNotFoundError("$.version", "version"), ExitData},
		{"document", NewDocumentError("a.json", "decode", errors.New("bad")), ExitData},
		{"overflow", fmt.Errorf("confirm: %w", ErrVersionOverflow), ExitData},
		{"wrapped in step", NewStepError("push-tag", NewGitCommandError("git", nil, "", "", nil)), ExitGit},
		{"unexpected", errors.New("boom"), ExitUnexpected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}

func TestInvalidBranchError(t *testing.T) {
	err := NewInvalidBranchError("developp", []string{"develop", "stage", "master"}, "develop")
	require.ErrorIs(t, err, ErrInvalidBranch)
	require.Contains(t, err.Error(), "developp")
	require.Contains(t, err.Error(), "did you mean develop?")
}

func TestPathNotFoundError(t *testing.T) {
	err := NewPathNotFoundError("$.a.b", "b")
	err.File = "manifest.json"

	var target *PathNotFoundError
	require.ErrorAs(t, fmt.Errorf("writing: %w", err), &target)
	require.Equal(t, "manifest.json", target.File)
	require.Equal(t, "path $.a.b not found (no match for b) in manifest.json", err.Error())
}

func TestIsDeclined(t *testing.T) {
	require.True(t, IsDeclined(NewStepError("confirm", ErrDeclined)))
	require.False(t, IsDeclined(errors.New("other")))
}
