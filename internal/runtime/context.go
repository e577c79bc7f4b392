package runtime

import (
	"context"
	"fmt"

	"shipit.dev/shipit/internal/config"
	shipiterrors "shipit.dev/shipit/internal/errors"
	"shipit.dev/shipit/internal/git"
	"shipit.dev/shipit/internal/tui"
)

// Context provides the logger, settings and git client for a release run
type Context struct {
	context.Context
	Splog    *tui.Splog
	Settings config.Settings
	RepoRoot string
	Git      *git.Client
}

// NewContext opens the repository at repoRoot and bundles it with the logger and settings
func NewContext(ctx context.Context, repoRoot string, settings config.Settings, splog *tui.Splog) (*Context, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if splog == nil {
		splog = tui.NewSplog()
	}

	client, err := git.NewClient(repoRoot, settings.CommandTimeout)
	if err != nil {
		return nil, shipiterrors.NewConfigError("--root", fmt.Errorf("%s is not a git repository: %w", repoRoot, err))
	}

	return &Context{
		Context:  ctx,
		Splog:    splog,
		Settings: settings,
		RepoRoot: repoRoot,
		Git:      client,
	}, nil
}
