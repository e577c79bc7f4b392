package release

import (
	"context"

	"shipit.dev/shipit/internal/version"
)

// VCS is the version-control client used by a release run
type VCS interface {
	CurrentBranch(ctx context.Context) (string, error)
	Fetch(ctx context.Context, remote string, tags bool) error
	Pull(ctx context.Context, remote, branch string) error
	ListTags(ctx context.Context) ([]string, error)
	TagExists(ctx context.Context, name string) (bool, error)
	Add(ctx context.Context, pattern string) error
	HasStagedChanges(ctx context.Context) (bool, error)
	Commit(ctx context.Context, message string) error
	CreateTag(ctx context.Context, name string) error
	PushTags(ctx context.Context, remote string) error
	Push(ctx context.Context, remote, branch string) error
	Checkout(ctx context.Context, branch string) error
}

// Reporter receives progress for each stage
type Reporter interface {
	Report(stage Stage, status Status, detail string)
}

// Prompter asks the user for decisions
type Prompter interface {
	Confirm(question string) (bool, error)
	SelectBump(defaultBump version.Bump) (version.Bump, error)
}

// Logger is the subset of tui.Splog used by the orchestrator
type Logger interface {
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Debug(format string, args ...interface{})
}

// TagPrinter displays the most recent release tags
type TagPrinter func(tags []version.Tag)
