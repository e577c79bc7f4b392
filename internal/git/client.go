package git

import (
	"context"
	"fmt"
	"sort"
	"time"
)

// Client implements the version-control operations a release run needs.
// Reads go through go-git; everything that mutates the repository or talks to
// a remote shells out to git so hooks, credentials and config apply.
type Client struct {
	runner *CommandRunner
	repo   *Repository
}

// NewClient opens the repository at dir
func NewClient(dir string, timeout time.Duration) (*Client, error) {
	repo, err := OpenRepository(dir)
	if err != nil {
		return nil, err
	}
	return &Client{
		runner: NewCommandRunner(dir, timeout),
		repo:   repo,
	}, nil
}

// CurrentBranch returns the checked-out branch
func (c *Client) CurrentBranch(_ context.Context) (string, error) {
	return c.repo.GetCurrentBranch()
}

// Fetch fetches from remote, including tags when tags is set
func (c *Client) Fetch(ctx context.Context, remote string, tags bool) error {
	args := []string{"fetch", remote}
	if tags {
		args = append(args, "--tags")
	}
	_, err := c.runner.Run(ctx, args...)
	return err
}

// Pull fast-forwards branch from remote
func (c *Client) Pull(ctx context.Context, remote, branch string) error {
	_, err := c.runner.Run(ctx, "pull", "--ff-only", remote, branch)
	return err
}

// ListTags returns all tag names sorted lexically
func (c *Client) ListTags(_ context.Context) ([]string, error) {
	names, err := c.repo.GetTagNames()
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	return names, nil
}

// TagExists reports whether the tag exists locally
func (c *Client) TagExists(_ context.Context, name string) (bool, error) {
	return c.repo.HasTag(name)
}

// Add stages files matching pattern
func (c *Client) Add(ctx context.Context, pattern string) error {
	_, err := c.runner.Run(ctx, "add", pattern)
	return err
}

// HasStagedChanges reports whether the index differs from HEAD
func (c *Client) HasStagedChanges(ctx context.Context) (bool, error) {
	files, err := c.runner.RunLines(ctx, "diff", "--cached", "--name-only")
	if err != nil {
		return false, err
	}
	return len(files) > 0, nil
}

// Commit records the staged changes
func (c *Client) Commit(ctx context.Context, message string) error {
	if message == "" {
		return fmt.Errorf("commit message must not be empty")
	}
	_, err := c.runner.Run(ctx, "commit", "-m", message)
	return err
}

// CreateTag creates a lightweight tag at HEAD
func (c *Client) CreateTag(ctx context.Context, name string) error {
	_, err := c.runner.Run(ctx, "tag", name)
	return err
}

// PushTags pushes all local tags to remote
func (c *Client) PushTags(ctx context.Context, remote string) error {
	_, err := c.runner.Run(ctx, "push", remote, "--tags")
	return err
}

// Push pushes branch to remote
func (c *Client) Push(ctx context.Context, remote, branch string) error {
	_, err := c.runner.Run(ctx, "push", remote, branch)
	return err
}

// Checkout switches the working tree to branch
func (c *Client) Checkout(ctx context.Context, branch string) error {
	_, err := c.runner.Run(ctx, "checkout", branch)
	return err
}
