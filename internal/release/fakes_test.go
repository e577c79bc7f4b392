package release_test

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"shipit.dev/shipit/internal/release"
	"shipit.dev/shipit/internal/version"
)

// fakeVCS records every call. failOn makes the named method fail.
type fakeVCS struct {
	mu       sync.Mutex
	branch   string
	tags     []string
	staged   bool
	failOn   map[string]error
	calls    []string
	checkout string
	// remoteOnly tags exist but are not listed
	remoteOnly []string
}

func newFakeVCS(branch string, tags ...string) *fakeVCS {
	return &fakeVCS{branch: branch, tags: tags, staged: true, failOn: map[string]error{}}
}

func (f *fakeVCS) record(call string, args ...any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	parts := []string{call}
	for _, a := range args {
		parts = append(parts, fmt.Sprint(a))
	}
	f.calls = append(f.calls, strings.Join(parts, " "))
	return f.failOn[call]
}

// mutations returns the calls that change local or remote state
func (f *fakeVCS) mutations() []string {
	var out []string
	for _, c := range f.calls {
		name := strings.Fields(c)[0]
		switch name {
		case "Add", "Commit", "CreateTag", "PushTags", "Push", "Checkout":
			out = append(out, c)
		}
	}
	return out
}

func (f *fakeVCS) CurrentBranch(_ context.Context) (string, error) {
	if err := f.record("CurrentBranch"); err != nil {
		return "", err
	}
	return f.branch, nil
}

func (f *fakeVCS) Fetch(_ context.Context, remote string, tags bool) error {
	return f.record("Fetch", remote, tags)
}

func (f *fakeVCS) Pull(_ context.Context, remote, branch string) error {
	return f.record("Pull", remote, branch)
}

func (f *fakeVCS) ListTags(_ context.Context) ([]string, error) {
	if err := f.record("ListTags"); err != nil {
		return nil, err
	}
	return f.tags, nil
}

func (f *fakeVCS) TagExists(_ context.Context, name string) (bool, error) {
	if err := f.record("TagExists", name); err != nil {
		return false, err
	}
	for _, list := range [][]string{f.tags, f.remoteOnly} {
		for _, t := range list {
			if t == name {
				return true, nil
			}
		}
	}
	return false, nil
}

func (f *fakeVCS) Add(_ context.Context, pattern string) error {
	return f.record("Add", pattern)
}

func (f *fakeVCS) HasStagedChanges(_ context.Context) (bool, error) {
	if err := f.record("HasStagedChanges"); err != nil {
		return false, err
	}
	return f.staged, nil
}

func (f *fakeVCS) Commit(_ context.Context, message string) error {
	return f.record("Commit", message)
}

func (f *fakeVCS) CreateTag(_ context.Context, name string) error {
	if err := f.record("CreateTag", name); err != nil {
		return err
	}
	f.tags = append(f.tags, name)
	return nil
}

func (f *fakeVCS) PushTags(_ context.Context, remote string) error {
	return f.record("PushTags", remote)
}

func (f *fakeVCS) Push(_ context.Context, remote, branch string) error {
	return f.record("Push", remote, branch)
}

func (f *fakeVCS) Checkout(_ context.Context, branch string) error {
	if err := f.record("Checkout", branch); err != nil {
		return err
	}
	f.checkout = branch
	return nil
}

type report struct {
	Stage  release.Stage
	Status release.Status
	Detail string
}

type fakeReporter struct {
	reports []report
}

func (f *fakeReporter) Report(stage release.Stage, status release.Status, detail string) {
	f.reports = append(f.reports, report{Stage: stage, Status: status, Detail: detail})
}

// final returns the last non-running status reported for each stage
func (f *fakeReporter) final() map[release.Stage]release.Status {
	out := map[release.Stage]release.Status{}
	for _, r := range f.reports {
		if r.Status != release.StatusRunning {
			out[r.Stage] = r.Status
		}
	}
	return out
}

type fakePrompter struct {
	answer    bool
	bump      version.Bump
	err       error
	questions []string
	selected  int
}

func (f *fakePrompter) Confirm(question string) (bool, error) {
	f.questions = append(f.questions, question)
	return f.answer, f.err
}

func (f *fakePrompter) SelectBump(defaultBump version.Bump) (version.Bump, error) {
	f.selected++
	if f.bump == "" {
		return defaultBump, f.err
	}
	return f.bump, f.err
}

type fakeLogger struct {
	warnings []string
	infos    []string
}

func (f *fakeLogger) Info(format string, args ...interface{}) {
	f.infos = append(f.infos, fmt.Sprintf(format, args...))
}

func (f *fakeLogger) Warn(format string, args ...interface{}) {
	f.warnings = append(f.warnings, fmt.Sprintf(format, args...))
}

func (f *fakeLogger) Debug(string, ...interface{}) {}
