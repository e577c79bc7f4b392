// Package plan holds the release plan: the versions, branch and targets of a
// run, fixed before the user is asked to confirm.
package plan

import (
	"fmt"

	"github.com/Masterminds/semver/v3"

	"shipit.dev/shipit/internal/config"
	"shipit.dev/shipit/internal/policy"
	"shipit.dev/shipit/internal/version"
)

// ReleasePlan is immutable once built. Fields are reachable through accessors only.
type ReleasePlan struct {
	old     *semver.Version
	next    *semver.Version
	env     policy.Environment
	bump    version.Bump
	targets []config.Target
}

// New computes the next version for branch and returns the plan for it
func New(old *semver.Version, branch string, bump version.Bump, targets []config.Target) (*ReleasePlan, error) {
	if old == nil {
		return nil, fmt.Errorf("current version is required")
	}
	env, err := policy.Resolve(branch)
	if err != nil {
		return nil, err
	}
	next, err := version.PlanNext(old, branch, bump)
	if err != nil {
		return nil, err
	}
	if version.RequiresManualBump(old, branch) {
		// already validated by PlanNext
		bump, _ = version.ParseBump(string(bump))
	} else {
		bump = ""
	}

	copied := make([]config.Target, len(targets))
	copy(copied, targets)

	return &ReleasePlan{
		old:     old,
		next:    next,
		env:     env,
		bump:    bump,
		targets: copied,
	}, nil
}

// Old returns the current version
func (p *ReleasePlan) Old() *semver.Version { return p.old }

// New returns the version being released
func (p *ReleasePlan) New() *semver.Version { return p.next }

// Branch returns the branch being released
func (p *ReleasePlan) Branch() string { return p.env.Branch }

// Environment returns the resolved branch policy
func (p *ReleasePlan) Environment() policy.Environment { return p.env }

// Bump returns the manual bump, empty when the branch policy decided alone
func (p *ReleasePlan) Bump() version.Bump { return p.bump }

// Targets returns a copy of the files to update
func (p *ReleasePlan) Targets() []config.Target {
	out := make([]config.Target, len(p.targets))
	copy(out, p.targets)
	return out
}

// Tag returns the tag name for the new version
func (p *ReleasePlan) Tag() string {
	return version.FormatTag(p.next)
}

// Question is the confirmation prompt shown before anything is written
func (p *ReleasePlan) Question() string {
	return fmt.Sprintf("Version will go from %s to %s. Deploy %s to %s env?",
		version.Format(p.old, false), version.Format(p.next, false), p.env.Branch, p.env.Label)
}

// String implements fmt.Stringer
func (p *ReleasePlan) String() string {
	return fmt.Sprintf("%s: %s -> %s (%s)", p.env.Branch, p.old, p.next, p.env.Label)
}
