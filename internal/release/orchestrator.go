// Package release sequences a release run: branch check, sync, version
// discovery, confirmation, file updates and the commit/tag/push cycle.
package release

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"

	"shipit.dev/shipit/internal/config"
	shipiterrors "shipit.dev/shipit/internal/errors"
	"shipit.dev/shipit/internal/plan"
	"shipit.dev/shipit/internal/policy"
	"shipit.dev/shipit/internal/version"
	"shipit.dev/shipit/internal/writer"
)

// TagPlaceholder is replaced by the release tag in the commit message
const TagPlaceholder = "{tag}"

// DetailDeclined is the detail reported with the stage the user declined at
const DetailDeclined = "declined"

// Options configure a release run
type Options struct {
	// Root is the project root the targets are relative to
	Root string
	// Remote to fetch from and push to
	Remote string
	// ReturnBranch is checked out after releasing from any other branch
	ReturnBranch string
	// StagePattern is passed to git add before committing
	StagePattern string
	// CommitMessage may contain {tag}
	CommitMessage string
	// Bump preselects the bump used when develop opens a new train
	Bump version.Bump
	// AssumeYes skips the confirmation question
	AssumeYes bool
	// FallbackVersion is the project metadata version, used when no tag exists
	FallbackVersion *semver.Version
	Targets         []config.Target
	// ShowTags displays the most recent tags, optional
	ShowTags TagPrinter
}

// Result is the state threaded through the steps of a run
type Result struct {
	// Stage is StageDone or StageAborted once Run returns
	Stage       Stage
	Branch      string
	Environment policy.Environment
	Resolution  version.Resolution
	Plan        *plan.ReleasePlan
	Changes     []writer.Change
	// Skipped lists the stages that had nothing to do
	Skipped []Stage
}

type stepFunc func(ctx context.Context, r *Result) (Status, string, error)

// Orchestrator drives a release through its stages
type Orchestrator struct {
	vcs      VCS
	reporter Reporter
	prompter Prompter
	log      Logger
	writer   *writer.Writer
	opts     Options
	steps    map[Stage]stepFunc
}

// transitions is the happy path. PushBranch is resolved at runtime since
// ReturnToDevelop only runs off the return branch.
var transitions = map[Stage]Stage{
	StageInit:             StageBranchCheck,
	StageBranchCheck:      StageSync,
	StageSync:             StageVersionDiscovery,
	StageVersionDiscovery: StageConfirm,
	StageConfirm:          StageWriting,
	StageWriting:          StageCommit,
	StageCommit:           StageTag,
	StageTag:              StagePushTag,
	StagePushTag:          StagePushBranch,
	StagePushBranch:       StageReturnToDevelop,
	StageReturnToDevelop:  StageDone,
}

// New creates an Orchestrator
func New(vcs VCS, reporter Reporter, prompter Prompter, log Logger, opts Options) *Orchestrator {
	if opts.ReturnBranch == "" {
		opts.ReturnBranch = policy.Develop
	}
	if opts.StagePattern == "" {
		opts.StagePattern = "."
	}
	if opts.CommitMessage == "" {
		opts.CommitMessage = "Released " + TagPlaceholder
	}

	o := &Orchestrator{
		vcs:      vcs,
		reporter: reporter,
		prompter: prompter,
		log:      log,
		writer:   writer.New(opts.Root),
		opts:     opts,
	}
	o.writer.OnChange = func(c writer.Change) {
		o.log.Debug("%s: %s %v -> %s", c.File, c.Expression, c.Previous, c.Value)
	}
	o.steps = map[Stage]stepFunc{
		StageInit:             o.init,
		StageBranchCheck:      o.branchCheck,
		StageSync:             o.sync,
		StageVersionDiscovery: o.discoverVersion,
		StageConfirm:          o.confirm,
		StageWriting:          o.write,
		StageCommit:           o.commit,
		StageTag:              o.tag,
		StagePushTag:          o.pushTag,
		StagePushBranch:       o.pushBranch,
		StageReturnToDevelop:  o.returnToDevelop,
	}
	return o
}

// Run executes the release. A declined confirmation returns an error
// matching ErrDeclined; any other error is wrapped in a StepError.
func (o *Orchestrator) Run(ctx context.Context) (*Result, error) {
	r := &Result{Stage: StageInit}

	stage := StageInit
	for stage != StageDone {
		r.Stage = stage
		if err := ctx.Err(); err != nil {
			return o.abort(r, stage, err)
		}

		o.reporter.Report(stage, StatusRunning, "")
		status, detail, err := o.steps[stage](ctx, r)
		if err != nil {
			if stage == StageReturnToDevelop {
				// the release itself is complete
				o.reporter.Report(stage, StatusFailed, err.Error())
				o.log.Warn("Released, but could not return to %s: %v", o.opts.ReturnBranch, err)
				stage = StageDone
				continue
			}
			return o.abort(r, stage, err)
		}
		if status == StatusSkipped {
			r.Skipped = append(r.Skipped, stage)
		}
		o.reporter.Report(stage, status, detail)
		stage = o.next(stage, r)
	}

	r.Stage = StageDone
	o.reporter.Report(StageDone, StatusDone, r.Plan.Tag())
	return r, nil
}

func (o *Orchestrator) next(stage Stage, r *Result) Stage {
	if stage == StagePushBranch && r.Branch == o.opts.ReturnBranch {
		return StageDone
	}
	return transitions[stage]
}

func (o *Orchestrator) abort(r *Result, stage Stage, err error) (*Result, error) {
	r.Stage = StageAborted
	if shipiterrors.IsDeclined(err) {
		o.reporter.Report(stage, StatusSkipped, DetailDeclined)
		o.reporter.Report(StageAborted, StatusSkipped, "")
	} else {
		o.reporter.Report(stage, StatusFailed, err.Error())
		o.reporter.Report(StageAborted, StatusFailed, stage.String())
	}
	return r, shipiterrors.NewStepError(stage.String(), err)
}

func (o *Orchestrator) init(_ context.Context, _ *Result) (Status, string, error) {
	if strings.TrimSpace(o.opts.Remote) == "" {
		return "", "", shipiterrors.NewConfigError("remote", errors.New("must not be empty"))
	}
	if o.opts.Root == "" {
		return "", "", shipiterrors.NewConfigError("root", errors.New("must not be empty"))
	}
	if len(o.opts.Targets) == 0 {
		return "", "", shipiterrors.NewConfigError("config", errors.New("no release targets"))
	}
	if o.opts.Bump != "" {
		if _, err := version.ParseBump(string(o.opts.Bump)); err != nil {
			return "", "", shipiterrors.NewConfigError("--bump", err)
		}
	}
	return StatusDone, fmt.Sprintf("%d targets", len(o.opts.Targets)), nil
}

func (o *Orchestrator) branchCheck(ctx context.Context, r *Result) (Status, string, error) {
	branch, err := o.vcs.CurrentBranch(ctx)
	if err != nil {
		return "", "", err
	}
	env, err := policy.Resolve(branch)
	if err != nil {
		return "", "", err
	}
	r.Branch = branch
	r.Environment = env
	return StatusDone, fmt.Sprintf("%s (%s)", branch, env.Label), nil
}

func (o *Orchestrator) sync(ctx context.Context, r *Result) (Status, string, error) {
	if err := o.vcs.Fetch(ctx, o.opts.Remote, true); err != nil {
		return "", "", err
	}
	if err := o.vcs.Pull(ctx, o.opts.Remote, r.Branch); err != nil {
		return "", "", err
	}
	return StatusDone, o.opts.Remote + "/" + r.Branch, nil
}

func (o *Orchestrator) discoverVersion(ctx context.Context, r *Result) (Status, string, error) {
	tags, err := o.vcs.ListTags(ctx)
	if err != nil {
		return "", "", err
	}

	res := version.ResolveCurrent(tags, r.Branch, o.opts.FallbackVersion)
	if res.Current == nil {
		return "", "", shipiterrors.NewConfigError("metadata", errors.New("no release tags found and no fallback version"))
	}
	r.Resolution = res

	if !res.FromTags {
		o.log.Warn("No release tags found, starting from %s", res.Current)
		return StatusDone, res.Current.String() + " (metadata)", nil
	}
	if o.opts.ShowTags != nil {
		o.opts.ShowTags(res.Top)
	}
	return StatusDone, res.Current.String(), nil
}

func (o *Orchestrator) confirm(_ context.Context, r *Result) (Status, string, error) {
	current := r.Resolution.Current

	bump := o.opts.Bump
	if bump == "" && version.RequiresManualBump(current, r.Branch) {
		if o.opts.AssumeYes {
			bump = version.BumpPatch
		} else {
			chosen, err := o.prompter.SelectBump(version.BumpPatch)
			if err != nil {
				return "", "", err
			}
			bump = chosen
		}
	}

	p, err := plan.New(current, r.Branch, bump, o.opts.Targets)
	if err != nil {
		return "", "", err
	}
	r.Plan = p

	if !o.opts.AssumeYes {
		ok, err := o.prompter.Confirm(p.Question())
		if err != nil {
			return "", "", err
		}
		if !ok {
			return "", "", shipiterrors.ErrDeclined
		}
	}
	return StatusDone, fmt.Sprintf("%s -> %s", p.Old(), p.New()), nil
}

func (o *Orchestrator) write(_ context.Context, r *Result) (Status, string, error) {
	changes, err := o.writer.Apply(r.Plan)
	r.Changes = changes
	if err != nil {
		return "", "", err
	}
	return StatusDone, fmt.Sprintf("%d values in %d files", len(changes), len(r.Plan.Targets())), nil
}

func (o *Orchestrator) commit(ctx context.Context, r *Result) (Status, string, error) {
	if err := o.vcs.Add(ctx, o.opts.StagePattern); err != nil {
		return "", "", err
	}
	staged, err := o.vcs.HasStagedChanges(ctx)
	if err != nil {
		return "", "", err
	}
	if !staged {
		o.log.Warn("Nothing to commit, version files already at %s", r.Plan.New())
		return StatusSkipped, "nothing to commit", nil
	}

	message := strings.ReplaceAll(o.opts.CommitMessage, TagPlaceholder, r.Plan.Tag())
	if err := o.vcs.Commit(ctx, message); err != nil {
		return "", "", err
	}
	return StatusDone, message, nil
}

func (o *Orchestrator) tag(ctx context.Context, r *Result) (Status, string, error) {
	name := r.Plan.Tag()
	exists, err := o.vcs.TagExists(ctx, name)
	if err != nil {
		return "", "", err
	}
	if exists {
		o.log.Warn("Tag %s already exists, not creating it", name)
		return StatusSkipped, name + " exists", nil
	}
	if err := o.vcs.CreateTag(ctx, name); err != nil {
		return "", "", err
	}
	return StatusDone, name, nil
}

func (o *Orchestrator) pushTag(ctx context.Context, _ *Result) (Status, string, error) {
	if err := o.vcs.PushTags(ctx, o.opts.Remote); err != nil {
		return "", "", err
	}
	return StatusDone, o.opts.Remote, nil
}

func (o *Orchestrator) pushBranch(ctx context.Context, r *Result) (Status, string, error) {
	if err := o.vcs.Push(ctx, o.opts.Remote, r.Branch); err != nil {
		return "", "", err
	}
	return StatusDone, o.opts.Remote + "/" + r.Branch, nil
}

func (o *Orchestrator) returnToDevelop(ctx context.Context, _ *Result) (Status, string, error) {
	if err := o.vcs.Checkout(ctx, o.opts.ReturnBranch); err != nil {
		return "", "", err
	}
	if err := o.vcs.Pull(ctx, o.opts.Remote, o.opts.ReturnBranch); err != nil {
		return "", "", err
	}
	return StatusDone, o.opts.ReturnBranch, nil
}
