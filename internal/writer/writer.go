// Package writer writes a release version into the target files of a plan.
package writer

import (
	"errors"

	"shipit.dev/shipit/internal/config"
	"shipit.dev/shipit/internal/document"
	shipiterrors "shipit.dev/shipit/internal/errors"
	"shipit.dev/shipit/internal/pathexpr"
	"shipit.dev/shipit/internal/plan"
	"shipit.dev/shipit/internal/version"
)

// Change is one value overwritten in a target file
type Change struct {
	Target     string
	File       string
	Expression string
	Previous   any
	Value      string
}

// Writer applies release plans to files under Root
type Writer struct {
	Root string
	// OnChange, when set, is called for every applied change
	OnChange func(Change)
}

// New creates a Writer rooted at root
func New(root string) *Writer {
	return &Writer{Root: root}
}

// Apply writes the new version of p into every target, in declared order.
//
// A file is saved only when all of its expressions were applied. Files saved
// before a failure stay rewritten; the returned changes include them.
func (w *Writer) Apply(p *plan.ReleasePlan) ([]Change, error) {
	vars := pathexpr.Vars{pathexpr.VarBranch: p.Branch()}

	var applied []Change
	for _, target := range p.Targets() {
		changes, err := w.applyTarget(target, p, vars)
		if err != nil {
			return applied, err
		}
		applied = append(applied, changes...)
	}
	return applied, nil
}

func (w *Writer) applyTarget(target config.Target, p *plan.ReleasePlan, vars pathexpr.Vars) ([]Change, error) {
	path := target.Path(w.Root)
	file, err := document.Load(path)
	if err != nil {
		return nil, err
	}

	value := version.Format(p.New(), target.Prefix)
	opts := pathexpr.SetOptions{CreateMissing: target.CreateMissing}

	var changes []Change
	for _, key := range target.VersionKeys {
		expr, err := pathexpr.ParseTemplate(key, vars)
		if err != nil {
			return nil, shipiterrors.NewConfigError(target.Name, err)
		}

		previous, err := pathexpr.Set(file.Root, expr, value, opts)
		if err != nil {
			var notFound *shipiterrors.PathNotFoundError
			if errors.As(err, &notFound) {
				notFound.File = target.File
			}
			return nil, err
		}

		for _, prev := range previous {
			changes = append(changes, Change{
				Target:     target.Name,
				File:       target.File,
				Expression: expr.String(),
				Previous:   prev,
				Value:      value,
			})
		}
	}

	if err := file.Save(); err != nil {
		return nil, err
	}
	if w.OnChange != nil {
		for _, c := range changes {
			w.OnChange(c)
		}
	}
	return changes, nil
}
