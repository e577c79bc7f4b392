// Package policy maps release branches to their deployment environment and
// version bump strategy.
package policy

import (
	"github.com/agnivade/levenshtein"

	shipiterrors "shipit.dev/shipit/internal/errors"
)

// Release branches
const (
	Develop = "develop"
	Stage   = "stage"
	Master  = "master"
)

// Strategy describes how the next version is derived on a branch
type Strategy string

const (
	// StrategyAlphaTrain continues an existing prerelease train or opens a new alpha one
	StrategyAlphaTrain Strategy = "alpha-train"
	// StrategyBetaIncrement increments the beta prerelease
	StrategyBetaIncrement Strategy = "beta-increment"
	// StrategyPatch increments the patch component
	StrategyPatch Strategy = "patch"
)

// Environment is the policy resolved for a branch
type Environment struct {
	Branch   string
	Strategy Strategy
	Label    string
}

var environments = map[string]Environment{
	Develop: {Branch: Develop, Strategy: StrategyAlphaTrain, Label: "development"},
	Stage:   {Branch: Stage, Strategy: StrategyBetaIncrement, Label: "stage"},
	Master:  {Branch: Master, Strategy: StrategyPatch, Label: "production"},
}

// maxSuggestionDistance bounds how far a branch name may be from an allowed one
// before we stop suggesting it.
const maxSuggestionDistance = 2

// Branches returns the release branches in a fixed order
func Branches() []string {
	return []string{Develop, Stage, Master}
}

// IsReleaseBranch reports whether branch has a release policy
func IsReleaseBranch(branch string) bool {
	_, ok := environments[branch]
	return ok
}

// Resolve returns the environment for branch, or an InvalidBranchError
func Resolve(branch string) (Environment, error) {
	env, ok := environments[branch]
	if !ok {
		return Environment{}, shipiterrors.NewInvalidBranchError(branch, Branches(), suggest(branch))
	}
	return env, nil
}

func suggest(branch string) string {
	if branch == "" {
		return ""
	}
	best := ""
	bestDistance := maxSuggestionDistance + 1
	for _, candidate := range Branches() {
		if d := levenshtein.ComputeDistance(branch, candidate); d < bestDistance {
			best = candidate
			bestDistance = d
		}
	}
	return best
}
