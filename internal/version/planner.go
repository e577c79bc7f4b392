package version

import (
	"fmt"

	"github.com/Masterminds/semver/v3"

	shipiterrors "shipit.dev/shipit/internal/errors"
	"shipit.dev/shipit/internal/policy"
)

// OnTrain reports whether v is an alpha or beta prerelease
func OnTrain(v *semver.Version) bool {
	return hasPrereleaseMarker(v, Alpha) || hasPrereleaseMarker(v, Beta)
}

// RequiresManualBump reports whether planning from old on branch opens a new
// train and therefore needs the caller to choose the bump.
func RequiresManualBump(old *semver.Version, branch string) bool {
	return branch == policy.Develop && !OnTrain(old)
}

// PlanNext computes the version that follows old on branch.
//
// bump is only consulted on develop when old is a clean release; an empty bump
// means patch. The result is always strictly greater than old.
func PlanNext(old *semver.Version, branch string, bump Bump) (*semver.Version, error) {
	env, err := policy.Resolve(branch)
	if err != nil {
		return nil, err
	}

	var next *semver.Version
	switch env.Strategy {
	case policy.StrategyPatch:
		next = increment(old, BumpPatch)
	case policy.StrategyBetaIncrement:
		next, err = incrementPrerelease(old, Beta)
	case policy.StrategyAlphaTrain:
		if OnTrain(old) {
			next, err = incrementPrerelease(old, Alpha)
			break
		}
		b, err := ParseBump(string(bump))
		if err != nil {
			return nil, err
		}
		opened := increment(old, b)
		next = semver.New(opened.Major(), opened.Minor(), opened.Patch(), Alpha+".0", "")
	default:
		return nil, fmt.Errorf("no planner for strategy %s", env.Strategy)
	}
	if err != nil {
		return nil, err
	}

	if !next.GreaterThan(old) {
		return nil, fmt.Errorf("%w: %s -> %s on %s", shipiterrors.ErrNonMonotonicVersion, old, next, branch)
	}
	return next, nil
}
