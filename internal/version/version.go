// Package version discovers the current release version from tags and plans
// the next one according to the branch release policy.
//
// Parsing and precedence come from Masterminds/semver. This package adds the
// prerelease train arithmetic that semver libraries leave to the caller.
package version

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"

	shipiterrors "shipit.dev/shipit/internal/errors"
)

// TagPrefix is prepended to versions when they are used as tag names
const TagPrefix = "v"

// Prerelease identifiers used by the release trains
const (
	Alpha = "alpha"
	Beta  = "beta"
)

// Bump selects the version component incremented when a new train is opened
type Bump string

const (
	BumpPatch Bump = "patch"
	BumpMinor Bump = "minor"
	BumpMajor Bump = "major"
)

// Bumps returns the valid manual bump choices, patch first
func Bumps() []Bump {
	return []Bump{BumpPatch, BumpMinor, BumpMajor}
}

// ParseBump validates a bump name. An empty name means patch.
func ParseBump(s string) (Bump, error) {
	switch Bump(strings.ToLower(strings.TrimSpace(s))) {
	case "", BumpPatch:
		return BumpPatch, nil
	case BumpMinor:
		return BumpMinor, nil
	case BumpMajor:
		return BumpMajor, nil
	}
	return "", fmt.Errorf("%w: %q (expected patch, minor or major)", shipiterrors.ErrInvalidBump, s)
}

// Parse parses a strict semantic version, tolerating one leading "v"
func Parse(s string) (*semver.Version, error) {
	return semver.StrictNewVersion(strings.TrimPrefix(strings.TrimSpace(s), TagPrefix))
}

// ParseTag parses a tag name into a version. ok is false for non-semver tags.
func ParseTag(tag string) (*semver.Version, bool) {
	v, err := Parse(tag)
	if err != nil {
		return nil, false
	}
	return v, true
}

// FormatTag returns the tag name for a version
func FormatTag(v *semver.Version) string {
	return TagPrefix + v.String()
}

// Format renders a version for a target file, with or without the tag prefix
func Format(v *semver.Version, withPrefix bool) string {
	if withPrefix {
		return FormatTag(v)
	}
	return v.String()
}

func prereleaseIdentifiers(v *semver.Version) []string {
	if v.Prerelease() == "" {
		return nil
	}
	return strings.Split(v.Prerelease(), ".")
}

// hasPrereleaseMarker reports whether any prerelease identifier of v starts with marker
func hasPrereleaseMarker(v *semver.Version, marker string) bool {
	for _, id := range prereleaseIdentifiers(v) {
		if strings.HasPrefix(id, marker) {
			return true
		}
	}
	return false
}

// increment bumps one version component and drops any prerelease
func increment(v *semver.Version, bump Bump) *semver.Version {
	switch bump {
	case BumpMajor:
		return semver.New(v.Major()+1, 0, 0, "", "")
	case BumpMinor:
		return semver.New(v.Major(), v.Minor()+1, 0, "", "")
	default:
		return semver.New(v.Major(), v.Minor(), v.Patch()+1, "", "")
	}
}

// incrementPrerelease advances v along the train named by id.
//
// A clean release opens id.0 on the next patch. A prerelease already on the
// train has its trailing number incremented. A prerelease on another train
// switches to id.0 on the same core, or on the next patch when that would sort
// below v.
func incrementPrerelease(v *semver.Version, id string) (*semver.Version, error) {
	ids := prereleaseIdentifiers(v)
	if len(ids) == 0 {
		return semver.New(v.Major(), v.Minor(), v.Patch()+1, id+".0", ""), nil
	}

	if ids[0] == id {
		next := make([]string, len(ids))
		copy(next, ids)
		bumped := false
		for i := len(next) - 1; i >= 0; i-- {
			if n, err := strconv.ParseUint(next[i], 10, 64); err == nil {
				if n == math.MaxUint64 {
					return nil, fmt.Errorf("%w: prerelease number %s of %s", shipiterrors.ErrVersionOverflow, next[i], v)
				}
				next[i] = strconv.FormatUint(n+1, 10)
				bumped = true
				break
			}
		}
		if !bumped {
			next = append(next, "0")
		}
		return semver.New(v.Major(), v.Minor(), v.Patch(), strings.Join(next, "."), ""), nil
	}

	candidate := semver.New(v.Major(), v.Minor(), v.Patch(), id+".0", "")
	if candidate.GreaterThan(v) {
		return candidate, nil
	}
	return semver.New(v.Major(), v.Minor(), v.Patch()+1, id+".0", ""), nil
}
