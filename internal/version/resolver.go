package version

import (
	"sort"

	"github.com/Masterminds/semver/v3"

	"shipit.dev/shipit/internal/policy"
)

// TopTagCount is the number of sorted tags kept for display
const TopTagCount = 5

// Tag is a tag name paired with the version it parses to
type Tag struct {
	Name    string
	Version *semver.Version
}

// Resolution is the outcome of current-version discovery
type Resolution struct {
	// Current is the highest visible tag, or the fallback
	Current *semver.Version
	// FromTags is false when no visible tag existed and Current is the fallback
	FromTags bool
	// Top holds up to TopTagCount visible tags, highest first. Display only.
	Top []Tag
}

// VisibleTags parses tags and returns the semver ones that branch may see,
// sorted by descending precedence. Equal precedence keeps input order.
//
// On develop, tags on the beta train are hidden: stage's in-flight betas are
// not develop's current version.
func VisibleTags(tags []string, branch string) []Tag {
	visible := make([]Tag, 0, len(tags))
	for _, name := range tags {
		v, ok := ParseTag(name)
		if !ok {
			continue
		}
		if branch == policy.Develop && hasPrereleaseMarker(v, Beta) {
			continue
		}
		visible = append(visible, Tag{Name: name, Version: v})
	}

	sort.SliceStable(visible, func(i, j int) bool {
		return visible[i].Version.GreaterThan(visible[j].Version)
	})
	return visible
}

// ResolveCurrent selects the current version among tags for branch, falling
// back to the version declared in project metadata when no tag is usable.
func ResolveCurrent(tags []string, branch string, fallback *semver.Version) Resolution {
	visible := VisibleTags(tags, branch)
	if len(visible) == 0 {
		return Resolution{Current: fallback}
	}

	top := visible
	if len(top) > TopTagCount {
		top = top[:TopTagCount]
	}
	return Resolution{
		Current:  visible[0].Version,
		FromTags: true,
		Top:      append([]Tag(nil), top...),
	}
}
