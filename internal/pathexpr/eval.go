package pathexpr

import (
	"errors"

	"shipit.dev/shipit/internal/document"
	shipiterrors "shipit.dev/shipit/internal/errors"
)

// ErrRootAssignment is returned when a path with no segments is used for Set
var ErrRootAssignment = errors.New("cannot assign to the document root")

// SetOptions controls how Set treats missing members
type SetOptions struct {
	// CreateMissing creates absent object members instead of failing.
	// Array indexes and wildcards never create anything.
	CreateMissing bool
}

// Get returns every value matched by path.
//
// Under a wildcard, branches that do not match are skipped; a
// PathNotFoundError is returned only when nothing matches at all.
func Get(root any, path Path) ([]any, error) {
	current := []any{root}
	for _, seg := range path.segments {
		var next []any
		for _, node := range current {
			next = append(next, children(node, seg)...)
		}
		if len(next) == 0 {
			return nil, shipiterrors.NewPathNotFoundError(path.raw, seg.String())
		}
		current = next
	}
	return current, nil
}

// Set overwrites every value matched by path with value and returns the
// values that were replaced (nil for created members), in match order.
func Set(root any, path Path, value any, opts SetOptions) ([]any, error) {
	if len(path.segments) == 0 {
		return nil, ErrRootAssignment
	}

	parents := []any{root}
	last := len(path.segments) - 1
	for _, seg := range path.segments[:last] {
		var next []any
		for _, node := range parents {
			if opts.CreateMissing {
				createMember(node, seg)
			}
			next = append(next, children(node, seg)...)
		}
		if len(next) == 0 {
			return nil, shipiterrors.NewPathNotFoundError(path.raw, seg.String())
		}
		parents = next
	}

	leaf := path.segments[last]
	var previous []any
	for _, node := range parents {
		previous = append(previous, assign(node, leaf, value, opts)...)
	}
	if len(previous) == 0 {
		return nil, shipiterrors.NewPathNotFoundError(path.raw, leaf.String())
	}
	return previous, nil
}

func children(node any, seg Segment) []any {
	switch seg.Kind {
	case SegmentKey:
		if obj, ok := node.(*document.Object); ok {
			if v, found := obj.Get(seg.Key); found {
				return []any{v}
			}
		}
	case SegmentIndex:
		if arr, ok := node.(*document.Array); ok && seg.Index < arr.Len() {
			return []any{arr.Items[seg.Index]}
		}
	case SegmentWildcard:
		switch n := node.(type) {
		case *document.Object:
			out := make([]any, 0, n.Len())
			for _, k := range n.Keys() {
				v, _ := n.Get(k)
				out = append(out, v)
			}
			return out
		case *document.Array:
			return append([]any(nil), n.Items...)
		}
	}
	return nil
}

// createMember adds an empty object under a missing key so the walk can continue
func createMember(node any, seg Segment) {
	if seg.Kind != SegmentKey {
		return
	}
	obj, ok := node.(*document.Object)
	if !ok {
		return
	}
	if _, found := obj.Get(seg.Key); !found {
		obj.Set(seg.Key, document.NewObject())
	}
}

// assign sets value on the members of node selected by seg and returns the old values
func assign(node any, seg Segment, value any, opts SetOptions) []any {
	switch seg.Kind {
	case SegmentKey:
		obj, ok := node.(*document.Object)
		if !ok {
			return nil
		}
		old, found := obj.Get(seg.Key)
		if !found && !opts.CreateMissing {
			return nil
		}
		obj.Set(seg.Key, value)
		return []any{old}
	case SegmentIndex:
		arr, ok := node.(*document.Array)
		if !ok || seg.Index >= arr.Len() {
			return nil
		}
		old := arr.Items[seg.Index]
		arr.Items[seg.Index] = value
		return []any{old}
	case SegmentWildcard:
		var replaced []any
		switch n := node.(type) {
		case *document.Object:
			for _, k := range n.Keys() {
				old, _ := n.Get(k)
				n.Set(k, value)
				replaced = append(replaced, old)
			}
		case *document.Array:
			for i, old := range n.Items {
				n.Items[i] = value
				replaced = append(replaced, old)
			}
		}
		return replaced
	}
	return nil
}
