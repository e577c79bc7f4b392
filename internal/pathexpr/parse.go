// Package pathexpr implements a restricted JSONPath dialect for reading and
// overwriting values in a document tree.
//
// Supported syntax:
//
//	$                 the root (optional)
//	.name             object member
//	['name'] ["name"] object member with arbitrary characters
//	[3]               array element
//	.* [*]            every member or element
//
// Version keys in release manifests may contain {branch} placeholders; see Expand.
package pathexpr

import (
	"fmt"
	"strconv"
	"strings"
)

// SegmentKind distinguishes the kinds of path segments
type SegmentKind int

const (
	// SegmentKey selects an object member
	SegmentKey SegmentKind = iota
	// SegmentIndex selects an array element
	SegmentIndex
	// SegmentWildcard selects every member or element
	SegmentWildcard
)

// Segment is one step of a path
type Segment struct {
	Kind  SegmentKind
	Key   string
	Index int
}

func (s Segment) String() string {
	switch s.Kind {
	case SegmentIndex:
		return fmt.Sprintf("[%d]", s.Index)
	case SegmentWildcard:
		return "[*]"
	default:
		return strconv.Quote(s.Key)
	}
}

// Path is a parsed path expression
type Path struct {
	raw      string
	segments []Segment
}

// String returns the expression the path was parsed from
func (p Path) String() string {
	return p.raw
}

// Segments returns a copy of the path segments
func (p Path) Segments() []Segment {
	return append([]Segment(nil), p.segments...)
}

// SyntaxError reports an invalid path expression
type SyntaxError struct {
	Expr   string
	Offset int
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("invalid path %q at offset %d: %s", e.Expr, e.Offset, e.Msg)
}

// Parse tokenizes expr into a Path
func Parse(expr string) (Path, error) {
	p := &parser{src: strings.TrimSpace(expr)}
	segments, err := p.parse()
	if err != nil {
		return Path{}, err
	}
	return Path{raw: p.src, segments: segments}, nil
}

// MustParse is like Parse but panics on error. For tests and constants.
func MustParse(expr string) Path {
	p, err := Parse(expr)
	if err != nil {
		panic(err)
	}
	return p
}

type parser struct {
	src string
	pos int
}

func (p *parser) fail(format string, args ...any) error {
	return &SyntaxError{Expr: p.src, Offset: p.pos, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) parse() ([]Segment, error) {
	if p.src == "" {
		return nil, p.fail("empty expression")
	}

	if p.src[0] == '$' {
		p.pos++
	} else if p.src[0] != '.' && p.src[0] != '[' {
		// Bare "a.b" is read as "$.a.b"
		seg, err := p.name()
		if err != nil {
			return nil, err
		}
		return p.rest([]Segment{seg})
	}
	return p.rest(nil)
}

func (p *parser) rest(segments []Segment) ([]Segment, error) {
	for p.pos < len(p.src) {
		switch p.src[p.pos] {
		case '.':
			p.pos++
			if p.pos < len(p.src) && p.src[p.pos] == '.' {
				return nil, p.fail("recursive descent is not supported")
			}
			seg, err := p.name()
			if err != nil {
				return nil, err
			}
			segments = append(segments, seg)
		case '[':
			seg, err := p.bracket()
			if err != nil {
				return nil, err
			}
			segments = append(segments, seg)
		default:
			return nil, p.fail("unexpected %q", p.src[p.pos])
		}
	}
	return segments, nil
}

func (p *parser) name() (Segment, error) {
	start := p.pos
	for p.pos < len(p.src) && p.src[p.pos] != '.' && p.src[p.pos] != '[' {
		p.pos++
	}
	name := p.src[start:p.pos]
	switch {
	case name == "":
		return Segment{}, p.fail("expected member name")
	case name == "*":
		return Segment{Kind: SegmentWildcard}, nil
	case strings.ContainsAny(name, "]'\" "):
		return Segment{}, p.fail("invalid member name %q", name)
	}
	return Segment{Kind: SegmentKey, Key: name}, nil
}

func (p *parser) bracket() (Segment, error) {
	p.pos++ // '['
	if p.pos >= len(p.src) {
		return Segment{}, p.fail("unterminated bracket")
	}

	var seg Segment
	switch c := p.src[p.pos]; {
	case c == '\'' || c == '"':
		key, err := p.quoted(c)
		if err != nil {
			return Segment{}, err
		}
		seg = Segment{Kind: SegmentKey, Key: key}
	case c == '*':
		p.pos++
		seg = Segment{Kind: SegmentWildcard}
	default:
		start := p.pos
		for p.pos < len(p.src) && p.src[p.pos] >= '0' && p.src[p.pos] <= '9' {
			p.pos++
		}
		if start == p.pos {
			return Segment{}, p.fail("expected index, quoted name or *")
		}
		index, err := strconv.Atoi(p.src[start:p.pos])
		if err != nil {
			return Segment{}, p.fail("invalid index: %v", err)
		}
		seg = Segment{Kind: SegmentIndex, Index: index}
	}

	if p.pos >= len(p.src) || p.src[p.pos] != ']' {
		return Segment{}, p.fail("expected ]")
	}
	p.pos++
	return seg, nil
}

func (p *parser) quoted(quote byte) (string, error) {
	p.pos++ // opening quote
	var b strings.Builder
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		switch {
		case c == '\\' && p.pos+1 < len(p.src):
			b.WriteByte(p.src[p.pos+1])
			p.pos += 2
		case c == quote:
			p.pos++
			return b.String(), nil
		default:
			b.WriteByte(c)
			p.pos++
		}
	}
	return "", p.fail("unterminated quoted name")
}
