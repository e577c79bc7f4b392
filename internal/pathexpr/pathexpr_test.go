package pathexpr

import (
	"testing"

	"github.com/stretchr/testify/require"

	"shipit.dev/shipit/internal/document"
	shipiterrors "shipit.dev/shipit/internal/errors"
)

func TestParse(t *testing.T) {
	tests := []struct {
		expr string
		want []Segment
	}{
		{"$", nil},
		{"$.version", []Segment{{Kind: SegmentKey, Key: "version"}}},
		{"version", []Segment{{Kind: SegmentKey, Key: "version"}}},
		{".version", []Segment{{Kind: SegmentKey, Key: "version"}}},
		{"$.versions.stage", []Segment{{Kind: SegmentKey, Key: "versions"}, {Kind: SegmentKey, Key: "stage"}}},
		{"$['app-name'][\"x.y\"]", []Segment{{Kind: SegmentKey, Key: "app-name"}, {Kind: SegmentKey, Key: "x.y"}}},
		{"$.list[2].v", []Segment{{Kind: SegmentKey, Key: "list"}, {Kind: SegmentIndex, Index: 2}, {Kind: SegmentKey, Key: "v"}}},
		{"$.deps.*.version", []Segment{{Kind: SegmentKey, Key: "deps"}, {Kind: SegmentWildcard}, {Kind: SegmentKey, Key: "version"}}},
		{"$.deps[*]", []Segment{{Kind: SegmentKey, Key: "deps"}, {Kind: SegmentWildcard}}},
		{`$['it\'s']`, []Segment{{Kind: SegmentKey, Key: "it's"}}},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			p, err := Parse(tt.expr)
			require.NoError(t, err)
			require.Equal(t, tt.want, p.Segments())
		})
	}
}

func TestParseErrors(t *testing.T) {
	for _, expr := range []string{"", "$.", "$..a", "$[", "$[1", "$['a", "$[-1]", "$[a]", "$.a]", "$x"} {
		t.Run(expr, func(t *testing.T) {
			_, err := Parse(expr)
			var syntaxErr *SyntaxError
			require.ErrorAs(t, err, &syntaxErr)
		})
	}
}

func sampleTree(t *testing.T) any {
	t.Helper()
	root, err := document.JSONCodec{}.Decode([]byte(`{
		"version": "1.0.0",
		"versions": {"develop": "a", "stage": "b", "master": "c"},
		"images": [{"tag": "x"}, {"tag": "y"}, {"name": "z"}],
		"scalar": 3
	}`))
	require.NoError(t, err)
	return root
}

func TestGet(t *testing.T) {
	root := sampleTree(t)

	got, err := Get(root, MustParse("$.versions.stage"))
	require.NoError(t, err)
	require.Equal(t, []any{"b"}, got)

	got, err = Get(root, MustParse("$.images[*].tag"))
	require.NoError(t, err)
	require.Equal(t, []any{"x", "y"}, got)

	got, err = Get(root, MustParse("$"))
	require.NoError(t, err)
	require.Equal(t, []any{root}, got)

	for _, expr := range []string{"$.missing", "$.versions.prod", "$.images[9]", "$.scalar.x", "$.version[0]", "$.images[*].nope"} {
		_, err := Get(root, MustParse(expr))
		require.ErrorIs(t, err, shipiterrors.ErrPathNotFound, expr)
	}
}

func TestSet(t *testing.T) {
	root := sampleTree(t)

	prev, err := Set(root, MustParse("$.version"), "v1.0.1", SetOptions{})
	require.NoError(t, err)
	require.Equal(t, []any{"1.0.0"}, prev)

	prev, err = Set(root, MustParse("$.images[*].tag"), "v2", SetOptions{})
	require.NoError(t, err)
	require.Equal(t, []any{"x", "y"}, prev)

	prev, err = Set(root, MustParse("$.images[2]"), "replaced", SetOptions{})
	require.NoError(t, err)
	require.Len(t, prev, 1)

	out, err := document.JSONCodec{}.Encode(root)
	require.NoError(t, err)
	require.Equal(t, `{
  "version": "v1.0.1",
  "versions": {
    "develop": "a",
    "stage": "b",
    "master": "c"
  },
  "images": [
    {
      "tag": "v2"
    },
    {
      "tag": "v2"
    },
    "replaced"
  ],
  "scalar": 3
}
`, string(out))
}

func TestSetMissingPath(t *testing.T) {
	root := sampleTree(t)

	_, err := Set(root, MustParse("$.app.version"), "1", SetOptions{})
	var notFound *shipiterrors.PathNotFoundError
	require.ErrorAs(t, err, &notFound)
	require.Equal(t, "$.app.version", notFound.Expression)

	_, err = Set(root, MustParse("$.versions.prod"), "1", SetOptions{})
	require.ErrorIs(t, err, shipiterrors.ErrPathNotFound)

	_, err = Set(root, MustParse("$"), "1", SetOptions{})
	require.ErrorIs(t, err, ErrRootAssignment)
}

func TestSetCreateMissing(t *testing.T) {
	root := sampleTree(t)

	prev, err := Set(root, MustParse("$.app.meta.version"), "1.2.3", SetOptions{CreateMissing: true})
	require.NoError(t, err)
	require.Equal(t, []any{nil}, prev)

	got, err := Get(root, MustParse("$.app.meta.version"))
	require.NoError(t, err)
	require.Equal(t, []any{"1.2.3"}, got)

	// Indexes never create
	_, err = Set(root, MustParse("$.images[7].tag"), "1", SetOptions{CreateMissing: true})
	require.ErrorIs(t, err, shipiterrors.ErrPathNotFound)
}

func TestExpand(t *testing.T) {
	vars := Vars{VarBranch: "stage"}

	got, err := Expand("$.versions.{branch}", vars)
	require.NoError(t, err)
	require.Equal(t, "$.versions.stage", got)

	got, err = Expand("$['{{literal}}'].{ branch }", vars)
	require.NoError(t, err)
	require.Equal(t, "$['{literal}'].stage", got)

	got, err = Expand("$.version", vars)
	require.NoError(t, err)
	require.Equal(t, "$.version", got)

	for _, tmpl := range []string{"$.{env}", "$.{branch", "$.a}", "$.{}"} {
		_, err := Expand(tmpl, vars)
		var tmplErr *TemplateError
		require.ErrorAs(t, err, &tmplErr, tmpl)
	}

	_, err = Expand("$.{branch}", Vars{})
	require.Error(t, err)
}

func TestParseTemplate(t *testing.T) {
	p, err := ParseTemplate("$.versions.{branch}", Vars{VarBranch: "stage"})
	require.NoError(t, err)
	require.Equal(t, "$.versions.stage", p.String())
}
