package engine

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustNamer(t *testing.T, mode Mode, prefix string) *Namer {
	t.Helper()
	n, err := NewNamer(mode, prefix)
	require.NoError(t, err)
	return n
}

func TestRewriteMarkup(t *testing.T) {
	content := `<div class="flex items-center p-4"><span class="p-2">x</span></div>`
	occs, err := Parse("a.html", content, KindMarkup)
	require.NoError(t, err)

	n := mustNamer(t, ModeIncremental, "tw-")
	for _, occ := range occs {
		n.Generate(occ.Raw)
	}

	res := Rewrite(content, occs, n)
	assert.True(t, res.Changed)
	assert.Equal(t, 2, res.Replaced)
	assert.Empty(t, res.Skipped)
	assert.Equal(t, `<div class="tw-0"><span class="tw-1">x</span></div>`, res.Text)
}

func TestRewriteKeepsDelimiterConvention(t *testing.T) {
	tests := []struct {
		name    string
		kind    FileKind
		file    string
		content string
		want    string
	}{
		{
			name:    "double quotes",
			kind:    KindMarkup,
			file:    "a.html",
			content: `<div class="flex p-4">`,
			want:    `<div class="tw-0">`,
		},
		{
			name:    "single quotes",
			kind:    KindMarkup,
			file:    "a.html",
			content: `<div class='flex p-4'>`,
			want:    `<div class='tw-0'>`,
		},
		{
			name:    "braced double quoted",
			kind:    KindComponent,
			file:    "a.jsx",
			content: `let C = () => <div className={"flex p-4"}>x</div>;`,
			want:    `let C = () => <div className={"tw-0"}>x</div>;`,
		},
		{
			name:    "braced template",
			kind:    KindComponent,
			file:    "a.jsx",
			content: "let C = () => <div className={`flex p-4`}>x</div>;",
			want:    "let C = () => <div className={`tw-0`}>x</div>;",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			occs, err := Parse(tt.file, tt.content, tt.kind)
			require.NoError(t, err)
			require.Len(t, occs, 1)

			n := mustNamer(t, ModeIncremental, "tw-")
			n.Generate(occs[0].Raw)

			res := Rewrite(tt.content, occs, n)
			assert.Equal(t, tt.want, res.Text)
		})
	}
}

func TestRewriteNeverTouchesDynamic(t *testing.T) {
	content := `let C = () => <div className={computeClass()}><p className="a b">x</p></div>;`
	occs, err := Parse("a.jsx", content, KindComponent)
	require.NoError(t, err)

	n := mustNamer(t, ModeIncremental, "tw-")
	for _, occ := range occs {
		if occ.Safe {
			n.Generate(occ.Raw)
		}
	}

	res := Rewrite(content, occs, n)
	assert.Equal(t, 1, res.Replaced)
	require.Len(t, res.Skipped, 1)
	assert.Equal(t, SkipDynamic, res.Skipped[0].Reason)
	assert.Contains(t, res.Text, "{computeClass()}")
	assert.Contains(t, res.Text, `className="tw-0"`)
}

func TestRewriteLeavesStringConstantsAlone(t *testing.T) {
	content := `const html = '<div class="flex p-4"></div>'; const C = () => <p className="flex p-4">x</p>;`
	occs, err := Parse("a.jsx", content, KindComponent)
	require.NoError(t, err)
	require.Len(t, occs, 1)

	n := mustNamer(t, ModeIncremental, "tw-")
	for _, occ := range occs {
		n.Generate(occ.Raw)
	}

	res := Rewrite(content, occs, n)
	assert.Equal(t, 1, res.Replaced)
	assert.Contains(t, res.Text, `const html = '<div class="flex p-4"></div>';`)
	assert.Contains(t, res.Text, `className="tw-0"`)
}

func TestRewriteOnlyTouchesOccurrenceRanges(t *testing.T) {
	content := `<!-- flex p-4 -->
<div class="flex p-4">
  <p>literal text mentioning flex p-4</p>
  <span class="grid gap-2">y</span>
</div>`
	occs, err := Parse("a.html", content, KindMarkup)
	require.NoError(t, err)
	require.Len(t, occs, 2)

	n := mustNamer(t, ModeIncremental, "tw-")
	for _, occ := range occs {
		n.Generate(occ.Raw)
	}
	res := Rewrite(content, occs, n)

	// Mask the occurrence ranges out of both texts; the rest must be
	// byte-identical.
	masked := content
	for i := len(occs) - 1; i >= 0; i-- {
		masked = masked[:occs[i].Start] + masked[occs[i].End:]
	}
	rewritten := res.Text
	rewritten = strings.Replace(rewritten, `"tw-0"`, "", 1)
	rewritten = strings.Replace(rewritten, `"tw-1"`, "", 1)
	assert.Equal(t, masked, rewritten)

	// Comment and text nodes keep their original token mentions.
	assert.Contains(t, res.Text, "<!-- flex p-4 -->")
	assert.Contains(t, res.Text, "literal text mentioning flex p-4")
}

func TestRewriteIdempotent(t *testing.T) {
	content := `<div class="flex p-4"><span class="grid gap-2">x</span></div>`
	occs, err := Parse("a.html", content, KindMarkup)
	require.NoError(t, err)

	n := mustNamer(t, ModeHash, "tw-")
	for _, occ := range occs {
		n.Generate(occ.Raw)
	}

	first := Rewrite(content, occs, n)
	require.True(t, first.Changed)

	// Parse the rewritten output and rewrite again with the same mapping:
	// the short names are single tokens with the generated prefix, so they
	// are treated as final and nothing changes.
	occs2, err := Parse("a.html", first.Text, KindMarkup)
	require.NoError(t, err)
	second := Rewrite(first.Text, occs2, n)

	assert.False(t, second.Changed)
	assert.Equal(t, 0, second.Replaced)
	assert.Equal(t, first.Text, second.Text)
	for _, skip := range second.Skipped {
		assert.Equal(t, SkipShortened, skip.Reason)
	}
}

func TestRewriteUnmappedLeftAlone(t *testing.T) {
	content := `<div class="flex p-4">`
	occs, err := Parse("a.html", content, KindMarkup)
	require.NoError(t, err)

	n := mustNamer(t, ModeHash, "tw-") // empty mapping
	res := Rewrite(content, occs, n)

	assert.False(t, res.Changed)
	assert.Equal(t, content, res.Text)
	require.Len(t, res.Skipped, 1)
	assert.Equal(t, SkipUnmapped, res.Skipped[0].Reason)
}

func TestRewriteWhitespaceInsensitiveLookup(t *testing.T) {
	content := "<div class=\"flex \t p-4\">"
	occs, err := Parse("a.html", content, KindMarkup)
	require.NoError(t, err)

	n := mustNamer(t, ModeIncremental, "tw-")
	n.Generate("flex p-4") // normalized form registered elsewhere

	res := Rewrite(content, occs, n)
	assert.Equal(t, 1, res.Replaced)
	assert.Equal(t, `<div class="tw-0">`, res.Text)
}

func TestRewriteSkipPositions(t *testing.T) {
	content := "line one\n<div class=\"a\"><p class=\"nope\">x</p></div>"
	occs, err := Parse("a.html", content, KindMarkup)
	require.NoError(t, err)
	require.Len(t, occs, 2)

	n := mustNamer(t, ModeIncremental, "tw-")
	n.Generate("a")

	res := Rewrite(content, occs, n)
	require.Len(t, res.Skipped, 1)
	skip := res.Skipped[0]
	assert.Equal(t, "a.html", skip.File)
	assert.Equal(t, 2, skip.Line)
	line, col := LineCol(content, occs[1].Start)
	assert.Equal(t, skip.Line, line)
	assert.Equal(t, skip.Column, col)
}

func TestLineCol(t *testing.T) {
	content := "ab\ncd\n"
	tests := []struct {
		offset, line, col int
	}{
		{0, 1, 1},
		{1, 1, 2},
		{3, 2, 1},
		{4, 2, 2},
		{6, 3, 1},
	}
	for _, tt := range tests {
		line, col := LineCol(content, tt.offset)
		assert.Equal(t, tt.line, line, "offset %d", tt.offset)
		assert.Equal(t, tt.col, col, "offset %d", tt.offset)
	}
}

func TestApplyPlanDropsOverlaps(t *testing.T) {
	content := "0123456789"
	plan := []Replacement{
		{Start: 2, End: 4, Text: "X"},
		{Start: 3, End: 5, Text: "Y"}, // overlaps the previous range
		{Start: 6, End: 8, Text: "Z"},
	}
	assert.Equal(t, "01X45Z89", applyPlan(content, plan))
}
