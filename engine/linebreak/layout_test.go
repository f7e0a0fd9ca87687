package linebreak

import (
	"strings"
	"testing"

	"github.com/go-typeset/flowtext/core/dimen"
	"github.com/go-typeset/flowtext/core/option"
	"github.com/go-typeset/flowtext/engine/glyphing/monospace"
	"github.com/go-typeset/flowtext/engine/khipu"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/require"
)

const em = 10 * dimen.PT // the test shaper sets every cell 1em wide

func newTestEngine(h khipu.Hyphenator) *Engine {
	return NewEngine(monospace.Shaper(em, nil), h)
}

func TestLayoutSingleFittingLine(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "flowtext.linebreak")
	defer teardown()
	//
	e := newTestEngine(nil)
	res := e.Layout("hello", 20*em, option.Int64())
	require.Len(t, res.Lines, 1)
	line := res.Lines[0]
	require.Equal(t, 0, line.FirstCluster)
	require.Equal(t, 4, line.LastCluster)
	require.Len(t, line.Clusters, 5)
	require.Equal(t, dimen.Zero, line.X)
	require.False(t, res.Overflow)
	require.Equal(t, 4, res.LastCharIndex)
}

func TestLayoutSoftBreakOnSpace(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "flowtext.linebreak")
	defer teardown()
	//
	e := newTestEngine(nil)
	res := e.Layout("hello world", 5*em+1, option.Int64())
	require.Len(t, res.Lines, 2)
	first, second := res.Lines[0], res.Lines[1]
	require.Equal(t, 5, first.LastCluster, "the space belongs to line 1")
	require.True(t, first.Clusters[5].HasFlag(khipu.SuppressSpace),
		"the trailing space must be suppressed")
	require.Equal(t, 5*em, first.NaturalWidth)
	require.Equal(t, 6, second.FirstCluster, "line 2 starts at 'w'")
	require.Equal(t, 10, second.LastCluster)
	require.Equal(t, 10, res.LastCharIndex)
}

func TestLayoutForcedBreak(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "flowtext.linebreak")
	defer teardown()
	//
	e := newTestEngine(nil)
	res := e.Layout(strings.Repeat("a", 15), 5*em, option.Int64())
	require.Len(t, res.Lines, 3)
	for k, line := range res.Lines {
		require.Len(t, line.Clusters, 5, "line %d", k)
		require.LessOrEqual(t, line.NaturalWidth, line.Width)
		for i := range line.Clusters {
			require.False(t, line.Clusters[i].HasFlag(khipu.SoftHyphenVisible))
		}
	}
	require.False(t, res.Overflow, "a force-broken line alone does not set overflow")
}

func TestLayoutHardNewline(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "flowtext.linebreak")
	defer teardown()
	//
	e := newTestEngine(nil)
	res := e.Layout("a\nb", 20*em, option.Int64())
	require.Len(t, res.Lines, 2)
	require.Equal(t, 0, res.Lines[0].FirstCluster)
	require.Equal(t, 0, res.Lines[0].LastCluster)
	require.Equal(t, 2, res.Lines[1].FirstCluster)
	require.Equal(t, 2, res.Lines[1].LastCluster)
	require.Equal(t, em, res.Lines[1].Y-res.Lines[0].Y, "baseline steps by one line height")
	require.Equal(t, 2, res.LastCharIndex)
}

func TestLayoutJustify(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "flowtext.linebreak")
	defer teardown()
	//
	e := newTestEngine(nil)
	ps := DefaultParagraphStyle()
	ps.Alignment = Justified
	e.SetParagraphStyle(ps)
	res := e.Layout("one two three", 10*em, option.Int64())
	require.Len(t, res.Lines, 2)
	first, last := res.Lines[0], res.Lines[1]
	var extra dimen.Dimen
	for i := range first.Clusters {
		extra += first.Clusters[i].ExtraWidth
	}
	require.Equal(t, first.Width-7*em, extra,
		"slack must be distributed over the expandable space")
	require.Equal(t, first.Width, first.NaturalWidth, "a justified line fills its width")
	for i := range last.Clusters {
		require.Equal(t, dimen.Zero, last.Clusters[i].ExtraWidth,
			"the last line of a paragraph is never justified")
	}
}

func TestLayoutColumnsBalanced(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "flowtext.linebreak")
	defer teardown()
	//
	text := strings.TrimSuffix(strings.Repeat("aaaaa ", 10), " ") // 59 clusters, 10 lines
	e := newTestEngine(nil)
	res := e.LayoutColumns(text, 2, 14*em, 5*em, 2*em)
	require.Len(t, res.Columns, 2)
	require.Len(t, res.Columns[0].Lines, 5)
	require.Len(t, res.Columns[1].Lines, 5)
	require.Equal(t, 8*em, res.Columns[1].X)
	require.Equal(t, 8*em, res.Columns[1].Lines[0].X,
		"lines of column 1 start at the column's left edge")
	require.False(t, res.Overflow)
	require.Equal(t, 58, res.LastCharIndex)
	for _, line := range res.Columns[1].Lines {
		require.Equal(t, 1, line.Column)
	}
}

func TestLayoutHeightOverflow(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "flowtext.linebreak")
	defer teardown()
	//
	text := strings.TrimSuffix(strings.Repeat("aaaaa ", 10), " ")
	e := newTestEngine(nil)
	res := e.Layout(text, 6*em, option.SomeInt64(int(5*em)))
	require.Len(t, res.Lines, 5)
	require.True(t, res.Overflow)
	require.Equal(t, 29, res.LastCharIndex,
		"the index identifies the last cluster included")
}

func TestLayoutHyphenationBeatsWordBreak(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "flowtext.linebreak")
	defer teardown()
	//
	h, err := khipu.NewPatternHyphenator([]string{"i1l"}, 4)
	require.NoError(t, err)
	e := newTestEngine(h)
	ps := DefaultParagraphStyle()
	ps.Hyphenate = true
	e.SetParagraphStyle(ps)
	res := e.Layout("super-califragilistic xx", 16*em, option.Int64())
	require.GreaterOrEqual(t, len(res.Lines), 2)
	first := res.Lines[0]
	require.Equal(t, 14, first.LastCluster, "the hyphenation point wins over the dash")
	require.True(t, first.Clusters[14].HasFlag(khipu.SoftHyphenVisible),
		"the taken hyphenation break becomes visible")
	require.Equal(t, 15, res.Lines[1].FirstCluster)
}

func TestLayoutHyphenConsecutiveLimit(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "flowtext.linebreak")
	defer teardown()
	//
	h, err := khipu.NewPatternHyphenator([]string{"i1l"}, 4)
	require.NoError(t, err)
	e := newTestEngine(h)
	ps := DefaultParagraphStyle()
	ps.Hyphenate = true
	ps.HyphenConsecutiveLimit = 1
	e.SetParagraphStyle(ps)
	res := e.Layout("aaailaaailaaa", 5*em, option.Int64())
	require.GreaterOrEqual(t, len(res.Lines), 3)
	line0end := res.Lines[0].Clusters[len(res.Lines[0].Clusters)-1]
	line1end := res.Lines[1].Clusters[len(res.Lines[1].Clusters)-1]
	require.True(t, line0end.HasFlag(khipu.SoftHyphenVisible))
	require.False(t, line1end.HasFlag(khipu.SoftHyphenVisible),
		"the consecutive-hyphen cap suppresses the second visible hyphen")
}

func TestLayoutEmptyText(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "flowtext.linebreak")
	defer teardown()
	//
	e := newTestEngine(nil)
	res := e.Layout("", 10*em, option.Int64())
	require.Empty(t, res.Lines)
	require.False(t, res.Overflow)
	require.Equal(t, 0, res.LastCharIndex)
	//
	cols := e.LayoutColumns("", 3, 30*em, 10*em, -1)
	require.Len(t, cols.Columns, 3, "empty column specs are still emitted")
	for _, col := range cols.Columns {
		require.Empty(t, col.Lines)
	}
	require.False(t, cols.Overflow)
}

func TestLayoutDegenerateWidth(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "flowtext.linebreak")
	defer teardown()
	//
	e := newTestEngine(nil)
	res := e.Layout("abc", 0, option.Int64()) // must not loop forever
	require.Len(t, res.Lines, 3, "degenerate geometry force-breaks every cluster")
}

func TestLayoutIdempotence(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "flowtext.linebreak")
	defer teardown()
	//
	e := newTestEngine(nil)
	text := "the quick brown fox jumps over the lazy dog"
	a := e.Layout(text, 9*em, option.Int64())
	b := e.Layout(text, 9*em, option.Int64())
	require.Equal(t, len(a.Lines), len(b.Lines))
	for i := range a.Lines {
		require.Equal(t, *a.Lines[i], *b.Lines[i], "line %d", i)
	}
}

func TestLayoutInvariants(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "flowtext.linebreak")
	defer teardown()
	//
	e := newTestEngine(nil)
	text := "the quick brown fox jumps over the lazy dog"
	res := e.Layout(text, 9*em, option.Int64())
	require.Greater(t, len(res.Lines), 1)
	for i, line := range res.Lines {
		var natural dimen.Dimen
		for j := range line.Clusters {
			if !line.Clusters[j].HasFlag(khipu.SuppressSpace) {
				natural += line.Clusters[j].Width
			}
		}
		require.Equal(t, natural, line.NaturalWidth, "line %d natural width", i)
		visible := lastVisibleCluster(line)
		require.NotNil(t, visible)
		require.False(t, visible.HasFlag(khipu.ExpandingSpace),
			"line %d must not end in a visible expanding space", i)
		if i > 0 {
			prev := res.Lines[i-1]
			require.Equal(t, prev.LastCluster+1, line.FirstCluster,
				"consecutive lines cover consecutive clusters")
			require.Equal(t, em, line.Y-prev.Y, "baselines step by the line height")
		}
	}
}

func lastVisibleCluster(line *LineSpec) *khipu.GlyphCluster {
	for i := len(line.Clusters) - 1; i >= 0; i-- {
		if !line.Clusters[i].HasFlag(khipu.SuppressSpace) {
			return &line.Clusters[i]
		}
	}
	return nil
}
