package linebreak

import (
	"fmt"

	"github.com/go-typeset/flowtext/core/dimen"
	"github.com/go-typeset/flowtext/core/percent"
	"github.com/go-typeset/flowtext/engine/khipu"
)

// LineSpec is one finalized line: geometry plus the clusters it owns.
//
// Width is the allocated width (left margin to right margin, minus
// indent); NaturalWidth is the sum of the visible cluster widths after
// trailing-space suppression. Justifying a line distributes its slack and
// then sets NaturalWidth to the full available width. A line that had to
// be force-broken may have NaturalWidth > Width.
type LineSpec struct {
	X, Y         dimen.Dimen // left edge and baseline
	Width        dimen.Dimen
	NaturalWidth dimen.Dimen
	Height       dimen.Dimen // Ascent + Descent
	Ascent       dimen.Dimen
	Descent      dimen.Dimen
	FirstCluster int // inclusive index into the source cluster sequence
	LastCluster  int // inclusive
	Clusters     []khipu.GlyphCluster
	Column       int // index of the containing column
}

// Text concatenates the text of the line's clusters.
func (line *LineSpec) Text() string {
	s := ""
	for i := range line.Clusters {
		s += line.Clusters[i].Text
	}
	return s
}

// Fullness reports how much of the allocated width the visible clusters
// occupy.
func (line *LineSpec) Fullness() percent.Percent {
	if line.Width <= 0 {
		return percent.FromInt(0)
	}
	return percent.FromFloat(float64(line.NaturalWidth) / float64(line.Width) * 100)
}

func (line *LineSpec) String() string {
	return fmt.Sprintf("line[%d…%d] @(%s,%s) w=%s nat=%s", line.FirstCluster,
		line.LastCluster, line.X, line.Y, line.Width, line.NaturalWidth)
}

// ColumnSpec is one column of a multi-column layout. Lines are
// non-overlapping with strictly increasing baselines.
type ColumnSpec struct {
	X, Y   dimen.Dimen
	Width  dimen.Dimen
	Height dimen.Dimen
	Lines  []*LineSpec
}

// LayoutResult is the outcome of a single-column layout call.
// Overflow is true iff a height budget prevented laying out all clusters;
// LastCharIndex is the index of the last cluster included in the output.
type LayoutResult struct {
	Lines         []*LineSpec
	Overflow      bool
	LastCharIndex int
}

// MultiColumnResult is the outcome of a multi-column layout call. Its
// Columns slice always has exactly the requested number of entries;
// columns the text never reached hold no lines.
type MultiColumnResult struct {
	Columns       []*ColumnSpec
	Overflow      bool
	LastCharIndex int
}
