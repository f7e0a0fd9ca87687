package linebreak

import (
	"github.com/go-typeset/flowtext/core/dimen"
	params "github.com/go-typeset/flowtext/core/parameters"
	"github.com/go-typeset/flowtext/engine/khipu"
)

// LineControl is the state machine for exactly one in-progress line. It
// tracks the line's geometry and shrink budget, remembers the best break
// opportunity seen so far, and finalizes a LineSpec on demand.
//
// A control borrows the khipu for the lifetime of a layout call; flag
// mutation (SoftHyphenVisible, SuppressSpace) happens on the khipu's
// clusters, and a committed LineSpec copies its cluster range out of the
// khipu afterwards, so the marks are visible in the result.
//
// Per line the control moves Fresh → Accumulating → Finalized; StartLine
// re-enters Fresh.
type LineControl struct {
	k    *khipu.Khipu
	regs *params.Registers

	shape    ParShape
	colLeft  dimen.Dimen
	colRight dimen.Dimen
	xPos     dimen.Dimen // current pen position
	yPos     dimen.Dimen // current baseline
	lineno   int         // lines started within this segment

	count      int // clusters accumulated on the current line
	maxShrink  dimen.Dimen
	maxStretch dimen.Dimen

	breakIndex    int // global cluster index of the remembered break, -1 = none
	breakXPos     dimen.Dimen
	breakBadness  dimen.Dimen
	breakIsHyphen bool

	lineData LineSpec
}

// NewLineControl creates a control for a column whose left edge sits at
// colLeft and whose per-line widths come from shape.
func NewLineControl(k *khipu.Khipu, regs *params.Registers, colLeft dimen.Dimen,
	shape ParShape) *LineControl {
	//
	return &LineControl{
		k:          k,
		regs:       regs,
		shape:      shape,
		colLeft:    colLeft,
		breakIndex: -1,
	}
}

// EffectiveRight is the x beyond which the current line overflows.
func (lc *LineControl) EffectiveRight() dimen.Dimen {
	return lc.colRight - lc.regs.D(params.P_RIGHTMARGIN)
}

// IsEmpty reports whether no cluster has been added since StartLine.
func (lc *LineControl) IsEmpty() bool {
	return lc.count == 0
}

// StartLine resets the accumulator and break memory and seeds the line
// under construction, with firstCluster as the line's first cluster.
func (lc *LineControl) StartLine(firstCluster int, isFirstLine bool) {
	lc.count = 0
	lc.maxShrink, lc.maxStretch = 0, 0
	lc.breakIndex = -1
	lc.breakXPos, lc.breakBadness = 0, 0
	lc.breakIsHyphen = false
	lc.colRight = lc.colLeft + lc.shape.LineLength(lc.lineno)
	lc.lineno++
	lc.xPos = lc.colLeft + lc.regs.D(params.P_LEFTMARGIN)
	if isFirstLine {
		lc.xPos += lc.regs.D(params.P_FIRSTLINEINDENT)
	}
	lc.lineData = LineSpec{
		X:            lc.xPos,
		Y:            lc.yPos,
		FirstCluster: firstCluster,
	}
}

// AddCluster appends a cluster to the line, updating the vertical metrics
// and, for expanding spaces, the shrink/stretch budget.
func (lc *LineControl) AddCluster(c *khipu.GlyphCluster) {
	lc.count++
	lc.lineData.Ascent = dimen.Max(lc.lineData.Ascent, c.Ascent)
	lc.lineData.Descent = dimen.Max(lc.lineData.Descent, c.Descent)
	if c.HasFlag(khipu.ExpandingSpace) {
		minRatio := dimen.Dimen(lc.regs.Pct(params.P_MINWORDSPACING))
		maxRatio := dimen.Dimen(lc.regs.Pct(params.P_MAXWORDSPACING))
		lc.maxShrink += c.Width - c.Width*minRatio/100
		lc.maxStretch += c.Width*maxRatio/100 - c.Width
	}
}

// RememberBreak offers a break candidate at the global cluster index,
// ending the line at candidateX (for hyphenation candidates this includes
// the would-be-visible hyphen). The candidate replaces the stored one only
// on strictly smaller badness; ties keep the older, leftward break.
//
// Exception: if the cluster added last is an expanding space and the
// candidate already hangs past the effective right edge, it replaces the
// stored break unconditionally, so that all trailing spaces fold into the
// hang and can be suppressed at finish time.
func (lc *LineControl) RememberBreak(index int, candidateX dimen.Dimen, isHyphenation bool) {
	var penalty dimen.Dimen
	if isHyphenation {
		penalty = lc.regs.D(params.P_HYPHENPENALTY)
	}
	b := Badness(lc.EffectiveRight(), candidateX, penalty)
	if lc.breakIndex >= 0 {
		last := lc.k.At(lc.lineData.FirstCluster + lc.count - 1)
		hanging := last.HasFlag(khipu.ExpandingSpace) && candidateX >= lc.EffectiveRight()
		if !hanging && b >= lc.breakBadness {
			return
		}
	}
	tracer().Debugf("line break remembered at %d, x=%s, badness=%s", index, candidateX, b)
	lc.breakIndex = index
	lc.breakXPos = candidateX
	lc.breakBadness = b
	lc.breakIsHyphen = isHyphenation
}

// BreakLine forces a break after the cluster at lastIndex, used for hard
// newlines and for overflow with no admissible break opportunity.
func (lc *LineControl) BreakLine(lastIndex int) {
	lc.breakIndex = lastIndex
	lc.breakIsHyphen = false
	x := lc.lineData.X
	for i := lc.lineData.FirstCluster; i <= lastIndex; i++ {
		c := lc.k.At(i)
		x += c.Width + c.ExtraWidth
	}
	lc.breakXPos = x
	lc.breakBadness = Badness(lc.EffectiveRight(), x, 0)
	lc.refreshVerticalMetrics(lastIndex)
}

// IsEndOfLine is the overflow predicate: would the pen, advanced by extra,
// still reach or pass the effective right edge even after shrinking all
// expanding spaces to their minimum?
func (lc *LineControl) IsEndOfLine(extra dimen.Dimen) bool {
	return lc.xPos+extra-lc.maxShrink >= lc.EffectiveRight()
}

// FinishLine commits the remembered break: it truncates the line at the
// break cluster, copies the cluster range out of the khipu, and computes
// the natural width of the non-suppressed clusters. The line's allocated
// width runs from its left edge to endX.
func (lc *LineControl) FinishLine(endX dimen.Dimen) {
	lc.lineData.LastCluster = lc.breakIndex
	lc.lineData.Width = endX - lc.lineData.X
	lc.count = lc.breakIndex - lc.lineData.FirstCluster + 1
	lc.lineData.Clusters = append([]khipu.GlyphCluster(nil),
		lc.k.Clusters()[lc.lineData.FirstCluster:lc.breakIndex+1]...)
	lc.refreshVerticalMetrics(lc.breakIndex)
	lc.lineData.Height = lc.lineData.Ascent + lc.lineData.Descent
	var natural dimen.Dimen
	for i := range lc.lineData.Clusters {
		if !lc.lineData.Clusters[i].HasFlag(khipu.SuppressSpace) {
			natural += lc.lineData.Clusters[i].Width
		}
	}
	lc.lineData.NaturalWidth = natural
	lc.maxShrink, lc.maxStretch = 0, 0
}

// JustifyLine distributes the residual slack of a justified line across
// its expandable, non-suppressed spaces. Overfull lines and lines without
// such a space are left alone. No glyph scaling or letter spacing is
// inserted.
func (lc *LineControl) JustifyLine() {
	avail := lc.EffectiveRight() - lc.lineData.X
	slack := avail - lc.lineData.NaturalWidth
	if slack <= 0 {
		return
	}
	var spaces []int
	for i := range lc.lineData.Clusters {
		c := &lc.lineData.Clusters[i]
		if c.HasFlag(khipu.ExpandingSpace) && !c.HasFlag(khipu.SuppressSpace) {
			spaces = append(spaces, i)
		}
	}
	if len(spaces) == 0 {
		return
	}
	each := slack / dimen.Dimen(len(spaces))
	rem := slack % dimen.Dimen(len(spaces))
	for j, i := range spaces {
		extra := each
		if dimen.Dimen(j) < rem {
			extra++
		}
		lc.lineData.Clusters[i].ExtraWidth = extra
	}
	lc.lineData.NaturalWidth = avail
}

// AlignLine offsets a non-justified line: right alignment shifts it by
// the full slack, centering by half. Overfull lines are not shifted.
func (lc *LineControl) AlignLine() {
	slack := lc.lineData.Width - lc.lineData.NaturalWidth
	var offset dimen.Dimen
	switch Alignment(lc.regs.N(params.P_ALIGNMENT)) {
	case Right:
		offset = slack
	case Center:
		offset = slack / 2
	}
	if offset > 0 {
		lc.lineData.X += offset
	}
}

// NextLine advances the baseline.
func (lc *LineControl) NextLine(lineHeight dimen.Dimen) {
	lc.yPos += lineHeight
}

// CreateLineSpec returns a copy of the finalized line.
func (lc *LineControl) CreateLineSpec() *LineSpec {
	spec := lc.lineData
	return &spec
}

func (lc *LineControl) refreshVerticalMetrics(lastIndex int) {
	var a, d dimen.Dimen
	for i := lc.lineData.FirstCluster; i <= lastIndex; i++ {
		c := lc.k.At(i)
		a = dimen.Max(a, c.Ascent)
		d = dimen.Max(d, c.Descent)
	}
	lc.lineData.Ascent, lc.lineData.Descent = a, d
}
