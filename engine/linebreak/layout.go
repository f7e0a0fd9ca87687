package linebreak

import (
	"strings"

	"github.com/go-typeset/flowtext/core/dimen"
	"github.com/go-typeset/flowtext/core/option"
	params "github.com/go-typeset/flowtext/core/parameters"
	"github.com/go-typeset/flowtext/engine/glyphing"
	"github.com/go-typeset/flowtext/engine/glyphing/monospace"
	"github.com/go-typeset/flowtext/engine/khipu"
)

// DefaultColumnGap is the gutter used by LayoutColumns when the caller
// passes a negative gap.
const DefaultColumnGap = 20 * dimen.PX

// Engine lays out runs of text into lines and columns. It owns the
// shaping pipeline, the style registers and the collaborators; a single
// engine instance is not reentrant during an in-flight layout call (it
// mutates cluster flags and internal state), but distinct engines may run
// concurrently.
type Engine struct {
	shaper     glyphing.Shaper
	hyphenator khipu.Hyphenator
	pipeline   *khipu.TypesettingPipeline
	regs       *params.Registers
}

// NewEngine creates a layout engine. A nil shaper selects the monospace
// reference shaper at the default font size; a nil hyphenator disables
// hyphenation regardless of the paragraph style.
func NewEngine(shaper glyphing.Shaper, hyphenator khipu.Hyphenator) *Engine {
	regs := params.NewRegisters()
	if shaper == nil {
		shaper = monospace.Shaper(regs.D(params.P_FONTSIZE), nil)
	}
	return &Engine{
		shaper:     shaper,
		hyphenator: hyphenator,
		pipeline:   khipu.PrepareTypesettingPipeline(strings.NewReader(""), nil),
		regs:       regs,
	}
}

// SetParagraphStyle sets the active paragraph style. Idempotent.
func (e *Engine) SetParagraphStyle(s ParagraphStyle) {
	s.loadInto(e.regs)
}

// SetCharStyle sets the active character style. Idempotent.
func (e *Engine) SetCharStyle(s CharStyle) {
	s.loadInto(e.regs)
}

// Layout fills a single column of the given width with text. maxHeight is
// an optional height budget: pass option.Int64() for an unconstrained
// column, or option.SomeInt64(h) with h in scaled points.
//
// All conditions are reported in the result, never by error: an empty
// text yields zero lines, an exhausted height budget sets Overflow with
// the committed lines retained, and a line wider than the column is
// force-broken (detectable as NaturalWidth > Width).
func (e *Engine) Layout(text string, width dimen.Dimen, maxHeight option.Int64T) LayoutResult {
	k := e.shape(text)
	if k.Len() == 0 {
		return LayoutResult{LastCharIndex: 0}
	}
	budget := dimen.Dimen(dimen.Infinity)
	if !maxHeight.IsNone() {
		budget = dimen.Dimen(maxHeight.Unwrap())
	}
	run := e.newRun(k)
	lines, next, overflow := run.segment(0, 0, Fixed(width), budget, true, 0)
	return LayoutResult{
		Lines:         lines,
		Overflow:      overflow,
		LastCharIndex: next - 1,
	}
}

// LayoutColumns flows text across columnCount columns of equal width,
// partitioned from totalWidth with the given gutter (a negative gap
// selects DefaultColumnGap). The result always holds columnCount column
// specs; columns the text never reached are empty. Overflow is true iff
// the columns could not hold all of the text.
func (e *Engine) LayoutColumns(text string, columnCount int, totalWidth, columnHeight,
	columnGap dimen.Dimen) MultiColumnResult {
	//
	res := MultiColumnResult{}
	if columnCount <= 0 {
		return res
	}
	if columnGap < 0 {
		columnGap = DefaultColumnGap
	}
	width := (totalWidth - dimen.Dimen(columnCount-1)*columnGap) / dimen.Dimen(columnCount)
	k := e.shape(text)
	run := e.newRun(k)
	cursor := 0
	for c := 0; c < columnCount; c++ {
		xOffset := dimen.Dimen(c) * (width + columnGap)
		col := &ColumnSpec{X: xOffset, Width: width, Height: columnHeight}
		if cursor < k.Len() {
			var lines []*LineSpec
			lines, cursor, _ = run.segment(cursor, xOffset, Fixed(width), columnHeight,
				c == 0, c)
			col.Lines = lines
		}
		res.Columns = append(res.Columns, col)
	}
	res.Overflow = cursor < k.Len()
	if k.Len() > 0 {
		res.LastCharIndex = cursor - 1
	}
	return res
}

// shape runs the shaping pipeline and, when enabled, the hyphenator over
// the text, producing a fresh cluster buffer for this call.
func (e *Engine) shape(text string) *khipu.Khipu {
	k := khipu.ShapeText(strings.NewReader(text), e.pipeline, e.shaper, e.regs)
	if e.regs.B(params.P_HYPHENATE) && e.hyphenator != nil {
		e.hyphenator.AddHyphenation(k)
	}
	return k
}

func (e *Engine) newRun(k *khipu.Khipu) *layoutRun {
	fontsize := e.regs.D(params.P_FONTSIZE)
	return &layoutRun{
		engine:      e,
		k:           k,
		lineHeight:  dimen.Dimen(float64(fontsize) * e.regs.F(params.P_LINESPACING)),
		hyphenWidth: fontsize * 3 / 10,
	}
}

// layoutRun is the per-call driver state shared between the segments of a
// layout: the cluster buffer and the consecutive-hyphen counter, which
// carries across column boundaries.
type layoutRun struct {
	engine             *Engine
	k                  *khipu.Khipu
	lineHeight         dimen.Dimen
	hyphenWidth        dimen.Dimen // fallback advance of a line-end hyphen
	consecutiveHyphens int
}

// segment performs one contiguous layout pass within a single column:
// it walks the clusters from start, feeds them to a LineControl, commits
// lines on overflow and hard breaks, and stops when the text or the
// height budget is exhausted. It returns the committed lines, the index
// of the next unconsumed cluster, and whether the height budget cut the
// pass short.
func (run *layoutRun) segment(start int, xOffset dimen.Dimen, shape ParShape,
	maxHeight dimen.Dimen, firstInDoc bool, col int) ([]*LineSpec, int, bool) {
	//
	regs := run.engine.regs
	var lines []*LineSpec
	lc := NewLineControl(run.k, regs, xOffset, shape)
	if first := run.k.At(start); first.Ascent > 0 {
		lc.yPos = first.Ascent
	} else {
		lc.yPos = regs.D(params.P_FONTSIZE) * 4 / 5
	}
	lc.StartLine(start, firstInDoc)
	cursor := khipu.NewCursor(run.k)
	cursor.SetIndex(start)
	for cursor.Next() {
		i := cursor.Index()
		c := cursor.Cluster()

		if c.IsHardBreak() {
			if !lc.IsEmpty() {
				lc.BreakLine(i - 1)
				lines = append(lines, run.finalizeLine(lc, true, col))
			}
			run.consecutiveHyphens = 0
			lc.NextLine(run.lineHeight)
			if lc.yPos > maxHeight {
				return lines, i + 1, true
			}
			lc.StartLine(i+1, false)
			continue
		}

		projected := lc.xPos + c.Width
		overflowNow := projected-lc.maxShrink >= lc.EffectiveRight()

		// An overflowing expanding space never commits the line: it joins
		// the line as hang, where RememberBreak pulls the break onto it and
		// the finish pass suppresses it.
		if !lc.IsEmpty() && lc.breakIndex >= 0 && overflowNow &&
			!c.HasFlag(khipu.ExpandingSpace) {
			// commit the line at the remembered break and rewind
			bc := run.k.At(lc.breakIndex)
			limit := regs.N(params.P_HYPHENCONSECUTIVELIMIT)
			if bc.HasFlag(khipu.HyphenationPossible) &&
				(limit == 0 || run.consecutiveHyphens < limit) {
				bc.SetFlag(khipu.SoftHyphenVisible)
				run.consecutiveHyphens++
			} else if bc.HasFlag(khipu.LineBoundary) {
				run.consecutiveHyphens = 0
			}
			run.suppressTrailingSpaces(lc)
			lines = append(lines, run.finalizeLine(lc, false, col))
			next := lc.breakIndex + 1
			lc.NextLine(run.lineHeight)
			if lc.yPos > maxHeight {
				return lines, next, true
			}
			lc.StartLine(next, false)
			cursor.SetIndex(next)
			continue
		}

		lc.AddCluster(c)
		lc.xPos = projected
		if run.breakAdmissible(i, khipu.LineBoundary) {
			lc.RememberBreak(i, lc.xPos, false)
		}
		if run.breakAdmissible(i, khipu.HyphenationPossible) {
			lc.RememberBreak(i, lc.xPos+run.hyphenWidth, true)
		}

		if lc.IsEndOfLine(0) && lc.breakIndex < 0 {
			// overflow with no admissible opportunity: force-break here
			lc.BreakLine(i)
			lines = append(lines, run.finalizeLine(lc, false, col))
			run.consecutiveHyphens = 0
			lc.NextLine(run.lineHeight)
			if lc.yPos > maxHeight {
				return lines, i + 1, true
			}
			lc.StartLine(i+1, false)
		}
	}
	if !lc.IsEmpty() {
		lc.BreakLine(run.k.Len() - 1)
		lines = append(lines, run.finalizeLine(lc, true, col))
	}
	return lines, run.k.Len(), false
}

// breakAdmissible reports whether the cluster at i carries the requested
// break flag and neither it nor its successor forbids the break.
func (run *layoutRun) breakAdmissible(i int, flag khipu.ClusterFlags) bool {
	c := run.k.At(i)
	if !c.HasFlag(flag) || c.HasFlag(khipu.NoBreakAfter) {
		return false
	}
	if i+1 < run.k.Len() && run.k.At(i+1).HasFlag(khipu.NoBreakBefore) {
		return false
	}
	return true
}

// suppressTrailingSpaces folds the expanding spaces hanging at the line's
// remembered break into the margin by flagging them SuppressSpace.
func (run *layoutRun) suppressTrailingSpaces(lc *LineControl) {
	for i := lc.breakIndex; i >= lc.lineData.FirstCluster; i-- {
		c := run.k.At(i)
		if !c.HasFlag(khipu.ExpandingSpace) {
			break
		}
		c.SetFlag(khipu.SuppressSpace)
	}
}

// finalizeLine commits, justifies or aligns, and copies out the line
// under construction. The last line of a paragraph is never justified:
// for it, the alignment register is swapped to Left for the duration of
// the finishing calls and restored afterwards.
func (run *layoutRun) finalizeLine(lc *LineControl, lastOfParagraph bool, col int) *LineSpec {
	regs := run.engine.regs
	if lastOfParagraph && Alignment(regs.N(params.P_ALIGNMENT)) == Justified {
		regs.Begingroup()
		regs.Push(params.P_ALIGNMENT, int(Left))
		defer regs.Endgroup()
	}
	lc.FinishLine(lc.EffectiveRight())
	if Alignment(regs.N(params.P_ALIGNMENT)) == Justified {
		lc.JustifyLine()
	} else {
		lc.AlignLine()
	}
	spec := lc.CreateLineSpec()
	spec.Column = col
	tracer().Debugf("committed %s", spec)
	return spec
}
