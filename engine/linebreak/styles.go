package linebreak

import (
	"github.com/go-typeset/flowtext/core/dimen"
	params "github.com/go-typeset/flowtext/core/parameters"
	"github.com/go-typeset/flowtext/core/percent"
)

// Alignment selects how a finished line is placed within its column.
type Alignment int8

// Paragraph alignments.
const (
	Left Alignment = iota
	Right
	Center
	Justified
)

func (a Alignment) String() string {
	switch a {
	case Left:
		return "left"
	case Right:
		return "right"
	case Center:
		return "center"
	case Justified:
		return "justified"
	}
	return "left"
}

// ParagraphStyle is the static paragraph-level configuration the engine
// consumes. Word-spacing bounds are ratios of the natural space width;
// the hyphen penalty is a length in the same unit as x-positions.
type ParagraphStyle struct {
	Alignment              Alignment
	LeftMargin             dimen.Dimen
	RightMargin            dimen.Dimen
	FirstLineIndent        dimen.Dimen
	LineSpacing            float64 // multiplier of font size
	MinWordSpacing         percent.Percent
	MaxWordSpacing         percent.Percent
	Hyphenate              bool
	HyphenConsecutiveLimit int // max consecutive hyphenated line ends; 0 = unlimited
	HyphenPenalty          dimen.Dimen
}

// DefaultParagraphStyle returns the style of an unstyled, left-aligned,
// single-spaced paragraph.
func DefaultParagraphStyle() ParagraphStyle {
	return ParagraphStyle{
		Alignment:      Left,
		LineSpacing:    1.0,
		MinWordSpacing: percent.FromInt(80),
		MaxWordSpacing: percent.FromInt(150),
	}
}

// loadInto pushes the style into a register set. With no open group this
// writes the base values, so engine setters are idempotent.
func (s ParagraphStyle) loadInto(regs *params.Registers) {
	regs.Push(params.P_ALIGNMENT, int(s.Alignment))
	regs.Push(params.P_LEFTMARGIN, s.LeftMargin)
	regs.Push(params.P_RIGHTMARGIN, s.RightMargin)
	regs.Push(params.P_FIRSTLINEINDENT, s.FirstLineIndent)
	regs.Push(params.P_LINESPACING, s.LineSpacing)
	regs.Push(params.P_MINWORDSPACING, s.MinWordSpacing)
	regs.Push(params.P_MAXWORDSPACING, s.MaxWordSpacing)
	regs.Push(params.P_HYPHENATE, s.Hyphenate)
	regs.Push(params.P_HYPHENCONSECUTIVELIMIT, s.HyphenConsecutiveLimit)
	regs.Push(params.P_HYPHENPENALTY, s.HyphenPenalty)
}

// CharStyle is the character-level configuration. The engine itself reads
// only the font size (default line height, hyphen-width fallback); the
// descriptive fields are for shaper collaborators.
type CharStyle struct {
	FontName string
	FontSize dimen.Dimen
	Weight   int  // CSS-style weight, 400 = regular
	Italic   bool
}

// DefaultCharStyle returns a plain 10pt style.
func DefaultCharStyle() CharStyle {
	return CharStyle{
		FontName: "monospace",
		FontSize: 10 * dimen.PT,
		Weight:   400,
	}
}

func (s CharStyle) loadInto(regs *params.Registers) {
	if s.FontSize > 0 {
		regs.Push(params.P_FONTSIZE, s.FontSize)
	}
}
