package khipu

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"bufio"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-typeset/flowtext/core/dimen"
	params "github.com/go-typeset/flowtext/core/parameters"
	"github.com/go-typeset/flowtext/engine/glyphing"
	"github.com/npillmayer/uax"
	"github.com/npillmayer/uax/grapheme"
	"github.com/npillmayer/uax/segment"
	"github.com/npillmayer/uax/uax14"
	"golang.org/x/text/unicode/norm"
)

// A TypesettingPipeline consists of steps to produce a khipu from text.
type TypesettingPipeline struct {
	input     io.RuneReader
	linewrap  *uax14.LineWrap
	segmenter *segment.Segmenter
	graphemes *segment.Segmenter
}

// ShapeText transforms an input text into a khipu of glyph clusters.
//
// The text is NFC-normalized and segmented with a UAX#14 line-wrap breaker
// as the primary breaker and a simple word breaker as the secondary one.
// Each segment is split into grapheme clusters, measured by the given
// shaper, and flagged:
//
//   - the last cluster of a segment closed by a primary break opportunity
//     carries LineBoundary;
//   - whitespace clusters carry ExpandingSpace, non-breaking spaces
//     FixedSpace;
//   - a cluster of text "\n" carries no flags at all — it is a mandatory
//     hard break, which the layout driver detects by its text.
//
// SOFT HYPHEN (U+00AD) clusters are not emitted; instead the preceding
// cluster is flagged HyphenationPossible.
//
// If shaper is nil, clusters are measured with a monospace fallback of
// (0.6em, 0.8em, 0.2em) per character, em taken from regs.
func ShapeText(text io.Reader, pipeline *TypesettingPipeline, shaper glyphing.Shaper,
	regs *params.Registers) *Khipu {
	//
	if regs == nil {
		regs = params.NewRegisters()
	}
	pipeline = PrepareTypesettingPipeline(text, pipeline)
	khipu := NewKhipu()
	var source strings.Builder
	seg := pipeline.segmenter
	charoff := 0
	for seg.Next() {
		fragment := seg.Text()
		p1, p2 := seg.Penalties()
		CT().Debugf("next segment = '%s'\twith penalties %d|%d", fragment, p1, p2)
		source.WriteString(fragment)
		charoff = appendClustersFromSegment(khipu, fragment, charoff,
			p1 < uax.InfinitePenalty, pipeline, shaper, regs)
	}
	khipu.source = sourceCord(source.String())
	CT().Infof("resulting khipu = %s", khipu)
	return khipu
}

// appendClustersFromSegment splits one segment into grapheme clusters,
// measures them, assigns flags and appends them to the khipu. It returns
// the updated character offset (in runes) into the source text.
func appendClustersFromSegment(khipu *Khipu, fragment string, charoff int, breakAfter bool,
	pipeline *TypesettingPipeline, shaper glyphing.Shaper, regs *params.Registers) int {
	//
	widths, ascent, descent := measureSegment(fragment, pipeline, shaper, regs)
	pipeline.graphemes.Init(strings.NewReader(fragment))
	first := khipu.Len()
	g := 0
	endsInSoftHyphen := false
	for pipeline.graphemes.Next() {
		text := pipeline.graphemes.Text()
		runes := utf8.RuneCountInString(text)
		r, _ := utf8.DecodeRuneInString(text)
		if r == '\u00ad' { // soft hyphen: drop, flag predecessor
			if khipu.Len() > 0 {
				khipu.At(khipu.Len() - 1).SetFlag(HyphenationPossible)
			}
			charoff += runes
			g++
			endsInSoftHyphen = true
			continue
		}
		endsInSoftHyphen = false
		cluster := GlyphCluster{
			FirstChar: charoff,
			LastChar:  charoff + runes - 1,
			Text:      normalizeHardBreak(text),
			Width:     widths[g],
			Ascent:    ascent,
			Descent:   descent,
		}
		switch {
		case cluster.IsHardBreak():
			// no flags; the driver special-cases it
		case isFixedSpace(r):
			cluster.SetFlag(FixedSpace)
		case unicode.IsSpace(r):
			cluster.SetFlag(ExpandingSpace)
		case unicode.Is(unicode.Ps, r):
			cluster.SetFlag(NoBreakAfter)
		case unicode.Is(unicode.Pe, r):
			cluster.SetFlag(NoBreakBefore)
		}
		khipu.Append(cluster)
		charoff += runes
		g++
	}
	// A segment closed by a dropped soft hyphen already carries
	// HyphenationPossible; it must not look like a word boundary too.
	if breakAfter && khipu.Len() > first && !endsInSoftHyphen {
		last := khipu.At(khipu.Len() - 1)
		if !last.IsHardBreak() {
			last.SetFlag(LineBoundary)
		}
	}
	return charoff
}

// measureSegment runs the shaper over a segment and maps glyph advances
// back onto grapheme clusters. Without a shaper (or on shaper failure) it
// falls back to monospace estimates derived from the font size register.
func measureSegment(fragment string, pipeline *TypesettingPipeline, shaper glyphing.Shaper,
	regs *params.Registers) (widths []dimen.Dimen, ascent, descent dimen.Dimen) {
	//
	fontsize := regs.D(params.P_FONTSIZE)
	n := graphemeCount(pipeline, fragment)
	widths = make([]dimen.Dimen, n)
	if shaper != nil {
		seq, err := shaper.Shape(strings.NewReader(fragment), nil, nil, glyphing.Params{
			PointSize: fontsize,
		})
		if err == nil {
			for _, glyph := range seq.Glyphs {
				if glyph.ClusterID >= 0 && glyph.ClusterID < n {
					widths[glyph.ClusterID] += glyph.XAdvance
				}
			}
			return widths, seq.H, seq.D
		}
		CT().Errorf("shaper failed on segment '%s': %v", fragment, err)
	}
	pipeline.graphemes.Init(strings.NewReader(fragment))
	for i := 0; pipeline.graphemes.Next(); i++ {
		runes := utf8.RuneCountInString(pipeline.graphemes.Text())
		widths[i] = fontsize * 3 / 5 * dimen.Dimen(runes)
	}
	return widths, fontsize * 4 / 5, fontsize / 5
}

func graphemeCount(pipeline *TypesettingPipeline, fragment string) int {
	pipeline.graphemes.Init(strings.NewReader(fragment))
	n := 0
	for pipeline.graphemes.Next() {
		n++
	}
	return n
}

// PrepareTypesettingPipeline checks if a typesetting pipeline is correctly
// initialized and creates a new one if is is invalid.
//
// We use a uax14.LineWrap as the primary breaker and
// use a segment.SimpleWordBreaker to extract spans of whitespace.
// Grapheme cluster boundaries are found with a UAX#29 grapheme breaker.
// This is a default configuration adequate for western languages.
func PrepareTypesettingPipeline(text io.Reader, pipeline *TypesettingPipeline) *TypesettingPipeline {
	// wrap a normalization-reader around the input
	if pipeline == nil {
		pipeline = &TypesettingPipeline{}
	}
	pipeline.input = bufio.NewReader(norm.NFC.Reader(text))
	if pipeline.segmenter == nil {
		pipeline.linewrap = uax14.NewLineWrap()
		pipeline.segmenter = segment.NewSegmenter(pipeline.linewrap, segment.NewSimpleWordBreaker())
		grapheme.SetupGraphemeClasses()
		pipeline.graphemes = segment.NewSegmenter(grapheme.NewBreaker(1))
	}
	pipeline.segmenter.Init(pipeline.input)
	return pipeline
}

// normalizeHardBreak folds CR and CRLF graphemes into "\n", the one text
// the cluster model recognizes as a mandatory break.
func normalizeHardBreak(text string) string {
	if text == "\r" || text == "\r\n" {
		return "\n"
	}
	return text
}

// isFixedSpace reports whether r is non-breaking, fixed-advance whitespace.
func isFixedSpace(r rune) bool {
	return r == '\u00a0' || r == '\u202f'
}
