// Package khipu holds the data model the line-breaking engine consumes:
// GlyphCluster, the atomic layout unit produced by a shaper, and Khipu,
// an ordered sequence of clusters together with a cursor for walking it.
//
// The name continues a small Andean conceit started elsewhere in this
// tree: a khipu was a knotted cord used for record-keeping: here, the
// "knots" are glyph clusters tied together in reading order.
/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package khipu

import (
	"fmt"

	"github.com/go-typeset/flowtext/core/dimen"
	"github.com/npillmayer/cords"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// CT traces to the core tracer.
func CT() tracing.Trace {
	return gtrace.CoreTracer
}

// ---------------------------------------------------------------------------

// ClusterFlags is a bitset of break-opportunity and layout-phase markers
// carried by a GlyphCluster.
type ClusterFlags uint16

const (
	// LineBoundary marks a cluster after which a normal (non-hyphenation)
	// line break is permitted.
	LineBoundary ClusterFlags = 1 << iota
	// HyphenationPossible marks a cluster after which a hyphenated break
	// is permitted.
	HyphenationPossible
	// ExpandingSpace marks whitespace that participates in justification.
	ExpandingSpace
	// FixedSpace marks non-breaking, fixed-advance whitespace.
	FixedSpace
	// SuppressSpace marks an ExpandingSpace whose width is excluded from
	// a line's natural width (folded into a trailing hang).
	SuppressSpace
	// SoftHyphenVisible marks a HyphenationPossible cluster whose break
	// was actually taken; a hyphen glyph is rendered at line end.
	SoftHyphenVisible
	// NoBreakBefore forbids a break immediately before this cluster.
	NoBreakBefore
	// NoBreakAfter forbids a break immediately after this cluster.
	NoBreakAfter
)

// HasFlag reports whether all bits of f are set in flags.
func HasFlag(flags, f ClusterFlags) bool {
	return flags&f == f
}

// SetFlag returns flags with the bits of f set.
func SetFlag(flags, f ClusterFlags) ClusterFlags {
	return flags | f
}

// ClearFlag returns flags with the bits of f cleared.
func ClearFlag(flags, f ClusterFlags) ClusterFlags {
	return flags &^ f
}

// ---------------------------------------------------------------------------

// GlyphCluster is one atomic layout unit: one or more source code points
// shaped into one or more glyphs.
type GlyphCluster struct {
	FirstChar, LastChar int          // source range, inclusive
	Text                string       // original substring (hard-break detection only)
	Width               dimen.Dimen  // natural advance, >= 0
	Ascent, Descent     dimen.Dimen  // non-negative
	ExtraWidth          dimen.Dimen  // slack added by justification; initially 0
	Flags               ClusterFlags
}

// HasFlag reports whether all bits of f are set on the cluster.
func (c GlyphCluster) HasFlag(f ClusterFlags) bool {
	return HasFlag(c.Flags, f)
}

// SetFlag sets the bits of f on the cluster.
func (c *GlyphCluster) SetFlag(f ClusterFlags) {
	c.Flags = SetFlag(c.Flags, f)
}

// ClearFlag clears the bits of f on the cluster.
func (c *GlyphCluster) ClearFlag(f ClusterFlags) {
	c.Flags = ClearFlag(c.Flags, f)
}

// IsHardBreak reports whether this cluster is a mandatory line break
// (a cluster whose text is exactly "\n").
func (c GlyphCluster) IsHardBreak() bool {
	return c.Text == "\n"
}

func (c GlyphCluster) String() string {
	return fmt.Sprintf("{%q w=%s fl=%04b}", c.Text, c.Width, c.Flags)
}

// ---------------------------------------------------------------------------

// Khipu is an ordered sequence of glyph clusters, as produced by a shaper
// from a run of text, optionally annotated by a hyphenator.
type Khipu struct {
	clusters []GlyphCluster
	source   cords.Cord // raw text the clusters were shaped from
}

// NewKhipu creates an empty khipu, or one wrapping an already-shaped
// cluster slice.
func NewKhipu(clusters ...GlyphCluster) *Khipu {
	return &Khipu{clusters: clusters}
}

// NewKhipuFromText wraps raw in a Khipu whose source text is held as a
// cord, for efficient substring access when clusters are later assembled.
func NewKhipuFromText(raw string, clusters ...GlyphCluster) *Khipu {
	return &Khipu{clusters: clusters, source: sourceCord(raw)}
}

func sourceCord(raw string) cords.Cord {
	b := cords.NewBuilder()
	b.Append(textLeaf(raw))
	return b.Cord()
}

// Source returns the raw text this khipu was shaped from, or the zero
// Cord if it was built directly from clusters.
func (k *Khipu) Source() cords.Cord {
	return k.source
}

// Len returns the number of clusters in the khipu.
func (k *Khipu) Len() int {
	return len(k.clusters)
}

// Clusters returns the underlying cluster slice. Callers may mutate flags
// in place, which is the one form of mutation the line-breaking engine
// performs on a khipu during layout.
func (k *Khipu) Clusters() []GlyphCluster {
	return k.clusters
}

// At returns the cluster at position i.
func (k *Khipu) At(i int) *GlyphCluster {
	return &k.clusters[i]
}

// Append adds clusters to the end of the khipu.
func (k *Khipu) Append(clusters ...GlyphCluster) *Khipu {
	k.clusters = append(k.clusters, clusters...)
	return k
}

// Text concatenates the Text field of clusters [i, j).
func (k *Khipu) Text(i, j int) string {
	s := ""
	for ; i < j; i++ {
		s += k.clusters[i].Text
	}
	return s
}

func (k *Khipu) String() string {
	return fmt.Sprintf("khipu[%d clusters]", len(k.clusters))
}

// ---------------------------------------------------------------------------

// Cursor walks a Khipu's clusters in order, supporting the rewind a soft
// line break requires: the layout driver backs up to the cluster after the
// remembered break and re-enters from there.
type Cursor struct {
	k   *Khipu
	pos int
}

// NewCursor creates a cursor positioned before the first cluster.
func NewCursor(k *Khipu) *Cursor {
	return &Cursor{k: k, pos: -1}
}

// Next advances the cursor by one cluster. It returns false once the
// khipu is exhausted.
func (c *Cursor) Next() bool {
	if c.pos+1 >= c.k.Len() {
		c.pos = c.k.Len()
		return false
	}
	c.pos++
	return true
}

// Index returns the cursor's current cluster index.
func (c *Cursor) Index() int {
	return c.pos
}

// SetIndex rewinds or advances the cursor to sit just before index i, so
// that the next call to Next() lands on cluster i.
func (c *Cursor) SetIndex(i int) {
	c.pos = i - 1
}

// Cluster returns the cluster at the cursor's current position.
func (c *Cursor) Cluster() *GlyphCluster {
	return c.k.At(c.pos)
}

// Khipu returns the khipu the cursor walks.
func (c *Cursor) Khipu() *Khipu {
	return c.k
}

// ---------------------------------------------------------------------------

// textLeaf is the cords.Leaf implementation used to wrap a khipu's raw
// source text.
type textLeaf string

func (l textLeaf) Weight() uint64 {
	return uint64(len(l))
}

func (l textLeaf) String() string {
	return string(l)
}

func (l textLeaf) Split(i uint64) (cords.Leaf, cords.Leaf) {
	return textLeaf(l[:i]), textLeaf(l[i:])
}

func (l textLeaf) Substring(i, j uint64) []byte {
	return []byte(l)[i:j]
}

var _ cords.Leaf = textLeaf("")
