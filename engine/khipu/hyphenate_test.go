package khipu

import (
	"strings"
	"testing"

	"github.com/go-typeset/flowtext/core"
	"github.com/go-typeset/flowtext/engine/glyphing/monospace"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func TestPatternHyphenate(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "flowtext.khipu")
	defer teardown()
	//
	h, err := NewPatternHyphenator([]string{"hy3ph", "n1a"}, 0)
	assert.NoError(t, err)
	parts, ok := h.Hyphenate("hyphenation")
	assert.True(t, ok, "expected at least one break position")
	assert.Equal(t, []string{"hy", "phen", "ation"}, parts)
}

func TestPatternHyphenateNoMatch(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "flowtext.khipu")
	defer teardown()
	//
	h, err := NewPatternHyphenator([]string{"hy3ph"}, 0)
	assert.NoError(t, err)
	parts, ok := h.Hyphenate("window")
	assert.False(t, ok)
	assert.Equal(t, []string{"window"}, parts)
}

func TestPatternHyphenateMargins(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "flowtext.khipu")
	defer teardown()
	//
	// the break position sits within the right margin of 3 letters
	h, err := NewPatternHyphenator([]string{"i1ku"}, 0)
	assert.NoError(t, err)
	_, ok := h.Hyphenate("haiku")
	assert.False(t, ok, "breaks inside the right margin must be discarded")
}

func TestPatternHyphenatorRejectsGarbage(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "flowtext.khipu")
	defer teardown()
	//
	_, err := NewPatternHyphenator([]string{"hy-3ph"}, 0)
	assert.Error(t, err)
	assert.Equal(t, core.EINVALID, core.Code(err))
}

func TestAddHyphenation(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "flowtext.khipu")
	defer teardown()
	//
	kh := ShapeText(strings.NewReader("some hyphenation"), nil, monospace.Shaper(0, nil), nil)
	h, err := NewPatternHyphenator([]string{"hy3ph"}, 4)
	assert.NoError(t, err)
	h.AddHyphenation(kh)
	// "hyphenation" starts at cluster 5; break after "hy" = cluster 6
	if !kh.At(6).HasFlag(HyphenationPossible) {
		t.Errorf("cluster 6 ('y') should be flagged HyphenationPossible")
	}
	for i := 0; i < kh.Len(); i++ {
		if i != 6 && kh.At(i).HasFlag(HyphenationPossible) {
			t.Errorf("unexpected hyphenation flag on cluster %d", i)
		}
	}
}

func TestAddHyphenationMinLength(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "flowtext.khipu")
	defer teardown()
	//
	kh := ShapeText(strings.NewReader("hyph"), nil, monospace.Shaper(0, nil), nil)
	h, err := NewPatternHyphenator([]string{"hy3ph"}, 5)
	assert.NoError(t, err)
	h.AddHyphenation(kh)
	for i := 0; i < kh.Len(); i++ {
		if kh.At(i).HasFlag(HyphenationPossible) {
			t.Errorf("words below the minimum length must not be hyphenated")
		}
	}
}
