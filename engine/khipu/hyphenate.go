package khipu

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/derekparker/trie"
	"github.com/go-typeset/flowtext/core"
	"github.com/npillmayer/uax/segment"
	"github.com/npillmayer/uax/uax29"
)

// A Hyphenator annotates the clusters of a khipu with hyphenation
// opportunities, setting HyphenationPossible in place. The contract is
// deliberately loose: any annotator qualifies, including none at all.
type Hyphenator interface {
	AddHyphenation(k *Khipu)
}

// PatternHyphenator hyphenates words with Liang's pattern algorithm, the
// one TeX uses. Patterns are given in TeX notation (e.g. "hy3ph", ".su2p"),
// with inter-letter digits as break weights; odd accumulated weights mark
// legal break positions. Patterns are held in a trie.
//
// Words are extracted from a khipu's text with a UAX#29 word breaker and
// mapped back onto clusters through their cumulative rune lengths; a break
// position falling inside a multi-rune cluster cannot be represented and
// is skipped.
type PatternHyphenator struct {
	patterns  *trie.Trie
	words     *segment.Segmenter
	minLength int
	leftMin   int
	rightMin  int
}

// NewPatternHyphenator creates a hyphenator from a pattern set. Words
// shorter than minWordLength runes are never hyphenated; a zero or
// negative minWordLength selects a default of 4. A malformed pattern
// yields an error with code core.EINVALID.
func NewPatternHyphenator(patterns []string, minWordLength int) (*PatternHyphenator, error) {
	h := &PatternHyphenator{
		patterns:  trie.New(),
		words:     segment.NewSegmenter(uax29.NewWordBreaker(1)),
		minLength: minWordLength,
		leftMin:   2,
		rightMin:  3,
	}
	if h.minLength <= 0 {
		h.minLength = 4
	}
	for _, p := range patterns {
		if err := h.addPattern(p); err != nil {
			return nil, err
		}
	}
	return h, nil
}

var _ Hyphenator = &PatternHyphenator{}

// addPattern parses a TeX-style pattern into a letter key and a weight
// vector of len(key)+1 inter-letter slots.
func (h *PatternHyphenator) addPattern(p string) error {
	key := make([]rune, 0, len(p))
	weights := []int{0}
	for _, r := range p {
		switch {
		case r >= '0' && r <= '9':
			weights[len(weights)-1] = int(r - '0')
		case unicode.IsLetter(r) || r == '.':
			key = append(key, unicode.ToLower(r))
			weights = append(weights, 0)
		default:
			return core.Error(core.EINVALID, "not a hyphenation pattern: %q", p)
		}
	}
	if len(key) == 0 {
		return core.Error(core.EINVALID, "hyphenation pattern without letters: %q", p)
	}
	h.patterns.Add(string(key), weights)
	return nil
}

// AddHyphenation implements interface Hyphenator.
func (h *PatternHyphenator) AddHyphenation(k *Khipu) {
	if k == nil || k.Len() == 0 {
		return
	}
	text := k.Text(0, k.Len())
	// cluster i covers text runes [cum[i], cum[i+1])
	cum := make([]int, k.Len()+1)
	for i := 0; i < k.Len(); i++ {
		cum[i+1] = cum[i] + utf8.RuneCountInString(k.At(i).Text)
	}
	h.words.Init(strings.NewReader(text))
	off := 0
	for h.words.Next() {
		word := h.words.Text()
		wlen := utf8.RuneCountInString(word)
		if wlen >= h.minLength && isLetters(word) {
			breaks := h.breakPositions(word)
			CT().Debugf("hyphenation of '%s' at %v", word, breaks)
			for _, b := range breaks {
				markHyphenationPoint(k, cum, off+b)
			}
		}
		off += wlen
	}
}

// Hyphenate splits a single word into syllable fragments. The second
// return value tells whether any break position was found.
func (h *PatternHyphenator) Hyphenate(word string) ([]string, bool) {
	breaks := h.breakPositions(word)
	if len(breaks) == 0 {
		return []string{word}, false
	}
	runes := []rune(word)
	parts := make([]string, 0, len(breaks)+1)
	prev := 0
	for _, b := range breaks {
		parts = append(parts, string(runes[prev:b]))
		prev = b
	}
	parts = append(parts, string(runes[prev:]))
	return parts, true
}

// breakPositions returns the rune offsets after which word may be broken,
// in increasing order.
func (h *PatternHyphenator) breakPositions(word string) []int {
	dotted := []rune("." + strings.ToLower(word) + ".")
	weights := make([]int, len(dotted)+1)
	for i := 0; i < len(dotted); i++ {
		for j := i + 1; j <= len(dotted); j++ {
			node, ok := h.patterns.Find(string(dotted[i:j]))
			if !ok {
				continue
			}
			pw := node.Meta().([]int)
			for k, v := range pw {
				if v > weights[i+k] {
					weights[i+k] = v
				}
			}
		}
	}
	n := len(dotted) - 2 // letters in word
	var breaks []int
	for pos := h.leftMin; pos <= n-h.rightMin; pos++ {
		if weights[pos+1]%2 == 1 {
			breaks = append(breaks, pos)
		}
	}
	return breaks
}

// markHyphenationPoint flags the cluster whose text ends at the given rune
// offset. Offsets inside a multi-rune cluster do not mark anything.
func markHyphenationPoint(k *Khipu, cum []int, pos int) {
	i := sort.SearchInts(cum, pos)
	if i > 0 && i < len(cum) && cum[i] == pos {
		k.At(i - 1).SetFlag(HyphenationPossible)
	}
}

func isLetters(word string) bool {
	for _, r := range word {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
