package linebreak

import (
	"github.com/go-typeset/flowtext/core/dimen"
)

// Badness scores a break candidate that would end the line at x: the
// distance to the effective right edge, plus a penalty (non-zero for
// hyphenation candidates). Lower is better; candidates nearest the right
// margin win, and the penalty makes comparable word breaks beat hyphens.
func Badness(effectiveRight, x, penalty dimen.Dimen) dimen.Dimen {
	d := effectiveRight - x
	if d < 0 {
		d = -d
	}
	return d + penalty
}
