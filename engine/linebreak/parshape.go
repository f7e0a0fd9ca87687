package linebreak

import (
	"github.com/go-typeset/flowtext/core/dimen"
)

// ParShape describes the horizontal extent available to the lines of a
// segment. Line numbers count from 0 within the segment.
type ParShape interface {
	LineLength(lineno int) dimen.Dimen
}

// Fixed returns a ParShape giving every line the same width — the shape
// of a rectangular column.
func Fixed(width dimen.Dimen) ParShape {
	return fixedParShape(width)
}

type fixedParShape dimen.Dimen

func (p fixedParShape) LineLength(int) dimen.Dimen {
	return dimen.Dimen(p)
}
