// Package dimen implements dimensions and units.
//
/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package dimen

import (
	"fmt"
	"math"
)

// Dimen is a dimension type.
// Values are in scaled big points (different from TeX).
type Dimen int32

// DU is a dimension in font design space. Shapers in this module quantize
// design units to scaled points, so both names share one representation.
type DU = Dimen

// Some pre-defined dimensions
const (
	Zero Dimen = 0
	SP   Dimen = 1       // scaled point = BP / 65536
	BP   Dimen = 65536   // big point (PDF) = 1/72 inch
	PX   Dimen = 65536   // "pixels"
	PT   Dimen = 65291   // printers point 1/72.27 inch
	MM   Dimen = 185771  // millimeters
	CM   Dimen = 1857710 // centimeters
	IN   Dimen = 4718592 // inch
)

// Infinity is the largest possible dimension
const Infinity = math.MaxInt32

// Stringer implementation.
func (d Dimen) String() string {
	return fmt.Sprintf("%dsp", int32(d))
}

// Points returns a dimension in big (PDF) points.
func (d Dimen) Points() float64 {
	return float64(d) / float64(BP)
}

// Min returns the smaller of two dimensions.
func Min(a, b Dimen) Dimen {
	if a < b {
		return a
	}
	return b
}

// Max returns the greater of two dimensions.
func Max(a, b Dimen) Dimen {
	if a > b {
		return a
	}
	return b
}
