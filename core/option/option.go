// Package option provides option types for optional scalar values: API
// parameters that may legitimately be absent, like the layout engine's
// column height budget. An unset option is encoded with an in-band null,
// so the zero value of an option type is NOT "unset" — construct options
// with the package's constructors.
/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package option

import (
	"math"
	"strconv"
)

// Int64T is an option type for int64.
type Int64T int64

// Int64None is used as an in-band null value for type int64 for optional integers.
const Int64None int64 = math.MaxInt64

// SomeInt64 creates an optional int64 with an initial value of x.
func SomeInt64(x int) Int64T {
	return Int64T(x)
}

// Int64 creates an optional int64 without an initial value.
func Int64() Int64T {
	return Int64T(Int64None)
}

// Unwrap returns the value of o. For an unset option this is the in-band
// null Int64None; check IsNone first.
func (o Int64T) Unwrap() int64 {
	return int64(o)
}

// IsNone returns true if o is unset.
func (o Int64T) IsNone() bool {
	return o == Int64T(Int64None)
}

func (o Int64T) String() string {
	if o.IsNone() {
		return "Int64.None"
	}
	return strconv.FormatInt(int64(o), 10)
}
