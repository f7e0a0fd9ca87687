/*
Package glyphing defines the contract between text shapers and the
line-breaking engine: shaped glyphs, shaping parameters and the Shaper
interface. Concrete shapers live in sub-packages.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package glyphing

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'flowtext.glyphs'.
func tracer() tracing.Trace {
	return tracing.Select("flowtext.glyphs")
}
