/*
Package linebreak implements a greedy first-fit line-breaking and
line-finishing engine for shaped text.

The engine consumes a khipu of glyph clusters (see package khipu), walks it
in source order, and produces positioned lines: it decides where each line
ends, how trailing whitespace is treated, whether a soft hyphen becomes
visible, how the line is justified or aligned, and where the next baseline
sits. Text may be flowed into a single column with an optional height
budget, or across several columns in order.

Competing break opportunities are scored by a badness function — the
distance of the candidate's end to the right margin, plus a penalty for
hyphenation candidates — and the line-filling state machine (LineControl)
keeps the best-scored break seen so far, committing it when the line
overflows.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package linebreak

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'flowtext.linebreak'.
func tracer() tracing.Trace {
	return tracing.Select("flowtext.linebreak")
}
