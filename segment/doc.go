/*
Package segment cuts a text region into segments at interval boundaries.

Every offset where an interval begins or ends constitutes a boundary. Between two
consecutive boundaries the set of active intervals is constant. Overlapping
intervals which cannot be expressed as nested markup thus become a sequence of
segments, each carrying a well-defined set of intervals:

	text:        a b c d e
	interval 1:  [---)
	interval 2:    [-----)
	boundaries:  0 1   3   5

Offsets are measured in runes. Type Cursor helps to map rune offsets onto byte
positions of a region's text.

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the LICENSE file for details.
*/
package segment

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'textlayers'
func tracer() tracing.Trace {
	return tracing.Select("textlayers")
}
