/*
Package resolve tracks highlight layers across the boundaries of a text region.

A Resolver is fed the boundaries of a region in ascending order. For every
boundary it reports the intervals closing there (together with their labels),
the zero-width intervals sitting there, and the intervals opening there. It
keeps the set of active intervals in the order they were opened, which
determines the order of closing labels.

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the LICENSE file for details.
*/
package resolve

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'textlayers'
func tracer() tracing.Trace {
	return tracing.Select("textlayers")
}
