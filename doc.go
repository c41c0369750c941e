/*
Package textlayers renders a text together with layers of labeled intervals
into linear markup.

Intervals (annotations) over a text may overlap arbitrarily, may nest, and may
be of zero width. Markup languages like HTML, however, insist on properly nested
elements, and terminals know nothing but a linear stream of characters and escape
codes. Package textlayers and its sub-packages reconcile these worlds:

▪︎ package segment cuts a text region at every offset where an interval begins or ends

▪︎ package resolve tracks, per highlight layer, which intervals open and close at a boundary and computes their labels

▪︎ package runs splits segment text into plain text, inline whitespace and newlines

▪︎ package formatter drives the process and offers back ends for HTML, ANSI terminals and plain text

Clients describe highlight layers with type Layer. Every layer gets a CSS class
number (hi1, hi2, …) or an ANSI color, may be hidden, and decides with a TagRule
which label to display whenever one of its intervals closes.

	layers := textlayers.Layers{
	    {Name: "pos", Tag: textlayers.TagRule{Kind: textlayers.TagKeyAndValue, Key: "pos"}},
	}
	iv := textlayers.Interval{ID: "a1", Begin: 4, End: 7, Layer: 1,
	    Data: map[string]string{"pos": "noun"}}

Text access and interval retrieval are left to collaborators (see TextSource and
IntervalSource); package memstore offers a simple in-memory implementation.

# Status

Work in progress. API not stable.

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the LICENSE file for details.
*/
package textlayers

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'textlayers'
func tracer() tracing.Trace {
	return tracing.Select("textlayers")
}
