/*
Package formatter renders text regions with layers of labeled intervals.

Output of layered text differs in many aspects from simple string output.
Intervals may overlap arbitrarily, but markup has to be properly nested, and
line breaks must never end up inside an open highlight. This package drives
the necessary steps for every selection of a document:

▪︎ cut the selection's region at every interval boundary (package segment)

▪︎ track opening and closing intervals per highlight layer (package resolve)

▪︎ split the text between boundaries into runs of text, whitespace and newlines (package runs)

▪︎ hand everything over to an Emitter, which writes the markup

API

Clients configure a Document, select an output format and render a stream of
selections:

	doc := &formatter.Document{
	    Format:    formatter.FormatHTML,
	    Layers:    layers,
	    Legend:    true,
	    Text:      store,
	    Intervals: store,
	}
	err := formatter.Render(os.Stdout, store.Selections(), doc)

Emitter is an interface type and this package offers three implementations:
one for HTML, one for ANSI terminals and one for plain text.

Errors

Selections without extractable text are reported as *textlayers.SelectionError
after the whole document has been rendered. Write errors of the output abort
rendering immediately and are reported as *textlayers.SinkError.

Status

Work in progress.
API not stable.

_________________________________________________________________________

BSD 3-Clause License

Copyright (c) 2020–21, Norbert Pillmayer

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions are met:

1. Redistributions of source code must retain the above copyright notice, this
list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright notice,
this list of conditions and the following disclaimer in the documentation
and/or other materials provided with the distribution.

3. Neither the name of the copyright holder nor the names of its
contributors may be used to endorse or promote products derived from
this software without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS "AS IS"
AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT LIMITED TO, THE
IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE ARE
DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR CONTRIBUTORS BE LIABLE
FOR ANY DIRECT, INDIRECT, INCIDENTAL, SPECIAL, EXEMPLARY, OR CONSEQUENTIAL
DAMAGES (INCLUDING, BUT NOT LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR
SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER
CAUSED AND ON ANY THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY,
OR TORT (INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.

*/
package formatter

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'textlayers'
func tracer() tracing.Trace {
	return tracing.Select("textlayers")
}
