/*
Package runs splits text into runs of plain text, inline whitespace and newlines.

Newlines need special care when rendering markup: a line break must never be
left inside an open highlight wrapper. Splitting a segment's text into runs
lets formatters close their wrappers before a newline run and re-open them
afterwards.

	for run := range runs.Split("Hello  World\n\n") {
	    fmt.Printf("%v %q last=%v\n", run.Kind, run.Text, run.Last)
	}

prints

	text "Hello" last=false
	space "  " last=false
	text "World" last=false
	newlines "\n\n" last=true

Concatenating the runs always reproduces the input exactly.

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the LICENSE file for details.
*/
package runs
