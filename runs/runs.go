package runs

import (
	"bufio"
	"io"
	"iter"
	"unicode"
	"unicode/utf8"
)

// Kind classifies a run.
type Kind int8

// Kinds of runs.
const (
	PlainText  Kind = iota // anything but whitespace
	Whitespace             // inline whitespace, i.e. whitespace except newlines
	Newlines               // one or more '\n'
)

func (k Kind) String() string {
	switch k {
	case Whitespace:
		return "space"
	case Newlines:
		return "newlines"
	}
	return "text"
}

// KindOf classifies a single rune.
func KindOf(r rune) Kind {
	if r == '\n' {
		return Newlines
	} else if unicode.IsSpace(r) {
		return Whitespace
	}
	return PlainText
}

// Run is a maximal substring of uniform Kind. Last flags the final run of an input.
type Run struct {
	Text string
	Kind Kind
	Last bool
}

// Split splits text into runs. Invalid UTF-8 bytes are treated as plain text
// and passed through unchanged.
func Split(text string) iter.Seq[Run] {
	return func(yield func(Run) bool) {
		pos := 0
		for pos < len(text) {
			n, kind := scanRun(text[pos:])
			run := Run{Text: text[pos : pos+n], Kind: kind, Last: pos+n == len(text)}
			if !yield(run) {
				return
			}
			pos += n
		}
	}
}

// scanRun returns the byte length and kind of the run at the start of s,
// which must not be empty.
func scanRun(s string) (int, Kind) {
	r, width := utf8.DecodeRuneInString(s)
	kind := KindOf(r)
	pos := width
	for pos < len(s) {
		r, width = utf8.DecodeRuneInString(s[pos:])
		if KindOf(r) != kind {
			break
		}
		pos += width
	}
	return pos, kind
}

// ScanRuns is a split function for a bufio.Scanner that returns each run of
// text as a token. Use KindOf on the first rune of a token to classify it.
//
// As a Scanner has a limited token size, clients should prefer Split for texts
// which may contain very long runs.
func ScanRuns(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if !atEOF && !utf8.FullRune(data) {
		return 0, nil, nil // incomplete; get more bytes
	}
	r, width := utf8.DecodeRune(data)
	kind := KindOf(r)
	pos := width
	for pos < len(data) {
		if !atEOF && !utf8.FullRune(data[pos:]) {
			// a run may continue with the incomplete rune; deliver what we have
			return pos, data[0:pos], nil
		}
		r, width = utf8.DecodeRune(data[pos:])
		if KindOf(r) != kind {
			return pos, data[0:pos], nil
		}
		pos += width
	}
	if atEOF {
		return pos, data[0:pos], nil
	}
	return 0, nil, nil // run may continue; request more data
}

// NewScanner creates a scanner splitting input from r into runs.
func NewScanner(r io.Reader) *bufio.Scanner {
	scnr := bufio.NewScanner(r)
	scnr.Split(ScanRuns)
	return scnr
}
