package formatter

/*
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

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"strings"

	tl "github.com/npillmayer/textlayers"
	"github.com/npillmayer/textlayers/resolve"
	"github.com/npillmayer/textlayers/runs"
	"github.com/npillmayer/textlayers/segment"
)

// Format selects an output format.
type Format string

// Output formats.
const (
	FormatHTML Format = "html"
	FormatANSI Format = "ansi"
	FormatText Format = "text"
)

// ParseFormat converts a format name to a Format. The empty string denotes HTML.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatHTML, nil
	case FormatHTML, FormatANSI, FormatText:
		return f, nil
	}
	return "", fmt.Errorf("format %q: %w", s, tl.ErrUnknownFormat)
}

// Document represents a set of configuration parameters for rendering.
type Document struct {
	Format        Format
	Layers        tl.Layers
	Legend        bool   // output a legend of the highlight layers
	Titles        bool   // output a title for every selection with an ID
	Prune         bool   // suppress intervals which belong to no highlight layer
	Autocollapse  bool   // HTML: collapse all labels on load (needs Interactive)
	OffsetAttr    bool   // HTML: output data-offset attributes
	AnnotationIDs bool   // HTML: output data-annotations attributes listing the active intervals
	Interactive   bool   // HTML: include a script to toggle labels from the legend
	NoColor       bool   // ANSI: output brackets without color
	Width         int    // ANSI: width of title rules, 0 means terminal width
	Header        string // HTML: replaces the default header, if non-empty
	Footer        string // HTML: replaces the default footer, if non-empty
	//
	Text        tl.TextSource     // access to text regions; required
	Intervals   tl.IntervalSource // intervals not bound to a layer's Source; may be nil
	Diagnostics *tl.Diagnostics   // receives configuration warnings; may be nil
}

// Emitter is an interface for output back ends, given an io.Writer.
//
// The rendering driver calls Begin, then alternates between Text for every run
// of text between two boundaries and Boundary for every boundary, then End.
// Emitters do not report errors; write errors are tracked by the driver.
type Emitter interface {
	Preamble(io.Writer)
	Legend(io.Writer)
	Title(io.Writer, int, tl.Selection)
	Begin(io.Writer, tl.Selection)
	Text(io.Writer, runs.Run)
	Boundary(io.Writer, resolve.Delta)
	End(io.Writer, tl.Selection)
	Failure(io.Writer, tl.Selection, error)
	Postamble(io.Writer)
}

// Emitter creates an emitter for the document's format.
func (doc *Document) Emitter() (Emitter, error) {
	f, err := ParseFormat(string(doc.Format))
	if err != nil {
		return nil, err
	}
	switch f {
	case FormatANSI:
		return NewConsole(doc), nil
	case FormatText:
		return NewPlainText(doc), nil
	}
	return NewHTML(doc), nil
}

// Render outputs a document for a sequence of selections.
//
// Consecutive duplicate selections are rendered once. Selections without
// extractable text are reported by the emitter and rendering continues with the
// next selection; Render returns all of these errors, joined, after the document
// is complete. A write error aborts rendering and is returned as *textlayers.SinkError.
func Render(w io.Writer, selections iter.Seq[tl.Selection], doc *Document) error {
	if w == nil || doc == nil || doc.Text == nil {
		return fmt.Errorf("render: %w", tl.ErrIllegalArguments)
	}
	e, err := doc.Emitter()
	if err != nil {
		return err
	}
	ew := stickyWriter(w)
	e.Preamble(ew)
	if doc.Legend && doc.Layers.VisibleCount() > 0 {
		e.Legend(ew)
	}
	var errs []error
	var prev *tl.Selection
	n := 0
	for sel := range selections {
		n++
		if prev != nil && prev.Err == nil && sel.Err == nil && prev.Same(sel) {
			tracer().Debugf("render: skipping duplicate selection %s", sel)
			continue
		}
		prev = &sel
		if doc.Titles {
			e.Title(ew, n, sel)
		}
		if err := doc.render(ew, e, sel); err != nil {
			var selErr *tl.SelectionError
			if !errors.As(err, &selErr) {
				return err
			}
			tracer().Errorf("render: %v", err)
			e.Failure(ew, sel, selErr)
			errs = append(errs, err)
		}
		if ew.err != nil {
			return &tl.SinkError{Err: ew.err}
		}
	}
	e.Postamble(ew)
	if ew.err != nil {
		return &tl.SinkError{Err: ew.err}
	}
	tracer().Infof("render: %d selections rendered as %s, %d failures", n, doc.Format, len(errs))
	return errors.Join(errs...)
}

func (doc *Document) render(w *errWriter, e Emitter, sel tl.Selection) error {
	var selErr *tl.SelectionError
	if errors.As(sel.Err, &selErr) {
		return selErr
	} else if sel.Err != nil {
		return tl.Malformed(sel, "no text to render", sel.Err)
	}
	if err := sel.Region.Check(); err != nil {
		return tl.Malformed(sel, "cannot render", err)
	}
	text, err := doc.Text.Text(sel.Region)
	if err != nil {
		return tl.Malformed(sel, "cannot access text", err)
	}
	intervals, err := doc.intervals(sel)
	if err != nil {
		return tl.Malformed(sel, "cannot retrieve intervals", err)
	}
	return Output(w, sel, text, intervals, doc.Layers, doc.Prune, e)
}

// intervals collects the intervals for sel from the document's interval source
// and the sources of all highlight layers. Intervals of a layer's source are
// assigned to that layer.
func (doc *Document) intervals(sel tl.Selection) ([]tl.Interval, error) {
	var ivs []tl.Interval
	if doc.Intervals != nil {
		found, err := doc.Intervals.Intervals(sel)
		if err != nil {
			return nil, err
		}
		ivs = append(ivs, found...)
	}
	for i, layer := range doc.Layers {
		if layer.Source == nil {
			continue
		}
		found, err := layer.Source(sel)
		if errors.Is(err, tl.ErrUnbound) {
			doc.Diagnostics.Warn(tl.Warning{
				Layer:     i + 1,
				Selection: sel.String(),
				Msg:       "layer rendered empty",
				Err:       err,
			})
			continue
		} else if err != nil {
			return nil, fmt.Errorf("layer %d: %w", i+1, err)
		}
		for _, iv := range found {
			iv.Layer = i + 1
			ivs = append(ivs, iv)
		}
	}
	return ivs, nil
}

// Output renders a single selection with its text and intervals, using a given emitter.
//
// text is the text of the selection's region. It returns a *textlayers.SelectionError
// for malformed regions and a *textlayers.SinkError if writing to w fails.
func Output(w io.Writer, sel tl.Selection, text string, intervals []tl.Interval,
	layers tl.Layers, prune bool, e Emitter) error {
	//
	if w == nil || e == nil {
		return fmt.Errorf("output: %w", tl.ErrIllegalArguments)
	}
	if err := sel.Region.Check(); err != nil {
		return tl.Malformed(sel, "cannot render", err)
	}
	ew := stickyWriter(w)
	res := resolve.New(sel.Region, intervals, layers, prune)
	cursor := segment.NewCursor(text)
	base := sel.Region.Begin
	e.Begin(ew, sel)
	bounds := res.Boundaries()
	for i, b := range bounds {
		if i > 0 {
			for run := range runs.Split(cursor.Slice(bounds[i-1]-base, b-base)) {
				e.Text(ew, run)
			}
		}
		d := res.Step(b)
		tracer().Debugf("@%d: %d closing, %d zero-width, %d opening", b,
			len(d.Closing), len(d.ZeroWidth), len(d.Opening))
		e.Boundary(ew, d)
		if ew.err != nil {
			return &tl.SinkError{Err: ew.err}
		}
	}
	e.End(ew, sel)
	if ew.err != nil {
		return &tl.SinkError{Err: ew.err}
	}
	return nil
}

// --- Writer ----------------------------------------------------------------

// errWriter remembers the first write error and refuses all writes after it.
type errWriter struct {
	w   io.Writer
	err error
}

func stickyWriter(w io.Writer) *errWriter {
	if ew, ok := w.(*errWriter); ok {
		return ew
	}
	return &errWriter{w: w}
}

func (ew *errWriter) Write(p []byte) (int, error) {
	if ew.err != nil {
		return 0, ew.err
	}
	n, err := ew.w.Write(p)
	if err != nil {
		ew.err = err
	}
	return n, err
}

func (ew *errWriter) WriteString(s string) (int, error) {
	return ew.Write([]byte(s))
}
