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
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/fatih/color"
	tl "github.com/npillmayer/textlayers"
	"github.com/npillmayer/textlayers/resolve"
	"github.com/npillmayer/textlayers/runs"
	"github.com/npillmayer/uax/grapheme"
	"github.com/npillmayer/uax/uax11"
	"golang.org/x/term"
)

// ConsolePalette holds the foreground colors for highlight layers. Layer K
// uses color (K-1) mod 6.
var ConsolePalette = []color.Attribute{
	color.FgRed,
	color.FgGreen,
	color.FgYellow,
	color.FgBlue,
	color.FgMagenta,
	color.FgCyan,
}

// Console is an emitter for terminals understanding ANSI escape codes.
//
// Intervals are delimited by brackets in the color of their layer:
//
//	The [cat|pos: noun] sat
//
// Intervals belonging to no highlight layer are not displayed. Hidden layers
// do not get brackets, but still display their labels. Line breaks are never
// placed inside brackets: open brackets are closed before a line break and
// re-opened after it.
type Console struct {
	layers  tl.Layers
	width   int // width of title rules
	context *uax11.Context
	plain   []*color.Color // colors for labels, per layer
	bold    []*color.Color // colors for brackets, per layer
	header  *color.Color
	errc    *color.Color
	held    string // trailing newlines of a segment
	open    []int  // layers of intervals with an open bracket, in order of opening
}

var _ Emitter = &Console{}

var setupGraphemes sync.Once

// NewConsole creates an emitter for ANSI terminals, configured from doc.
// If doc.Width is 0, the width of the terminal is used for title rules.
func NewConsole(doc *Document) *Console {
	setupGraphemes.Do(grapheme.SetupGraphemeClasses)
	c := &Console{
		layers:  doc.Layers,
		width:   doc.Width,
		context: uax11.ContextFromEnvironment(),
		plain:   make([]*color.Color, len(doc.Layers)+1),
		bold:    make([]*color.Color, len(doc.Layers)+1),
		header:  color.New(color.FgWhite, color.Bold),
		errc:    color.New(color.FgRed, color.Bold),
	}
	if c.width <= 0 {
		c.width = TerminalWidth()
	}
	for k := 1; k <= len(doc.Layers); k++ {
		attr := ConsolePalette[(k-1)%len(ConsolePalette)]
		c.plain[k] = color.New(attr)
		c.bold[k] = color.New(attr, color.Bold)
	}
	c.eachColor(func(col *color.Color) {
		if doc.NoColor {
			col.DisableColor()
		} else {
			col.EnableColor() // override the global terminal detection of package color
		}
	})
	return c
}

func (c *Console) eachColor(f func(*color.Color)) {
	f(c.header)
	f(c.errc)
	for k := 1; k <= len(c.layers); k++ {
		f(c.plain[k])
		f(c.bold[k])
	}
}

// Preamble does nothing.
// (Part of interface Emitter)
func (c *Console) Preamble(w io.Writer) {}

// Legend outputs one line per visible layer, in the layer's color.
// (Part of interface Emitter)
func (c *Console) Legend(w io.Writer) {
	io.WriteString(w, "Legend:\n")
	for k, l := range c.layers {
		if l.Hide {
			continue
		}
		io.WriteString(w, c.bold[k+1].Sprintf("       %d. %s", k+1, l.DisplayName())+"\n")
	}
	io.WriteString(w, "\n")
}

// Title outputs a header rule for selections with an ID.
// (Part of interface Emitter)
func (c *Console) Title(w io.Writer, n int, sel tl.Selection) {
	if sel.ID == "" {
		return
	}
	title := fmt.Sprintf(" %d. %s ", n, sel.ID)
	tw := c.displayWidth(title)
	left := max(3, (c.width-tw)/2)
	right := max(3, c.width-tw-left)
	rule := strings.Repeat("-", left) + title + strings.Repeat("-", right)
	io.WriteString(w, c.header.Sprint(rule)+"\n")
}

// displayWidth sums the widths of the graphemes of s. uax11 counts ASCII digits
// as emoji, so single-byte graphemes are taken to be narrow.
func (c *Console) displayWidth(s string) int {
	gstr := grapheme.StringFromString(s)
	width := 0
	for i := 0; i < gstr.Len(); i++ {
		g := gstr.Nth(i)
		if len(g) == 1 && g[0] < utf8.RuneSelf {
			width++
			continue
		}
		width += uax11.Width([]byte(g), c.context)
	}
	return width
}

// Begin resets the emitter for a selection.
// (Part of interface Emitter)
func (c *Console) Begin(w io.Writer, sel tl.Selection) {
	c.held = ""
	c.open = c.open[:0]
}

// Text outputs a run of text. A newline run at the end of a segment is held
// back until the closing brackets of the following boundary have been written.
// (Part of interface Emitter)
func (c *Console) Text(w io.Writer, run runs.Run) {
	if run.Kind != runs.Newlines {
		io.WriteString(w, run.Text)
	} else if run.Last {
		c.held += run.Text
	} else {
		c.lineBreak(w, run.Text)
	}
}

// lineBreak outputs newlines outside of all open brackets.
func (c *Console) lineBreak(w io.Writer, newlines string) {
	for i := len(c.open) - 1; i >= 0; i-- {
		io.WriteString(w, c.bold[c.open[i]].Sprint("]"))
	}
	io.WriteString(w, newlines)
	for _, k := range c.open {
		io.WriteString(w, c.bold[k].Sprint("["))
	}
}

// Boundary outputs closing brackets and labels, held back newlines, zero-width
// intervals and opening brackets, in this order.
// (Part of interface Emitter)
func (c *Console) Boundary(w io.Writer, d resolve.Delta) {
	for _, cl := range d.Closing {
		k := cl.Interval.Layer
		if !c.layers.Valid(k) {
			continue
		}
		if cl.Label != "" {
			io.WriteString(w, c.plain[k].Sprint("|"+flatten(cl.Label)))
		}
		if c.layers.Visible(k) {
			io.WriteString(w, c.bold[k].Sprint("]"))
			if i := slices.Index(c.open, k); i >= 0 {
				c.open = slices.Delete(c.open, i, i+1)
			}
		}
	}
	if c.held != "" {
		c.lineBreak(w, c.held)
		c.held = ""
	}
	for _, zw := range d.ZeroWidth {
		k := zw.Interval.Layer
		if !c.layers.Valid(k) {
			continue
		}
		if !c.layers.Visible(k) {
			if zw.Label != "" {
				io.WriteString(w, c.plain[k].Sprint("|"+flatten(zw.Label)))
			}
			continue
		}
		io.WriteString(w, c.bold[k].Sprint("["))
		if zw.Label != "" {
			io.WriteString(w, c.plain[k].Sprint(flatten(zw.Label)))
		}
		io.WriteString(w, c.bold[k].Sprint("]"))
	}
	for _, iv := range d.Opening {
		if c.layers.Visible(iv.Layer) {
			io.WriteString(w, c.bold[iv.Layer].Sprint("["))
			c.open = append(c.open, iv.Layer)
		}
	}
}

// flatten keeps labels on a single line.
func flatten(label string) string {
	return strings.ReplaceAll(label, "\n", " ")
}

// End terminates a selection with a newline.
// (Part of interface Emitter)
func (c *Console) End(w io.Writer, sel tl.Selection) {
	c.lineBreak(w, c.held+"\n")
	c.held = ""
	c.open = c.open[:0]
}

// Failure outputs an error message in place of a selection.
// (Part of interface Emitter)
func (c *Console) Failure(w io.Writer, sel tl.Selection, err error) {
	io.WriteString(w, c.errc.Sprint("error: "+err.Error())+"\n")
}

// Postamble does nothing.
// (Part of interface Emitter)
func (c *Console) Postamble(w io.Writer) {}

// --- Terminal --------------------------------------------------------------

// TerminalWidth is a simple helper returning the width of the terminal attached
// to stdout, or 80 if stdout is not a terminal.
func TerminalWidth() int {
	width := 80
	fd := int(os.Stdout.Fd())
	if term.IsTerminal(fd) {
		if w, _, err := term.GetSize(fd); err == nil && w > 10 {
			width = w
		}
	}
	tracer().P("format", "console").Infof("setting width of title rules to %d en", width)
	return width
}
