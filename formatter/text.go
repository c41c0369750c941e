package formatter

import (
	"fmt"
	"io"

	tl "github.com/npillmayer/textlayers"
	"github.com/npillmayer/textlayers/resolve"
	"github.com/npillmayer/textlayers/runs"
)

// PlainText is an emitter which outputs the bare text of selections, without
// any markup. Titles identify each selection.
type PlainText struct {
	layers tl.Layers
}

var _ Emitter = &PlainText{}

// NewPlainText creates an emitter for plain text.
func NewPlainText(doc *Document) *PlainText {
	return &PlainText{layers: doc.Layers}
}

// Preamble does nothing.
func (p *PlainText) Preamble(w io.Writer) {}

// Legend lists the visible layers.
func (p *PlainText) Legend(w io.Writer) {
	io.WriteString(w, "Legend:\n")
	for k, l := range p.layers {
		if !l.Hide {
			fmt.Fprintf(w, "       %d. %s\n", k+1, l.DisplayName())
		}
	}
	io.WriteString(w, "\n")
}

// Title outputs the ID of a selection or, lacking one, its region.
func (p *PlainText) Title(w io.Writer, n int, sel tl.Selection) {
	fmt.Fprintf(w, "--- %d. %s ---\n", n, sel)
}

// Begin does nothing.
func (p *PlainText) Begin(w io.Writer, sel tl.Selection) {}

// Text outputs a run unchanged.
func (p *PlainText) Text(w io.Writer, run runs.Run) {
	io.WriteString(w, run.Text)
}

// Boundary does nothing.
func (p *PlainText) Boundary(w io.Writer, d resolve.Delta) {}

// End terminates a selection with a newline.
func (p *PlainText) End(w io.Writer, sel tl.Selection) {
	io.WriteString(w, "\n")
}

// Failure outputs an error message in place of a selection.
func (p *PlainText) Failure(w io.Writer, sel tl.Selection, err error) {
	fmt.Fprintf(w, "error: %v\n", err)
}

// Postamble does nothing.
func (p *PlainText) Postamble(w io.Writer) {}
