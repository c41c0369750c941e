package formatter

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	tl "github.com/npillmayer/textlayers"
	"github.com/npillmayer/textlayers/resolve"
	"github.com/npillmayer/textlayers/runs"
	"golang.org/x/net/html"
)

// HTML is an emitter for HTML output.
//
// Every segment of text with active intervals is wrapped into an outer span
// with class "a" and classes "hiK" for every visible layer K with an active
// interval, and one inner span with class "lK" per visible layer. Labels of
// closing intervals follow the wrapper as <label> elements. Line breaks are
// never placed inside a wrapper: it is closed before a line break and re-opened
// after it.
type HTML struct {
	layers       tl.Layers
	visible      []int // indices of visible layers
	offsetAttr   bool
	annotations  bool
	interactive  bool
	autocollapse bool
	header       string
	footer       string
	// state of the current selection
	open    bool            // spans are open
	opening strings.Builder // opening tags, without offset attribute, for re-opening
	pending string          // line breaks to output after closing labels
}

var _ Emitter = &HTML{}

// NewHTML creates an HTML emitter, configured from doc.
func NewHTML(doc *Document) *HTML {
	h := &HTML{
		layers:       doc.Layers,
		offsetAttr:   doc.OffsetAttr,
		annotations:  doc.AnnotationIDs,
		interactive:  doc.Interactive,
		autocollapse: doc.Autocollapse,
		header:       doc.Header,
		footer:       doc.Footer,
	}
	for k := 1; k <= len(doc.Layers); k++ {
		if doc.Layers.Visible(k) {
			h.visible = append(h.visible, k)
		}
	}
	if h.header == "" {
		h.header = DefaultHTMLHeader(len(doc.Layers))
	}
	if h.footer == "" {
		h.footer = htmlFooter
	}
	return h
}

// Preamble outputs the document header, an optional script for interactive
// legends and a comment for every layer with a query description.
// (Part of interface Emitter)
func (h *HTML) Preamble(w io.Writer) {
	io.WriteString(w, h.header)
	if h.interactive {
		fmt.Fprintf(w, "<script>autocollapse = %v;</script>", h.autocollapse)
		io.WriteString(w, htmlScript(len(h.layers)))
	}
	for i, l := range h.layers {
		if l.Query != "" {
			fmt.Fprintf(w, "<!-- Highlight Query #%d:\n\n%s\n\n-->\n", i+1,
				strings.ReplaceAll(l.Query, "--", "- -"))
		}
	}
}

// Legend outputs a list of the visible layers.
// (Part of interface Emitter)
func (h *HTML) Legend(w io.Writer) {
	io.WriteString(w, `<div id="legend" title="Click the items in this legend to toggle visibility of tags (if any)"><ul>`)
	for _, k := range h.visible {
		l, _ := h.layers.At(k)
		title := ""
		if h.interactive {
			title = ` title="Click to toggle visibility of tags (if any)"`
		}
		fmt.Fprintf(w, `<li id="legend%d"%s><span class="hi%d"></span> %s</li>`, k, title, k,
			html.EscapeString(l.DisplayName()))
	}
	io.WriteString(w, "</ul></div>\n")
}

// Title outputs a heading for selections with an ID.
// (Part of interface Emitter)
func (h *HTML) Title(w io.Writer, n int, sel tl.Selection) {
	if sel.ID == "" {
		return
	}
	fmt.Fprintf(w, "<h2>%d. <span>%s</span></h2>\n", n, html.EscapeString(sel.ID))
}

// Begin opens a container for the selection.
// (Part of interface Emitter)
func (h *HTML) Begin(w io.Writer, sel tl.Selection) {
	h.open = false
	h.opening.Reset()
	h.pending = ""
	res := html.EscapeString(sel.Region.Resource)
	if sel.WholeResource {
		fmt.Fprintf(w, "<div class=\"resource\" data-resource=\"%s\">\n", res)
		return
	}
	fmt.Fprintf(w, "<div class=\"textselection\" data-resource=\"%s\" data-begin=\"%d\" data-end=\"%d\">\n",
		res, sel.Region.Begin, sel.Region.End)
}

// Text outputs a run of text. Newline runs close open spans.
// (Part of interface Emitter)
func (h *HTML) Text(w io.Writer, run runs.Run) {
	switch run.Kind {
	case runs.PlainText:
		io.WriteString(w, html.EscapeString(run.Text))
	case runs.Whitespace:
		io.WriteString(w, escapeSpace(run.Text))
	case runs.Newlines:
		breaks := strings.Repeat("<br/>\n", len(run.Text))
		if !h.open {
			io.WriteString(w, breaks)
			return
		}
		h.closeSpans(w)
		if run.Last { // boundary follows; line breaks go after its labels
			h.pending += breaks
			return
		}
		io.WriteString(w, breaks)
		io.WriteString(w, h.opening.String())
		h.open = true
	}
}

// Boundary closes the spans of the previous segment, outputs labels for closing
// and zero-width intervals and opens the spans for the next segment.
// (Part of interface Emitter)
func (h *HTML) Boundary(w io.Writer, d resolve.Delta) {
	if h.open {
		h.closeSpans(w)
	}
	for _, c := range d.Closing {
		if c.Label != "" {
			h.label(w, c.Interval.Layer, c.Label, d.Before, false)
		}
	}
	if h.pending != "" {
		io.WriteString(w, h.pending)
		h.pending = ""
	}
	for _, c := range d.ZeroWidth {
		h.zeroWidth(w, d.Offset, c)
	}
	if d.Active > 0 && !d.Final {
		h.openSpans(w, d)
	}
}

// End closes the container of the selection.
// (Part of interface Emitter)
func (h *HTML) End(w io.Writer, sel tl.Selection) {
	if h.open {
		h.closeSpans(w)
	}
	io.WriteString(w, h.pending)
	h.pending = ""
	io.WriteString(w, "\n</div>\n")
}

// Failure outputs an error message in place of a selection.
// (Part of interface Emitter)
func (h *HTML) Failure(w io.Writer, sel tl.Selection, err error) {
	fmt.Fprintf(w, "<span class=\"error\">%s</span>\n", html.EscapeString(err.Error()))
}

// Postamble outputs the document footer.
// (Part of interface Emitter)
func (h *HTML) Postamble(w io.Writer) {
	io.WriteString(w, h.footer)
}

func (h *HTML) openSpans(w io.Writer, d resolve.Delta) {
	classes := append([]string{"a"}, h.hiClasses(d.After)...)
	tag := `<span class="` + strings.Join(classes, " ") + `"`
	if h.annotations && len(d.IDs) > 0 {
		tag += ` data-annotations="` + html.EscapeString(strings.Join(d.IDs, " ")) + `"`
	}
	h.opening.Reset()
	h.opening.WriteString(tag)
	h.opening.WriteString(">")
	io.WriteString(w, tag)
	if h.offsetAttr { // not part of the buffer, as it would be wrong when re-opening
		fmt.Fprintf(w, ` data-offset="%d"`, d.Offset)
	}
	io.WriteString(w, ">")
	for _, k := range h.visible {
		layer := `<span class="l` + strconv.Itoa(k) + `">`
		h.opening.WriteString(layer)
		io.WriteString(w, layer)
	}
	h.open = true
}

func (h *HTML) closeSpans(w io.Writer) {
	io.WriteString(w, strings.Repeat("</span>", len(h.visible)+1))
	h.open = false
}

// label outputs the label of an interval of layer k. active are the visible
// layers active when the interval closes.
func (h *HTML) label(w io.Writer, k int, text string, active []int, zw bool) {
	classes := []string{"tag" + strconv.Itoa(k)}
	if zw {
		classes = append(classes, "zw")
	}
	classes = append(classes, h.hiClasses(active)...)
	io.WriteString(w, `<label class="`+strings.Join(classes, " ")+`">`)
	for _, k := range h.visible {
		io.WriteString(w, `<span class="l`+strconv.Itoa(k)+`">`)
	}
	text = strings.ReplaceAll(html.EscapeString(text), "\n", "&#10;")
	io.WriteString(w, "<em>"+text+"</em>")
	io.WriteString(w, strings.Repeat("</span>", len(h.visible)))
	io.WriteString(w, "</label>")
}

// zeroWidth outputs an empty marker span for a zero-width interval, followed by
// its label.
func (h *HTML) zeroWidth(w io.Writer, offset int, c resolve.Closure) {
	var active []int
	if k := c.Interval.Layer; h.layers.Visible(k) {
		active = []int{k}
	}
	classes := append([]string{"a", "zw"}, h.hiClasses(active)...)
	io.WriteString(w, `<span class="`+strings.Join(classes, " ")+`"`)
	if id := c.Interval.ID; h.annotations && id != "" {
		io.WriteString(w, ` data-annotations="`+html.EscapeString(id)+`"`)
	}
	if h.offsetAttr {
		fmt.Fprintf(w, ` data-offset="%d"`, offset)
	}
	io.WriteString(w, "></span>")
	if c.Label != "" {
		h.label(w, c.Interval.Layer, c.Label, active, true)
	}
}

// hiClasses returns the CSS classes for a set of active layers.
func (h *HTML) hiClasses(active []int) []string {
	classes := make([]string, 0, len(active)*2)
	for _, k := range active {
		classes = append(classes, "hi"+strconv.Itoa(k))
		if l, ok := h.layers.At(k); ok && l.Style != "" {
			classes = append(classes, html.EscapeString(l.Style))
		}
	}
	return classes
}

// escapeSpace escapes inline whitespace for browsers which collapse whitespace.
func escapeSpace(s string) string {
	s = html.EscapeString(s)
	s = strings.ReplaceAll(s, " ", "&nbsp;")
	return strings.ReplaceAll(s, "\t", "&nbsp;&nbsp;&nbsp;&nbsp;")
}
