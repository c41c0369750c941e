package formatter

import (
	"bytes"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	tl "github.com/npillmayer/textlayers"
	"github.com/npillmayer/textlayers/htmltext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

var posLayer = tl.Layer{
	Name: "pos",
	Tag:  tl.TagRule{Kind: tl.TagKeyAndValue, Key: "pos"},
}

var catInterval = tl.Interval{ID: "w2", Begin: 4, End: 7, Layer: 1, Data: map[string]string{"pos": "noun"}}

// inner renders a selection of text using emitter e and strips the container
// div from the output.
func inner(t *testing.T, text string, ivs []tl.Interval, doc *Document, e Emitter) string {
	t.Helper()
	out := render(t, text, ivs, doc, e)
	start := strings.Index(out, ">\n")
	require.True(t, start >= 0, "container missing in %q", out)
	require.True(t, strings.HasSuffix(out, "\n</div>\n"), "container not closed in %q", out)
	return out[start+2 : len(out)-len("\n</div>\n")]
}

func render(t *testing.T, text string, ivs []tl.Interval, doc *Document, e Emitter) string {
	t.Helper()
	sel := tl.Selection{Region: tl.Region{Resource: "r", End: len([]rune(text))}}
	var buf bytes.Buffer
	err := Output(&buf, sel, text, ivs, doc.Layers, doc.Prune, e)
	require.NoError(t, err)
	return buf.String()
}

func TestHTMLCatSat(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textlayers")
	defer teardown()
	//
	doc := &Document{Layers: tl.Layers{posLayer}}
	out := render(t, "The cat sat", []tl.Interval{catInterval}, doc, NewHTML(doc))
	expected := `<div class="textselection" data-resource="r" data-begin="0" data-end="11">` + "\n" +
		`The&nbsp;<span class="a hi1"><span class="l1">cat</span></span>` +
		`<label class="tag1 hi1"><span class="l1"><em>pos: noun</em></span></label>&nbsp;sat` +
		"\n</div>\n"
	assert.Equal(t, expected, out)
}

func TestHTMLOffsetAttribute(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textlayers")
	defer teardown()
	//
	doc := &Document{Layers: tl.Layers{posLayer}, OffsetAttr: true}
	out := inner(t, "The cat sat", []tl.Interval{catInterval}, doc, NewHTML(doc))
	assert.Contains(t, out, `<span class="a hi1" data-offset="4"><span class="l1">cat`)
}

func TestHTMLCrossingOverlap(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textlayers")
	defer teardown()
	//
	doc := &Document{Layers: tl.Layers{
		{Name: "x", Tag: tl.TagRule{Kind: tl.TagID}},
		{Name: "y", Tag: tl.TagRule{Kind: tl.TagID}},
	}}
	ivs := []tl.Interval{
		{ID: "A", Begin: 0, End: 3, Layer: 1},
		{ID: "B", Begin: 1, End: 5, Layer: 2},
	}
	out := inner(t, "abcde", ivs, doc, NewHTML(doc))
	expected := `<span class="a hi1"><span class="l1"><span class="l2">a</span></span></span>` +
		`<span class="a hi1 hi2"><span class="l1"><span class="l2">bc</span></span></span>` +
		`<label class="tag1 hi1 hi2"><span class="l1"><span class="l2"><em>A</em></span></span></label>` +
		`<span class="a hi2"><span class="l1"><span class="l2">de</span></span></span>` +
		`<label class="tag2 hi2"><span class="l1"><span class="l2"><em>B</em></span></span></label>`
	assert.Equal(t, expected, out)
	_, err := htmltext.CheckBalance(strings.NewReader(out))
	assert.NoError(t, err)
}

func TestHTMLZeroWidth(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textlayers")
	defer teardown()
	//
	doc := &Document{Layers: tl.Layers{{Name: "gap", Tag: tl.TagRule{Kind: tl.TagID}}}}
	out := inner(t, "ab", []tl.Interval{{ID: "z", Begin: 1, End: 1, Layer: 1}}, doc, NewHTML(doc))
	expected := `a<span class="a zw hi1"></span>` +
		`<label class="tag1 zw hi1"><span class="l1"><em>z</em></span></label>b`
	assert.Equal(t, expected, out)
}

func TestHTMLLineBreaks(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textlayers")
	defer teardown()
	//
	doc := &Document{Layers: tl.Layers{{Name: "k", Tag: tl.TagRule{Kind: tl.TagKey, Key: "k"}}}}
	out := inner(t, "ab\ncd", []tl.Interval{{Begin: 0, End: 5, Layer: 1}}, doc, NewHTML(doc))
	expected := `<span class="a hi1"><span class="l1">ab</span></span><br/>` + "\n" +
		`<span class="a hi1"><span class="l1">cd</span></span>` +
		`<label class="tag1 hi1"><span class="l1"><em>k</em></span></label>`
	assert.Equal(t, expected, out)
	//
	out = inner(t, "ab\n", []tl.Interval{{Begin: 0, End: 3, Layer: 1}}, doc, NewHTML(doc))
	expected = `<span class="a hi1"><span class="l1">ab</span></span>` +
		`<label class="tag1 hi1"><span class="l1"><em>k</em></span></label><br/>` + "\n"
	assert.Equal(t, expected, out)
}

func TestHTMLAnnotationIDs(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textlayers")
	defer teardown()
	//
	doc := &Document{
		Layers:        tl.Layers{{Name: "k", Tag: tl.TagRule{Kind: tl.TagKey, Key: "k"}}},
		AnnotationIDs: true,
		OffsetAttr:    true,
	}
	ivs := []tl.Interval{
		{ID: "x", Begin: 0, End: 5, Layer: 1},
		{ID: "y", Begin: 4, End: 5},
		{ID: "z", Begin: 4, End: 4},
	}
	out := inner(t, "ab\ncd", ivs, doc, NewHTML(doc))
	expected := `<span class="a hi1" data-annotations="x" data-offset="0"><span class="l1">ab</span></span><br/>` + "\n" +
		`<span class="a hi1" data-annotations="x"><span class="l1">c</span></span>` +
		`<span class="a zw" data-annotations="z" data-offset="4"></span>` +
		`<span class="a hi1" data-annotations="x y" data-offset="4"><span class="l1">d</span></span>` +
		`<label class="tag1 hi1"><span class="l1"><em>k</em></span></label>`
	assert.Equal(t, expected, out)
}

func TestHTMLStyleIsEscaped(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textlayers")
	defer teardown()
	//
	doc := &Document{Layers: tl.Layers{{Name: "s", Style: `bold"><b>`, Tag: tl.TagRule{Kind: tl.TagID}}}}
	out := inner(t, "ab", []tl.Interval{{ID: "i", Begin: 0, End: 2, Layer: 1}}, doc, NewHTML(doc))
	assert.Contains(t, out, `<span class="a hi1 bold&#34;&gt;&lt;b&gt;">`)
	count, err := htmltext.CheckBalance(strings.NewReader(out))
	require.NoError(t, err)
	assert.Zero(t, count["b"])
}

func TestHTMLHiddenLayer(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textlayers")
	defer teardown()
	//
	doc := &Document{Layers: tl.Layers{
		posLayer,
		{Name: "h", Hide: true, Tag: tl.TagRule{Kind: tl.TagKey, Key: "tagged"}},
	}}
	ivs := []tl.Interval{catInterval, {Begin: 0, End: 3, Layer: 2}}
	out := inner(t, "The cat sat", ivs, doc, NewHTML(doc))
	assert.NotContains(t, out, "hi2")
	assert.NotContains(t, out, "l2")
	assert.Contains(t, out, `<label class="tag2"><span class="l1"><em>tagged</em></span></label>`)
}

func TestHTMLEscaping(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textlayers")
	defer teardown()
	//
	doc := &Document{Layers: tl.Layers{{Name: "v", Tag: tl.TagRule{Kind: tl.TagValue, Key: "v"}}}}
	ivs := []tl.Interval{{Begin: 0, End: 3, Layer: 1, Data: map[string]string{"v": "x<y\nz"}}}
	out := inner(t, "a&b\tc", ivs, doc, NewHTML(doc))
	assert.Contains(t, out, "a&amp;b")
	assert.Contains(t, out, "<em>x&lt;y&#10;z</em>")
	assert.Contains(t, out, "&nbsp;&nbsp;&nbsp;&nbsp;c")
}

func TestHTMLPreamble(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textlayers")
	defer teardown()
	//
	layers := tl.Layers{posLayer, {Name: "hidden_one", Hide: true}, {Name: "q", Query: "a -- b"}}
	doc := &Document{Layers: layers, Interactive: true}
	h := NewHTML(doc)
	var buf bytes.Buffer
	h.Preamble(&buf)
	h.Legend(&buf)
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"), "header expected")
	assert.Contains(t, out, "autocollapse = false;")
	assert.Contains(t, out, "<!-- Highlight Query #3:\n\na - - b\n\n-->")
	assert.Contains(t, out, `<li id="legend1" title="Click to toggle visibility of tags (if any)"><span class="hi1"></span> pos</li>`)
	assert.NotContains(t, out, `id="legend2"`)
	assert.Contains(t, out, `<span class="hi3"></span> q</li>`)
}

// Property: HTML output is balanced and the text it shows is the text of the
// selection.
func TestHTMLProperties(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textlayers")
	defer teardown()
	//
	layers := tl.Layers{
		{Name: "one", Tag: tl.TagRule{Kind: tl.TagID}},
		{Name: "two", Tag: tl.TagRule{Kind: tl.TagKey, Key: "two"}},
		{Name: "three", Hide: true, Tag: tl.TagRule{Kind: tl.TagID}},
	}
	rapid.Check(t, func(rt *rapid.T) {
		text := rapid.StringOfN(rapid.SampledFrom([]rune("ab <&\n")), 0, 40, -1).Draw(rt, "text")
		n := len(text)
		ivs := rapid.SliceOfN(rapid.Custom(func(rt *rapid.T) tl.Interval {
			b := rapid.IntRange(0, n).Draw(rt, "begin")
			return tl.Interval{
				ID:    "iv",
				Begin: b,
				End:   rapid.IntRange(b, n).Draw(rt, "end"),
				Layer: rapid.IntRange(0, 3).Draw(rt, "layer"),
			}
		}), 0, 8).Draw(rt, "intervals")
		doc := &Document{Layers: layers, OffsetAttr: rapid.Bool().Draw(rt, "offsets")}
		var buf bytes.Buffer
		sel := tl.Selection{Region: tl.Region{Resource: "r", End: n}}
		if err := Output(&buf, sel, text, ivs, doc.Layers, false, NewHTML(doc)); err != nil {
			rt.Fatal(err)
		}
		out := buf.String()
		if _, err := htmltext.CheckBalance(strings.NewReader(out)); err != nil {
			rt.Fatalf("unbalanced output %q", out)
		}
		body := out[strings.Index(out, ">\n")+2 : len(out)-len("\n</div>\n")]
		if strings.Contains(body, "<br/>\n</span>") {
			rt.Fatalf("line break inside span: %q", body)
		}
		shown, err := htmltext.TextFromHTML(strings.NewReader(body))
		if err != nil {
			rt.Fatal(err)
		}
		if shown != text {
			rt.Fatalf("text changed: %q → %q", text, shown)
		}
	})
}
