package formatter

import (
	"bytes"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	tl "github.com/npillmayer/textlayers"
	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestConsoleCatSat(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textlayers")
	defer teardown()
	//
	doc := &Document{Layers: tl.Layers{posLayer}, Width: 40}
	out := render(t, "The cat sat", []tl.Interval{catInterval}, doc, NewConsole(doc))
	expected := "The \x1b[31;1m[\x1b[0mcat\x1b[31m|pos: noun\x1b[0m\x1b[31;1m]\x1b[0m sat\n"
	assert.Equal(t, expected, out)
}

func TestConsoleNoColor(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textlayers")
	defer teardown()
	//
	doc := &Document{Layers: tl.Layers{posLayer}, Width: 40, NoColor: true}
	out := render(t, "The cat sat", []tl.Interval{catInterval}, doc, NewConsole(doc))
	assert.Equal(t, "The [cat|pos: noun] sat\n", out)
}

func TestConsoleHeldNewlines(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textlayers")
	defer teardown()
	//
	doc := &Document{
		Layers:  tl.Layers{{Name: "k", Tag: tl.TagRule{Kind: tl.TagKey, Key: "k"}}},
		Width:   40,
		NoColor: true,
	}
	out := render(t, "ab\ncd\n", []tl.Interval{{Begin: 0, End: 3, Layer: 1}}, doc, NewConsole(doc))
	assert.Equal(t, "[ab|k]\ncd\n\n", out)
}

func TestConsoleLineBreaks(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textlayers")
	defer teardown()
	//
	doc := &Document{
		Layers: tl.Layers{
			{Name: "k", Tag: tl.TagRule{Kind: tl.TagKey, Key: "k"}},
			{Name: "x", Tag: tl.TagRule{Kind: tl.TagID}},
		},
		Width:   40,
		NoColor: true,
	}
	out := render(t, "ab\ncd", []tl.Interval{{Begin: 0, End: 5, Layer: 1}}, doc, NewConsole(doc))
	assert.Equal(t, "[ab]\n[cd|k]\n", out)
	ivs := []tl.Interval{{Begin: 0, End: 5, Layer: 1}, {ID: "B", Begin: 0, End: 3, Layer: 2}}
	out = render(t, "ab\ncd", ivs, doc, NewConsole(doc))
	assert.Equal(t, "[[ab|B]]\n[cd|k]\n", out)
	ivs = []tl.Interval{{ID: "L", Begin: 0, End: 2, Layer: 2}}
	doc.Layers[1].Tag = tl.TagRule{Kind: tl.TagValue, Value: func(tl.Interval) (string, bool) {
		return "two\nlines", true
	}}
	out = render(t, "ab", ivs, doc, NewConsole(doc))
	assert.Equal(t, "[ab|two lines]\n", out)
}

func TestConsoleLayers(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textlayers")
	defer teardown()
	//
	doc := &Document{
		Layers: tl.Layers{
			{Name: "x", Tag: tl.TagRule{Kind: tl.TagID}},
			{Name: "h", Hide: true, Tag: tl.TagRule{Kind: tl.TagKey, Key: "h"}},
		},
		Width:   40,
		NoColor: true,
	}
	ivs := []tl.Interval{
		{ID: "A", Begin: 0, End: 3, Layer: 1},
		{ID: "B", Begin: 1, End: 5, Layer: 1},
		{ID: "Z", Begin: 5, End: 5, Layer: 1},
		{ID: "C", Begin: 0, End: 2, Layer: 2},
		{ID: "D", Begin: 2, End: 4, Layer: 0},
	}
	out := render(t, "abcde", ivs, doc, NewConsole(doc))
	assert.Equal(t, "[a[b|hc|A]de|B][Z]\n", out)
}

func TestConsoleTitle(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textlayers")
	defer teardown()
	//
	doc := &Document{Layers: tl.Layers{posLayer}, Width: 20, NoColor: true}
	c := NewConsole(doc)
	var buf bytes.Buffer
	c.Title(&buf, 1, tl.Selection{ID: "x"})
	assert.Equal(t, "------- 1. x -------\n", buf.String())
	buf.Reset()
	c.Title(&buf, 12, tl.Selection{ID: "año"})
	assert.Equal(t, "----- 12. año ------\n", buf.String())
	buf.Reset()
	c.Title(&buf, 2, tl.Selection{})
	assert.Empty(t, buf.String())
	c.Legend(&buf)
	assert.Equal(t, "Legend:\n       1. pos\n\n", buf.String())
}

// Property: brackets are balanced for every visible interval.
func TestConsoleBrackets(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textlayers")
	defer teardown()
	//
	doc := &Document{
		Layers: tl.Layers{
			{Name: "one", Tag: tl.TagRule{Kind: tl.TagID}},
			{Name: "two", Tag: tl.TagRule{Kind: tl.TagKey, Key: "two"}},
			{Name: "three", Hide: true, Tag: tl.TagRule{Kind: tl.TagID}},
		},
		Width:   40,
		NoColor: true,
	}
	rapid.Check(t, func(rt *rapid.T) {
		text := rapid.StringOfN(rapid.SampledFrom([]rune("ab \n")), 0, 30, -1).Draw(rt, "text")
		n := len(text)
		ivs := rapid.SliceOfN(rapid.Custom(func(rt *rapid.T) tl.Interval {
			b := rapid.IntRange(0, n).Draw(rt, "begin")
			return tl.Interval{
				ID:    "i",
				Begin: b,
				End:   rapid.IntRange(b, n).Draw(rt, "end"),
				Layer: rapid.IntRange(0, 3).Draw(rt, "layer"),
			}
		}), 0, 8).Draw(rt, "intervals")
		var buf bytes.Buffer
		sel := tl.Selection{Region: tl.Region{End: n}}
		if err := Output(&buf, sel, text, ivs, doc.Layers, false, NewConsole(doc)); err != nil {
			rt.Fatal(err)
		}
		depth := 0
		for _, r := range buf.String() {
			switch r {
			case '[':
				depth++
			case ']':
				depth--
			}
			if r == '\n' && depth > 0 {
				rt.Fatalf("line break inside brackets: %q", buf.String())
			}
			if depth < 0 {
				rt.Fatalf("closing bracket without opening one: %q", buf.String())
			}
		}
		if depth != 0 {
			rt.Fatalf("unbalanced brackets: %q", buf.String())
		}
		plain := strings.NewReplacer("[", "", "]", "", "|", "", "i", "", "two", "").Replace(buf.String())
		if plain != text+"\n" {
			rt.Fatalf("text changed: %q → %q", text, plain)
		}
	})
}
