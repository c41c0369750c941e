package formatter

import (
	"fmt"
	"strings"
)

// swatch is a pair of colors for a highlight layer: a light one for
// backgrounds and underlines, and a dark one for label text.
type swatch struct {
	light, dark string
}

// htmlPalette is cycled for layers beyond its length.
var htmlPalette = []swatch{
	{"#b4e0aa", "#1d610d"}, // green
	{"#aaace0", "#181c6b"}, // blueish/purple
	{"#e19898", "#661818"}, // red
	{"#e1e098", "#585712"}, // yellow
	{"#98e1dd", "#126460"}, // cyan
	{"#dcc6da", "#5e1457"}, // pink
	{"#e1c398", "#5d3f14"}, // orange
	{"#6faa61", "#1a570b"}, // dark green
}

func swatchFor(k int) swatch {
	return htmlPalette[(k-1)%len(htmlPalette)]
}

// DefaultHTMLHeader returns a complete HTML header, including a stylesheet for
// n highlight layers, and the opening body tag.
func DefaultHTMLHeader(n int) string {
	var b strings.Builder
	b.WriteString(htmlHead)
	b.WriteString(Stylesheet(n))
	b.WriteString("    </style>\n</head>\n<body>\n")
	return b.String()
}

// Stylesheet generates CSS rules for n highlight layers.
func Stylesheet(n int) string {
	var b strings.Builder
	b.WriteString(baseCSS)
	if n > 0 {
		var ls []string
		for k := 1; k <= n; k++ {
			ls = append(ls, fmt.Sprintf("span.l%d", k))
		}
		fmt.Fprintf(&b, "%s {\n    display: inline-block;\n    border-bottom: 3px solid white;\n}\n",
			strings.Join(ls, ", "))
	}
	for k := 1; k <= n; k++ {
		sw := swatchFor(k)
		fmt.Fprintf(&b, "label.tag%d {\n    color: %s;\n    border-right: 5px solid %s;\n    background: %s77;\n}\n",
			k, sw.dark, sw.light, sw.light)
		fmt.Fprintf(&b, ".hi%d span.l%d {\n    border-bottom: 3px solid %s;\n}\n", k, k, sw.light)
		fmt.Fprintf(&b, "div#legend span.hi%d {\n    background: %s;\n}\n", k, sw.light)
		fmt.Fprintf(&b, "label.h.tag%d em {\n    color: %s;\n    font-weight: bold;\n}\n", k, sw.light)
		fmt.Fprintf(&b, "span.zw.hi%d {\n    border-left: 3px solid %s;\n}\n", k, sw.dark)
	}
	b.WriteString(genericCSS)
	return b.String()
}

// htmlScript returns a script which toggles the labels of a layer when its legend
// entry is clicked. It expects a global variable 'autocollapse'.
func htmlScript(n int) string {
	return fmt.Sprintf(scriptTemplate, n)
}

const htmlHead = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8" />
    <meta name="generator" content="textlayers" />
    <style type="text/css">
`

const baseCSS = `div.resource, div.textselection {
    color: black;
    background: white;
    font-family: monospace;
    border: 1px solid black;
    padding: 10px;
    margin: 10px;
    margin-right: 10%;
    line-height: 1.5em;
}
body {
    background: #b7c8c7;
}
.a {
    vertical-align: bottom;
}
span.zw {
    display: inline-block;
    min-height: 1em;
}
label {
    display: inline-block;
    margin-top: 10px;
    border-radius: 0px 20px 0px 0px;
}
label em {
    display: inline-block;
    font-size: 70%;
    padding-left: 5px;
    padding-right: 5px;
    vertical-align: bottom;
}
label.zw em {
    font-style: normal;
}
div#legend {
    color: black;
    width: 40%;
    min-width: 320px;
    margin-left: auto;
    margin-right: auto;
    font-family: sans-serif;
    padding: 5px;
    border: 1px dashed #ccc;
    border-radius: 20px;
}
div#legend ul {
    list-style: none;
}
div#legend ul li span {
    display: inline-block;
    width: 15px;
    border-radius: 15px;
    border: 1px #555 solid;
    min-height: 15px;
}
div#legend li {
    cursor: pointer;
}
div#legend li:hover {
    font-weight: bold;
}
div#legend li.hidetags {
    text-decoration: line-through;
}
body>h2 {
    color: black;
    font-size: 1.1em;
    font-family: sans-serif;
}
span.error {
    color: #ff0000;
    font-weight: bold;
}
label.h em {
    display: none;
}
span:hover + label.h em {
    position: absolute;
    display: block;
    padding: 2px;
    background: black;
}
`

const genericCSS = `/* generic style classes */
.italic, .italics { font-style: italic; }
.bold { font-weight: bold; }
.normal { font-weight: normal; font-style: normal; }
.red { color: #ff0000; }
.green { color: #00ff00; }
.blue { color: #0000ff; }
.yellow { color: #ffff00; }
.super, .small { vertical-align: top; font-size: 60%; }
`

const scriptTemplate = `<script>
document.addEventListener('DOMContentLoaded', function() {
    for (let i = 1; i <= %d; i++) {
        let e = document.getElementById("legend" + i);
        if (e) {
            e.addEventListener('click', () => {
                if (e.classList.contains("hidetags")) {
                    document.querySelectorAll('label.tag' + i).forEach((tag) => { tag.classList.remove("h") });
                    e.classList.remove("hidetags");
                } else {
                    document.querySelectorAll('label.tag' + i).forEach((tag) => { tag.classList.add("h") });
                    e.classList.add("hidetags");
                }
            });
            if (autocollapse) {
                e.click();
            }
        }
    }
});
</script>
`

const htmlFooter = "</body>\n</html>\n"
