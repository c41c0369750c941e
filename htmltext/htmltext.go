/*
Package htmltext extracts text from rendered HTML.

It is a companion for package formatter: it recovers the base text from the
HTML markup for a selection, ignoring labels, and checks markup for balanced
tags.

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the LICENSE file for details.
*/
package htmltext

import (
	"errors"
	"io"
	"strings"

	tl "github.com/npillmayer/textlayers"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// InnerText returns the textual content of an HTML element and all
// its descendents. It resembles the text produced by
//
//	document.getElementById("myNode").innerText
//
// in JavaScript, except that labels are skipped and non-breaking spaces count as
// spaces.
func InnerText(n *html.Node) (string, error) {
	if n == nil {
		return "", tl.ErrIllegalArguments
	}
	var b strings.Builder
	collectText(n, &b)
	return b.String(), nil
}

func collectText(n *html.Node, b *strings.Builder) {
	if n.Type == html.ElementNode && n.DataAtom == atom.Label {
		return // labels are not part of the text
	} else if n.Type == html.TextNode {
		b.WriteString(strings.ReplaceAll(n.Data, "\u00a0", " "))
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, b)
	}
}

// TextFromHTML extracts the text of an HTML fragment, as produced by the HTML
// emitter for a single selection. It does no interpretation of layout and
// styling, but extracts the pure text, skipping labels.
func TextFromHTML(input io.Reader) (string, error) {
	context := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(input, context)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for _, n := range nodes {
		collectText(n, &b)
	}
	return b.String(), nil
}

// ErrUnbalanced is returned by CheckBalance for markup with tags not closed
// in reverse order of opening.
var ErrUnbalanced = errors.New("unbalanced markup")

// TagCount counts start tags per element name.
type TagCount map[string]int

// CheckBalance tokenizes HTML and verifies that every start tag is closed by
// a matching end tag, in proper nesting order. Void elements like <br/> are
// ignored. It returns the number of start tags per element name.
func CheckBalance(input io.Reader) (TagCount, error) {
	z := html.NewTokenizer(input)
	count := TagCount{}
	var stack []string
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			if z.Err() == io.EOF {
				if len(stack) > 0 {
					return count, ErrUnbalanced
				}
				return count, nil
			}
			return count, z.Err()
		case html.StartTagToken:
			name, _ := z.TagName()
			count[string(name)]++
			stack = append(stack, string(name))
		case html.EndTagToken:
			name, _ := z.TagName()
			if len(stack) == 0 || stack[len(stack)-1] != string(name) {
				return count, ErrUnbalanced
			}
			stack = stack[:len(stack)-1]
		}
	}
}
