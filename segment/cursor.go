package segment

import (
	"unicode/utf8"
)

// Cursor maps rune offsets of a text onto byte offsets.
//
// Segments are cut from a text in ascending order, so a cursor moves forward
// only. Seeking backwards restarts from the beginning of the text.
type Cursor struct {
	text    string
	runes   int // rune offset of the cursor
	byteOff int // byte offset of the cursor
}

// NewCursor creates a rune-aware cursor at the start of text.
func NewCursor(text string) *Cursor {
	return &Cursor{text: text}
}

// ByteOffset returns the byte offset of rune offset n. Offsets past the end
// of the text are clamped to the length of the text.
func (c *Cursor) ByteOffset(n int) int {
	if n < c.runes {
		c.runes, c.byteOff = 0, 0
	}
	for c.runes < n && c.byteOff < len(c.text) {
		_, w := utf8.DecodeRuneInString(c.text[c.byteOff:])
		c.byteOff += w
		c.runes++
	}
	return c.byteOff
}

// Slice returns the text between rune offsets from and to.
func (c *Cursor) Slice(from, to int) string {
	if to < from {
		return ""
	}
	start := c.ByteOffset(from)
	end := c.ByteOffset(to)
	return c.text[start:end]
}
