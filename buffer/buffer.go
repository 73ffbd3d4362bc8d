// Package buffer provides an in-memory text buffer implementing
// colorhl.View.
package buffer

import (
	"slices"
	"sort"

	"github.com/fwojciec/colorhl"
)

var _ colorhl.View = (*Buffer)(nil)

// Buffer holds text as runes, a line index and the current selections.
// It is not safe for concurrent use.
type Buffer struct {
	text       []rune
	lineStarts []int
	selections []colorhl.Span
}

// New returns a buffer holding text with a caret at offset 0.
func New(text string) *Buffer {
	b := &Buffer{selections: []colorhl.Span{colorhl.Point(0)}}
	b.SetText(text)
	return b
}

// SetText replaces the whole content. Selections are clamped to the new
// length.
func (b *Buffer) SetText(text string) {
	b.text = []rune(text)
	b.reindex()
	for i, s := range b.selections {
		b.selections[i] = colorhl.Span{A: b.clamp(s.A), B: b.clamp(s.B)}
	}
}

// String returns the full content.
func (b *Buffer) String() string {
	return string(b.text)
}

// Len implements colorhl.View.
func (b *Buffer) Len() int {
	return len(b.text)
}

// Substr implements colorhl.View. The span is clamped to the buffer.
func (b *Buffer) Substr(s colorhl.Span) string {
	s = s.Normalize()
	return string(b.text[b.clamp(s.A):b.clamp(s.B)])
}

// Lines implements colorhl.View. Line spans exclude the line terminator.
func (b *Buffer) Lines(s colorhl.Span) []colorhl.Span {
	s = s.Normalize()
	first, last := b.LineOf(s.A), b.LineOf(s.B)
	out := make([]colorhl.Span, 0, last-first+1)
	for i := first; i <= last; i++ {
		out = append(out, b.Line(i))
	}
	return out
}

// Selection implements colorhl.View. Ranges keep their direction.
func (b *Buffer) Selection() []colorhl.Span {
	return slices.Clone(b.selections)
}

// Select replaces the selections. Offsets are clamped to the buffer.
func (b *Buffer) Select(spans ...colorhl.Span) {
	b.selections = b.selections[:0]
	for _, s := range spans {
		b.selections = append(b.selections, colorhl.Span{A: b.clamp(s.A), B: b.clamp(s.B)})
	}
}

// LineCount returns the number of lines. An empty buffer has one line.
func (b *Buffer) LineCount() int {
	return len(b.lineStarts)
}

// Line returns the span of line i, without its terminator.
func (b *Buffer) Line(i int) colorhl.Span {
	i = max(0, min(i, len(b.lineStarts)-1))
	start := b.lineStarts[i]
	end := len(b.text)
	if i+1 < len(b.lineStarts) {
		end = b.lineStarts[i+1] - 1
	}
	return colorhl.Span{A: start, B: end}
}

// LineOf returns the index of the line holding offset p.
func (b *Buffer) LineOf(p int) int {
	p = b.clamp(p)
	return sort.Search(len(b.lineStarts), func(i int) bool { return b.lineStarts[i] > p }) - 1
}

// Offset converts a line and column to an offset, clamping both.
func (b *Buffer) Offset(line, col int) int {
	l := b.Line(line)
	return l.A + max(0, min(col, l.Len()))
}

// Replace substitutes text for the content of s. Selections after the edit
// shift with it; selections touching it collapse to the end of the new
// text.
func (b *Buffer) Replace(s colorhl.Span, text string) {
	s = colorhl.Span{A: b.clamp(s.Normalize().A), B: b.clamp(s.Normalize().B)}
	repl := []rune(text)
	b.text = slices.Concat(b.text[:s.A], repl, b.text[s.B:])
	b.reindex()

	delta := len(repl) - s.Len()
	end := s.A + len(repl)
	shift := func(p int) int {
		switch {
		case p >= s.B:
			return p + delta
		case p > s.A:
			return end
		}
		return p
	}
	for i, sel := range b.selections {
		b.selections[i] = colorhl.Span{A: shift(sel.A), B: shift(sel.B)}
	}
}

func (b *Buffer) reindex() {
	b.lineStarts = append(b.lineStarts[:0], 0)
	for i, r := range b.text {
		if r == '\n' {
			b.lineStarts = append(b.lineStarts, i+1)
		}
	}
}

func (b *Buffer) clamp(p int) int {
	return max(0, min(p, len(b.text)))
}
