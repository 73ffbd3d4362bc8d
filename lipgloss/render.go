package lipgloss

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/colorhl"
)

// LineRenderer paints one line of text: syntax tokens underneath, highlight
// layers on top, and the cursor over everything.
type LineRenderer struct {
	renderer *lipgloss.Renderer
	palette  colorhl.Palette
	layers   []*Layer
}

// NewLineRenderer returns a renderer drawing layers in order, later layers
// over earlier ones. Nil layers are skipped.
func NewLineRenderer(r *lipgloss.Renderer, p colorhl.Palette, layers ...*Layer) *LineRenderer {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	lr := &LineRenderer{renderer: r, palette: p}
	for _, l := range layers {
		if l != nil {
			lr.layers = append(lr.layers, l)
		}
	}
	return lr
}

// cell identifies what paints a character; equal cells share a segment.
type cell struct {
	token  int
	layer  int // -1 for none
	color  colorhl.Color
	cursor bool
}

// Render paints text, which starts at absolute offset start, expanding tabs.
// tokens must spell text exactly or be nil. cursor is an absolute offset,
// or -1.
func (lr *LineRenderer) Render(text string, start int, tokens []colorhl.Token, cursor int) string {
	runes := []rune(text)
	tokenAt := tokenIndex(runes, tokens)

	var sb strings.Builder
	var seg []rune
	var cur cell
	col := 0
	flush := func() {
		if len(seg) > 0 {
			text := ExpandTabs(string(seg), col)
			col += lipgloss.Width(text)
			sb.WriteString(lr.style(cur, tokens).Render(text))
			seg = seg[:0]
		}
	}
	for i, r := range runes {
		c := lr.cellAt(start+i, tokenAt[i], cursor)
		if i > 0 && c != cur {
			flush()
		}
		cur = c
		seg = append(seg, r)
	}
	flush()
	if cursor == start+len(runes) {
		sb.WriteString(lr.cursorStyle().Render(" "))
	}
	return sb.String()
}

func (lr *LineRenderer) cellAt(offset, token, cursor int) cell {
	c := cell{token: token, layer: -1, cursor: offset == cursor}
	for i := len(lr.layers) - 1; i >= 0; i-- {
		if col, ok := lr.layers[i].At(offset); ok {
			c.layer, c.color = i, col
			break
		}
	}
	return c
}

func (lr *LineRenderer) style(c cell, tokens []colorhl.Token) lipgloss.Style {
	st := lr.renderer.NewStyle()
	if c.token >= 0 {
		ts := tokens[c.token].Style
		if ts.Foreground != "" {
			st = st.Foreground(lipgloss.Color(ts.Foreground))
		}
		st = st.Bold(ts.Bold)
	}
	if c.layer >= 0 {
		st = lr.layers[c.layer].Style(c.color).Inherit(st)
	}
	if c.cursor {
		st = lr.cursorStyle().Inherit(st)
	}
	return st
}

func (lr *LineRenderer) cursorStyle() lipgloss.Style {
	st := lr.renderer.NewStyle().Reverse(true)
	if lr.palette.Cursor != "" {
		st = st.Background(lipgloss.Color(lr.palette.Cursor)).Foreground(lipgloss.Color(lr.palette.Background)).Reverse(false)
	}
	return st
}

// tokenIndex maps each rune to its token, or -1 when tokens do not spell
// the text.
func tokenIndex(runes []rune, tokens []colorhl.Token) []int {
	idx := make([]int, len(runes))
	pos := 0
	for t, tok := range tokens {
		for range []rune(tok.Text) {
			if pos >= len(idx) {
				break
			}
			idx[pos] = t
			pos++
		}
	}
	if pos != len(runes) {
		for i := range idx {
			idx[i] = -1
		}
	}
	return idx
}
