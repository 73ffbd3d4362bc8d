package lipgloss

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/colorhl"
	"github.com/fwojciec/colorhl/highlight"
)

// Compile-time interface verification.
var (
	_ colorhl.Highlighter = (*Layer)(nil)
	_ colorhl.Highlighter = (*Gutter)(nil)
	_ colorhl.Highlighter = (*Annotation)(nil)
)

// regionSet is the rendered state shared by every strategy.
type regionSet map[colorhl.Span]colorhl.Color

func (s regionSet) sorted() []colorhl.Region {
	out := make([]colorhl.Region, 0, len(s))
	for _, span := range slices.SortedFunc(maps.Keys(s), colorhl.Compare) {
		out = append(out, colorhl.Region{Span: span, Color: s[span]})
	}
	return out
}

// batch records a pass and applies it on Done, so a frame never shows a
// half-applied pass.
type batch struct {
	set regionSet
	ops []op
}

type op struct {
	add    bool
	region colorhl.Region
}

func (b *batch) Highlight(r colorhl.Region) {
	b.ops = append(b.ops, op{add: true, region: r})
}

func (b *batch) Unhighlight(r colorhl.Region) {
	b.ops = append(b.ops, op{region: r})
}

func (b *batch) Done() {
	for _, o := range b.ops {
		if o.add {
			b.set[o.region.Span] = o.region.Color
		} else if b.set[o.region.Span] == o.region.Color {
			delete(b.set, o.region.Span)
		}
	}
	b.ops = nil
}

// Layer paints regions over text in one highlight style.
type Layer struct {
	renderer *lipgloss.Renderer
	style    colorhl.HighlightStyle
	regions  regionSet
}

// NewLayer returns an empty layer. A nil renderer uses the default one.
func NewLayer(style colorhl.HighlightStyle, r *lipgloss.Renderer) *Layer {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return &Layer{renderer: r, style: style, regions: make(regionSet)}
}

// NewBatch implements colorhl.Highlighter.
func (l *Layer) NewBatch() colorhl.Batch {
	return &batch{set: l.regions}
}

// Regions returns the painted regions ordered by span.
func (l *Layer) Regions() []colorhl.Region {
	return l.regions.sorted()
}

// At returns the color painted over the character at offset.
func (l *Layer) At(offset int) (colorhl.Color, bool) {
	for span, c := range l.regions {
		if span.A <= offset && offset < span.B {
			return c, true
		}
	}
	return colorhl.Color{}, false
}

// Style returns the style painting text in color c.
func (l *Layer) Style(c colorhl.Color) lipgloss.Style {
	col := lipgloss.Color(c.RGBHex())
	st := l.renderer.NewStyle()
	switch l.style {
	case colorhl.StyleFill:
		return st.Background(col).Foreground(lipgloss.Color(colorhl.Contrast(c).RGBHex()))
	case colorhl.StyleUnderline:
		return st.Underline(true).Foreground(col)
	default:
		return st.Foreground(col)
	}
}

// Gutter draws one marker per line in the color of the line's first region.
type Gutter struct {
	renderer *lipgloss.Renderer
	style    colorhl.GutterStyle
	lineOf   func(offset int) int
	regions  regionSet
}

// NewGutter returns an empty gutter. lineOf maps offsets to line indexes.
func NewGutter(style colorhl.GutterStyle, lineOf func(offset int) int, r *lipgloss.Renderer) *Gutter {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return &Gutter{renderer: r, style: style, lineOf: lineOf, regions: make(regionSet)}
}

// NewBatch implements colorhl.Highlighter.
func (g *Gutter) NewBatch() colorhl.Batch {
	return &batch{set: g.regions}
}

// Marker returns the one-cell marker for line, or a blank cell.
func (g *Gutter) Marker(line int) string {
	for _, r := range g.regions.sorted() {
		if g.lineOf(r.Span.A) != line {
			continue
		}
		col := lipgloss.Color(r.Color.RGBHex())
		switch g.style {
		case colorhl.GutterSquare:
			return g.renderer.NewStyle().Foreground(col).Render("■")
		case colorhl.GutterFill:
			return g.renderer.NewStyle().Background(col).Render(" ")
		default:
			return g.renderer.NewStyle().Foreground(col).Render("●")
		}
	}
	return " "
}

// Annotation lists the colors of a line after its text.
type Annotation struct {
	renderer *lipgloss.Renderer
	lineOf   func(offset int) int
	regions  regionSet
}

// NewAnnotation returns an empty annotation strategy.
func NewAnnotation(lineOf func(offset int) int, r *lipgloss.Renderer) *Annotation {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return &Annotation{renderer: r, lineOf: lineOf, regions: make(regionSet)}
}

// NewBatch implements colorhl.Highlighter.
func (a *Annotation) NewBatch() colorhl.Batch {
	return &batch{set: a.regions}
}

// Text returns the annotation for line, such as "■ #FF0000FF", or "".
func (a *Annotation) Text(line int) string {
	var parts []string
	for _, r := range a.regions.sorted() {
		if a.lineOf(r.Span.A) != line {
			continue
		}
		swatch := a.renderer.NewStyle().Foreground(lipgloss.Color(r.Color.RGBHex())).Render("■")
		parts = append(parts, fmt.Sprintf("%s %s", swatch, r.Color.Hex()))
	}
	return strings.Join(parts, "  ")
}

// Strategies are the enabled rendering strategies of one trigger. Fields
// of disabled strategies are nil.
type Strategies struct {
	Highlight  *Layer
	Gutter     *Gutter
	Annotation *Annotation
}

// NewStrategies builds the strategies t enables.
func NewStrategies(t colorhl.Trigger, lineOf func(offset int) int, r *lipgloss.Renderer) *Strategies {
	s := &Strategies{}
	if t.Highlight.Enabled {
		s.Highlight = NewLayer(colorhl.HighlightStyle(t.Highlight.Style), r)
	}
	if t.Gutter.Enabled {
		s.Gutter = NewGutter(colorhl.GutterStyle(t.Gutter.Style), lineOf, r)
	}
	if t.Annotation.Enabled {
		s.Annotation = NewAnnotation(lineOf, r)
	}
	return s
}

// Highlighter fans out to every enabled strategy.
func (s *Strategies) Highlighter() colorhl.Highlighter {
	var m highlight.Multi
	if s.Highlight != nil {
		m = append(m, s.Highlight)
	}
	if s.Gutter != nil {
		m = append(m, s.Gutter)
	}
	if s.Annotation != nil {
		m = append(m, s.Annotation)
	}
	return m
}
