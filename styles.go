package colorhl

// HighlightStyle selects how a color region is painted over its text.
type HighlightStyle string

// Highlight styles.
const (
	StyleFill      HighlightStyle = "fill"      // Background in the color, contrasting text
	StyleUnderline HighlightStyle = "underline" // Underline in the color
	StyleText      HighlightStyle = "text"      // Text drawn in the color
)

// GutterStyle selects the marker drawn next to a line holding a color.
type GutterStyle string

// Gutter styles.
const (
	GutterCircle GutterStyle = "circle"
	GutterSquare GutterStyle = "square"
	GutterFill   GutterStyle = "fill"
)

// Valid reports whether s is a supported highlight style.
func (s HighlightStyle) Valid() bool {
	switch s {
	case StyleFill, StyleUnderline, StyleText:
		return true
	}
	return false
}

// Valid reports whether s is a supported gutter style.
func (s GutterStyle) Valid() bool {
	switch s {
	case GutterCircle, GutterSquare, GutterFill:
		return true
	}
	return false
}

// Contrast returns black or white, whichever reads better on c.
func Contrast(c Color) Color {
	// Rec. 601 luma, integer form.
	luma := (299*int(c.R) + 587*int(c.G) + 114*int(c.B)) / 1000
	if luma > 127 {
		return Color{A: 0xFF}
	}
	return White
}
