package colorhl_test

import (
	"testing"

	"github.com/fwojciec/colorhl"
	"github.com/stretchr/testify/assert"
)

func TestHighlightStyle_Valid(t *testing.T) {
	t.Parallel()

	t.Run("accepts supported styles", func(t *testing.T) {
		t.Parallel()

		for _, s := range []colorhl.HighlightStyle{colorhl.StyleFill, colorhl.StyleUnderline, colorhl.StyleText} {
			assert.True(t, s.Valid(), "style: %s", s)
		}
	})

	t.Run("rejects unknown and empty styles", func(t *testing.T) {
		t.Parallel()

		assert.False(t, colorhl.HighlightStyle("outline").Valid())
		assert.False(t, colorhl.HighlightStyle("").Valid())
	})
}

func TestGutterStyle_Valid(t *testing.T) {
	t.Parallel()

	assert.True(t, colorhl.GutterCircle.Valid())
	assert.True(t, colorhl.GutterSquare.Valid())
	assert.True(t, colorhl.GutterFill.Valid())
	assert.False(t, colorhl.GutterStyle("star").Valid())
}

func TestContrast(t *testing.T) {
	t.Parallel()

	t.Run("dark text on light colors", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, colorhl.Color{A: 0xFF}, colorhl.Contrast(colorhl.White))
		assert.Equal(t, colorhl.Color{A: 0xFF}, colorhl.Contrast(colorhl.Color{R: 0xFF, G: 0xFF, A: 0xFF}))
	})

	t.Run("light text on dark colors", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, colorhl.White, colorhl.Contrast(colorhl.Color{A: 0xFF}))
		assert.Equal(t, colorhl.White, colorhl.Contrast(colorhl.Color{B: 0xFF, A: 0xFF}))
	})
}
