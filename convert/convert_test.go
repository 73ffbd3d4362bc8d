package convert_test

import (
	"testing"

	"github.com/fwojciec/colorhl"
	"github.com/fwojciec/colorhl/convert"
	"github.com/fwojciec/colorhl/pattern"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/colornames"
)

var defaultPattern = pattern.MustCompile(pattern.DefaultGrammar())

// parse runs literal through the default pattern and registry.
func parse(t *testing.T, literal string) (colorhl.Color, string, bool) {
	t.Helper()

	span, groups, ok, err := defaultPattern.FindAt([]rune(literal), 0)
	require.NoError(t, err)
	require.True(t, ok, "no match in %q", literal)
	require.Equal(t, colorhl.Span{A: 0, B: len([]rune(literal))}, span, "partial match of %q", literal)
	return convert.Default().ToColor(defaultPattern.Formats(), groups)
}

func TestToColor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		literal string
		format  string
		want    colorhl.Color
	}{
		{"#ABCDEF", "sharp6", colorhl.Color{R: 0xAB, G: 0xCD, B: 0xEF, A: 0xFF}},
		{"#ABCDEF80", "sharp8", colorhl.Color{R: 0xAB, G: 0xCD, B: 0xEF, A: 0x80}},
		{"#abc", "sharp3", colorhl.Color{R: 0xAA, G: 0xBB, B: 0xCC, A: 0xFF}},
		{"#abc8", "sharp4", colorhl.Color{R: 0xAA, G: 0xBB, B: 0xCC, A: 0x88}},
		{"rgb(10, 20, 30)", "rgb", colorhl.Color{R: 10, G: 20, B: 30, A: 0xFF}},
		{"rgba(10, 20, 30, 0.5)", "rgba", colorhl.Color{R: 10, G: 20, B: 30, A: 128}},
		{"rgba(10,20,30,.0)", "rgba", colorhl.Color{R: 10, G: 20, B: 30, A: 0}},
		{"hsl(210, 50%, 40%)", "hsl", colorhl.Color{R: 51, G: 102, B: 153, A: 0xFF}},
		{"hsl(360, 100%, 50%)", "hsl", colorhl.Color{R: 255, A: 0xFF}},
		{"hsl(0, 0, 100%)", "hsl", colorhl.White},
		{"hsla(120, 100%, 25%, 1)", "hsla", colorhl.Color{G: 128, A: 0xFF}},
		{"hsv(120, 100%, 50%)", "hsv", colorhl.Color{G: 128, A: 0xFF}},
		{"hsva(0, 100%, 100%, 0)", "hsva", colorhl.Color{R: 255}},
		{"red", "named", colorhl.Color{R: 255, A: 0xFF}},
		{"darkslategray", "named", colorhl.Color{R: 47, G: 79, B: 79, A: 0xFF}},
		{"RED", "named", colorhl.Color{R: 255, A: 0xFF}},
		{"DarkSlateGray", "named", colorhl.Color{R: 47, G: 79, B: 79, A: 0xFF}},
	}
	for _, tt := range tests {
		t.Run(tt.literal, func(t *testing.T) {
			t.Parallel()

			got, format, ok := parse(t, tt.literal)

			require.True(t, ok)
			assert.Equal(t, tt.format, format)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToColor_RejectsOutOfRangeValues(t *testing.T) {
	t.Parallel()

	for _, literal := range []string{
		"rgb(300, 0, 0)",
		"rgba(0, 0, 0, 1.5)",
		"hsl(361, 0%, 0%)",
		"hsl(0, 101%, 0%)",
		"hsv(0, 0%, 999%)",
	} {
		t.Run(literal, func(t *testing.T) {
			t.Parallel()

			_, _, ok := parse(t, literal)

			assert.False(t, ok)
		})
	}
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	levels := []uint8{0, 7, 17, 128, 200, 255}
	var all []colorhl.Color
	for _, r := range levels {
		for _, g := range levels {
			for _, b := range levels {
				for _, a := range levels {
					all = append(all, colorhl.Color{R: r, G: g, B: b, A: a})
				}
			}
		}
	}

	reg := convert.Default()
	check := func(t *testing.T, format string, keep func(colorhl.Color) bool) {
		t.Helper()
		for _, c := range all {
			if !keep(c) {
				continue
			}
			s, err := reg.FromColor(c, format)
			require.NoError(t, err)
			got, gotFormat, ok := parse(t, s)
			require.True(t, ok, s)
			require.Equal(t, format, gotFormat, s)
			require.Equal(t, c, got, "%s via %s", c, s)
		}
	}
	every := func(colorhl.Color) bool { return true }
	opaque := func(c colorhl.Color) bool { return c.A == 0xFF }
	nibbles := func(c colorhl.Color) bool {
		return c.R%17 == 0 && c.G%17 == 0 && c.B%17 == 0 && c.A%17 == 0
	}

	t.Run("sharp8 preserves every color", func(t *testing.T) {
		t.Parallel()
		check(t, "sharp8", every)
	})
	t.Run("rgba preserves every color", func(t *testing.T) {
		t.Parallel()
		check(t, "rgba", every)
	})
	t.Run("sharp6 preserves opaque colors", func(t *testing.T) {
		t.Parallel()
		check(t, "sharp6", opaque)
	})
	t.Run("rgb preserves opaque colors", func(t *testing.T) {
		t.Parallel()
		check(t, "rgb", opaque)
	})
	t.Run("sharp4 preserves duplicated nibbles", func(t *testing.T) {
		t.Parallel()
		check(t, "sharp4", nibbles)
	})
	t.Run("sharp3 preserves opaque duplicated nibbles", func(t *testing.T) {
		t.Parallel()
		check(t, "sharp3", func(c colorhl.Color) bool { return opaque(c) && nibbles(c) })
	})

	// Whole degrees and percents lose precision. The bounds are the worst
	// channel error over every RGB color.
	near := func(t *testing.T, format string, keep func(colorhl.Color) bool, tolerance int) {
		t.Helper()
		for _, c := range all {
			if !keep(c) {
				continue
			}
			s, err := reg.FromColor(c, format)
			require.NoError(t, err)
			got, gotFormat, ok := parse(t, s)
			require.True(t, ok, s)
			require.Equal(t, format, gotFormat, s)
			require.LessOrEqual(t, channelError(c, got), tolerance, "%s via %s gave %s", c, s, got)
			require.Equal(t, c.A, got.A, "alpha of %s via %s", c, s)
		}
	}
	t.Run("hsl stays within five units per channel", func(t *testing.T) {
		t.Parallel()
		near(t, "hsl", opaque, 5)
	})
	t.Run("hsla stays within five units per channel", func(t *testing.T) {
		t.Parallel()
		near(t, "hsla", every, 5)
	})
	t.Run("hsv stays within three units per channel", func(t *testing.T) {
		t.Parallel()
		near(t, "hsv", opaque, 3)
	})
	t.Run("hsva stays within three units per channel", func(t *testing.T) {
		t.Parallel()
		near(t, "hsva", every, 3)
	})

	t.Run("named preserves every keyword color", func(t *testing.T) {
		t.Parallel()

		for _, name := range colornames.Names {
			c, _, ok := parse(t, name)
			require.True(t, ok, name)

			s, err := reg.FromColor(c, "named")
			require.NoError(t, err)
			got, gotFormat, ok := parse(t, s)

			require.True(t, ok, s)
			require.Equal(t, "named", gotFormat, s)
			require.Equal(t, c, got, "%s via %s", name, s)
		}
	})
}

// channelError returns the largest difference between the color channels
// of a and b.
func channelError(a, b colorhl.Color) int {
	diff := func(x, y uint8) int {
		if x > y {
			return int(x - y)
		}
		return int(y - x)
	}
	return max(diff(a.R, b.R), diff(a.G, b.G), diff(a.B, b.B))
}

func TestFromColor(t *testing.T) {
	t.Parallel()

	reg := convert.Default()
	tests := []struct {
		name   string
		color  colorhl.Color
		format string
		want   string
	}{
		{"hex keeps uppercase digits", colorhl.Color{R: 0xAB, G: 0xCD, B: 0xEF, A: 0xFF}, "sharp6", "#ABCDEF"},
		{"short hex rounds to the nearest nibble", colorhl.Color{R: 0x12, G: 0xEE, B: 0x08, A: 0xFF}, "sharp3", "#1E0"},
		{"alpha uses three decimals", colorhl.Color{R: 10, G: 20, B: 30, A: 128}, "rgba", "rgba(10, 20, 30, 0.502)"},
		{"opaque alpha renders as one", colorhl.White, "rgba", "rgba(255, 255, 255, 1)"},
		{"hsl renders integer percentages", colorhl.Color{R: 51, G: 102, B: 153, A: 0xFF}, "hsl", "hsl(210, 50%, 40%)"},
		{"hsla keeps alpha", colorhl.Color{G: 128, A: 0}, "hsla", "hsla(120, 100%, 25%, 0)"},
		{"hsv renders integer percentages", colorhl.Color{G: 128, A: 0xFF}, "hsv", "hsv(120, 100%, 50%)"},
		{"gray has zero hue", colorhl.Color{R: 128, G: 128, B: 128, A: 0xFF}, "hsl", "hsl(0, 0%, 50%)"},
		{"named uses the exact keyword", colorhl.Color{R: 255, A: 0xFF}, "named", "red"},
		{"named picks the first of equal keywords", colorhl.Color{G: 255, B: 255, A: 0xFF}, "named", "aqua"},
		{"named falls back to the nearest keyword", colorhl.Color{R: 250, G: 2, B: 1, A: 0xFF}, "named", "red"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := reg.FromColor(tt.color, tt.format)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("rejects unknown formats", func(t *testing.T) {
		t.Parallel()

		_, err := reg.FromColor(colorhl.White, "cmyk")

		assert.ErrorIs(t, err, colorhl.ErrUnknownFormat)
	})
}

func TestRegistry_ToColor(t *testing.T) {
	t.Parallel()

	t.Run("uses the first participating format in priority order", func(t *testing.T) {
		t.Parallel()

		groups := colorhl.Groups{"rgb": "rgb(1, 2, 3)", "rgb_R": "1", "rgb_G": "2", "rgb_B": "3", "rgb_A": ""}

		c, format, ok := convert.Default().ToColor([]string{"rgba", "rgb"}, groups)

		require.True(t, ok)
		assert.Equal(t, "rgb", format)
		assert.Equal(t, colorhl.Color{R: 1, G: 2, B: 3, A: 0xFF}, c)
	})

	t.Run("panics when no format participated", func(t *testing.T) {
		t.Parallel()

		assert.Panics(t, func() {
			convert.Default().ToColor([]string{"rgb"}, colorhl.Groups{"hsl": "hsl(0,0,0)"})
		})
	})
}

func TestForGrammar(t *testing.T) {
	t.Parallel()

	t.Run("binds formats to named converter kinds", func(t *testing.T) {
		t.Parallel()

		reg, err := convert.ForGrammar(colorhl.Grammar{
			Formats: map[string]colorhl.Format{
				"css_rgb": {Pattern: "x", Converter: "rgb"},
				"rgba":    {Pattern: "y"},
			},
		})
		require.NoError(t, err)

		s, err := reg.FromColor(colorhl.Color{R: 1, G: 2, B: 3, A: 0xFF}, "css_rgb")
		require.NoError(t, err)
		assert.Equal(t, "rgb(1, 2, 3)", s)
		_, ok := reg.Converter("rgba")
		assert.True(t, ok)
	})

	t.Run("rejects unknown converter kinds with the setting path", func(t *testing.T) {
		t.Parallel()

		_, err := convert.ForGrammar(colorhl.Grammar{
			Formats: map[string]colorhl.Format{"lab": {Pattern: "x"}},
		})

		var cfgErr *colorhl.ConfigError
		require.ErrorAs(t, err, &cfgErr)
		assert.Equal(t, "grammar.formats.lab.converter", cfgErr.Path)
		assert.ErrorIs(t, err, colorhl.ErrUnknownFormat)
	})
}

func TestRegistry_Next(t *testing.T) {
	t.Parallel()

	reg := convert.Default()
	opaque := colorhl.Color{R: 1, A: 0xFF}
	translucent := colorhl.Color{R: 1, A: 0x80}

	tests := []struct {
		name   string
		format string
		color  colorhl.Color
		want   string
	}{
		{"hex cycles to rgb", "sharp6", opaque, "rgb"},
		{"short hex starts the cycle", "sharp3", opaque, "sharp6"},
		{"rgb cycles to hsl", "rgb", opaque, "hsl"},
		{"hsv wraps to hex", "hsv", opaque, "sharp6"},
		{"translucent colors keep alpha", "sharp8", translucent, "rgba"},
		{"translucent colors leave opaque formats", "hsl", translucent, "hsva"},
		{"named starts the cycle", "named", opaque, "sharp6"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := reg.Next(tt.format, tt.color)

			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
