package convert

import (
	"fmt"
	"math"
	"strings"

	"github.com/fwojciec/colorhl"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// Hex converts #RGB, #RGBA, #RRGGBB and #RRGGBBAA literals. Digits selects
// the rendered form; parsing infers nibble or byte channels from length.
type Hex struct {
	Digits int
}

// ToColor implements Converter.
func (h Hex) ToColor(g colorhl.Groups) (colorhl.Color, bool) {
	r, okR := parseHexChannel(g["R"])
	gr, okG := parseHexChannel(g["G"])
	b, okB := parseHexChannel(g["B"])
	a := uint8(0xFF)
	okA := true
	if s := g["A"]; s != "" {
		a, okA = parseHexChannel(s)
	}
	if !okR || !okG || !okB || !okA {
		return colorhl.Color{}, false
	}
	return colorhl.Color{R: r, G: gr, B: b, A: a}, true
}

// FromColor implements Converter. Short forms round each channel to the
// nearest duplicated nibble; forms without alpha drop it.
func (h Hex) FromColor(c colorhl.Color) string {
	switch h.Digits {
	case 3:
		return fmt.Sprintf("#%X%X%X", nibble(c.R), nibble(c.G), nibble(c.B))
	case 4:
		return fmt.Sprintf("#%X%X%X%X", nibble(c.R), nibble(c.G), nibble(c.B), nibble(c.A))
	case 6:
		return c.RGBHex()
	default:
		return c.Hex()
	}
}

func parseHexChannel(s string) (uint8, bool) {
	if len(s) == 1 {
		return parseNibble(s)
	}
	return parseHexByte(s)
}

func nibble(v uint8) uint8 {
	return uint8((int(v) + 8) / 17)
}

// RGB converts rgb(R, G, B) and, with Alpha, rgba(R, G, B, A).
type RGB struct {
	Alpha bool
}

// ToColor implements Converter.
func (RGB) ToColor(g colorhl.Groups) (colorhl.Color, bool) {
	r, okR := parseDecimal(g["R"])
	gr, okG := parseDecimal(g["G"])
	b, okB := parseDecimal(g["B"])
	a, okA := parseAlpha(g["A"])
	if !okR || !okG || !okB || !okA {
		return colorhl.Color{}, false
	}
	return colorhl.Color{R: r, G: gr, B: b, A: a}, true
}

// FromColor implements Converter.
func (f RGB) FromColor(c colorhl.Color) string {
	if f.Alpha {
		return fmt.Sprintf("rgba(%d, %d, %d, %s)", c.R, c.G, c.B, formatAlpha(c.A))
	}
	return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
}

// HSL converts hsl(H, S%, L%) and, with Alpha, hsla(H, S%, L%, A).
type HSL struct {
	Alpha bool
}

// ToColor implements Converter.
func (HSL) ToColor(g colorhl.Groups) (colorhl.Color, bool) {
	h, okH := parseHue(g["H"])
	s, okS := parsePercent(g["S"])
	l, okL := parsePercent(g["L"])
	a, okA := parseAlpha(g["A"])
	if !okH || !okS || !okL || !okA {
		return colorhl.Color{}, false
	}
	return fromColorful(colorful.Hsl(h, s, l), a), true
}

// FromColor implements Converter.
func (f HSL) FromColor(c colorhl.Color) string {
	h, s, l := toColorful(c).Hsl()
	return hueString("hsl", f.Alpha, h, s, l, c.A)
}

// HSV converts hsv(H, S%, V%) and, with Alpha, hsva(H, S%, V%, A).
type HSV struct {
	Alpha bool
}

// ToColor implements Converter.
func (HSV) ToColor(g colorhl.Groups) (colorhl.Color, bool) {
	h, okH := parseHue(g["H"])
	s, okS := parsePercent(g["S"])
	v, okV := parsePercent(g["V"])
	a, okA := parseAlpha(g["A"])
	if !okH || !okS || !okV || !okA {
		return colorhl.Color{}, false
	}
	return fromColorful(colorful.Hsv(h, s, v), a), true
}

// FromColor implements Converter.
func (f HSV) FromColor(c colorhl.Color) string {
	h, s, v := toColorful(c).Hsv()
	return hueString("hsv", f.Alpha, h, s, v, c.A)
}

func hueString(fn string, alpha bool, h, s, x float64, a uint8) string {
	deg := roundInt(h) % 360
	if deg < 0 || math.IsNaN(h) {
		deg = 0
	}
	if alpha {
		return fmt.Sprintf("%sa(%d, %d%%, %d%%, %s)", fn, deg, roundInt(s*100), roundInt(x*100), formatAlpha(a))
	}
	return fmt.Sprintf("%s(%d, %d%%, %d%%)", fn, deg, roundInt(s*100), roundInt(x*100))
}

// Named converts SVG color keywords. Named colors are always opaque.
type Named struct{}

// ToColor implements Converter.
func (Named) ToColor(g colorhl.Groups) (colorhl.Color, bool) {
	rgba, ok := colornames.Map[strings.ToLower(g["N"])]
	if !ok {
		return colorhl.Color{}, false
	}
	return colorhl.Color{R: rgba.R, G: rgba.G, B: rgba.B, A: 0xFF}, true
}

// FromColor implements Converter. A color with no exact keyword renders as
// the perceptually nearest one, ignoring alpha.
func (Named) FromColor(c colorhl.Color) string {
	target := toColorful(c)
	best, bestDist := "", math.Inf(1)
	for _, name := range colornames.Names {
		rgba := colornames.Map[name]
		if rgba.R == c.R && rgba.G == c.G && rgba.B == c.B {
			return name
		}
		d := target.DistanceLab(colorful.Color{
			R: float64(rgba.R) / 255,
			G: float64(rgba.G) / 255,
			B: float64(rgba.B) / 255,
		})
		if d < bestDist {
			best, bestDist = name, d
		}
	}
	return best
}

func toColorful(c colorhl.Color) colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}
}

func fromColorful(c colorful.Color, a uint8) colorhl.Color {
	return colorhl.Color{R: roundByte(c.R), G: roundByte(c.G), B: roundByte(c.B), A: a}
}
