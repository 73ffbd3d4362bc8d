package colorhl

import (
	"fmt"
	"strconv"
	"strings"
)

// Color is the canonical RGBA color carried between searching, highlighting
// and converting. Its textual form is "#RRGGBBAA".
type Color struct {
	R, G, B, A uint8
}

// White is opaque white.
var White = Color{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}

// Hex returns the canonical "#RRGGBBAA" form, uppercase.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}

// String implements fmt.Stringer.
func (c Color) String() string {
	return c.Hex()
}

// Opaque reports whether the color has full alpha.
func (c Color) Opaque() bool {
	return c.A == 0xFF
}

// RGBHex returns "#RRGGBB", dropping alpha. Useful for terminal styling.
func (c Color) RGBHex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// ParseHex parses a canonical "#RRGGBBAA" string (case-insensitive).
func ParseHex(s string) (Color, error) {
	if len(s) != 9 || s[0] != '#' {
		return Color{}, fmt.Errorf("invalid canonical color %q: want #RRGGBBAA", s)
	}
	v, err := strconv.ParseUint(strings.TrimPrefix(s, "#"), 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid canonical color %q: %w", s, err)
	}
	return Color{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, nil
}

// MarshalText implements encoding.TextMarshaler using the canonical form.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.Hex()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := ParseHex(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
