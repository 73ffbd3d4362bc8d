// Package lipgloss renders color highlights, gutter markers and annotations
// for terminals using the Lipgloss styling library.
package lipgloss

import "github.com/fwojciec/colorhl"

// Compile-time interface verification.
var _ colorhl.Theme = (*Theme)(nil)

// Theme holds the palette of the viewer.
type Theme struct {
	palette colorhl.Palette
}

// Palette returns the theme colors.
func (t *Theme) Palette() colorhl.Palette {
	return t.palette
}

// DefaultTheme returns the dark theme.
func DefaultTheme() *Theme {
	return DarkTheme()
}

// DarkTheme returns a theme for dark terminal backgrounds (Catppuccin Mocha).
func DarkTheme() *Theme {
	return &Theme{
		palette: colorhl.Palette{
			Background: "#1e1e2e",
			Foreground: "#cdd6f4",

			Keyword:     "#cba6f7",
			String:      "#a6e3a1",
			Number:      "#fab387",
			Comment:     "#6c7086",
			Operator:    "#89dceb",
			Function:    "#89b4fa",
			Type:        "#f9e2af",
			Constant:    "#fab387",
			Punctuation: "#9399b2",

			UIBackground: "#313244",
			UIForeground: "#a6adc8",
			UIAccent:     "#89b4fa",
			Cursor:       "#f5e0dc",
		},
	}
}

// LightTheme returns a theme for light terminal backgrounds (Catppuccin Latte).
func LightTheme() *Theme {
	return &Theme{
		palette: colorhl.Palette{
			Background: "#eff1f5",
			Foreground: "#4c4f69",

			Keyword:     "#8839ef",
			String:      "#40a02b",
			Number:      "#fe640b",
			Comment:     "#9ca0b0",
			Operator:    "#04a5e5",
			Function:    "#1e66f5",
			Type:        "#df8e1d",
			Constant:    "#fe640b",
			Punctuation: "#6c6f85",

			UIBackground: "#e6e9ef",
			UIForeground: "#6c6f85",
			UIAccent:     "#1e66f5",
			Cursor:       "#dc8a78",
		},
	}
}

// ThemeByName returns "dark" or "light"; anything else is the default.
func ThemeByName(name string) *Theme {
	if name == "light" {
		return LightTheme()
	}
	return DefaultTheme()
}
