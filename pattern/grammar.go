package pattern

import (
	"cmp"
	"slices"
	"strings"

	"github.com/fwojciec/colorhl"
	"golang.org/x/image/colornames"
)

// Delimiters keep literals from matching inside identifiers, hex runs and
// entity references.
const (
	hexStart  = `(?<![\w&#])#`
	hexEnd    = `(?![0-9a-zA-Z_])`
	wordStart = `(?<![\w#-])`
	wordEnd   = `(?![\w-])`
	sep       = `\s*,\s*`
)

// DefaultGrammar returns the built-in grammar: hex in 8, 6, 4 and 3 digit
// forms, rgb/rgba, hsl/hsla, hsv/hsva and SVG color names.
func DefaultGrammar() colorhl.Grammar {
	return colorhl.Grammar{
		Channels: map[string]string{
			"hex":     `[0-9a-fA-F]`,
			"hex2":    `[0-9a-fA-F]{2}`,
			"decimal": `[0-9]{1,3}`,
			"float":   `[0-9]*\.?[0-9]+`,
			"alpha":   "float",
			"percent": `[0-9]{1,3}%|0`,
			"degrees": `[0-9]{1,3}`,
			"names":   namesFragment(),
		},
		Formats: map[string]colorhl.Format{
			"sharp8": {
				Pattern:     hexStart + `(?<R>)(?<G>)(?<B>)(?<A>)` + hexEnd,
				Groups:      groups("hex2", "R", "G", "B", "A"),
				White:       "#FFFFFFFF",
				Description: "hex with alpha, #RRGGBBAA",
			},
			"sharp6": {
				Pattern:     hexStart + `(?<R>)(?<G>)(?<B>)(?<A>)` + hexEnd,
				Groups:      withAlpha(groups("hex2", "R", "G", "B"), colorhl.EmptyChannel),
				After:       []string{"sharp8"},
				White:       "#FFFFFF",
				Description: "hex, #RRGGBB",
			},
			"sharp4": {
				Pattern:     hexStart + `(?<R>)(?<G>)(?<B>)(?<A>)` + hexEnd,
				Groups:      groups("hex", "R", "G", "B", "A"),
				After:       []string{"sharp6"},
				White:       "#FFFF",
				Description: "short hex with alpha, #RGBA",
			},
			"sharp3": {
				Pattern:     hexStart + `(?<R>)(?<G>)(?<B>)(?<A>)` + hexEnd,
				Groups:      withAlpha(groups("hex", "R", "G", "B"), colorhl.EmptyChannel),
				After:       []string{"sharp4"},
				White:       "#FFF",
				Description: "short hex, #RGB",
			},
			"rgba": {
				Pattern:     `\brgba\(\s*(?<R>)` + sep + `(?<G>)` + sep + `(?<B>)` + sep + `(?<A>)\s*\)`,
				Groups:      withAlpha(groups("decimal", "R", "G", "B"), "alpha"),
				White:       "rgba(255, 255, 255, 1)",
				Description: "decimal channels with alpha",
			},
			"rgb": {
				Pattern:     `\brgb\(\s*(?<R>)` + sep + `(?<G>)` + sep + `(?<B>)\s*\)(?<A>)`,
				Groups:      withAlpha(groups("decimal", "R", "G", "B"), colorhl.EmptyChannel),
				After:       []string{"rgba"},
				White:       "rgb(255, 255, 255)",
				Description: "decimal channels",
			},
			"hsla": {
				Pattern:     `\bhsla\(\s*(?<H>)` + sep + `(?<S>)` + sep + `(?<L>)` + sep + `(?<A>)\s*\)`,
				Groups:      hueGroups("L", "alpha"),
				White:       "hsla(0, 0%, 100%, 1)",
				Description: "hue, saturation, lightness with alpha",
			},
			"hsl": {
				Pattern:     `\bhsl\(\s*(?<H>)` + sep + `(?<S>)` + sep + `(?<L>)\s*\)(?<A>)`,
				Groups:      hueGroups("L", colorhl.EmptyChannel),
				After:       []string{"hsla"},
				White:       "hsl(0, 0%, 100%)",
				Description: "hue, saturation, lightness",
			},
			"hsva": {
				Pattern:     `\bhsva\(\s*(?<H>)` + sep + `(?<S>)` + sep + `(?<V>)` + sep + `(?<A>)\s*\)`,
				Groups:      hueGroups("V", "alpha"),
				White:       "hsva(0, 0%, 100%, 1)",
				Description: "hue, saturation, value with alpha",
			},
			"hsv": {
				Pattern:     `\bhsv\(\s*(?<H>)` + sep + `(?<S>)` + sep + `(?<V>)\s*\)(?<A>)`,
				Groups:      hueGroups("V", colorhl.EmptyChannel),
				After:       []string{"hsva"},
				White:       "hsv(0, 0%, 100%)",
				Description: "hue, saturation, value",
			},
			"named": {
				Pattern:     wordStart + `(?<N>)` + wordEnd,
				Groups:      map[string][]string{"N": {"names"}},
				After:       []string{"sharp3", "rgb", "hsl", "hsv"},
				White:       "white",
				Description: "SVG color keyword",
			},
		},
	}
}

func groups(channel string, names ...string) map[string][]string {
	m := make(map[string][]string, len(names)+1)
	for _, n := range names {
		m[n] = []string{channel}
	}
	return m
}

func withAlpha(m map[string][]string, channel string) map[string][]string {
	m["A"] = []string{channel}
	return m
}

func hueGroups(third, alpha string) map[string][]string {
	return map[string][]string{
		"H":   {"degrees"},
		"S":   {"percent"},
		third: {"percent"},
		"A":   {alpha},
	}
}

// namesFragment alternates every color name, longest first so a name never
// loses to one of its prefixes. Keywords match in any case.
func namesFragment() string {
	names := slices.Clone(colornames.Names)
	slices.SortStableFunc(names, func(a, b string) int {
		return cmp.Compare(len(b), len(a))
	})
	return "(?i:" + strings.Join(names, "|") + ")"
}
