// Package convert translates between color literal captures and the
// canonical colorhl.Color.
package convert

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/fwojciec/colorhl"
)

// Converter parses the captures of one format and renders colors back in
// that format.
//
// ToColor receives groups with the format prefix stripped ("R", "G", ...).
// A capture that matches the pattern but is out of range returns false;
// that is a soft rejection, not an error.
type Converter interface {
	ToColor(g colorhl.Groups) (colorhl.Color, bool)
	FromColor(c colorhl.Color) string
}

// Kinds returns the built-in converter kinds by name.
func Kinds() map[string]Converter {
	return map[string]Converter{
		"sharp8": Hex{Digits: 8},
		"sharp6": Hex{Digits: 6},
		"sharp4": Hex{Digits: 4},
		"sharp3": Hex{Digits: 3},
		"rgb":    RGB{},
		"rgba":   RGB{Alpha: true},
		"hsl":    HSL{},
		"hsla":   HSL{Alpha: true},
		"hsv":    HSV{},
		"hsva":   HSV{Alpha: true},
		"named":  Named{},
	}
}

// families lists the formats visited when cycling a literal's format, as
// (opaque, translucent) pairs.
var families = [][2]string{
	{"sharp6", "sharp8"},
	{"rgb", "rgba"},
	{"hsl", "hsla"},
	{"hsv", "hsva"},
}

// Registry maps format names to converters.
type Registry struct {
	formats map[string]Converter
	kinds   map[string]string // format name -> kind name
}

// Default returns a registry with one format per built-in kind, each named
// after its kind. It matches pattern.DefaultGrammar.
func Default() *Registry {
	kinds := Kinds()
	r := &Registry{
		formats: kinds,
		kinds:   make(map[string]string, len(kinds)),
	}
	for name := range kinds {
		r.kinds[name] = name
	}
	return r
}

// ForGrammar builds a registry for the formats of g. Each format uses the
// converter kind it names, or the kind with its own name.
func ForGrammar(g colorhl.Grammar) (*Registry, error) {
	kinds := Kinds()
	r := &Registry{
		formats: make(map[string]Converter, len(g.Formats)),
		kinds:   make(map[string]string, len(g.Formats)),
	}
	for _, name := range slices.Sorted(maps.Keys(g.Formats)) {
		kind := g.Formats[name].ConverterName(name)
		conv, ok := kinds[kind]
		if !ok {
			return nil, colorhl.Errorf("grammar.formats."+name+".converter", "%w: no converter %q", colorhl.ErrUnknownFormat, kind)
		}
		r.formats[name] = conv
		r.kinds[name] = kind
	}
	return r, nil
}

// Converter returns the converter registered for a format.
func (r *Registry) Converter(format string) (Converter, bool) {
	c, ok := r.formats[format]
	return c, ok
}

// ToColor dispatches groups to the first format in priority whose
// top-level group participated in the match. It reports the format name.
//
// A match always comes from exactly one format of the pattern, so finding
// none means the registry and pattern disagree. ToColor panics in that case.
func (r *Registry) ToColor(priority []string, groups colorhl.Groups) (colorhl.Color, string, bool) {
	for _, name := range priority {
		if _, ok := groups[name]; !ok {
			continue
		}
		conv, ok := r.formats[name]
		if !ok {
			panic(fmt.Sprintf("convert: format %q matched but has no converter", name))
		}
		c, ok := conv.ToColor(strip(groups, name+"_"))
		return c, name, ok
	}
	panic(fmt.Sprintf("convert: no format of %v participated in match", priority))
}

// FromColor renders c in the named format.
func (r *Registry) FromColor(c colorhl.Color, format string) (string, error) {
	conv, ok := r.formats[format]
	if !ok {
		return "", fmt.Errorf("%w: %q", colorhl.ErrUnknownFormat, format)
	}
	return conv.FromColor(c), nil
}

// Next returns the format a literal of c in format should cycle to: the
// next family among hex, rgb, hsl and hsv, choosing the translucent member
// only when c is not opaque. Formats outside those families start the cycle.
// Families with no registered format are skipped. ok is false when the
// registry holds no cyclable format.
func (r *Registry) Next(format string, c colorhl.Color) (string, bool) {
	cur := -1
	if kind, ok := r.kinds[format]; ok {
		cur = slices.IndexFunc(families, func(f [2]string) bool {
			return f[0] == kind || f[1] == kind
		})
	}
	for step := 1; step <= len(families); step++ {
		i := (cur + step + len(families)) % len(families)
		kind := families[i][0]
		if c.A != 0xFF {
			kind = families[i][1]
		}
		if name, ok := r.formatOfKind(kind); ok {
			return name, true
		}
	}
	return "", false
}

// formatOfKind prefers the format named after the kind.
func (r *Registry) formatOfKind(kind string) (string, bool) {
	if r.kinds[kind] == kind {
		return kind, true
	}
	for _, name := range slices.Sorted(maps.Keys(r.kinds)) {
		if r.kinds[name] == kind {
			return name, true
		}
	}
	return "", false
}

func strip(groups colorhl.Groups, prefix string) colorhl.Groups {
	out := make(colorhl.Groups, len(groups))
	for k, v := range groups {
		if rest, ok := strings.CutPrefix(k, prefix); ok {
			out[rest] = v
		}
	}
	return out
}
