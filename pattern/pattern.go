// Package pattern compiles a color grammar into one composite regular
// expression using dlclark/regexp2.
package pattern

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/dlclark/regexp2"
	"github.com/fwojciec/colorhl"
	"github.com/fwojciec/colorhl/topsort"
)

// Pattern is a compiled grammar. Offsets it reports are rune offsets.
type Pattern struct {
	re      *regexp2.Regexp
	source  string
	formats []string
	groups  []string // named groups, excluding numbered ones
}

// Compile builds the composite pattern for g.
//
// Every error is a *colorhl.ConfigError naming the offending setting.
func Compile(g colorhl.Grammar) (*Pattern, error) {
	if len(g.Formats) == 0 {
		return nil, colorhl.Errorf("grammar.formats", "%w: no formats defined", colorhl.ErrInvalidSetting)
	}

	channels, err := resolveChannels(g.Channels)
	if err != nil {
		return nil, err
	}

	order, err := orderFormats(g.Formats)
	if err != nil {
		return nil, err
	}

	parts := make([]string, 0, len(order))
	for _, name := range order {
		body, err := compileFormat(name, g.Formats[name], channels)
		if err != nil {
			return nil, err
		}
		parts = append(parts, fmt.Sprintf("(?<%s>%s)", name, body))
	}
	source := strings.Join(parts, "|")

	re, err := regexp2.Compile(source, regexp2.None)
	if err != nil {
		return nil, colorhl.Errorf("grammar", "%w: %v", colorhl.ErrInvalidSetting, err)
	}

	var names []string
	for _, n := range re.GetGroupNames() {
		if isWord(n) {
			names = append(names, n)
		}
	}

	return &Pattern{
		re:      re,
		source:  source,
		formats: order,
		groups:  names,
	}, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(g colorhl.Grammar) *Pattern {
	p, err := Compile(g)
	if err != nil {
		panic(err)
	}
	return p
}

// Formats returns format names in composite order, which is also the
// dispatch priority for conversion.
func (p *Pattern) Formats() []string {
	return slices.Clone(p.formats)
}

// String returns the composite regular expression.
func (p *Pattern) String() string {
	return p.source
}

// FindAt returns the first match in text at or after rune offset start.
// The span is relative to text. ok is false when nothing matches.
func (p *Pattern) FindAt(text []rune, start int) (span colorhl.Span, groups colorhl.Groups, ok bool, err error) {
	m, err := p.re.FindRunesMatchStartingAt(text, start)
	if err != nil || m == nil {
		return colorhl.Span{}, nil, false, err
	}
	groups = make(colorhl.Groups)
	for _, name := range p.groups {
		g := m.GroupByName(name)
		if g == nil || len(g.Captures) == 0 {
			continue
		}
		groups[name] = g.String()
	}
	return colorhl.Span{A: m.Index, B: m.Index + m.Length}, groups, true, nil
}

// resolveChannels follows alias chains and adds the built-in empty channel.
func resolveChannels(raw map[string]string) (map[string]string, error) {
	all := maps.Clone(raw)
	if all == nil {
		all = make(map[string]string)
	}
	all[colorhl.EmptyChannel] = ""

	deps := make(map[string][]string, len(all))
	for name, value := range all {
		if _, alias := all[value]; alias {
			deps[name] = []string{value}
		} else {
			deps[name] = nil
		}
	}

	order, err := topsort.Sort(deps)
	if err != nil {
		return nil, colorhl.Errorf("grammar.channels", "%w", err)
	}

	resolved := make(map[string]string, len(all))
	for _, name := range order {
		if target := deps[name]; len(target) == 1 {
			resolved[name] = resolved[target[0]]
			continue
		}
		resolved[name] = all[name]
	}
	return resolved, nil
}

func orderFormats(formats map[string]colorhl.Format) ([]string, error) {
	deps := make(map[string][]string, len(formats))
	for _, name := range slices.Sorted(maps.Keys(formats)) {
		if !isWord(name) {
			return nil, colorhl.Errorf("grammar.formats."+name, "%w: format name must be a word", colorhl.ErrInvalidSetting)
		}
		f := formats[name]
		for _, dep := range f.After {
			if _, ok := formats[dep]; !ok {
				return nil, colorhl.Errorf("grammar.formats."+name+".after", "%w: %q", colorhl.ErrUnknownFormat, dep)
			}
		}
		deps[name] = f.After
	}
	order, err := topsort.Sort(deps)
	if err != nil {
		return nil, colorhl.Errorf("grammar.formats", "%w", err)
	}
	return order, nil
}

func compileFormat(name string, f colorhl.Format, channels map[string]string) (string, error) {
	path := "grammar.formats." + name
	rw := &rewriter{
		format: name,
		bodies: make(map[string]string, len(f.Groups)),
		seen:   make(map[string]bool),
	}
	for _, group := range slices.Sorted(maps.Keys(f.Groups)) {
		names := f.Groups[group]
		if len(names) == 0 {
			return "", colorhl.Errorf(path+".groups."+group, "%w: no channels bound", colorhl.ErrInvalidSetting)
		}
		fragments := make([]string, 0, len(names))
		for _, ch := range names {
			frag, ok := channels[ch]
			if !ok {
				return "", colorhl.Errorf(path+".groups."+group, "%w: %q", colorhl.ErrUnknownChannel, ch)
			}
			fragments = append(fragments, frag)
		}
		rw.bodies[group] = alternation(fragments)
	}

	body, err := rw.rewrite(f.Pattern)
	if err != nil {
		return "", colorhl.Errorf(path+".pattern", "%w: %v", colorhl.ErrInvalidSetting, err)
	}
	for _, group := range slices.Sorted(maps.Keys(f.Groups)) {
		if !rw.seen[group] {
			return "", colorhl.Errorf(path+".groups."+group, "%w: group not in pattern", colorhl.ErrInvalidSetting)
		}
	}
	return body, nil
}
