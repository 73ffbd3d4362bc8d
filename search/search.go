// Package search finds color literals in text and converts them to
// canonical colors.
package search

import (
	"iter"

	"github.com/fwojciec/colorhl"
	"github.com/fwojciec/colorhl/convert"
	"github.com/fwojciec/colorhl/pattern"
)

// Searcher pairs a compiled pattern with the registry that converts its
// matches.
type Searcher struct {
	pattern  *pattern.Pattern
	registry *convert.Registry
	priority []string
}

// NewSearcher returns a Searcher. Conversion tries formats in the pattern's
// composite order.
func NewSearcher(p *pattern.Pattern, r *convert.Registry) *Searcher {
	return &Searcher{
		pattern:  p,
		registry: r,
		priority: p.Formats(),
	}
}

// Compile builds a Searcher for g.
func Compile(g colorhl.Grammar) (*Searcher, error) {
	p, err := pattern.Compile(g)
	if err != nil {
		return nil, err
	}
	r, err := convert.ForGrammar(g)
	if err != nil {
		return nil, err
	}
	return NewSearcher(p, r), nil
}

// Registry returns the registry used for conversion.
func (s *Searcher) Registry() *convert.Registry {
	return s.registry
}

// Search yields the color literals in text, which is the content of within.
// Spans are absolute: offset by within.A.
//
// Matches never overlap. Literals whose values are out of range are
// skipped, and scanning resumes after them.
func (s *Searcher) Search(text string, within colorhl.Span) iter.Seq[colorhl.Match] {
	base := within.Normalize().A
	return func(yield func(colorhl.Match) bool) {
		runes := []rune(text)
		for pos := 0; pos <= len(runes); {
			span, groups, ok, err := s.pattern.FindAt(runes, pos)
			if err != nil || !ok {
				return
			}
			pos = span.B
			if span.Empty() {
				pos++
			}
			c, format, ok := s.registry.ToColor(s.priority, groups)
			if !ok {
				continue
			}
			m := colorhl.Match{
				Span:   colorhl.Span{A: base + span.A, B: base + span.B},
				Color:  c,
				Format: format,
				Groups: groups,
			}
			if !yield(m) {
				return
			}
		}
	}
}

// InView searches the text of v covered by within.
func (s *Searcher) InView(v colorhl.View, within colorhl.Span) iter.Seq[colorhl.Match] {
	within = within.Normalize()
	return s.Search(v.Substr(within), within)
}

// At returns the literal containing point, if any.
func (s *Searcher) At(text string, within colorhl.Span, point int) (colorhl.Match, bool) {
	for m := range s.Search(text, within) {
		if m.Span.A > point {
			break
		}
		if m.Span.Contains(point) {
			return m, true
		}
	}
	return colorhl.Match{}, false
}
