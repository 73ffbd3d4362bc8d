package colorhl

import "slices"

// Span is a half-open range [A, B) of character offsets with A <= B.
type Span struct {
	A int `json:"a"`
	B int `json:"b"`
}

// NewSpan returns the span between two offsets given in either order.
func NewSpan(a, b int) Span {
	if b < a {
		a, b = b, a
	}
	return Span{A: a, B: b}
}

// Point returns the zero-length span at offset p.
func Point(p int) Span {
	return Span{A: p, B: p}
}

// Normalize returns s with its endpoints ordered. Host selections can be
// inverted when made backwards.
func (s Span) Normalize() Span {
	return NewSpan(s.A, s.B)
}

// Len returns the number of characters covered.
func (s Span) Len() int {
	return s.B - s.A
}

// Empty reports whether s has zero length.
func (s Span) Empty() bool {
	return s.A == s.B
}

// Contains reports whether p lies in s, endpoints included.
func (s Span) Contains(p int) bool {
	return s.A <= p && p <= s.B
}

// Intersects reports whether s and o overlap.
//
// Non-empty spans intersect only when they share at least one character,
// so [4,7) and [7,9) do not. A zero-length span intersects any span that
// contains its point, endpoints included, so [7,7) intersects [4,7).
func (s Span) Intersects(o Span) bool {
	if s.Empty() {
		return o.Contains(s.A)
	}
	if o.Empty() {
		return s.Contains(o.A)
	}
	return s.A < o.B && o.A < s.B
}

// IntersectsAny reports whether s intersects any of spans.
func IntersectsAny(s Span, spans []Span) bool {
	for _, o := range spans {
		if s.Intersects(o) {
			return true
		}
	}
	return false
}

// Deduplicate returns spans with duplicates removed, sorted by position.
func Deduplicate(spans []Span) []Span {
	out := slices.Clone(spans)
	slices.SortFunc(out, Compare)
	return slices.Compact(out)
}

// Compare orders spans by start, then by end.
func Compare(a, b Span) int {
	if a.A != b.A {
		return a.A - b.A
	}
	return a.B - b.B
}
