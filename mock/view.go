package mock

import "github.com/fwojciec/colorhl"

// Compile-time interface verification.
var _ colorhl.View = (*View)(nil)

// View is a mock implementation of colorhl.View.
type View struct {
	LenFn       func() int
	SubstrFn    func(s colorhl.Span) string
	LinesFn     func(s colorhl.Span) []colorhl.Span
	SelectionFn func() []colorhl.Span
}

func (v *View) Len() int {
	return v.LenFn()
}

func (v *View) Substr(s colorhl.Span) string {
	return v.SubstrFn(s)
}

func (v *View) Lines(s colorhl.Span) []colorhl.Span {
	return v.LinesFn(s)
}

func (v *View) Selection() []colorhl.Span {
	return v.SelectionFn()
}
