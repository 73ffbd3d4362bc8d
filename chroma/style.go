package chroma

import (
	chromalib "github.com/alecthomas/chroma/v2"
	"github.com/fwojciec/colorhl"
)

// StyleFunc maps chroma token types to syntax styles.
type StyleFunc func(chromalib.TokenType) colorhl.Style

// StyleFromPalette maps token categories to palette colors. Keywords and
// type keywords are bold.
func StyleFromPalette(p colorhl.Palette) StyleFunc {
	return func(tt chromalib.TokenType) colorhl.Style {
		switch {
		case tt == chromalib.KeywordType:
			return colorhl.Style{Foreground: p.Type, Bold: true}
		case tt.InCategory(chromalib.Keyword):
			return colorhl.Style{Foreground: p.Keyword, Bold: true}
		case tt.InCategory(chromalib.Comment):
			return colorhl.Style{Foreground: p.Comment}
		case tt.InSubCategory(chromalib.LiteralString):
			return colorhl.Style{Foreground: p.String}
		case tt.InSubCategory(chromalib.LiteralNumber):
			return colorhl.Style{Foreground: p.Number}
		case tt.InCategory(chromalib.Operator):
			return colorhl.Style{Foreground: p.Operator}
		case tt == chromalib.NameFunction, tt == chromalib.NameFunctionMagic:
			return colorhl.Style{Foreground: p.Function}
		case tt == chromalib.NameConstant, tt == chromalib.NameBuiltin:
			return colorhl.Style{Foreground: p.Constant}
		case tt.InCategory(chromalib.Punctuation):
			return colorhl.Style{Foreground: p.Punctuation}
		}
		return colorhl.Style{}
	}
}
