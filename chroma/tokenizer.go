// Package chroma provides language detection and syntax tokens using the
// chroma library.
package chroma

import (
	"errors"
	"strings"

	chromalib "github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/fwojciec/colorhl"
)

// Compile-time interface verification.
var _ colorhl.Tokenizer = (*Tokenizer)(nil)

// Tokenizer extracts syntax tokens using chroma.
type Tokenizer struct {
	styleFunc StyleFunc
}

// NewTokenizer creates a tokenizer styling tokens with styleFunc.
// Use StyleFromPalette to build one from a theme palette.
func NewTokenizer(styleFunc StyleFunc) (*Tokenizer, error) {
	if styleFunc == nil {
		return nil, errors.New("chroma: styleFunc cannot be nil")
	}
	return &Tokenizer{styleFunc: styleFunc}, nil
}

// TokenizeLines tokenizes source as a whole, so multi-line constructs
// such as block comments keep their style, then splits the tokens by line.
// It returns nil for unsupported languages.
func (t *Tokenizer) TokenizeLines(language, source string) [][]colorhl.Token {
	if source == "" {
		return [][]colorhl.Token{}
	}

	lexer := lexers.Get(language)
	if lexer == nil {
		return nil
	}
	iterator, err := chromalib.Coalesce(lexer).Tokenise(nil, source)
	if err != nil {
		return nil
	}

	lines := [][]colorhl.Token{nil}
	for tok := iterator(); tok != chromalib.EOF; tok = iterator() {
		style := t.styleFunc(tok.Type)
		for i, part := range strings.Split(tok.Value, "\n") {
			if i > 0 {
				lines = append(lines, nil)
			}
			if part != "" {
				last := len(lines) - 1
				lines[last] = append(lines[last], colorhl.Token{Text: part, Style: style})
			}
		}
	}
	// Some lexers append a newline; a trailing newline does not start a line.
	want := strings.Count(source, "\n") + 1
	if strings.HasSuffix(source, "\n") {
		want--
	}
	if len(lines) > want {
		lines = lines[:want]
	}
	return lines
}
