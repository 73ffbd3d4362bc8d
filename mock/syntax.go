package mock

import "github.com/fwojciec/colorhl"

// Compile-time interface verification.
var (
	_ colorhl.LanguageDetector = (*LanguageDetector)(nil)
	_ colorhl.Tokenizer        = (*Tokenizer)(nil)
)

// LanguageDetector is a mock implementation of colorhl.LanguageDetector.
type LanguageDetector struct {
	DetectFromPathFn func(path string) string
}

func (d *LanguageDetector) DetectFromPath(path string) string {
	return d.DetectFromPathFn(path)
}

// Tokenizer is a mock implementation of colorhl.Tokenizer.
type Tokenizer struct {
	TokenizeLinesFn func(language, source string) [][]colorhl.Token
}

func (t *Tokenizer) TokenizeLines(language, source string) [][]colorhl.Token {
	return t.TokenizeLinesFn(language, source)
}
