package colorhl

// LanguageDetector names the language of a file from its path.
type LanguageDetector interface {
	// DetectFromPath returns the language name, or "" when unknown.
	DetectFromPath(path string) string
}

// Tokenizer splits source into styled syntax tokens.
type Tokenizer interface {
	// TokenizeLines returns one token slice per line, or nil when the
	// language is unsupported.
	TokenizeLines(language, source string) [][]Token
}

// Token is a run of source text sharing one syntax style.
type Token struct {
	Text  string
	Style Style
}

// Style is a syntax style. Colors are "#RRGGBB" strings; empty means the
// terminal default.
type Style struct {
	Foreground string
	Bold       bool
}

// Palette holds the colors of a viewer theme.
type Palette struct {
	Background string
	Foreground string

	// Syntax
	Keyword     string
	String      string
	Number      string
	Comment     string
	Operator    string
	Function    string
	Type        string
	Constant    string
	Punctuation string

	// UI
	UIBackground string
	UIForeground string
	UIAccent     string
	Cursor       string
}

// Theme provides the palette of a viewer.
type Theme interface {
	Palette() Palette
}
