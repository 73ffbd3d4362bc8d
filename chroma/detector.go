package chroma

import (
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/fwojciec/colorhl"
)

// Compile-time interface verification.
var _ colorhl.LanguageDetector = (*Detector)(nil)

// Detector detects languages from file paths using chroma lexers.
type Detector struct{}

// NewDetector creates a new chroma-based language detector.
func NewDetector() *Detector {
	return &Detector{}
}

// DetectFromPath returns the lexer name for path, or "" when no lexer
// matches. The "a/" and "b/" prefixes of diff paths are ignored.
func (d *Detector) DetectFromPath(path string) string {
	path = strings.TrimPrefix(path, "a/")
	path = strings.TrimPrefix(path, "b/")

	lexer := lexers.Match(filepath.Base(path))
	if lexer == nil {
		return ""
	}
	return lexer.Config().Name
}

// Filter restricts highlighting to an allowlist of languages.
type Filter struct {
	detector colorhl.LanguageDetector
	allowed  map[string]bool
}

// NewFilter returns a filter allowing languages, given as lexer names or
// aliases ("css", "SCSS", "golang"). An empty list allows every file.
func NewFilter(d colorhl.LanguageDetector, languages []string) *Filter {
	f := &Filter{detector: d}
	if len(languages) == 0 {
		return f
	}
	f.allowed = make(map[string]bool, len(languages))
	for _, lang := range languages {
		f.allowed[canonical(lang)] = true
	}
	return f
}

// Allowed reports whether files at path should be highlighted.
func (f *Filter) Allowed(path string) bool {
	if f.allowed == nil {
		return true
	}
	lang := f.detector.DetectFromPath(path)
	return lang != "" && f.allowed[canonical(lang)]
}

// Language returns the detected language of path.
func (f *Filter) Language(path string) string {
	return f.detector.DetectFromPath(path)
}

func canonical(lang string) string {
	if lexer := lexers.Get(lang); lexer != nil {
		return strings.ToLower(lexer.Config().Name)
	}
	return strings.ToLower(lang)
}
