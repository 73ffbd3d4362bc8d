// Package colorhl provides domain types for finding color literals in text
// and keeping a rendered set of color highlights in sync with it.
package colorhl

import (
	"context"
	"io"
)

// Groups holds the named capture groups that participated in a match,
// keyed by their full name ("rgba", "rgba_R", ...).
type Groups map[string]string

// Match is a single color literal found by a search pass.
type Match struct {
	Span   Span   // Absolute span of the literal
	Color  Color  // Canonical color
	Format string // Name of the format that matched (e.g. "rgba")
	Groups Groups // Raw captures, kept for callers that need the original text
}

// Region pairs a span with the color it should be rendered in.
type Region struct {
	Span  Span
	Color Color
}

// View is the host's text surface: content access plus selection state.
// All offsets are character (rune) offsets.
type View interface {
	// Len returns the number of characters in the buffer.
	Len() int
	// Substr returns the text covered by s.
	Substr(s Span) string
	// Lines returns the full-line spans covering s, in buffer order.
	Lines(s Span) []Span
	// Selection returns the current selections as raw ranges.
	// A range may be inverted when the selection was made backwards.
	Selection() []Span
}

// Highlighter is a rendering strategy for color regions.
//
// Each reconciliation pass calls NewBatch once and threads the returned
// Batch through every Highlight and Unhighlight call, finishing with Done.
// Implementations may defer visual updates until Done.
type Highlighter interface {
	NewBatch() Batch
}

// Batch is the per-pass context of a Highlighter.
type Batch interface {
	Highlight(r Region)
	Unhighlight(r Region)
	Done()
}

// Clipboard provides copy-to-clipboard functionality.
type Clipboard interface {
	Copy(content string) error
}

// AddedLine is a line a diff adds to a file.
type AddedLine struct {
	Path string // New path of the file
	Line int    // 1-based line number in the new file
	Text string // Content without the line terminator
}

// DiffParser extracts added lines from unified diff content.
type DiffParser interface {
	AddedLines(r io.Reader) ([]AddedLine, error)
}

// GitRunner provides access to git history.
type GitRunner interface {
	Log(ctx context.Context, repoPath string, limit int) ([]string, error)
	Show(ctx context.Context, repoPath string, hash string) (string, error)
}

// Record is an exported match: where a color literal was found and what it
// means.
type Record struct {
	Commit string `json:"commit,omitempty"` // Set when scanned from git history
	Path   string `json:"path,omitempty"`
	Line   int    `json:"line,omitempty"` // 1-based; 0 when unknown
	Span   Span   `json:"span"`           // Character offsets within Line, or within the text when Line is 0
	Color  Color  `json:"color"`
	Format string `json:"format"`
	Text   string `json:"text"`
	Icon   string `json:"icon,omitempty"` // Gutter icon file, when generated
}

// RecordLoader reads exported matches.
type RecordLoader interface {
	Load(path string) ([]Record, error)
}

// RecordSaver appends exported matches.
type RecordSaver interface {
	Save(path string, records ...Record) error
}

// Document is a named text opened for viewing.
type Document struct {
	Path string // Used for language detection; may be empty
	Text string
}

// Viewer displays a document and blocks until the user exits.
type Viewer interface {
	View(ctx context.Context, doc Document) error
}
