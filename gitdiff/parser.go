// Package gitdiff extracts added lines from unified diffs using
// bluekeyes/go-gitdiff.
package gitdiff

import (
	"fmt"
	"io"
	"strings"

	"github.com/bluekeyes/go-gitdiff/gitdiff"
	"github.com/fwojciec/colorhl"
)

// Compile-time interface verification.
var _ colorhl.DiffParser = (*Parser)(nil)

// Parser reads unified diff content using go-gitdiff.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// AddedLines returns the lines a diff adds, in diff order. Binary and
// deleted files are skipped.
func (p *Parser) AddedLines(r io.Reader) ([]colorhl.AddedLine, error) {
	files, _, err := gitdiff.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing diff: %w", err)
	}

	var lines []colorhl.AddedLine
	for _, f := range files {
		if f.IsBinary || f.IsDelete {
			continue
		}
		for _, frag := range f.TextFragments {
			lines = appendFragment(lines, f.NewName, frag)
		}
	}
	return lines, nil
}

func appendFragment(lines []colorhl.AddedLine, path string, frag *gitdiff.TextFragment) []colorhl.AddedLine {
	// Track line numbers in the new file
	newLineNum := int(frag.NewPosition)

	for _, l := range frag.Lines {
		switch l.Op {
		case gitdiff.OpContext:
			newLineNum++
		case gitdiff.OpAdd:
			lines = append(lines, colorhl.AddedLine{
				Path: path,
				Line: newLineNum,
				Text: strings.TrimSuffix(l.Line, "\n"),
			})
			newLineNum++
		}
	}
	return lines
}
