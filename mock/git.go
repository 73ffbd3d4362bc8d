package mock

import (
	"context"
	"io"

	"github.com/fwojciec/colorhl"
)

// Compile-time interface verification.
var (
	_ colorhl.GitRunner  = (*GitRunner)(nil)
	_ colorhl.DiffParser = (*DiffParser)(nil)
)

// GitRunner is a mock implementation of colorhl.GitRunner.
type GitRunner struct {
	LogFn  func(ctx context.Context, repoPath string, limit int) ([]string, error)
	ShowFn func(ctx context.Context, repoPath string, hash string) (string, error)
}

func (g *GitRunner) Log(ctx context.Context, repoPath string, limit int) ([]string, error) {
	return g.LogFn(ctx, repoPath, limit)
}

func (g *GitRunner) Show(ctx context.Context, repoPath string, hash string) (string, error) {
	return g.ShowFn(ctx, repoPath, hash)
}

// DiffParser is a mock implementation of colorhl.DiffParser.
type DiffParser struct {
	AddedLinesFn func(r io.Reader) ([]colorhl.AddedLine, error)
}

func (p *DiffParser) AddedLines(r io.Reader) ([]colorhl.AddedLine, error) {
	return p.AddedLinesFn(r)
}
