package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/fwojciec/colorhl"
	"github.com/fwojciec/colorhl/buffer"
	"github.com/fwojciec/colorhl/chroma"
	"github.com/fwojciec/colorhl/search"
	"golang.org/x/sync/errgroup"
)

// DefaultWorkers is the default number of files or commits scanned at once.
const DefaultWorkers = 4

// Scanner turns files, diffs and commits into records.
type Scanner struct {
	Searcher *search.Searcher
	Filter   *chroma.Filter // Nil scans every file
	Git      colorhl.GitRunner
	Parser   colorhl.DiffParser
	Logger   *slog.Logger
	// Workers sets the number of parallel workers. If <= 1, runs sequentially.
	Workers int
}

// ScanText returns the literals of text, one record per literal, with spans
// relative to their line.
func (s *Scanner) ScanText(path, text string) []colorhl.Record {
	buf := buffer.New(text)
	var records []colorhl.Record
	for i := range buf.LineCount() {
		line := buf.Line(i)
		records = append(records, s.scanLine(path, i+1, buf.Substr(line))...)
	}
	return records
}

func (s *Scanner) scanLine(path string, lineNum int, text string) []colorhl.Record {
	var records []colorhl.Record
	runes := []rune(text)
	for m := range s.Searcher.Search(text, colorhl.Span{A: 0, B: len(runes)}) {
		records = append(records, colorhl.Record{
			Path:   path,
			Line:   lineNum,
			Span:   m.Span,
			Color:  m.Color,
			Format: m.Format,
			Text:   string(runes[m.Span.A:m.Span.B]),
		})
	}
	return records
}

func (s *Scanner) allowed(path string) bool {
	if s.Filter == nil || s.Filter.Allowed(path) {
		return true
	}
	s.logger().Debug("skipping file", "path", path)
	return false
}

func (s *Scanner) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return s.Logger
}

// ScanFiles scans the files at paths, keeping their order in the result.
func (s *Scanner) ScanFiles(ctx context.Context, paths []string) ([]colorhl.Record, error) {
	results := make([][]colorhl.Record, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, s.Workers))
	for i, path := range paths {
		if !s.allowed(path) {
			continue
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			results[i] = s.ScanText(path, string(data))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return flatten(results), nil
}

// ScanDiff scans the lines a unified diff adds.
func (s *Scanner) ScanDiff(r io.Reader) ([]colorhl.Record, error) {
	lines, err := s.Parser.AddedLines(r)
	if err != nil {
		return nil, err
	}
	var records []colorhl.Record
	for _, l := range lines {
		if !s.allowed(l.Path) {
			continue
		}
		records = append(records, s.scanLine(l.Path, l.Line, l.Text)...)
	}
	return records, nil
}

// ScanCommit scans the lines commit hash adds.
func (s *Scanner) ScanCommit(ctx context.Context, repoPath, hash string) ([]colorhl.Record, error) {
	diff, err := s.Git.Show(ctx, repoPath, hash)
	if err != nil {
		return nil, err
	}
	records, err := s.ScanDiff(strings.NewReader(diff))
	if err != nil {
		return nil, fmt.Errorf("commit %s: %w", hash, err)
	}
	for i := range records {
		records[i].Commit = hash
	}
	return records, nil
}

// ScanHistory scans the latest limit commits, newest first.
func (s *Scanner) ScanHistory(ctx context.Context, repoPath string, limit int) ([]colorhl.Record, error) {
	hashes, err := s.Git.Log(ctx, repoPath, limit)
	if err != nil {
		return nil, err
	}
	results := make([][]colorhl.Record, len(hashes))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, s.Workers))
	for i, hash := range hashes {
		g.Go(func() error {
			records, err := s.ScanCommit(ctx, repoPath, hash)
			if err != nil {
				return err
			}
			results[i] = records
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return flatten(results), nil
}

func flatten(results [][]colorhl.Record) []colorhl.Record {
	var out []colorhl.Record
	for _, r := range results {
		out = append(out, r...)
	}
	return out
}
