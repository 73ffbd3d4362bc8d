// Package git provides access to git operations via shell commands.
package git

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/fwojciec/colorhl"
)

// Compile-time interface verification.
var _ colorhl.GitRunner = (*Runner)(nil)

// Runner executes git commands via shell.
type Runner struct{}

// NewRunner creates a new git runner.
func NewRunner() *Runner {
	return &Runner{}
}

// Log returns commit hashes from the repository at repoPath, newest first,
// limited to limit commits.
func (r *Runner) Log(ctx context.Context, repoPath string, limit int) ([]string, error) {
	output, err := run(ctx, repoPath, "log", "--format=%H", fmt.Sprintf("-n%d", limit))
	if err != nil {
		return nil, err
	}

	var hashes []string
	for line := range strings.SplitSeq(strings.TrimSpace(output), "\n") {
		if line != "" {
			hashes = append(hashes, line)
		}
	}
	return hashes, nil
}

// Show returns the diff a commit introduces, without the commit header.
func (r *Runner) Show(ctx context.Context, repoPath string, hash string) (string, error) {
	return run(ctx, repoPath, "show", "--format=", hash)
}

func run(ctx context.Context, repoPath, sub string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", append([]string{"-C", repoPath, sub}, args...)...)
	output, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", fmt.Errorf("git %s failed: %s", sub, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return "", fmt.Errorf("git %s failed: %w", sub, err)
	}
	return string(output), nil
}
