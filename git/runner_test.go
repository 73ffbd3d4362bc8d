package git_test

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fwojciec/colorhl/git"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestRepo creates a temporary git repository with a known history for testing.
func setupTestRepo(t *testing.T) string {
	t.Helper()

	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}

	dir := t.TempDir()

	// Initialize repo with "main" as default branch
	runGit(t, dir, "init", "-b", "main")
	runGit(t, dir, "config", "user.email", "test@example.com")
	runGit(t, dir, "config", "user.name", "Test User")

	// Create initial commit on main
	writeFile(t, dir, "theme.css", "body { color: black; }\n")
	runGit(t, dir, "add", ".")
	runGit(t, dir, "commit", "-m", "Initial commit")

	return dir
}

// runGit executes a git command in the given directory.
func runGit(t *testing.T, dir string, args ...string) string {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "command git %v failed: %s", args, string(output))
	return string(output)
}

// writeFile creates a file with the given content.
func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	err := os.WriteFile(path, []byte(content), 0644)
	require.NoError(t, err)
}

func TestRunner_Log(t *testing.T) {
	t.Parallel()

	t.Run("returns commits newest first", func(t *testing.T) {
		t.Parallel()
		dir := setupTestRepo(t)
		writeFile(t, dir, "theme.css", "body { color: #336699; }\n")
		runGit(t, dir, "commit", "-am", "Recolor body")
		head := strings.TrimSpace(runGit(t, dir, "rev-parse", "HEAD"))

		runner := git.NewRunner()

		hashes, err := runner.Log(context.Background(), dir, 10)

		require.NoError(t, err)
		require.Len(t, hashes, 2)
		assert.Equal(t, head, hashes[0])
	})

	t.Run("respects limit", func(t *testing.T) {
		t.Parallel()
		dir := setupTestRepo(t)
		for _, c := range []string{"red", "green", "blue"} {
			writeFile(t, dir, "theme.css", "body { color: "+c+"; }\n")
			runGit(t, dir, "commit", "-am", "Use "+c)
		}

		runner := git.NewRunner()

		hashes, err := runner.Log(context.Background(), dir, 2)

		require.NoError(t, err)
		assert.Len(t, hashes, 2)
	})

	t.Run("returns error for invalid repo", func(t *testing.T) {
		t.Parallel()
		if _, err := exec.LookPath("git"); err != nil {
			t.Skip("git not available")
		}

		runner := git.NewRunner()

		_, err := runner.Log(context.Background(), t.TempDir(), 10)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "git log failed")
	})
}

func TestRunner_Show(t *testing.T) {
	t.Parallel()

	t.Run("returns the diff of a commit", func(t *testing.T) {
		t.Parallel()
		dir := setupTestRepo(t)
		writeFile(t, dir, "theme.css", "body { color: #336699; }\n")
		runGit(t, dir, "commit", "-am", "Recolor body")
		head := strings.TrimSpace(runGit(t, dir, "rev-parse", "HEAD"))

		runner := git.NewRunner()

		diff, err := runner.Show(context.Background(), dir, head)

		require.NoError(t, err)
		assert.Contains(t, diff, "diff --git a/theme.css b/theme.css")
		assert.NotContains(t, diff, "Recolor body", "commit header should be omitted")
		assert.Contains(t, diff, "+body { color: #336699; }")
		assert.Contains(t, diff, "-body { color: black; }")
	})

	t.Run("returns error for unknown commit", func(t *testing.T) {
		t.Parallel()
		dir := setupTestRepo(t)

		runner := git.NewRunner()

		_, err := runner.Show(context.Background(), dir, "deadbeef")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "git show failed")
	})
}
