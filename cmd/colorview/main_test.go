package main_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fwojciec/colorhl"
	"github.com/fwojciec/colorhl/chroma"
	main "github.com/fwojciec/colorhl/cmd/colorview"
	"github.com/fwojciec/colorhl/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// capture returns a viewer factory recording the settings and document it
// was given.
func capture(settings *colorhl.Settings, doc *colorhl.Document, err error) func(colorhl.Settings) colorhl.Viewer {
	return func(s colorhl.Settings) colorhl.Viewer {
		*settings = s
		return &mock.Viewer{
			ViewFn: func(ctx context.Context, d colorhl.Document) error {
				*doc = d
				return err
			},
		}
	}
}

func TestApp_Run_Stdin(t *testing.T) {
	t.Parallel()

	var settings colorhl.Settings
	var viewed colorhl.Document
	app := &main.App{
		Stdin:     strings.NewReader("a { color: red; }\n"),
		Settings:  colorhl.DefaultSettings(),
		NewViewer: capture(&settings, &viewed, nil),
	}

	err := app.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, colorhl.Document{Text: "a { color: red; }\n"}, viewed)
	assert.True(t, settings.Content.Enabled)
}

func TestApp_Run_File(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "theme.css")
	require.NoError(t, os.WriteFile(path, []byte("#fff\n"), 0o644))

	var settings colorhl.Settings
	var viewed colorhl.Document
	app := &main.App{
		Stdin:     strings.NewReader("ignored"),
		Path:      path,
		Settings:  colorhl.DefaultSettings(),
		NewViewer: capture(&settings, &viewed, nil),
	}

	err := app.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, colorhl.Document{Path: path, Text: "#fff\n"}, viewed, "file should take precedence over stdin")
}

func TestApp_Run_LanguageFilter(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	css := filepath.Join(dir, "theme.css")
	goFile := filepath.Join(dir, "main.go")
	require.NoError(t, os.WriteFile(css, []byte("red\n"), 0o644))
	require.NoError(t, os.WriteFile(goFile, []byte("red\n"), 0o644))

	filter := chroma.NewFilter(chroma.NewDetector(), []string{"css"})

	t.Run("highlights allowed languages", func(t *testing.T) {
		t.Parallel()

		var settings colorhl.Settings
		var viewed colorhl.Document
		app := &main.App{Path: css, Settings: colorhl.DefaultSettings(), Filter: filter, NewViewer: capture(&settings, &viewed, nil)}

		require.NoError(t, app.Run(context.Background()))
		assert.True(t, settings.Content.Enabled)
		assert.True(t, settings.Selection.Enabled)
	})

	t.Run("shows other languages as plain text", func(t *testing.T) {
		t.Parallel()

		var settings colorhl.Settings
		var viewed colorhl.Document
		app := &main.App{Path: goFile, Settings: colorhl.DefaultSettings(), Filter: filter, NewViewer: capture(&settings, &viewed, nil)}

		require.NoError(t, app.Run(context.Background()))
		assert.False(t, settings.Content.Enabled)
		assert.False(t, settings.Selection.Enabled)
		assert.False(t, settings.Hover.Enabled)
		assert.Equal(t, "red\n", viewed.Text)
	})
}

func TestApp_Run_MissingFile(t *testing.T) {
	t.Parallel()

	viewerCalled := false
	app := &main.App{
		Path: filepath.Join(t.TempDir(), "missing.css"),
		NewViewer: func(colorhl.Settings) colorhl.Viewer {
			viewerCalled = true
			return &mock.Viewer{}
		},
	}

	err := app.Run(context.Background())

	require.ErrorIs(t, err, os.ErrNotExist)
	assert.False(t, viewerCalled, "viewer should not be built without a document")
}

func TestApp_Run_NoInput(t *testing.T) {
	t.Parallel()

	app := &main.App{NewViewer: func(colorhl.Settings) colorhl.Viewer { return &mock.Viewer{} }}

	err := app.Run(context.Background())

	require.ErrorIs(t, err, main.ErrNoInput)
}

func TestApp_Run_ViewError(t *testing.T) {
	t.Parallel()

	viewErr := errors.New("terminal error")
	var settings colorhl.Settings
	var viewed colorhl.Document
	app := &main.App{
		Stdin:     strings.NewReader("red"),
		NewViewer: capture(&settings, &viewed, viewErr),
	}

	err := app.Run(context.Background())

	require.Error(t, err)
	assert.Equal(t, viewErr, err)
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	write := func(t *testing.T, content string) string {
		t.Helper()
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		return path
	}

	t.Run("compiles the configured grammar", func(t *testing.T) {
		t.Parallel()

		cfg, err := main.LoadConfig("", false, slog.New(slog.NewTextHandler(io.Discard, nil)))

		require.NoError(t, err)
		require.NotNil(t, cfg.Searcher)
		assert.Empty(t, cfg.Notice)
		assert.True(t, cfg.Settings.Content.Enabled)
	})

	t.Run("disables highlighting when channel aliases form a cycle", func(t *testing.T) {
		t.Parallel()

		path := write(t, "grammar:\n  channels:\n    a: b\n    b: a\n")
		var logs bytes.Buffer

		cfg, err := main.LoadConfig(path, true, slog.New(slog.NewTextHandler(&logs, nil)))

		require.NoError(t, err)
		require.NotNil(t, cfg.Searcher, "the document should still display")
		assert.False(t, cfg.Settings.Content.Enabled)
		assert.False(t, cfg.Settings.Selection.Enabled)
		assert.False(t, cfg.Settings.Hover.Enabled)
		assert.Contains(t, cfg.Notice, "cyclic dependency")
		assert.Contains(t, logs.String(), "highlighting disabled")
		assert.Contains(t, logs.String(), "grammar.channels")
	})

	t.Run("disables highlighting for invalid settings", func(t *testing.T) {
		t.Parallel()

		path := write(t, "content:\n  highlight:\n    style: blink\n")

		cfg, err := main.LoadConfig(path, true, slog.New(slog.NewTextHandler(io.Discard, nil)))

		require.NoError(t, err)
		assert.False(t, cfg.Settings.Content.Enabled)
		assert.Contains(t, cfg.Notice, "content.highlight.style")
	})

	t.Run("fails when an explicit file is missing", func(t *testing.T) {
		t.Parallel()

		_, err := main.LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"), true, slog.New(slog.NewTextHandler(io.Discard, nil)))

		require.ErrorIs(t, err, os.ErrNotExist)
	})
}
