package jsonl_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/fwojciec/colorhl"
	"github.com/fwojciec/colorhl/jsonl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var record = colorhl.Record{
	Path:   "theme.css",
	Line:   2,
	Span:   colorhl.Span{A: 9, B: 30},
	Color:  colorhl.Color{R: 10, G: 20, B: 30, A: 0x80},
	Format: "rgba",
	Text:   "rgba(10, 20, 30, 0.5)",
}

func TestSaver_Save(t *testing.T) {
	t.Parallel()

	t.Run("appends records to new file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "output.jsonl")

		saver := jsonl.NewSaver()

		err := saver.Save(path, record)

		require.NoError(t, err)

		// Verify file contains the record
		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(content), `"path":"theme.css"`)
		assert.Contains(t, string(content), `"span":{"a":9,"b":30}`)
		assert.Contains(t, string(content), `"color":"#0A141E80"`)
		assert.NotContains(t, string(content), `"icon"`)
	})

	t.Run("appends to existing file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "existing.jsonl")

		// Create file with existing content
		existing := `{"span":{"a":0,"b":3},"color":"#FF0000FF","format":"named","text":"red"}` + "\n"
		require.NoError(t, os.WriteFile(path, []byte(existing), 0o644))

		saver := jsonl.NewSaver()

		err := saver.Save(path, record)

		require.NoError(t, err)

		// Verify both lines exist and load back
		records, err := jsonl.NewLoader().Load(path)
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, "red", records[0].Text)
		assert.Equal(t, record, records[1])
	})

	t.Run("creates parent directories", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "nested", "deep", "output.jsonl")

		saver := jsonl.NewSaver()

		err := saver.Save(path, record)

		require.NoError(t, err)
		assert.FileExists(t, path)
	})
}

func TestWriter_Write(t *testing.T) {
	t.Parallel()

	t.Run("writes one line per record", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := jsonl.NewWriter(&buf)

		require.NoError(t, w.Write(record))
		require.NoError(t, w.Write(record))

		lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
		assert.Len(t, lines, 2)
	})

	t.Run("keeps lines whole under concurrent writes", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := jsonl.NewWriter(&buf)

		var wg sync.WaitGroup
		for range 20 {
			wg.Go(func() {
				assert.NoError(t, w.Write(record))
			})
		}
		wg.Wait()

		for line := range strings.SplitSeq(strings.TrimSuffix(buf.String(), "\n"), "\n") {
			assert.True(t, strings.HasPrefix(line, "{") && strings.HasSuffix(line, "}"), line)
		}
	})
}
