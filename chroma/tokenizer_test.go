package chroma_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/colorhl"
	"github.com/fwojciec/colorhl/chroma"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTokenizer(t *testing.T) *chroma.Tokenizer {
	t.Helper()

	tok, err := chroma.NewTokenizer(chroma.StyleFromPalette(colorhl.Palette{
		Keyword: "#ff00ff",
		Comment: "#888888",
	}))
	require.NoError(t, err)
	return tok
}

func lineText(tokens []colorhl.Token) string {
	var sb strings.Builder
	for _, tok := range tokens {
		sb.WriteString(tok.Text)
	}
	return sb.String()
}

func TestNewTokenizer(t *testing.T) {
	t.Parallel()

	_, err := chroma.NewTokenizer(nil)

	assert.Error(t, err)
}

func TestTokenizer_TokenizeLines(t *testing.T) {
	t.Parallel()

	t.Run("splits tokens by line and keeps the text", func(t *testing.T) {
		t.Parallel()

		lines := newTokenizer(t).TokenizeLines("css", "a {\n  color: #fff;\n}\n")

		require.Len(t, lines, 3)
		assert.Equal(t, "a {", lineText(lines[0]))
		assert.Equal(t, "  color: #fff;", lineText(lines[1]))
		assert.Equal(t, "}", lineText(lines[2]))
	})

	t.Run("keeps block comment style across lines", func(t *testing.T) {
		t.Parallel()

		lines := newTokenizer(t).TokenizeLines("go", "/* one\ntwo */\n")

		require.Len(t, lines, 2)
		require.NotEmpty(t, lines[1])
		assert.Equal(t, "#888888", lines[1][0].Style.Foreground)
	})

	t.Run("keeps empty lines", func(t *testing.T) {
		t.Parallel()

		lines := newTokenizer(t).TokenizeLines("go", "package a\n\nvar x int")

		require.Len(t, lines, 3)
		assert.Empty(t, lines[1])
	})

	t.Run("returns nil for unsupported languages", func(t *testing.T) {
		t.Parallel()

		assert.Nil(t, newTokenizer(t).TokenizeLines("nonexistent-language-xyz", "x"))
	})

	t.Run("returns no lines for empty source", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, newTokenizer(t).TokenizeLines("go", ""))
	})
}
