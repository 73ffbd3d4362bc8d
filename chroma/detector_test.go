package chroma_test

import (
	"testing"

	"github.com/fwojciec/colorhl/chroma"
	"github.com/fwojciec/colorhl/mock"
	"github.com/stretchr/testify/assert"
)

func TestDetector_DetectFromPath(t *testing.T) {
	t.Parallel()

	t.Run("detects stylesheet and markup languages", func(t *testing.T) {
		t.Parallel()

		detector := chroma.NewDetector()

		cases := []struct {
			path string
			want string
		}{
			{"style.css", "CSS"},
			{"theme.scss", "SCSS"},
			{"index.html", "HTML"},
			{"main.go", "Go"},
			{"app.py", "Python"},
		}
		for _, tc := range cases {
			assert.Equal(t, tc.want, detector.DetectFromPath(tc.path), "path: %s", tc.path)
		}
	})

	t.Run("strips diff prefixes", func(t *testing.T) {
		t.Parallel()

		detector := chroma.NewDetector()

		assert.Equal(t, "CSS", detector.DetectFromPath("b/web/site.css"))
		assert.Equal(t, "CSS", detector.DetectFromPath("a/web/site.css"))
	})

	t.Run("returns empty string for unknown extensions", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, chroma.NewDetector().DetectFromPath("file.unknownext"))
	})
}

func TestFilter_Allowed(t *testing.T) {
	t.Parallel()

	t.Run("allows every file without an allowlist", func(t *testing.T) {
		t.Parallel()

		f := chroma.NewFilter(chroma.NewDetector(), nil)

		assert.True(t, f.Allowed("notes.unknownext"))
		assert.True(t, f.Allowed("main.go"))
	})

	t.Run("matches lexer names and aliases case-insensitively", func(t *testing.T) {
		t.Parallel()

		f := chroma.NewFilter(chroma.NewDetector(), []string{"css", "SCSS"})

		assert.True(t, f.Allowed("a.css"))
		assert.True(t, f.Allowed("b.scss"))
		assert.False(t, f.Allowed("main.go"))
		assert.False(t, f.Allowed("notes.unknownext"))
	})

	t.Run("asks the detector for the language", func(t *testing.T) {
		t.Parallel()

		var asked string
		d := &mock.LanguageDetector{
			DetectFromPathFn: func(path string) string {
				asked = path
				return "Go"
			},
		}
		f := chroma.NewFilter(d, []string{"golang"})

		assert.True(t, f.Allowed("x.txt"))
		assert.Equal(t, "x.txt", asked)
		assert.Equal(t, "Go", f.Language("x.txt"))
	})
}
