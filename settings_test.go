package colorhl_test

import (
	"errors"
	"testing"
	"time"

	"github.com/fwojciec/colorhl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSettings_Validate(t *testing.T) {
	t.Parallel()

	assert.NoError(t, colorhl.DefaultSettings().Validate())
}

func TestSettings_Validate(t *testing.T) {
	t.Parallel()

	t.Run("rejects unsupported highlight style with its path", func(t *testing.T) {
		t.Parallel()

		s := colorhl.DefaultSettings()
		s.Hover.Highlight.Style = "outline"

		err := s.Validate()

		require.Error(t, err)
		assert.True(t, errors.Is(err, colorhl.ErrInvalidSetting))
		var cfgErr *colorhl.ConfigError
		require.True(t, errors.As(err, &cfgErr))
		assert.Equal(t, "hover.highlight.style", cfgErr.Path)
	})

	t.Run("rejects unsupported gutter style", func(t *testing.T) {
		t.Parallel()

		s := colorhl.DefaultSettings()
		s.Content.Gutter.Style = "triangle"

		err := s.Validate()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "content.gutter.style")
	})

	t.Run("rejects annotation style", func(t *testing.T) {
		t.Parallel()

		s := colorhl.DefaultSettings()
		s.Selection.Annotation.Style = "square"

		assert.Error(t, s.Validate())
	})

	t.Run("rejects inverted debounce bounds", func(t *testing.T) {
		t.Parallel()

		s := colorhl.DefaultSettings()
		s.Debounce.Min = time.Second
		s.Debounce.Max = time.Millisecond

		err := s.Validate()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "debounce.max")
	})

	t.Run("rejects latency bound below max delay", func(t *testing.T) {
		t.Parallel()

		s := colorhl.DefaultSettings()
		s.Debounce.MaxLatency = s.Debounce.Max - time.Millisecond

		err := s.Validate()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "debounce.max_latency")
	})
}

func TestTrigger_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "disabled", colorhl.Trigger{}.String())
	assert.Contains(t, colorhl.DefaultSettings().Content.String(), "gutter=true(circle)")
}
