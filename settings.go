package colorhl

import (
	"fmt"
	"time"
)

// Settings is the complete engine configuration.
type Settings struct {
	Selection Trigger  `yaml:"selection"` // Colors under or touching a selection
	Content   Trigger  `yaml:"content"`   // Every color in the buffer
	Hover     Trigger  `yaml:"hover"`     // The color under the pointer
	Grammar   Grammar  `yaml:"grammar"`
	Debounce  Debounce `yaml:"debounce"`
	// Languages restricts highlighting to buffers of these languages.
	// Empty means every language.
	Languages []string `yaml:"languages,omitempty"`
}

// Trigger configures one trigger kind and the strategies it renders with.
type Trigger struct {
	Enabled    bool     `yaml:"enabled"`
	Highlight  Strategy `yaml:"highlight"`
	Gutter     Strategy `yaml:"gutter"`
	Annotation Strategy `yaml:"annotation"`
}

// Strategy toggles one rendering strategy and picks its style.
type Strategy struct {
	Enabled bool   `yaml:"enabled"`
	Style   string `yaml:"style,omitempty"`
}

// Debounce bounds the delay between a trigger and its reconciliation pass.
type Debounce struct {
	Min        time.Duration `yaml:"min"`
	Max        time.Duration `yaml:"max"`
	MaxLatency time.Duration `yaml:"max_latency"`
}

// DefaultSettings returns the built-in settings. The grammar is left empty;
// callers fill it with the default grammar before compiling.
func DefaultSettings() Settings {
	return Settings{
		Selection: Trigger{
			Enabled:   true,
			Highlight: Strategy{Enabled: true, Style: string(StyleFill)},
			Gutter:    Strategy{Style: string(GutterCircle)},
		},
		Content: Trigger{
			Enabled:    true,
			Highlight:  Strategy{Enabled: true, Style: string(StyleUnderline)},
			Gutter:     Strategy{Enabled: true, Style: string(GutterCircle)},
			Annotation: Strategy{},
		},
		Hover: Trigger{
			Enabled:    true,
			Highlight:  Strategy{Style: string(StyleFill)},
			Gutter:     Strategy{Style: string(GutterCircle)},
			Annotation: Strategy{Enabled: true},
		},
		Debounce: Debounce{
			Min:        20 * time.Millisecond,
			Max:        250 * time.Millisecond,
			MaxLatency: 500 * time.Millisecond,
		},
	}
}

// Validate checks enum-style values and bounds. It does not compile the
// grammar; compiling reports grammar problems.
func (s Settings) Validate() error {
	triggers := []struct {
		name string
		t    Trigger
	}{
		{"selection", s.Selection},
		{"content", s.Content},
		{"hover", s.Hover},
	}
	for _, tr := range triggers {
		if err := tr.t.validate(tr.name); err != nil {
			return err
		}
	}

	d := s.Debounce
	switch {
	case d.Min < 0:
		return Errorf("debounce.min", "%w: negative duration %v", ErrInvalidSetting, d.Min)
	case d.Max < d.Min:
		return Errorf("debounce.max", "%w: %v is below debounce.min %v", ErrInvalidSetting, d.Max, d.Min)
	case d.MaxLatency < d.Max:
		return Errorf("debounce.max_latency", "%w: %v is below debounce.max %v", ErrInvalidSetting, d.MaxLatency, d.Max)
	}
	return nil
}

func (t Trigger) validate(name string) error {
	if !HighlightStyle(t.Highlight.Style).Valid() {
		return Errorf(name+".highlight.style", "%w: unsupported highlight style %q", ErrInvalidSetting, t.Highlight.Style)
	}
	if !GutterStyle(t.Gutter.Style).Valid() {
		return Errorf(name+".gutter.style", "%w: unsupported gutter style %q", ErrInvalidSetting, t.Gutter.Style)
	}
	if t.Annotation.Style != "" {
		return Errorf(name+".annotation.style", "%w: annotations take no style, got %q", ErrInvalidSetting, t.Annotation.Style)
	}
	return nil
}

// String summarizes which strategies a trigger renders with.
func (t Trigger) String() string {
	if !t.Enabled {
		return "disabled"
	}
	return fmt.Sprintf("highlight=%v(%s) gutter=%v(%s) annotation=%v",
		t.Highlight.Enabled, t.Highlight.Style, t.Gutter.Enabled, t.Gutter.Style, t.Annotation.Enabled)
}
