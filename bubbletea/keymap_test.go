package bubbletea_test

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/colorhl/bubbletea"
	"github.com/stretchr/testify/assert"
)

func TestDefaultKeyMap_HasExpectedBindings(t *testing.T) {
	t.Parallel()

	km := bubbletea.DefaultKeyMap()

	runes := func(r rune) tea.KeyMsg {
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
	}

	tests := []struct {
		name    string
		msgs    []tea.KeyMsg
		binding key.Binding
	}{
		{"Up binding", []tea.KeyMsg{runes('k'), {Type: tea.KeyUp}}, km.Up},
		{"Down binding", []tea.KeyMsg{runes('j'), {Type: tea.KeyDown}}, km.Down},
		{"Left binding", []tea.KeyMsg{runes('h'), {Type: tea.KeyLeft}}, km.Left},
		{"Right binding", []tea.KeyMsg{runes('l'), {Type: tea.KeyRight}}, km.Right},
		{"LineStart binding", []tea.KeyMsg{runes('0'), {Type: tea.KeyHome}}, km.LineStart},
		{"LineEnd binding", []tea.KeyMsg{runes('$'), {Type: tea.KeyEnd}}, km.LineEnd},
		{"HalfPageUp binding", []tea.KeyMsg{{Type: tea.KeyCtrlU}}, km.HalfPageUp},
		{"HalfPageDown binding", []tea.KeyMsg{{Type: tea.KeyCtrlD}}, km.HalfPageDown},
		// "gg" requires multi-key sequence handling in the Model
		{"GotoTop binding", []tea.KeyMsg{runes('g')}, km.GotoTop},
		{"GotoBottom binding", []tea.KeyMsg{runes('G')}, km.GotoBottom},
		{"NextColor binding", []tea.KeyMsg{runes('n')}, km.NextColor},
		{"PrevColor binding", []tea.KeyMsg{runes('N')}, km.PrevColor},
		{"CycleFormat binding", []tea.KeyMsg{runes('c')}, km.CycleFormat},
		{"Copy binding", []tea.KeyMsg{runes('y')}, km.Copy},
		{"Quit binding", []tea.KeyMsg{runes('q'), {Type: tea.KeyCtrlC}}, km.Quit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			for _, msg := range tt.msgs {
				assert.True(t, key.Matches(msg, tt.binding), "%s should match", msg.String())
			}
		})
	}
}

func TestKeyMap_HelpText(t *testing.T) {
	t.Parallel()

	km := bubbletea.DefaultKeyMap()

	t.Run("bindings have help text", func(t *testing.T) {
		t.Parallel()

		for _, b := range []key.Binding{km.Up, km.Down, km.CycleFormat, km.Copy, km.Quit} {
			assert.NotEmpty(t, b.Help().Key, "binding should have help key")
			assert.NotEmpty(t, b.Help().Desc, "binding should have help description")
		}
	})
}
