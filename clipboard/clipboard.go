// Package clipboard provides clipboard operations via platform-specific commands.
package clipboard

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/fwojciec/colorhl"
)

// ErrNoCommand is returned when no clipboard command is installed.
var ErrNoCommand = errors.New("no clipboard command found")

// Ensure Command implements the Clipboard interface.
var _ colorhl.Clipboard = (*Command)(nil)

// candidates are tried in order by Detect.
var candidates = [][]string{
	{"pbcopy"},
	{"wl-copy"},
	{"xclip", "-selection", "clipboard"},
	{"xsel", "--clipboard", "--input"},
}

// Command implements Clipboard by piping content into an external command.
type Command struct {
	name string
	args []string
}

// NewCommand returns a clipboard running name with args.
func NewCommand(name string, args ...string) *Command {
	return &Command{name: name, args: args}
}

// NewPBCopy returns a clipboard using macOS pbcopy.
func NewPBCopy() *Command {
	return NewCommand("pbcopy")
}

// Detect returns a clipboard for the first command found on PATH.
func Detect() (*Command, error) {
	for _, c := range candidates {
		if _, err := exec.LookPath(c[0]); err == nil {
			return NewCommand(c[0], c[1:]...), nil
		}
	}
	return nil, ErrNoCommand
}

// Copy writes content to the system clipboard.
func (c *Command) Copy(content string) error {
	cmd := exec.Command(c.name, c.args...)
	cmd.Stdin = strings.NewReader(content)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s: %w", c.name, err)
	}
	return nil
}
