// Package yaml loads colorhl settings from YAML using gopkg.in/yaml.v3.
package yaml

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fwojciec/colorhl"
	"github.com/fwojciec/colorhl/pattern"
	"gopkg.in/yaml.v3"
)

// Defaults returns the built-in settings with the default grammar.
func Defaults() colorhl.Settings {
	s := colorhl.DefaultSettings()
	s.Grammar = pattern.DefaultGrammar()
	return s
}

// Load decodes settings from r on top of Defaults and validates them.
//
// Keys absent from the document keep their default. Channels and formats
// merge by name: a format defined in the document replaces the built-in
// format of that name. Unknown keys are rejected.
func Load(r io.Reader) (colorhl.Settings, error) {
	s := Defaults()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return colorhl.Settings{}, colorhl.Errorf("", "%w: %v", colorhl.ErrInvalidSetting, err)
	}
	if err := s.Validate(); err != nil {
		return colorhl.Settings{}, err
	}
	return s, nil
}

// LoadFile loads settings from the file at path.
func LoadFile(path string) (colorhl.Settings, error) {
	f, err := os.Open(path)
	if err != nil {
		return colorhl.Settings{}, fmt.Errorf("opening settings: %w", err)
	}
	defer f.Close()

	s, err := Load(f)
	if err != nil {
		return colorhl.Settings{}, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// LoadOptional is LoadFile, except that a missing file (or an empty path)
// yields Defaults.
func LoadOptional(path string) (colorhl.Settings, error) {
	if path == "" {
		return Defaults(), nil
	}
	s, err := LoadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Defaults(), nil
	}
	return s, err
}

// Write encodes s as YAML.
func Write(w io.Writer, s colorhl.Settings) error {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}
	_, err := w.Write(buf.Bytes())
	return err
}
