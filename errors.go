package colorhl

import (
	"errors"
	"fmt"
)

// Configuration error causes. Match them with errors.Is.
var (
	ErrCyclicDependency = errors.New("cyclic dependency")
	ErrUnknownChannel   = errors.New("unknown channel")
	ErrUnknownFormat    = errors.New("unknown format")
	ErrInvalidSetting   = errors.New("invalid setting")
)

// ConfigError reports a configuration problem at a setting path such as
// "grammar.formats.rgba.groups.R". A ConfigError disables the feature it
// configures; it never indicates a bug.
type ConfigError struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("config: %v", e.Err)
	}
	return fmt.Sprintf("config: %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying cause.
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Errorf returns a ConfigError at path with a formatted cause.
// The format may use %w to wrap one of the sentinel errors.
func Errorf(path, format string, args ...any) error {
	return &ConfigError{Path: path, Err: fmt.Errorf(format, args...)}
}
