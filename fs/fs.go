// Package fs stores generated artifacts on the local file system.
package fs

import (
	"os"
	"path/filepath"
)

// DefaultCacheDir returns the default cache directory for colorhl.
// Uses XDG_CACHE_HOME if set, otherwise falls back to ~/.cache/colorhl,
// or system temp directory if home is unavailable.
func DefaultCacheDir() string {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, "colorhl")
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return filepath.Join(os.TempDir(), "colorhl")
	}
	return filepath.Join(home, ".cache", "colorhl")
}

// DefaultIconDir returns the directory gutter icons are cached in.
func DefaultIconDir() string {
	return filepath.Join(DefaultCacheDir(), "icons")
}

// DefaultConfigPath returns the settings file read when no path is given.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config/colorhl/config.yaml.
func DefaultConfigPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "colorhl", "config.yaml")
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ""
	}
	return filepath.Join(home, ".config", "colorhl", "config.yaml")
}
