// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrInvalidExtension is the sentinel error wrapped by InvalidExtensionError.
	ErrInvalidExtension = errors.New("invalid extension")
	// ErrInvalidToolPath is the sentinel error wrapped by InvalidToolPathError.
	ErrInvalidToolPath = errors.New("invalid tool path")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// Config holds the settings consumed by the dispatcher core.
	Config struct {
		// ToolPaths are the directories scanned for plugin descriptors,
		// ordered by priority: index 0 wins name collisions.
		ToolPaths []string `mapstructure:"tool_paths" toml:"tool_paths"`
		// Extension is the descriptor file suffix, including the dot.
		Extension string `mapstructure:"extension" toml:"extension"`
	}

	// InvalidExtensionError is returned when the extension is empty or does
	// not start with a dot. It wraps ErrInvalidExtension for errors.Is()
	// compatibility.
	InvalidExtensionError struct {
		Value string
	}

	// InvalidToolPathError is returned when a tool_paths entry is empty or
	// whitespace-only. It wraps ErrInvalidToolPath for errors.Is() compatibility.
	InvalidToolPathError struct {
		Index int
		Value string
	}

	// InvalidConfigError is returned when a Config has invalid fields.
	// It wraps ErrInvalidConfig for errors.Is() compatibility and collects
	// field-level validation errors.
	InvalidConfigError struct {
		FieldErrors []error
	}
)

// Error implements the error interface.
func (e *InvalidExtensionError) Error() string {
	return fmt.Sprintf("invalid extension %q (must start with a dot)", e.Value)
}

// Unwrap returns ErrInvalidExtension so callers can use errors.Is for programmatic detection.
func (e *InvalidExtensionError) Unwrap() error { return ErrInvalidExtension }

// Error implements the error interface.
func (e *InvalidToolPathError) Error() string {
	return fmt.Sprintf("tool_paths[%d]: invalid path %q", e.Index, e.Value)
}

// Unwrap returns ErrInvalidToolPath so callers can use errors.Is for programmatic detection.
func (e *InvalidToolPathError) Unwrap() error { return ErrInvalidToolPath }

// Error implements the error interface.
func (e *InvalidConfigError) Error() string {
	msgs := make([]string, len(e.FieldErrors))
	for i, err := range e.FieldErrors {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("invalid config: %s", strings.Join(msgs, "; "))
}

// Unwrap returns ErrInvalidConfig together with the collected field errors,
// so errors.Is matches both the aggregate sentinel and each violation.
func (e *InvalidConfigError) Unwrap() []error {
	return append([]error{ErrInvalidConfig}, e.FieldErrors...)
}

// DefaultConfig returns the built-in configuration: a single ~/packages
// search path and the ".rt" descriptor extension.
func DefaultConfig() *Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return &Config{
		ToolPaths: []string{filepath.Join(home, "packages")},
		Extension: ".rt",
	}
}

// Validate checks the configuration fields and collects every violation.
func (c *Config) Validate() error {
	var fieldErrors []error

	if c.Extension == "" || !strings.HasPrefix(c.Extension, ".") {
		fieldErrors = append(fieldErrors, &InvalidExtensionError{Value: c.Extension})
	}
	for i, p := range c.ToolPaths {
		if strings.TrimSpace(p) == "" {
			fieldErrors = append(fieldErrors, &InvalidToolPathError{Index: i, Value: p})
		}
	}

	if len(fieldErrors) > 0 {
		return &InvalidConfigError{FieldErrors: fieldErrors}
	}
	return nil
}

// NormalizePaths expands a leading "~" in each tool path and cleans the
// result. Paths that cannot be expanded are left as written.
func (c *Config) NormalizePaths() {
	home, err := os.UserHomeDir()
	for i, p := range c.ToolPaths {
		if err == nil {
			if p == "~" {
				p = home
			} else if strings.HasPrefix(p, "~/") || strings.HasPrefix(p, `~\`) {
				p = filepath.Join(home, p[2:])
			}
		}
		c.ToolPaths[i] = filepath.Clean(p)
	}
}
