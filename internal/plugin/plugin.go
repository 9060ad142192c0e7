// SPDX-License-Identifier: MPL-2.0

package plugin

import (
	"errors"
	"fmt"
	"regexp"

	"gopkg.in/yaml.v3"
)

// namePattern constrains plugin names to identifier-like strings so every
// name is usable as a subcommand without shell escaping.
var namePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]+$`)

var (
	// ErrInvalidName is the sentinel error wrapped by InvalidNameError.
	ErrInvalidName = errors.New("invalid plugin name")
	// ErrMissingCommand is the sentinel error wrapped by MissingCommandError.
	ErrMissingCommand = errors.New("missing command")
	// ErrMissingRequires is the sentinel error wrapped by MissingRequiresError.
	ErrMissingRequires = errors.New("missing requires")
)

type (
	// Plugin is the typed view over one parsed descriptor file.
	Plugin struct {
		// Name identifies the synthesized subcommand. When the descriptor
		// omits it, the file's base name (minus extension) is used.
		Name string `yaml:"name,omitempty"`
		// Command is the literal command line executed inside the resolved
		// environment. Required unless inherits_from supplies it.
		Command string `yaml:"command,omitempty"`
		// Requires lists the package specifiers handed to the resolver,
		// in declared order. Required.
		Requires []string `yaml:"requires,omitempty"`
		// InheritsFrom names a parent plugin whose fields this descriptor
		// extends. Resolved and cleared by the discovery layer.
		InheritsFrom string `yaml:"inherits_from,omitempty"`
		// ShortHelp is the one-line description shown in listings.
		ShortHelp string `yaml:"short_help,omitempty"`
		// RunDetached launches the command in its own session instead of
		// blocking the dispatcher. Nil means "not set" so inheritance can
		// distinguish an explicit false from an omitted field.
		RunDetached *bool `yaml:"run_detached,omitempty"`
		// RezOpts holds extra resolver options, rendered as --key=value
		// flags. Normally empty; --force-rez-env-time writes the "time" key.
		RezOpts map[string]string `yaml:"rez_opts,omitempty"`

		// FilePath is the descriptor file this plugin was parsed from.
		FilePath string `yaml:"-"`
	}

	// InvalidNameError is returned when a plugin name does not match the
	// identifier pattern. It wraps ErrInvalidName for errors.Is() compatibility.
	InvalidNameError struct {
		Name string
	}

	// MissingCommandError is returned when a descriptor has neither a command
	// nor a parent to inherit one from. It wraps ErrMissingCommand.
	MissingCommandError struct {
		Name string
	}

	// MissingRequiresError is returned when a descriptor declares no packages.
	// It wraps ErrMissingRequires.
	MissingRequiresError struct {
		Name string
	}
)

// Error implements the error interface.
func (e *InvalidNameError) Error() string {
	return fmt.Sprintf("invalid plugin name %q (must match %s)", e.Name, namePattern)
}

// Unwrap returns ErrInvalidName so callers can use errors.Is for programmatic detection.
func (e *InvalidNameError) Unwrap() error { return ErrInvalidName }

// Error implements the error interface.
func (e *MissingCommandError) Error() string {
	return fmt.Sprintf("plugin %q has no command", e.Name)
}

// Unwrap returns ErrMissingCommand so callers can use errors.Is for programmatic detection.
func (e *MissingCommandError) Unwrap() error { return ErrMissingCommand }

// Error implements the error interface.
func (e *MissingRequiresError) Error() string {
	return fmt.Sprintf("plugin %q requires no packages", e.Name)
}

// Unwrap returns ErrMissingRequires so callers can use errors.Is for programmatic detection.
func (e *MissingRequiresError) Unwrap() error { return ErrMissingRequires }

// ValidateName checks the plugin name against the identifier pattern.
// Name validation is separate from Validate because descriptors that defer to
// a parent are name-checked before the parent is available.
func (p *Plugin) ValidateName() error {
	if !namePattern.MatchString(p.Name) {
		return &InvalidNameError{Name: p.Name}
	}
	return nil
}

// Validate checks that the plugin is complete enough to synthesize a command.
// Descriptors still carrying inherits_from must be merged before validation.
func (p *Plugin) Validate() error {
	if err := p.ValidateName(); err != nil {
		return err
	}
	if p.Command == "" {
		return &MissingCommandError{Name: p.Name}
	}
	if len(p.Requires) == 0 {
		return &MissingRequiresError{Name: p.Name}
	}
	return nil
}

// Help returns the short help line, generating the default when unset.
func (p *Plugin) Help() string {
	if p.ShortHelp != "" {
		return p.ShortHelp
	}
	return fmt.Sprintf("A rez plugin - %s.", p.Name)
}

// Detached reports whether the descriptor asks for detached execution.
func (p *Plugin) Detached() bool {
	return p.RunDetached != nil && *p.RunDetached
}

// descriptor mirrors Plugin with defaults applied, for rendering.
type descriptor struct {
	Name        string            `yaml:"name"`
	Command     string            `yaml:"command"`
	Requires    []string          `yaml:"requires"`
	ShortHelp   string            `yaml:"short_help"`
	RunDetached bool              `yaml:"run_detached"`
	RezOpts     map[string]string `yaml:"rez_opts,omitempty"`
}

// Describe renders the plugin's full effective content as YAML, including
// defaulted fields. Used by the --print flag.
func (p *Plugin) Describe() (string, error) {
	out, err := yaml.Marshal(descriptor{
		Name:        p.Name,
		Command:     p.Command,
		Requires:    p.Requires,
		ShortHelp:   p.Help(),
		RunDetached: p.Detached(),
		RezOpts:     p.RezOpts,
	})
	if err != nil {
		return "", fmt.Errorf("failed to render plugin %q: %w", p.Name, err)
	}
	return string(out), nil
}
