// SPDX-License-Identifier: MPL-2.0

package rez

import (
	"errors"
	"fmt"
	"strings"

	"rez-tools/internal/plugin"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"mvdan.cc/sh/v3/syntax"
)

const (
	envSubcommand    = "env"
	quietFlag        = "-q"
	commandSeparator = "--"

	// TimeOpt is the resolver-option key written by --force-rez-env-time.
	TimeOpt = "time"
)

// ErrEmptyCommand is the sentinel error wrapped by EmptyCommandError.
var ErrEmptyCommand = errors.New("empty command")

type (
	// Command describes one resolver invocation: a plugin descriptor plus
	// the per-invocation overrides collected from the synthesized CLI.
	Command struct {
		plugin    *plugin.Plugin
		prefix    []string
		args      []string
		opts      map[string]string
		ignoreCmd bool
		detached  bool
	}

	// EmptyCommandError is returned when a Command is assembled with nothing
	// to run after the separator. It wraps ErrEmptyCommand.
	EmptyCommandError struct {
		Name string
	}
)

// Error implements the error interface.
func (e *EmptyCommandError) Error() string {
	return fmt.Sprintf("plugin %q assembled an empty command", e.Name)
}

// Unwrap returns ErrEmptyCommand so callers can use errors.Is for programmatic detection.
func (e *EmptyCommandError) Unwrap() error { return ErrEmptyCommand }

// NewCommand wraps a resolved plugin in a command builder. Detached mode and
// resolver options are initialized from the descriptor and may be overridden
// per invocation.
func NewCommand(p *plugin.Plugin) *Command {
	c := &Command{
		plugin:   p,
		detached: p.Detached(),
	}
	for k, v := range p.RezOpts {
		c.setOpt(k, v)
	}
	return c
}

// WithPrefix sets the resolver invocation prefix, normally supplied by a
// Locator. An empty prefix falls back to plain "rez".
func (c *Command) WithPrefix(prefix []string) *Command {
	c.prefix = prefix
	return c
}

// WithArgs sets the trailing free-form arguments captured by the synthesized
// command. They only reach the resolver under ignore-cmd mode.
func (c *Command) WithArgs(args []string) *Command {
	c.args = args
	return c
}

// WithIgnoreCmd forwards the trailing arguments in place of the descriptor's
// own command.
func (c *Command) WithIgnoreCmd(ignore bool) *Command {
	c.ignoreCmd = ignore
	return c
}

// WithDetached overrides detached execution for this invocation. The flag is
// OR'd with the descriptor's run_detached by the caller.
func (c *Command) WithDetached(detached bool) *Command {
	c.detached = detached
	return c
}

// WithOpt sets one resolver option, overriding any descriptor default.
func (c *Command) WithOpt(key, value string) *Command {
	c.setOpt(key, value)
	return c
}

func (c *Command) setOpt(key, value string) {
	if c.opts == nil {
		c.opts = make(map[string]string)
	}
	c.opts[key] = value
}

// Detached reports whether this invocation runs detached.
func (c *Command) Detached() bool { return c.detached }

// Plugin returns the descriptor this command was built from.
func (c *Command) Plugin() *plugin.Plugin { return c.plugin }

// Argv assembles the resolver invocation as an argument vector. The shape is
// prefix, "env", "-q", sorted --key=value resolver options, the descriptor's
// requires in declared order, "--", then either the descriptor command as a
// single token or the override arguments under ignore-cmd mode.
func (c *Command) Argv() ([]string, error) {
	prefix := c.prefix
	if len(prefix) == 0 {
		prefix = []string{"rez"}
	}

	argv := make([]string, 0, len(prefix)+len(c.opts)+len(c.plugin.Requires)+len(c.args)+3)
	argv = append(argv, prefix...)
	argv = append(argv, envSubcommand, quietFlag)

	keys := maps.Keys(c.opts)
	slices.Sort(keys)
	for _, k := range keys {
		argv = append(argv, fmt.Sprintf("--%s=%s", k, c.opts[k]))
	}

	argv = append(argv, c.plugin.Requires...)
	argv = append(argv, commandSeparator)

	if c.ignoreCmd && len(c.args) > 0 {
		return append(argv, c.args...), nil
	}
	if c.plugin.Command == "" {
		return nil, &EmptyCommandError{Name: c.plugin.Name}
	}
	return append(argv, c.plugin.Command), nil
}

// String renders the assembled invocation as one shell-quoted line, suitable
// for logging and for pasting into a host shell.
func (c *Command) String() string {
	argv, err := c.Argv()
	if err != nil {
		return ""
	}
	quoted := make([]string, len(argv))
	for i, tok := range argv {
		q, err := syntax.Quote(tok, syntax.LangPOSIX)
		if err != nil {
			// Tokens that cannot be represented (NUL bytes) pass through raw.
			q = tok
		}
		quoted[i] = q
	}
	return strings.Join(quoted, " ")
}
