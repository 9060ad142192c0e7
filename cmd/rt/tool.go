// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"

	"rez-tools/internal/issue"
	"rez-tools/internal/plugin"
	"rez-tools/internal/rez"

	"github.com/spf13/cobra"
)

// toolOptions is the fixed option surface shared by every synthesized
// plugin command.
type toolOptions struct {
	ignoreCmd   bool
	print       bool
	runDetached bool
	forceTime   string
}

// tool returns the synthesized command for p, building it on first dispatch.
// Synthesis runs once per distinct plugin name per process.
func (a *App) tool(p *plugin.Plugin) *cobra.Command {
	a.toolsMu.Lock()
	defer a.toolsMu.Unlock()

	if c, ok := a.tools[p.Name]; ok {
		return c
	}

	c := a.newToolCommand(p)
	if a.tools == nil {
		a.tools = make(map[string]*cobra.Command)
	}
	a.tools[p.Name] = c
	return c
}

// newToolCommand builds the Cobra command for one plugin descriptor. The
// command is data-driven: a closure over the descriptor plus the fixed flag
// set, run through the shared runTool handler.
func (a *App) newToolCommand(p *plugin.Plugin) *cobra.Command {
	opts := &toolOptions{}

	c := &cobra.Command{
		Use:   p.Name + " [args...]",
		Short: p.Help(),
		Long:  fmt.Sprintf("Run the '%s' plugin from %s", p.Name, p.FilePath),
		Args:  cobra.ArbitraryArgs,
		// Errors surface once, through the dispatching root command.
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTool(cmd, p, opts, args)
		},
	}

	// Flag parsing stops at the first positional token; everything after it
	// is forwarded to the resolver untouched.
	c.Flags().SetInterspersed(false)
	c.Flags().BoolVar(&opts.ignoreCmd, "ignore-cmd", false, "run the trailing arguments instead of the descriptor command")
	c.Flags().BoolVar(&opts.print, "print", false, "print the resolved descriptor as YAML and exit")
	c.Flags().BoolVar(&opts.runDetached, "run-detached", false, "launch detached from the current session")
	c.Flags().StringVar(&opts.forceTime, "force-rez-env-time", "", "resolve the environment at the given time")

	return c
}

// runTool executes one plugin invocation: print short-circuits before
// anything else, then the resolver command is assembled and run.
func (a *App) runTool(cmd *cobra.Command, p *plugin.Plugin, opts *toolOptions, args []string) error {
	if opts.print {
		desc, err := p.Describe()
		if err != nil {
			return err
		}
		fmt.Fprint(a.stdout, desc)
		return nil
	}

	if _, err := a.Rez.Path(); err != nil {
		rendered, _ := issue.Get(issue.ResolverNotFoundId).Render("dark")
		fmt.Fprint(a.stderr, rendered)
		return err
	}

	rc := rez.NewCommand(p).
		WithPrefix(a.Rez.Prefix()).
		WithArgs(args).
		WithIgnoreCmd(opts.ignoreCmd)
	if opts.runDetached {
		rc.WithDetached(true)
	}
	if cmd.Flags().Changed("force-rez-env-time") {
		rc.WithOpt(rez.TimeOpt, opts.forceTime)
	}

	if verbose {
		fmt.Fprintf(a.stderr, "%s %s\n", SuccessStyle.Render("→"), CmdStyle.Render(rc.String()))
	}

	result := a.Runner.Run(cmd.Context(), rc)
	if result.Error != nil {
		if errors.Is(result.Error, rez.ErrSpawnFailed) {
			rendered, _ := issue.Get(issue.ResolverSpawnFailedId).Render("dark")
			fmt.Fprint(a.stderr, rendered)
		}
		fmt.Fprintf(a.stderr, "\n%s %v\n", ErrorStyle.Render("Error:"), result.Error)
		return result.Error
	}

	if !result.ExitCode.IsSuccess() {
		if verbose {
			fmt.Fprintf(a.stderr, "%s plugin exited with code %s\n", WarningStyle.Render("!"), result.ExitCode)
		}
		return &ExitError{Code: result.ExitCode}
	}

	return nil
}
