// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"rez-tools/internal/config"
	"rez-tools/internal/discovery"
	"rez-tools/internal/issue"
	"rez-tools/internal/plugin"
	"rez-tools/internal/rez"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

type (
	// App wires CLI services and shared dependencies. It is the composition
	// root for the CLI layer: every Cobra handler receives an App reference
	// and delegates through its service interfaces instead of touching
	// package state.
	App struct {
		Config config.Provider
		// Plugins is the discovered-plugin source. Left nil, it is built
		// from the loaded configuration on first use.
		Plugins PluginSource
		Runner  CommandRunner
		Rez     ResolverLocator

		stdout io.Writer
		stderr io.Writer

		cfgOnce sync.Once
		cfg     *config.Config
		cfgErr  error

		sourceOnce sync.Once
		sourceErr  error

		toolsMu sync.Mutex
		tools   map[string]*cobra.Command
	}

	// Dependencies defines the injection points for building an App. Nil
	// fields are replaced with production defaults by NewApp. Tests supply
	// fakes to isolate specific service behavior.
	Dependencies struct {
		Config  config.Provider
		Plugins PluginSource
		Runner  CommandRunner
		Rez     ResolverLocator
		Stdout  io.Writer
		Stderr  io.Writer
	}

	// DispatchRequest captures one plugin invocation from the CLI layer.
	DispatchRequest struct {
		// Name is the plugin name as typed by the user.
		Name string
		// Args are the tokens following the plugin name, handed verbatim
		// to the synthesized command's flag parser.
		Args []string
		// ConfigPath is the explicit --config flag value, empty for the
		// default lookup chain.
		ConfigPath string
	}

	// PluginSource resolves and lists discovered plugins. Satisfied by
	// *discovery.Registry.
	PluginSource interface {
		Resolve(name string) (*plugin.Plugin, error)
		List(filter discovery.Filter) []*plugin.Plugin
		Names() []string
	}

	// CommandRunner executes an assembled resolver command. Satisfied by
	// *rez.Executor.
	CommandRunner interface {
		Run(ctx context.Context, c *rez.Command) *rez.Result
	}

	// ResolverLocator reports where the resolver binary lives and the
	// invocation prefix derived from it. Satisfied by *rez.Locator.
	ResolverLocator interface {
		Path() (string, error)
		Prefix() []string
	}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) *App {
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	if deps.Rez == nil {
		deps.Rez = rez.NewLocator()
	}
	if deps.Runner == nil {
		deps.Runner = rez.NewExecutor(log.Default())
	}

	return &App{
		Config:  deps.Config,
		Plugins: deps.Plugins,
		Runner:  deps.Runner,
		Rez:     deps.Rez,
		stdout:  deps.Stdout,
		stderr:  deps.Stderr,
	}
}

// Dispatch resolves a plugin name against the discovered plugins and runs
// its synthesized subcommand with the remaining arguments.
func (a *App) Dispatch(ctx context.Context, req DispatchRequest) error {
	source, err := a.pluginSource(ctx, req.ConfigPath)
	if err != nil {
		return err
	}

	p, err := source.Resolve(req.Name)
	if err != nil {
		rendered, _ := issue.Get(issue.PluginNotFoundId).Render("dark")
		fmt.Fprint(a.stderr, rendered)
		return err
	}

	tool := a.tool(p)
	// SetArgs(nil) would make Cobra fall back to os.Args; always hand it a
	// concrete slice.
	tool.SetArgs(append([]string{}, req.Args...))
	return tool.ExecuteContext(ctx)
}

// effectiveConfig loads configuration once per process and memoizes the
// outcome for every later caller.
func (a *App) effectiveConfig(ctx context.Context, configPath string) (*config.Config, error) {
	a.cfgOnce.Do(func() {
		a.cfg, a.cfgErr = a.loadConfigWithFallback(ctx, configPath)
	})
	return a.cfg, a.cfgErr
}

// loadConfigWithFallback loads configuration via the provider. An explicitly
// requested file must load cleanly; the default lookup chain degrades to
// built-in defaults with a warning so fresh installs stay operational.
func (a *App) loadConfigWithFallback(ctx context.Context, configPath string) (*config.Config, error) {
	cfg, err := a.Config.Load(ctx, config.LoadOptions{ConfigFilePath: configPath})
	if err == nil {
		return cfg, nil
	}

	if configPath != "" {
		return nil, err
	}

	fmt.Fprintln(a.stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, verbose))
	return config.DefaultConfig(), nil
}

// pluginSource returns the plugin registry, building it from the loaded
// configuration on first use. The underlying directory scan runs at most
// once per process.
func (a *App) pluginSource(ctx context.Context, configPath string) (PluginSource, error) {
	a.sourceOnce.Do(func() {
		if a.Plugins != nil {
			return
		}
		cfg, err := a.effectiveConfig(ctx, configPath)
		if err != nil {
			a.sourceErr = err
			return
		}
		a.Plugins = discovery.NewRegistry(discovery.New(cfg))
	})

	if a.sourceErr != nil {
		return nil, a.sourceErr
	}
	return a.Plugins, nil
}
