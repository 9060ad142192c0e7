// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"

	"rez-tools/internal/issue"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

// newListCommand creates the `rt list` command.
func newListCommand(app *App) *cobra.Command {
	var quiet bool

	c := &cobra.Command{
		Use:   "list",
		Short: "List discovered plugins",
		Long: `List every plugin discovered on the configured tool paths.

Plugins are sorted by name. When two tool paths define the same name,
the earlier path wins and only its plugin is shown.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listPlugins(cmd.Context(), app, cfgFile, quiet)
		},
	}

	c.Flags().BoolVarP(&quiet, "quiet", "q", false, "print plugin names only")
	return c
}

// listPlugins prints the discovered plugins to the app's stdout.
func listPlugins(ctx context.Context, app *App, configPath string, quiet bool) error {
	source, err := app.pluginSource(ctx, configPath)
	if err != nil {
		return err
	}

	plugins := source.List(nil)
	if len(plugins) == 0 {
		rendered, _ := issue.Get(issue.NoPluginsFoundId).Render("dark")
		fmt.Fprint(app.stderr, rendered)
		return fmt.Errorf("no plugins found")
	}

	if quiet {
		for _, p := range plugins {
			fmt.Fprintln(app.stdout, p.Name)
		}
		return nil
	}

	// Style for output - derived from shared color constants
	nameStyle := lipgloss.NewStyle().Foreground(ColorHighlight).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(ColorVerbose)
	pathStyle := lipgloss.NewStyle().Foreground(ColorMuted).Italic(true)

	fmt.Fprintln(app.stdout, TitleStyle.Render("Available Plugins"))
	fmt.Fprintln(app.stdout)

	for _, p := range plugins {
		line := fmt.Sprintf("  %s - %s", nameStyle.Render(p.Name), descStyle.Render(p.Help()))
		fmt.Fprintln(app.stdout, line)
		if verbose {
			fmt.Fprintf(app.stdout, "    %s\n", pathStyle.Render(p.FilePath))
		}
	}

	fmt.Fprintln(app.stdout)
	fmt.Fprintln(app.stdout, SubtitleStyle.Render(fmt.Sprintf("%d plugin(s) found", len(plugins))))
	return nil
}
