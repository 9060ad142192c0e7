// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"rez-tools/internal/config"
	"rez-tools/internal/issue"
	"rez-tools/internal/rez"

	"github.com/spf13/cobra"
)

// newDoctorCommand creates the `rt doctor` command.
func newDoctorCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose the rez installation and plugin setup",
		Long: `Diagnose the rez installation and plugin setup.

Reports where the rez resolver was found (or why it was not), which
configuration is in effect, whether the configured tool paths exist, and
how many plugins were discovered. The command is informational and always
exits 0; problems are printed, not returned.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDoctor(cmd.Context(), app)
		},
	}
}

// runDoctor prints the diagnosis report to the app's stdout.
func runDoctor(ctx context.Context, app *App) error {
	keyStyle := CmdStyle
	okMark := SuccessStyle.Render("✓")
	badMark := ErrorStyle.Render("✗")

	fmt.Fprintln(app.stdout, TitleStyle.Render("Resolver"))

	if env := os.Getenv(rez.PathEnvVar); env != "" {
		fmt.Fprintf(app.stdout, "  %s: %s\n", keyStyle.Render(rez.PathEnvVar), env)
	} else {
		fmt.Fprintf(app.stdout, "  %s: %s\n", keyStyle.Render(rez.PathEnvVar), SubtitleStyle.Render("(not set)"))
	}

	resolverOK := false
	if path, err := app.Rez.Path(); err != nil {
		fmt.Fprintf(app.stdout, "  %s: %s %v\n", keyStyle.Render("Executable"), badMark, err)
	} else {
		resolverOK = true
		fmt.Fprintf(app.stdout, "  %s: %s %s\n", keyStyle.Render("Executable"), okMark, path)
		fmt.Fprintf(app.stdout, "  %s: %s\n", keyStyle.Render("Invocation"), strings.Join(app.Rez.Prefix(), " "))
	}

	fmt.Fprintln(app.stdout)
	fmt.Fprintln(app.stdout, TitleStyle.Render("Configuration"))

	if path, exists, err := config.ActiveFile(config.LoadOptions{ConfigFilePath: cfgFile}); err == nil && exists {
		fmt.Fprintf(app.stdout, "  %s: %s\n", keyStyle.Render("Config file"), path)
	} else {
		fmt.Fprintf(app.stdout, "  %s: %s\n", keyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	}

	cfg, err := app.effectiveConfig(ctx, cfgFile)
	if err != nil {
		return err
	}

	fmt.Fprintf(app.stdout, "  %s: %s\n", keyStyle.Render("extension"), cfg.Extension)
	fmt.Fprintf(app.stdout, "  %s:\n", keyStyle.Render("tool_paths"))
	for _, p := range cfg.ToolPaths {
		if dirExists(p) {
			fmt.Fprintf(app.stdout, "    %s %s\n", okMark, p)
		} else {
			fmt.Fprintf(app.stdout, "    %s %s %s\n", badMark, p, SubtitleStyle.Render("(missing)"))
		}
	}

	fmt.Fprintln(app.stdout)
	fmt.Fprintln(app.stdout, TitleStyle.Render("Plugins"))

	source, err := app.pluginSource(ctx, cfgFile)
	if err != nil {
		return err
	}
	count := len(source.List(nil))
	if count == 0 {
		fmt.Fprintf(app.stdout, "  %s no plugins discovered\n", badMark)
	} else {
		fmt.Fprintf(app.stdout, "  %s %d plugin(s) discovered\n", okMark, count)
	}

	if !resolverOK {
		fmt.Fprintln(app.stdout)
		rendered, _ := issue.Get(issue.ResolverNotFoundId).Render("dark")
		fmt.Fprint(app.stdout, rendered)
	}

	return nil
}

// dirExists checks if a path exists and is a directory.
func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
