// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"rez-tools/internal/issue"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// verbose enables verbose output
	verbose bool
	// cfgFile allows specifying a custom config file
	cfgFile string

	// defaultApp is the production service wiring shared by every command.
	defaultApp = NewApp(Dependencies{})

	// rootCmd represents the base command when called without any subcommands.
	// Bare plugin names fall through to it and are dispatched to synthesized
	// subcommands.
	rootCmd = &cobra.Command{
		Use:   "rt [plugin] [args...]",
		Short: "A plugin command dispatcher for rez",
		Long: TitleStyle.Render("rt") + SubtitleStyle.Render(" - A plugin command dispatcher for rez") + `

rt turns plugin descriptors (.rt files) found on your configured tool
paths into subcommands. Each subcommand resolves its required packages
through rez and runs the plugin's command inside that environment.

` + SubtitleStyle.Render("Quick Start:") + `
  1. Drop a <name>.rt descriptor into one of your tool paths
  2. Check it shows up with: rt list
  3. Run it with: rt <name>

` + SubtitleStyle.Render("Examples:") + `
  rt list                     List all available plugins
  rt maya                     Launch the 'maya' plugin
  rt maya --print             Show the resolved descriptor as YAML
  rt maya --ignore-cmd bash   Open a shell in maya's environment
  rt config show              Show current configuration
  rt doctor                   Check the rez installation`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return defaultApp.Dispatch(cmd.Context(), DispatchRequest{
				Name:       args[0],
				Args:       args[1:],
				ConfigPath: cfgFile,
			})
		},
		ValidArgsFunction: completePlugins,
	}
)

func init() {
	cobra.OnInitialize(initRootConfig)

	// Global flags. Interspersed parsing is disabled so that flags after a
	// plugin name are handed to the synthesized subcommand untouched.
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/rez-tools/config.toml)")
	rootCmd.Flags().SetInterspersed(false)

	// Add subcommands
	rootCmd.AddCommand(newListCommand(defaultApp))
	rootCmd.AddCommand(newConfigCommand(defaultApp))
	rootCmd.AddCommand(newDoctorCommand(defaultApp))
	rootCmd.AddCommand(newCompletionCommand())
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	// Use fang.Execute for enhanced Cobra styling
	// Pass version via fang.WithVersion() since fang overrides rootCmd.Version
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(int(exitErr.Code))
		}
		os.Exit(1)
	}
}

// initRootConfig applies global flag state before any command runs.
func initRootConfig() {
	if verbose {
		log.SetLevel(log.DebugLevel)
	}
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}

// completePlugins offers discovered plugin names as completions for the
// root command's first argument.
func completePlugins(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) != 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	source, err := defaultApp.pluginSource(cmd.Context(), cfgFile)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	var completions []string
	for _, p := range source.List(nil) {
		if strings.HasPrefix(p.Name, toComplete) {
			completions = append(completions, p.Name+"\t"+p.Help())
		}
	}
	return completions, cobra.ShellCompDirectiveNoFileComp
}
