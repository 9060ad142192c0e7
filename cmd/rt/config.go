// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"rez-tools/internal/config"
	"rez-tools/internal/issue"

	"github.com/spf13/cobra"
)

// newConfigCommand creates the `rt config` command tree.
// Subcommands that read configuration use the App's ConfigProvider.
func newConfigCommand(app *App) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage rez-tools configuration",
		Long: `Manage rez-tools configuration.

Configuration is stored in:
  - Linux: ~/.config/rez-tools/config.toml
  - macOS: ~/Library/Application Support/rez-tools/config.toml
  - Windows: %APPDATA%\rez-tools\config.toml

The REZ_TOOL_CONFIG environment variable names an explicit config file,
and individual keys can be overridden through REZTOOLS_* variables.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(cmd.Context(), app)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return initConfigFile(app)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfigPath(app)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "convert <legacy.py> [output.toml]",
		Short: "Convert a legacy Python config to TOML",
		Long: `Convert a legacy Python-syntax rez-tools config to the TOML format.

Older deployments configured the dispatcher through a small Python module
assigning tool_paths and extension. This reads that assignment subset
(nothing is executed) and emits the equivalent TOML, either to the given
output file or to stdout.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := ""
			if len(args) == 2 {
				output = args[1]
			}
			return convertLegacyConfig(app, args[0], output)
		},
	})

	return cfgCmd
}

func showConfig(ctx context.Context, app *App) error {
	cfg, err := app.Config.Load(ctx, config.LoadOptions{ConfigFilePath: cfgFile})
	if err != nil {
		rendered, _ := issue.Get(issue.ConfigLoadFailedId).Render("dark")
		fmt.Fprint(app.stderr, rendered)
		return err
	}

	// Style definitions using shared color palette
	headerStyle := TitleStyle
	keyStyle := CmdStyle
	valueStyle := SuccessStyle

	fmt.Fprintln(app.stdout, headerStyle.Render("Current Configuration"))
	fmt.Fprintln(app.stdout)

	path, exists, pathErr := config.ActiveFile(config.LoadOptions{ConfigFilePath: cfgFile})
	if pathErr == nil && exists {
		fmt.Fprintf(app.stdout, "%s: %s\n", keyStyle.Render("Config file"), path)
	} else {
		fmt.Fprintf(app.stdout, "%s: %s\n", keyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	}
	fmt.Fprintln(app.stdout)

	fmt.Fprintf(app.stdout, "%s: %s\n", keyStyle.Render("extension"), valueStyle.Render(cfg.Extension))

	fmt.Fprintln(app.stdout)
	fmt.Fprintf(app.stdout, "%s:\n", keyStyle.Render("tool_paths"))
	if len(cfg.ToolPaths) == 0 {
		fmt.Fprintf(app.stdout, "  %s\n", SubtitleStyle.Render("(none configured)"))
	} else {
		for _, p := range cfg.ToolPaths {
			fmt.Fprintf(app.stdout, "  - %s\n", valueStyle.Render(p))
		}
	}

	return nil
}

// initConfigFile writes the default config file. Init always targets the
// default location, regardless of REZ_TOOL_CONFIG or --config.
func initConfigFile(app *App) error {
	cfgDir, err := config.ConfigDir()
	if err != nil {
		return err
	}
	existed := fileExistsCheck(filepath.Join(cfgDir, config.ConfigFileName+"."+config.ConfigFileExt))

	cfgPath, err := config.CreateDefaultConfig()
	if err != nil {
		return fmt.Errorf("failed to create config: %w", err)
	}

	if existed {
		fmt.Fprintf(app.stdout, "%s Configuration already exists at %s\n", WarningStyle.Render("!"), cfgPath)
		return nil
	}

	fmt.Fprintf(app.stdout, "%s Created default configuration at %s\n", SuccessStyle.Render("✓"), cfgPath)
	return nil
}

func showConfigPath(app *App) error {
	cfgDir, err := config.ConfigDir()
	if err != nil {
		return err
	}

	path, exists, err := config.ActiveFile(config.LoadOptions{ConfigFilePath: cfgFile})
	if err != nil {
		return err
	}

	fmt.Fprintf(app.stdout, "Config directory: %s\n", cfgDir)
	if exists {
		fmt.Fprintf(app.stdout, "Config file: %s\n", path)
	} else {
		fmt.Fprintf(app.stdout, "Config file: %s %s\n", path, SubtitleStyle.Render("(not created yet)"))
	}

	return nil
}

// convertLegacyConfig converts a legacy Python-syntax config to TOML. With an
// output path the result is written there; otherwise it goes to stdout.
func convertLegacyConfig(app *App, input, output string) error {
	cfg, err := config.ConvertLegacy(input)
	if err != nil {
		return issue.NewErrorContext().
			WithOperation("convert legacy configuration").
			WithResource(input).
			WithSuggestion("Check that the file assigns tool_paths and/or extension").
			WithSuggestion("Quoted strings are read as written; expressions are not evaluated").
			Wrap(err).
			BuildError()
	}

	if output == "" {
		content, err := config.GenerateTOML(cfg)
		if err != nil {
			return err
		}
		fmt.Fprint(app.stdout, content)
		return nil
	}

	if err := config.Save(cfg, output); err != nil {
		return err
	}

	fmt.Fprintf(app.stdout, "%s Converted %s to %s\n", SuccessStyle.Render("✓"), input, output)
	fmt.Fprintf(app.stdout, "You can now use: export %s=%s\n", config.ConfigEnvVar, output)
	return nil
}

// fileExistsCheck checks if a file exists and is not a directory.
func fileExistsCheck(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}
