// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with TOML as the file format.
//
// Configuration is loaded from the file named by the REZ_TOOL_CONFIG environment
// variable when set, otherwise from <user-config-dir>/rez-tools/config.toml
// (XDG on Linux, ~/Library/Application Support on macOS, %APPDATA% on Windows).
// Individual keys can be overridden through REZTOOLS_* environment variables.
//
// The two settings the dispatcher core consumes are tool_paths, the
// priority-ordered directories scanned for plugin descriptors (index 0 wins
// name collisions), and extension, the descriptor file suffix (default ".rt").
//
// Legacy Python-syntax config files from older deployments can be converted
// with ParseLegacy or the `rt config convert` command.
package config
