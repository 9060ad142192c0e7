// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for rt.
//
// This package implements the Cobra command hierarchy for the rt CLI:
// the root command dispatches bare plugin names to subcommands synthesized
// from discovered descriptors, while the static subcommands cover plugin
// listing, configuration management, environment diagnosis, and shell
// completion.
package cmd
