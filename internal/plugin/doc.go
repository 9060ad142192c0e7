// SPDX-License-Identifier: MPL-2.0

// Package plugin defines the descriptor format for rez tool plugins.
//
// A plugin is declared in a small YAML file (conventionally *.rt) that names
// the packages an environment must provide and the command to run inside that
// environment. Descriptors support single inheritance via inherits_from, with
// child fields overriding the parent's; merging is performed by the discovery
// layer using Merge.
//
// Parsed descriptors are immutable for the lifetime of the process.
package plugin
