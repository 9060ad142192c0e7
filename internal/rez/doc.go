// SPDX-License-Identifier: MPL-2.0

// Package rez assembles and executes resolver command lines.
//
// A Command wraps a resolved plugin descriptor plus per-invocation overrides
// and assembles the literal resolver invocation:
//
//	<resolver> env -q [--opt=value ...] <requires...> -- <command>
//
// Assembly is pure: the same descriptor and overrides always produce the same
// argument vector. The Locator finds the resolver executable (REZ_PATH
// override, wrapper install, PATH, well-known locations) once per process,
// and the Executor runs assembled commands either attached (blocking, exit
// code propagated verbatim) or detached (new session, exit code 0 meaning
// "launch acknowledged").
package rez
