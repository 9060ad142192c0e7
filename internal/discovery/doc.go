// SPDX-License-Identifier: MPL-2.0

// Package discovery finds plugin descriptors on the configured tool paths
// and exposes them through a lazily populated registry.
//
// Tool paths are scanned from lowest priority to highest, so a plugin found
// on an earlier tool_paths entry replaces one with the same name found on a
// later entry. Scanning is not recursive: only files sitting directly inside
// a tool path and carrying the configured extension are considered. A
// descriptor that fails to parse or validate is logged and skipped; it never
// aborts the scan.
//
// Descriptors using inherits_from are resolved after the rest of their tool
// path has been scanned, so a parent may live in the same directory or on
// any lower-priority path. Chains that end in an unknown parent or loop back
// on themselves are dropped with a warning.
package discovery
