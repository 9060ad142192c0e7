// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrNoLegacySettings is returned when a legacy config contains neither
// tool_paths nor extension assignments.
var ErrNoLegacySettings = errors.New("no recognizable settings in legacy config")

// ConvertLegacy reads a legacy Python-syntax config file and returns the
// equivalent Config. Older deployments configured the dispatcher through a
// small Python module assigning tool_paths and extension; this parser covers
// that assignment subset without executing anything.
func ConvertLegacy(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read legacy config %s: %w", path, err)
	}
	return ParseLegacy(string(data))
}

// ParseLegacy parses legacy Python-syntax config content. Supported forms:
//
//	extension = ".rt"
//	tool_paths = ["/pipeline/tools", '/studio/share/tools']
//	tool_paths = [
//	    "/pipeline/tools",
//	    os.path.expanduser("~/packages"),
//	]
//
// Comment lines and unrelated statements are ignored.
func ParseLegacy(content string) (*Config, error) {
	cfg := &Config{Extension: ".rt"}
	sawAssignment := false

	inList := false
	depth := 0

	for _, raw := range strings.Split(content, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !inList && strings.HasPrefix(line, "extension") && strings.Contains(line, "=") {
			if value, ok := stringValue(line); ok {
				cfg.Extension = value
				sawAssignment = true
			}
			continue
		}

		if !inList && strings.HasPrefix(line, "tool_paths") && strings.Contains(line, "=") {
			sawAssignment = true
			open := strings.Index(line, "[")
			if open < 0 {
				continue
			}
			if close := strings.LastIndex(line, "]"); close > open {
				for _, item := range strings.Split(line[open+1:close], ",") {
					if value, ok := stringValue(item); ok {
						cfg.ToolPaths = append(cfg.ToolPaths, value)
					}
				}
				continue
			}
			inList = true
			depth = 1
			continue
		}

		if inList {
			depth += strings.Count(line, "[") - strings.Count(line, "]")
			entry := strings.Trim(line, ",] \t")
			if entry != "" && entry != "[" {
				if value, ok := stringValue(entry); ok {
					cfg.ToolPaths = append(cfg.ToolPaths, value)
				}
			}
			if depth <= 0 {
				inList = false
			}
		}
	}

	if !sawAssignment {
		return nil, ErrNoLegacySettings
	}

	if len(cfg.ToolPaths) == 0 {
		cfg.ToolPaths = DefaultConfig().ToolPaths
	}

	cfg.NormalizePaths()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// stringValue extracts a quoted string from a fragment such as
// `extension = ".rt"`, `'/studio/tools',` or `os.path.expanduser("~/packages")`.
func stringValue(fragment string) (string, bool) {
	s := strings.TrimSpace(fragment)
	if s == "" {
		return "", false
	}

	if eq := strings.Index(s, "="); eq >= 0 && !strings.HasPrefix(s, `"`) && !strings.HasPrefix(s, "'") {
		s = strings.TrimSpace(s[eq+1:])
	}
	s = strings.TrimSuffix(s, ",")

	// Unwrap os.path.expanduser("...") and similar single-argument calls.
	if open := strings.Index(s, "("); open >= 0 && strings.HasSuffix(s, ")") {
		s = strings.TrimSpace(s[open+1 : len(s)-1])
	}

	for _, quote := range []string{`"`, "'"} {
		if strings.HasPrefix(s, quote) && strings.HasSuffix(s, quote) && len(s) >= 2 {
			return s[1 : len(s)-1], true
		}
	}
	return "", false
}
