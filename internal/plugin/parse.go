// SPDX-License-Identifier: MPL-2.0

package plugin

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Parse reads one descriptor file and decodes it into a Plugin.
// The plugin name defaults to the file's base name without its extension.
// Parse does not validate; callers decide whether a name-only check or a
// full validation is appropriate.
func Parse(path string) (*Plugin, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read descriptor %s: %w", path, err)
	}
	return parseBytes(data, path)
}

// parseBytes decodes descriptor content, applying the name default from path.
func parseBytes(data []byte, path string) (*Plugin, error) {
	var p Plugin
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse descriptor %s: %w", path, err)
	}
	if p.Name == "" {
		base := filepath.Base(path)
		p.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	p.FilePath = path
	return &p, nil
}
