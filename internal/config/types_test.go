// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"rez-tools/internal/testutil"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Extension != ".rt" {
		t.Errorf("expected default extension to be .rt, got %s", cfg.Extension)
	}

	if len(cfg.ToolPaths) != 1 {
		t.Fatalf("expected exactly one default tool path, got %v", cfg.ToolPaths)
	}

	if filepath.Base(cfg.ToolPaths[0]) != "packages" {
		t.Errorf("expected default tool path to end in packages, got %s", cfg.ToolPaths[0])
	}
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     Config
		wantErr error
	}{
		{
			name: "valid",
			cfg:  Config{ToolPaths: []string{"/pipeline/tools"}, Extension: ".rt"},
		},
		{
			name: "valid with custom extension",
			cfg:  Config{ToolPaths: []string{"/pipeline/tools"}, Extension: ".tool"},
		},
		{
			name:    "empty extension",
			cfg:     Config{ToolPaths: []string{"/pipeline/tools"}, Extension: ""},
			wantErr: ErrInvalidExtension,
		},
		{
			name:    "extension without dot",
			cfg:     Config{ToolPaths: []string{"/pipeline/tools"}, Extension: "rt"},
			wantErr: ErrInvalidExtension,
		},
		{
			name:    "empty tool path entry",
			cfg:     Config{ToolPaths: []string{"/pipeline/tools", "  "}, Extension: ".rt"},
			wantErr: ErrInvalidToolPath,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Validate() returned error: %v", err)
				}
				return
			}

			if err == nil {
				t.Fatal("Validate() returned nil, want error")
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error should wrap %v, got: %v", tt.wantErr, err)
			}
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("error should wrap ErrInvalidConfig, got: %v", err)
			}
		})
	}
}

func TestConfigValidate_CollectsAllViolations(t *testing.T) {
	t.Parallel()

	cfg := Config{ToolPaths: []string{"", "/ok", "\t"}, Extension: "rt"}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() returned nil, want error")
	}

	var cfgErr *InvalidConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("error should be *InvalidConfigError, got: %T", err)
	}
	if len(cfgErr.FieldErrors) != 3 {
		t.Errorf("expected 3 field errors, got %d: %v", len(cfgErr.FieldErrors), cfgErr.FieldErrors)
	}

	var pathErr *InvalidToolPathError
	if !errors.As(err, &pathErr) {
		t.Fatal("error should carry *InvalidToolPathError")
	}
	if pathErr.Index != 0 {
		t.Errorf("first tool path error should name index 0, got %d", pathErr.Index)
	}
}

func TestInvalidConfigError_Message(t *testing.T) {
	t.Parallel()

	err := &InvalidConfigError{FieldErrors: []error{
		&InvalidExtensionError{Value: "rt"},
		&InvalidToolPathError{Index: 1, Value: ""},
	}}

	msg := err.Error()
	if !strings.Contains(msg, "invalid config") {
		t.Errorf("message should mention invalid config, got: %s", msg)
	}
	if !strings.Contains(msg, `"rt"`) {
		t.Errorf("message should include the offending extension, got: %s", msg)
	}
	if !strings.Contains(msg, "tool_paths[1]") {
		t.Errorf("message should name the offending index, got: %s", msg)
	}
}

func TestNormalizePaths(t *testing.T) {
	home := t.TempDir()
	testutil.SetHomeDir(t, home)

	cfg := Config{
		ToolPaths: []string{
			"~/tools",
			"~",
			filepath.Join("/pipeline", "dept", "..", "tools"),
			"relative/dir",
		},
		Extension: ".rt",
	}

	cfg.NormalizePaths()

	want := []string{
		filepath.Join(home, "tools"),
		home,
		filepath.Join("/pipeline", "tools"),
		filepath.Join("relative", "dir"),
	}
	for i, p := range want {
		if cfg.ToolPaths[i] != p {
			t.Errorf("ToolPaths[%d] = %s, want %s", i, cfg.ToolPaths[i], p)
		}
	}
}
