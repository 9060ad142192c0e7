// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"rez-tools/internal/config"
	"rez-tools/internal/testutil"
)

// setTestConfigHome redirects every platform config-dir source to a temp
// directory so tests never touch the real user configuration. The --config
// global is cleared for the duration of the test.
func setTestConfigHome(t *testing.T) string {
	t.Helper()

	tmpDir := t.TempDir()
	testutil.SetHomeDir(t, tmpDir)
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("APPDATA", filepath.Join(tmpDir, "AppData", "Roaming"))
	t.Setenv(config.ConfigEnvVar, "")

	orig := cfgFile
	cfgFile = ""
	t.Cleanup(func() { cfgFile = orig })

	return tmpDir
}

func TestShowConfig(t *testing.T) {
	setTestConfigHome(t)

	provider := &fakeProvider{cfg: &config.Config{
		ToolPaths: []string{"/pipeline/tools", "/studio/share/tools"},
		Extension: ".rt",
	}}
	app, stdout, _ := newTestApp(t, Dependencies{Config: provider})

	if err := showConfig(context.Background(), app); err != nil {
		t.Fatalf("showConfig() returned error: %v", err)
	}

	out := stdout.String()
	for _, want := range []string{
		"Current Configuration",
		"(using defaults)",
		".rt",
		"/pipeline/tools",
		"/studio/share/tools",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("showConfig() output missing %q:\n%s", want, out)
		}
	}
}

func TestShowConfig_NamesActiveFile(t *testing.T) {
	setTestConfigHome(t)

	cfgPath := filepath.Join(t.TempDir(), "studio.toml")
	testutil.MustWriteFile(t, cfgPath, `extension = ".rt"`+"\n")
	t.Setenv(config.ConfigEnvVar, cfgPath)

	provider := &fakeProvider{cfg: &config.Config{ToolPaths: []string{"/x"}, Extension: ".rt"}}
	app, stdout, _ := newTestApp(t, Dependencies{Config: provider})

	if err := showConfig(context.Background(), app); err != nil {
		t.Fatalf("showConfig() returned error: %v", err)
	}

	if !strings.Contains(stdout.String(), cfgPath) {
		t.Errorf("showConfig() should name the active config file %s:\n%s", cfgPath, stdout.String())
	}
}

func TestShowConfig_LoadFailure(t *testing.T) {
	setTestConfigHome(t)

	provider := &fakeProvider{err: errors.New("bad toml")}
	app, _, stderr := newTestApp(t, Dependencies{Config: provider})

	if err := showConfig(context.Background(), app); err == nil {
		t.Fatal("showConfig() should surface the load failure")
	}
	if stderr.Len() == 0 {
		t.Error("expected the config-load-failed issue card on stderr")
	}
}

func TestShowConfigPath(t *testing.T) {
	setTestConfigHome(t)

	app, stdout, _ := newTestApp(t, Dependencies{})

	if err := showConfigPath(app); err != nil {
		t.Fatalf("showConfigPath() returned error: %v", err)
	}

	out := stdout.String()
	if !strings.Contains(out, "Config directory:") || !strings.Contains(out, "Config file:") {
		t.Errorf("showConfigPath() output incomplete:\n%s", out)
	}
	if !strings.Contains(out, "(not created yet)") {
		t.Errorf("showConfigPath() should flag a missing config file:\n%s", out)
	}
}

func TestInitConfigFile(t *testing.T) {
	setTestConfigHome(t)

	app, stdout, _ := newTestApp(t, Dependencies{})

	if err := initConfigFile(app); err != nil {
		t.Fatalf("initConfigFile() returned error: %v", err)
	}
	if !strings.Contains(stdout.String(), "Created default configuration") {
		t.Errorf("initConfigFile() output = %q", stdout.String())
	}

	cfgDir, err := config.ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir() returned error: %v", err)
	}
	cfgPath := filepath.Join(cfgDir, config.ConfigFileName+"."+config.ConfigFileExt)
	if !fileExistsCheck(cfgPath) {
		t.Errorf("config file was not created at %s", cfgPath)
	}

	// A second init must not clobber the existing file.
	stdout.Reset()
	if err := initConfigFile(app); err != nil {
		t.Fatalf("second initConfigFile() returned error: %v", err)
	}
	if !strings.Contains(stdout.String(), "already exists") {
		t.Errorf("second initConfigFile() output = %q, want an already-exists notice", stdout.String())
	}
}

func TestConvertLegacyConfig_ToStdout(t *testing.T) {
	setTestConfigHome(t)

	legacy := filepath.Join(t.TempDir(), "reztoolsconfig.py")
	testutil.MustWriteFile(t, legacy, `
# studio dispatcher settings
extension = ".rt"
tool_paths = [
    "/pipeline/tools",
    os.path.expanduser("~/packages"),
]
`)

	app, stdout, _ := newTestApp(t, Dependencies{})

	if err := convertLegacyConfig(app, legacy, ""); err != nil {
		t.Fatalf("convertLegacyConfig() returned error: %v", err)
	}

	out := stdout.String()
	for _, want := range []string{"tool_paths", "extension", "/pipeline/tools"} {
		if !strings.Contains(out, want) {
			t.Errorf("converted TOML missing %q:\n%s", want, out)
		}
	}
}

func TestConvertLegacyConfig_ToFile(t *testing.T) {
	setTestConfigHome(t)

	dir := t.TempDir()
	legacy := filepath.Join(dir, "reztoolsconfig.py")
	testutil.MustWriteFile(t, legacy, `tool_paths = ["/pipeline/tools"]`+"\n")
	output := filepath.Join(dir, "config.toml")

	app, stdout, _ := newTestApp(t, Dependencies{})

	if err := convertLegacyConfig(app, legacy, output); err != nil {
		t.Fatalf("convertLegacyConfig() returned error: %v", err)
	}

	if !fileExistsCheck(output) {
		t.Fatalf("converted config was not written to %s", output)
	}
	if !strings.Contains(stdout.String(), config.ConfigEnvVar) {
		t.Error("output should mention the REZ_TOOL_CONFIG activation hint")
	}

	// The written file loads back as valid configuration.
	loaded, err := config.NewProvider().Load(context.Background(), config.LoadOptions{ConfigFilePath: output})
	if err != nil {
		t.Fatalf("converted config failed to load: %v", err)
	}
	if len(loaded.ToolPaths) != 1 || loaded.ToolPaths[0] != filepath.Clean("/pipeline/tools") {
		t.Errorf("ToolPaths = %v, want [/pipeline/tools]", loaded.ToolPaths)
	}
}

func TestConvertLegacyConfig_Unrecognized(t *testing.T) {
	setTestConfigHome(t)

	legacy := filepath.Join(t.TempDir(), "notes.py")
	testutil.MustWriteFile(t, legacy, "print('hello')\n")

	app, _, _ := newTestApp(t, Dependencies{})

	err := convertLegacyConfig(app, legacy, "")
	if !errors.Is(err, config.ErrNoLegacySettings) {
		t.Errorf("convertLegacyConfig() error = %v, want ErrNoLegacySettings", err)
	}
}
