// SPDX-License-Identifier: MPL-2.0

package discovery

import (
	"errors"
	"strings"
	"testing"

	"rez-tools/internal/plugin"
)

func TestRegistry_Resolve(t *testing.T) {
	dir := t.TempDir()
	writeDescriptor(t, dir, "maya.rt", `
requires:
  - maya-2024
command: maya
`)

	reg := NewRegistry(newTestScanner(dir))

	p, err := reg.Resolve("maya")
	if err != nil {
		t.Fatalf("Resolve() returned error: %v", err)
	}
	if p.Name != "maya" {
		t.Errorf("Resolve() returned plugin %q, want maya", p.Name)
	}
}

func TestRegistry_ResolveUnknown(t *testing.T) {
	reg := NewRegistry(newTestScanner(t.TempDir()))

	_, err := reg.Resolve("ghost")
	if err == nil {
		t.Fatal("Resolve() of an unknown name should fail")
	}
	if !errors.Is(err, ErrUnknownPlugin) {
		t.Errorf("error should wrap ErrUnknownPlugin, got: %v", err)
	}

	var unknownErr *UnknownPluginError
	if !errors.As(err, &unknownErr) {
		t.Fatalf("error should be *UnknownPluginError, got: %T", err)
	}
	if unknownErr.Name != "ghost" {
		t.Errorf("error names plugin %q, want ghost", unknownErr.Name)
	}
}

func TestRegistry_ListSorted(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"zbrush", "arnold", "maya"} {
		writeDescriptor(t, dir, name+".rt", `
requires:
  - pkg
command: `+name+"\n")
	}

	reg := NewRegistry(newTestScanner(dir))

	all := reg.List(nil)
	if len(all) != 3 {
		t.Fatalf("List(nil) returned %d plugins, want 3", len(all))
	}
	want := []string{"arnold", "maya", "zbrush"}
	for i, p := range all {
		if p.Name != want[i] {
			t.Errorf("List(nil)[%d] = %q, want %q", i, p.Name, want[i])
		}
	}
}

func TestRegistry_ListFilter(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"maya", "maya_beta", "nuke"} {
		writeDescriptor(t, dir, name+".rt", `
requires:
  - pkg
command: `+name+"\n")
	}

	reg := NewRegistry(newTestScanner(dir))

	mayaOnly := reg.List(func(p *plugin.Plugin) bool {
		return strings.HasPrefix(p.Name, "maya")
	})
	if len(mayaOnly) != 2 {
		t.Fatalf("filtered List() returned %d plugins, want 2", len(mayaOnly))
	}
	for _, p := range mayaOnly {
		if !strings.HasPrefix(p.Name, "maya") {
			t.Errorf("filter let through %q", p.Name)
		}
	}
}

func TestRegistry_Names(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"nuke", "arnold"} {
		writeDescriptor(t, dir, name+".rt", `
requires:
  - pkg
command: `+name+"\n")
	}

	reg := NewRegistry(newTestScanner(dir))

	names := reg.Names()
	if len(names) != 2 || names[0] != "arnold" || names[1] != "nuke" {
		t.Errorf("Names() = %v, want [arnold nuke]", names)
	}
}

func TestRegistry_PopulatesOnce(t *testing.T) {
	dir := t.TempDir()
	writeDescriptor(t, dir, "maya.rt", `
requires:
  - pkg
command: maya
`)

	reg := NewRegistry(newTestScanner(dir))

	if _, err := reg.Resolve("maya"); err != nil {
		t.Fatalf("Resolve() returned error: %v", err)
	}

	// Descriptors appearing after the first access are not picked up.
	writeDescriptor(t, dir, "late.rt", `
requires:
  - pkg
command: late
`)

	if _, err := reg.Resolve("late"); !errors.Is(err, ErrUnknownPlugin) {
		t.Errorf("registry should not rescan after first access, got: %v", err)
	}
	if got := len(reg.List(nil)); got != 1 {
		t.Errorf("List(nil) returned %d plugins, want the original 1", got)
	}
}
