// SPDX-License-Identifier: MPL-2.0

package plugin

import (
	"reflect"
	"testing"
)

func TestMerge_ChildOverrides(t *testing.T) {
	detached := true
	parent := &Plugin{
		Name:      "dcc",
		Command:   "run-dcc",
		Requires:  []string{"core-1", "python-3.11"},
		ShortHelp: "Base DCC launcher.",
		RezOpts:   map[string]string{"time": "latest", "patch": "on"},
	}
	child := &Plugin{
		Name:         "maya",
		Command:      "maya",
		Requires:     []string{"maya-2024", "python-3.11"},
		InheritsFrom: "dcc",
		RunDetached:  &detached,
		RezOpts:      map[string]string{"patch": "off"},
		FilePath:     "/pipeline/tools/maya.rt",
	}

	got := Merge(child, parent)

	if got.Name != "maya" {
		t.Errorf("Name = %q, want child name", got.Name)
	}
	if got.Command != "maya" {
		t.Errorf("Command = %q, want child command", got.Command)
	}
	wantRequires := []string{"core-1", "python-3.11", "maya-2024"}
	if !reflect.DeepEqual(got.Requires, wantRequires) {
		t.Errorf("Requires = %v, want parent order plus deduped child additions %v", got.Requires, wantRequires)
	}
	if got.ShortHelp != "Base DCC launcher." {
		t.Errorf("ShortHelp = %q, want inherited help", got.ShortHelp)
	}
	if !got.Detached() {
		t.Error("Detached() = false, want child's explicit true")
	}
	if got.RezOpts["time"] != "latest" || got.RezOpts["patch"] != "off" {
		t.Errorf("RezOpts = %v, want parent keys with child overrides", got.RezOpts)
	}
	if got.InheritsFrom != "" {
		t.Errorf("InheritsFrom = %q, want cleared after merge", got.InheritsFrom)
	}
	if got.FilePath != child.FilePath {
		t.Errorf("FilePath = %q, want child path", got.FilePath)
	}
}

func TestMerge_ParentFillsGaps(t *testing.T) {
	detached := true
	parent := &Plugin{
		Name:        "dcc",
		Command:     "run-dcc",
		Requires:    []string{"core-1"},
		ShortHelp:   "Base DCC launcher.",
		RunDetached: &detached,
	}
	child := &Plugin{
		Name:         "nuke",
		InheritsFrom: "dcc",
		Requires:     []string{"nuke-15"},
	}

	got := Merge(child, parent)

	if got.Command != "run-dcc" {
		t.Errorf("Command = %q, want inherited command", got.Command)
	}
	if !got.Detached() {
		t.Error("Detached() = false, want inherited true when child leaves it unset")
	}
	if got.ShortHelp != "Base DCC launcher." {
		t.Errorf("ShortHelp = %q, want inherited", got.ShortHelp)
	}
}

func TestMerge_ExplicitFalseBeatsParentTrue(t *testing.T) {
	parentDetached := true
	childDetached := false
	parent := &Plugin{Name: "dcc", Command: "run-dcc", Requires: []string{"core-1"}, RunDetached: &parentDetached}
	child := &Plugin{Name: "nuke", InheritsFrom: "dcc", Requires: []string{"nuke-15"}, RunDetached: &childDetached}

	if got := Merge(child, parent); got.Detached() {
		t.Error("Detached() = true, want child's explicit false to win")
	}
}

func TestMerge_InputsNotMutated(t *testing.T) {
	parent := &Plugin{Name: "dcc", Command: "run-dcc", Requires: []string{"core-1"}}
	child := &Plugin{Name: "nuke", InheritsFrom: "dcc", Requires: []string{"nuke-15"}}

	_ = Merge(child, parent)

	if child.Command != "" || child.InheritsFrom != "dcc" {
		t.Error("Merge() mutated the child descriptor")
	}
	if len(parent.Requires) != 1 {
		t.Error("Merge() mutated the parent requires")
	}
}
