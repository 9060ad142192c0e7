// SPDX-License-Identifier: MPL-2.0

package discovery

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"rez-tools/internal/plugin"
)

// ErrUnknownPlugin is the sentinel error wrapped by UnknownPluginError.
var ErrUnknownPlugin = errors.New("unknown plugin")

// UnknownPluginError is returned by Resolve when no discovered plugin
// carries the requested name. It wraps ErrUnknownPlugin for errors.Is()
// compatibility.
type UnknownPluginError struct {
	Name string
}

// Error implements the error interface.
func (e *UnknownPluginError) Error() string {
	return fmt.Sprintf("plugin %q is not registered", e.Name)
}

// Unwrap returns ErrUnknownPlugin so callers can use errors.Is for programmatic detection.
func (e *UnknownPluginError) Unwrap() error { return ErrUnknownPlugin }

// Filter selects a subset of plugins in List.
type Filter func(*plugin.Plugin) bool

// Registry is a lazily populated, name-keyed view of the discovered plugins.
// The underlying scan runs at most once, on first access, so constructing a
// Registry is free until somebody actually needs plugins.
type Registry struct {
	scanner *Scanner

	once    sync.Once
	plugins map[string]*plugin.Plugin
}

// NewRegistry creates a Registry over the given scanner.
func NewRegistry(scanner *Scanner) *Registry {
	return &Registry{scanner: scanner}
}

func (r *Registry) populate() {
	r.plugins = r.scanner.Scan()
}

// Resolve returns the plugin registered under name.
func (r *Registry) Resolve(name string) (*plugin.Plugin, error) {
	r.once.Do(r.populate)

	p, ok := r.plugins[name]
	if !ok {
		return nil, &UnknownPluginError{Name: name}
	}
	return p, nil
}

// List returns the discovered plugins sorted by name. A nil filter keeps
// everything.
func (r *Registry) List(filter Filter) []*plugin.Plugin {
	r.once.Do(r.populate)

	out := make([]*plugin.Plugin, 0, len(r.plugins))
	for _, p := range r.plugins {
		if filter == nil || filter(p) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Names returns the sorted names of every discovered plugin.
func (r *Registry) Names() []string {
	r.once.Do(r.populate)

	names := make([]string, 0, len(r.plugins))
	for name := range r.plugins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
