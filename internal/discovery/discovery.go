// SPDX-License-Identifier: MPL-2.0

package discovery

import (
	"os"
	"path/filepath"
	"strings"

	"rez-tools/internal/config"
	"rez-tools/internal/plugin"

	"github.com/charmbracelet/log"
)

// Scanner finds plugin descriptors on the configured tool paths.
type Scanner struct {
	cfg    *config.Config
	logger *log.Logger
}

// New creates a Scanner for the given configuration.
func New(cfg *config.Config) *Scanner {
	return &Scanner{
		cfg:    cfg,
		logger: log.Default(),
	}
}

// Scan walks the configured tool paths and returns every valid plugin keyed
// by name. Paths are visited from lowest priority to highest so that
// tool_paths[0] wins name collisions. Unreadable directories and invalid
// descriptors are logged and skipped, never aborting the scan.
func (s *Scanner) Scan() map[string]*plugin.Plugin {
	plugins := make(map[string]*plugin.Plugin)

	for i := len(s.cfg.ToolPaths) - 1; i >= 0; i-- {
		s.scanPath(s.cfg.ToolPaths[i], plugins)
	}

	return plugins
}

// scanPath reads the descriptors sitting directly inside dir into plugins.
// Descriptors using inherits_from are held back and resolved once the rest
// of the directory has been read, so a parent may live in the same directory
// or on a previously scanned tool path.
func (s *Scanner) scanPath(dir string, plugins map[string]*plugin.Plugin) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		s.logger.Warn("skipping tool path", "path", dir, "error", err)
		return
	}

	entries, err := os.ReadDir(absDir)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.Debug("tool path does not exist", "path", absDir)
		} else {
			s.logger.Warn("skipping unreadable tool path", "path", absDir, "error", err)
		}
		return
	}

	var deferred []*plugin.Plugin
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), s.cfg.Extension) {
			continue
		}

		path := filepath.Join(absDir, entry.Name())
		p, err := plugin.Parse(path)
		if err != nil {
			s.logger.Warn("skipping descriptor", "path", path, "error", err)
			continue
		}
		if err := p.ValidateName(); err != nil {
			s.logger.Warn("skipping descriptor", "path", path, "error", err)
			continue
		}

		if p.InheritsFrom != "" {
			deferred = append(deferred, p)
			continue
		}

		s.register(p, plugins)
	}

	s.resolveDeferred(deferred, plugins)
}

// register validates p and adds it to plugins, replacing any lower-priority
// plugin with the same name.
func (s *Scanner) register(p *plugin.Plugin, plugins map[string]*plugin.Plugin) {
	if err := p.Validate(); err != nil {
		s.logger.Warn("skipping descriptor", "path", p.FilePath, "error", err)
		return
	}
	if prev, ok := plugins[p.Name]; ok {
		s.logger.Debug("overriding plugin", "name", p.Name, "replaced", prev.FilePath, "with", p.FilePath)
	}
	plugins[p.Name] = p
}

// resolveDeferred merges inherits_from descriptors against the plugins
// collected so far. Multi-level chains resolve through repeated passes;
// whatever remains afterwards either names a parent that never became
// available or sits on a cycle, and is dropped with a warning.
func (s *Scanner) resolveDeferred(deferred []*plugin.Plugin, plugins map[string]*plugin.Plugin) {
	pending := make(map[string]*plugin.Plugin, len(deferred))
	order := make([]string, 0, len(deferred))
	for _, p := range deferred {
		if prev, ok := pending[p.Name]; ok {
			s.logger.Debug("overriding plugin", "name", p.Name, "replaced", prev.FilePath, "with", p.FilePath)
		} else {
			order = append(order, p.Name)
		}
		pending[p.Name] = p
	}

	// Merge children whose parent is already resolved until nothing moves.
	for progress := true; progress && len(pending) > 0; {
		progress = false
		for _, name := range order {
			p, ok := pending[name]
			if !ok {
				continue
			}
			parent, ok := plugins[p.InheritsFrom]
			if !ok {
				continue
			}
			delete(pending, name)
			s.register(plugin.Merge(p, parent), plugins)
			progress = true
		}
	}

	// Drop entries whose parent is gone entirely. Removing one can expose
	// the next, so iterate to a fixpoint.
	for progress := true; progress && len(pending) > 0; {
		progress = false
		for _, name := range order {
			p, ok := pending[name]
			if !ok {
				continue
			}
			if _, inPlugins := plugins[p.InheritsFrom]; inPlugins {
				continue
			}
			if _, inPending := pending[p.InheritsFrom]; inPending {
				continue
			}
			delete(pending, name)
			s.logger.Warn("skipping descriptor: parent plugin could not be resolved",
				"path", p.FilePath, "inherits_from", p.InheritsFrom)
			progress = true
		}
	}

	// Anything left inherits from another pending entry: a cycle.
	for _, name := range order {
		p, ok := pending[name]
		if !ok {
			continue
		}
		s.logger.Warn("skipping descriptor: inheritance cycle detected",
			"path", p.FilePath, "inherits_from", p.InheritsFrom)
	}
}
