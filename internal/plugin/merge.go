// SPDX-License-Identifier: MPL-2.0

package plugin

// Merge combines a child descriptor with its resolved parent and returns the
// merged result. Child fields win: command, short_help, run_detached (when
// explicitly set) and individual rez_opts keys override the parent's, while
// requires keeps the parent's packages in order followed by the child's
// additions. The result no longer carries inherits_from; neither input is
// mutated.
func Merge(child, parent *Plugin) *Plugin {
	merged := &Plugin{
		Name:     child.Name,
		Command:  child.Command,
		FilePath: child.FilePath,
	}

	if merged.Command == "" {
		merged.Command = parent.Command
	}

	merged.Requires = append(merged.Requires, parent.Requires...)
	seen := make(map[string]bool, len(parent.Requires))
	for _, pkg := range parent.Requires {
		seen[pkg] = true
	}
	for _, pkg := range child.Requires {
		if !seen[pkg] {
			merged.Requires = append(merged.Requires, pkg)
			seen[pkg] = true
		}
	}

	merged.ShortHelp = child.ShortHelp
	if merged.ShortHelp == "" {
		merged.ShortHelp = parent.ShortHelp
	}

	merged.RunDetached = child.RunDetached
	if merged.RunDetached == nil {
		merged.RunDetached = parent.RunDetached
	}

	if len(parent.RezOpts) > 0 || len(child.RezOpts) > 0 {
		merged.RezOpts = make(map[string]string, len(parent.RezOpts)+len(child.RezOpts))
		for k, v := range parent.RezOpts {
			merged.RezOpts[k] = v
		}
		for k, v := range child.RezOpts {
			merged.RezOpts[k] = v
		}
	}

	return merged
}
