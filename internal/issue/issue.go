// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Id int

const (
	PluginNotFoundId Id = iota + 1
	DescriptorParseErrorId
	ConfigLoadFailedId
	ResolverNotFoundId
	InheritanceCycleId
	ResolverSpawnFailedId
	NoPluginsFoundId
)

type MarkdownMsg string

type HttpLink string

type Renderer interface {
	Render(in string, stylePath string) (string, error)
}

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink  // links into our own docs
	extLinks []HttpLink  // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		extraMd += "\n\n"
		extraMd += "## See also: "
		for _, link := range i.docLinks {
			extraMd += "- [" + string(link) + "]"
		}
		for _, link := range i.extLinks {
			extraMd += "- [" + string(link) + "]"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

var (
	render = glamour.Render

	pluginNotFoundIssue = &Issue{
		id: PluginNotFoundId,
		mdMsg: `
# Plugin not found!

The tool you asked for does not match any plugin discovered on the
configured tool paths.

## Things you can try:
- List every plugin the dispatcher can see:
~~~
$ rt list
~~~

- Check for typos in the plugin name
- Verify a descriptor for it sits directly inside one of your tool_paths
  directories (subdirectories are not scanned)
- Confirm the descriptor file uses the configured extension (default ` + "`.rt`" + `)`,
	}

	descriptorParseErrorIssue = &Issue{
		id: DescriptorParseErrorId,
		mdMsg: `
# Failed to parse plugin descriptor!

A descriptor file contains YAML syntax errors or invalid fields.

## Common issues:
- Invalid YAML (bad indentation, unclosed quotes)
- Missing required fields: every descriptor needs ` + "`command`" + ` and ` + "`requires`" + `
- A ` + "`name`" + ` that does not start with a letter or contains characters
  other than letters, digits, and underscores

## Things you can try:
- Run with verbose mode to see which file is rejected and why:
~~~
$ rt --verbose list
~~~

## Example of a valid descriptor:
~~~yaml
name: kitsu
requires:
  - kitsu
  - python-3.9
command: python -m kitsu
short_help: Publish to the production tracker
~~~`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

Could not load the rez-tools configuration file.

## Configuration file locations:
- Linux: ~/.config/rez-tools/config.toml
- macOS: ~/Library/Application Support/rez-tools/config.toml
- Windows: %APPDATA%\rez-tools\config.toml
- Any path named by the REZ_TOOL_CONFIG environment variable

## Things you can try:
- Create a default configuration:
~~~
$ rt config init
~~~

- Check the TOML syntax of the existing file
- Convert a legacy Python-syntax config:
~~~
$ rt config convert /path/to/reztoolsconfig.py
~~~

## Example configuration:
~~~toml
tool_paths = ["/pipeline/tools", "~/packages"]
extension = ".rt"
~~~`,
	}

	resolverNotFoundIssue = &Issue{
		id: ResolverNotFoundId,
		mdMsg: `
# rez not found!

Plugins delegate to the rez package resolver, but no rez executable could
be located on this machine.

## Locations we look in (in order):
1. The REZ_PATH environment variable
2. ~/.rez-tools/bin/rez
3. Your PATH
4. Common install locations (/usr/local/bin, /opt/rez/bin, ...)

## Things you can try:
- Install rez and make sure it is on your PATH
- Point REZ_PATH at an existing installation:
~~~
$ export REZ_PATH=/opt/rez/bin/rez
~~~

- Verify what the dispatcher can see:
~~~
$ rt doctor
~~~`,
		extLinks: []HttpLink{
			"https://rez.readthedocs.io/en/stable/installation.html",
		},
	}

	inheritanceCycleIssue = &Issue{
		id: InheritanceCycleId,
		mdMsg: `
# Inheritance cycle detected!

A plugin descriptor's ` + "`inherits_from`" + ` chain loops back on itself, so the
plugins involved cannot be resolved and were skipped.

## Example of a cycle:
~~~yaml
# maya.rt
inherits_from: maya_beta
~~~
~~~yaml
# maya_beta.rt
inherits_from: maya   # cycle: maya -> maya_beta -> maya
~~~

## Things you can try:
- Review the inherits_from fields of the named descriptors
- Break the loop so every chain ends at a plugin without inherits_from`,
	}

	resolverSpawnFailedIssue = &Issue{
		id: ResolverSpawnFailedId,
		mdMsg: `
# Failed to start the resolver!

The rez process could not be started at all. This is different from rez
resolving and then failing: here the executable never ran.

## Common causes:
- The located rez path no longer exists
- The file is not executable
- Permission denied on the executable or a parent directory

## Things you can try:
- Check what 'rt doctor' reports for the resolver location
- Run the printed command line by hand:
~~~
$ rt <plugin> --print
~~~`,
	}

	noPluginsFoundIssue = &Issue{
		id: NoPluginsFoundId,
		mdMsg: `
# No plugins found!

None of the configured tool paths contained a readable plugin descriptor.

## Things you can try:
- Check which directories are scanned:
~~~
$ rt config show
~~~

- Make sure descriptors sit directly inside a tool path (the scan is not
  recursive) and use the configured extension (default ` + "`.rt`" + `)
- Add the directory that holds your descriptors to tool_paths:
~~~toml
tool_paths = ["/pipeline/tools"]
~~~`,
	}

	issues = map[Id]*Issue{
		pluginNotFoundIssue.Id():       pluginNotFoundIssue,
		descriptorParseErrorIssue.Id(): descriptorParseErrorIssue,
		configLoadFailedIssue.Id():     configLoadFailedIssue,
		resolverNotFoundIssue.Id():     resolverNotFoundIssue,
		inheritanceCycleIssue.Id():     inheritanceCycleIssue,
		resolverSpawnFailedIssue.Id():  resolverSpawnFailedIssue,
		noPluginsFoundIssue.Id():       noPluginsFoundIssue,
	}
)

func Values() []*Issue {
	return maps.Values(issues)
}

func Get(id Id) *Issue {
	return issues[id]
}
