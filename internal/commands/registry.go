package commands

import (
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/quarterdeckhq/quarterdeck/internal/api"
)

// Registry holds all available commands and provides filtering
type Registry struct {
	commands []Command
}

// NewRegistry creates a new command registry with default commands
func NewRegistry(client api.Client) *Registry {
	return &Registry{
		commands: []Command{
			// Navigation commands (: prefix)
			{
				Name:        "overview",
				Description: "Switch to cluster Overview screen",
				Category:    CategoryScreen,
				Execute:     NavigationCommand("overview"),
			},
			{
				Name:        "nodes",
				Description: "Switch to Nodes screen",
				Category:    CategoryScreen,
				Execute:     NavigationCommand("nodes"),
			},
			{
				Name:        "pods",
				Description: "Switch to Pods screen",
				Category:    CategoryScreen,
				Execute:     NavigationCommand("pods"),
			},
			{
				Name:        "releases",
				Description: "Switch to Helm Releases screen",
				Category:    CategoryScreen,
				Execute:     NavigationCommand("releases"),
			},
			{
				Name:        "optimization",
				Description: "Switch to Cost Optimization screen",
				Category:    CategoryScreen,
				Execute:     NavigationCommand("optimization"),
			},
			{
				Name:        "timeline",
				Description: "Switch to Event Timeline screen",
				Category:    CategoryScreen,
				Execute:     NavigationCommand("timeline"),
			},
			{
				Name:        "incidents",
				Description: "Switch to Incidents screen",
				Category:    CategoryScreen,
				Execute:     NavigationCommand("incidents"),
			},
			{
				Name:        "system",
				Description: "Switch to System screen (request stats)",
				Category:    CategoryScreen,
				Execute:     NavigationCommand("system"),
			},
			{
				Name:        "config",
				Description: "Switch to Config screen",
				Category:    CategoryScreen,
				Execute:     NavigationCommand("config"),
			},
			{
				Name:        "help",
				Description: "Show keyboard shortcuts and commands",
				Category:    CategoryScreen,
				Execute:     NavigationCommand("help"),
			},
			{
				Name:        "ns",
				Description: "Filter current screen by namespace",
				Category:    CategoryScreen,
				ArgsType:    &NamespaceArgs{},
				ArgPattern:  " <namespace>",
				Execute:     NamespaceFilterCommand(),
			},
			{
				Name:        "quit",
				Description: "Quit the dashboard",
				Category:    CategoryScreen,
				Execute:     QuitCommand(),
			},

			// Release commands (/ prefix, releases screen)
			{
				Name:        "install",
				Description: "Install a chart as a new release",
				Category:    CategoryAction,
				Screens:     []string{"releases"},
				Shortcut:    "i",
				ArgsType:    &InstallArgs{},
				ArgPattern:  " <name> <chart> [namespace] [version]",
				Execute:     InstallCommand(client),
			},
			{
				Name:              "upgrade",
				Description:       "Upgrade selected release",
				Category:          CategoryAction,
				Screens:           []string{"releases"},
				Shortcut:          "u",
				ArgsType:          &UpgradeArgs{},
				ArgPattern:        " [chart] [version]",
				NeedsConfirmation: true,
				Execute:           UpgradeCommand(client),
			},
			{
				Name:              "rollback",
				Description:       "Roll selected release back to a revision",
				Category:          CategoryAction,
				Screens:           []string{"releases"},
				Shortcut:          "r",
				ArgsType:          &RollbackArgs{},
				ArgPattern:        " <revision>",
				NeedsConfirmation: true,
				Execute:           RollbackCommand(client),
			},
			{
				Name:              "uninstall",
				Description:       "Uninstall selected release",
				Category:          CategoryAction,
				Screens:           []string{"releases"},
				Shortcut:          "x",
				NeedsConfirmation: true,
				Execute:           UninstallCommand(client),
			},
			{
				Name:        "values",
				Description: "View release values as YAML",
				Category:    CategoryAction,
				Screens:     []string{"releases"},
				Shortcut:    "v",
				Execute:     ValuesCommand(client),
			},
			{
				Name:        "history",
				Description: "View release revision history",
				Category:    CategoryAction,
				Screens:     []string{"releases"},
				Shortcut:    "h",
				Execute:     HistoryCommand(client),
			},
			{
				Name:        "dry-run",
				Description: "Preview an upgrade without applying it",
				Category:    CategoryAction,
				Screens:     []string{"releases"},
				Shortcut:    "y",
				ArgsType:    &DryRunArgs{},
				ArgPattern:  " [chart] [version]",
				Execute:     DryRunCommand(client),
			},

			// Pod commands
			{
				Name:        "logs",
				Description: "Stream logs for selected pod",
				Category:    CategoryAction,
				Screens:     []string{"pods"},
				Shortcut:    "l",
				ArgsType:    &LogsArgs{},
				ArgPattern:  " [container] [tail] [follow]",
				Execute:     LogsCommand(),
			},
			{
				Name:        "events",
				Description: "View timeline for selected pod's namespace",
				Category:    CategoryAction,
				Screens:     []string{"pods"},
				Execute:     EventsCommand(),
			},

			// Node commands
			{
				Name:        "pods",
				Description: "List pods scheduled on selected node",
				Category:    CategoryAction,
				Screens:     []string{"nodes"},
				Execute:     PodsOnNodeCommand(),
			},

			// Optimization commands
			{
				Name:              "apply",
				Description:       "Apply selected recommendation",
				Category:          CategoryAction,
				Screens:           []string{"optimization"},
				Shortcut:          "a",
				NeedsConfirmation: true,
				Execute:           ApplyCommand(client),
			},
			{
				Name:              "dismiss",
				Description:       "Dismiss selected recommendation",
				Category:          CategoryAction,
				Screens:           []string{"optimization"},
				Shortcut:          "x",
				NeedsConfirmation: true,
				Execute:           DismissCommand(client),
			},

			// Incident commands
			{
				Name:        "ack",
				Description: "Acknowledge selected incident",
				Category:    CategoryAction,
				Screens:     []string{"incidents"},
				Shortcut:    "a",
				Execute:     AcknowledgeCommand(client),
			},
			{
				Name:              "resolve",
				Description:       "Resolve selected incident",
				Category:          CategoryAction,
				Screens:           []string{"incidents"},
				Shortcut:          "r",
				NeedsConfirmation: true,
				Execute:           ResolveCommand(client),
			},

			// Generic commands
			{
				Name:        "copy",
				Description: "Copy selected name to clipboard",
				Category:    CategoryAction,
				Shortcut:    "c",
				Execute:     CopyCommand(),
			},
		},
	}
}

// GetByCategory returns all commands in a category
func (r *Registry) GetByCategory(category CommandCategory) []Command {
	result := []Command{}
	for _, cmd := range r.commands {
		if cmd.Category == category {
			result = append(result, cmd)
		}
	}
	return result
}

// Filter returns commands matching the query using fuzzy search
func (r *Registry) Filter(query string, category CommandCategory) []Command {
	candidates := r.GetByCategory(category)

	if query == "" {
		return candidates
	}

	names := make([]string, len(candidates))
	for i, cmd := range candidates {
		names[i] = cmd.Name
	}

	matches := fuzzy.Find(query, names)

	// Return matching commands in ranked order
	result := make([]Command, len(matches))
	for i, match := range matches {
		result[i] = candidates[match.Index]
	}

	return result
}

// FilterByScreen returns commands that apply on the given screen.
// Empty screenID returns all commands.
func (r *Registry) FilterByScreen(commands []Command, screenID string) []Command {
	if screenID == "" {
		return commands
	}

	result := []Command{}
	for _, cmd := range commands {
		// Empty Screens means applies everywhere
		if len(cmd.Screens) == 0 {
			result = append(result, cmd)
			continue
		}
		for _, id := range cmd.Screens {
			if id == screenID {
				result = append(result, cmd)
				break
			}
		}
	}
	return result
}

// Get returns a command by name and category, or nil if not found.
// When several screens share an action name, the screenID narrows the
// match; pass "" to take the first one.
func (r *Registry) Get(name string, category CommandCategory) *Command {
	return r.GetForScreen(name, category, "")
}

// GetForScreen returns the command by name and category that applies on
// the given screen, or nil if not found.
func (r *Registry) GetForScreen(name string, category CommandCategory, screenID string) *Command {
	for i := range r.commands {
		cmd := &r.commands[i]
		if cmd.Category != category || !strings.EqualFold(cmd.Name, name) {
			continue
		}
		if screenID == "" || len(cmd.Screens) == 0 {
			return cmd
		}
		for _, id := range cmd.Screens {
			if id == screenID {
				return cmd
			}
		}
	}
	return nil
}

// GetByShortcut returns the action command bound to the given shortcut
// key on the given screen, or nil. Screen-scoped bindings win over
// global ones.
func (r *Registry) GetByShortcut(key, screenID string) *Command {
	var global *Command
	for i := range r.commands {
		cmd := &r.commands[i]
		if cmd.Category != CategoryAction || cmd.Shortcut != key {
			continue
		}
		if len(cmd.Screens) == 0 {
			if global == nil {
				global = cmd
			}
			continue
		}
		for _, id := range cmd.Screens {
			if id == screenID {
				return cmd
			}
		}
	}
	return global
}
