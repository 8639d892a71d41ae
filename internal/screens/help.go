package screens

import (
	"context"

	"github.com/quarterdeckhq/quarterdeck/internal/api"
	"github.com/quarterdeckhq/quarterdeck/internal/types"
)

const (
	// HelpScreenID is the screen identifier for the help screen
	HelpScreenID = "help"
)

// HelpEntry represents a keyboard shortcut entry
type HelpEntry struct {
	Section     string
	Shortcut    string
	Description string
}

// getHelpEntries returns all keyboard shortcuts organized by section
func getHelpEntries() []HelpEntry {
	return []HelpEntry{
		// Navigation
		{"Navigation", "/", "Filter the current list"},
		{"Navigation", ":", "Open the command bar"},
		{"Navigation", "esc", "Back, or clear an active filter"},
		{"Navigation", "↑/↓ or j/k", "Move selection up/down"},
		{"Navigation", "g / G", "Jump to top / bottom"},
		{"Navigation", "PgUp/PgDn", "Page up/down"},
		{"Navigation", "enter", "Open detail for the selected row"},

		// Screens
		{"Screens", ":overview", "Cluster health overview"},
		{"Screens", ":nodes", "Node list"},
		{"Screens", ":pods", "Pod list"},
		{"Screens", ":releases", "Helm releases"},
		{"Screens", ":optimization", "Cost recommendations"},
		{"Screens", ":timeline", "Event timeline"},
		{"Screens", ":incidents", "Incident list"},
		{"Screens", ":system", "Client statistics"},
		{"Screens", ":config", "Effective settings and their sources"},
		{"Screens", ":ns <name>", "Scope the current screen to a namespace"},

		// Pods and nodes
		{"Pods", "d", "Pod or node detail"},
		{"Pods", "l", "Stream logs from the selected pod"},

		// Releases
		{"Releases", "i", "Install a chart"},
		{"Releases", "u", "Upgrade the selected release"},
		{"Releases", "r", "Roll back to an earlier revision"},
		{"Releases", "x", "Uninstall the selected release"},
		{"Releases", "v", "Show release values"},
		{"Releases", "h", "Show revision history"},
		{"Releases", "y", "Dry-run against the live cluster"},

		// Optimization
		{"Optimization", "a", "Apply the selected recommendation"},
		{"Optimization", "x", "Dismiss the selected recommendation"},

		// Timeline and incidents
		{"Timeline", "t", "Cycle event type: all, Warning, Normal"},
		{"Incidents", "a", "Acknowledge the selected incident"},
		{"Incidents", "r", "Resolve the selected incident"},

		// Logs
		{"Logs", "f", "Toggle follow"},
		{"Logs", "p", "Pause (drop incoming lines)"},
		{"Logs", "c", "Copy the visible lines"},
		{"Logs", "r", "Reconnect the stream"},

		// Command bar
		{"Command bar", "↑/↓", "Navigate suggestions"},
		{"Command bar", "enter", "Run the selected command"},
		{"Command bar", "tab", "Auto-complete"},
		{"Command bar", "esc", "Cancel"},

		// Global
		{"Global", "c", "Copy the selected row's name"},
		{"Global", "?", "Show this help"},
		{"Global", "q or ctrl+c", "Quit"},
	}
}

// GetHelpScreenConfig returns the configuration for the help screen
func GetHelpScreenConfig() ScreenConfig {
	return ScreenConfig{
		ID:    HelpScreenID,
		Title: "Help",
		Fetch: func(ctx context.Context, client api.Client, fc *types.FilterContext) ([]any, error) {
			return toItems(getHelpEntries()), nil
		},
		Columns: []ColumnConfig{
			{Field: "Section", Title: "Section", Width: 14, Priority: 1},
			{Field: "Shortcut", Title: "Shortcut", Width: 16, Priority: 1},
			{Field: "Description", Title: "Description", Width: 0, Priority: 1},
		},
		SearchFields: []string{"Section", "Shortcut", "Description"},
		HelpText:     "↑/↓: navigate • type: filter • esc: back",
	}
}
