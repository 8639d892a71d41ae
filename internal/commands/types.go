package commands

import (
	tea "github.com/charmbracelet/bubbletea"
)

// SelectionInfo identifies the row a command acts on
type SelectionInfo struct {
	Name      string // Resource name (release, pod, node)
	Namespace string // Empty for cluster-scoped rows
	ScreenID  string // Screen the selection came from
}

// CommandCategory determines which prompt prefix lists a command
type CommandCategory int

const (
	CategoryScreen CommandCategory = iota // Screen switching (: prefix)
	CategoryAction                        // Operations on selected row (/ prefix)
)

// CommandContext provides command execution context
type CommandContext struct {
	ScreenID string         // Active screen ID
	Selected map[string]any // Selected row fields (nil if no selection)
	Args     string         // Raw argument string typed after the command name
}

// GetSelection extracts name and namespace from the selected row.
// Missing fields stay empty; commands decide whether that is an error.
func (ctx CommandContext) GetSelection() SelectionInfo {
	info := SelectionInfo{ScreenID: ctx.ScreenID}
	if name, ok := ctx.Selected["name"].(string); ok {
		info.Name = name
	}
	if ns, ok := ctx.Selected["namespace"].(string); ok {
		info.Namespace = ns
	}
	return info
}

// SelectedField returns a string field from the selected row, or the
// fallback when the field is absent.
func (ctx CommandContext) SelectedField(key, fallback string) string {
	if v, ok := ctx.Selected[key].(string); ok && v != "" {
		return v
	}
	return fallback
}

// ParseArgs parses the inline argument string into dest using the struct
// tags on dest. dest must be a pointer to an args struct; nil is a no-op.
func (ctx CommandContext) ParseArgs(dest any) error {
	if dest == nil {
		return nil
	}
	return ParseInlineArgs(dest, ctx.Args)
}

// ExecuteFunc executes a command and returns a tea.Cmd
type ExecuteFunc func(ctx CommandContext) tea.Cmd

// Command represents an executable command
type Command struct {
	Name              string
	Description       string
	Category          CommandCategory
	NeedsConfirmation bool // Prompt before executing
	Execute           ExecuteFunc
	Screens           []string // Screens the command applies to (empty = all)
	Shortcut          string   // Keyboard shortcut hint shown in the palette
	ArgsType          any      // Pointer to args struct (nil = no args)
	ArgPattern        string   // Arg hint, e.g. " <revision>" or " [chart] [version]"
}
