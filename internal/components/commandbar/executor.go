package commandbar

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/quarterdeckhq/quarterdeck/internal/commands"
	"github.com/quarterdeckhq/quarterdeck/internal/ui"
)

// Executor manages command execution and the confirmation flow for
// destructive commands.
type Executor struct {
	registry *commands.Registry
	theme    *ui.Theme
	width    int

	// Pending command state while waiting for confirmation
	pendingCommand *commands.Command
	pendingArgs    string
}

// NewExecutor creates a new executor.
func NewExecutor(registry *commands.Registry, theme *ui.Theme, width int) *Executor {
	return &Executor{
		registry: registry,
		theme:    theme,
		width:    width,
	}
}

// SetWidth updates the executor width.
func (e *Executor) SetWidth(width int) {
	e.width = width
}

// BuildContext creates a CommandContext for command execution.
func (e *Executor) BuildContext(screenID string, selected map[string]any, args string) commands.CommandContext {
	return commands.CommandContext{
		ScreenID: screenID,
		Selected: selected,
		Args:     args,
	}
}

// Execute looks up and runs a command by name and category, respecting the
// screens it is registered for. Returns the command's tea.Cmd, or
// (nil, true) when the command needs confirmation first.
func (e *Executor) Execute(cmdName string, category commands.CommandCategory, ctx commands.CommandContext) (tea.Cmd, bool) {
	cmd := e.registry.GetForScreen(cmdName, category, ctx.ScreenID)
	if cmd == nil {
		return nil, false
	}

	if cmd.NeedsConfirmation {
		e.pendingCommand = cmd
		e.pendingArgs = ctx.Args
		return nil, true
	}

	if cmd.Execute != nil {
		return cmd.Execute(ctx), false
	}

	return nil, false
}

// ExecutePending runs the pending command with the args stored at
// confirmation time.
func (e *Executor) ExecutePending(ctx commands.CommandContext) tea.Cmd {
	if e.pendingCommand == nil || e.pendingCommand.Execute == nil {
		return nil
	}

	ctx.Args = e.pendingArgs
	cmd := e.pendingCommand.Execute(ctx)

	e.ClearPending()
	return cmd
}

// CancelPending cancels the pending command.
func (e *Executor) CancelPending() {
	e.pendingCommand = nil
	e.pendingArgs = ""
}

// ClearPending clears the pending command state.
func (e *Executor) ClearPending() {
	e.pendingCommand = nil
	e.pendingArgs = ""
}

// HasPending returns true if a command is waiting for confirmation.
func (e *Executor) HasPending() bool {
	return e.pendingCommand != nil
}

// GetPendingCommand returns the pending command.
func (e *Executor) GetPendingCommand() *commands.Command {
	return e.pendingCommand
}

// SetPending stores a command for the confirmation flow. Used when the
// palette selects a destructive command directly.
func (e *Executor) SetPending(cmd *commands.Command, args string) {
	e.pendingCommand = cmd
	e.pendingArgs = args
}

// ViewConfirmation renders the confirmation prompt.
func (e *Executor) ViewConfirmation() string {
	if e.pendingCommand == nil {
		return ""
	}

	titleStyle := lipgloss.NewStyle().
		Foreground(e.theme.Error).
		Bold(true).
		Width(e.width).
		Padding(0, 1)

	textStyle := lipgloss.NewStyle().
		Foreground(e.theme.Foreground).
		Width(e.width).
		Padding(0, 1)

	hintStyle := lipgloss.NewStyle().
		Foreground(e.theme.Subtle).
		Width(e.width).
		Padding(0, 1)

	lines := []string{
		titleStyle.Render("⚠ Confirm Action"),
		textStyle.Render(""),
		textStyle.Render("Command: /" + e.pendingCommand.Name),
		textStyle.Render("This action cannot be undone."),
		hintStyle.Render("[Enter] Confirm  [ESC] Cancel"),
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
