package commandbar

import (
	"math/rand"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/quarterdeckhq/quarterdeck/internal/api"
	"github.com/quarterdeckhq/quarterdeck/internal/commands"
	"github.com/quarterdeckhq/quarterdeck/internal/types"
	"github.com/quarterdeckhq/quarterdeck/internal/ui"
)

// usageTips rotate through the hints line while the command bar is hidden.
// Index 0 is the plain mode reminder and doubles as the initial hint.
var usageTips = []string{
	"[type to filter  : screens  / commands]",
	"Tip: Enter opens detail on most screens",
	"Tip: v shows values, h history, y dry-run on releases",
	"Tip: l streams pod logs from the pods screen",
	"Tip: :ns <namespace> scopes the current screen",
	"Tip: esc walks back through visited screens",
	"Tip: filters match any part of a row, fuzzily",
	"Tip: c copies the selection to the clipboard",
	"Tip: --theme picks charm, dracula, catppuccin or nord",
	"Tip: --demo runs against built-in sample data",
	"Tip: screens refresh automatically in the background",
	"Tip: q or ctrl+c to quit",
}

// tipRotationMsg triggers rotation to the next usage tip.
type tipRotationMsg time.Time

func scheduleTipRotation() tea.Cmd {
	return tea.Tick(tipRotationInterval, func(t time.Time) tea.Msg {
		return tipRotationMsg(t)
	})
}

// CommandBar coordinates the command bar components and state machine.
type CommandBar struct {
	// State
	state           CommandBarState
	inputType       CommandType
	width           int
	height          int
	theme           *ui.Theme
	currentTipIndex int

	// Context
	screenID         string
	selectedResource map[string]any

	// Components
	history  *History
	palette  *Palette
	input    *Input
	executor *Executor
	registry *commands.Registry
}

// New creates a new command bar coordinator backed by client.
func New(client api.Client, theme *ui.Theme) *CommandBar {
	registry := commands.NewRegistry(client)

	return &CommandBar{
		state:     StateHidden,
		inputType: CommandTypeFilter,
		width:     80,
		height:    1,
		theme:     theme,
		history:   NewHistory(),
		palette:   NewPalette(registry, theme, 80),
		input:     NewInput(registry, theme, 80),
		executor:  NewExecutor(registry, theme, 80),
		registry:  registry,
	}
}

// Init schedules the first usage tip rotation.
func (cb *CommandBar) Init() tea.Cmd {
	return scheduleTipRotation()
}

// Registry exposes the command registry, used by the app for shortcut help.
func (cb *CommandBar) Registry() *commands.Registry {
	return cb.registry
}

// SetWidth updates component widths.
func (cb *CommandBar) SetWidth(width int) {
	cb.width = width
	cb.palette.SetWidth(width)
	cb.input.SetWidth(width)
	cb.executor.SetWidth(width)
}

// SetScreen updates the current screen context.
func (cb *CommandBar) SetScreen(screenID string) {
	cb.screenID = screenID
}

// SetSelectedResource updates the selected resource for command execution.
func (cb *CommandBar) SetSelectedResource(resource map[string]any) {
	cb.selectedResource = resource
}

// GetHeight returns the current height including separators, not hints.
func (cb *CommandBar) GetHeight() int {
	if cb.state == StateHidden {
		return 0
	}
	// top separator (1) + bottom separator (1)
	return cb.height + 2
}

// GetTotalHeight returns the height including the hints line.
func (cb *CommandBar) GetTotalHeight() int {
	baseHeight := cb.GetHeight()

	// Hints only show in StateHidden: separator + text + separator
	if cb.state == StateHidden {
		return baseHeight + 3
	}

	return baseHeight
}

// GetState returns the current state.
func (cb *CommandBar) GetState() CommandBarState {
	return cb.state
}

// GetInput returns the current input string.
func (cb *CommandBar) GetInput() string {
	return cb.input.Get()
}

// GetInputType returns the current command type.
func (cb *CommandBar) GetInputType() CommandType {
	return cb.inputType
}

// RestoreFilter restores filter state for back navigation. Sets the input
// text, transitions to StateFilter, and re-emits the FilterUpdateMsg.
func (cb *CommandBar) RestoreFilter(filter string) tea.Cmd {
	if filter == "" {
		return nil
	}

	cb.input.Set(filter)
	cb.state = StateFilter
	cb.inputType = CommandTypeFilter

	return func() tea.Msg {
		return types.FilterUpdateMsg{Filter: filter}
	}
}

// IsActive returns true if the command bar is accepting input.
func (cb *CommandBar) IsActive() bool {
	return cb.state != StateHidden
}

// TriggerShortcut runs the action command bound to key on the current
// screen, if any. Commands that need confirmation open the confirmation
// prompt exactly as if picked from the palette. The bool reports whether
// the key was bound.
func (cb *CommandBar) TriggerShortcut(key string) (tea.Cmd, bool) {
	command := cb.registry.GetByShortcut(key, cb.screenID)
	if command == nil {
		return nil, false
	}
	return cb.trigger(command), true
}

// TriggerCommand runs the named action command on the current screen.
// Used by the operations overlay, which lists commands by name.
func (cb *CommandBar) TriggerCommand(name string) (tea.Cmd, bool) {
	command := cb.registry.GetForScreen(name, commands.CategoryAction, cb.screenID)
	if command == nil {
		return nil, false
	}
	return cb.trigger(command), true
}

func (cb *CommandBar) trigger(command *commands.Command) tea.Cmd {
	if command.NeedsConfirmation {
		cb.executor.SetPending(command, "")
		cb.input.Set("/" + command.Name) // kept for history after confirmation
		cb.state = StateConfirmation
		cb.height = 5
		return nil
	}

	if command.Execute == nil {
		return nil
	}
	ctx := cb.executor.BuildContext(cb.screenID, cb.selectedResource, "")
	return command.Execute(ctx)
}

// Update handles messages for the command bar.
func (cb *CommandBar) Update(msg tea.Msg) (*CommandBar, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return cb.handleKeyMsg(msg)
	case tipRotationMsg:
		cb.rotateTip()
		return cb, scheduleTipRotation()
	}

	return cb, nil
}

// rotateTip picks a different tip at random.
func (cb *CommandBar) rotateTip() {
	if len(usageTips) < 2 {
		return
	}
	cb.currentTipIndex = (cb.currentTipIndex + 1 + rand.Intn(len(usageTips)-1)) % len(usageTips)
}

// handleKeyMsg routes keyboard input to the handler for the current state.
func (cb *CommandBar) handleKeyMsg(msg tea.KeyMsg) (*CommandBar, tea.Cmd) {
	switch cb.state {
	case StateHidden:
		return cb.handleHiddenState(msg)
	case StateFilter:
		return cb.handleFilterState(msg)
	case StateSuggestionPalette:
		return cb.handlePaletteState(msg)
	case StateInput:
		return cb.handleInputState(msg)
	case StateConfirmation:
		return cb.handleConfirmationState(msg)
	}

	return cb, nil
}

// handleHiddenState handles input when the command bar is hidden.
func (cb *CommandBar) handleHiddenState(msg tea.KeyMsg) (*CommandBar, tea.Cmd) {
	// ESC with an accepted filter clears it
	if msg.String() == "esc" && cb.input.Get() != "" {
		cb.input.Clear()
		return cb, func() tea.Msg {
			return types.ClearFilterMsg{}
		}
	}

	// Paste starts filter mode with the pasted text
	if msg.Paste {
		cb.state = StateFilter
		cb.input.Set(string(msg.Runes))
		cb.inputType = CommandTypeFilter
		cb.height = 1
		return cb, func() tea.Msg {
			return types.FilterUpdateMsg{Filter: cb.input.Get()}
		}
	}

	switch msg.String() {
	case ":":
		cb.transitionToPalette(":", CommandTypeScreen)
		return cb, nil
	case "/":
		cb.transitionToPalette("/", CommandTypeAction)
		return cb, nil
	default:
		// Any other printable character starts filter mode
		if len(msg.String()) == 1 && msg.String() != " " {
			cb.state = StateFilter
			cb.input.Set(msg.String())
			cb.inputType = CommandTypeFilter
			cb.height = 1
			return cb, func() tea.Msg {
				return types.FilterUpdateMsg{Filter: cb.input.Get()}
			}
		}
	}

	return cb, nil
}

// handleFilterState handles input in filter mode.
func (cb *CommandBar) handleFilterState(msg tea.KeyMsg) (*CommandBar, tea.Cmd) {
	result := cb.input.HandleKeyMsg(msg)

	switch result.Action {
	case InputActionPaste:
		cb.input.AddText(result.Text)
		return cb, func() tea.Msg {
			return types.FilterUpdateMsg{Filter: cb.input.Get()}
		}

	case InputActionChar:
		cb.input.AddChar(result.Text)
		return cb, func() tea.Msg {
			return types.FilterUpdateMsg{Filter: cb.input.Get()}
		}

	case InputActionBackspace:
		if cb.input.Backspace() {
			cb.state = StateHidden
			return cb, func() tea.Msg {
				return types.ClearFilterMsg{}
			}
		}
		return cb, func() tea.Msg {
			return types.FilterUpdateMsg{Filter: cb.input.Get()}
		}
	}

	switch msg.String() {
	case "esc":
		cb.state = StateHidden
		cb.input.Clear()
		cb.height = 1
		return cb, func() tea.Msg {
			return types.ClearFilterMsg{}
		}

	case "enter":
		// Accept the filter: keep it applied but hide the input
		cb.state = StateHidden
		cb.height = 1
		return cb, nil
	}

	return cb, nil
}

// handlePaletteState handles input while the suggestion palette is visible.
func (cb *CommandBar) handlePaletteState(msg tea.KeyMsg) (*CommandBar, tea.Cmd) {
	result := cb.input.HandleKeyMsg(msg)

	switch result.Action {
	case InputActionPaste:
		cb.input.AddText(result.Text)
		cb.refilterPalette()
		return cb, nil

	case InputActionChar:
		cb.input.AddChar(result.Text)
		cb.refilterPalette()
		return cb, nil

	case InputActionBackspace:
		if cb.input.Backspace() {
			cb.hide()
			return cb, nil
		}

		// Only the prefix left: dismiss the palette
		if len(cb.input.Get()) == 1 {
			cb.hide()
			return cb, nil
		}

		cb.refilterPalette()
		return cb, nil
	}

	switch msg.String() {
	case "esc":
		cb.hide()
		return cb, nil

	case "enter":
		return cb.handlePaletteEnter()

	case "up":
		cb.palette.NavigateUp()
		return cb, nil

	case "down":
		cb.palette.NavigateDown()
		return cb, nil

	case "tab":
		return cb.handlePaletteTab()
	}

	return cb, nil
}

// refilterPalette re-filters palette items from the current input.
func (cb *CommandBar) refilterPalette() {
	query := cb.input.Get()[1:]
	cb.palette.Filter(query, cb.inputType, cb.screenID)
	cb.height = 1 + cb.palette.GetHeight()
}

// hide resets the bar to hidden state.
func (cb *CommandBar) hide() {
	cb.state = StateHidden
	cb.input.Clear()
	cb.height = 1
	cb.palette.Reset()
}

// handlePaletteEnter handles enter in palette state.
func (cb *CommandBar) handlePaletteEnter() (*CommandBar, tea.Cmd) {
	// A typed command with args executes directly
	if len(cb.input.Get()) > 1 && strings.Contains(cb.input.Get(), " ") {
		cb.state = StateInput
		return cb.handleInputState(tea.KeyMsg{Type: tea.KeyEnter})
	}

	selected := cb.palette.GetSelected()
	if selected == nil {
		return cb, nil
	}

	prefix := cb.input.Get()[:1]
	commandStr := prefix + selected.Name

	if selected.NeedsConfirmation {
		cb.executor.SetPending(selected, "")
		cb.input.Set(commandStr) // kept for history after confirmation
		cb.state = StateConfirmation
		cb.height = 5
		cb.palette.Reset()
		return cb, nil
	}

	cb.history.Add(commandStr)

	var cmd tea.Cmd
	if selected.Execute != nil {
		ctx := cb.executor.BuildContext(cb.screenID, cb.selectedResource, "")
		cmd = selected.Execute(ctx)
	}

	cb.hide()
	return cb, cmd
}

// handlePaletteTab handles tab in palette state (auto-complete).
func (cb *CommandBar) handlePaletteTab() (*CommandBar, tea.Cmd) {
	selected := cb.palette.GetSelected()
	if selected == nil {
		return cb, nil
	}

	prefix := cb.input.Get()[:1]

	// Complete the command name and leave a space for arguments
	cb.input.Set(prefix + selected.Name + " ")
	cb.state = StateInput
	cb.height = 1
	cb.palette.Reset()

	return cb, nil
}

// handleInputState handles direct command input.
func (cb *CommandBar) handleInputState(msg tea.KeyMsg) (*CommandBar, tea.Cmd) {
	result := cb.input.HandleKeyMsg(msg)

	switch result.Action {
	case InputActionPaste:
		cb.input.AddText(result.Text)
		return cb, nil

	case InputActionChar:
		cb.input.AddChar(result.Text)
		return cb, nil

	case InputActionBackspace:
		if cb.input.Backspace() {
			cb.state = StateHidden
			cb.height = 1
			return cb, nil
		}

		// Backspaced down to the prefix: show the palette again
		switch cb.input.Get() {
		case ":":
			cb.transitionToPalette(":", CommandTypeScreen)
		case "/":
			cb.transitionToPalette("/", CommandTypeAction)
		}
		return cb, nil
	}

	switch msg.String() {
	case "esc":
		cb.state = StateHidden
		cb.input.Clear()
		cb.height = 1
		cb.history.Reset()
		return cb, nil

	case "up":
		if cmd, ok := cb.history.NavigateUp(); ok {
			cb.input.Set(cmd)
		}
		return cb, nil

	case "down":
		if cmd, ok := cb.history.NavigateDown(); ok {
			cb.input.Set(cmd)
		} else {
			cb.input.Clear()
		}
		return cb, nil

	case "enter":
		return cb.handleInputEnter()
	}

	return cb, nil
}

// handleInputEnter parses and executes the typed command.
func (cb *CommandBar) handleInputEnter() (*CommandBar, tea.Cmd) {
	inputStr := cb.input.Get()

	prefix, cmdName, args := cb.input.ParseCommand()
	if len(prefix) == 0 || len(cmdName) == 0 {
		cb.state = StateHidden
		cb.input.Clear()
		cb.height = 1
		cb.history.Reset()
		return cb, nil
	}

	var category commands.CommandCategory
	switch prefix {
	case ":":
		category = commands.CategoryScreen
	case "/":
		category = commands.CategoryAction
	}

	ctx := cb.executor.BuildContext(cb.screenID, cb.selectedResource, args)
	cmd, needsConfirm := cb.executor.Execute(cmdName, category, ctx)

	if needsConfirm {
		cb.state = StateConfirmation
		cb.height = 5
		return cb, nil
	}

	if cmd != nil {
		cb.history.Add(inputStr)
		cb.state = StateHidden
		cb.input.Clear()
		cb.height = 1
		return cb, cmd
	}

	// Unknown command
	cb.state = StateHidden
	cb.input.Clear()
	cb.height = 1
	cb.history.Reset()
	return cb, nil
}

// handleConfirmationState handles confirmation prompts.
func (cb *CommandBar) handleConfirmationState(msg tea.KeyMsg) (*CommandBar, tea.Cmd) {
	switch msg.String() {
	case "esc":
		cb.state = StateHidden
		cb.input.Clear()
		cb.height = 1
		cb.executor.CancelPending()
		return cb, nil

	case "enter":
		cb.history.Add(cb.input.Get())

		ctx := cb.executor.BuildContext(cb.screenID, cb.selectedResource, "")
		cmd := cb.executor.ExecutePending(ctx)

		cb.state = StateHidden
		cb.input.Clear()
		cb.height = 1
		return cb, cmd
	}
	return cb, nil
}

// transitionToPalette transitions to palette state.
func (cb *CommandBar) transitionToPalette(input string, cmdType CommandType) {
	cb.state = StateSuggestionPalette
	cb.input.Set(input)
	cb.inputType = cmdType

	query := ""
	if len(input) > 1 {
		query = input[1:]
	}

	cb.palette.Filter(query, cmdType, cb.screenID)
	cb.height = 1 + cb.palette.GetHeight()
}

// View renders the command bar.
func (cb *CommandBar) View() string {
	separatorStyle := lipgloss.NewStyle().
		Foreground(cb.theme.Border).
		Width(cb.width)
	separator := separatorStyle.Render(strings.Repeat("─", cb.width))

	var content string
	switch cb.state {
	case StateHidden:
		return ""
	case StateFilter, StateInput, StateSuggestionPalette:
		content = cb.input.View(cb.inputType)
	case StateConfirmation:
		content = cb.executor.ViewConfirmation()
	default:
		return ""
	}

	return lipgloss.JoinVertical(lipgloss.Left, separator, content, separator)
}

// ViewHints renders the hints line shown below the command bar, rotating
// through usage tips while the bar is hidden.
func (cb *CommandBar) ViewHints() string {
	if cb.state != StateHidden {
		return ""
	}

	hintStyle := lipgloss.NewStyle().
		Foreground(cb.theme.Subtle).
		Width(cb.width).
		Padding(0, 1)

	separatorStyle := lipgloss.NewStyle().
		Foreground(cb.theme.Border).
		Width(cb.width)
	separator := separatorStyle.Render(strings.Repeat("─", cb.width))

	hints := hintStyle.Render(usageTips[cb.currentTipIndex])
	return lipgloss.JoinVertical(lipgloss.Left, separator, hints, separator)
}

// ViewPaletteItems renders the palette items shown below the command bar.
func (cb *CommandBar) ViewPaletteItems() string {
	if cb.state != StateSuggestionPalette {
		return ""
	}

	prefix := cb.input.Get()[:1]
	return cb.palette.View(prefix)
}
