package app

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/quarterdeckhq/quarterdeck/internal/api"
	"github.com/quarterdeckhq/quarterdeck/internal/commands"
	"github.com/quarterdeckhq/quarterdeck/internal/components"
	"github.com/quarterdeckhq/quarterdeck/internal/components/commandbar"
	"github.com/quarterdeckhq/quarterdeck/internal/keyboard"
	"github.com/quarterdeckhq/quarterdeck/internal/logging"
	"github.com/quarterdeckhq/quarterdeck/internal/modals"
	"github.com/quarterdeckhq/quarterdeck/internal/screens"
	"github.com/quarterdeckhq/quarterdeck/internal/types"
	"github.com/quarterdeckhq/quarterdeck/internal/ui"
)

const appName = "quarterdeck"

// historyEntry records one visited screen for esc back navigation.
type historyEntry struct {
	screenID      string
	filterContext *types.FilterContext
	filter        string // accepted fuzzy filter at the moment we left
}

// App is the root bubbletea model. It owns the chrome (header, status
// bar, command bar), routes keyboard input, and swaps screens in and out
// on ScreenSwitchMsg. Full-screen views and the operations overlay sit
// above the normal layout and capture input while open.
type App struct {
	client   api.Client
	theme    *ui.Theme
	keys     *keyboard.Keys
	registry *types.ScreenRegistry
	current  types.Screen

	header     *components.Header
	statusBar  *components.StatusBar
	layout     *components.Layout
	commandBar *commandbar.CommandBar

	fullScreen      *components.FullScreen
	operationsModal *modals.OperationsModal

	history []historyEntry

	// statusID matches ClearStatusMsg to the message it was scheduled
	// for, so a delayed clear never wipes a newer message.
	statusID int

	width  int
	height int
	ready  bool
}

// Options tunes the app at startup.
type Options struct {
	// Settings are the resolved configuration rows shown on the config
	// screen.
	Settings []screens.Setting
	// RefreshInterval overrides the polling interval of every screen
	// that polls. Zero keeps the per-screen defaults.
	RefreshInterval time.Duration
}

// New builds the app with every screen registered and the overview
// focused.
func New(client api.Client, theme *ui.Theme, opts Options) *App {
	registry := types.NewScreenRegistry()

	withInterval := func(cfg screens.ScreenConfig) screens.ScreenConfig {
		if opts.RefreshInterval > 0 && cfg.RefreshInterval > 0 {
			cfg.RefreshInterval = opts.RefreshInterval
		}
		return cfg
	}

	overview := screens.NewOverviewScreen(client, theme)
	registry.Register(overview)
	registry.Register(screens.NewConfigScreen(withInterval(screens.GetNodesScreenConfig()), client, theme))
	registry.Register(screens.NewConfigScreen(withInterval(screens.GetPodsScreenConfig()), client, theme))
	registry.Register(screens.NewConfigScreen(withInterval(screens.GetReleasesScreenConfig()), client, theme))
	registry.Register(screens.NewConfigScreen(withInterval(screens.GetOptimizationScreenConfig()), client, theme))
	registry.Register(screens.NewConfigScreen(withInterval(screens.GetTimelineScreenConfig()), client, theme))
	registry.Register(screens.NewConfigScreen(withInterval(screens.GetIncidentsScreenConfig()), client, theme))
	registry.Register(screens.NewLogsScreen(client, theme))
	registry.Register(screens.NewSystemScreen(client, theme))
	registry.Register(screens.NewConfigScreen(screens.GetHelpScreenConfig(), client, theme))
	registry.Register(screens.NewConfigScreen(screens.GetConfigScreenConfig(opts.Settings), client, theme))

	header := components.NewHeader(appName, theme)
	header.SetScreenTitle(overview.Title())
	header.SetServer(client.Server())
	header.SetWidth(80)

	commandBar := commandbar.New(client, theme)
	commandBar.SetScreen(overview.ID())

	return &App{
		client:     client,
		theme:      theme,
		keys:       keyboard.GetKeys(),
		registry:   registry,
		current:    overview,
		header:     header,
		statusBar:  components.NewStatusBar(theme),
		layout:     components.NewLayout(80, 24),
		commandBar: commandBar,
		width:      80,
		height:     24,
	}
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(a.current.Init(), a.commandBar.Init())
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true

		a.layout.SetSize(msg.Width, msg.Height)
		a.header.SetWidth(msg.Width)
		a.statusBar.SetWidth(msg.Width)
		a.commandBar.SetWidth(msg.Width)
		if a.fullScreen != nil {
			a.fullScreen.SetSize(msg.Width, msg.Height)
		}
		if a.operationsModal != nil {
			a.operationsModal.SetSize(msg.Width, msg.Height)
		}
		a.syncScreenSize()
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case types.ScreenSwitchMsg:
		return a.switchScreen(msg)

	case types.StatusMsg:
		return a, a.showStatus(msg)

	case types.ClearStatusMsg:
		if msg.MessageID == a.statusID {
			a.statusBar.ClearMessage()
		}
		return a, nil

	case types.RefreshCompleteMsg:
		a.header.SetLastRefresh(time.Now())
		if a.statusBar.IsLoadingMessage() {
			a.statusBar.ClearMessage()
		}
		a.syncItemCount()
		return a, nil

	case types.RefreshRequestMsg:
		cmds := []tea.Cmd{a.showStatus(msg.Status)}
		if r, ok := a.current.(interface{ Refresh() tea.Cmd }); ok {
			if cmd := r.Refresh(); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
		return a, tea.Batch(cmds...)

	case types.FilterUpdateMsg, types.ClearFilterMsg:
		_, cmd := a.updateScreen(msg)
		a.syncItemCount()
		return a, cmd

	case types.ShowFullScreenMsg:
		fs := components.NewFullScreen(
			components.FullScreenViewType(msg.ViewType), msg.ResourceName, msg.Content, a.theme)
		fs.SetSize(a.width, a.height)
		a.fullScreen = fs
		return a, nil

	case types.ExitFullScreenMsg:
		a.fullScreen = nil
		return a, nil

	case types.ToggleOperationsMsg:
		if a.operationsModal != nil {
			a.operationsModal = nil
			return a, nil
		}
		modal := modals.NewOperationsModal(a.buildOperations(), a.theme)
		modal.SetSize(a.width, a.height)
		a.operationsModal = modal
		return a, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.statusBar, cmd = a.statusBar.Update(msg)
		return a, cmd
	}

	// Everything else: the command bar rotates its tips, the focused
	// screen consumes its own data and tick messages.
	var cmds []tea.Cmd
	var cbCmd tea.Cmd
	a.commandBar, cbCmd = a.commandBar.Update(msg)
	if cbCmd != nil {
		cmds = append(cmds, cbCmd)
	}
	_, screenCmd := a.updateScreen(msg)
	if screenCmd != nil {
		cmds = append(cmds, screenCmd)
	}
	return a, tea.Batch(cmds...)
}

// handleKey routes keyboard input. Precedence: full-screen view, the
// operations overlay, a screen capturing raw input (an open form), the
// active command bar, screen shortcuts, registry shortcuts, app keys,
// screen navigation, and finally the hidden command bar, where any
// printable character starts a filter.
func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.fullScreen != nil {
		switch msg.String() {
		case "esc", "q":
			a.fullScreen = nil
			return a, nil
		}
		var cmd tea.Cmd
		a.fullScreen, cmd = a.fullScreen.Update(msg)
		return a, cmd
	}

	if a.operationsModal != nil {
		model, cmd := a.operationsModal.Update(msg)
		if m, ok := model.(*modals.OperationsModal); ok {
			a.operationsModal = m
		}
		return a, cmd
	}

	if c, ok := a.current.(interface{ CapturingInput() bool }); ok && c.CapturingInput() {
		return a.updateScreen(msg)
	}

	if a.commandBar.IsActive() {
		var cmd tea.Cmd
		a.commandBar, cmd = a.commandBar.Update(msg)
		a.syncScreenSize()
		return a, cmd
	}

	key := msg.String()
	if key == "ctrl+c" {
		return a, tea.Quit
	}

	// Screen-declared shortcuts shadow registry bindings on the same key.
	for _, op := range a.current.Operations() {
		if op.Shortcut == key && op.Execute != nil {
			return a, op.Execute()
		}
	}

	if cmd, ok := a.commandBar.TriggerShortcut(key); ok {
		a.syncScreenSize()
		return a, cmd
	}

	switch key {
	case a.keys.Quit:
		return a, tea.Quit

	case a.keys.Back:
		// esc clears an accepted filter before walking history
		if a.commandBar.GetInput() != "" {
			var cmd tea.Cmd
			a.commandBar, cmd = a.commandBar.Update(msg)
			return a, cmd
		}
		if screenFilter(a.current) != "" {
			return a, func() tea.Msg { return types.ClearFilterMsg{} }
		}
		return a, a.navigateBack()

	case a.keys.Help:
		return a, func() tea.Msg { return types.ToggleOperationsMsg{} }
	}

	if a.keys.IsNavigation(key) {
		return a.updateScreen(msg)
	}

	var cmd tea.Cmd
	a.commandBar, cmd = a.commandBar.Update(msg)
	a.syncScreenSize()
	return a, cmd
}

// switchScreen makes the target screen current. Forward switches push
// the screen we are leaving onto the history stack; back navigation
// restores the filter context and fuzzy filter saved with it. A switch
// to the focused screen pushes only when it narrows the view, so esc
// after ":ns" lands on the unfiltered list.
func (a *App) switchScreen(msg types.ScreenSwitchMsg) (tea.Model, tea.Cmd) {
	next, ok := a.registry.Get(msg.ScreenID)
	if !ok {
		logging.Warn("unknown screen requested", "screen", msg.ScreenID)
		return a, func() tea.Msg {
			return types.ErrorStatusMsg("Unknown screen: " + msg.ScreenID)
		}
	}

	sameScreen := a.current.ID() == msg.ScreenID

	if !msg.IsBackNav && (!sameScreen || msg.FilterContext != nil) {
		a.history = append(a.history, historyEntry{
			screenID:      a.current.ID(),
			filterContext: screenFilterContext(a.current),
			filter:        screenFilter(a.current),
		})
	}

	// Let the outgoing screen release whatever it holds open, like a
	// log stream.
	if d, ok := a.current.(interface{ Deactivate() }); ok && !sameScreen {
		d.Deactivate()
	}

	logging.Debug("switching screen",
		"from", a.current.ID(), "to", msg.ScreenID, "back", msg.IsBackNav)

	a.current = next
	a.commandBar.SetScreen(next.ID())

	// The incoming context is installed nil included, so a plain
	// :screen switch lands unfiltered and back navigation reinstates
	// whatever was saved.
	if s, ok := next.(interface{ ApplyFilterContext(*types.FilterContext) }); ok {
		s.ApplyFilterContext(msg.FilterContext)
	}

	var cmds []tea.Cmd
	if msg.IsBackNav && msg.CommandBarFilter != "" {
		if cmd := a.commandBar.RestoreFilter(msg.CommandBarFilter); cmd != nil {
			cmds = append(cmds, cmd)
		}
	} else {
		cmds = append(cmds, func() tea.Msg { return types.ClearFilterMsg{} })
	}

	a.header.SetScreenTitle(next.Title())
	a.header.SetFilter(a.currentFilterDescription(msg))
	a.syncScreenSize()
	a.syncSelection()
	a.syncItemCount()

	cmds = append(cmds, next.Init())
	return a, tea.Batch(cmds...)
}

// currentFilterDescription prefers the context the screen actually holds
// over the one carried by the switch message.
func (a *App) currentFilterDescription(msg types.ScreenSwitchMsg) string {
	if g, ok := a.current.(interface{ GetFilterContext() *types.FilterContext }); ok {
		return g.GetFilterContext().Description()
	}
	return msg.FilterContext.Description()
}

// navigateBack pops the history stack and switches to the previous
// screen, restoring the filters that were active there.
func (a *App) navigateBack() tea.Cmd {
	if len(a.history) == 0 {
		return nil
	}

	last := a.history[len(a.history)-1]
	a.history = a.history[:len(a.history)-1]

	return func() tea.Msg {
		return types.ScreenSwitchMsg{
			ScreenID:         last.screenID,
			FilterContext:    last.filterContext,
			CommandBarFilter: last.filter,
			IsBackNav:        true,
		}
	}
}

// updateScreen forwards msg to the focused screen and keeps the command
// bar's selection context in step.
func (a *App) updateScreen(msg tea.Msg) (tea.Model, tea.Cmd) {
	model, cmd := a.current.Update(msg)
	if screen, ok := model.(types.Screen); ok {
		a.current = screen
	}
	a.syncSelection()
	return a, cmd
}

// showStatus puts a message on the status bar. Loading messages spin
// until a refresh completes; everything else clears itself after a
// few seconds.
func (a *App) showStatus(status types.StatusMsg) tea.Cmd {
	a.statusID++
	a.statusBar.SetMessage(status.Message, status.Type)

	var cmds []tea.Cmd
	if cmd := a.statusBar.GetSpinnerCmd(); cmd != nil {
		cmds = append(cmds, cmd)
	}

	if status.Type != types.MessageTypeLoading {
		id := a.statusID
		cmds = append(cmds, tea.Tick(components.StatusBarDisplayDuration, func(time.Time) tea.Msg {
			return types.ClearStatusMsg{MessageID: id}
		}))
	}

	return tea.Batch(cmds...)
}

// buildOperations merges the focused screen's operations with the
// registry actions that apply to it, for the operations overlay. A
// screen operation shadows a registry action bound to the same key.
func (a *App) buildOperations() []types.Operation {
	ops := a.current.Operations()

	shadowed := make(map[string]bool, len(ops))
	for _, op := range ops {
		if op.Shortcut != "" {
			shadowed[op.Shortcut] = true
		}
	}

	registry := a.commandBar.Registry()
	actions := registry.FilterByScreen(registry.GetByCategory(commands.CategoryAction), a.current.ID())
	for _, action := range actions {
		if action.Shortcut != "" && shadowed[action.Shortcut] {
			continue
		}
		name := action.Name
		ops = append(ops, types.Operation{
			ID:          name,
			Name:        name,
			Description: action.Description,
			Shortcut:    action.Shortcut,
			Execute: func() tea.Cmd {
				cmd, _ := a.commandBar.TriggerCommand(name)
				return cmd
			},
		})
	}

	return ops
}

// syncScreenSize hands the focused screen the body area left over after
// the chrome, which changes as the command bar opens and closes.
func (a *App) syncScreenSize() {
	if !a.ready {
		return
	}
	bodyHeight := a.layout.CalculateBodyHeight(a.commandBar.GetTotalHeight())
	if s, ok := a.current.(interface{ SetSize(width, height int) }); ok {
		s.SetSize(a.width, bodyHeight)
	}
}

func (a *App) syncSelection() {
	if s, ok := a.current.(types.ScreenWithSelection); ok {
		a.commandBar.SetSelectedResource(s.GetSelectedResource())
	} else {
		a.commandBar.SetSelectedResource(nil)
	}
}

func (a *App) syncItemCount() {
	if c, ok := a.current.(interface{ ItemCount() int }); ok {
		a.header.SetItemCount(c.ItemCount())
	} else {
		a.header.SetItemCount(0)
	}
}

// screenFilter returns the screen's active fuzzy filter, if it has one.
func screenFilter(s types.Screen) string {
	if f, ok := s.(interface{ GetFilter() string }); ok {
		return f.GetFilter()
	}
	return ""
}

// screenFilterContext returns the screen's active filter context, if it
// has one.
func screenFilterContext(s types.Screen) *types.FilterContext {
	if f, ok := s.(interface{ GetFilterContext() *types.FilterContext }); ok {
		return f.GetFilterContext()
	}
	return nil
}

func (a *App) View() string {
	if !a.ready {
		return "Starting " + appName + "..."
	}

	if a.fullScreen != nil {
		return a.fullScreen.View()
	}

	if a.operationsModal != nil {
		return a.operationsModal.CenteredView(a.width, a.height)
	}

	return a.layout.Render(
		a.header.View(),
		a.current.View(),
		a.statusBar.View(),
		a.commandBarView(),
	)
}

// commandBarView stacks the bar, palette items and hint line; whichever
// parts are empty for the current state drop out.
func (a *App) commandBarView() string {
	parts := make([]string, 0, 3)
	if v := a.commandBar.View(); v != "" {
		parts = append(parts, v)
	}
	if v := a.commandBar.ViewPaletteItems(); v != "" {
		parts = append(parts, v)
	}
	if v := a.commandBar.ViewHints(); v != "" {
		parts = append(parts, v)
	}
	return strings.Join(parts, "\n")
}
