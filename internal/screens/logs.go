package screens

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/quarterdeckhq/quarterdeck/internal/api"
	"github.com/quarterdeckhq/quarterdeck/internal/components"
	"github.com/quarterdeckhq/quarterdeck/internal/messages"
	"github.com/quarterdeckhq/quarterdeck/internal/types"
	"github.com/quarterdeckhq/quarterdeck/internal/ui"
)

// Rows above the viewport (target line plus a blank spacer).
const logsHeaderHeight = 2

// logStreamOpenedMsg carries a freshly dialed stream back to the screen.
type logStreamOpenedMsg struct {
	stream *api.LogStream
}

// logFrameMsg is one frame relayed off the stream channel. The stream
// pointer lets the screen drop frames from a stream it already replaced.
type logFrameMsg struct {
	stream *api.LogStream
	frame  api.LogFrame
	ok     bool
}

// waitForLogFrame blocks on the stream until the next frame; the relay is
// re-armed by the handler after every frame.
func waitForLogFrame(stream *api.LogStream) tea.Cmd {
	return func() tea.Msg {
		frame, ok := <-stream.Frames()
		return logFrameMsg{stream: stream, frame: frame, ok: ok}
	}
}

// LogsScreen streams one pod's logs over a WebSocket into a bounded
// buffer. Follow pins the viewport to the newest line, pause drops
// incoming frames, and the command bar's filter narrows the visible
// lines without touching the buffer.
type LogsScreen struct {
	client   api.Client
	theme    *ui.Theme
	viewport viewport.Model
	buffer   *components.LogBuffer

	target api.LogTarget
	stream *api.LogStream

	filter string
	shown  int
	follow bool
	paused bool
	ended  bool

	width  int
	height int
}

func NewLogsScreen(client api.Client, theme *ui.Theme) *LogsScreen {
	return &LogsScreen{
		client:   client,
		theme:    theme,
		viewport: viewport.New(80, 20),
		buffer:   components.NewLogBuffer(),
		follow:   true,
	}
}

func (s *LogsScreen) ID() string {
	return "logs"
}

func (s *LogsScreen) Title() string {
	title := "Logs"
	if s.target.Pod != "" {
		title = "Logs: " + s.target.Namespace + "/" + s.target.Pod
	}
	return title
}

func (s *LogsScreen) HelpText() string {
	return "↑/↓: scroll • f: follow • p: pause • c: copy • r: reconnect • type: filter • esc: back"
}

func (s *LogsScreen) Operations() []types.Operation {
	return []types.Operation{
		{ID: "follow", Name: "Toggle Follow", Description: "Pin the view to the newest line", Shortcut: "f",
			Execute: func() tea.Cmd { return s.toggleFollow() }},
		{ID: "pause", Name: "Toggle Pause", Description: "Drop incoming lines while paused", Shortcut: "p",
			Execute: func() tea.Cmd { return s.togglePause() }},
		{ID: "copy", Name: "Copy Visible", Description: "Copy the visible lines to the clipboard", Shortcut: "c",
			Execute: func() tea.Cmd { return s.copyVisible() }},
		{ID: "reconnect", Name: "Reconnect", Description: "Close and re-dial the stream", Shortcut: "r",
			Execute: func() tea.Cmd { return s.reconnect() }},
	}
}

// ApplyFilterContext reads the stream target prepared by the logs
// command: pod name in Value, the rest in metadata.
func (s *LogsScreen) ApplyFilterContext(fc *types.FilterContext) {
	if fc == nil || fc.Field != "resource" || fc.Metadata["kind"] != "pod" {
		return
	}

	tail := api.DefaultLogTail
	if t, err := strconv.Atoi(fc.Metadata["tail"]); err == nil && t > 0 {
		tail = t
	}

	s.target = api.LogTarget{
		Namespace: fc.Metadata["namespace"],
		Pod:       fc.Value,
		Container: fc.Metadata["container"],
		Tail:      tail,
		Follow:    fc.Metadata["follow"] != "false",
	}
	s.follow = s.target.Follow
}

func (s *LogsScreen) Init() tea.Cmd {
	if s.target.Pod == "" {
		return messages.InfoCmd("No pod selected; press l on the pods screen")
	}
	if s.stream != nil {
		// Still streaming from a previous visit.
		return nil
	}
	return tea.Batch(
		s.openStream(),
		func() tea.Msg {
			return types.LoadingMsg(fmt.Sprintf("Streaming logs from %s/%s...", s.target.Namespace, s.target.Pod))
		},
	)
}

// Deactivate tears the stream down when the app switches away. The relay
// drains out on its own once the channel closes.
func (s *LogsScreen) Deactivate() {
	if s.stream != nil {
		s.stream.Close()
		s.stream = nil
	}
}

func (s *LogsScreen) openStream() tea.Cmd {
	client := s.client
	target := s.target
	return func() tea.Msg {
		stream, err := client.StreamLogs(context.Background(), target)
		if err != nil {
			return types.ErrorStatusMsg(fmt.Sprintf("Failed to open log stream for %s/%s: %v",
				target.Namespace, target.Pod, err))
		}
		return logStreamOpenedMsg{stream: stream}
	}
}

func (s *LogsScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case logStreamOpenedMsg:
		if s.stream != nil {
			s.stream.Close()
		}
		s.stream = msg.stream
		s.buffer = components.NewLogBuffer()
		s.ended = false
		s.refreshViewport()
		return s, tea.Batch(
			waitForLogFrame(msg.stream),
			func() tea.Msg { return types.RefreshCompleteMsg{} },
		)

	case logFrameMsg:
		return s.handleFrame(msg)

	case types.FilterUpdateMsg:
		s.filter = msg.Filter
		s.refreshViewport()
		return s, nil

	case types.ClearFilterMsg:
		s.filter = ""
		s.refreshViewport()
		return s, nil

	case tea.WindowSizeMsg:
		s.SetSize(msg.Width, msg.Height)
		return s, nil
	}

	var cmd tea.Cmd
	s.viewport, cmd = s.viewport.Update(msg)
	return s, cmd
}

func (s *LogsScreen) handleFrame(msg logFrameMsg) (tea.Model, tea.Cmd) {
	if msg.stream != s.stream {
		return s, nil
	}

	if !msg.ok {
		s.stream = nil
		if !s.ended {
			s.ended = true
			return s, messages.InfoCmd("Log stream closed")
		}
		return s, nil
	}

	var cmd tea.Cmd
	switch msg.frame.Type {
	case api.FrameLog:
		if !s.paused {
			s.buffer.Append(s.formatLine(msg.frame))
			s.refreshViewport()
		}
	case api.FrameError:
		cmd = messages.ErrorCmd("Log stream error: %s", msg.frame.Line)
	case api.FrameEOF:
		s.ended = true
		cmd = messages.InfoCmd("Log stream ended")
	}

	return s, tea.Batch(waitForLogFrame(msg.stream), cmd)
}

func (s *LogsScreen) formatLine(frame api.LogFrame) string {
	if frame.Container != "" && frame.Container != s.target.Container {
		return "[" + frame.Container + "] " + frame.Line
	}
	return frame.Line
}

func (s *LogsScreen) toggleFollow() tea.Cmd {
	s.follow = !s.follow
	if s.follow {
		s.viewport.GotoBottom()
		return messages.InfoCmd("Following")
	}
	return messages.InfoCmd("Follow off")
}

func (s *LogsScreen) togglePause() tea.Cmd {
	s.paused = !s.paused
	if s.paused {
		return messages.InfoCmd("Paused; incoming lines are dropped")
	}
	return messages.InfoCmd("Resumed")
}

func (s *LogsScreen) copyVisible() tea.Cmd {
	lines := s.buffer.Matching(s.filter)
	if len(lines) == 0 {
		return messages.ErrorCmd("No lines to copy")
	}
	text := strings.Join(lines, "\n")
	count := len(lines)
	return func() tea.Msg {
		if err := clipboard.WriteAll(text); err != nil {
			return types.ErrorStatusMsg(fmt.Sprintf("Failed to copy: %v", err))
		}
		return types.SuccessMsg(fmt.Sprintf("Copied %d lines", count))
	}
}

func (s *LogsScreen) reconnect() tea.Cmd {
	if s.target.Pod == "" {
		return messages.ErrorCmd("No pod selected")
	}
	s.Deactivate()
	return tea.Batch(
		s.openStream(),
		func() tea.Msg {
			return types.LoadingMsg(fmt.Sprintf("Reconnecting to %s/%s...", s.target.Namespace, s.target.Pod))
		},
	)
}

// GetFilter returns the active line filter, empty when unfiltered.
func (s *LogsScreen) GetFilter() string {
	return s.filter
}

func (s *LogsScreen) refreshViewport() {
	lines := s.buffer.Matching(s.filter)
	s.shown = len(lines)
	s.viewport.SetContent(strings.Join(lines, "\n"))
	if s.follow {
		s.viewport.GotoBottom()
	}
}

func (s *LogsScreen) SetSize(width, height int) {
	s.width = width
	s.height = height
	s.viewport.Width = width
	s.viewport.Height = max(height-logsHeaderHeight, 3)
}

func (s *LogsScreen) View() string {
	if s.target.Pod == "" {
		hint := lipgloss.NewStyle().Foreground(s.theme.Muted).
			Render("No pod selected. Press l on the pods screen to stream logs.")
		return lipgloss.Place(s.width, s.height, lipgloss.Center, lipgloss.Center, hint)
	}

	return s.renderTargetLine() + "\n\n" + s.viewport.View()
}

func (s *LogsScreen) renderTargetLine() string {
	target := s.target.Namespace + "/" + s.target.Pod
	if s.target.Container != "" {
		target += " (" + s.target.Container + ")"
	}

	state := make([]string, 0, 4)
	if s.follow {
		state = append(state, "following")
	}
	if s.paused {
		state = append(state, "paused")
	}
	if s.ended {
		state = append(state, "stream ended, r to reconnect")
	}
	if s.filter != "" {
		state = append(state, fmt.Sprintf("filter %q (%d/%d)", s.filter, s.shown, s.buffer.Len()))
	} else {
		state = append(state, fmt.Sprintf("%d lines (%d received)", s.buffer.Len(), s.buffer.Total()))
	}

	targetStyle := lipgloss.NewStyle().Foreground(s.theme.Primary).Bold(true)
	stateStyle := lipgloss.NewStyle().Foreground(s.theme.Muted)

	return targetStyle.Render(target) + "  " + stateStyle.Render(strings.Join(state, " • "))
}
