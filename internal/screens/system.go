package screens

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/quarterdeckhq/quarterdeck/internal/api"
	"github.com/quarterdeckhq/quarterdeck/internal/types"
	"github.com/quarterdeckhq/quarterdeck/internal/ui"
)

// SystemScreen displays per-service client statistics: one row per API
// surface with request counts, error counts and latencies, plus a totals
// row. Stats come from the client's in-memory counters, so the refresh
// is synchronous.
type SystemScreen struct {
	client api.Client
	theme  *ui.Theme
	table  table.Model
	width  int
	height int
}

// NewSystemScreen creates a new system statistics screen
func NewSystemScreen(client api.Client, theme *ui.Theme) *SystemScreen {
	columns := []table.Column{
		{Title: "Service", Width: 14},
		{Title: "Requests", Width: 10},
		{Title: "Errors", Width: 8},
		{Title: "Avg Latency", Width: 12},
		{Title: "Last Latency", Width: 12},
		{Title: "Last Call", Width: 10},
		{Title: "Last Error", Width: 40},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(20),
	)
	t.SetStyles(theme.ToTableStyles())

	return &SystemScreen{
		client: client,
		theme:  theme,
		table:  t,
	}
}

func (s *SystemScreen) Init() tea.Cmd {
	s.refreshRows()
	return s.scheduleTick()
}

func (s *SystemScreen) scheduleTick() tea.Cmd {
	return tea.Tick(SystemRefreshInterval, func(t time.Time) tea.Msg {
		return tickMsg{screenID: s.ID(), time: t}
	})
}

func (s *SystemScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.SetSize(msg.Width, msg.Height)
		return s, nil

	case tickMsg:
		// Ignore ticks from other screens (prevents multiple concurrent ticks)
		if msg.screenID != s.ID() {
			return s, nil
		}
		s.refreshRows()
		return s, s.scheduleTick()
	}

	var cmd tea.Cmd
	s.table, cmd = s.table.Update(msg)
	return s, cmd
}

func (s *SystemScreen) View() string {
	return s.table.View()
}

func (s *SystemScreen) refreshRows() {
	stats := s.client.Stats()

	var totalRequests, totalErrors int64

	rows := make([]table.Row, 0, len(stats)+2) // +2 for separator and totals
	for _, stat := range stats {
		rows = append(rows, table.Row{
			stat.Service,
			fmt.Sprintf("%d", stat.Requests),
			fmt.Sprintf("%d", stat.Errors),
			formatLatency(stat.AvgLatency),
			formatLatency(stat.LastLatency),
			formatLastCall(stat.LastCall),
			truncateError(stat.LastError),
		})

		totalRequests += stat.Requests
		totalErrors += stat.Errors
	}

	rows = append(rows, table.Row{
		"──────────────",
		"──────────",
		"────────",
		"────────────",
		"────────────",
		"──────────",
		"────────────────────────────────────────",
	})

	rows = append(rows, table.Row{
		"TOTAL",
		fmt.Sprintf("%d", totalRequests),
		fmt.Sprintf("%d", totalErrors),
		"",
		"",
		"",
		"",
	})

	s.table.SetRows(rows)
}

func formatLatency(d time.Duration) string {
	if d <= 0 {
		return "-"
	}
	return d.Round(time.Millisecond).String()
}

func formatLastCall(t time.Time) string {
	if t.IsZero() {
		return "never"
	}
	return t.Format("15:04:05")
}

func truncateError(err string) string {
	if err == "" {
		return "-"
	}
	if len(err) > 40 {
		return err[:37] + "..."
	}
	return err
}

func (s *SystemScreen) ID() string {
	return "system"
}

func (s *SystemScreen) Title() string {
	return "System"
}

func (s *SystemScreen) HelpText() string {
	return "↑/↓: navigate • esc: back • q: quit"
}

func (s *SystemScreen) Operations() []types.Operation {
	return []types.Operation{}
}

func (s *SystemScreen) SetSize(width, height int) {
	s.width = width
	s.height = height
	s.table.SetHeight(height)
}

func (s *SystemScreen) GetSelectedResource() map[string]any {
	return nil
}

func (s *SystemScreen) ApplyFilterContext(ctx *types.FilterContext) {
	// No-op for system screen
}

func (s *SystemScreen) GetFilterContext() *types.FilterContext {
	return nil
}
