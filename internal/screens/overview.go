package screens

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/sync/errgroup"

	"github.com/quarterdeckhq/quarterdeck/internal/api"
	"github.com/quarterdeckhq/quarterdeck/internal/types"
	"github.com/quarterdeckhq/quarterdeck/internal/ui"
)

// overviewDataMsg carries one overview fetch: cluster health plus the
// active incidents for the bottom panel.
type overviewDataMsg struct {
	health    *api.ClusterHealth
	incidents []api.Incident
	took      time.Duration
}

// OverviewScreen is the landing screen: health score, resource counts,
// pod status and alerts, with the most recent active incidents below.
// Health and incidents are fetched in parallel; a failed incident fetch
// leaves that panel empty rather than failing the screen.
type OverviewScreen struct {
	client      api.Client
	theme       *ui.Theme
	width       int
	height      int
	health      *api.ClusterHealth
	incidents   []api.Incident
	initialized bool
}

func NewOverviewScreen(client api.Client, theme *ui.Theme) *OverviewScreen {
	return &OverviewScreen{client: client, theme: theme}
}

func (s *OverviewScreen) ID() string {
	return "overview"
}

func (s *OverviewScreen) Title() string {
	return "Overview"
}

func (s *OverviewScreen) HelpText() string {
	return "enter: incidents • :: commands • /: search • ?: help • q: quit"
}

func (s *OverviewScreen) Operations() []types.Operation {
	return nil
}

func (s *OverviewScreen) Init() tea.Cmd {
	cmds := []tea.Cmd{s.Refresh(), s.scheduleTick()}

	if !s.initialized {
		s.initialized = true
		cmds = append(cmds, func() tea.Msg {
			return types.LoadingMsg("Loading Overview...")
		})
	}

	return tea.Batch(cmds...)
}

func (s *OverviewScreen) scheduleTick() tea.Cmd {
	return tea.Tick(OverviewRefreshInterval, func(t time.Time) tea.Msg {
		return tickMsg{screenID: s.ID(), time: t}
	})
}

// Refresh fetches health and active incidents in parallel off the event
// loop.
func (s *OverviewScreen) Refresh() tea.Cmd {
	client := s.client
	return func() tea.Msg {
		start := time.Now()

		var (
			health    *api.ClusterHealth
			incidents []api.Incident
		)

		g, ctx := errgroup.WithContext(context.Background())
		g.Go(func() error {
			h, err := client.ClusterHealth(ctx)
			if err != nil {
				return err
			}
			health = h
			return nil
		})
		g.Go(func() error {
			// Incidents are supporting detail here; swallow the error and
			// show an empty panel instead of failing the whole screen.
			in, err := client.Incidents(ctx, api.IncidentActive)
			if err != nil {
				return nil
			}
			incidents = in
			return nil
		})

		if err := g.Wait(); err != nil {
			return types.ErrorStatusMsg(fmt.Sprintf("Failed to fetch Overview: %v", err))
		}

		if len(incidents) > OverviewIncidentLimit {
			incidents = incidents[:OverviewIncidentLimit]
		}

		return overviewDataMsg{health: health, incidents: incidents, took: time.Since(start)}
	}
}

func (s *OverviewScreen) GetRefreshInterval() time.Duration {
	return OverviewRefreshInterval
}

func (s *OverviewScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case overviewDataMsg:
		s.health = msg.health
		s.incidents = msg.incidents
		took := msg.took
		return s, func() tea.Msg {
			return types.RefreshCompleteMsg{Duration: took}
		}

	case tickMsg:
		if msg.screenID != s.ID() {
			return s, nil
		}
		return s, tea.Batch(s.Refresh(), s.scheduleTick())

	case tea.KeyMsg:
		if msg.Type == tea.KeyEnter {
			return s, switchTo("incidents", nil)
		}

	case tea.WindowSizeMsg:
		s.SetSize(msg.Width, msg.Height)
	}

	return s, nil
}

func (s *OverviewScreen) SetSize(width, height int) {
	s.width = width
	s.height = height
}

func (s *OverviewScreen) View() string {
	if s.health == nil {
		waiting := lipgloss.NewStyle().
			Foreground(s.theme.Muted).
			Render("Connecting to " + s.client.Server() + " ...")
		return lipgloss.Place(s.width, s.height, lipgloss.Center, lipgloss.Center, waiting)
	}

	h := s.health

	panelWidth := s.width - 4
	horizontal := s.width >= 100
	if horizontal {
		panelWidth = (s.width - 10) / 4
	}

	panels := []string{
		s.panel("Health", s.renderHealth(h), panelWidth),
		s.panel("Resources", s.renderCounts(h.Counts), panelWidth),
		s.panel("Pods", s.renderPodStatus(h.PodStatus), panelWidth),
		s.panel("Alerts", s.renderAlerts(h.Alerts), panelWidth),
	}

	var top string
	if horizontal {
		top = lipgloss.JoinHorizontal(lipgloss.Top, panels...)
	} else {
		top = lipgloss.JoinVertical(lipgloss.Left, panels...)
	}

	incidents := s.panel("Active Incidents", s.renderIncidents(), s.width-4)

	return lipgloss.JoinVertical(lipgloss.Left, top, incidents)
}

func (s *OverviewScreen) panel(title, content string, width int) string {
	titleStyle := lipgloss.NewStyle().Foreground(s.theme.Primary).Bold(true)
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.theme.Border).
		Padding(0, 1).
		Width(max(width, 20))

	return box.Render(titleStyle.Render(title) + "\n" + content)
}

func (s *OverviewScreen) renderHealth(h *api.ClusterHealth) string {
	gradeColor := s.theme.Success
	switch {
	case h.Health.Score < 60:
		gradeColor = s.theme.Error
	case h.Health.Score < 80:
		gradeColor = s.theme.Warning
	}
	grade := lipgloss.NewStyle().Foreground(gradeColor).Bold(true).
		Render(fmt.Sprintf("%s (%d/100)", h.Health.Grade, h.Health.Score))

	out := grade + "  " + h.Health.Status
	if u := h.Utilization; u != nil {
		out += fmt.Sprintf("\nCPU  %s of %.0f cores", FormatPercent(u.CPUPercent), u.CPUCores)
		out += fmt.Sprintf("\nMem  %s of %.0f GiB", FormatPercent(u.MemoryPercent), u.MemoryGiB)
	}
	return out
}

func (s *OverviewScreen) renderCounts(c api.ResourceCounts) string {
	return fmt.Sprintf("Nodes        %d\nPods         %d\nNamespaces   %d\nDeployments  %d",
		c.Nodes, c.Pods, c.Namespaces, c.Deployments)
}

func (s *OverviewScreen) renderPodStatus(p api.PodStatusCounts) string {
	warn := lipgloss.NewStyle().Foreground(s.theme.Warning)
	bad := lipgloss.NewStyle().Foreground(s.theme.Error)

	pending := fmt.Sprintf("%d", p.Pending)
	if p.Pending > 0 {
		pending = warn.Render(pending)
	}
	failed := fmt.Sprintf("%d", p.Failed)
	if p.Failed > 0 {
		failed = bad.Render(failed)
	}

	return fmt.Sprintf("Running    %d\nPending    %s\nFailed     %s\nSucceeded  %d",
		p.Running, pending, failed, p.Succeeded)
}

func (s *OverviewScreen) renderAlerts(a api.AlertSummary) string {
	if a.Warnings == 0 && a.Critical == 0 {
		return lipgloss.NewStyle().Foreground(s.theme.Muted).Render("No alerts")
	}

	out := fmt.Sprintf("%s critical, %s warnings",
		lipgloss.NewStyle().Foreground(s.theme.Error).Render(fmt.Sprintf("%d", a.Critical)),
		lipgloss.NewStyle().Foreground(s.theme.Warning).Render(fmt.Sprintf("%d", a.Warnings)))

	for _, alert := range a.Top {
		resource := alert.Resource
		if alert.Namespace != "" {
			resource = alert.Namespace + "/" + alert.Resource
		}
		out += fmt.Sprintf("\n%s  %s", alert.Reason, resource)
	}
	return out
}

func (s *OverviewScreen) renderIncidents() string {
	if len(s.incidents) == 0 {
		return lipgloss.NewStyle().Foreground(s.theme.Muted).Render("No active incidents")
	}

	var out string
	for i, in := range s.incidents {
		if i > 0 {
			out += "\n"
		}
		out += fmt.Sprintf("%s  %-8s  %s", s.severityBadge(in.Severity), FormatAge(in.CreatedAt), in.Title)
	}
	return out
}

func (s *OverviewScreen) severityBadge(severity string) string {
	color := s.theme.Muted
	switch severity {
	case api.SeverityCritical:
		color = s.theme.Error
	case api.SeverityWarning:
		color = s.theme.Warning
	}
	return lipgloss.NewStyle().Foreground(color).Render(fmt.Sprintf("%-8s", severity))
}
