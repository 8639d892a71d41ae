package screens

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/quarterdeckhq/quarterdeck/internal/api"
	"github.com/quarterdeckhq/quarterdeck/internal/types"
	"github.com/quarterdeckhq/quarterdeck/internal/ui"
)

// optimizationDataMsg carries one dashboard fetch: the cost summary plus
// the recommendation rows.
type optimizationDataMsg struct {
	dashboard *api.OptimizationDashboard
	took      time.Duration
}

// Rows the summary panel takes away from the table.
const optimizationHeaderHeight = 5

// GetOptimizationScreenConfig returns the config for the cost
// Optimization screen: a summary panel above the recommendation table.
// Apply and dismiss are command registry actions ("a", "x"), both behind
// a confirmation prompt.
func GetOptimizationScreenConfig() ScreenConfig {
	// Latest summary for the header panel; only touched from the
	// program's event loop.
	var summary *api.OptimizationSummary

	return ScreenConfig{
		ID:    "optimization",
		Title: "Optimization",
		Columns: []ColumnConfig{
			{Field: "Workload.Namespace", Title: "Namespace", Width: 16, Priority: 2},
			{Field: "Workload.Name", Title: "Workload", Width: 0, Priority: 1},
			{Field: "Kind", Title: "Change", Width: 16, Format: FormatKind, Priority: 1},
			{Field: "Current", Title: "Current", Width: 10, Priority: 2},
			{Field: "Recommended", Title: "Recommended", Width: 12, Priority: 1},
			{Field: "SavingsMonthlyUSD", Title: "Savings/mo", Width: 10, Format: FormatUSD, Priority: 1},
			{Field: "Risk", Title: "Risk", Width: 8, Priority: 2},
			{Field: "Confidence", Title: "Confidence", Width: 10, Format: FormatConfidence, Priority: 3},
			{Field: "Status", Title: "Status", Width: 10, Priority: 1},
		},
		SearchFields:      []string{"Workload.Namespace", "Workload.Name", "Kind", "Risk", "Status"},
		HelpText:          "↑/↓: navigate • enter: rationale • a: apply • x: dismiss • type: filter • esc: back",
		RefreshInterval:   OptimizationRefreshInterval,
		TrackSelection:    true,
		NavigationHandler: recommendationDetail,
		CustomRefresh: func(s *ConfigScreen) tea.Cmd {
			client := s.client
			return func() tea.Msg {
				start := time.Now()
				dashboard, err := client.OptimizationDashboard(context.Background())
				if err != nil {
					return types.ErrorStatusMsg(fmt.Sprintf("Failed to fetch Optimization: %v", err))
				}
				return optimizationDataMsg{dashboard: dashboard, took: time.Since(start)}
			}
		},
		CustomUpdate: func(s *ConfigScreen, msg tea.Msg) (tea.Model, tea.Cmd) {
			switch msg := msg.(type) {
			case optimizationDataMsg:
				summary = &msg.dashboard.Summary
				s.setItems(toItems(msg.dashboard.Recommendations))
				took := msg.took
				return s, func() tea.Msg {
					return types.RefreshCompleteMsg{Duration: took}
				}

			case tea.WindowSizeMsg:
				s.SetSize(msg.Width, msg.Height)
				s.table.SetHeight(max(msg.Height-optimizationHeaderHeight, 3))
				return s, nil
			}

			return s.DefaultUpdate(msg)
		},
		CustomView: func(s *ConfigScreen) string {
			if summary == nil {
				return ""
			}
			header := renderOptimizationHeader(s.theme, s.width, summary)
			return lipgloss.JoinVertical(lipgloss.Left, header, "", s.table.View())
		},
	}
}

func renderOptimizationHeader(theme *ui.Theme, width int, sum *api.OptimizationSummary) string {
	label := lipgloss.NewStyle().Foreground(theme.Muted)
	value := lipgloss.NewStyle().Foreground(theme.Foreground).Bold(true)

	line1 := fmt.Sprintf("%s %s   %s %s   %s %s",
		label.Render("Efficiency:"),
		value.Render(fmt.Sprintf("%s (%d/100)", sum.Grade, sum.EfficiencyScore)),
		label.Render("Monthly cost:"),
		value.Render(FormatUSD(sum.MonthlyCostUSD)),
		label.Render("Projected savings:"),
		value.Render(FormatUSD(sum.ProjectedSavingsUSD)+"/mo"),
	)
	line2 := label.Render(fmt.Sprintf("%d workloads analyzed • %d pending • %d applied",
		sum.AnalyzedWorkloads, sum.PendingCount, sum.AppliedCount))

	panel := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1).
		Width(max(width-2, 20))

	return panel.Render(line1 + "\n" + line2)
}
