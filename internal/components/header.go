package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/quarterdeckhq/quarterdeck/internal/ui"
)

// Header renders the top line of the app: app name, screen title, item
// count and active filter on the left, server and refresh age on the right.
type Header struct {
	appName     string
	screenTitle string
	server      string
	filterDesc  string
	itemCount   int
	lastRefresh time.Time
	width       int
	theme       *ui.Theme
}

func NewHeader(appName string, theme *ui.Theme) *Header {
	return &Header{
		appName: appName,
		theme:   theme,
	}
}

func (h *Header) SetScreenTitle(title string) {
	h.screenTitle = title
}

// SetServer sets the server host shown on the right side.
func (h *Header) SetServer(server string) {
	h.server = server
}

// SetFilter sets the active filter description ("filtered by node: node-1").
// An empty string clears it.
func (h *Header) SetFilter(desc string) {
	h.filterDesc = desc
}

func (h *Header) SetItemCount(count int) {
	h.itemCount = count
}

func (h *Header) SetLastRefresh(t time.Time) {
	h.lastRefresh = t
}

func (h *Header) SetWidth(width int) {
	h.width = width
}

func (h *Header) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(h.theme.Primary)

	mutedStyle := lipgloss.NewStyle().
		Foreground(h.theme.Muted).
		Padding(0, 1)

	// Left side: " quarterdeck  Releases • 5 items • filtered by namespace: production"
	leftParts := []string{}
	if h.screenTitle != "" {
		leftParts = append(leftParts, titleStyle.Render(h.screenTitle))
	}
	if h.itemCount > 0 {
		leftParts = append(leftParts, mutedStyle.Render(fmt.Sprintf("%d items", h.itemCount)))
	}
	if h.filterDesc != "" {
		leftParts = append(leftParts, mutedStyle.Render(h.filterDesc))
	}

	appTitle := h.theme.AppTitle.Padding(0, 1).Render(h.appName)
	left := appTitle + " " + strings.Join(leftParts, mutedStyle.Render("•"))

	// Right side: "localhost:8080 • refreshed 2s ago"
	rightParts := []string{}
	if h.server != "" {
		rightParts = append(rightParts, h.server)
	}
	if !h.lastRefresh.IsZero() {
		rightParts = append(rightParts, fmt.Sprintf("refreshed %s ago", refreshAge(time.Since(h.lastRefresh))))
	}
	right := mutedStyle.Render(strings.Join(rightParts, " • "))

	// Push the right side to the terminal edge
	spacing := h.width - lipgloss.Width(left) - lipgloss.Width(right)
	if spacing < 0 {
		spacing = 0
	}
	spacer := lipgloss.NewStyle().Width(spacing).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Top, left, spacer, right)
}

func refreshAge(elapsed time.Duration) string {
	switch {
	case elapsed < time.Minute:
		return fmt.Sprintf("%ds", int(elapsed.Seconds()))
	case elapsed < time.Hour:
		return fmt.Sprintf("%dm", int(elapsed.Minutes()))
	default:
		return fmt.Sprintf("%dh", int(elapsed.Hours()))
	}
}
