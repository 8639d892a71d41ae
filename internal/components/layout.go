package components

import (
	"github.com/charmbracelet/lipgloss"
)

// Layout stacks the app chrome: header, screen body, status bar, command bar.
type Layout struct {
	width  int
	height int
}

func NewLayout(width, height int) *Layout {
	return &Layout{
		width:  width,
		height: height,
	}
}

func (l *Layout) SetSize(width, height int) {
	l.width = width
	l.height = height
}

// CalculateBodyHeight returns the height available for the screen body once
// the chrome is accounted for: header (1), blank line (1), status bar (1),
// plus the command bar's current height (input, palette, hints).
func (l *Layout) CalculateBodyHeight(commandBarHeight int) int {
	reserved := 3 + commandBarHeight
	bodyHeight := l.height - reserved
	if bodyHeight < 3 {
		bodyHeight = 3
	}
	return bodyHeight
}

// Render builds the full layout. Empty sections are skipped except the
// status bar, which always occupies its line so the body doesn't jump.
func (l *Layout) Render(header, body, statusBar, commandBar string) string {
	sections := []string{}

	if header != "" {
		sections = append(sections, header)
		sections = append(sections, "")
	}

	if body != "" {
		sections = append(sections, body)
	}

	sections = append(sections, statusBar)

	if commandBar != "" {
		sections = append(sections, commandBar)
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
