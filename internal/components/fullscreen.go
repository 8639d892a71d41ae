package components

import (
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/quarterdeckhq/quarterdeck/internal/ui"
)

// FullScreenViewType represents the type of full-screen view
type FullScreenViewType int

const (
	// FullScreenYAML shows YAML content (values, manifests) with highlighting
	FullScreenYAML FullScreenViewType = iota
	// FullScreenDetail shows plain detail text (history, event, incident)
	FullScreenDetail
)

// FullScreen displays scrollable content over the whole terminal, used for
// release values, dry-run manifests, history, and event or incident detail.
type FullScreen struct {
	viewType     FullScreenViewType
	resourceName string
	content      string
	width        int
	height       int
	theme        *ui.Theme
	scrollOffset int
}

// NewFullScreen creates a new full-screen component
func NewFullScreen(viewType FullScreenViewType, resourceName string, content string, theme *ui.Theme) *FullScreen {
	return &FullScreen{
		viewType:     viewType,
		resourceName: resourceName,
		content:      content,
		width:        80,
		height:       24,
		theme:        theme,
	}
}

// SetSize updates the size of the full-screen view
func (fs *FullScreen) SetSize(width, height int) {
	fs.width = width
	fs.height = height
}

func (fs *FullScreen) pageSize() int {
	return fs.height - FullScreenReservedLines
}

func (fs *FullScreen) maxOffset() int {
	lines := strings.Count(fs.content, "\n") + 1
	return max(0, lines-fs.pageSize())
}

// Update handles scrolling input for the full-screen view
func (fs *FullScreen) Update(msg tea.Msg) (*FullScreen, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return fs, nil
	}

	switch keyMsg.String() {
	case "up", "k":
		fs.scrollOffset = max(0, fs.scrollOffset-1)
	case "down", "j":
		fs.scrollOffset = min(fs.maxOffset(), fs.scrollOffset+1)
	case "pgup":
		fs.scrollOffset = max(0, fs.scrollOffset-fs.pageSize())
	case "pgdown":
		fs.scrollOffset = min(fs.maxOffset(), fs.scrollOffset+fs.pageSize())
	case "home", "g":
		fs.scrollOffset = 0
	case "end", "G":
		fs.scrollOffset = fs.maxOffset()
	}
	return fs, nil
}

// View renders the full-screen view
func (fs *FullScreen) View() string {
	titleStyle := lipgloss.NewStyle().
		Foreground(fs.theme.Primary).
		Bold(true)

	hintStyle := lipgloss.NewStyle().
		Foreground(fs.theme.Muted)

	var viewTypeStr string
	switch fs.viewType {
	case FullScreenYAML:
		viewTypeStr = "YAML"
	case FullScreenDetail:
		viewTypeStr = "Detail"
	}

	title := titleStyle.Render(viewTypeStr + ": " + fs.resourceName)
	hint := hintStyle.Render("[ESC] Back  [↑↓/jk] Scroll  [PgUp/PgDn] Page  [g/G] Top/Bottom")

	headerLine := lipgloss.JoinHorizontal(
		lipgloss.Top,
		title,
		strings.Repeat(" ", max(0, fs.width-lipgloss.Width(title)-lipgloss.Width(hint))),
		hint,
	)

	separator := hintStyle.Render(strings.Repeat("─", fs.width))

	displayContent := fs.content
	if fs.viewType == FullScreenYAML {
		displayContent = fs.highlightYAML(fs.content)
	}

	// Apply scroll offset and pad to the viewport height
	lines := strings.Split(displayContent, "\n")
	visibleHeight := fs.pageSize()

	var visibleLines []string
	for i := fs.scrollOffset; i < len(lines) && i < fs.scrollOffset+visibleHeight; i++ {
		visibleLines = append(visibleLines, lines[i])
	}
	for len(visibleLines) < visibleHeight {
		visibleLines = append(visibleLines, "")
	}

	content := strings.Join(visibleLines, "\n")

	// Show scroll position if there's more content than fits
	scrollInfo := ""
	if len(lines) > visibleHeight {
		scrollInfo = hintStyle.Render(
			"  " + strconv.Itoa(fs.scrollOffset+1) + "-" +
				strconv.Itoa(min(fs.scrollOffset+visibleHeight, len(lines))) +
				" of " + strconv.Itoa(len(lines)),
		)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		headerLine,
		separator,
		content,
		scrollInfo,
	)
}

// highlightYAML applies simple syntax highlighting to YAML content
func (fs *FullScreen) highlightYAML(yaml string) string {
	lines := strings.Split(yaml, "\n")

	keyStyle := lipgloss.NewStyle().Foreground(fs.theme.Primary)
	valueStyle := lipgloss.NewStyle().Foreground(fs.theme.Success)
	commentStyle := lipgloss.NewStyle().Foreground(fs.theme.Muted)

	var highlighted []string
	for _, line := range lines {
		// Comment
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			highlighted = append(highlighted, commentStyle.Render(line))
			continue
		}

		// Key-value pair
		if strings.Contains(line, ":") {
			parts := strings.SplitN(line, ":", 2)
			key := keyStyle.Render(parts[0] + ":")
			value := ""
			if len(parts) > 1 {
				value = valueStyle.Render(parts[1])
			}
			highlighted = append(highlighted, key+value)
			continue
		}

		// Default (list items, etc.)
		highlighted = append(highlighted, line)
	}

	return strings.Join(highlighted, "\n")
}
