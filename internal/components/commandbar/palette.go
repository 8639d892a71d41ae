package commandbar

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/quarterdeckhq/quarterdeck/internal/commands"
	"github.com/quarterdeckhq/quarterdeck/internal/ui"
)

// Palette manages command palette filtering, rendering, and navigation.
type Palette struct {
	items        []commands.Command
	index        int
	scrollOffset int // first visible item index
	registry     *commands.Registry
	theme        *ui.Theme
	width        int
}

// NewPalette creates a new palette manager.
func NewPalette(registry *commands.Registry, theme *ui.Theme, width int) *Palette {
	return &Palette{
		items:    []commands.Command{},
		registry: registry,
		theme:    theme,
		width:    width,
	}
}

// SetWidth updates the palette width.
func (p *Palette) SetWidth(width int) {
	p.width = width
}

// Filter filters commands by query and command type. Action commands are
// additionally narrowed to the ones applicable on the current screen.
func (p *Palette) Filter(query string, cmdType CommandType, screenID string) {
	var items []commands.Command

	switch cmdType {
	case CommandTypeScreen:
		if query == "" {
			items = p.registry.GetByCategory(commands.CategoryScreen)
		} else {
			items = p.registry.Filter(query, commands.CategoryScreen)
		}

	case CommandTypeAction:
		if query == "" {
			items = p.registry.GetByCategory(commands.CategoryAction)
		} else {
			items = p.registry.Filter(query, commands.CategoryAction)
		}
		items = p.registry.FilterByScreen(items, screenID)
	}

	p.items = items
	p.index = 0
	p.scrollOffset = 0
}

// NavigateUp moves the selection up, scrolling the viewport if needed.
func (p *Palette) NavigateUp() {
	if p.index > 0 {
		p.index--
		if p.index < p.scrollOffset {
			p.scrollOffset = p.index
		}
	}
}

// NavigateDown moves the selection down, scrolling the viewport if needed.
func (p *Palette) NavigateDown() {
	if p.index < len(p.items)-1 {
		p.index++
		maxVisibleIndex := p.scrollOffset + MaxPaletteItems - 1
		if p.index > maxVisibleIndex {
			p.scrollOffset = p.index - MaxPaletteItems + 1
		}
	}
}

// GetSelected returns the currently selected command, or nil if empty.
func (p *Palette) GetSelected() *commands.Command {
	if p.index >= 0 && p.index < len(p.items) {
		return &p.items[p.index]
	}
	return nil
}

// IsEmpty returns true if the palette has no items.
func (p *Palette) IsEmpty() bool {
	return len(p.items) == 0
}

// Size returns the number of items in the palette.
func (p *Palette) Size() int {
	return len(p.items)
}

// Reset clears the palette.
func (p *Palette) Reset() {
	p.items = []commands.Command{}
	p.index = 0
	p.scrollOffset = 0
}

// GetHeight returns the height needed to display the palette,
// 0 if the palette is empty.
func (p *Palette) GetHeight() int {
	if p.IsEmpty() {
		return 0
	}
	return min(len(p.items), MaxPaletteItems)
}

// View renders the palette items with a selection indicator. Keyboard
// shortcuts render right-aligned in a dimmed column.
func (p *Palette) View(prefix string) string {
	if p.IsEmpty() {
		return ""
	}

	visibleCount := min(MaxPaletteItems, len(p.items)-p.scrollOffset)
	visibleEnd := p.scrollOffset + visibleCount

	// First pass: find the longest line so shortcuts align
	longestMainText := 0
	for i := p.scrollOffset; i < visibleEnd; i++ {
		if l := len(p.mainText(prefix, p.items[i])); l > longestMainText {
			longestMainText = l
		}
	}
	shortcutColumn := longestMainText + 10

	shortcutStyle := lipgloss.NewStyle().
		Foreground(p.theme.Dimmed)
	selectedStyle := lipgloss.NewStyle().
		Foreground(p.theme.Foreground).
		Background(p.theme.Subtle).
		Width(p.width).
		Padding(0, 1).
		Bold(true)
	itemStyle := lipgloss.NewStyle().
		Foreground(p.theme.Foreground).
		Background(p.theme.Background).
		Width(p.width).
		Padding(0, 1)

	sections := []string{}
	for i := p.scrollOffset; i < visibleEnd; i++ {
		cmd := p.items[i]
		content := p.mainText(prefix, cmd)

		if cmd.Shortcut != "" {
			padding := max(shortcutColumn-len(content), 2)
			content += strings.Repeat(" ", padding) + shortcutStyle.Render(cmd.Shortcut)
		}

		var line string
		if i == p.index {
			line = selectedStyle.Render("▶ " + content)
		} else {
			line = itemStyle.Render("  " + content)
		}
		sections = append(sections, line)
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// mainText builds the "prefix + name + args - description" part of a row.
func (p *Palette) mainText(prefix string, cmd commands.Command) string {
	text := prefix + cmd.Name
	if cmd.ArgPattern != "" {
		text += cmd.ArgPattern
	}
	return text + " - " + cmd.Description
}
