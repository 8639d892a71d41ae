package modals

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/quarterdeckhq/quarterdeck/internal/types"
	"github.com/quarterdeckhq/quarterdeck/internal/ui"
)

type operationItem struct {
	op types.Operation
}

func (i operationItem) FilterValue() string { return i.op.Name }
func (i operationItem) Title() string {
	if i.op.Shortcut != "" {
		return fmt.Sprintf("%s [%s]", i.op.Name, i.op.Shortcut)
	}
	return i.op.Name
}
func (i operationItem) Description() string { return i.op.Description }

// OperationsModal lists the operations available on the active screen.
// Enter runs the selected operation, esc closes the overlay.
type OperationsModal struct {
	list       list.Model
	operations []types.Operation
	modalStyle lipgloss.Style
	width      int
	height     int
}

func NewOperationsModal(operations []types.Operation, theme *ui.Theme) *OperationsModal {
	items := make([]list.Item, len(operations))
	for i, op := range operations {
		items[i] = operationItem{op: op}
	}

	delegate := list.NewDefaultDelegate()
	l := list.New(items, delegate, 0, 0)
	l.Title = "Operations"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.Styles.Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.Primary)

	return &OperationsModal{
		list:       l,
		operations: operations,
		modalStyle: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Primary).
			Padding(1, 2),
	}
}

func (m *OperationsModal) Init() tea.Cmd {
	return nil
}

func (m *OperationsModal) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// While the list's own filter input is open, let it consume keys
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "enter":
			if item, ok := m.list.SelectedItem().(operationItem); ok {
				return m, tea.Batch(
					item.op.Execute(),
					func() tea.Msg {
						return types.ToggleOperationsMsg{}
					},
				)
			}
		case "esc":
			return m, func() tea.Msg {
				return types.ToggleOperationsMsg{}
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *OperationsModal) View() string {
	// Modal takes 80% of terminal height, capped below at a usable minimum
	modalHeight := int(float64(m.height) * 0.8)
	if modalHeight < 10 {
		modalHeight = 10
	}
	modalWidth := 60

	// List size = modal size minus border and padding
	m.list.SetSize(modalWidth-6, modalHeight-4)

	return m.modalStyle.Width(modalWidth).Height(modalHeight).Render(m.list.View())
}

func (m *OperationsModal) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// UpdateOperations replaces the listed operations, e.g. after a screen switch.
func (m *OperationsModal) UpdateOperations(operations []types.Operation) {
	m.operations = operations
	items := make([]list.Item, len(operations))
	for i, op := range operations {
		items[i] = operationItem{op: op}
	}
	m.list.SetItems(items)
}

// CenteredView renders the modal centered in the terminal.
func (m *OperationsModal) CenteredView(termWidth, termHeight int) string {
	m.width = termWidth
	m.height = termHeight
	return lipgloss.Place(termWidth, termHeight, lipgloss.Center, lipgloss.Center, m.View())
}
