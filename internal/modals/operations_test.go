package modals

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quarterdeckhq/quarterdeck/internal/types"
	"github.com/quarterdeckhq/quarterdeck/internal/ui"
)

type opExecutedMsg struct{ id string }

func testOperations() []types.Operation {
	return []types.Operation{
		{
			ID:          "logs",
			Name:        "Logs",
			Description: "Stream logs for selected pod",
			Shortcut:    "l",
			Execute: func() tea.Cmd {
				return func() tea.Msg { return opExecutedMsg{id: "logs"} }
			},
		},
		{
			ID:          "detail",
			Name:        "Detail",
			Description: "Show pod detail",
			Execute: func() tea.Cmd {
				return func() tea.Msg { return opExecutedMsg{id: "detail"} }
			},
		},
	}
}

func TestOperationItem_TitleIncludesShortcut(t *testing.T) {
	ops := testOperations()

	withShortcut := operationItem{op: ops[0]}
	assert.Equal(t, "Logs [l]", withShortcut.Title())

	withoutShortcut := operationItem{op: ops[1]}
	assert.Equal(t, "Detail", withoutShortcut.Title())
}

func TestOperationsModal_EscCloses(t *testing.T) {
	m := NewOperationsModal(testOperations(), ui.GetTheme("charm"))

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)

	msg := cmd()
	assert.IsType(t, types.ToggleOperationsMsg{}, msg)
}

func TestOperationsModal_EnterExecutesSelected(t *testing.T) {
	m := NewOperationsModal(testOperations(), ui.GetTheme("charm"))

	// Enter on the default selection runs the operation and closes the modal
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	batch, ok := cmd().(tea.BatchMsg)
	require.True(t, ok, "expected a batch of op cmd + close cmd")

	var executed, closed bool
	for _, c := range batch {
		switch c().(type) {
		case opExecutedMsg:
			executed = true
		case types.ToggleOperationsMsg:
			closed = true
		}
	}
	assert.True(t, executed, "selected operation should run")
	assert.True(t, closed, "modal should close after running")
}

func TestOperationsModal_UpdateOperations(t *testing.T) {
	m := NewOperationsModal(testOperations(), ui.GetTheme("charm"))
	assert.Len(t, m.list.Items(), 2)

	m.UpdateOperations(testOperations()[:1])
	assert.Len(t, m.list.Items(), 1)
}

func TestOperationsModal_View(t *testing.T) {
	m := NewOperationsModal(testOperations(), ui.GetTheme("charm"))
	m.SetSize(100, 40)

	view := m.View()
	assert.Contains(t, view, "Operations")
	assert.Contains(t, view, "Logs")
}
