package commandbar

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"github.com/quarterdeckhq/quarterdeck/internal/types"
)

func TestCommandBar_ViewHints_ShowsTipWhenHidden(t *testing.T) {
	cb := newTestBar(t)

	hints := cb.ViewHints()
	assert.NotEqual(t, "", hints)
	assert.Contains(t, hints, "type to filter")
}

func TestCommandBar_ViewHints_EmptyWhenActive(t *testing.T) {
	cb := newTestBar(t)

	cb.state = StateFilter

	hints := cb.ViewHints()
	assert.Equal(t, "", hints)
}

func TestCommandBar_TipRotation(t *testing.T) {
	cb := newTestBar(t)

	assert.Equal(t, 0, cb.currentTipIndex)

	tickMessage := tipRotationMsg(time.Now())
	cb, cmd := cb.Update(tickMessage)

	assert.NotEqual(t, 0, cb.currentTipIndex, "Should rotate to a different tip")
	assert.GreaterOrEqual(t, cb.currentTipIndex, 0)
	assert.Less(t, cb.currentTipIndex, len(usageTips))

	// Should return a command to schedule the next rotation
	assert.NotNil(t, cmd)
}

func TestCommandBar_TipRotation_AvoidsDuplicate(t *testing.T) {
	cb := newTestBar(t)

	cb.currentTipIndex = 5

	for i := 0; i < 10; i++ {
		oldIndex := cb.currentTipIndex
		tickMessage := tipRotationMsg(time.Now())
		cb, _ = cb.Update(tickMessage)

		assert.NotEqual(t, oldIndex, cb.currentTipIndex,
			"Should not show the same tip twice in a row (iteration %d)", i)
	}
}

func TestCommandBar_TipsArrayValid(t *testing.T) {
	assert.Greater(t, len(usageTips), 0, "Tips array should not be empty")

	// First tip is the mode reminder
	assert.Contains(t, usageTips[0], "type to filter")

	for i, tip := range usageTips {
		assert.NotEqual(t, "", tip, "Tip at index %d should not be empty", i)
	}
}

func TestCommandBar_FilterFlow(t *testing.T) {
	cb := newTestBar(t)
	cb.SetScreen("releases")

	// Typing a character starts filter mode and emits a filter update
	cb, cmd := cb.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}})
	assert.Equal(t, StateFilter, cb.GetState())
	assert.NotNil(t, cmd)
	assert.Equal(t, types.FilterUpdateMsg{Filter: "n"}, cmd())

	cb, cmd = cb.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'g'}})
	assert.Equal(t, types.FilterUpdateMsg{Filter: "ng"}, cmd())

	// Enter accepts the filter and hides the bar, keeping it applied
	cb, _ = cb.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, StateHidden, cb.GetState())
	assert.Equal(t, "ng", cb.GetInput())

	// ESC while hidden clears the accepted filter
	cb, cmd = cb.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.NotNil(t, cmd)
	assert.Equal(t, types.ClearFilterMsg{}, cmd())
	assert.Equal(t, "", cb.GetInput())
}

func TestCommandBar_PaletteFlow(t *testing.T) {
	cb := newTestBar(t)
	cb.SetScreen("releases")

	// ":" opens the screen palette
	cb, _ = cb.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{':'}})
	assert.Equal(t, StateSuggestionPalette, cb.GetState())
	assert.False(t, cb.palette.IsEmpty())
	assert.Greater(t, cb.GetTotalHeight(), 2)

	// ESC dismisses it
	cb, _ = cb.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, StateHidden, cb.GetState())

	// "/" opens the action palette scoped to the current screen
	cb, _ = cb.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}})
	assert.Equal(t, StateSuggestionPalette, cb.GetState())

	names := []string{}
	for _, item := range cb.palette.items {
		names = append(names, item.Name)
	}
	assert.Contains(t, names, "values")
	assert.NotContains(t, names, "logs", "pod actions should not appear on releases")
}

func TestCommandBar_TypedCommandExecution(t *testing.T) {
	cb := newTestBar(t)
	cb.SetScreen("nodes")

	// Type ":pods" and execute via enter
	for _, r := range ":pods" {
		cb, _ = cb.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	cb, cmd := cb.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, StateHidden, cb.GetState())
	assert.NotNil(t, cmd)

	msg := cmd()
	switchMsg, ok := msg.(types.ScreenSwitchMsg)
	assert.True(t, ok, "expected ScreenSwitchMsg, got %T", msg)
	assert.Equal(t, "pods", switchMsg.ScreenID)

	// Command was recorded in history
	assert.Equal(t, 1, cb.history.Size())
}

func TestCommandBar_ConfirmationFlow(t *testing.T) {
	cb := newTestBar(t)
	cb.SetScreen("releases")
	cb.SetSelectedResource(map[string]any{
		"name":      "cert-manager",
		"namespace": "cert-manager",
	})

	// Type "/uninstall" and hit enter: needs confirmation, nothing executes
	for _, r := range "/uninstall" {
		cb, _ = cb.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	cb, cmd := cb.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, StateConfirmation, cb.GetState())
	assert.Nil(t, cmd)
	assert.True(t, cb.executor.HasPending())
	assert.Contains(t, cb.View(), "Confirm Action")

	// ESC cancels
	cb, _ = cb.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, StateHidden, cb.GetState())
	assert.False(t, cb.executor.HasPending())
}

func TestCommandBar_TriggerShortcut(t *testing.T) {
	cb := newTestBar(t)
	cb.SetScreen("releases")
	cb.SetSelectedResource(map[string]any{
		"name":      "cert-manager",
		"namespace": "cert-manager",
	})

	// Unbound key
	cmd, ok := cb.TriggerShortcut("z")
	assert.False(t, ok)
	assert.Nil(t, cmd)

	// "h" runs history directly, no confirmation involved
	cmd, ok = cb.TriggerShortcut("h")
	assert.True(t, ok)
	assert.NotNil(t, cmd)
	assert.Equal(t, StateHidden, cb.GetState())

	// "x" is uninstall; the prompt opens instead of executing
	cmd, ok = cb.TriggerShortcut("x")
	assert.True(t, ok)
	assert.Nil(t, cmd)
	assert.Equal(t, StateConfirmation, cb.GetState())
	assert.True(t, cb.executor.HasPending())
	assert.Equal(t, "/uninstall", cb.GetInput())
	assert.Contains(t, cb.View(), "Confirm Action")
}

func TestCommandBar_TriggerShortcut_ScreenScoped(t *testing.T) {
	cb := newTestBar(t)

	// "a" acknowledges on incidents but applies on optimization
	cb.SetScreen("incidents")
	cmd, ok := cb.TriggerShortcut("a")
	assert.True(t, ok)
	assert.NotNil(t, cmd, "ack runs without confirmation")

	cb = newTestBar(t)
	cb.SetScreen("optimization")
	cmd, ok = cb.TriggerShortcut("a")
	assert.True(t, ok)
	assert.Nil(t, cmd, "apply waits for confirmation")
	assert.Equal(t, StateConfirmation, cb.GetState())
}

func TestCommandBar_TriggerCommand(t *testing.T) {
	cb := newTestBar(t)
	cb.SetScreen("releases")
	cb.SetSelectedResource(map[string]any{
		"name":      "cert-manager",
		"namespace": "cert-manager",
	})

	// Not an action on this screen
	cmd, ok := cb.TriggerCommand("logs")
	assert.False(t, ok)
	assert.Nil(t, cmd)

	cmd, ok = cb.TriggerCommand("values")
	assert.True(t, ok)
	assert.NotNil(t, cmd)

	cmd, ok = cb.TriggerCommand("rollback")
	assert.True(t, ok)
	assert.Nil(t, cmd)
	assert.Equal(t, StateConfirmation, cb.GetState())
	assert.Equal(t, "/rollback", cb.GetInput())
}

func TestCommandBar_RestoreFilter(t *testing.T) {
	cb := newTestBar(t)

	cmd := cb.RestoreFilter("prod")
	assert.NotNil(t, cmd)
	assert.Equal(t, types.FilterUpdateMsg{Filter: "prod"}, cmd())
	assert.Equal(t, StateFilter, cb.GetState())
	assert.Equal(t, "prod", cb.GetInput())

	// Empty filter restores nothing
	cb2 := newTestBar(t)
	assert.Nil(t, cb2.RestoreFilter(""))
	assert.Equal(t, StateHidden, cb2.GetState())
}
