package screens

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quarterdeckhq/quarterdeck/internal/api"
	"github.com/quarterdeckhq/quarterdeck/internal/ui"
)

func TestGetHelpScreenConfig(t *testing.T) {
	cfg := GetHelpScreenConfig()

	assert.Equal(t, HelpScreenID, cfg.ID)
	assert.Equal(t, "Help", cfg.Title)
	assert.Zero(t, cfg.RefreshInterval, "shortcuts do not change, no periodic refresh")
	assert.Equal(t, []string{"Section", "Shortcut", "Description"}, cfg.SearchFields)

	items, err := cfg.Fetch(context.Background(), api.NewDemoClient(), nil)
	require.NoError(t, err)
	assert.NotEmpty(t, items)
}

func TestHelpEntries_CoverEveryScreenCommand(t *testing.T) {
	shortcuts := make(map[string]bool)
	for _, entry := range getHelpEntries() {
		shortcuts[entry.Shortcut] = true
	}

	for _, command := range []string{
		":overview", ":nodes", ":pods", ":releases", ":optimization",
		":timeline", ":incidents", ":system", ":config",
	} {
		assert.True(t, shortcuts[command], "missing help entry for %s", command)
	}
}

func TestHelpScreen_FilterBySection(t *testing.T) {
	screen := NewConfigScreen(GetHelpScreenConfig(), api.NewDemoClient(), ui.GetTheme("charm"))
	screen.SetSize(120, 40)
	screen.setItems(toItems(getHelpEntries()))

	total := screen.GetItemCount()
	require.Greater(t, total, 10)

	screen.SetFilter("rollback")

	require.Greater(t, screen.GetItemCount(), 0)
	assert.Less(t, screen.GetItemCount(), total)
	assert.Contains(t, screen.View(), "Roll back")
}
