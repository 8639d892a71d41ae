package screens

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quarterdeckhq/quarterdeck/internal/api"
	"github.com/quarterdeckhq/quarterdeck/internal/types"
	"github.com/quarterdeckhq/quarterdeck/internal/ui"
)

// podFixtures returns a small deterministic pod list for filter and
// cursor tests.
func podFixtures() []any {
	return toItems([]api.Pod{
		{Namespace: "default", Name: "nginx-7d64f8", Phase: "Running", Node: "node-1"},
		{Namespace: "default", Name: "nginx-8c75a9", Phase: "Running", Node: "node-2"},
		{Namespace: "prod", Name: "api-server-0", Phase: "Pending", Node: "node-1"},
		{Namespace: "monitoring", Name: "grafana-0", Phase: "Running", Node: "node-2"},
	})
}

// fixturePodsConfig builds a pods-like config whose Fetch returns the
// fixtures, so tests never depend on a client.
func fixturePodsConfig() ScreenConfig {
	return ScreenConfig{
		ID:    "pods",
		Title: "Pods",
		Fetch: func(ctx context.Context, client api.Client, fc *types.FilterContext) ([]any, error) {
			return podFixtures(), nil
		},
		Columns: []ColumnConfig{
			{Field: "Namespace", Title: "Namespace", Width: 20, Priority: 1},
			{Field: "Name", Title: "Name", Width: 0, Priority: 1},
			{Field: "Phase", Title: "Status", Width: 15, Priority: 2},
		},
		SearchFields: []string{"Namespace", "Name"},
	}
}

// runCmd executes a command and flattens any batch into the individual
// messages. Tick commands must not be passed in since they sleep.
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, runCmd(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func TestNewConfigScreen(t *testing.T) {
	screen := NewConfigScreen(fixturePodsConfig(), api.NewDemoClient(), ui.GetTheme("charm"))

	assert.NotNil(t, screen)
	assert.Equal(t, "pods", screen.ID())
	assert.Equal(t, "Pods", screen.Title())
	assert.NotEmpty(t, screen.HelpText())
	assert.False(t, screen.CapturingInput())
}

func TestConfigScreen_HelpText(t *testing.T) {
	cfg := fixturePodsConfig()
	cfg.HelpText = "d: detail"

	screen := NewConfigScreen(cfg, api.NewDemoClient(), ui.GetTheme("charm"))
	assert.Equal(t, "d: detail", screen.HelpText())
}

func TestConfigScreen_Refresh(t *testing.T) {
	screen := NewConfigScreen(fixturePodsConfig(), api.NewDemoClient(), ui.GetTheme("charm"))

	cmd := screen.Refresh()
	require.NotNil(t, cmd)

	// The fetch runs in the command, off the screen. Rows only land when
	// the data message is applied.
	msg := cmd()
	dataMsg, ok := msg.(screenDataMsg)
	require.True(t, ok, "Expected screenDataMsg")
	assert.Equal(t, "pods", dataMsg.screenID)
	assert.Len(t, dataMsg.items, 4)
	assert.Empty(t, screen.items)

	_, cmd = screen.DefaultUpdate(dataMsg)
	assert.Len(t, screen.items, 4)
	assert.Len(t, screen.filtered, 4)

	require.NotNil(t, cmd)
	complete, ok := cmd().(types.RefreshCompleteMsg)
	require.True(t, ok, "Expected RefreshCompleteMsg")
	assert.Equal(t, dataMsg.took, complete.Duration)
}

func TestConfigScreen_Refresh_FetchError(t *testing.T) {
	cfg := fixturePodsConfig()
	cfg.Fetch = func(ctx context.Context, client api.Client, fc *types.FilterContext) ([]any, error) {
		return nil, errors.New("connection refused")
	}

	screen := NewConfigScreen(cfg, api.NewDemoClient(), ui.GetTheme("charm"))

	msg := screen.Refresh()()
	status, ok := msg.(types.StatusMsg)
	require.True(t, ok, "Expected StatusMsg")
	assert.Equal(t, types.MessageTypeError, status.Type)
	assert.Contains(t, status.Message, "Failed to fetch Pods")
	assert.Contains(t, status.Message, "connection refused")
}

func TestConfigScreen_Refresh_PassesFilterContext(t *testing.T) {
	var got *types.FilterContext
	cfg := fixturePodsConfig()
	cfg.Fetch = func(ctx context.Context, client api.Client, fc *types.FilterContext) ([]any, error) {
		got = fc
		return nil, nil
	}

	screen := NewConfigScreen(cfg, api.NewDemoClient(), ui.GetTheme("charm"))
	screen.ApplyFilterContext(&types.FilterContext{Field: "namespace", Value: "prod"})

	screen.Refresh()()
	require.NotNil(t, got)
	assert.Equal(t, "namespace", got.Field)
	assert.Equal(t, "prod", got.Value)

	assert.Equal(t, "namespace", screen.GetFilterContext().Field)
}

func TestConfigScreen_DataMsg_OtherScreenIgnored(t *testing.T) {
	screen := NewConfigScreen(fixturePodsConfig(), api.NewDemoClient(), ui.GetTheme("charm"))

	_, cmd := screen.DefaultUpdate(screenDataMsg{screenID: "nodes", items: podFixtures()})
	assert.Nil(t, cmd)
	assert.Empty(t, screen.items)
}

func TestConfigScreen_Tick(t *testing.T) {
	cfg := fixturePodsConfig()
	cfg.RefreshInterval = 10 * time.Second

	screen := NewConfigScreen(cfg, api.NewDemoClient(), ui.GetTheme("charm"))

	// A matching tick refetches and rearms. Not executed here since the
	// rearm command sleeps for the full interval.
	_, cmd := screen.DefaultUpdate(tickMsg{screenID: "pods", time: time.Now()})
	assert.NotNil(t, cmd)

	// Ticks from other screens are dropped, otherwise every visited
	// screen would keep polling forever.
	_, cmd = screen.DefaultUpdate(tickMsg{screenID: "nodes", time: time.Now()})
	assert.Nil(t, cmd)
}

func TestConfigScreen_ScheduleTick_DisabledWithoutInterval(t *testing.T) {
	screen := NewConfigScreen(fixturePodsConfig(), api.NewDemoClient(), ui.GetTheme("charm"))
	assert.Nil(t, screen.scheduleTick())
	assert.Equal(t, time.Duration(0), screen.GetRefreshInterval())
}

func TestConfigScreen_Init_LoadingNoticeOnlyOnce(t *testing.T) {
	screen := NewConfigScreen(fixturePodsConfig(), api.NewDemoClient(), ui.GetTheme("charm"))

	msgs := runCmd(screen.Init())
	var loading *types.StatusMsg
	for _, m := range msgs {
		if sm, ok := m.(types.StatusMsg); ok && sm.Type == types.MessageTypeLoading {
			loading = &sm
			break
		}
	}
	require.NotNil(t, loading, "first visit should announce loading")
	assert.Equal(t, "Loading Pods...", loading.Message)

	// Revisits already have rows on screen and refetch quietly.
	for _, m := range runCmd(screen.Init()) {
		if sm, ok := m.(types.StatusMsg); ok {
			assert.NotEqual(t, types.MessageTypeLoading, sm.Type)
		}
	}
}

func TestConfigScreen_SetFilter(t *testing.T) {
	screen := NewConfigScreen(fixturePodsConfig(), api.NewDemoClient(), ui.GetTheme("charm"))
	screen.setItems(podFixtures())

	screen.SetFilter("nginx")
	assert.Len(t, screen.filtered, 2)
	for _, item := range screen.filtered {
		pod := item.(api.Pod)
		assert.Contains(t, pod.Name, "nginx")
	}
	assert.Equal(t, "nginx", screen.GetFilter())

	screen.SetFilter("")
	assert.Len(t, screen.filtered, 4)
	assert.Empty(t, screen.GetFilter())
}

func TestConfigScreen_SetFilter_Negation(t *testing.T) {
	screen := NewConfigScreen(fixturePodsConfig(), api.NewDemoClient(), ui.GetTheme("charm"))
	screen.setItems(podFixtures())

	screen.SetFilter("!nginx")
	assert.Len(t, screen.filtered, 2)
	for _, item := range screen.filtered {
		pod := item.(api.Pod)
		assert.NotContains(t, pod.Name, "nginx")
	}
}

func TestConfigScreen_FilterMessages(t *testing.T) {
	screen := NewConfigScreen(fixturePodsConfig(), api.NewDemoClient(), ui.GetTheme("charm"))
	screen.setItems(podFixtures())

	_, cmd := screen.DefaultUpdate(types.FilterUpdateMsg{Filter: "grafana"})
	assert.Nil(t, cmd)
	assert.Len(t, screen.filtered, 1)

	_, cmd = screen.DefaultUpdate(types.ClearFilterMsg{})
	assert.Nil(t, cmd)
	assert.Len(t, screen.filtered, 4)
	assert.Empty(t, screen.GetFilter())
}

func TestConfigScreen_ItemCountAndSelection(t *testing.T) {
	screen := NewConfigScreen(fixturePodsConfig(), api.NewDemoClient(), ui.GetTheme("charm"))
	assert.Equal(t, 0, screen.ItemCount())
	assert.Nil(t, screen.SelectedItem())

	screen.setItems(podFixtures())
	assert.Equal(t, 4, screen.ItemCount())

	selected, ok := screen.SelectedItem().(api.Pod)
	require.True(t, ok)
	assert.Equal(t, "nginx-7d64f8", selected.Name)
}

func TestConfigScreen_GetSelectedResource(t *testing.T) {
	screen := NewConfigScreen(fixturePodsConfig(), api.NewDemoClient(), ui.GetTheme("charm"))
	screen.setItems(podFixtures())

	resource := screen.GetSelectedResource()
	require.NotNil(t, resource)
	assert.Equal(t, "default", resource["namespace"])
	assert.Equal(t, "nginx-7d64f8", resource["name"])
	assert.Equal(t, "Running", resource["phase"])
}

func TestConfigScreen_CursorRestoredAfterRefresh(t *testing.T) {
	cfg := fixturePodsConfig()
	cfg.TrackSelection = true

	screen := NewConfigScreen(cfg, api.NewDemoClient(), ui.GetTheme("charm"))
	screen.setItems(podFixtures())

	screen.table.SetCursor(1)
	screen.updateSelectedKey()
	assert.Equal(t, "default/nginx-8c75a9", screen.selectedKey)

	// Reordered fetch result, as happens when the server resorts rows.
	screen.setItems(toItems([]api.Pod{
		{Namespace: "prod", Name: "api-server-0"},
		{Namespace: "monitoring", Name: "grafana-0"},
		{Namespace: "default", Name: "nginx-8c75a9"},
		{Namespace: "default", Name: "nginx-7d64f8"},
	}))

	assert.Equal(t, 2, screen.table.Cursor())
}

func TestConfigScreen_EnterRunsNavigationHandler(t *testing.T) {
	want := func() tea.Msg { return types.ScreenSwitchMsg{ScreenID: "timeline"} }

	cfg := fixturePodsConfig()
	cfg.NavigationHandler = func(s *ConfigScreen) tea.Cmd { return want }

	screen := NewConfigScreen(cfg, api.NewDemoClient(), ui.GetTheme("charm"))
	screen.setItems(podFixtures())

	_, cmd := screen.DefaultUpdate(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	switchMsg, ok := cmd().(types.ScreenSwitchMsg)
	require.True(t, ok, "expected ScreenSwitchMsg")
	assert.Equal(t, "timeline", switchMsg.ScreenID)
}

func TestConfigScreen_Operations(t *testing.T) {
	executed := false
	cfg := fixturePodsConfig()
	cfg.Operations = []OperationConfig{
		{ID: "detail", Name: "Pod Detail", Description: "Show details", Shortcut: "d",
			Execute: func(s *ConfigScreen) tea.Cmd {
				executed = true
				return nil
			}},
		{ID: "logs", Name: "Logs", Description: "Stream logs", Shortcut: "l"},
	}

	screen := NewConfigScreen(cfg, api.NewDemoClient(), ui.GetTheme("charm"))

	ops := screen.Operations()
	require.Len(t, ops, 2)

	assert.Equal(t, "detail", ops[0].ID)
	assert.Equal(t, "Pod Detail", ops[0].Name)
	assert.Equal(t, "d", ops[0].Shortcut)
	assert.Equal(t, "l", ops[1].Shortcut)

	ops[0].Execute()
	assert.True(t, executed)

	// Operations without a handler are inert rather than a panic.
	assert.Nil(t, ops[1].Execute())
}

func TestConfigScreen_SetSize_HidesLowPriorityColumns(t *testing.T) {
	cfg := fixturePodsConfig()
	cfg.Columns = []ColumnConfig{
		{Field: "Name", Title: "Name", Width: 0, Priority: 1},
		{Field: "Namespace", Title: "Namespace", Width: 20, Priority: 1},
		{Field: "Phase", Title: "Status", Width: 15, Priority: 2},
		{Field: "Node", Title: "Node", Width: 20, Priority: 3},
	}

	screen := NewConfigScreen(cfg, api.NewDemoClient(), ui.GetTheme("charm"))
	screen.setItems(podFixtures())

	screen.SetSize(40, 20)
	assert.Equal(t, 40, screen.width)
	assert.Equal(t, 20, screen.height)
	require.Len(t, screen.visibleColumns, 2)
	assert.Equal(t, "Name", screen.visibleColumns[0].Field)
	assert.Equal(t, "Namespace", screen.visibleColumns[1].Field)
	assert.Equal(t, 2, screen.hiddenCount)

	// Rows are rebuilt against the reduced column set.
	require.Len(t, screen.table.Rows(), 4)
	assert.Len(t, screen.table.Rows()[0], 2)

	screen.SetSize(120, 20)
	assert.Len(t, screen.visibleColumns, 4)
	assert.Equal(t, 0, screen.hiddenCount)
	assert.Len(t, screen.table.Rows()[0], 4)
}

func TestConfigScreen_View_EmptyScopedResult(t *testing.T) {
	screen := NewConfigScreen(fixturePodsConfig(), api.NewDemoClient(), ui.GetTheme("charm"))
	screen.SetSize(100, 20)

	screen.ApplyFilterContext(&types.FilterContext{Field: "namespace", Value: "empty-ns"})
	screen.setItems([]any{})

	view := screen.View()
	assert.Contains(t, view, "No resources found")
	assert.Contains(t, view, "Press ESC to go back")
}

func TestConfigScreen_View_ScopedWithResults(t *testing.T) {
	screen := NewConfigScreen(fixturePodsConfig(), api.NewDemoClient(), ui.GetTheme("charm"))
	screen.SetSize(100, 20)

	screen.ApplyFilterContext(&types.FilterContext{Field: "namespace", Value: "default"})
	screen.setItems(podFixtures())

	view := screen.View()
	assert.NotContains(t, view, "No resources found")
	assert.Contains(t, view, "nginx-7d64f8")
}

func TestConfigScreen_CustomViewFallback(t *testing.T) {
	cfg := fixturePodsConfig()
	custom := "custom rendering"
	cfg.CustomView = func(s *ConfigScreen) string { return custom }

	screen := NewConfigScreen(cfg, api.NewDemoClient(), ui.GetTheme("charm"))
	screen.SetSize(100, 20)
	screen.setItems(podFixtures())

	assert.Equal(t, "custom rendering", screen.View())

	// An empty custom view falls back to the table.
	custom = ""
	assert.Contains(t, screen.View(), "nginx-7d64f8")
}

func TestConfigScreen_WindowSizeMsg(t *testing.T) {
	screen := NewConfigScreen(fixturePodsConfig(), api.NewDemoClient(), ui.GetTheme("charm"))

	_, cmd := screen.DefaultUpdate(tea.WindowSizeMsg{Width: 90, Height: 30})
	assert.Nil(t, cmd)
	assert.Equal(t, 90, screen.width)
	assert.Equal(t, 30, screen.height)
}

func TestGetFieldValue(t *testing.T) {
	pod := api.Pod{Namespace: "default", Name: "test-pod", Restarts: 3}
	rec := api.Recommendation{
		ID:       "rec-1",
		Workload: api.Workload{Namespace: "prod", Name: "api", Kind: "Deployment"},
	}
	meta := struct {
		Labels map[string]string
	}{Labels: map[string]string{"app": "nginx"}}

	tests := []struct {
		name      string
		item      any
		fieldName string
		expected  any
	}{
		{"simple field", pod, "Name", "test-pod"},
		{"int field", pod, "Restarts", 3},
		{"pointer receiver", &pod, "Namespace", "default"},
		{"missing field returns empty string", pod, "NonExistent", ""},
		{"nested struct field", rec, "Workload.Name", "api"},
		{"nested struct kind", rec, "Workload.Kind", "Deployment"},
		{"map key", meta, "Labels.app", "nginx"},
		{"missing map key", meta, "Labels.tier", ""},
		{"missing parent", pod, "Missing.Child", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, getFieldValue(tt.item, tt.fieldName))
		})
	}
}

func TestGetResourceKey(t *testing.T) {
	// Resources with an ID key on it; everything else keys on
	// namespace/name.
	assert.Equal(t, "rec-42", getResourceKey(api.Recommendation{ID: "rec-42"}))
	assert.Equal(t, "default/nginx", getResourceKey(api.Pod{Namespace: "default", Name: "nginx"}))
}
