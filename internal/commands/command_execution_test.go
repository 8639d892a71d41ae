package commands

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quarterdeckhq/quarterdeck/internal/api"
	"github.com/quarterdeckhq/quarterdeck/internal/types"
)

// releaseContext selects the seeded production/api-server release
func releaseContext(args string) CommandContext {
	return CommandContext{
		ScreenID: "releases",
		Selected: map[string]any{
			"name":      "api-server",
			"namespace": "production",
			"chart":     "app-template",
		},
		Args: args,
	}
}

// runCommand executes an ExecuteFunc and returns the produced message
func runCommand(t *testing.T, execFunc ExecuteFunc, ctx CommandContext) tea.Msg {
	t.Helper()
	cmd := execFunc(ctx)
	require.NotNil(t, cmd)
	msg := cmd()
	require.NotNil(t, msg)
	return msg
}

// requireMutation asserts the message reports a successful mutation and
// returns the embedded status
func requireMutation(t *testing.T, msg tea.Msg) types.StatusMsg {
	t.Helper()
	refreshMsg, ok := msg.(types.RefreshRequestMsg)
	require.True(t, ok, "expected RefreshRequestMsg, got %T", msg)
	assert.Equal(t, types.MessageTypeSuccess, refreshMsg.Status.Type)
	return refreshMsg.Status
}

// requireErrorStatus asserts the message is an error status
func requireErrorStatus(t *testing.T, msg tea.Msg) types.StatusMsg {
	t.Helper()
	statusMsg, ok := msg.(types.StatusMsg)
	require.True(t, ok, "expected StatusMsg, got %T", msg)
	assert.Equal(t, types.MessageTypeError, statusMsg.Type)
	return statusMsg
}

func TestRollbackCommand(t *testing.T) {
	client := api.NewDemoClient()

	t.Run("rolls back and requests refresh", func(t *testing.T) {
		msg := runCommand(t, RollbackCommand(client), releaseContext("11"))

		status := requireMutation(t, msg)
		assert.Contains(t, status.Message, "Rolled back api-server to revision 11")

		history, err := client.ReleaseHistory(context.Background(), "production", "api-server")
		require.NoError(t, err)
		assert.Equal(t, 13, history[0].Revision, "rollback creates a new revision")
		assert.Contains(t, history[0].Description, "Rollback to 11")
	})

	t.Run("invalid revision", func(t *testing.T) {
		msg := runCommand(t, RollbackCommand(client), releaseContext("eleven"))
		status := requireErrorStatus(t, msg)
		assert.Contains(t, status.Message, "Invalid args")
	})

	t.Run("no selection", func(t *testing.T) {
		ctx := CommandContext{ScreenID: "releases", Selected: map[string]any{}, Args: "2"}
		msg := runCommand(t, RollbackCommand(client), ctx)
		status := requireErrorStatus(t, msg)
		assert.Contains(t, status.Message, "No release selected")
	})

	t.Run("unknown release surfaces API detail", func(t *testing.T) {
		ctx := CommandContext{
			ScreenID: "releases",
			Selected: map[string]any{"name": "ghost", "namespace": "production"},
			Args:     "1",
		}
		msg := runCommand(t, RollbackCommand(client), ctx)
		status := requireErrorStatus(t, msg)
		assert.Contains(t, status.Message, "Rollback failed")
		assert.Contains(t, status.Message, "not found")
	})
}

func TestUpgradeCommand(t *testing.T) {
	client := api.NewDemoClient()

	t.Run("reuses selected chart", func(t *testing.T) {
		msg := runCommand(t, UpgradeCommand(client), releaseContext(""))
		status := requireMutation(t, msg)
		assert.Contains(t, status.Message, "Upgraded api-server to revision 13")
	})

	t.Run("explicit chart and version", func(t *testing.T) {
		msg := runCommand(t, UpgradeCommand(client), releaseContext("bitnami/api-server 2.0.0"))
		requireMutation(t, msg)

		releases, err := client.Releases(context.Background(), "production")
		require.NoError(t, err)
		for _, release := range releases {
			if release.Name == "api-server" {
				assert.Equal(t, "2.0.0", release.ChartVersion)
			}
		}
	})

	t.Run("no chart anywhere", func(t *testing.T) {
		ctx := CommandContext{
			ScreenID: "releases",
			Selected: map[string]any{"name": "api-server", "namespace": "production"},
		}
		msg := runCommand(t, UpgradeCommand(client), ctx)
		status := requireErrorStatus(t, msg)
		assert.Contains(t, status.Message, "No chart")
	})
}

func TestInstallCommand(t *testing.T) {
	client := api.NewDemoClient()
	installCmd := InstallCommand(client)
	ctx := CommandContext{ScreenID: "releases", Selected: map[string]any{}}

	t.Run("installs into requested namespace", func(t *testing.T) {
		ctx.Args = "loki grafana/loki monitoring"
		msg := runCommand(t, installCmd, ctx)
		status := requireMutation(t, msg)
		assert.Contains(t, status.Message, "Installed monitoring/loki (revision 1)")
	})

	t.Run("conflict surfaces API detail", func(t *testing.T) {
		ctx.Args = "loki grafana/loki monitoring"
		msg := runCommand(t, installCmd, ctx)
		status := requireErrorStatus(t, msg)
		assert.Contains(t, status.Message, "Install failed")
		assert.Contains(t, status.Message, "already exists")
	})

	t.Run("missing chart", func(t *testing.T) {
		ctx.Args = "loki"
		msg := runCommand(t, installCmd, ctx)
		status := requireErrorStatus(t, msg)
		assert.Contains(t, status.Message, "Invalid args")
	})
}

func TestUninstallCommand(t *testing.T) {
	client := api.NewDemoClient()
	ctx := CommandContext{
		ScreenID: "releases",
		Selected: map[string]any{"name": "cert-manager", "namespace": "cert-manager"},
	}

	msg := runCommand(t, UninstallCommand(client), ctx)
	status := requireMutation(t, msg)
	assert.Contains(t, status.Message, "Uninstalled cert-manager/cert-manager")

	// Second uninstall fails, the release is gone
	msg = runCommand(t, UninstallCommand(client), ctx)
	status = requireErrorStatus(t, msg)
	assert.Contains(t, status.Message, "Uninstall failed")
}

func TestValuesCommand(t *testing.T) {
	client := api.NewDemoClient()

	t.Run("shows values full screen", func(t *testing.T) {
		msg := runCommand(t, ValuesCommand(client), releaseContext(""))

		fullScreenMsg, ok := msg.(types.ShowFullScreenMsg)
		require.True(t, ok, "expected ShowFullScreenMsg, got %T", msg)
		assert.Equal(t, 0, fullScreenMsg.ViewType)
		assert.Equal(t, "production/api-server", fullScreenMsg.ResourceName)
		assert.Contains(t, fullScreenMsg.Content, "replicaCount")
	})

	t.Run("unknown release", func(t *testing.T) {
		ctx := CommandContext{
			ScreenID: "releases",
			Selected: map[string]any{"name": "ghost", "namespace": "production"},
		}
		msg := runCommand(t, ValuesCommand(client), ctx)
		status := requireErrorStatus(t, msg)
		assert.Contains(t, status.Message, "Failed to get values")
	})
}

func TestHistoryCommand(t *testing.T) {
	client := api.NewDemoClient()

	msg := runCommand(t, HistoryCommand(client), releaseContext(""))

	fullScreenMsg, ok := msg.(types.ShowFullScreenMsg)
	require.True(t, ok, "expected ShowFullScreenMsg, got %T", msg)
	assert.Equal(t, 1, fullScreenMsg.ViewType)
	assert.Contains(t, fullScreenMsg.Content, "REVISION")
	assert.Contains(t, fullScreenMsg.Content, "deployed")
}

func TestDryRunCommand(t *testing.T) {
	client := api.NewDemoClient()

	msg := runCommand(t, DryRunCommand(client), releaseContext(""))

	fullScreenMsg, ok := msg.(types.ShowFullScreenMsg)
	require.True(t, ok, "expected ShowFullScreenMsg, got %T", msg)
	assert.Equal(t, 0, fullScreenMsg.ViewType)
	assert.Contains(t, fullScreenMsg.ResourceName, "(dry run)")
	assert.Contains(t, fullScreenMsg.Content, "# Dry run: 2 resources")
	assert.Contains(t, fullScreenMsg.Content, "update")
	assert.Contains(t, fullScreenMsg.Content, "kind: Deployment")
	assert.Contains(t, fullScreenMsg.Content, "# NOTES:")
}

func TestApplyCommand(t *testing.T) {
	client := api.NewDemoClient()

	before, err := client.OptimizationDashboard(context.Background())
	require.NoError(t, err)

	ctx := CommandContext{
		ScreenID: "optimization",
		Selected: map[string]any{"id": "rec-001"},
	}
	msg := runCommand(t, ApplyCommand(client), ctx)
	status := requireMutation(t, msg)
	assert.Contains(t, status.Message, "Applied cpu_request for production/api-server")

	after, err := client.OptimizationDashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, before.Summary.PendingCount-1, after.Summary.PendingCount)
	assert.Equal(t, before.Summary.AppliedCount+1, after.Summary.AppliedCount)
}

func TestDismissCommand(t *testing.T) {
	client := api.NewDemoClient()

	t.Run("dismisses recommendation", func(t *testing.T) {
		ctx := CommandContext{
			ScreenID: "optimization",
			Selected: map[string]any{"id": "rec-002"},
		}
		msg := runCommand(t, DismissCommand(client), ctx)
		status := requireMutation(t, msg)
		assert.Contains(t, status.Message, "Dismissed")
	})

	t.Run("unknown recommendation", func(t *testing.T) {
		ctx := CommandContext{
			ScreenID: "optimization",
			Selected: map[string]any{"id": "rec-999"},
		}
		msg := runCommand(t, DismissCommand(client), ctx)
		status := requireErrorStatus(t, msg)
		assert.Contains(t, status.Message, "Dismiss failed")
	})

	t.Run("no selection", func(t *testing.T) {
		ctx := CommandContext{ScreenID: "optimization", Selected: map[string]any{}}
		msg := runCommand(t, DismissCommand(client), ctx)
		status := requireErrorStatus(t, msg)
		assert.Contains(t, status.Message, "No recommendation selected")
	})
}

func TestIncidentCommands(t *testing.T) {
	client := api.NewDemoClient()

	t.Run("acknowledge", func(t *testing.T) {
		ctx := CommandContext{
			ScreenID: "incidents",
			Selected: map[string]any{"id": "inc-101"},
		}
		msg := runCommand(t, AcknowledgeCommand(client), ctx)
		status := requireMutation(t, msg)
		assert.Contains(t, status.Message, "Acknowledged: CrashLoopBackOff on production/api-server")
	})

	t.Run("resolve", func(t *testing.T) {
		ctx := CommandContext{
			ScreenID: "incidents",
			Selected: map[string]any{"id": "inc-102"},
		}
		msg := runCommand(t, ResolveCommand(client), ctx)
		status := requireMutation(t, msg)
		assert.Contains(t, status.Message, "Resolved: Node pressure on node-3")

		active, err := client.Incidents(context.Background(), "active")
		require.NoError(t, err)
		for _, incident := range active {
			assert.NotEqual(t, "inc-102", incident.ID)
		}
	})

	t.Run("no selection", func(t *testing.T) {
		ctx := CommandContext{ScreenID: "incidents", Selected: map[string]any{}}
		msg := runCommand(t, AcknowledgeCommand(client), ctx)
		status := requireErrorStatus(t, msg)
		assert.Contains(t, status.Message, "No incident selected")
	})
}

func TestLogsCommand(t *testing.T) {
	t.Run("opens log viewer with stream options", func(t *testing.T) {
		ctx := CommandContext{
			ScreenID: "pods",
			Selected: map[string]any{"name": "web-7f8b9c6d4f-x2x9p", "namespace": "production"},
			Args:     "app 50 false",
		}
		msg := runCommand(t, LogsCommand(), ctx)

		switchMsg, ok := msg.(types.ScreenSwitchMsg)
		require.True(t, ok, "expected ScreenSwitchMsg, got %T", msg)
		assert.Equal(t, "logs", switchMsg.ScreenID)
		require.NotNil(t, switchMsg.FilterContext)
		assert.Equal(t, "resource", switchMsg.FilterContext.Field)
		assert.Equal(t, "web-7f8b9c6d4f-x2x9p", switchMsg.FilterContext.Value)
		assert.Equal(t, "production", switchMsg.FilterContext.Metadata["namespace"])
		assert.Equal(t, "app", switchMsg.FilterContext.Metadata["container"])
		assert.Equal(t, "50", switchMsg.FilterContext.Metadata["tail"])
		assert.Equal(t, "false", switchMsg.FilterContext.Metadata["follow"])
	})

	t.Run("defaults follow the stream", func(t *testing.T) {
		ctx := CommandContext{
			ScreenID: "pods",
			Selected: map[string]any{"name": "web-0", "namespace": "default"},
		}
		msg := runCommand(t, LogsCommand(), ctx)

		switchMsg, ok := msg.(types.ScreenSwitchMsg)
		require.True(t, ok)
		assert.Equal(t, "100", switchMsg.FilterContext.Metadata["tail"])
		assert.Equal(t, "true", switchMsg.FilterContext.Metadata["follow"])
		assert.NotContains(t, switchMsg.FilterContext.Metadata, "container")
	})

	t.Run("no pod selected", func(t *testing.T) {
		ctx := CommandContext{ScreenID: "pods", Selected: map[string]any{}}
		msg := runCommand(t, LogsCommand(), ctx)
		status := requireErrorStatus(t, msg)
		assert.Contains(t, status.Message, "No pod selected")
	})
}

func TestEventsCommand(t *testing.T) {
	ctx := CommandContext{
		ScreenID: "pods",
		Selected: map[string]any{"name": "web-0", "namespace": "production"},
	}
	msg := runCommand(t, EventsCommand(), ctx)

	switchMsg, ok := msg.(types.ScreenSwitchMsg)
	require.True(t, ok, "expected ScreenSwitchMsg, got %T", msg)
	assert.Equal(t, "timeline", switchMsg.ScreenID)
	require.NotNil(t, switchMsg.FilterContext)
	assert.Equal(t, "namespace", switchMsg.FilterContext.Field)
	assert.Equal(t, "production", switchMsg.FilterContext.Value)
}

func TestPodsOnNodeCommand(t *testing.T) {
	ctx := CommandContext{
		ScreenID: "nodes",
		Selected: map[string]any{"name": "node-2"},
	}
	msg := runCommand(t, PodsOnNodeCommand(), ctx)

	switchMsg, ok := msg.(types.ScreenSwitchMsg)
	require.True(t, ok, "expected ScreenSwitchMsg, got %T", msg)
	assert.Equal(t, "pods", switchMsg.ScreenID)
	require.NotNil(t, switchMsg.FilterContext)
	assert.Equal(t, "node", switchMsg.FilterContext.Field)
	assert.Equal(t, "node-2", switchMsg.FilterContext.Value)
}
