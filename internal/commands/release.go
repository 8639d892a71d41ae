package commands

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"sigs.k8s.io/yaml"

	"github.com/quarterdeckhq/quarterdeck/internal/api"
	"github.com/quarterdeckhq/quarterdeck/internal/messages"
	"github.com/quarterdeckhq/quarterdeck/internal/types"
)

// InstallArgs defines arguments for the install command
type InstallArgs struct {
	Name      string `form:"name" title:"Release Name" validate:"required"`
	Chart     string `form:"chart" title:"Chart" validate:"required"`
	Namespace string `form:"namespace" title:"Namespace" default:"default" optional:"true"`
	Version   string `form:"version" title:"Version" optional:"true"`
}

// UpgradeArgs defines arguments for the upgrade command
type UpgradeArgs struct {
	Chart   string `form:"chart" title:"Chart" optional:"true"`
	Version string `form:"version" title:"Version" optional:"true"`
}

// RollbackArgs defines arguments for the rollback command
type RollbackArgs struct {
	Revision int `form:"revision" title:"Revision" validate:"required,min=1"`
}

// DryRunArgs defines arguments for the dry-run command
type DryRunArgs struct {
	Chart   string `form:"chart" title:"Chart" optional:"true"`
	Version string `form:"version" title:"Version" optional:"true"`
}

// mutated wraps a success message so the app refreshes the active screen
// after showing it. Failed mutations return a plain error status and do
// not trigger a refetch.
func mutated(format string, args ...any) tea.Msg {
	return types.RefreshRequestMsg{Status: types.SuccessMsg(fmt.Sprintf(format, args...))}
}

// InstallCommand returns execute function for installing a chart
func InstallCommand(client api.Client) ExecuteFunc {
	return func(ctx CommandContext) tea.Cmd {
		var args InstallArgs
		if err := ctx.ParseArgs(&args); err != nil {
			return messages.ErrorCmd("Invalid args: %v", err)
		}

		req := api.InstallRequest{
			ReleaseName: args.Name,
			Namespace:   args.Namespace,
			ChartRef:    args.Chart,
			Version:     args.Version,
		}

		return func() tea.Msg {
			release, err := client.InstallRelease(context.Background(), req)
			if err != nil {
				return types.ErrorStatusMsg("Install failed: " + err.Error())
			}
			return mutated("Installed %s/%s (revision %d)",
				release.Namespace, release.Name, release.Revision)
		}
	}
}

// UpgradeCommand returns execute function for upgrading the selected
// release. Without an explicit chart the release's current chart is
// reused, which upgrades to the latest available version.
func UpgradeCommand(client api.Client) ExecuteFunc {
	return func(ctx CommandContext) tea.Cmd {
		var args UpgradeArgs
		if err := ctx.ParseArgs(&args); err != nil {
			return messages.ErrorCmd("Invalid args: %v", err)
		}

		sel := ctx.GetSelection()
		if sel.Name == "" {
			return messages.ErrorCmd("No release selected")
		}

		chart := args.Chart
		if chart == "" {
			chart = ctx.SelectedField("chart", "")
		}
		if chart == "" {
			return messages.ErrorCmd("No chart for %s; pass one with /upgrade <chart>", sel.Name)
		}

		req := api.UpgradeRequest{
			ChartRef:    chart,
			Version:     args.Version,
			ReuseValues: true,
		}

		return func() tea.Msg {
			release, err := client.UpgradeRelease(context.Background(), sel.Namespace, sel.Name, req)
			if err != nil {
				return types.ErrorStatusMsg("Upgrade failed: " + err.Error())
			}
			return mutated("Upgraded %s to revision %d", release.Name, release.Revision)
		}
	}
}

// RollbackCommand returns execute function for rolling the selected
// release back to an earlier revision
func RollbackCommand(client api.Client) ExecuteFunc {
	return func(ctx CommandContext) tea.Cmd {
		var args RollbackArgs
		if err := ctx.ParseArgs(&args); err != nil {
			return messages.ErrorCmd("Invalid args: %v", err)
		}

		sel := ctx.GetSelection()
		if sel.Name == "" {
			return messages.ErrorCmd("No release selected")
		}

		return func() tea.Msg {
			release, err := client.RollbackRelease(context.Background(), sel.Namespace, sel.Name, args.Revision)
			if err != nil {
				return types.ErrorStatusMsg("Rollback failed: " + err.Error())
			}
			return mutated("Rolled back %s to revision %d (now revision %d)",
				release.Name, args.Revision, release.Revision)
		}
	}
}

// UninstallCommand returns execute function for uninstalling the selected release
func UninstallCommand(client api.Client) ExecuteFunc {
	return func(ctx CommandContext) tea.Cmd {
		sel := ctx.GetSelection()
		if sel.Name == "" {
			return messages.ErrorCmd("No release selected")
		}

		return func() tea.Msg {
			if err := client.UninstallRelease(context.Background(), sel.Namespace, sel.Name); err != nil {
				return types.ErrorStatusMsg("Uninstall failed: " + err.Error())
			}
			return mutated("Uninstalled %s/%s", sel.Namespace, sel.Name)
		}
	}
}

// ValuesCommand returns execute function for viewing the selected
// release's user-supplied values as YAML
func ValuesCommand(client api.Client) ExecuteFunc {
	return func(ctx CommandContext) tea.Cmd {
		sel := ctx.GetSelection()
		if sel.Name == "" {
			return messages.ErrorCmd("No release selected")
		}

		return func() tea.Msg {
			values, err := client.ReleaseValues(context.Background(), sel.Namespace, sel.Name)
			if err != nil {
				return types.ErrorStatusMsg("Failed to get values: " + err.Error())
			}

			content := "# No user-supplied values\n"
			if len(values) > 0 {
				raw, err := yaml.Marshal(values)
				if err != nil {
					return types.ErrorStatusMsg("Failed to render values: " + err.Error())
				}
				content = string(raw)
			}

			return types.ShowFullScreenMsg{
				ViewType:     0, // YAML
				ResourceName: sel.Namespace + "/" + sel.Name,
				Content:      content,
			}
		}
	}
}

// HistoryCommand returns execute function for viewing the selected
// release's revision history
func HistoryCommand(client api.Client) ExecuteFunc {
	return func(ctx CommandContext) tea.Cmd {
		sel := ctx.GetSelection()
		if sel.Name == "" {
			return messages.ErrorCmd("No release selected")
		}

		return func() tea.Msg {
			history, err := client.ReleaseHistory(context.Background(), sel.Namespace, sel.Name)
			if err != nil {
				return types.ErrorStatusMsg("Failed to get history: " + err.Error())
			}

			return types.ShowFullScreenMsg{
				ViewType:     1, // Detail
				ResourceName: sel.Namespace + "/" + sel.Name,
				Content:      formatReleaseHistory(history),
			}
		}
	}
}

// DryRunCommand returns execute function for previewing an upgrade of the
// selected release without applying it
func DryRunCommand(client api.Client) ExecuteFunc {
	return func(ctx CommandContext) tea.Cmd {
		var args DryRunArgs
		if err := ctx.ParseArgs(&args); err != nil {
			return messages.ErrorCmd("Invalid args: %v", err)
		}

		sel := ctx.GetSelection()
		if sel.Name == "" {
			return messages.ErrorCmd("No release selected")
		}

		chart := args.Chart
		if chart == "" {
			chart = ctx.SelectedField("chart", "")
		}
		if chart == "" {
			return messages.ErrorCmd("No chart for %s; pass one with /dry-run <chart>", sel.Name)
		}

		req := api.DryRunRequest{
			ReleaseName: sel.Name,
			Namespace:   sel.Namespace,
			ChartRef:    chart,
			Version:     args.Version,
			Upgrade:     true,
		}

		return func() tea.Msg {
			result, err := client.DryRun(context.Background(), req)
			if err != nil {
				return types.ErrorStatusMsg("Dry run failed: " + err.Error())
			}

			return types.ShowFullScreenMsg{
				ViewType:     0, // YAML
				ResourceName: sel.Namespace + "/" + sel.Name + " (dry run)",
				Content:      formatDryRun(result),
			}
		}
	}
}

func formatReleaseHistory(history []api.ReleaseRevision) string {
	if len(history) == 0 {
		return "No revisions recorded."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%-9s %-17s %-28s %-12s %s\n",
		"REVISION", "STATUS", "CHART", "APP VERSION", "DESCRIPTION")
	for _, rev := range history {
		fmt.Fprintf(&b, "%-9d %-17s %-28s %-12s %s\n",
			rev.Revision, rev.Status, rev.Chart, rev.AppVersion, rev.Description)
	}
	return b.String()
}

func formatDryRun(result *api.DryRunResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Dry run: %d resources\n", result.ResourceCount)
	for _, change := range result.Changes {
		name := change.Name
		if change.Namespace != "" {
			name = change.Namespace + "/" + change.Name
		}
		fmt.Fprintf(&b, "#   %-9s %s %s\n", change.Action, change.Kind, name)
	}
	b.WriteString("\n")
	b.WriteString(result.Manifest)

	if result.Notes != "" {
		b.WriteString("\n# NOTES:\n")
		for _, line := range strings.Split(strings.TrimRight(result.Notes, "\n"), "\n") {
			b.WriteString("# " + line + "\n")
		}
	}
	return b.String()
}
