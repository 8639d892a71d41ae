package screens

import (
	"context"
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/quarterdeckhq/quarterdeck/internal/api"
	"github.com/quarterdeckhq/quarterdeck/internal/messages"
	"github.com/quarterdeckhq/quarterdeck/internal/types"
)

// releaseHistoryMsg carries the revision list fetched for the rollback
// picker.
type releaseHistoryMsg struct {
	namespace string
	name      string
	revisions []api.ReleaseRevision
}

// installFormMsg carries the namespace list fetched for the install
// form. A nil list degrades the namespace field to free text.
type installFormMsg struct {
	namespaces []string
}

func required(field string) func(string) error {
	return func(v string) error {
		if strings.TrimSpace(v) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

func formWidth(screenWidth int) int {
	w := screenWidth - 4
	if w > 64 {
		w = 64
	}
	if w < 40 {
		w = 40
	}
	return w
}

// GetReleasesScreenConfig returns the config for the Helm Releases
// screen. Install, upgrade and rollback open guided forms hosted by the
// screen; the form state lives in this closure and is only touched from
// the program's event loop. Uninstall, values, history and dry-run are
// command registry actions.
func GetReleasesScreenConfig() ScreenConfig {
	var (
		form   *huh.Form
		submit func(s *ConfigScreen) tea.Cmd
	)

	openForm := func(s *ConfigScreen, f *huh.Form, onSubmit func(s *ConfigScreen) tea.Cmd) tea.Cmd {
		form = f.WithTheme(s.theme.FormTheme()).WithWidth(formWidth(s.width))
		submit = onSubmit
		s.capturingInput = true
		return form.Init()
	}

	closeForm := func(s *ConfigScreen) {
		form = nil
		submit = nil
		s.capturingInput = false
	}

	// install fetches the namespace list first so the form can offer a
	// picker; the form opens when the installFormMsg comes back.
	install := func(s *ConfigScreen) tea.Cmd {
		client := s.client
		return func() tea.Msg {
			namespaces, err := client.Namespaces(context.Background())
			if err != nil {
				namespaces = nil
			}
			return installFormMsg{namespaces: namespaces}
		}
	}

	openInstallForm := func(s *ConfigScreen, namespaces []string) tea.Cmd {
		var (
			name      string
			namespace = "default"
			chart     string
			version   string
			createNS  bool
			atomic    bool
		)
		var nsField huh.Field
		if len(namespaces) > 0 {
			opts := make([]huh.Option[string], len(namespaces))
			for i, ns := range namespaces {
				opts[i] = huh.NewOption(ns, ns)
			}
			nsField = huh.NewSelect[string]().Title("Namespace").Options(opts...).Value(&namespace)
		} else {
			nsField = huh.NewInput().Title("Namespace").Value(&namespace).Validate(required("namespace"))
		}
		f := huh.NewForm(huh.NewGroup(
			huh.NewInput().Title("Release name").Value(&name).Validate(required("release name")),
			nsField,
			huh.NewInput().Title("Chart").Placeholder("repo/chart or oci://...").Value(&chart).Validate(required("chart")),
			huh.NewInput().Title("Version").Placeholder("latest").Value(&version),
			huh.NewConfirm().Title("Create namespace?").Value(&createNS),
			huh.NewConfirm().Title("Atomic?").Value(&atomic),
		).Title("Install chart"))
		return openForm(s, f, func(s *ConfigScreen) tea.Cmd {
			client := s.client
			req := api.InstallRequest{
				ReleaseName:     strings.TrimSpace(name),
				Namespace:       strings.TrimSpace(namespace),
				ChartRef:        strings.TrimSpace(chart),
				Version:         strings.TrimSpace(version),
				CreateNamespace: createNS,
				Atomic:          atomic,
			}
			return func() tea.Msg {
				if _, err := client.InstallRelease(context.Background(), req); err != nil {
					return types.ErrorStatusMsg(fmt.Sprintf("Install failed: %v", err))
				}
				return types.RefreshRequestMsg{Status: types.SuccessMsg(
					fmt.Sprintf("Installed %s/%s", req.Namespace, req.ReleaseName))}
			}
		})
	}

	upgrade := func(s *ConfigScreen) tea.Cmd {
		rel, ok := s.SelectedItem().(api.Release)
		if !ok {
			return messages.ErrorCmd("No release selected")
		}
		var (
			chart   = rel.Chart
			version string
			reuse   = true
			atomic  bool
		)
		f := huh.NewForm(huh.NewGroup(
			huh.NewInput().Title("Chart").Value(&chart).Validate(required("chart")),
			huh.NewInput().Title("Version").Placeholder("latest").Value(&version),
			huh.NewConfirm().Title("Reuse values?").Value(&reuse),
			huh.NewConfirm().Title("Atomic?").Value(&atomic),
		).Title(fmt.Sprintf("Upgrade %s/%s", rel.Namespace, rel.Name)))
		namespace, name := rel.Namespace, rel.Name
		return openForm(s, f, func(s *ConfigScreen) tea.Cmd {
			client := s.client
			req := api.UpgradeRequest{
				ChartRef:    strings.TrimSpace(chart),
				Version:     strings.TrimSpace(version),
				ReuseValues: reuse,
				Atomic:      atomic,
			}
			return func() tea.Msg {
				updated, err := client.UpgradeRelease(context.Background(), namespace, name, req)
				if err != nil {
					return types.ErrorStatusMsg(fmt.Sprintf("Upgrade failed: %v", err))
				}
				return types.RefreshRequestMsg{Status: types.SuccessMsg(
					fmt.Sprintf("Upgraded %s/%s to revision %d", namespace, name, updated.Revision))}
			}
		})
	}

	// rollback fetches the history first; the picker opens when the
	// releaseHistoryMsg comes back.
	rollback := func(s *ConfigScreen) tea.Cmd {
		rel, ok := s.SelectedItem().(api.Release)
		if !ok {
			return messages.ErrorCmd("No release selected")
		}
		client := s.client
		namespace, name := rel.Namespace, rel.Name
		return tea.Batch(
			func() tea.Msg {
				return types.LoadingMsg(fmt.Sprintf("Loading history for %s...", name))
			},
			func() tea.Msg {
				revisions, err := client.ReleaseHistory(context.Background(), namespace, name)
				if err != nil {
					return types.ErrorStatusMsg(fmt.Sprintf("Failed to fetch history for %s: %v", name, err))
				}
				return releaseHistoryMsg{namespace: namespace, name: name, revisions: revisions}
			},
		)
	}

	openRollbackForm := func(s *ConfigScreen, msg releaseHistoryMsg) tea.Cmd {
		revisions := msg.revisions
		sort.Slice(revisions, func(i, j int) bool {
			return revisions[i].Revision > revisions[j].Revision
		})

		current := 0
		if len(revisions) > 0 {
			current = revisions[0].Revision
		}

		opts := make([]huh.Option[int], 0, len(revisions))
		for _, r := range revisions {
			if r.Revision == current {
				continue
			}
			label := fmt.Sprintf("%-4d %-12s %-24s %s", r.Revision, r.Status, r.Chart, FormatDate(r.UpdatedAt))
			opts = append(opts, huh.NewOption(label, r.Revision))
		}
		if len(opts) == 0 {
			return messages.InfoCmd("No previous revisions for %s", msg.name)
		}

		var revision int
		f := huh.NewForm(huh.NewGroup(
			huh.NewSelect[int]().
				Title(fmt.Sprintf("Roll back %s/%s to revision", msg.namespace, msg.name)).
				Options(opts...).
				Value(&revision),
		))
		namespace, name := msg.namespace, msg.name
		return openForm(s, f, func(s *ConfigScreen) tea.Cmd {
			client := s.client
			to := revision
			return func() tea.Msg {
				if _, err := client.RollbackRelease(context.Background(), namespace, name, to); err != nil {
					return types.ErrorStatusMsg(fmt.Sprintf("Rollback failed: %v", err))
				}
				return types.RefreshRequestMsg{Status: types.SuccessMsg(
					fmt.Sprintf("Rolled back %s/%s to revision %d", namespace, name, to))}
			}
		})
	}

	return ScreenConfig{
		ID:    "releases",
		Title: "Releases",
		Fetch: func(ctx context.Context, client api.Client, fc *types.FilterContext) ([]any, error) {
			namespace := ""
			if fc != nil && fc.Field == "namespace" {
				namespace = fc.Value
			}
			releases, err := client.Releases(ctx, namespace)
			if err != nil {
				return nil, err
			}
			return toItems(releases), nil
		},
		Columns: []ColumnConfig{
			{Field: "Namespace", Title: "Namespace", Width: 20, Priority: 1},
			{Field: "Name", Title: "Name", Width: 0, Priority: 1},
			{Field: "Chart", Title: "Chart", Width: 20, Priority: 2},
			{Field: "ChartVersion", Title: "Version", Width: 12, Priority: 3},
			{Field: "Revision", Title: "Revision", Width: 8, Priority: 2},
			{Field: "Status", Title: "Status", Width: 14, Priority: 1},
			{Field: "UpdatedAt", Title: "Updated", Width: 9, Format: FormatDate, Priority: 1},
		},
		SearchFields: []string{"Namespace", "Name", "Chart", "Status"},
		Operations: []OperationConfig{
			{ID: "install", Name: "Install", Description: "Install a chart", Shortcut: "i", Execute: install},
			{ID: "upgrade", Name: "Upgrade", Description: "Upgrade the selected release", Shortcut: "u", Execute: upgrade},
			{ID: "rollback", Name: "Rollback", Description: "Roll back to an earlier revision", Shortcut: "r", Execute: rollback},
		},
		HelpText:          "enter: detail • i/u/r: install/upgrade/rollback • x: uninstall • v: values • h: history • y: dry-run",
		RefreshInterval:   ReleasesRefreshInterval,
		TrackSelection:    true,
		NavigationHandler: releaseDetail,
		CustomUpdate: func(s *ConfigScreen, msg tea.Msg) (tea.Model, tea.Cmd) {
			switch m := msg.(type) {
			case installFormMsg:
				return s, openInstallForm(s, m.namespaces)
			case releaseHistoryMsg:
				return s, openRollbackForm(s, m)
			}

			if form == nil {
				return s.DefaultUpdate(msg)
			}

			// Keep the table sized while the form is up.
			if _, ok := msg.(tea.WindowSizeMsg); ok {
				return s.DefaultUpdate(msg)
			}

			model, cmd := form.Update(msg)
			if f, ok := model.(*huh.Form); ok {
				form = f
			}

			switch form.State {
			case huh.StateCompleted:
				run := submit
				closeForm(s)
				return s, run(s)
			case huh.StateAborted:
				closeForm(s)
				return s, messages.InfoCmd("Cancelled")
			}

			return s, cmd
		},
		CustomView: func(s *ConfigScreen) string {
			if form == nil {
				return ""
			}
			return lipgloss.NewStyle().Padding(1, 2).Render(form.View())
		},
	}
}
