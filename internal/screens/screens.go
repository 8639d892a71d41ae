package screens

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	corev1 "k8s.io/api/core/v1"

	"github.com/quarterdeckhq/quarterdeck/internal/api"
	"github.com/quarterdeckhq/quarterdeck/internal/messages"
	"github.com/quarterdeckhq/quarterdeck/internal/types"
)

// toItems widens a typed slice for the table engine.
func toItems[T any](xs []T) []any {
	items := make([]any, len(xs))
	for i, x := range xs {
		items[i] = x
	}
	return items
}

// GetNodesScreenConfig returns the config for the Nodes screen. Nodes
// are display-only; mutations are not part of the product surface.
func GetNodesScreenConfig() ScreenConfig {
	return ScreenConfig{
		ID:    "nodes",
		Title: "Nodes",
		Fetch: func(ctx context.Context, client api.Client, fc *types.FilterContext) ([]any, error) {
			nodes, err := client.Nodes(ctx)
			if err != nil {
				return nil, err
			}
			return toItems(nodes), nil
		},
		Columns: []ColumnConfig{
			{Field: "Name", Title: "Name", Width: 0, Priority: 1},
			{Field: "Status", Title: "Status", Width: 12, Priority: 1},
			{Field: "Roles", Title: "Roles", Width: 18, Priority: 2},
			{Field: "KubeletVersion", Title: "Version", Width: 14, Priority: 2},
			{Field: "CPUPercent", Title: "CPU%", Width: 6, Format: FormatPercent, Priority: 1},
			{Field: "MemoryPercent", Title: "Mem%", Width: 6, Format: FormatPercent, Priority: 1},
			{Field: "PodCount", Title: "Pods", Width: 6, Priority: 2},
			{Field: "CreatedAt", Title: "Age", Width: 6, Format: FormatAge, Priority: 1},
		},
		SearchFields: []string{"Name", "Status", "KubeletVersion"},
		Operations: []OperationConfig{
			{ID: "detail", Name: "Node Detail", Description: "Conditions, capacity and utilization", Shortcut: "d", Execute: nodeDetail},
		},
		HelpText:          "↑/↓: navigate • enter/d: detail • type: filter • esc: back",
		RefreshInterval:   NodesRefreshInterval,
		TrackSelection:    true,
		NavigationHandler: nodeDetail,
	}
}

// GetPodsScreenConfig returns the config for the Pods screen. The filter
// context scopes it to a namespace (":ns") or a node (from the nodes
// screen); node scoping is applied client-side since the server only
// filters by namespace.
func GetPodsScreenConfig() ScreenConfig {
	return ScreenConfig{
		ID:    "pods",
		Title: "Pods",
		Fetch: func(ctx context.Context, client api.Client, fc *types.FilterContext) ([]any, error) {
			namespace := ""
			if fc != nil && fc.Field == "namespace" {
				namespace = fc.Value
			}

			pods, err := client.Pods(ctx, namespace)
			if err != nil {
				return nil, err
			}

			if fc != nil && fc.Field == "node" {
				onNode := make([]api.Pod, 0, len(pods))
				for _, p := range pods {
					if p.Node == fc.Value {
						onNode = append(onNode, p)
					}
				}
				pods = onNode
			}

			return toItems(pods), nil
		},
		Columns: []ColumnConfig{
			{Field: "Namespace", Title: "Namespace", Width: 24, Priority: 1},
			{Field: "Name", Title: "Name", Width: 0, Priority: 1},
			{Field: "Ready", Title: "Ready", Width: 7, Priority: 1},
			{Field: "Phase", Title: "Status", Width: 12, Priority: 1},
			{Field: "Restarts", Title: "Restarts", Width: 8, Priority: 2},
			{Field: "Node", Title: "Node", Width: 24, Priority: 3},
			{Field: "IP", Title: "IP", Width: 15, Priority: 3},
			{Field: "CreatedAt", Title: "Age", Width: 6, Format: FormatAge, Priority: 1},
		},
		SearchFields: []string{"Namespace", "Name", "Phase", "Node", "IP"},
		Operations: []OperationConfig{
			{ID: "detail", Name: "Pod Detail", Description: "Containers, phase and placement", Shortcut: "d", Execute: podDetail},
		},
		HelpText:          "↑/↓: navigate • enter/d: detail • l: logs • type: filter • esc: back",
		RefreshInterval:   PodsRefreshInterval,
		TrackSelection:    true,
		NavigationHandler: podDetail,
	}
}

// GetTimelineScreenConfig returns the config for the event Timeline
// screen. "t" cycles the type filter through all, Warning and Normal.
func GetTimelineScreenConfig() ScreenConfig {
	return ScreenConfig{
		ID:    "timeline",
		Title: "Timeline",
		Fetch: func(ctx context.Context, client api.Client, fc *types.FilterContext) ([]any, error) {
			opts := api.TimelineOptions{Since: TimelineWindow}
			if fc != nil {
				switch fc.Field {
				case "eventtype":
					opts.Type = fc.Value
					opts.Namespace = fc.Metadata["namespace"]
				case "namespace":
					opts.Namespace = fc.Value
				}
			}

			events, err := client.Timeline(ctx, opts)
			if err != nil {
				return nil, err
			}
			return toItems(events), nil
		},
		Columns: []ColumnConfig{
			{Field: "Type", Title: "Type", Width: 8, Priority: 1},
			{Field: "Namespace", Title: "Namespace", Width: 16, Priority: 2},
			{Field: "Kind", Title: "Kind", Width: 12, Priority: 2},
			{Field: "Name", Title: "Name", Width: 0, Priority: 1},
			{Field: "Reason", Title: "Reason", Width: 20, Priority: 1},
			{Field: "Message", Title: "Message", Width: 0, Priority: 1},
			{Field: "Count", Title: "Count", Width: 6, Priority: 3},
			{Field: "LastSeen", Title: "Age", Width: 6, Format: FormatAge, Priority: 1},
		},
		SearchFields: []string{"Type", "Reason", "Message", "Name", "Namespace", "Kind"},
		Operations: []OperationConfig{
			{ID: "cycle-type", Name: "Cycle Type Filter", Description: "All, Warning or Normal events", Shortcut: "t", Execute: cycleEventType},
		},
		HelpText:          "↑/↓: navigate • enter: detail • t: cycle type • type: filter • esc: back",
		RefreshInterval:   TimelineRefreshInterval,
		NavigationHandler: eventDetail,
	}
}

// cycleEventType advances the timeline's type filter. The scope is held
// in the filter context so an in-flight fetch keeps the value it started
// with; a namespace scope set by ":ns" or the pod events command is
// preserved across cycles.
func cycleEventType(s *ConfigScreen) tea.Cmd {
	current := ""
	namespace := ""
	if fc := s.filterContext; fc != nil {
		switch fc.Field {
		case "eventtype":
			current = fc.Value
			namespace = fc.Metadata["namespace"]
		case "namespace":
			namespace = fc.Value
		}
	}

	var next string
	switch current {
	case "":
		next = corev1.EventTypeWarning
	case corev1.EventTypeWarning:
		next = corev1.EventTypeNormal
	default:
		next = ""
	}

	switch {
	case next == "" && namespace == "":
		s.filterContext = nil
	case next == "":
		s.filterContext = &types.FilterContext{Field: "namespace", Value: namespace}
	default:
		fc := &types.FilterContext{Field: "eventtype", Value: next}
		if namespace != "" {
			fc.Metadata = map[string]string{"namespace": namespace}
		}
		s.filterContext = fc
	}

	label := next
	if label == "" {
		label = "all"
	}
	return tea.Batch(
		messages.InfoCmd("Timeline: %s events", label),
		s.Refresh(),
	)
}

// GetIncidentsScreenConfig returns the config for the Incidents screen.
// Acknowledge and resolve are command registry actions ("a", "r").
func GetIncidentsScreenConfig() ScreenConfig {
	return ScreenConfig{
		ID:    "incidents",
		Title: "Incidents",
		Fetch: func(ctx context.Context, client api.Client, fc *types.FilterContext) ([]any, error) {
			incidents, err := client.Incidents(ctx, "")
			if err != nil {
				return nil, err
			}
			return toItems(incidents), nil
		},
		Columns: []ColumnConfig{
			{Field: "Severity", Title: "Severity", Width: 10, Priority: 1},
			{Field: "Status", Title: "Status", Width: 13, Priority: 1},
			{Field: "Title", Title: "Title", Width: 0, Priority: 1},
			{Field: "Namespace", Title: "Namespace", Width: 16, Priority: 2},
			{Field: "Count", Title: "Count", Width: 6, Priority: 3},
			{Field: "CreatedAt", Title: "Age", Width: 6, Format: FormatAge, Priority: 1},
			{Field: "UpdatedAt", Title: "Updated", Width: 8, Format: FormatAge, Priority: 2},
		},
		SearchFields:      []string{"Severity", "Status", "Title", "Name", "Namespace", "Reason"},
		HelpText:          "↑/↓: navigate • enter: detail • a: acknowledge • r: resolve • esc: back",
		RefreshInterval:   IncidentsRefreshInterval,
		TrackSelection:    true,
		NavigationHandler: incidentDetail,
	}
}

// Setting is one row on the config screen: an effective setting, its
// value and where the value came from.
type Setting struct {
	Name   string
	Value  string
	Source string
}

// GetConfigScreenConfig returns the config screen, a static table of the
// effective settings assembled at startup.
func GetConfigScreenConfig(settings []Setting) ScreenConfig {
	return ScreenConfig{
		ID:    "config",
		Title: "Config",
		Fetch: func(ctx context.Context, client api.Client, fc *types.FilterContext) ([]any, error) {
			return toItems(settings), nil
		},
		Columns: []ColumnConfig{
			{Field: "Name", Title: "Setting", Width: 24, Priority: 1},
			{Field: "Value", Title: "Value", Width: 0, Priority: 1},
			{Field: "Source", Title: "Source", Width: 14, Priority: 2},
		},
		SearchFields: []string{"Name", "Value", "Source"},
		HelpText:     "↑/↓: navigate • type: filter • esc: back",
	}
}
