package screens

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	corev1 "k8s.io/api/core/v1"

	"github.com/quarterdeckhq/quarterdeck/internal/api"
	"github.com/quarterdeckhq/quarterdeck/internal/types"
)

// Navigation handlers wire Enter (and the detail shortcuts) on each list
// screen to another screen or to a full-screen rendering of the row.

// switchTo returns a command that navigates to another screen, optionally
// carrying a filter context.
func switchTo(screenID string, fc *types.FilterContext) tea.Cmd {
	return func() tea.Msg {
		return types.ScreenSwitchMsg{ScreenID: screenID, FilterContext: fc}
	}
}

// showDetail returns a command that opens the full-screen detail overlay.
func showDetail(name, content string) tea.Cmd {
	return func() tea.Msg {
		return types.ShowFullScreenMsg{
			ViewType:     1, // Detail
			ResourceName: name,
			Content:      content,
		}
	}
}

// nodeDetail opens the selected node full-screen.
func nodeDetail(s *ConfigScreen) tea.Cmd {
	node, ok := s.SelectedItem().(api.Node)
	if !ok {
		return nil
	}
	return showDetail(node.Name, renderNodeDetail(node))
}

// podDetail opens the selected pod full-screen.
func podDetail(s *ConfigScreen) tea.Cmd {
	pod, ok := s.SelectedItem().(api.Pod)
	if !ok {
		return nil
	}
	return showDetail(pod.Namespace+"/"+pod.Name, renderPodDetail(pod))
}

// eventDetail opens the selected timeline event full-screen.
func eventDetail(s *ConfigScreen) tea.Cmd {
	event, ok := s.SelectedItem().(api.TimelineEvent)
	if !ok {
		return nil
	}
	return showDetail(event.Kind+"/"+event.Name, renderEventDetail(event))
}

// incidentDetail opens the selected incident full-screen, timeline
// included.
func incidentDetail(s *ConfigScreen) tea.Cmd {
	incident, ok := s.SelectedItem().(api.Incident)
	if !ok {
		return nil
	}
	name := incident.Name
	if incident.Namespace != "" {
		name = incident.Namespace + "/" + incident.Name
	}
	return showDetail(name, renderIncidentDetail(incident))
}

// recommendationDetail opens the selected recommendation's rationale
// full-screen.
func recommendationDetail(s *ConfigScreen) tea.Cmd {
	rec, ok := s.SelectedItem().(api.Recommendation)
	if !ok {
		return nil
	}
	name := rec.Workload.Namespace + "/" + rec.Workload.Name
	return showDetail(name, renderRecommendationDetail(rec))
}

// releaseDetail opens the selected Helm release full-screen.
func releaseDetail(s *ConfigScreen) tea.Cmd {
	rel, ok := s.SelectedItem().(api.Release)
	if !ok {
		return nil
	}
	return showDetail(rel.Namespace+"/"+rel.Name, renderReleaseDetail(rel))
}

// conditionAbnormal reports whether a node condition is in its bad state.
// Pressure-style conditions are bad when true; Ready is bad when not true.
func conditionAbnormal(c api.NodeCondition) bool {
	if c.Type == string(corev1.NodeReady) {
		return c.Status != string(corev1.ConditionTrue)
	}
	return c.Status == string(corev1.ConditionTrue)
}

func renderNodeDetail(n api.Node) string {
	var b strings.Builder

	status := n.Status
	if n.Unschedulable {
		status += " (cordoned)"
	}

	fmt.Fprintf(&b, "Name:      %s\n", n.Name)
	fmt.Fprintf(&b, "Status:    %s\n", status)
	fmt.Fprintf(&b, "Roles:     %s\n", strings.Join(n.Roles, ","))
	fmt.Fprintf(&b, "Kubelet:   %s\n", n.KubeletVersion)
	fmt.Fprintf(&b, "OS Image:  %s\n", n.OSImage)
	fmt.Fprintf(&b, "Age:       %s\n", FormatAge(n.CreatedAt))

	b.WriteString("\nCapacity / Allocatable\n")
	fmt.Fprintf(&b, "  CPU:     %s / %s cores\n",
		FormatCPUQuantity(n.CPUCapacity), FormatCPUQuantity(n.CPUAllocatable))
	fmt.Fprintf(&b, "  Memory:  %s / %s\n",
		FormatMemoryQuantity(n.MemoryCapacity), FormatMemoryQuantity(n.MemoryAllocatable))
	fmt.Fprintf(&b, "  Pods:    %d / %d\n", n.PodCount, n.PodCapacity)

	b.WriteString("\nUtilization\n")
	fmt.Fprintf(&b, "  CPU:     %s\n", FormatPercent(n.CPUPercent))
	fmt.Fprintf(&b, "  Memory:  %s\n", FormatPercent(n.MemoryPercent))

	if len(n.Conditions) > 0 {
		b.WriteString("\nConditions\n")
		fmt.Fprintf(&b, "  %-18s %-8s %s\n", "TYPE", "STATUS", "REASON")
		for _, cond := range n.Conditions {
			reason := cond.Reason
			if conditionAbnormal(cond) {
				reason += "  <- attention"
			}
			fmt.Fprintf(&b, "  %-18s %-8s %s\n", cond.Type, cond.Status, reason)
		}
	}

	return b.String()
}

func renderPodDetail(p api.Pod) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Name:       %s\n", p.Name)
	fmt.Fprintf(&b, "Namespace:  %s\n", p.Namespace)
	fmt.Fprintf(&b, "Phase:      %s\n", p.Phase)
	fmt.Fprintf(&b, "Ready:      %s\n", p.Ready)
	fmt.Fprintf(&b, "Restarts:   %d\n", p.Restarts)
	fmt.Fprintf(&b, "Node:       %s\n", p.Node)
	fmt.Fprintf(&b, "IP:         %s\n", p.IP)
	fmt.Fprintf(&b, "Age:        %s\n", FormatAge(p.CreatedAt))

	if len(p.Containers) > 0 {
		b.WriteString("\nContainers\n")
		fmt.Fprintf(&b, "  %-24s %-6s %-9s %s\n", "NAME", "READY", "RESTARTS", "STATE")
		for _, c := range p.Containers {
			fmt.Fprintf(&b, "  %-24s %-6t %-9d %s\n", c.Name, c.Ready, c.Restarts, c.State)
		}
	}

	switch corev1.PodPhase(p.Phase) {
	case corev1.PodPending:
		b.WriteString("\nPod has not been scheduled, or is still pulling images.\n")
	case corev1.PodFailed:
		b.WriteString("\nAll containers have terminated and at least one failed.\n")
	}

	return b.String()
}

func renderEventDetail(e api.TimelineEvent) string {
	var b strings.Builder

	eventType := e.Type
	if e.Type == corev1.EventTypeWarning {
		eventType += "  <- attention"
	}

	object := e.Kind + "/" + e.Name
	if e.Namespace != "" {
		object = e.Namespace + "/" + object
	}

	fmt.Fprintf(&b, "Type:        %s\n", eventType)
	fmt.Fprintf(&b, "Reason:      %s\n", e.Reason)
	fmt.Fprintf(&b, "Object:      %s\n", object)
	if e.Source != "" {
		fmt.Fprintf(&b, "Source:      %s\n", e.Source)
	}
	fmt.Fprintf(&b, "Count:       %d\n", e.Count)
	fmt.Fprintf(&b, "First seen:  %s\n", FormatDate(e.FirstSeen))
	fmt.Fprintf(&b, "Last seen:   %s\n", FormatDate(e.LastSeen))

	if e.Message != "" {
		b.WriteString("\n" + e.Message + "\n")
	}

	return b.String()
}

func renderIncidentDetail(in api.Incident) string {
	var b strings.Builder

	resource := in.Kind + "/" + in.Name
	if in.Namespace != "" {
		resource = in.Namespace + "/" + resource
	}

	fmt.Fprintf(&b, "Title:     %s\n", in.Title)
	fmt.Fprintf(&b, "Severity:  %s\n", in.Severity)
	fmt.Fprintf(&b, "Status:    %s\n", in.Status)
	fmt.Fprintf(&b, "Resource:  %s\n", resource)
	if in.Reason != "" {
		fmt.Fprintf(&b, "Reason:    %s\n", in.Reason)
	}
	fmt.Fprintf(&b, "Count:     %d\n", in.Count)
	fmt.Fprintf(&b, "Opened:    %s\n", FormatDate(in.CreatedAt))
	fmt.Fprintf(&b, "Updated:   %s\n", FormatDate(in.UpdatedAt))

	if in.Message != "" {
		b.WriteString("\n" + in.Message + "\n")
	}

	if len(in.Timeline) > 0 {
		b.WriteString("\nTimeline\n")
		for _, entry := range in.Timeline {
			fmt.Fprintf(&b, "  %s  %s\n", entry.Time.Format("Jan 02 15:04:05"), entry.Message)
		}
	}

	return b.String()
}

func renderRecommendationDetail(r api.Recommendation) string {
	var b strings.Builder

	workload := r.Workload.Namespace + "/" + r.Workload.Kind + "/" + r.Workload.Name
	if r.Workload.Container != "" {
		workload += " (container " + r.Workload.Container + ")"
	}

	fmt.Fprintf(&b, "Workload:     %s\n", workload)
	fmt.Fprintf(&b, "Change:       %s: %s -> %s\n", FormatKind(r.Kind), r.Current, r.Recommended)
	fmt.Fprintf(&b, "Savings:      %s/month\n", FormatUSD(r.SavingsMonthlyUSD))
	fmt.Fprintf(&b, "Risk:         %s\n", r.Risk)
	fmt.Fprintf(&b, "Confidence:   %s\n", FormatConfidence(r.Confidence))
	fmt.Fprintf(&b, "Status:       %s\n", r.Status)
	fmt.Fprintf(&b, "Created:      %s\n", FormatDate(r.CreatedAt))

	if r.Rationale != "" {
		b.WriteString("\nRationale\n")
		b.WriteString(r.Rationale + "\n")
	}

	return b.String()
}

func renderReleaseDetail(r api.Release) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Name:         %s\n", r.Name)
	fmt.Fprintf(&b, "Namespace:    %s\n", r.Namespace)
	fmt.Fprintf(&b, "Chart:        %s\n", r.Chart)
	fmt.Fprintf(&b, "Chart ver:    %s\n", r.ChartVersion)
	fmt.Fprintf(&b, "App version:  %s\n", r.AppVersion)
	fmt.Fprintf(&b, "Revision:     %d\n", r.Revision)
	fmt.Fprintf(&b, "Status:       %s\n", r.Status)
	fmt.Fprintf(&b, "Updated:      %s\n", FormatDate(r.UpdatedAt))

	if r.Description != "" {
		b.WriteString("\n" + r.Description + "\n")
	}

	return b.String()
}
