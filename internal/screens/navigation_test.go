package screens

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"

	"github.com/quarterdeckhq/quarterdeck/internal/api"
	"github.com/quarterdeckhq/quarterdeck/internal/types"
	"github.com/quarterdeckhq/quarterdeck/internal/ui"
)

// detailScreen builds a screen holding the given rows, cursor on the
// first one.
func detailScreen(items []any) *ConfigScreen {
	screen := NewConfigScreen(fixturePodsConfig(), api.NewDemoClient(), ui.GetTheme("charm"))
	screen.setItems(items)
	return screen
}

// openDetail runs a detail handler and unwraps the full-screen message.
func openDetail(t *testing.T, handler NavigationFunc, screen *ConfigScreen) types.ShowFullScreenMsg {
	t.Helper()

	cmd := handler(screen)
	require.NotNil(t, cmd)

	msg, ok := cmd().(types.ShowFullScreenMsg)
	require.True(t, ok, "expected ShowFullScreenMsg")
	return msg
}

func TestNodeDetail(t *testing.T) {
	node := api.Node{
		Name:           "node-1",
		Status:         "Ready",
		Roles:          []string{"control-plane"},
		KubeletVersion: "v1.31.2",
		CPUCapacity:    "4",
		CPUAllocatable: "4",
		MemoryCapacity: "7951Mi",
		PodCount:       24,
		PodCapacity:    110,
		CPUPercent:     41,
		MemoryPercent:  63,
		Conditions: []api.NodeCondition{
			{Type: "Ready", Status: "True"},
			{Type: "MemoryPressure", Status: "True", Reason: "KubeletHasInsufficientMemory"},
		},
		CreatedAt: time.Now().Add(-30 * 24 * time.Hour),
	}

	msg := openDetail(t, nodeDetail, detailScreen([]any{node}))

	assert.Equal(t, "node-1", msg.ResourceName)
	assert.Contains(t, msg.Content, "Status:    Ready")
	assert.Contains(t, msg.Content, "control-plane")
	assert.Contains(t, msg.Content, "Capacity / Allocatable")
	assert.Contains(t, msg.Content, "24 / 110")
	assert.Contains(t, msg.Content, "41%")

	// Only the abnormal condition gets the marker.
	assert.Contains(t, msg.Content, "KubeletHasInsufficientMemory  <- attention")
	assert.Equal(t, 1, strings.Count(msg.Content, "<- attention"))
}

func TestNodeDetail_Cordoned(t *testing.T) {
	node := api.Node{Name: "node-2", Status: "Ready", Unschedulable: true}

	msg := openDetail(t, nodeDetail, detailScreen([]any{node}))
	assert.Contains(t, msg.Content, "Ready (cordoned)")
}

func TestNodeDetail_WrongItemType(t *testing.T) {
	screen := detailScreen([]any{api.Pod{Name: "not-a-node"}})
	assert.Nil(t, nodeDetail(screen))
}

func TestPodDetail(t *testing.T) {
	pod := api.Pod{
		Namespace: "production",
		Name:      "api-server-0",
		Phase:     "Running",
		Ready:     "2/2",
		Restarts:  1,
		Node:      "node-1",
		IP:        "10.244.1.17",
		Containers: []api.Container{
			{Name: "api", Ready: true, State: "running"},
			{Name: "sidecar", Ready: false, Restarts: 4, State: "waiting: CrashLoopBackOff"},
		},
		CreatedAt: time.Now().Add(-3 * time.Hour),
	}

	msg := openDetail(t, podDetail, detailScreen([]any{pod}))

	assert.Equal(t, "production/api-server-0", msg.ResourceName)
	assert.Contains(t, msg.Content, "Phase:      Running")
	assert.Contains(t, msg.Content, "Containers")
	assert.Contains(t, msg.Content, "sidecar")
	assert.Contains(t, msg.Content, "CrashLoopBackOff")
}

func TestPodDetail_PendingNote(t *testing.T) {
	pod := api.Pod{Namespace: "default", Name: "stuck", Phase: string(corev1.PodPending)}

	msg := openDetail(t, podDetail, detailScreen([]any{pod}))
	assert.Contains(t, msg.Content, "has not been scheduled")
}

func TestEventDetail(t *testing.T) {
	event := api.TimelineEvent{
		Type:      corev1.EventTypeWarning,
		Reason:    "BackOff",
		Message:   "Back-off restarting failed container",
		Kind:      "Pod",
		Name:      "api-server-0",
		Namespace: "production",
		Count:     12,
		FirstSeen: time.Now().Add(-time.Hour),
		LastSeen:  time.Now().Add(-2 * time.Minute),
	}

	msg := openDetail(t, eventDetail, detailScreen([]any{event}))

	assert.Equal(t, "Pod/api-server-0", msg.ResourceName)
	assert.Contains(t, msg.Content, "Warning  <- attention")
	assert.Contains(t, msg.Content, "production/Pod/api-server-0")
	assert.Contains(t, msg.Content, "Count:       12")
	assert.Contains(t, msg.Content, "Back-off restarting failed container")
}

func TestEventDetail_NormalHasNoMarker(t *testing.T) {
	event := api.TimelineEvent{Type: corev1.EventTypeNormal, Kind: "Pod", Name: "ok"}

	msg := openDetail(t, eventDetail, detailScreen([]any{event}))
	assert.NotContains(t, msg.Content, "<- attention")
}

func TestIncidentDetail(t *testing.T) {
	incident := api.Incident{
		ID:        "inc-7",
		Severity:  api.SeverityCritical,
		Status:    api.IncidentActive,
		Title:     "CrashLoopBackOff on api-server",
		Kind:      "Pod",
		Name:      "api-server-0",
		Namespace: "production",
		Reason:    "CrashLoopBackOff",
		Count:     9,
		Timeline: []api.IncidentEntry{
			{Time: time.Date(2026, 8, 20, 9, 15, 0, 0, time.UTC), Message: "first restart observed"},
			{Time: time.Date(2026, 8, 20, 9, 40, 0, 0, time.UTC), Message: "restart count passed 5"},
		},
	}

	msg := openDetail(t, incidentDetail, detailScreen([]any{incident}))

	assert.Equal(t, "production/api-server-0", msg.ResourceName)
	assert.Contains(t, msg.Content, "Severity:  critical")
	assert.Contains(t, msg.Content, "production/Pod/api-server-0")
	assert.Contains(t, msg.Content, "Timeline")
	assert.Contains(t, msg.Content, "Aug 20 09:15:00  first restart observed")
}

func TestIncidentDetail_ClusterScoped(t *testing.T) {
	incident := api.Incident{Title: "Node down", Kind: "Node", Name: "node-3"}

	msg := openDetail(t, incidentDetail, detailScreen([]any{incident}))
	assert.Equal(t, "node-3", msg.ResourceName)
	assert.Contains(t, msg.Content, "Resource:  Node/node-3")
}

func TestRecommendationDetail(t *testing.T) {
	rec := api.Recommendation{
		ID:   "rec-3",
		Kind: "memory_request",
		Workload: api.Workload{
			Namespace: "production",
			Kind:      "Deployment",
			Name:      "api-server",
			Container: "api",
		},
		Current:           "2Gi",
		Recommended:       "1Gi",
		SavingsMonthlyUSD: 34.2,
		Risk:              api.RiskLow,
		Confidence:        0.92,
		Status:            api.RecommendationPending,
		Rationale:         "P99 usage stayed under 800Mi for 30 days.",
	}

	msg := openDetail(t, recommendationDetail, detailScreen([]any{rec}))

	assert.Equal(t, "production/api-server", msg.ResourceName)
	assert.Contains(t, msg.Content, "production/Deployment/api-server (container api)")
	assert.Contains(t, msg.Content, "memory request: 2Gi -> 1Gi")
	assert.Contains(t, msg.Content, "$34.20/month")
	assert.Contains(t, msg.Content, "92%")
	assert.Contains(t, msg.Content, "Rationale")
	assert.Contains(t, msg.Content, "P99 usage stayed under 800Mi")
}

func TestReleaseDetail(t *testing.T) {
	rel := api.Release{
		Name:         "api-server",
		Namespace:    "production",
		Chart:        "api-server",
		ChartVersion: "2.4.1",
		AppVersion:   "1.19.0",
		Revision:     7,
		Status:       api.ReleaseStatusDeployed,
		Description:  "Upgrade complete",
	}

	msg := openDetail(t, releaseDetail, detailScreen([]any{rel}))

	assert.Equal(t, "production/api-server", msg.ResourceName)
	assert.Contains(t, msg.Content, "Revision:     7")
	assert.Contains(t, msg.Content, "Status:       deployed")
	assert.Contains(t, msg.Content, "Upgrade complete")
}

func TestConditionAbnormal(t *testing.T) {
	tests := []struct {
		name string
		cond api.NodeCondition
		want bool
	}{
		{"ready true is fine", api.NodeCondition{Type: "Ready", Status: "True"}, false},
		{"ready false is bad", api.NodeCondition{Type: "Ready", Status: "False"}, true},
		{"ready unknown is bad", api.NodeCondition{Type: "Ready", Status: "Unknown"}, true},
		{"pressure false is fine", api.NodeCondition{Type: "MemoryPressure", Status: "False"}, false},
		{"pressure true is bad", api.NodeCondition{Type: "DiskPressure", Status: "True"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, conditionAbnormal(tt.cond))
		})
	}
}

func TestSwitchTo(t *testing.T) {
	fc := &types.FilterContext{Field: "namespace", Value: "production"}

	msg, ok := switchTo("pods", fc)().(types.ScreenSwitchMsg)
	require.True(t, ok)
	assert.Equal(t, "pods", msg.ScreenID)
	assert.Equal(t, fc, msg.FilterContext)
	assert.False(t, msg.IsBackNav)
}
