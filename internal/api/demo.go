package api

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	corev1 "k8s.io/api/core/v1"
)

// DemoClient serves canned data without a server. It backs the --demo
// flag and most tests. Mutations update the in-memory state so the UI
// behaves like it would against a real server.
type DemoClient struct {
	mu              sync.Mutex
	releases        []Release
	history         map[string][]ReleaseRevision
	recommendations []Recommendation
	summary         OptimizationSummary
	incidents       []Incident
	stats           *statsRecorder
}

var _ Client = (*DemoClient)(nil)

// NewDemoClient creates a demo client with a plausible small cluster.
func NewDemoClient() *DemoClient {
	now := time.Now()

	c := &DemoClient{
		stats:   newStatsRecorder(),
		history: make(map[string][]ReleaseRevision),
		releases: []Release{
			{Name: "ingress-nginx", Namespace: "ingress-nginx", Chart: "ingress-nginx",
				ChartVersion: "4.11.2", AppVersion: "1.11.2", Revision: 3,
				Status: ReleaseStatusDeployed, Description: "Upgrade complete",
				UpdatedAt: now.Add(-36 * time.Hour)},
			{Name: "cert-manager", Namespace: "cert-manager", Chart: "cert-manager",
				ChartVersion: "v1.15.3", AppVersion: "v1.15.3", Revision: 1,
				Status: ReleaseStatusDeployed, Description: "Install complete",
				UpdatedAt: now.Add(-20 * 24 * time.Hour)},
			{Name: "prometheus", Namespace: "monitoring", Chart: "kube-prometheus-stack",
				ChartVersion: "62.7.0", AppVersion: "v0.76.1", Revision: 7,
				Status: ReleaseStatusDeployed, Description: "Upgrade complete",
				UpdatedAt: now.Add(-3 * 24 * time.Hour)},
			{Name: "redis", Namespace: "production", Chart: "redis",
				ChartVersion: "19.6.4", AppVersion: "7.2.5", Revision: 2,
				Status: ReleaseStatusFailed, Description: "Upgrade \"redis\" failed: timed out waiting for the condition",
				UpdatedAt: now.Add(-5 * time.Hour)},
			{Name: "api-server", Namespace: "production", Chart: "app-template",
				ChartVersion: "3.2.1", AppVersion: "2.14.0", Revision: 12,
				Status: ReleaseStatusDeployed, Description: "Upgrade complete",
				UpdatedAt: now.Add(-90 * time.Minute)},
		},
		summary: OptimizationSummary{
			EfficiencyScore:     68,
			Grade:               "C",
			MonthlyCostUSD:      4210.50,
			ProjectedSavingsUSD: 934.20,
			AnalyzedWorkloads:   23,
			PendingCount:        4,
			AppliedCount:        2,
		},
		recommendations: []Recommendation{
			{ID: "rec-001", Kind: "cpu_request",
				Workload:    Workload{Namespace: "production", Kind: "Deployment", Name: "api-server", Container: "api"},
				Current:     "2", Recommended: "500m",
				SavingsMonthlyUSD: 412.00, Risk: RiskLow, Confidence: 0.94,
				Status: RecommendationPending,
				Rationale: "P99 CPU usage over the last 14 days is 310m. The current request of 2 cores leaves 84% of the reservation idle.",
				CreatedAt: now.Add(-2 * 24 * time.Hour)},
			{ID: "rec-002", Kind: "memory_request",
				Workload:    Workload{Namespace: "production", Kind: "Deployment", Name: "api-server", Container: "api"},
				Current:     "4Gi", Recommended: "1536Mi",
				SavingsMonthlyUSD: 298.40, Risk: RiskLow, Confidence: 0.91,
				Status: RecommendationPending,
				Rationale: "Peak working set is 1.1Gi. Recommended value keeps 40% headroom over the observed peak.",
				CreatedAt: now.Add(-2 * 24 * time.Hour)},
			{ID: "rec-003", Kind: "replicas",
				Workload:    Workload{Namespace: "staging", Kind: "Deployment", Name: "worker"},
				Current:     "6", Recommended: "3",
				SavingsMonthlyUSD: 186.00, Risk: RiskMedium, Confidence: 0.78,
				Status: RecommendationPending,
				Rationale: "Queue depth stays near zero outside business hours; three replicas absorb the observed peak with 2x margin.",
				CreatedAt: now.Add(-26 * time.Hour)},
			{ID: "rec-004", Kind: "memory_limit",
				Workload:    Workload{Namespace: "monitoring", Kind: "StatefulSet", Name: "prometheus", Container: "prometheus"},
				Current:     "8Gi", Recommended: "6Gi",
				SavingsMonthlyUSD: 37.80, Risk: RiskHigh, Confidence: 0.55,
				Status: RecommendationPending,
				Rationale: "Memory peaked at 5.2Gi during compaction. A lower limit risks OOM kills if series cardinality grows.",
				CreatedAt: now.Add(-8 * time.Hour)},
		},
		incidents: []Incident{
			{ID: "inc-101", Severity: SeverityCritical, Status: IncidentActive,
				Title: "CrashLoopBackOff on production/api-server",
				Kind:  "Pod", Name: "api-server-6b9f8c7d5e-qwert", Namespace: "production",
				Reason: "CrashLoopBackOff", Message: "back-off 5m0s restarting failed container",
				Count:  15,
				Timeline: []IncidentEntry{
					{Time: now.Add(-2 * time.Hour), Message: "Container api exited with code 1"},
					{Time: now.Add(-100 * time.Minute), Message: "Back-off restarting failed container"},
					{Time: now.Add(-10 * time.Minute), Message: "Restart count reached 15"},
				},
				CreatedAt: now.Add(-2 * time.Hour), UpdatedAt: now.Add(-10 * time.Minute)},
			{ID: "inc-102", Severity: SeverityWarning, Status: IncidentActive,
				Title: "Node pressure on node-3",
				Kind:  "Node", Name: "node-3", Namespace: "",
				Reason: "MemoryPressure", Message: "kubelet reports memory pressure",
				Count:  4,
				Timeline: []IncidentEntry{
					{Time: now.Add(-7 * time.Hour), Message: "MemoryPressure condition became True"},
				},
				CreatedAt: now.Add(-7 * time.Hour), UpdatedAt: now.Add(-30 * time.Minute)},
			{ID: "inc-103", Severity: SeverityWarning, Status: IncidentAcknowledged,
				Title: "Failed upgrade of production/redis",
				Kind:  "HelmRelease", Name: "redis", Namespace: "production",
				Reason: "UpgradeFailed", Message: "timed out waiting for the condition",
				Count:  1,
				Timeline: []IncidentEntry{
					{Time: now.Add(-5 * time.Hour), Message: "Helm upgrade started"},
					{Time: now.Add(-290 * time.Minute), Message: "Upgrade failed: timed out waiting for the condition"},
				},
				CreatedAt: now.Add(-5 * time.Hour), UpdatedAt: now.Add(-4 * time.Hour)},
		},
	}

	c.history["production/api-server"] = []ReleaseRevision{
		{Revision: 12, Status: ReleaseStatusDeployed, Chart: "app-template-3.2.1", AppVersion: "2.14.0", Description: "Upgrade complete", UpdatedAt: now.Add(-90 * time.Minute)},
		{Revision: 11, Status: ReleaseStatusSuperseded, Chart: "app-template-3.2.1", AppVersion: "2.13.2", Description: "Upgrade complete", UpdatedAt: now.Add(-4 * 24 * time.Hour)},
		{Revision: 10, Status: ReleaseStatusSuperseded, Chart: "app-template-3.2.0", AppVersion: "2.13.0", Description: "Rollback to 9", UpdatedAt: now.Add(-9 * 24 * time.Hour)},
	}
	c.history["production/redis"] = []ReleaseRevision{
		{Revision: 2, Status: ReleaseStatusFailed, Chart: "redis-19.6.4", AppVersion: "7.2.5", Description: "Upgrade \"redis\" failed: timed out waiting for the condition", UpdatedAt: now.Add(-5 * time.Hour)},
		{Revision: 1, Status: ReleaseStatusDeployed, Chart: "redis-19.5.0", AppVersion: "7.2.4", Description: "Install complete", UpdatedAt: now.Add(-40 * 24 * time.Hour)},
	}

	return c
}

func (c *DemoClient) Server() string {
	return "demo"
}

func (c *DemoClient) Stats() []ServiceStats {
	return c.stats.snapshot()
}

func (c *DemoClient) ClusterHealth(ctx context.Context) (*ClusterHealth, error) {
	defer c.recordCall(serviceCluster)()
	return &ClusterHealth{
		Health: HealthSummary{Score: 82, Grade: "B", Status: "good"},
		Counts: ResourceCounts{Nodes: 3, Pods: 47, Namespaces: 8, Deployments: 14},
		PodStatus: PodStatusCounts{
			Running: 42, Pending: 2, Failed: 1, Succeeded: 2,
		},
		Alerts: AlertSummary{
			Warnings: 3, Critical: 1,
			Top: []Alert{
				{Reason: "CrashLoopBackOff", Resource: "pod/api-server-6b9f8c7d5e-qwert", Namespace: "production"},
				{Reason: "MemoryPressure", Resource: "node/node-3", Namespace: ""},
				{Reason: "FailedScheduling", Resource: "pod/batch-import-28431", Namespace: "jobs"},
			},
		},
		Utilization: &Utilization{
			CPUPercent: 38.5, MemoryPercent: 61.2, CPUCores: 12, MemoryGiB: 48,
		},
	}, nil
}

func (c *DemoClient) Nodes(ctx context.Context) ([]Node, error) {
	defer c.recordCall(serviceCluster)()
	now := time.Now()
	ready := NodeCondition{Type: string(corev1.NodeReady), Status: "True"}
	return []Node{
		{Name: "node-1", Status: "Ready", Roles: []string{"control-plane"},
			KubeletVersion: "v1.31.1", OSImage: "Ubuntu 24.04.1 LTS",
			CPUCapacity: "4", CPUAllocatable: "3800m",
			MemoryCapacity: "16Gi", MemoryAllocatable: "15010Mi",
			CPUPercent: 22.1, MemoryPercent: 48.7,
			PodCount: 14, PodCapacity: 110,
			Conditions: []NodeCondition{ready},
			CreatedAt:  now.Add(-60 * 24 * time.Hour)},
		{Name: "node-2", Status: "Ready", Roles: []string{"worker"},
			KubeletVersion: "v1.31.1", OSImage: "Ubuntu 24.04.1 LTS",
			CPUCapacity: "4", CPUAllocatable: "3800m",
			MemoryCapacity: "16Gi", MemoryAllocatable: "15010Mi",
			CPUPercent: 45.9, MemoryPercent: 58.3,
			PodCount: 19, PodCapacity: 110,
			Conditions: []NodeCondition{ready},
			CreatedAt:  now.Add(-60 * 24 * time.Hour)},
		{Name: "node-3", Status: "Ready", Roles: []string{"worker"},
			KubeletVersion: "v1.31.1", OSImage: "Ubuntu 24.04.1 LTS",
			CPUCapacity: "4", CPUAllocatable: "3800m",
			MemoryCapacity: "16Gi", MemoryAllocatable: "15010Mi",
			CPUPercent: 51.3, MemoryPercent: 87.9,
			PodCount: 14, PodCapacity: 110,
			Conditions: []NodeCondition{
				ready,
				{Type: string(corev1.NodeMemoryPressure), Status: "True", Reason: "KubeletHasInsufficientMemory"},
			},
			CreatedAt: now.Add(-30 * 24 * time.Hour)},
	}, nil
}

func (c *DemoClient) Pods(ctx context.Context, namespace string) ([]Pod, error) {
	defer c.recordCall(serviceCluster)()
	now := time.Now()
	pods := []Pod{
		{Namespace: "production", Name: "api-server-6b9f8c7d5e-qwert", Phase: "CrashLoopBackOff",
			Ready: "0/1", Restarts: 15, Node: "node-3", IP: "10.244.3.7",
			Containers: []Container{{Name: "api", Ready: false, Restarts: 15, State: "waiting"}},
			CreatedAt:  now.Add(-2 * time.Hour)},
		{Namespace: "production", Name: "api-server-6b9f8c7d5e-zxcvb", Phase: string(corev1.PodRunning),
			Ready: "1/1", Restarts: 0, Node: "node-2", IP: "10.244.2.11",
			Containers: []Container{{Name: "api", Ready: true, State: "running"}},
			CreatedAt:  now.Add(-90 * time.Minute)},
		{Namespace: "production", Name: "redis-master-0", Phase: string(corev1.PodRunning),
			Ready: "1/1", Restarts: 1, Node: "node-2", IP: "10.244.2.4",
			Containers: []Container{{Name: "redis", Ready: true, Restarts: 1, State: "running"}},
			CreatedAt:  now.Add(-40 * 24 * time.Hour)},
		{Namespace: "ingress-nginx", Name: "ingress-nginx-controller-7d64f8d9c8-abc12", Phase: string(corev1.PodRunning),
			Ready: "1/1", Restarts: 0, Node: "node-1", IP: "10.244.1.5",
			Containers: []Container{{Name: "controller", Ready: true, State: "running"}},
			CreatedAt:  now.Add(-36 * time.Hour)},
		{Namespace: "monitoring", Name: "prometheus-0", Phase: string(corev1.PodRunning),
			Ready: "2/2", Restarts: 0, Node: "node-2", IP: "10.244.2.9",
			Containers: []Container{
				{Name: "prometheus", Ready: true, State: "running"},
				{Name: "config-reloader", Ready: true, State: "running"},
			},
			CreatedAt: now.Add(-3 * 24 * time.Hour)},
		{Namespace: "jobs", Name: "batch-import-28431", Phase: string(corev1.PodPending),
			Ready: "0/1", Restarts: 0, Node: "", IP: "",
			Containers: []Container{{Name: "import", Ready: false, State: "waiting"}},
			CreatedAt:  now.Add(-25 * time.Minute)},
		{Namespace: "kube-system", Name: "coredns-5d78c9869d-xyz89", Phase: string(corev1.PodRunning),
			Ready: "1/1", Restarts: 0, Node: "node-1", IP: "10.244.1.2",
			Containers: []Container{{Name: "coredns", Ready: true, State: "running"}},
			CreatedAt:  now.Add(-60 * 24 * time.Hour)},
		{Namespace: "staging", Name: "worker-59c8d7b64-hj2kl", Phase: string(corev1.PodRunning),
			Ready: "1/1", Restarts: 2, Node: "node-3", IP: "10.244.3.21",
			Containers: []Container{{Name: "worker", Ready: true, Restarts: 2, State: "running"}},
			CreatedAt:  now.Add(-26 * time.Hour)},
	}

	if namespace == "" {
		return pods, nil
	}
	filtered := pods[:0:0]
	for _, p := range pods {
		if p.Namespace == namespace {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}

func (c *DemoClient) Namespaces(ctx context.Context) ([]string, error) {
	defer c.recordCall(serviceCluster)()
	return []string{"cert-manager", "default", "ingress-nginx", "jobs",
		"kube-system", "monitoring", "production", "staging"}, nil
}

func (c *DemoClient) Releases(ctx context.Context, namespace string) ([]Release, error) {
	defer c.recordCall(serviceHelm)()
	c.mu.Lock()
	defer c.mu.Unlock()

	result := make([]Release, 0, len(c.releases))
	for _, r := range c.releases {
		if namespace == "" || r.Namespace == namespace {
			result = append(result, r)
		}
	}
	return result, nil
}

func (c *DemoClient) ReleaseHistory(ctx context.Context, namespace, name string) ([]ReleaseRevision, error) {
	defer c.recordCall(serviceHelm)()
	c.mu.Lock()
	defer c.mu.Unlock()

	if history, ok := c.history[namespace+"/"+name]; ok {
		return history, nil
	}
	release, idx := c.findRelease(namespace, name)
	if idx < 0 {
		return nil, fmt.Errorf("release %s/%s: %w", namespace, name, ErrNotFound)
	}
	return []ReleaseRevision{{
		Revision: release.Revision, Status: release.Status,
		Chart:       release.Chart + "-" + release.ChartVersion,
		AppVersion:  release.AppVersion,
		Description: release.Description,
		UpdatedAt:   release.UpdatedAt,
	}}, nil
}

func (c *DemoClient) ReleaseValues(ctx context.Context, namespace, name string) (map[string]any, error) {
	defer c.recordCall(serviceHelm)()
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, idx := c.findRelease(namespace, name); idx < 0 {
		return nil, fmt.Errorf("release %s/%s: %w", namespace, name, ErrNotFound)
	}
	return map[string]any{
		"replicaCount": 2,
		"image": map[string]any{
			"repository": "registry.example.com/" + name,
			"tag":        "stable",
			"pullPolicy": "IfNotPresent",
		},
		"resources": map[string]any{
			"requests": map[string]any{"cpu": "250m", "memory": "256Mi"},
		},
	}, nil
}

func (c *DemoClient) InstallRelease(ctx context.Context, req InstallRequest) (*Release, error) {
	defer c.recordCall(serviceHelm)()
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, idx := c.findRelease(req.Namespace, req.ReleaseName); idx >= 0 {
		return nil, fmt.Errorf("release %s/%s already exists: %w", req.Namespace, req.ReleaseName, ErrConflict)
	}

	version := req.Version
	if version == "" {
		version = "1.0.0"
	}
	release := Release{
		Name: req.ReleaseName, Namespace: req.Namespace,
		Chart: chartName(req.ChartRef), ChartVersion: version,
		AppVersion: version, Revision: 1,
		Status: ReleaseStatusDeployed, Description: "Install complete",
		UpdatedAt: time.Now(),
	}
	c.releases = append(c.releases, release)
	return &release, nil
}

func (c *DemoClient) UpgradeRelease(ctx context.Context, namespace, name string, req UpgradeRequest) (*Release, error) {
	defer c.recordCall(serviceHelm)()
	c.mu.Lock()
	defer c.mu.Unlock()

	release, idx := c.findRelease(namespace, name)
	if idx < 0 {
		return nil, fmt.Errorf("release %s/%s: %w", namespace, name, ErrNotFound)
	}

	release.Revision++
	if req.ChartRef != "" {
		release.Chart = chartName(req.ChartRef)
	}
	if req.Version != "" {
		release.ChartVersion = req.Version
	}
	release.Status = ReleaseStatusDeployed
	release.Description = "Upgrade complete"
	release.UpdatedAt = time.Now()
	c.releases[idx] = release
	c.pushRevision(namespace, name, release)
	return &release, nil
}

func (c *DemoClient) RollbackRelease(ctx context.Context, namespace, name string, toRevision int) (*Release, error) {
	defer c.recordCall(serviceHelm)()
	c.mu.Lock()
	defer c.mu.Unlock()

	release, idx := c.findRelease(namespace, name)
	if idx < 0 {
		return nil, fmt.Errorf("release %s/%s: %w", namespace, name, ErrNotFound)
	}

	release.Revision++
	release.Status = ReleaseStatusDeployed
	release.Description = fmt.Sprintf("Rollback to %d", toRevision)
	release.UpdatedAt = time.Now()
	c.releases[idx] = release
	c.pushRevision(namespace, name, release)
	return &release, nil
}

func (c *DemoClient) UninstallRelease(ctx context.Context, namespace, name string) error {
	defer c.recordCall(serviceHelm)()
	c.mu.Lock()
	defer c.mu.Unlock()

	_, idx := c.findRelease(namespace, name)
	if idx < 0 {
		return fmt.Errorf("release %s/%s: %w", namespace, name, ErrNotFound)
	}
	c.releases = append(c.releases[:idx], c.releases[idx+1:]...)
	delete(c.history, namespace+"/"+name)
	return nil
}

func (c *DemoClient) DryRun(ctx context.Context, req DryRunRequest) (*DryRunResult, error) {
	defer c.recordCall(serviceHelm)()

	action := "create"
	if req.Upgrade {
		action = "update"
	}
	manifest := fmt.Sprintf(
		"---\n# Source: %s/templates/deployment.yaml\napiVersion: apps/v1\nkind: Deployment\nmetadata:\n  name: %s\n  namespace: %s\n---\n# Source: %s/templates/service.yaml\napiVersion: v1\nkind: Service\nmetadata:\n  name: %s\n  namespace: %s\n",
		chartName(req.ChartRef), req.ReleaseName, req.Namespace,
		chartName(req.ChartRef), req.ReleaseName, req.Namespace)

	return &DryRunResult{
		Manifest:      manifest,
		Notes:         "Thank you for installing " + chartName(req.ChartRef) + ".",
		ResourceCount: 2,
		Changes: []ResourceChange{
			{Action: action, Kind: "Deployment", Namespace: req.Namespace, Name: req.ReleaseName},
			{Action: action, Kind: "Service", Namespace: req.Namespace, Name: req.ReleaseName},
		},
	}, nil
}

func (c *DemoClient) OptimizationDashboard(ctx context.Context) (*OptimizationDashboard, error) {
	defer c.recordCall(serviceOptimization)()
	c.mu.Lock()
	defer c.mu.Unlock()

	recommendations := make([]Recommendation, len(c.recommendations))
	copy(recommendations, c.recommendations)
	return &OptimizationDashboard{Summary: c.summary, Recommendations: recommendations}, nil
}

func (c *DemoClient) ApplyRecommendation(ctx context.Context, id string) (*Recommendation, error) {
	defer c.recordCall(serviceOptimization)()
	return c.setRecommendationStatus(id, RecommendationApplied)
}

func (c *DemoClient) DismissRecommendation(ctx context.Context, id string) (*Recommendation, error) {
	defer c.recordCall(serviceOptimization)()
	return c.setRecommendationStatus(id, RecommendationDismissed)
}

func (c *DemoClient) Timeline(ctx context.Context, opts TimelineOptions) ([]TimelineEvent, error) {
	defer c.recordCall(serviceTimeline)()
	now := time.Now()
	events := []TimelineEvent{
		{Type: string(corev1.EventTypeWarning), Reason: "BackOff",
			Message: "Back-off restarting failed container api in pod api-server-6b9f8c7d5e-qwert",
			Kind:    "Pod", Name: "api-server-6b9f8c7d5e-qwert", Namespace: "production",
			Source: "kubelet", Count: 15,
			FirstSeen: now.Add(-2 * time.Hour), LastSeen: now.Add(-4 * time.Minute)},
		{Type: string(corev1.EventTypeWarning), Reason: "FailedScheduling",
			Message: "0/3 nodes are available: 3 Insufficient memory",
			Kind:    "Pod", Name: "batch-import-28431", Namespace: "jobs",
			Source: "default-scheduler", Count: 6,
			FirstSeen: now.Add(-25 * time.Minute), LastSeen: now.Add(-2 * time.Minute)},
		{Type: string(corev1.EventTypeNormal), Reason: "Pulled",
			Message: "Container image \"registry.example.com/api-server:2.14.0\" already present on machine",
			Kind:    "Pod", Name: "api-server-6b9f8c7d5e-zxcvb", Namespace: "production",
			Source: "kubelet", Count: 1,
			FirstSeen: now.Add(-90 * time.Minute), LastSeen: now.Add(-90 * time.Minute)},
		{Type: string(corev1.EventTypeNormal), Reason: "ScalingReplicaSet",
			Message: "Scaled up replica set api-server-6b9f8c7d5e to 2",
			Kind:    "Deployment", Name: "api-server", Namespace: "production",
			Source: "deployment-controller", Count: 1,
			FirstSeen: now.Add(-91 * time.Minute), LastSeen: now.Add(-91 * time.Minute)},
		{Type: string(corev1.EventTypeWarning), Reason: "NodeHasInsufficientMemory",
			Message: "Node node-3 status is now: NodeHasInsufficientMemory",
			Kind:    "Node", Name: "node-3", Namespace: "",
			Source: "kubelet", Count: 4,
			FirstSeen: now.Add(-7 * time.Hour), LastSeen: now.Add(-30 * time.Minute)},
		{Type: string(corev1.EventTypeNormal), Reason: "SuccessfulCreate",
			Message: "Created pod: batch-import-28431",
			Kind:    "Job", Name: "batch-import", Namespace: "jobs",
			Source: "job-controller", Count: 1,
			FirstSeen: now.Add(-25 * time.Minute), LastSeen: now.Add(-25 * time.Minute)},
	}

	filtered := events[:0:0]
	for _, e := range events {
		if opts.Type != "" && e.Type != opts.Type {
			continue
		}
		if opts.Namespace != "" && e.Namespace != opts.Namespace {
			continue
		}
		if opts.Since > 0 && time.Since(e.LastSeen) > opts.Since {
			continue
		}
		filtered = append(filtered, e)
	}
	return filtered, nil
}

func (c *DemoClient) Incidents(ctx context.Context, status string) ([]Incident, error) {
	defer c.recordCall(serviceIncidents)()
	c.mu.Lock()
	defer c.mu.Unlock()

	result := make([]Incident, 0, len(c.incidents))
	for _, incident := range c.incidents {
		if status == "" || incident.Status == status {
			result = append(result, incident)
		}
	}
	return result, nil
}

func (c *DemoClient) AcknowledgeIncident(ctx context.Context, id string) (*Incident, error) {
	defer c.recordCall(serviceIncidents)()
	return c.setIncidentStatus(id, IncidentAcknowledged, "Acknowledged by operator")
}

func (c *DemoClient) ResolveIncident(ctx context.Context, id string) (*Incident, error) {
	defer c.recordCall(serviceIncidents)()
	return c.setIncidentStatus(id, IncidentResolved, "Resolved by operator")
}

// StreamLogs produces a synthetic log stream: a short replay burst, then
// periodic lines while following.
func (c *DemoClient) StreamLogs(ctx context.Context, target LogTarget) (*LogStream, error) {
	defer c.recordCall(serviceLogs)()

	streamCtx, cancel := context.WithCancel(ctx)
	stream := newLogStream(cancel)

	container := target.Container
	if container == "" {
		container = "app"
	}

	lines := []string{
		"level=info msg=\"request completed\" method=GET path=/healthz status=200 duration=1.2ms",
		"level=info msg=\"request completed\" method=POST path=/api/orders status=201 duration=18.4ms",
		"level=warn msg=\"slow query\" table=orders duration=412ms",
		"level=info msg=\"cache refresh\" keys=1842 duration=92ms",
		"level=error msg=\"upstream timeout\" upstream=payments attempt=1",
		"level=info msg=\"retry succeeded\" upstream=payments attempt=2",
	}

	go func() {
		defer close(stream.frames)
		defer cancel()

		emit := func(i int) bool {
			frame := LogFrame{
				Type:      FrameLog,
				Line:      lines[i%len(lines)],
				Container: container,
				Timestamp: time.Now(),
			}
			select {
			case stream.frames <- frame:
				return true
			case <-streamCtx.Done():
				return false
			}
		}

		tail := target.Tail
		if tail <= 0 {
			tail = DefaultLogTail
		}
		if tail > len(lines)*4 {
			tail = len(lines) * 4
		}
		for i := 0; i < tail; i++ {
			if !emit(i) {
				return
			}
		}

		if !target.Follow {
			select {
			case stream.frames <- LogFrame{Type: FrameEOF}:
			case <-streamCtx.Done():
			}
			return
		}

		ticker := time.NewTicker(700 * time.Millisecond)
		defer ticker.Stop()
		for i := tail; ; i++ {
			select {
			case <-ticker.C:
				if !emit(i) {
					return
				}
			case <-streamCtx.Done():
				return
			}
		}
	}()

	return stream, nil
}

func (c *DemoClient) recordCall(service string) func() {
	start := time.Now()
	return func() {
		c.stats.record(service, time.Since(start), nil)
	}
}

// findRelease returns a copy and its index, or index -1. Caller holds mu.
func (c *DemoClient) findRelease(namespace, name string) (Release, int) {
	for i, r := range c.releases {
		if r.Namespace == namespace && r.Name == name {
			return r, i
		}
	}
	return Release{}, -1
}

// pushRevision prepends the release's current state to its history.
// Caller holds mu.
func (c *DemoClient) pushRevision(namespace, name string, release Release) {
	key := namespace + "/" + name
	revision := ReleaseRevision{
		Revision: release.Revision, Status: release.Status,
		Chart:       release.Chart + "-" + release.ChartVersion,
		AppVersion:  release.AppVersion,
		Description: release.Description,
		UpdatedAt:   release.UpdatedAt,
	}
	c.history[key] = append([]ReleaseRevision{revision}, c.history[key]...)
}

func (c *DemoClient) setRecommendationStatus(id, status string) (*Recommendation, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.recommendations {
		if c.recommendations[i].ID != id {
			continue
		}
		if c.recommendations[i].Status == RecommendationPending {
			c.summary.PendingCount--
			if status == RecommendationApplied {
				c.summary.AppliedCount++
				c.summary.ProjectedSavingsUSD -= c.recommendations[i].SavingsMonthlyUSD
				if c.summary.ProjectedSavingsUSD < 0 {
					c.summary.ProjectedSavingsUSD = 0
				}
			}
		}
		c.recommendations[i].Status = status
		rec := c.recommendations[i]
		return &rec, nil
	}
	return nil, fmt.Errorf("recommendation %s: %w", id, ErrNotFound)
}

func (c *DemoClient) setIncidentStatus(id, status, note string) (*Incident, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.incidents {
		if c.incidents[i].ID != id {
			continue
		}
		c.incidents[i].Status = status
		c.incidents[i].UpdatedAt = time.Now()
		c.incidents[i].Timeline = append(c.incidents[i].Timeline,
			IncidentEntry{Time: time.Now(), Message: note})
		incident := c.incidents[i]
		return &incident, nil
	}
	return nil, fmt.Errorf("incident %s: %w", id, ErrNotFound)
}

// chartName strips the repository prefix from a chart reference
// ("bitnami/redis" -> "redis").
func chartName(ref string) string {
	if i := strings.LastIndex(ref, "/"); i >= 0 {
		return ref[i+1:]
	}
	return ref
}
