package api

import (
	"time"
)

// Release status values reported by the server (Helm release lifecycle).
const (
	ReleaseStatusDeployed       = "deployed"
	ReleaseStatusFailed         = "failed"
	ReleaseStatusPendingInstall = "pending-install"
	ReleaseStatusPendingUpgrade = "pending-upgrade"
	ReleaseStatusSuperseded     = "superseded"
	ReleaseStatusUninstalling   = "uninstalling"
	ReleaseStatusUnknown        = "unknown"
)

// Recommendation status values.
const (
	RecommendationPending   = "pending"
	RecommendationApplied   = "applied"
	RecommendationDismissed = "dismissed"
)

// Recommendation risk levels, lowest to highest.
const (
	RiskNone   = "NONE"
	RiskLow    = "LOW"
	RiskMedium = "MEDIUM"
	RiskHigh   = "HIGH"
)

// Incident severity values.
const (
	SeverityCritical = "critical"
	SeverityWarning  = "warning"
	SeverityInfo     = "info"
)

// Incident status values.
const (
	IncidentActive       = "active"
	IncidentAcknowledged = "acknowledged"
	IncidentResolved     = "resolved"
)

// ClusterHealth is the server-computed cluster summary shown on the
// overview screen. Everything here is derived server-side; the client
// only renders it.
type ClusterHealth struct {
	Health      HealthSummary   `json:"health"`
	Counts      ResourceCounts  `json:"counts"`
	PodStatus   PodStatusCounts `json:"pod_status"`
	Alerts      AlertSummary    `json:"alerts"`
	Utilization *Utilization    `json:"utilization,omitempty"`
}

// HealthSummary carries the 0-100 score, letter grade and status word.
type HealthSummary struct {
	Score  int    `json:"score"`
	Grade  string `json:"grade"`
	Status string `json:"status"`
}

type ResourceCounts struct {
	Nodes       int `json:"nodes"`
	Pods        int `json:"pods"`
	Namespaces  int `json:"namespaces"`
	Deployments int `json:"deployments"`
}

type PodStatusCounts struct {
	Running   int `json:"running"`
	Pending   int `json:"pending"`
	Failed    int `json:"failed"`
	Succeeded int `json:"succeeded"`
}

// AlertSummary carries warning/critical counts plus the top offenders.
type AlertSummary struct {
	Warnings int     `json:"warnings"`
	Critical int     `json:"critical"`
	Top      []Alert `json:"top_3"`
}

type Alert struct {
	Reason    string `json:"reason"`
	Resource  string `json:"resource"`
	Namespace string `json:"namespace"`
}

type Utilization struct {
	CPUPercent    float64 `json:"cpu_percent"`
	MemoryPercent float64 `json:"memory_percent"`
	CPUCores      float64 `json:"cpu_cores"`
	MemoryGiB     float64 `json:"memory_gib"`
}

// Node describes one cluster node. Capacity fields are Kubernetes
// quantity strings ("4", "7951Mi") and are parsed client-side only for
// display.
type Node struct {
	Name              string          `json:"name"`
	Status            string          `json:"status"`
	Roles             []string        `json:"roles"`
	KubeletVersion    string          `json:"kubelet_version"`
	OSImage           string          `json:"os_image"`
	CPUCapacity       string          `json:"cpu_capacity"`
	CPUAllocatable    string          `json:"cpu_allocatable"`
	MemoryCapacity    string          `json:"memory_capacity"`
	MemoryAllocatable string          `json:"memory_allocatable"`
	CPUPercent        float64         `json:"cpu_percent"`
	MemoryPercent     float64         `json:"memory_percent"`
	PodCount          int             `json:"pod_count"`
	PodCapacity       int             `json:"pod_capacity"`
	Conditions        []NodeCondition `json:"conditions,omitempty"`
	Unschedulable     bool            `json:"unschedulable"`
	CreatedAt         time.Time       `json:"created_at"`
}

type NodeCondition struct {
	Type   string `json:"type"`
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}

type Pod struct {
	Namespace  string      `json:"namespace"`
	Name       string      `json:"name"`
	Phase      string      `json:"phase"`
	Ready      string      `json:"ready"`
	Restarts   int         `json:"restarts"`
	Node       string      `json:"node"`
	IP         string      `json:"ip"`
	Containers []Container `json:"containers,omitempty"`
	CreatedAt  time.Time   `json:"created_at"`
}

type Container struct {
	Name     string `json:"name"`
	Ready    bool   `json:"ready"`
	Restarts int    `json:"restarts"`
	State    string `json:"state"`
}

// Release is one Helm release as the server reports it.
type Release struct {
	Name         string    `json:"name"`
	Namespace    string    `json:"namespace"`
	Chart        string    `json:"chart"`
	ChartVersion string    `json:"chart_version"`
	AppVersion   string    `json:"app_version"`
	Revision     int       `json:"revision"`
	Status       string    `json:"status"`
	Description  string    `json:"description,omitempty"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ReleaseRevision is one entry of a release's history.
type ReleaseRevision struct {
	Revision    int       `json:"revision"`
	Status      string    `json:"status"`
	Chart       string    `json:"chart"`
	AppVersion  string    `json:"app_version"`
	Description string    `json:"description,omitempty"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// InstallRequest asks the server to install a chart as a new release.
type InstallRequest struct {
	ReleaseName     string         `json:"release_name"`
	Namespace       string         `json:"namespace"`
	ChartRef        string         `json:"chart_ref"`
	Version         string         `json:"version,omitempty"`
	Values          map[string]any `json:"values,omitempty"`
	CreateNamespace bool           `json:"create_namespace,omitempty"`
	Wait            bool           `json:"wait,omitempty"`
	Atomic          bool           `json:"atomic,omitempty"`
}

// UpgradeRequest asks the server to upgrade an existing release.
type UpgradeRequest struct {
	ChartRef    string         `json:"chart_ref"`
	Version     string         `json:"version,omitempty"`
	Values      map[string]any `json:"values,omitempty"`
	ReuseValues bool           `json:"reuse_values,omitempty"`
	Wait        bool           `json:"wait,omitempty"`
	Atomic      bool           `json:"atomic,omitempty"`
}

type RollbackRequest struct {
	ToRevision int  `json:"to_revision"`
	Wait       bool `json:"wait,omitempty"`
}

// DryRunRequest previews an install or upgrade without applying it.
type DryRunRequest struct {
	ReleaseName string         `json:"release_name"`
	Namespace   string         `json:"namespace"`
	ChartRef    string         `json:"chart_ref"`
	Version     string         `json:"version,omitempty"`
	Values      map[string]any `json:"values,omitempty"`
	Upgrade     bool           `json:"upgrade,omitempty"`
}

// DryRunResult is the rendered manifest plus the per-resource change set.
type DryRunResult struct {
	Manifest      string           `json:"manifest"`
	Notes         string           `json:"notes,omitempty"`
	ResourceCount int              `json:"resource_count"`
	Changes       []ResourceChange `json:"changes,omitempty"`
}

type ResourceChange struct {
	Action    string `json:"action"` // create, update, delete, unchanged
	Kind      string `json:"kind"`
	Namespace string `json:"namespace,omitempty"`
	Name      string `json:"name"`
}

// OptimizationDashboard bundles the cost summary with the current
// recommendation list, exactly as computed by the server's analyzer.
type OptimizationDashboard struct {
	Summary         OptimizationSummary `json:"summary"`
	Recommendations []Recommendation    `json:"recommendations"`
}

type OptimizationSummary struct {
	EfficiencyScore     int     `json:"efficiency_score"`
	Grade               string  `json:"grade"`
	MonthlyCostUSD      float64 `json:"monthly_cost_usd"`
	ProjectedSavingsUSD float64 `json:"projected_savings_usd"`
	AnalyzedWorkloads   int     `json:"analyzed_workloads"`
	PendingCount        int     `json:"pending_count"`
	AppliedCount        int     `json:"applied_count"`
}

// Recommendation is one rightsizing suggestion. Rationale is free text
// produced by the server's analysis and shown verbatim.
type Recommendation struct {
	ID                string    `json:"id"`
	Kind              string    `json:"kind"` // cpu_request, memory_request, cpu_limit, memory_limit, replicas
	Workload          Workload  `json:"workload"`
	Current           string    `json:"current"`
	Recommended       string    `json:"recommended"`
	SavingsMonthlyUSD float64   `json:"savings_monthly_usd"`
	Risk              string    `json:"risk"`
	Confidence        float64   `json:"confidence"`
	Status            string    `json:"status"`
	Rationale         string    `json:"rationale,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

type Workload struct {
	Namespace string `json:"namespace"`
	Kind      string `json:"kind"`
	Name      string `json:"name"`
	Container string `json:"container,omitempty"`
}

// Incident is a server-tracked problem on the cluster. Timeline entries
// arrive newest-last.
type Incident struct {
	ID        string          `json:"id"`
	Severity  string          `json:"severity"`
	Status    string          `json:"status"`
	Title     string          `json:"title"`
	Kind      string          `json:"kind"`
	Name      string          `json:"name"`
	Namespace string          `json:"namespace"`
	Reason    string          `json:"reason,omitempty"`
	Message   string          `json:"message,omitempty"`
	Count     int             `json:"count"`
	Timeline  []IncidentEntry `json:"timeline,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

type IncidentEntry struct {
	Time    time.Time `json:"time"`
	Message string    `json:"message"`
}

// TimelineEvent is one cluster event on the timeline screen. Type is
// the Kubernetes event type vocabulary (Normal, Warning).
type TimelineEvent struct {
	Type      string    `json:"type"`
	Reason    string    `json:"reason"`
	Message   string    `json:"message"`
	Kind      string    `json:"kind"`
	Name      string    `json:"name"`
	Namespace string    `json:"namespace"`
	Source    string    `json:"source,omitempty"`
	Count     int       `json:"count"`
	FirstSeen time.Time `json:"first_seen"`
	LastSeen  time.Time `json:"last_seen"`
}

// TimelineOptions narrows the timeline query server-side.
type TimelineOptions struct {
	Since     time.Duration // zero means server default
	Type      string        // Normal, Warning or empty for all
	Namespace string
}
