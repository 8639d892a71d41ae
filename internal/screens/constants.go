package screens

import "time"

// Refresh cadence per screen. Values follow how quickly the underlying
// data actually moves: pods and events churn, nodes and releases do not.
const (
	OverviewRefreshInterval     = 15 * time.Second
	NodesRefreshInterval        = 30 * time.Second
	PodsRefreshInterval         = 15 * time.Second
	ReleasesRefreshInterval     = 30 * time.Second
	OptimizationRefreshInterval = 60 * time.Second
	TimelineRefreshInterval     = 15 * time.Second
	IncidentsRefreshInterval    = 15 * time.Second
	SystemRefreshInterval       = time.Second
)

// TimelineWindow is how far back the timeline screen asks the server to
// look.
const TimelineWindow = time.Hour

// OverviewIncidentLimit caps the recent-incidents panel on the overview.
const OverviewIncidentLimit = 5

// MinDynamicColumnWidth is the floor for columns without a fixed width;
// below this a lower-priority column is hidden instead of squeezed.
const MinDynamicColumnWidth = 20
