package api

import (
	"sort"
	"sync"
	"time"
)

// Service labels used for per-service call statistics.
const (
	serviceCluster      = "cluster"
	serviceHelm         = "helm"
	serviceOptimization = "optimization"
	serviceTimeline     = "timeline"
	serviceIncidents    = "incidents"
	serviceLogs         = "logs"
)

// ServiceStats aggregates calls made to one API service group. Shown on
// the system screen.
type ServiceStats struct {
	Service     string
	Requests    int64
	Errors      int64
	LastError   string
	LastLatency time.Duration
	AvgLatency  time.Duration
	LastCall    time.Time
}

// statsRecorder accumulates per-service call statistics. Safe for
// concurrent use; every request goroutine records into it.
type statsRecorder struct {
	mu       sync.RWMutex
	services map[string]*serviceRecord
}

type serviceRecord struct {
	requests    int64
	errors      int64
	lastError   string
	lastLatency time.Duration
	totalTime   time.Duration
	lastCall    time.Time
}

func newStatsRecorder() *statsRecorder {
	return &statsRecorder{services: make(map[string]*serviceRecord)}
}

func (r *statsRecorder) record(service string, latency time.Duration, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.services[service]
	if !ok {
		rec = &serviceRecord{}
		r.services[service] = rec
	}

	rec.requests++
	rec.lastLatency = latency
	rec.totalTime += latency
	rec.lastCall = time.Now()
	if err != nil {
		rec.errors++
		rec.lastError = err.Error()
	}
}

// snapshot returns stats sorted by service name for stable display.
func (r *statsRecorder) snapshot() []ServiceStats {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]ServiceStats, 0, len(r.services))
	for name, rec := range r.services {
		avg := time.Duration(0)
		if rec.requests > 0 {
			avg = rec.totalTime / time.Duration(rec.requests)
		}
		result = append(result, ServiceStats{
			Service:     name,
			Requests:    rec.requests,
			Errors:      rec.errors,
			LastError:   rec.lastError,
			LastLatency: rec.lastLatency,
			AvgLatency:  avg,
			LastCall:    rec.lastCall,
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Service < result[j].Service
	})
	return result
}
