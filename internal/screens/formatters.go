package screens

import (
	"fmt"
	"strings"
	"time"

	"k8s.io/apimachinery/pkg/api/resource"
)

// Column formatters return plain text only. Cell-level coloring is
// disabled due to bubbles table ANSI truncation bugs.
// TODO: Use row-level styling instead for status indication.

// FormatAge renders a timestamp as a kubectl-style age ("4d", "32m").
func FormatAge(val any) string {
	t, ok := val.(time.Time)
	if !ok {
		return fmt.Sprint(val)
	}
	if t.IsZero() {
		return "<none>"
	}
	return FormatDuration(time.Since(t))
}

// FormatPercent renders a float percentage as "63%". Negative values
// mean the server had no metrics for the resource.
func FormatPercent(val any) string {
	f, ok := val.(float64)
	if !ok {
		return fmt.Sprint(val)
	}
	if f < 0 {
		return "-"
	}
	return fmt.Sprintf("%.0f%%", f)
}

// FormatUSD renders a dollar amount, keeping cents only under $100 so
// the savings column stays narrow.
func FormatUSD(val any) string {
	f, ok := val.(float64)
	if !ok {
		return fmt.Sprint(val)
	}
	if f >= 100 {
		return fmt.Sprintf("$%.0f", f)
	}
	return fmt.Sprintf("$%.2f", f)
}

// FormatConfidence renders a 0..1 confidence as a percentage.
func FormatConfidence(val any) string {
	f, ok := val.(float64)
	if !ok {
		return fmt.Sprint(val)
	}
	return fmt.Sprintf("%.0f%%", f*100)
}

// FormatKind renders analyzer kinds like "cpu_request" as "cpu request".
func FormatKind(val any) string {
	return strings.ReplaceAll(fmt.Sprint(val), "_", " ")
}

// FormatCPUQuantity renders a Kubernetes CPU quantity string ("4",
// "500m") as a core count.
func FormatCPUQuantity(val any) string {
	s := fmt.Sprint(val)
	q, err := resource.ParseQuantity(s)
	if err != nil {
		return s
	}
	cores := float64(q.MilliValue()) / 1000
	if cores == float64(int64(cores)) {
		return fmt.Sprintf("%d", int64(cores))
	}
	return fmt.Sprintf("%.1f", cores)
}

// FormatMemoryQuantity renders a Kubernetes memory quantity string
// ("7951Mi") in GiB, falling back to the raw string when it does not
// parse.
func FormatMemoryQuantity(val any) string {
	s := fmt.Sprint(val)
	q, err := resource.ParseQuantity(s)
	if err != nil {
		return s
	}
	gib := float64(q.Value()) / (1 << 30)
	if gib >= 10 {
		return fmt.Sprintf("%.0fGi", gib)
	}
	return fmt.Sprintf("%.1fGi", gib)
}

// FormatDuration formats a time.Duration as a compact human string.
func FormatDuration(val any) string {
	d, ok := val.(time.Duration)
	if !ok {
		return fmt.Sprint(val)
	}

	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm", int(d.Minutes()))
	}
	if d < 24*time.Hour {
		return fmt.Sprintf("%dh", int(d.Hours()))
	}
	return fmt.Sprintf("%dd", int(d.Hours()/24))
}

// FormatDate formats a timestamp as a relative "4d ago". Accepts
// time.Time or an RFC3339 string.
func FormatDate(val any) string {
	switch v := val.(type) {
	case string:
		if v == "" {
			return "<none>"
		}
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return v
		}
		return FormatDuration(time.Since(t)) + " ago"
	case time.Time:
		if v.IsZero() {
			return "<none>"
		}
		return FormatDuration(time.Since(v)) + " ago"
	default:
		return fmt.Sprint(val)
	}
}
