package screens

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected string
	}{
		{"30 seconds", 30 * time.Second, "30s"},
		{"5 minutes", 5 * time.Minute, "5m"},
		{"2 hours", 2 * time.Hour, "2h"},
		{"3 days", 72 * time.Hour, "3d"},
		{"90 minutes", 90 * time.Minute, "1h"},
		{"non-duration", "not a duration", "not a duration"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatDuration(tt.input))
		})
	}
}

func TestFormatAge(t *testing.T) {
	assert.Equal(t, "3d", FormatAge(time.Now().Add(-72*time.Hour)))
	assert.Equal(t, "5m", FormatAge(time.Now().Add(-5*time.Minute)))
	assert.Equal(t, "<none>", FormatAge(time.Time{}))
	assert.Equal(t, "n/a", FormatAge("n/a"))
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "63%", FormatPercent(63.4))
	assert.Equal(t, "0%", FormatPercent(0.0))

	// Negative means the server had no metrics.
	assert.Equal(t, "-", FormatPercent(-1.0))
	assert.Equal(t, "oops", FormatPercent("oops"))
}

func TestFormatUSD(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected string
	}{
		{"whole dollars above 100", 240.0, "$240"},
		{"cents below 100", 12.5, "$12.50"},
		{"boundary", 100.0, "$100"},
		{"just under boundary", 99.99, "$99.99"},
		{"non-float", "free", "free"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatUSD(tt.input))
		})
	}
}

func TestFormatConfidence(t *testing.T) {
	assert.Equal(t, "87%", FormatConfidence(0.87))
	assert.Equal(t, "100%", FormatConfidence(1.0))
	assert.Equal(t, "?", FormatConfidence("?"))
}

func TestFormatKind(t *testing.T) {
	assert.Equal(t, "cpu request", FormatKind("cpu_request"))
	assert.Equal(t, "memory limit", FormatKind("memory_limit"))
	assert.Equal(t, "replicas", FormatKind("replicas"))
}

func TestFormatCPUQuantity(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected string
	}{
		{"whole cores", "4", "4"},
		{"millicores", "500m", "0.5"},
		{"mixed", "1500m", "1.5"},
		{"unparseable", "lots", "lots"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatCPUQuantity(tt.input))
		})
	}
}

func TestFormatMemoryQuantity(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected string
	}{
		{"node sized", "7951Mi", "7.8Gi"},
		{"large", "16Gi", "16Gi"},
		{"small", "512Mi", "0.5Gi"},
		{"unparseable", "plenty", "plenty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatMemoryQuantity(tt.input))
		})
	}
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "2d ago", FormatDate(time.Now().Add(-48*time.Hour)))
	assert.Equal(t, "2h ago", FormatDate(time.Now().Add(-2*time.Hour).Format(time.RFC3339)))
	assert.Equal(t, "<none>", FormatDate(""))
	assert.Equal(t, "<none>", FormatDate(time.Time{}))
	assert.Equal(t, "yesterday", FormatDate("yesterday"))
	assert.Equal(t, "42", FormatDate(42))
}
