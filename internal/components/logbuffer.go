package components

import (
	"strings"
	"sync"
)

// LogBuffer retains the most recent log lines of a stream. Appends come from
// the WebSocket read loop while the screen reads snapshots, so access is
// guarded by a mutex.
type LogBuffer struct {
	mu    sync.RWMutex
	lines []string
	total int
}

// NewLogBuffer creates an empty buffer capped at MaxLogLines.
func NewLogBuffer() *LogBuffer {
	return &LogBuffer{
		lines: make([]string, 0, 256),
	}
}

// Append adds a line, discarding the oldest once the cap is reached
// (bounded slice pattern).
func (b *LogBuffer) Append(line string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.lines = append(b.lines, line)
	b.total++

	if len(b.lines) > MaxLogLines {
		b.lines = b.lines[len(b.lines)-MaxLogLines:]
	}
}

// Lines returns a snapshot of the retained lines, oldest first.
func (b *LogBuffer) Lines() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	result := make([]string, len(b.lines))
	copy(result, b.lines)
	return result
}

// Matching returns the retained lines containing filter, case-insensitive.
// An empty filter returns everything.
func (b *LogBuffer) Matching(filter string) []string {
	if filter == "" {
		return b.Lines()
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	needle := strings.ToLower(filter)
	result := make([]string, 0, len(b.lines))
	for _, line := range b.lines {
		if strings.Contains(strings.ToLower(line), needle) {
			result = append(result, line)
		}
	}
	return result
}

// Len returns the number of retained lines.
func (b *LogBuffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.lines)
}

// Total returns the number of lines ever appended, including discarded ones.
func (b *LogBuffer) Total() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.total
}

// Clear removes all retained lines. The total count is kept so "N received"
// stays accurate across a clear.
func (b *LogBuffer) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lines = b.lines[:0]
}
