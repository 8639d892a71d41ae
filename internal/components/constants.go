package components

import "time"

// UI component constants
const (
	// FullScreenReservedLines is the number of lines reserved for UI chrome
	// (header, separator, scroll indicator) when showing full-screen views
	// like YAML or detail output. This ensures content doesn't overflow the
	// terminal.
	FullScreenReservedLines = 3

	// StatusBarDisplayDuration is how long status messages (success, error,
	// info) are displayed before automatically clearing. 5 seconds provides
	// enough time to read without cluttering the UI.
	StatusBarDisplayDuration = 5 * time.Second

	// MaxLogLines caps the number of log lines retained per stream. Older
	// lines are discarded once the buffer is full.
	MaxLogLines = 5000
)
