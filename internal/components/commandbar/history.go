package commandbar

// maxHistoryEntries bounds how many executed commands are remembered.
const maxHistoryEntries = 100

// History remembers executed commands for up/down recall in input mode.
// Consecutive duplicates are collapsed and the list is size-bounded.
type History struct {
	entries []string
	index   int // current position while navigating, -1 when not navigating
}

// NewHistory creates an empty history.
func NewHistory() *History {
	return &History{
		entries: []string{},
		index:   -1,
	}
}

// Add records a command. Empty commands and repeats of the most recent
// entry are ignored.
func (h *History) Add(cmd string) {
	if len(cmd) == 0 {
		return
	}
	if len(h.entries) > 0 && h.entries[len(h.entries)-1] == cmd {
		return
	}

	h.entries = append(h.entries, cmd)
	if len(h.entries) > maxHistoryEntries {
		h.entries = h.entries[len(h.entries)-maxHistoryEntries:]
	}

	h.index = -1
}

// NavigateUp moves backwards in history (older commands).
// Returns the command at the new position and whether navigation succeeded.
func (h *History) NavigateUp() (string, bool) {
	if len(h.entries) == 0 {
		return "", false
	}

	if h.index == -1 {
		h.index = len(h.entries) - 1
	} else if h.index > 0 {
		h.index--
	}

	return h.entries[h.index], true
}

// NavigateDown moves forwards in history (newer commands).
// Returns false once past the most recent entry, which means the caller
// should clear the input.
func (h *History) NavigateDown() (string, bool) {
	if len(h.entries) == 0 || h.index == -1 {
		return "", false
	}

	if h.index < len(h.entries)-1 {
		h.index++
		return h.entries[h.index], true
	}

	h.index = -1
	return "", false
}

// Reset resets the navigation position.
func (h *History) Reset() {
	h.index = -1
}

// IsEmpty returns true if history is empty.
func (h *History) IsEmpty() bool {
	return len(h.entries) == 0
}

// Size returns the number of entries in history.
func (h *History) Size() int {
	return len(h.entries)
}
