package types

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Screen represents a view in the application
type Screen interface {
	tea.Model
	ID() string
	Title() string
	HelpText() string
	Operations() []Operation
}

// ScreenWithSelection interface for screens that track selected resources
type ScreenWithSelection interface {
	Screen
	GetSelectedResource() map[string]interface{}
}

// Operation represents an action that can be executed on a screen
type Operation struct {
	ID          string
	Name        string
	Description string
	Shortcut    string
	Execute     func() tea.Cmd
}

// ScreenRegistry manages available screens
type ScreenRegistry struct {
	screens map[string]Screen
	order   []string
}

func NewScreenRegistry() *ScreenRegistry {
	return &ScreenRegistry{
		screens: make(map[string]Screen),
		order:   []string{},
	}
}

func (r *ScreenRegistry) Register(screen Screen) {
	id := screen.ID()
	if _, exists := r.screens[id]; !exists {
		r.order = append(r.order, id)
	}
	r.screens[id] = screen
}

func (r *ScreenRegistry) Get(id string) (Screen, bool) {
	screen, ok := r.screens[id]
	return screen, ok
}

func (r *ScreenRegistry) All() []Screen {
	result := make([]Screen, 0, len(r.order))
	for _, id := range r.order {
		result = append(result, r.screens[id])
	}
	return result
}

// FilterContext defines filtering to apply on screen switch
type FilterContext struct {
	Field    string            // "node", "namespace", "release", "resource"
	Value    string            // Resource name (node, release, pod)
	Metadata map[string]string // namespace, kind, etc.
}

// Description returns a human-readable description of the filter
func (f *FilterContext) Description() string {
	if f == nil {
		return ""
	}

	switch f.Field {
	case "node":
		return "filtered by node: " + f.Value
	case "namespace":
		return "filtered by namespace: " + f.Value
	case "release":
		if ns := f.Metadata["namespace"]; ns != "" {
			return "filtered by release: " + ns + "/" + f.Value
		}
		return "filtered by release: " + f.Value
	case "resource":
		if kind := f.Metadata["kind"]; kind != "" {
			return "filtered by " + kind + ": " + f.Value
		}
		return "filtered by resource: " + f.Value
	default:
		return "filtered by " + f.Value
	}
}

// Messages
type ScreenSwitchMsg struct {
	ScreenID         string
	FilterContext    *FilterContext // Optional filter for contextual navigation
	CommandBarFilter string         // Optional command bar fuzzy filter to restore
	IsBackNav        bool           // True if navigating back via ESC
}

type RefreshCompleteMsg struct {
	Duration time.Duration
}

// RefreshRequestMsg asks the app to refresh the active screen right away.
// Mutations send it on success so the list reflects the change without
// waiting for the next poll; Status is shown in the status bar.
type RefreshRequestMsg struct {
	Status StatusMsg
}

// MessageType defines the type of status message
type MessageType int

const (
	MessageTypeInfo MessageType = iota
	MessageTypeSuccess
	MessageTypeError
	MessageTypeLoading // Loading state with spinner
)

type StatusMsg struct {
	Message string
	Type    MessageType
}

type ClearStatusMsg struct {
	MessageID int // Only clear if this matches the current message ID
}

// Helper functions for creating status messages

// InfoMsg creates an info status message
func InfoMsg(message string) StatusMsg {
	return StatusMsg{Message: message, Type: MessageTypeInfo}
}

// SuccessMsg creates a success status message
func SuccessMsg(message string) StatusMsg {
	return StatusMsg{Message: message, Type: MessageTypeSuccess}
}

// ErrorStatusMsg creates an error status message
func ErrorStatusMsg(message string) StatusMsg {
	return StatusMsg{Message: message, Type: MessageTypeError}
}

// LoadingMsg creates a loading status message (with spinner)
func LoadingMsg(message string) StatusMsg {
	return StatusMsg{Message: message, Type: MessageTypeLoading}
}

type FilterUpdateMsg struct {
	Filter string
}

type ClearFilterMsg struct{}

// ToggleOperationsMsg opens or closes the operations overlay
type ToggleOperationsMsg struct{}

// ShowFullScreenMsg triggers display of full-screen content
type ShowFullScreenMsg struct {
	ViewType     int // 0=YAML, 1=Detail
	ResourceName string
	Content      string
}

// ExitFullScreenMsg returns from full-screen view to list
type ExitFullScreenMsg struct{}
