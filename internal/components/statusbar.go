package components

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/quarterdeckhq/quarterdeck/internal/types"
	"github.com/quarterdeckhq/quarterdeck/internal/ui"
)

// StatusBar manages and displays user-facing status messages (success,
// errors, info, loading). It owns message state and spinner coordination;
// the actual rendering is delegated to ui.RenderMessage.
type StatusBar struct {
	message     string
	messageType types.MessageType
	width       int
	theme       *ui.Theme
	spinner     spinner.Model
}

// NewStatusBar creates a new status bar
func NewStatusBar(theme *ui.Theme) *StatusBar {
	s := spinner.New()
	// Rotating asterisk frames, slowed down so the bar doesn't flicker
	s.Spinner = spinner.Spinner{
		Frames: []string{"✽", "✻", "✶", "·", "✢"},
		FPS:    time.Second / 6,
	}
	s.Style = lipgloss.NewStyle()

	return &StatusBar{
		theme:   theme,
		spinner: s,
	}
}

// SetMessage sets the message text and type
func (sb *StatusBar) SetMessage(msg string, msgType types.MessageType) {
	sb.message = msg
	sb.messageType = msgType
}

// GetSpinnerCmd returns the spinner tick command if showing a loading message
func (sb *StatusBar) GetSpinnerCmd() tea.Cmd {
	if sb.messageType == types.MessageTypeLoading {
		return sb.spinner.Tick
	}
	return nil
}

// ClearMessage clears the current message
func (sb *StatusBar) ClearMessage() {
	sb.message = ""
	sb.messageType = types.MessageTypeInfo
}

// IsLoadingMessage returns true if the current message is a loading message
func (sb *StatusBar) IsLoadingMessage() bool {
	return sb.messageType == types.MessageTypeLoading
}

// SetWidth sets the component width
func (sb *StatusBar) SetWidth(width int) {
	sb.width = width
}

// GetHeight returns the height (always 1 line to reserve space)
func (sb *StatusBar) GetHeight() int {
	return 1
}

// Update advances the spinner while a loading message is showing
func (sb *StatusBar) Update(msg tea.Msg) (*StatusBar, tea.Cmd) {
	if sb.messageType == types.MessageTypeLoading {
		var cmd tea.Cmd
		sb.spinner, cmd = sb.spinner.Update(msg)
		return sb, cmd
	}
	return sb, nil
}

// View renders the status bar using the shared ui.RenderMessage function
func (sb *StatusBar) View() string {
	if sb.message == "" {
		// Render empty line to reserve space
		return lipgloss.NewStyle().Width(sb.width).Render("")
	}

	var spinnerView string
	if sb.messageType == types.MessageTypeLoading {
		spinnerView = sb.spinner.View()
	}

	return ui.RenderMessage(sb.message, sb.messageType, sb.theme, spinnerView, sb.width)
}
