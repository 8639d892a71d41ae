package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/quarterdeckhq/quarterdeck/internal/types"
)

// RenderMessage renders a status message with the styling for its type.
// Long messages are truncated to fit the terminal width.
func RenderMessage(text string, msgType types.MessageType, theme *Theme, spinnerView string, width int) string {
	if text == "" {
		return ""
	}

	// Max length = terminal width - prefix (2) - margin (5)
	maxMessageLength := width - 7
	if maxMessageLength < 20 {
		maxMessageLength = 20
	}
	if len(text) > maxMessageLength {
		text = text[:maxMessageLength-1] + "…"
	}

	var messageColor lipgloss.AdaptiveColor
	prefix := "⏺ "

	switch msgType {
	case types.MessageTypeSuccess:
		messageColor = theme.Success
	case types.MessageTypeError:
		messageColor = theme.Error
	case types.MessageTypeLoading:
		messageColor = theme.Warning
		if spinnerView != "" {
			prefix = spinnerView + " "
		}
	default:
		messageColor = theme.Secondary
	}

	messageStyle := lipgloss.NewStyle().Foreground(messageColor)
	return messageStyle.Render(prefix + text)
}
