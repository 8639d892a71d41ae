package commands

import (
	"fmt"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/quarterdeckhq/quarterdeck/internal/messages"
)

// CopyToClipboard copies text to the system clipboard and returns a
// user-friendly message
func CopyToClipboard(text string) (string, error) {
	if err := clipboard.WriteAll(text); err != nil {
		return "", fmt.Errorf("failed to copy to clipboard: %w", err)
	}
	return fmt.Sprintf("Copied to clipboard: %s", text), nil
}

// CopyCommand returns execute function for copying the selected row's
// identity to the clipboard, namespace/name for namespaced rows. Handy
// for pasting into kubectl or helm on the side.
func CopyCommand() ExecuteFunc {
	return func(ctx CommandContext) tea.Cmd {
		sel := ctx.GetSelection()
		if sel.Name == "" {
			return messages.ErrorCmd("Nothing selected to copy")
		}

		text := sel.Name
		if sel.Namespace != "" {
			text = sel.Namespace + "/" + sel.Name
		}

		return func() tea.Msg {
			msg, err := CopyToClipboard(text)
			if err != nil {
				return messages.ErrorCmd("Failed to copy: %v", err)()
			}
			return messages.InfoCmd("%s", msg)()
		}
	}
}
