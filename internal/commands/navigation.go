package commands

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/quarterdeckhq/quarterdeck/internal/messages"
	"github.com/quarterdeckhq/quarterdeck/internal/types"
)

// NamespaceArgs defines arguments for the ns filter command
type NamespaceArgs struct {
	Namespace string `form:"namespace" title:"Namespace" validate:"required"`
}

// NavigationCommand returns an execute function that switches to a screen.
// Every screen command shares this; the registry supplies the screen ID.
func NavigationCommand(screenID string) ExecuteFunc {
	return func(ctx CommandContext) tea.Cmd {
		return func() tea.Msg {
			return types.ScreenSwitchMsg{ScreenID: screenID}
		}
	}
}

// NamespaceFilterCommand returns an execute function that scopes the
// current screen to one namespace. Implemented as a switch to the same
// screen carrying a filter context, so back navigation restores the
// unfiltered view.
func NamespaceFilterCommand() ExecuteFunc {
	return func(ctx CommandContext) tea.Cmd {
		var args NamespaceArgs
		if err := ctx.ParseArgs(&args); err != nil {
			return messages.ErrorCmd("Invalid args: %v", err)
		}
		screenID := ctx.ScreenID
		return func() tea.Msg {
			return types.ScreenSwitchMsg{
				ScreenID: screenID,
				FilterContext: &types.FilterContext{
					Field: "namespace",
					Value: args.Namespace,
				},
			}
		}
	}
}
