package commands

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/quarterdeckhq/quarterdeck/internal/messages"
	"github.com/quarterdeckhq/quarterdeck/internal/types"
)

// PodsOnNodeCommand returns execute function for listing the pods
// scheduled on the selected node
func PodsOnNodeCommand() ExecuteFunc {
	return func(ctx CommandContext) tea.Cmd {
		sel := ctx.GetSelection()
		if sel.Name == "" {
			return messages.ErrorCmd("No node selected")
		}

		node := sel.Name
		return func() tea.Msg {
			return types.ScreenSwitchMsg{
				ScreenID: "pods",
				FilterContext: &types.FilterContext{
					Field: "node",
					Value: node,
				},
			}
		}
	}
}
