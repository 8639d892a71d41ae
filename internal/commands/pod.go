package commands

import (
	"strconv"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/quarterdeckhq/quarterdeck/internal/messages"
	"github.com/quarterdeckhq/quarterdeck/internal/types"
)

// LogsArgs defines arguments for the logs command
type LogsArgs struct {
	Container string `form:"container" title:"Container" optional:"true"`
	Tail      int    `form:"tail" title:"Tail Lines" default:"100" optional:"true" validate:"min=0"`
	Follow    bool   `form:"follow" title:"Follow" default:"true" optional:"true"`
}

// LogsCommand returns execute function for opening the log viewer on the
// selected pod. The viewer reads the stream options from the filter
// context metadata.
func LogsCommand() ExecuteFunc {
	return func(ctx CommandContext) tea.Cmd {
		var args LogsArgs
		if err := ctx.ParseArgs(&args); err != nil {
			return messages.ErrorCmd("Invalid args: %v", err)
		}

		sel := ctx.GetSelection()
		if sel.Name == "" {
			return messages.ErrorCmd("No pod selected")
		}

		metadata := map[string]string{
			"kind":      "pod",
			"namespace": sel.Namespace,
			"tail":      strconv.Itoa(args.Tail),
			"follow":    strconv.FormatBool(args.Follow),
		}
		if args.Container != "" {
			metadata["container"] = args.Container
		}

		return func() tea.Msg {
			return types.ScreenSwitchMsg{
				ScreenID: "logs",
				FilterContext: &types.FilterContext{
					Field:    "resource",
					Value:    sel.Name,
					Metadata: metadata,
				},
			}
		}
	}
}

// EventsCommand returns execute function for viewing the timeline scoped
// to the selected pod's namespace
func EventsCommand() ExecuteFunc {
	return func(ctx CommandContext) tea.Cmd {
		sel := ctx.GetSelection()
		if sel.Namespace == "" {
			return messages.ErrorCmd("No pod selected")
		}

		namespace := sel.Namespace
		return func() tea.Msg {
			return types.ScreenSwitchMsg{
				ScreenID: "timeline",
				FilterContext: &types.FilterContext{
					Field: "namespace",
					Value: namespace,
				},
			}
		}
	}
}
