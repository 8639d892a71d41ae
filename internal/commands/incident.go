package commands

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/quarterdeckhq/quarterdeck/internal/api"
	"github.com/quarterdeckhq/quarterdeck/internal/messages"
	"github.com/quarterdeckhq/quarterdeck/internal/types"
)

// AcknowledgeCommand returns execute function for acknowledging the
// selected incident
func AcknowledgeCommand(client api.Client) ExecuteFunc {
	return func(ctx CommandContext) tea.Cmd {
		id := ctx.SelectedField("id", "")
		if id == "" {
			return messages.ErrorCmd("No incident selected")
		}

		return func() tea.Msg {
			incident, err := client.AcknowledgeIncident(context.Background(), id)
			if err != nil {
				return types.ErrorStatusMsg("Acknowledge failed: " + err.Error())
			}
			return mutated("Acknowledged: %s", incident.Title)
		}
	}
}

// ResolveCommand returns execute function for resolving the selected
// incident, removing it from the active list
func ResolveCommand(client api.Client) ExecuteFunc {
	return func(ctx CommandContext) tea.Cmd {
		id := ctx.SelectedField("id", "")
		if id == "" {
			return messages.ErrorCmd("No incident selected")
		}

		return func() tea.Msg {
			incident, err := client.ResolveIncident(context.Background(), id)
			if err != nil {
				return types.ErrorStatusMsg("Resolve failed: " + err.Error())
			}
			return mutated("Resolved: %s", incident.Title)
		}
	}
}
