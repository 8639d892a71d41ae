package commands

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/quarterdeckhq/quarterdeck/internal/api"
	"github.com/quarterdeckhq/quarterdeck/internal/messages"
	"github.com/quarterdeckhq/quarterdeck/internal/types"
)

// ApplyCommand returns execute function for applying the selected
// rightsizing recommendation
func ApplyCommand(client api.Client) ExecuteFunc {
	return func(ctx CommandContext) tea.Cmd {
		id := ctx.SelectedField("id", "")
		if id == "" {
			return messages.ErrorCmd("No recommendation selected")
		}

		return func() tea.Msg {
			rec, err := client.ApplyRecommendation(context.Background(), id)
			if err != nil {
				return types.ErrorStatusMsg("Apply failed: " + err.Error())
			}
			return mutated("Applied %s for %s/%s",
				rec.Kind, rec.Workload.Namespace, rec.Workload.Name)
		}
	}
}

// DismissCommand returns execute function for dismissing the selected
// recommendation without applying it
func DismissCommand(client api.Client) ExecuteFunc {
	return func(ctx CommandContext) tea.Cmd {
		id := ctx.SelectedField("id", "")
		if id == "" {
			return messages.ErrorCmd("No recommendation selected")
		}

		return func() tea.Msg {
			rec, err := client.DismissRecommendation(context.Background(), id)
			if err != nil {
				return types.ErrorStatusMsg("Dismiss failed: " + err.Error())
			}
			return mutated("Dismissed %s for %s/%s",
				rec.Kind, rec.Workload.Namespace, rec.Workload.Name)
		}
	}
}
