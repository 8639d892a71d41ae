package commandbar

import (
	"testing"

	"github.com/quarterdeckhq/quarterdeck/internal/api"
	"github.com/quarterdeckhq/quarterdeck/internal/commands"
	"github.com/quarterdeckhq/quarterdeck/internal/ui"
)

// newTestRegistry builds a registry backed by the demo client, so command
// lookups and executions work without a server.
func newTestRegistry(t *testing.T) *commands.Registry {
	t.Helper()
	return commands.NewRegistry(api.NewDemoClient())
}

// newTestBar builds a command bar backed by the demo client.
func newTestBar(t *testing.T) *CommandBar {
	t.Helper()
	return New(api.NewDemoClient(), ui.GetTheme("charm"))
}
