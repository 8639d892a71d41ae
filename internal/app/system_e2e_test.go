//go:build e2e

// Package app contains end to end tests for the system screen and the
// empty scoped view.
package app

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TestSystemScreen_ShowsServiceStats checks requests made so far show
// up as per-service counters.
func TestSystemScreen_ShowsServiceStats(t *testing.T) {
	tp := startApp(t)

	// The overview has already hit the cluster and incidents services.
	tp.Type(":system")
	tp.SendKey(tea.KeyEnter)
	if !tp.WaitFor("TOTAL", 5*time.Second) {
		t.Logf("Output:\n%s", tp.Output())
		t.Fatal("Failed to open the system screen")
	}
	tp.AssertContains("cluster")
	tp.AssertContains("incidents")
}

// TestSystemScreen_TracksHelmCalls verifies a visit to releases is
// counted under the helm service.
func TestSystemScreen_TracksHelmCalls(t *testing.T) {
	tp := startApp(t)

	tp.Type(":releases")
	tp.SendKey(tea.KeyEnter)
	if !tp.WaitFor("cert-manager", 5*time.Second) {
		t.Fatal("Failed to navigate to the releases screen")
	}

	tp.Type(":system")
	tp.SendKey(tea.KeyEnter)
	if !tp.WaitFor("helm", 5*time.Second) {
		t.Logf("Output:\n%s", tp.Output())
		t.Fatal("The helm service should be listed after visiting releases")
	}
}

// TestEmptyNamespaceScope_ShowsNotice scopes pods to a namespace with
// nothing in it and checks the placeholder, then leaves with esc.
func TestEmptyNamespaceScope_ShowsNotice(t *testing.T) {
	tp := startApp(t)

	tp.Type(":pods")
	tp.SendKey(tea.KeyEnter)
	if !tp.WaitFor("coredns", 5*time.Second) {
		t.Fatal("Failed to navigate to the pods screen")
	}

	tp.Type(":ns nosuchns")
	tp.SendKey(tea.KeyEnter)
	if !tp.WaitFor("No resources found", 5*time.Second) {
		t.Logf("Output:\n%s", tp.Output())
		t.Fatal("An empty namespace scope should show the placeholder")
	}
	tp.AssertContains("Press ESC to go back")

	mark := len(tp.Output())
	tp.SendKey(tea.KeyEsc)
	time.Sleep(500 * time.Millisecond)
	tp.ForceRepaint()
	time.Sleep(300 * time.Millisecond)

	if out := freshOutput(tp, mark); !strings.Contains(out, "coredns") {
		t.Logf("Output after esc:\n%s", out)
		t.Error("Esc should drop the empty scope and show all pods again")
	}
}
