//go:build e2e

// Package app contains end to end tests for the operations overlay
// behind ?: listing, filtering and executing operations.
package app

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TestOperationsOverlay_ListsScreenAndRegistryOps opens ? on releases
// and checks both sources are merged.
func TestOperationsOverlay_ListsScreenAndRegistryOps(t *testing.T) {
	tp := startApp(t)

	tp.Type(":releases")
	tp.SendKey(tea.KeyEnter)
	if !tp.WaitFor("cert-manager", 5*time.Second) {
		t.Fatal("Failed to navigate to the releases screen")
	}

	tp.Type("?")
	if !tp.WaitFor("Operations", 3*time.Second) {
		t.Logf("Output:\n%s", tp.Output())
		t.Fatal("? should open the operations overlay")
	}
	tp.AssertContains("Install [i]")
	tp.AssertContains("uninstall [x]")
	tp.AssertContains("copy [c]")

	// esc closes the overlay and the table is back
	tp.SendKey(tea.KeyEsc)
	mark := len(tp.Output())
	tp.ForceRepaint()
	time.Sleep(300 * time.Millisecond)
	frame := freshOutput(tp, mark)
	if !strings.Contains(frame, "ingress-nginx") {
		t.Logf("Output:\n%s", frame)
		t.Error("esc should close the overlay")
	}
	if strings.Contains(frame, "uninstall [x]") {
		t.Error("Overlay entries should be gone after esc")
	}
}

// TestOperationsOverlay_ExecutesSelection runs the highlighted
// operation with enter.
func TestOperationsOverlay_ExecutesSelection(t *testing.T) {
	tp := startApp(t)

	tp.Type(":pods")
	tp.SendKey(tea.KeyEnter)
	if !tp.WaitFor("coredns", 5*time.Second) {
		t.Fatal("Failed to navigate to the pods screen")
	}

	tp.Type("?")
	if !tp.WaitFor("Pod Detail [d]", 3*time.Second) {
		t.Logf("Output:\n%s", tp.Output())
		t.Fatal("? should list the pod operations")
	}

	// The screen's own operation sits first and starts highlighted.
	tp.SendKey(tea.KeyEnter)
	if !tp.WaitFor("Detail: production/api-server-6b9f8c7d5e-qwert", 5*time.Second) {
		t.Logf("Output:\n%s", tp.Output())
		t.Fatal("enter should run the highlighted operation")
	}
}

// TestOperationsOverlay_FilterNarrowsList types into the overlay's
// built-in filter.
func TestOperationsOverlay_FilterNarrowsList(t *testing.T) {
	tp := startApp(t)

	tp.Type(":releases")
	tp.SendKey(tea.KeyEnter)
	if !tp.WaitFor("cert-manager", 5*time.Second) {
		t.Fatal("Failed to navigate to the releases screen")
	}

	tp.Type("?")
	if !tp.WaitFor("Install [i]", 3*time.Second) {
		t.Fatal("? should open the operations overlay")
	}

	tp.Type("/history")
	time.Sleep(300 * time.Millisecond)

	mark := len(tp.Output())
	tp.ForceRepaint()
	time.Sleep(300 * time.Millisecond)
	frame := freshOutput(tp, mark)
	if !strings.Contains(frame, "history [h]") {
		t.Logf("Output:\n%s", frame)
		t.Error("Filtering should keep the matching operation")
	}
	if strings.Contains(frame, "Install [i]") {
		t.Error("Filtering should drop non-matching operations")
	}
}
