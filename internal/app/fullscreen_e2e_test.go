//go:build e2e

// Package app contains end to end tests for the full-screen views:
// resource detail and YAML rendering.
package app

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TestPodDetail_OpensAndCloses presses d on the pods screen and closes
// the detail view with esc.
func TestPodDetail_OpensAndCloses(t *testing.T) {
	tp := startApp(t)

	tp.Type(":pods")
	tp.SendKey(tea.KeyEnter)
	if !tp.WaitFor("coredns", 5*time.Second) {
		t.Fatal("Failed to navigate to the pods screen")
	}

	// The first row is selected; d opens its detail.
	tp.Type("d")
	if !tp.WaitFor("Detail: production/api-server-6b9f8c7d5e-qwert", 5*time.Second) {
		t.Logf("Output:\n%s", tp.Output())
		t.Fatal("d should open the pod detail view")
	}
	tp.AssertContains("[ESC] Back")

	mark := len(tp.Output())
	tp.SendKey(tea.KeyEsc)
	time.Sleep(300 * time.Millisecond)
	tp.ForceRepaint()
	if !strings.Contains(freshOutput(tp, mark), "coredns") {
		t.Logf("Output:\n%s", freshOutput(tp, mark))
		t.Error("esc should return to the pods table")
	}
}

// TestEnterOpensDetail verifies enter mirrors the d shortcut.
func TestEnterOpensDetail(t *testing.T) {
	tp := startApp(t)

	tp.Type(":nodes")
	tp.SendKey(tea.KeyEnter)
	if !tp.WaitFor("control-plane", 5*time.Second) {
		t.Fatal("Failed to navigate to the nodes screen")
	}

	tp.SendKey(tea.KeyEnter)
	if !tp.WaitFor("Detail: node-1", 5*time.Second) {
		t.Logf("Output:\n%s", tp.Output())
		t.Fatal("enter should open the node detail view")
	}
}

// TestReleaseValues_ShowsYAML opens the values of the selected release.
func TestReleaseValues_ShowsYAML(t *testing.T) {
	tp := startApp(t)

	tp.Type(":releases")
	tp.SendKey(tea.KeyEnter)
	if !tp.WaitFor("cert-manager", 5*time.Second) {
		t.Fatal("Failed to navigate to the releases screen")
	}

	tp.Type("v")
	if !tp.WaitFor("YAML: ingress-nginx/ingress-nginx", 5*time.Second) {
		t.Logf("Output:\n%s", tp.Output())
		t.Fatal("v should open the values view for the selected release")
	}
	tp.AssertContains("replicaCount")

	// q also closes a full-screen view
	mark := len(tp.Output())
	tp.Type("q")
	time.Sleep(300 * time.Millisecond)
	tp.ForceRepaint()
	if !strings.Contains(freshOutput(tp, mark), "cert-manager") {
		t.Logf("Output:\n%s", freshOutput(tp, mark))
		t.Error("q should close the values view")
	}
}

// TestReleaseHistory_ShowsRevisions opens the revision history of the
// selected release.
func TestReleaseHistory_ShowsRevisions(t *testing.T) {
	tp := startApp(t)

	tp.Type(":releases")
	tp.SendKey(tea.KeyEnter)
	if !tp.WaitFor("cert-manager", 5*time.Second) {
		t.Fatal("Failed to navigate to the releases screen")
	}

	tp.Type("h")
	if !tp.WaitFor("Detail: ingress-nginx/ingress-nginx", 5*time.Second) {
		t.Logf("Output:\n%s", tp.Output())
		t.Fatal("h should open the revision history")
	}
	tp.AssertContains("REVISION")
}
