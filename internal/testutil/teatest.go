// Package testutil drives a complete bubbletea program for end to end
// tests: real event loop, captured output, keys injected as messages.
package testutil

import (
	"bytes"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// settle is how long to let the event loop process after each message.
const settle = 50 * time.Millisecond

// lockedBuffer is written by the program goroutine while the test reads
// it, so every access takes the lock.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// fakeInput satisfies the program's input reader without a terminal.
// Keys are injected through Send, never read from here.
type fakeInput struct{}

func (fakeInput) Read(p []byte) (int, error) {
	time.Sleep(settle)
	return 0, io.EOF
}

// TestProgram wraps a running bubbletea program for tests.
type TestProgram struct {
	t       *testing.T
	program *tea.Program
	output  *lockedBuffer
	width   int
	height  int
}

// NewTestProgram starts model in a background goroutine with a fake
// terminal of the given size. The program is shut down when the test
// ends.
func NewTestProgram(t *testing.T, model tea.Model, width, height int) *TestProgram {
	t.Helper()

	output := &lockedBuffer{}
	p := tea.NewProgram(
		model,
		tea.WithInput(fakeInput{}),
		tea.WithOutput(output),
	)

	tp := &TestProgram{
		t:       t,
		program: p,
		output:  output,
		width:   width,
		height:  height,
	}

	go func() {
		if _, err := p.Run(); err != nil {
			t.Logf("program exited with error: %v", err)
		}
	}()
	t.Cleanup(tp.Quit)

	// Let the loop start before the first message lands
	time.Sleep(settle)
	tp.Send(tea.WindowSizeMsg{Width: width, Height: height})

	return tp
}

// Send delivers a message and waits for the loop to process it.
func (tp *TestProgram) Send(msg tea.Msg) {
	tp.program.Send(msg)
	time.Sleep(settle)
}

// Type simulates typing a string one rune at a time.
func (tp *TestProgram) Type(s string) {
	for _, r := range s {
		tp.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

// SendKey sends a single named key press, e.g. tea.KeyEnter or
// tea.KeyEsc.
func (tp *TestProgram) SendKey(key tea.KeyType) {
	tp.Send(tea.KeyMsg{Type: key})
}

// Output returns everything the program has rendered so far.
func (tp *TestProgram) Output() string {
	return tp.output.String()
}

// ForceRepaint makes the renderer write the next frame in full. The
// standard renderer diffs lines and skips unchanged ones, which breaks
// assertions that slice Output by position; a resize clears its cache.
func (tp *TestProgram) ForceRepaint() {
	tp.Send(tea.WindowSizeMsg{Width: tp.width, Height: tp.height})
}

// WaitFor polls the output until needle appears or the timeout expires.
func (tp *TestProgram) WaitFor(needle string, timeout time.Duration) bool {
	tp.t.Helper()

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if strings.Contains(tp.Output(), needle) {
			return true
		}
		time.Sleep(settle)
	}
	return false
}

// WaitForScreen waits for a screen title to show up in the header.
func (tp *TestProgram) WaitForScreen(title string, timeout time.Duration) bool {
	tp.t.Helper()
	return tp.WaitFor(title, timeout)
}

// AssertContains fails the test when the output lacks expected.
func (tp *TestProgram) AssertContains(expected string) {
	tp.t.Helper()

	output := tp.Output()
	if !strings.Contains(output, expected) {
		tp.t.Errorf("output does not contain %q\nGot:\n%s", expected, output)
	}
}

// AssertNotContains fails the test when the output has notExpected.
func (tp *TestProgram) AssertNotContains(notExpected string) {
	tp.t.Helper()

	output := tp.Output()
	if strings.Contains(output, notExpected) {
		tp.t.Errorf("output should not contain %q\nGot:\n%s", notExpected, output)
	}
}

// Quit stops the program. Safe to call more than once.
func (tp *TestProgram) Quit() {
	tp.program.Quit()
}
