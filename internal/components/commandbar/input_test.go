package commandbar

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"github.com/quarterdeckhq/quarterdeck/internal/ui"
)

func TestNewInput(t *testing.T) {
	input := NewInput(newTestRegistry(t), ui.GetTheme("charm"), 80)
	assert.NotNil(t, input)
	assert.True(t, input.IsEmpty())
	assert.Equal(t, "", input.Get())
}

func TestInput_AddChar(t *testing.T) {
	input := NewInput(newTestRegistry(t), ui.GetTheme("charm"), 80)

	input.AddChar("a")
	assert.Equal(t, "a", input.Get())
	assert.Equal(t, 1, input.cursorPos)

	input.AddChar("b")
	assert.Equal(t, "ab", input.Get())
	assert.Equal(t, 2, input.cursorPos)
}

func TestInput_AddText(t *testing.T) {
	input := NewInput(newTestRegistry(t), ui.GetTheme("charm"), 80)

	input.AddText("hello world")
	assert.Equal(t, "hello world", input.Get())
	assert.Equal(t, 11, input.cursorPos)
}

func TestInput_Backspace(t *testing.T) {
	input := NewInput(newTestRegistry(t), ui.GetTheme("charm"), 80)
	input.Set("abc")

	isEmpty := input.Backspace()
	assert.False(t, isEmpty)
	assert.Equal(t, "ab", input.Get())

	isEmpty = input.Backspace()
	assert.False(t, isEmpty)
	assert.Equal(t, "a", input.Get())

	isEmpty = input.Backspace()
	assert.True(t, isEmpty)
	assert.Equal(t, "", input.Get())

	// Backspace on empty buffer
	isEmpty = input.Backspace()
	assert.True(t, isEmpty)
	assert.Equal(t, "", input.Get())
}

func TestInput_Clear(t *testing.T) {
	input := NewInput(newTestRegistry(t), ui.GetTheme("charm"), 80)
	input.Set("test")

	assert.False(t, input.IsEmpty())
	input.Clear()
	assert.True(t, input.IsEmpty())
	assert.Equal(t, "", input.Get())
	assert.Equal(t, 0, input.cursorPos)
}

func TestInput_Set(t *testing.T) {
	input := NewInput(newTestRegistry(t), ui.GetTheme("charm"), 80)
	input.Set("hello")

	assert.Equal(t, "hello", input.Get())
	assert.Equal(t, 5, input.cursorPos)
}

func TestInput_HandleKeyMsg(t *testing.T) {
	input := NewInput(newTestRegistry(t), ui.GetTheme("charm"), 80)

	// Character input
	msg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}}
	result := input.HandleKeyMsg(msg)
	assert.Equal(t, InputActionChar, result.Action)
	assert.Equal(t, "a", result.Text)

	// Backspace
	msg = tea.KeyMsg{Type: tea.KeyBackspace}
	result = input.HandleKeyMsg(msg)
	assert.Equal(t, InputActionBackspace, result.Action)

	// Paste
	msg = tea.KeyMsg{Paste: true, Runes: []rune{'h', 'e', 'l', 'l', 'o'}}
	result = input.HandleKeyMsg(msg)
	assert.Equal(t, InputActionPaste, result.Action)
	assert.Equal(t, "hello", result.Text)
}

func TestInput_ParseCommand(t *testing.T) {
	registry := newTestRegistry(t)
	theme := ui.GetTheme("charm")

	tests := []struct {
		name       string
		input      string
		wantPrefix string
		wantCmd    string
		wantArgs   string
	}{
		{
			name:       "screen command without args",
			input:      ":pods",
			wantPrefix: ":",
			wantCmd:    "pods",
			wantArgs:   "",
		},
		{
			name:       "action command without args",
			input:      "/values",
			wantPrefix: "/",
			wantCmd:    "values",
			wantArgs:   "",
		},
		{
			name:       "action command with args",
			input:      "/rollback 3",
			wantPrefix: "/",
			wantCmd:    "rollback",
			wantArgs:   "3",
		},
		{
			name:       "command with multiple args",
			input:      "/logs nginx 100",
			wantPrefix: "/",
			wantCmd:    "logs",
			wantArgs:   "nginx 100",
		},
		{
			name:       "empty input",
			input:      "",
			wantPrefix: "",
			wantCmd:    "",
			wantArgs:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := NewInput(registry, theme, 80)
			input.Set(tt.input)

			prefix, cmd, args := input.ParseCommand()
			assert.Equal(t, tt.wantPrefix, prefix)
			assert.Equal(t, tt.wantCmd, cmd)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestInput_GetArgumentHint(t *testing.T) {
	registry := newTestRegistry(t)
	theme := ui.GetTheme("charm")

	tests := []struct {
		name    string
		input   string
		cmdType CommandType
		want    string
	}{
		{
			name:    "no hint in filter mode",
			input:   "foo",
			cmdType: CommandTypeFilter,
			want:    "",
		},
		{
			name:    "no hint for empty input",
			input:   "",
			cmdType: CommandTypeAction,
			want:    "",
		},
		{
			name:    "no hint for commands without args",
			input:   "/values",
			cmdType: CommandTypeAction,
			want:    "",
		},
		{
			name:    "full hint after command name",
			input:   "/logs ",
			cmdType: CommandTypeAction,
			want:    " [container] [tail] [follow]",
		},
		{
			name:    "hint shrinks as args are typed",
			input:   "/logs nginx ",
			cmdType: CommandTypeAction,
			want:    " [tail] [follow]",
		},
		{
			name:    "no hint mid-arg",
			input:   "/logs ngi",
			cmdType: CommandTypeAction,
			want:    "",
		},
		{
			name:    "no hint when all args typed",
			input:   "/logs nginx 100 true ",
			cmdType: CommandTypeAction,
			want:    "",
		},
		{
			name:    "screen command hint",
			input:   ":ns ",
			cmdType: CommandTypeScreen,
			want:    " <namespace>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := NewInput(registry, theme, 80)
			input.Set(tt.input)

			assert.Equal(t, tt.want, input.GetArgumentHint(tt.cmdType))
		})
	}
}

func TestInput_View(t *testing.T) {
	input := NewInput(newTestRegistry(t), ui.GetTheme("charm"), 80)
	input.Set("test")

	view := input.View(CommandTypeFilter)
	assert.Contains(t, view, "test")
	assert.Contains(t, view, "█") // cursor
}

func TestInput_SetWidth(t *testing.T) {
	input := NewInput(newTestRegistry(t), ui.GetTheme("charm"), 80)
	assert.Equal(t, 80, input.width)

	input.SetWidth(120)
	assert.Equal(t, 120, input.width)
}
