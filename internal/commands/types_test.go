package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCommandContext_GetSelection(t *testing.T) {
	tests := []struct {
		name     string
		ctx      CommandContext
		expected SelectionInfo
	}{
		{
			name: "with name and namespace",
			ctx: CommandContext{
				ScreenID: "releases",
				Selected: map[string]any{
					"name":      "ingress-nginx",
					"namespace": "ingress",
				},
			},
			expected: SelectionInfo{
				Name:      "ingress-nginx",
				Namespace: "ingress",
				ScreenID:  "releases",
			},
		},
		{
			name: "without namespace (cluster-scoped)",
			ctx: CommandContext{
				ScreenID: "nodes",
				Selected: map[string]any{
					"name": "node-1",
				},
			},
			expected: SelectionInfo{
				Name:     "node-1",
				ScreenID: "nodes",
			},
		},
		{
			name: "no selection",
			ctx: CommandContext{
				ScreenID: "pods",
				Selected: map[string]any{},
			},
			expected: SelectionInfo{
				ScreenID: "pods",
			},
		},
		{
			name: "nil selection",
			ctx: CommandContext{
				ScreenID: "pods",
			},
			expected: SelectionInfo{
				ScreenID: "pods",
			},
		},
		{
			name: "non-string fields ignored",
			ctx: CommandContext{
				ScreenID: "pods",
				Selected: map[string]any{
					"name":      42,
					"namespace": true,
				},
			},
			expected: SelectionInfo{
				ScreenID: "pods",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := tt.ctx.GetSelection()
			assert.Equal(t, tt.expected, info)
		})
	}
}

func TestCommandContext_SelectedField(t *testing.T) {
	ctx := CommandContext{
		ScreenID: "releases",
		Selected: map[string]any{
			"chart":  "ingress-nginx",
			"status": "",
		},
	}

	assert.Equal(t, "ingress-nginx", ctx.SelectedField("chart", "fallback"))
	assert.Equal(t, "fallback", ctx.SelectedField("status", "fallback"), "empty string falls back")
	assert.Equal(t, "fallback", ctx.SelectedField("missing", "fallback"))
}

func TestCommandContext_ParseArgs(t *testing.T) {
	t.Run("successful parse", func(t *testing.T) {
		ctx := CommandContext{
			ScreenID: "releases",
			Selected: map[string]any{},
			Args:     "3",
		}

		var args RollbackArgs
		err := ctx.ParseArgs(&args)
		assert.NoError(t, err)
		assert.Equal(t, 3, args.Revision)
	})

	t.Run("parse error", func(t *testing.T) {
		ctx := CommandContext{
			ScreenID: "releases",
			Selected: map[string]any{},
			Args:     "invalid",
		}

		var args RollbackArgs
		err := ctx.ParseArgs(&args)
		assert.Error(t, err)
	})

	t.Run("nil dest", func(t *testing.T) {
		ctx := CommandContext{
			ScreenID: "releases",
			Selected: map[string]any{},
			Args:     "",
		}

		err := ctx.ParseArgs(nil)
		assert.NoError(t, err)
	})
}
