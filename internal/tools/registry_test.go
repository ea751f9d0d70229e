// ABOUTME: Tests for the tool registry lookup and invocation boundary.
// ABOUTME: Validates ordering, collision detection, and fault conversion.

package tools

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryOrderIsStable(t *testing.T) {
	r := NewRegistry(slog.Default())
	for _, name := range []string{"charlie", "alpha", "bravo"} {
		require.NoError(t, r.Register(&Tool{
			Name:        name,
			InputSchema: []byte(`{"type":"object"}`),
			Handler:     func(map[string]any) (map[string]any, error) { return map[string]any{}, nil },
		}))
	}

	first := r.Names()
	assert.Equal(t, []string{"charlie", "alpha", "bravo"}, first)

	// Repeated listings must not reorder.
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, r.Names())
	}
}

func TestRegistryRejectsDuplicateNames(t *testing.T) {
	r := NewRegistry(slog.Default())
	tool := &Tool{
		Name:    "dupe",
		Handler: func(map[string]any) (map[string]any, error) { return nil, nil },
	}

	require.NoError(t, r.Register(tool))
	err := r.Register(tool)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrToolCollision)
}

func TestCallUnknownTool(t *testing.T) {
	r := NewRegistry(slog.Default())

	result := r.Call("nope", map[string]any{})
	require.True(t, result.IsError)
	require.Len(t, result.Content, 1)
	assert.Contains(t, result.Content[0].Text, "Unknown tool: nope")
}

func TestCallSuccessWrapsPayload(t *testing.T) {
	r := NewRegistry(slog.Default())
	require.NoError(t, r.Register(&Tool{
		Name: "echo",
		Handler: func(args map[string]any) (map[string]any, error) {
			return map[string]any{"success": true, "echo": args["value"]}, nil
		},
	}))

	result := r.Call("echo", map[string]any{"value": "hi"})
	require.False(t, result.IsError)
	assert.Equal(t, true, result.StructuredContent["success"])
	assert.Equal(t, "hi", result.StructuredContent["echo"])
	require.Len(t, result.Content, 1)
	assert.Equal(t, "text", result.Content[0].Type)
	assert.Contains(t, result.Content[0].Text, `"echo": "hi"`)
}

func TestCallHandlerErrorBecomesToolError(t *testing.T) {
	r := NewRegistry(slog.Default())
	require.NoError(t, r.Register(&Tool{
		Name: "broken",
		Handler: func(map[string]any) (map[string]any, error) {
			return nil, errors.New("backend unavailable")
		},
	}))

	result := r.Call("broken", nil)
	require.True(t, result.IsError)
	assert.Contains(t, result.Content[0].Text, "Tool execution failed")
	assert.Equal(t, "backend unavailable", result.StructuredContent["error"])
}

func TestCallHandlerPanicIsRecovered(t *testing.T) {
	r := NewRegistry(slog.Default())
	require.NoError(t, r.Register(&Tool{
		Name: "explosive",
		Handler: func(map[string]any) (map[string]any, error) {
			panic("boom")
		},
	}))

	result := r.Call("explosive", nil)
	require.True(t, result.IsError)
	assert.Contains(t, result.Content[0].Text, "Tool execution failed")
	assert.Equal(t, "boom", result.StructuredContent["error"])
}

func TestCallNilArgsDefaultsToEmpty(t *testing.T) {
	r := NewRegistry(slog.Default())
	require.NoError(t, r.Register(&Tool{
		Name: "argcheck",
		Handler: func(args map[string]any) (map[string]any, error) {
			require.NotNil(t, args)
			return map[string]any{"success": true}, nil
		},
	}))

	result := r.Call("argcheck", nil)
	assert.False(t, result.IsError)
}

func TestToolTitle(t *testing.T) {
	tests := []struct {
		name  string
		title string
	}{
		{"search_customer", "Search Customer"},
		{"get_iban_info", "Get Iban Info"},
		{"ping", "Ping"},
	}
	for _, tc := range tests {
		tool := &Tool{Name: tc.name}
		assert.Equal(t, tc.title, tool.Title())
	}
}
