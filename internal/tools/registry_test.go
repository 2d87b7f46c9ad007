package tools

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func echoTool(name string) Tool {
	return Tool{
		Name:        name,
		Description: "echo " + name,
		Execute: func(ctx context.Context, input map[string]any) (any, error) {
			return input, nil
		},
	}
}

func TestRegistry_RegisterRejectsDuplicates(t *testing.T) {
	r := NewRegistry(nil)
	require.NoError(t, r.Register(echoTool("a")))

	err := r.Register(echoTool("a"))
	assert.ErrorIs(t, err, ErrDuplicateTool)
	assert.Len(t, r.List(), 1)
}

func TestRegistry_RegisterRequiresNameAndFunc(t *testing.T) {
	r := NewRegistry(nil)
	assert.ErrorIs(t, r.Register(Tool{Name: "x"}), ErrInvalidInput)
	assert.ErrorIs(t, r.Register(Tool{Execute: echoTool("x").Execute}), ErrInvalidInput)
}

func TestRegistry_PublishIsGuarded(t *testing.T) {
	r := NewRegistry(nil)
	set := []Tool{echoTool("a"), echoTool("b")}

	first, err := r.Publish(set)
	require.NoError(t, err)
	assert.True(t, first)
	assert.True(t, r.Published())

	second, err := r.Publish(set)
	require.NoError(t, err)
	assert.False(t, second)
	assert.Len(t, r.List(), 2)
}

func TestRegistry_ListPreservesOrder(t *testing.T) {
	r := NewRegistry(nil)
	for _, name := range []string{"c", "a", "b"} {
		require.NoError(t, r.Register(echoTool(name)))
	}
	var names []string
	for _, tool := range r.List() {
		names = append(names, tool.Name)
	}
	assert.Equal(t, []string{"c", "a", "b"}, names)
}

func TestRegistry_Call(t *testing.T) {
	r := NewRegistry(nil)
	require.NoError(t, r.Register(echoTool("echo")))

	out, err := r.Call(context.Background(), "echo", map[string]any{"x": 1.0})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"x": 1.0}, out)

	out, err = r.Call(context.Background(), "echo", nil)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{}, out)

	_, err = r.Call(context.Background(), "missing", nil)
	assert.True(t, errors.Is(err, ErrUnknownTool))
}

func TestRegistry_DefaultSchema(t *testing.T) {
	r := NewRegistry(nil)
	require.NoError(t, r.Register(echoTool("e")))
	tool, ok := r.Lookup("e")
	require.True(t, ok)
	assert.Equal(t, "object", tool.InputSchema["type"])
}
