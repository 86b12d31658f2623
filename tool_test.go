package quakeagent

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type namedTool struct {
	name        string
	description string
	result      string
}

func (t *namedTool) Name() string        { return t.name }
func (t *namedTool) Description() string { return t.description }

func (t *namedTool) Call(context.Context, string) (string, error) {
	return t.result, nil
}

func TestRegistry_Lookup(t *testing.T) {
	geocode := &namedTool{name: "Geocode"}
	count := &namedTool{name: "EarthquakeCount"}
	registry := NewRegistry(geocode, count)

	tool, ok := registry.Lookup("Geocode")
	require.True(t, ok)
	assert.Same(t, geocode, tool)

	// Dispatch is exact-match only.
	_, ok = registry.Lookup("geocode")
	assert.False(t, ok)

	_, ok = registry.Lookup("Teleport")
	assert.False(t, ok)
}

func TestRegistry_Names_RegistrationOrder(t *testing.T) {
	registry := NewRegistry(
		&namedTool{name: "Geocode"},
		&namedTool{name: "EarthquakeCount"},
	)

	assert.Equal(t, []string{"Geocode", "EarthquakeCount"}, registry.Names())
}

func TestRegistry_Register_ReplacesSameName(t *testing.T) {
	first := &namedTool{name: "Geocode", result: "old"}
	second := &namedTool{name: "Geocode", result: "new"}

	registry := NewRegistry(first).Register(second)

	tool, ok := registry.Lookup("Geocode")
	require.True(t, ok)
	assert.Same(t, second, tool)
	assert.Equal(t, []string{"Geocode"}, registry.Names())
	assert.Len(t, registry.Tools(), 1)
}
